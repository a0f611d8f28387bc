package blockgraph_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"solidcore/internal/blockgraph"
)

func unitBlock(center mgl32.Vec3) blockgraph.Block {
	return blockgraph.Block{Corners: blockgraph.NewBoxCorners(center, mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent())}
}

func hasQuadVertexNear(mesh *blockgraph.Mesh, target mgl32.Vec3, tol float32) bool {
	for _, q := range mesh.Quads {
		for _, p := range q.Positions {
			if near(p, target, tol) {
				return true
			}
		}
	}
	return false
}

func near(a, b mgl32.Vec3, tol float32) bool {
	d := a.Sub(b)
	return d.Dot(d) < tol*tol
}

func TestBuildSingleBlockEmitsOneQuadPerCorner(t *testing.T) {
	mesh := blockgraph.Build([]blockgraph.Block{unitBlock(mgl32.Vec3{0, 0, 0})})

	require.Len(t, mesh.Quads, 6*4)
}

func TestBuildLinkedBlocksDropTheSharedFacesFromOutput(t *testing.T) {
	a := unitBlock(mgl32.Vec3{0, 0, 0})
	a.Attraction[blockgraph.FacePosX] = 2

	b := unitBlock(mgl32.Vec3{2, 0, 0})
	b.Attraction[blockgraph.FaceNegX] = 2

	mesh := blockgraph.Build([]blockgraph.Block{a, b})

	// 12 faces total, minus the 2 that bonded to each other, at 4 quads
	// per remaining exterior face.
	require.Len(t, mesh.Quads, 10*4)
}

func TestBuildUnattractedAdjacentBlocksStayUnlinked(t *testing.T) {
	a := unitBlock(mgl32.Vec3{0, 0, 0})
	b := unitBlock(mgl32.Vec3{2, 0, 0})

	mesh := blockgraph.Build([]blockgraph.Block{a, b})

	require.Len(t, mesh.Quads, 12*4)
}

func TestCatmullClarkRoundsAnUncreasedCubeCorner(t *testing.T) {
	mesh := blockgraph.Build([]blockgraph.Block{unitBlock(mgl32.Vec3{0, 0, 0})})

	// The smooth corner rule pulls every cube corner from distance sqrt(3)
	// off the center down to (5/9,5/9,5/9) in the all-positive octant.
	require.True(t, hasQuadVertexNear(mesh, mgl32.Vec3{5.0 / 9, 5.0 / 9, 5.0 / 9}, 1e-3))
	require.False(t, hasQuadVertexNear(mesh, mgl32.Vec3{1, 1, 1}, 1e-3))
}

func TestNewBoxCornersIdentityMatchesManualOffsets(t *testing.T) {
	c := blockgraph.NewBoxCorners(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent())
	require.True(t, near(c[0], mgl32.Vec3{0, 1, 2}, 1e-6))
	require.True(t, near(c[7], mgl32.Vec3{2, 3, 4}, 1e-6))
}

func TestSplitFaceEmitsSubdivisionGridInsteadOfCatmullClarkQuads(t *testing.T) {
	block := unitBlock(mgl32.Vec3{0, 0, 0})
	block.FaceSubdivisions = blockgraph.UniformFaceSubdivisions(0x2) // sx=3, sy=1 on every face

	mesh := blockgraph.Build([]blockgraph.Block{block})

	require.Len(t, mesh.Quads, 6*3)
	for _, q := range mesh.Quads {
		require.Equal(t, -1, q.Corner)
	}
}

func TestEdgePointIsPlainMidpointOnlyWhenCreased(t *testing.T) {
	block := unitBlock(mgl32.Vec3{0, 0, 0})
	block.Crease[0] = true // edge between corners (-1,-1,-1) and (1,-1,-1)

	mesh := blockgraph.Build([]blockgraph.Block{block})

	require.True(t, hasQuadVertexNear(mesh, mgl32.Vec3{0, -1, -1}, 1e-4))
	// A non-creased edge's point is pulled toward its adjacent faces'
	// centers rather than sitting at the raw midpoint.
	require.False(t, hasQuadVertexNear(mesh, mgl32.Vec3{1, 0, -1}, 1e-4))
	require.True(t, hasQuadVertexNear(mesh, mgl32.Vec3{0.75, 0, -0.75}, 1e-3))
}
