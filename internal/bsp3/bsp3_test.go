package bsp3_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"solidcore/internal/bsp3"
	"solidcore/internal/poly"
)

// boxFaces returns the six outward-facing quads of an axis-aligned box
// centered at center with the given half-extents, each wound so its
// computed plane normal points away from the box.
func boxFaces(center, half mgl32.Vec3, tag string) []*poly.Polygon {
	cx, cy, cz := center.X(), center.Y(), center.Z()
	hx, hy, hz := half.X(), half.Y(), half.Z()

	quad := func(a, b, c, d mgl32.Vec3) *poly.Polygon {
		return poly.NewPolygon([]mgl32.Vec3{a, b, c, d}, tag)
	}

	v := func(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{cx + x, cy + y, cz + z} }

	return []*poly.Polygon{
		// +x
		quad(v(hx, -hy, -hz), v(hx, hy, -hz), v(hx, hy, hz), v(hx, -hy, hz)),
		// -x
		quad(v(-hx, -hy, hz), v(-hx, hy, hz), v(-hx, hy, -hz), v(-hx, -hy, -hz)),
		// +y
		quad(v(-hx, hy, -hz), v(-hx, hy, hz), v(hx, hy, hz), v(hx, hy, -hz)),
		// -y
		quad(v(-hx, -hy, hz), v(-hx, -hy, -hz), v(hx, -hy, -hz), v(hx, -hy, hz)),
		// +z
		quad(v(-hx, -hy, hz), v(hx, -hy, hz), v(hx, hy, hz), v(-hx, hy, hz)),
		// -z
		quad(v(hx, -hy, -hz), v(-hx, -hy, -hz), v(-hx, hy, -hz), v(hx, hy, -hz)),
	}
}

func newTree() *bsp3.Tree {
	return bsp3.NewTree(1e-3, 5e-4)
}

func TestBuildBoxPointInSolid(t *testing.T) {
	tree := newTree()
	tree.Build(boxFaces(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}, "box"))

	require.Equal(t, bsp3.In, tree.PointInSolid(mgl32.Vec3{0, 0, 0}))
	require.Equal(t, bsp3.Out, tree.PointInSolid(mgl32.Vec3{2, 0, 0}))
	require.Equal(t, bsp3.Out, tree.PointInSolid(mgl32.Vec3{0.6, 0, 0}))
}

func TestUnionAdjacentBoxesFillsGap(t *testing.T) {
	tree := newTree()
	tree.Build(boxFaces(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}, "a"))
	tree.Add(boxFaces(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}, "b"))

	require.Equal(t, bsp3.In, tree.PointInSolid(mgl32.Vec3{0, 0, 0}))
	require.Equal(t, bsp3.In, tree.PointInSolid(mgl32.Vec3{1, 0, 0}))
	require.Equal(t, bsp3.In, tree.PointInSolid(mgl32.Vec3{0.5, 0, 0}))
	require.Equal(t, bsp3.Out, tree.PointInSolid(mgl32.Vec3{-0.6, 0, 0}))
	require.Equal(t, bsp3.Out, tree.PointInSolid(mgl32.Vec3{1.6, 0, 0}))
}

func TestIntersectionOverlappingBoxes(t *testing.T) {
	tree := newTree()
	tree.Build(boxFaces(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}, "a"))
	tree.Intersect(boxFaces(mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}, "b"))

	require.Equal(t, bsp3.In, tree.PointInSolid(mgl32.Vec3{0.4, 0, 0}))
	require.Equal(t, bsp3.Out, tree.PointInSolid(mgl32.Vec3{-0.4, 0, 0}))
	require.Equal(t, bsp3.Out, tree.PointInSolid(mgl32.Vec3{0.9, 0, 0}))
}

func TestDifferenceCarvesOverlap(t *testing.T) {
	tree := newTree()
	tree.Build(boxFaces(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, "a"))
	tree.Remove(boxFaces(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}, "b"))

	require.Equal(t, bsp3.In, tree.PointInSolid(mgl32.Vec3{-0.9, 0, 0}))
	require.Equal(t, bsp3.Out, tree.PointInSolid(mgl32.Vec3{0.9, 0, 0}))
	require.Equal(t, bsp3.Out, tree.PointInSolid(mgl32.Vec3{2, 0, 0}))
}

func TestUnionWithSelfIsIdempotent(t *testing.T) {
	tree := newTree()
	faces := boxFaces(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}, "a")
	tree.Build(faces)
	tree.Add(boxFaces(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}, "a"))

	require.Equal(t, bsp3.In, tree.PointInSolid(mgl32.Vec3{0, 0, 0}))
	require.Equal(t, bsp3.Out, tree.PointInSolid(mgl32.Vec3{0.6, 0, 0}))
}

func TestComputeBoundaryReturnsConvexPlanarFaces(t *testing.T) {
	tree := newTree()
	tree.Build(boxFaces(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}, "a"))

	faces := tree.ComputeBoundary(true)
	require.NotEmpty(t, faces)
	for _, f := range faces {
		require.GreaterOrEqual(t, len(f.Vertices), 3)
		require.True(t, f.IsConvex())
	}
}
