package blockgraph

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// halfEdge is one directed side of a face's quad ring. t is the
// topological corner coordinate in {0,1,2,3} the spec assigns each
// corner during subdivision matching.
type halfEdge struct {
	face      int // global face index
	t         int
	start     mgl32.Vec3
	edgeIndex int // block-local hexahedron edge (0..11) this half-edge runs along
	// subdiv holds the parametric positions (0,1) of interior vertices
	// along this half-edge, in the half-edge's own start->next direction,
	// kept sorted ascending.
	subdiv []float32
}

// face is one of a block's 6 quads: its corners, outward normal, center,
// attraction mask, and link state once matching has run.
type face struct {
	block      int
	local      int
	heBase     int // index of this face's first half-edge in the graph's halfEdges slice
	corners    [4]mgl32.Vec3
	center     mgl32.Vec3
	normal     mgl32.Vec3
	attraction byte
	force      float32

	linked       bool
	link         int // global face index this face is bonded to
	linkCorner   int // rotation (quarter turns) aligning the two rings
	linkStrength float32

	// nextSubface points into the graph's subfaces slice at the first
	// subface produced by splitting this face, or -1 if it was not
	// split. Each subface in turn chains to its sibling through its own
	// nextSubface, -1 terminated.
	nextSubface int
}

// Graph is the block-graph builder's working state: every block's face
// topology, arranged for neighbor search, linking, and quad emission.
type Graph struct {
	blocks    []Block
	faces     []face
	halfEdges []halfEdge
	subfaces  []face
}

func (g *Graph) faceHalfEdges(f int) [4]int {
	base := g.faces[f].heBase
	return [4]int{base, base + 1, base + 2, base + 3}
}

// buildTopology constructs the per-block half-edge rings for every
// block's 6 faces, computing each face's center and outward normal as
// the cross of its two mid-edge vectors.
func buildTopology(blocks []Block) *Graph {
	g := &Graph{blocks: blocks}
	g.faces = make([]face, 0, len(blocks)*numFaces)
	g.halfEdges = make([]halfEdge, 0, len(blocks)*numFaces*4)

	for bi, b := range blocks {
		for f := 0; f < numFaces; f++ {
			codes := faceCornerCodes[f]
			var corners [4]mgl32.Vec3
			for i, c := range codes {
				corners[i] = b.corner(c)
			}

			fc := face{
				block:       bi,
				local:       f,
				heBase:      len(g.halfEdges),
				corners:     corners,
				center:      quadCenter(corners),
				normal:      quadNormal(corners),
				attraction:  b.Attraction[f],
				force:       defaultedForce(b.Force[f], b.boundsHalfExtent()),
				link:        -1,
				nextSubface: -1,
			}
			globalFace := len(g.faces)
			g.faces = append(g.faces, fc)

			for i := 0; i < 4; i++ {
				c0 := codes[i]
				c1 := codes[(i+1)%4]
				ei := edgeIndex(c0, c1)
				subdiv := append([]float32(nil), b.EdgeSubdivisions[ei]...)
				if edgeCorners[ei][0] != c0 {
					// This half-edge runs against the canonical edge direction.
					for k, t := range subdiv {
						subdiv[k] = 1 - t
					}
				}
				sort.Slice(subdiv, func(x, y int) bool { return subdiv[x] < subdiv[y] })
				g.halfEdges = append(g.halfEdges, halfEdge{
					face:      globalFace,
					t:         i,
					start:     corners[i],
					edgeIndex: ei,
					subdiv:    subdiv,
				})
			}
		}
	}
	return g
}

// defaultedForce substitutes a size-derived threshold when the caller
// leaves a face's Force at its zero value, so blocks built without an
// explicit threshold still bond to touching neighbors.
func defaultedForce(f float32, half mgl32.Vec3) float32 {
	if f > 0 {
		return f
	}
	avg := (half.X() + half.Y() + half.Z()) / 3
	return avg * avg
}

func quadCenter(c [4]mgl32.Vec3) mgl32.Vec3 {
	return c[0].Add(c[1]).Add(c[2]).Add(c[3]).Mul(0.25)
}

// quadNormal reconstructs the outward unit normal as the cross of the
// quad's two mid-edge vectors, which stays well-defined even if the
// quad is slightly non-planar.
func quadNormal(c [4]mgl32.Vec3) mgl32.Vec3 {
	m01 := c[0].Add(c[1]).Mul(0.5)
	m12 := c[1].Add(c[2]).Mul(0.5)
	m23 := c[2].Add(c[3]).Mul(0.5)
	m30 := c[3].Add(c[0]).Mul(0.5)
	u := m12.Sub(m30)
	v := m23.Sub(m01)
	n := u.Cross(v)
	if n.Len() < 1e-20 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}
