package blockgraph

import "github.com/go-gl/mathgl/mgl32"

// Quad is one emitted control patch: face center, the edge point of the
// edge preceding its corner, the corner itself, and the edge point of
// the edge following it, all already placed by the Catmull-Clark rules.
// A quad emitted from a split face's subface grid instead carries that
// subface's four raw corners and Corner == -1, since subfaces are a flat
// local refinement rather than a Catmull-Clark-placed patch.
type Quad struct {
	Positions [4]mgl32.Vec3
	Face      int
	Corner    int
}

// Mesh is the watertight quad control cage produced by Build.
type Mesh struct {
	Quads []Quad
}

// emitMesh walks every exterior half-edge (one belonging to a face that
// never matched a neighbor) and emits its quad; linked faces are
// interior boundaries between bonded blocks and contribute no surface
// geometry.
func emitMesh(g *Graph, idx *ccIndex) *Mesh {
	mesh := &Mesh{}
	for fi, f := range g.faces {
		if f.linked {
			continue
		}
		if f.nextSubface >= 0 {
			mesh.Quads = append(mesh.Quads, subfaceQuads(g, fi, f.nextSubface)...)
			continue
		}
		facePt := f.center
		for c := 0; c < 4; c++ {
			prevEdge := idx.faceEdge[[2]int{fi, (c + 3) % 4}]
			currEdge := idx.faceEdge[[2]int{fi, c}]
			cornerV := idx.faceCorner[[2]int{fi, c}]

			mesh.Quads = append(mesh.Quads, Quad{
				Positions: [4]mgl32.Vec3{
					facePt,
					edgePoint(g, idx, prevEdge),
					cornerPoint(g, idx, cornerV),
					edgePoint(g, idx, currEdge),
				},
				Face:   fi,
				Corner: c,
			})
		}
	}
	return mesh
}
