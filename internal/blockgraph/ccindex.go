package blockgraph

import "github.com/go-gl/mathgl/mgl32"

// vkey quantizes a position onto a fixed lattice so coincident corners
// from different blocks collapse onto the same vertex identity without
// needing an explicit post-hoc averaging pass.
type vkey struct{ x, y, z int64 }

const vertexSnap = 1.0 / 8192.0

func quantize(p mgl32.Vec3) vkey {
	return vkey{
		round64(p.X() / vertexSnap),
		round64(p.Y() / vertexSnap),
		round64(p.Z() / vertexSnap),
	}
}

func round64(v float32) int64 {
	if v >= 0 {
		return int64(v + 0.5)
	}
	return int64(v - 0.5)
}

// vertexInfo is one shared corner vertex: its canonical position and
// every (face, localCorner) occurrence across the blocks that meet there.
type vertexInfo struct {
	pos   mgl32.Vec3
	faces []int
	local []int
}

// edgeInfo is one shared physical edge: its two endpoint vertex ids and
// every (face, half-edge) occurrence, plus whether any occurrence is
// flagged as a crease.
type edgeInfo struct {
	v0, v1  int
	crease  bool
	faces   []int
	halfEdg []int
}

type ccIndex struct {
	vertices    []vertexInfo
	byKey       map[vkey]int
	edges       []edgeInfo
	byEdgeKey   map[[2]int]int
	vertexEdges map[int][]int
	faceCorner  map[[2]int]int // (face, localCorner) -> vertex id
	faceEdge    map[[2]int]int // (face, localCorner) -> edge id of the edge starting there
}

func buildCCIndex(g *Graph) *ccIndex {
	idx := &ccIndex{
		byKey:       make(map[vkey]int),
		byEdgeKey:   make(map[[2]int]int),
		vertexEdges: make(map[int][]int),
		faceCorner:  make(map[[2]int]int),
		faceEdge:    make(map[[2]int]int),
	}

	for fi, f := range g.faces {
		for c := 0; c < 4; c++ {
			v := idx.vertexFor(f.corners[c], fi, c)
			idx.faceCorner[[2]int{fi, c}] = v
		}
	}

	for fi, f := range g.faces {
		block := g.blocks[f.block]
		for c := 0; c < 4; c++ {
			he := f.heBase + c
			v0 := idx.faceCorner[[2]int{fi, c}]
			v1 := idx.faceCorner[[2]int{fi, (c + 1) % 4}]
			crease := block.Crease[g.halfEdges[he].edgeIndex]
			idx.faceEdge[[2]int{fi, c}] = idx.registerEdge(v0, v1, fi, he, crease)
		}
	}

	idx.classifyEdges()
	return idx
}

func (idx *ccIndex) vertexFor(p mgl32.Vec3, face, corner int) int {
	k := quantize(p)
	if id, ok := idx.byKey[k]; ok {
		idx.vertices[id].faces = append(idx.vertices[id].faces, face)
		idx.vertices[id].local = append(idx.vertices[id].local, corner)
		return id
	}
	id := len(idx.vertices)
	idx.vertices = append(idx.vertices, vertexInfo{pos: p, faces: []int{face}, local: []int{corner}})
	idx.byKey[k] = id
	return id
}

func (idx *ccIndex) registerEdge(v0, v1, face, he int, crease bool) int {
	key := [2]int{v0, v1}
	if v0 > v1 {
		key = [2]int{v1, v0}
	}
	id, ok := idx.byEdgeKey[key]
	if !ok {
		id = len(idx.edges)
		idx.edges = append(idx.edges, edgeInfo{v0: key[0], v1: key[1]})
		idx.byEdgeKey[key] = id
		idx.vertexEdges[key[0]] = append(idx.vertexEdges[key[0]], id)
		idx.vertexEdges[key[1]] = append(idx.vertexEdges[key[1]], id)
	}
	e := &idx.edges[id]
	e.faces = append(e.faces, face)
	e.halfEdg = append(e.halfEdg, he)
	if crease {
		e.crease = true
	}
	return id
}

// classifyEdges finalizes crease status: boundary edges (touched by only
// one face) and non-manifold edges (touched by more than two) are always
// treated as creases, matching conventional Catmull-Crack handling of
// mesh borders.
func (idx *ccIndex) classifyEdges() {
	for i := range idx.edges {
		e := &idx.edges[i]
		if len(e.faces) != 2 {
			e.crease = true
		}
	}
}

func (idx *ccIndex) other(edgeID, v int) int {
	e := idx.edges[edgeID]
	if e.v0 == v {
		return e.v1
	}
	return e.v0
}
