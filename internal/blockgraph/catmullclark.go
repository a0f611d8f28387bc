package blockgraph

import "github.com/go-gl/mathgl/mgl32"

// edgePoint computes the Catmull-Clark edge point for a physical edge: a
// crease edge keeps the plain midpoint, a smooth edge averages that
// midpoint with the centers of its two incident faces.
func edgePoint(g *Graph, idx *ccIndex, edgeID int) mgl32.Vec3 {
	e := idx.edges[edgeID]
	mid := idx.vertices[e.v0].pos.Add(idx.vertices[e.v1].pos).Mul(0.5)
	if e.crease || len(e.faces) != 2 {
		return mid
	}
	fc := g.faces[e.faces[0]].center.Add(g.faces[e.faces[1]].center).Mul(0.5)
	return mid.Add(fc).Mul(0.5)
}

// cornerPoint computes the Catmull-Clark updated position for a shared
// vertex, keyed by how many of its incident edges are creases: zero or
// one creased edge uses the smooth interior rule, exactly two blends
// the two crease neighbors with the original position, three or more
// pins the vertex in place.
func cornerPoint(g *Graph, idx *ccIndex, v int) mgl32.Vec3 {
	info := idx.vertices[v]
	p := info.pos
	edges := idx.vertexEdges[v]

	var creaseNeighbors []mgl32.Vec3
	for _, eid := range edges {
		if idx.edges[eid].crease {
			creaseNeighbors = append(creaseNeighbors, idx.vertices[idx.other(eid, v)].pos)
		}
	}

	switch {
	case len(creaseNeighbors) >= 3:
		return p
	case len(creaseNeighbors) == 2:
		return creaseNeighbors[0].Add(p.Mul(6)).Add(creaseNeighbors[1]).Mul(1.0 / 8.0)
	default:
		return smoothCornerPoint(g, idx, v, info, edges)
	}
}

func smoothCornerPoint(g *Graph, idx *ccIndex, v int, info vertexInfo, edges []int) mgl32.Vec3 {
	n := len(edges)
	if n < 3 {
		return info.pos
	}

	faceIDs := distinctInts(info.faces)
	var q mgl32.Vec3
	for _, fi := range faceIDs {
		q = q.Add(g.faces[fi].center)
	}
	q = q.Mul(1 / float32(len(faceIDs)))

	var r mgl32.Vec3
	for _, eid := range edges {
		e := idx.edges[eid]
		r = r.Add(idx.vertices[e.v0].pos.Add(idx.vertices[e.v1].pos).Mul(0.5))
	}
	r = r.Mul(1 / float32(n))

	nf := float32(n)
	return q.Add(r.Mul(2)).Add(info.pos.Mul(nf - 3)).Mul(1 / nf)
}

func distinctInts(vs []int) []int {
	seen := make(map[int]bool, len(vs))
	var out []int
	for _, v := range vs {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
