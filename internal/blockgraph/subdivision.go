package blockgraph

import (
	"github.com/go-gl/mathgl/mgl32"

	"solidcore/internal/config"
)

// heInFace returns the half-edge at ring-local offset delta from he,
// wrapping within the 4-half-edge ring of he's own face.
func heInFace(g *Graph, he, delta int) int {
	f := g.halfEdges[he].face
	base := g.faces[f].heBase
	local := he - base
	return base + (local+delta+4)%4
}

const edgeMatchEpsilon = 1e-4

// matchingHalfEdge finds the half-edge of otherFace that runs along the
// same physical segment as hea, traversed in the opposite direction (the
// two faces glued at a link always face each other, so their rings wind
// oppositely along the shared boundary).
func matchingHalfEdge(g *Graph, hea int, otherFace int) (int, bool) {
	a0 := g.halfEdges[hea].start
	a1 := g.halfEdges[heInFace(g, hea, 1)].start
	for _, heb := range g.faceHalfEdges(otherFace) {
		b0 := g.halfEdges[heb].start
		b1 := g.halfEdges[heInFace(g, heb, 1)].start
		if closePoints(a0, b1) && closePoints(a1, b0) {
			return heb, true
		}
	}
	return 0, false
}

func closePoints(a, b mgl32.Vec3) bool {
	d := a.Sub(b)
	return d.Dot(d) < edgeMatchEpsilon*edgeMatchEpsilon
}

// mergeSubdivisions reconciles the interior-vertex parametric positions
// recorded on linked faces' half-edges, so a shared physical edge ends
// up with the union of every block's subdivisions along it. It repeats
// until a full pass makes no change, since one edge can be shared by
// more than the two faces of a single link (three or more blocks
// meeting along a crease).
func mergeSubdivisions(g *Graph) {
	tol := config.EdgeSubdivParametric()
	changed := true
	for changed {
		changed = false
		for fi := range g.faces {
			f := &g.faces[fi]
			if !f.linked {
				continue
			}
			for _, hea := range g.faceHalfEdges(fi) {
				heb, ok := matchingHalfEdge(g, hea, f.link)
				if !ok {
					continue
				}
				if mergeHalfEdgeSubdivisions(g, hea, heb, tol) {
					changed = true
				}
			}
		}
	}
}

// mergeHalfEdgeSubdivisions unions hea's and heb's interior-vertex
// parametric positions, accounting for heb running in the opposite
// direction (t on heb corresponds to 1-t on hea). Reports whether either
// side gained a new value.
func mergeHalfEdgeSubdivisions(g *Graph, hea, heb int, tol float32) bool {
	ea := &g.halfEdges[hea]
	eb := &g.halfEdges[heb]

	changed := false
	for _, t := range eb.subdiv {
		mapped := 1 - t
		if !containsNear(ea.subdiv, mapped, tol) {
			ea.subdiv = insertSorted(ea.subdiv, mapped)
			changed = true
		}
	}
	for _, t := range ea.subdiv {
		mapped := 1 - t
		if !containsNear(eb.subdiv, mapped, tol) {
			eb.subdiv = insertSorted(eb.subdiv, mapped)
			changed = true
		}
	}
	return changed
}

func containsNear(values []float32, v, tol float32) bool {
	for _, x := range values {
		d := x - v
		if d < 0 {
			d = -d
		}
		if d < tol {
			return true
		}
	}
	return false
}

func insertSorted(values []float32, v float32) []float32 {
	i := 0
	for i < len(values) && values[i] < v {
		i++
	}
	values = append(values, 0)
	copy(values[i+1:], values[i:])
	values[i] = v
	return values
}
