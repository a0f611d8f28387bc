package blockgraph

import "github.com/go-gl/mathgl/mgl32"

// candidateLink is a face pair that passed the attraction, orientation,
// and ray-hit tests; linkFaces ranks these by strength and assigns the
// strongest non-conflicting bonds first.
type candidateLink struct {
	a, b       int
	strength   float32
	linkCorner int
}

// linkFaces runs the four face-to-face matching rules over every
// candidate block pair's 36 face combinations, then greedily bonds the
// strongest surviving candidates so that no face is ever rebonded to a
// weaker link than one it already holds -- processing strongest-first
// makes the spec's "strictly less than any prior link" rule automatic.
func linkFaces(g *Graph, pairs [][2]int) {
	var candidates []candidateLink

	for _, pr := range pairs {
		blockA, blockB := pr[0], pr[1]
		for la := 0; la < numFaces; la++ {
			fa := blockA*numFaces + la
			for lb := 0; lb < numFaces; lb++ {
				fb := blockB*numFaces + lb
				if c, ok := evaluateCandidate(g, fa, fb); ok {
					candidates = append(candidates, c)
				}
			}
		}
	}

	sortCandidatesByStrength(candidates)

	for _, c := range candidates {
		fa, fb := &g.faces[c.a], &g.faces[c.b]
		if fa.linked || fb.linked {
			continue
		}
		fa.linked, fa.link, fa.linkCorner, fa.linkStrength = true, c.b, c.linkCorner, c.strength
		fb.linked, fb.link, fb.linkCorner, fb.linkStrength = true, c.a, rotateInverse(c.linkCorner), c.strength
	}

	breakUnidirectionalLinks(g)
}

func evaluateCandidate(g *Graph, fa, fb int) (candidateLink, bool) {
	a, b := &g.faces[fa], &g.faces[fb]

	if (a.attraction|b.attraction) != attractionBond {
		return candidateLink{}, false
	}
	if a.normal.Dot(b.normal) >= 0 {
		return candidateLink{}, false
	}
	if !facesRayHit(*a, *b) {
		return candidateLink{}, false
	}

	d := a.center.Sub(b.center)
	strength := d.Dot(d)
	if strength >= a.force+b.force {
		return candidateLink{}, false
	}

	return candidateLink{a: fa, b: fb, strength: strength, linkCorner: bestAlignment(*a, *b)}, true
}

func sortCandidatesByStrength(c []candidateLink) {
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && c[j].strength < c[j-1].strength; j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}

// facesRayHit casts a ray from each face's center along its outward
// normal and checks it strikes the other face's quad, each tested as
// two triangles.
func facesRayHit(a, b face) bool {
	return rayHitsQuad(a.center, a.normal, b.corners) && rayHitsQuad(b.center, b.normal, a.corners)
}

func rayHitsQuad(origin, dir mgl32.Vec3, quad [4]mgl32.Vec3) bool {
	return rayHitsTriangle(origin, dir, quad[0], quad[1], quad[2]) ||
		rayHitsTriangle(origin, dir, quad[0], quad[2], quad[3])
}

// rayHitsTriangle is a Moller-Trumbore ray/triangle intersection test,
// accepting hits at any distance along dir greater than -1e-4.
func rayHitsTriangle(origin, dir, v0, v1, v2 mgl32.Vec3) bool {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	h := dir.Cross(e2)
	det := e1.Dot(h)
	if det > -1e-9 && det < 1e-9 {
		return false
	}
	invDet := 1 / det
	s := origin.Sub(v0)
	u := s.Dot(h) * invDet
	if u < -1e-6 || u > 1+1e-6 {
		return false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * invDet
	if v < -1e-6 || u+v > 1+1e-6 {
		return false
	}
	t := e2.Dot(q) * invDet
	// Adjacent blocks typically meet with their faces flush against the
	// same plane, putting the hit right at the ray origin (t == 0); allow
	// a small negative slop rather than requiring a strictly forward hit.
	return t > -1e-4
}

// bestAlignment picks the quarter-turn rotation of b's corner ring that
// minimizes the total squared distance between corresponding corners of
// a and b, viewed across the shared face.
func bestAlignment(a, b face) int {
	best, bestDist := 0, float32(-1)
	for rot := 0; rot < 4; rot++ {
		var total float32
		for i := 0; i < 4; i++ {
			ca := a.corners[i]
			cb := b.corners[(i+rot)%4]
			d := ca.Sub(cb)
			total += d.Dot(d)
		}
		if bestDist < 0 || total < bestDist {
			bestDist = total
			best = rot
		}
	}
	return best
}

func rotateInverse(rot int) int {
	if rot == 0 {
		return 0
	}
	return 4 - rot
}

// breakUnidirectionalLinks removes any link left dangling one-way by the
// greedy pass above (it shouldn't happen given the symmetric assignment,
// but a caller may also hand-construct a Graph with partial links, so
// this pass is the authoritative cleanup the spec calls for).
func breakUnidirectionalLinks(g *Graph) {
	for i := range g.faces {
		f := &g.faces[i]
		if !f.linked {
			continue
		}
		other := &g.faces[f.link]
		if !other.linked || other.link != i {
			f.linked = false
			f.link = -1
		}
	}
}
