package collision

import (
	"container/heap"

	"github.com/go-gl/mathgl/mgl32"

	"solidcore/internal/config"
)

// epaTriangle is one face of the expanding polytope: the plane it sits
// on (outward dir and distance from the origin), its three vertex
// indices, and the half-edge index of its neighbor across each edge.
// Half-edges are numbered triIndex*3+corner, corner in [0,3), the edge
// running from v[corner] to v[(corner+1)%3].
type epaTriangle struct {
	index    int
	v        [3]int
	neighbor [3]int
	dir      mgl32.Vec3
	distance float32
	active   bool
	heapIdx  int
}

// polytope is the growable convex hull EPA walks outward from the GJK
// terminal simplex, one support point at a time, until the closest
// face stops moving.
type polytope struct {
	vertices  []mvertex
	triangles []*epaTriangle
}

func (p *polytope) addVertex(v mvertex) int {
	p.vertices = append(p.vertices, v)
	return len(p.vertices) - 1
}

func (p *polytope) addTriangle(v0, v1, v2, h0, h1, h2 int) *epaTriangle {
	p0 := p.vertices[v0].p
	p1 := p.vertices[v1].p
	p2 := p.vertices[v2].p
	dir := p1.Sub(p0).Cross(p2.Sub(p0))
	dir = dir.Normalize()
	tri := &epaTriangle{
		index:    len(p.triangles),
		v:        [3]int{v0, v1, v2},
		neighbor: [3]int{h0, h1, h2},
		dir:      dir,
		distance: dir.Dot(p0),
		active:   true,
	}
	p.triangles = append(p.triangles, tri)
	return tri
}

func nextHalfEdge(he int) int {
	if he%3 == 2 {
		return he - 2
	}
	return he + 1
}

func prevHalfEdge(he int) int {
	if he%3 == 0 {
		return he + 2
	}
	return he - 1
}

func (p *polytope) neighborOf(he int) int          { return p.triangles[he/3].neighbor[he%3] }
func (p *polytope) updateNeighbor(he, val int)     { p.triangles[he/3].neighbor[he%3] = val }
func (p *polytope) vertexIndexA(he int) int        { return p.triangles[he/3].v[he%3] }
func (p *polytope) vertexIndexB(he int) int         { return p.vertexIndexA(nextHalfEdge(he)) }

// addSilhouette walks the polytope from half-edge he, deactivating every
// triangle the new point pt can see and recording the boundary
// half-edges (the silhouette) where visibility flips.
func (p *polytope) addSilhouette(he int, pt mgl32.Vec3, sil *[]int) {
	ne := p.neighborOf(he)
	tri := p.triangles[ne/3]
	if !tri.active {
		return
	}
	if pt.Dot(tri.dir) <= tri.distance {
		*sil = append(*sil, he)
		return
	}
	tri.active = false
	p.addSilhouette(nextHalfEdge(ne), pt, sil)
	p.addSilhouette(prevHalfEdge(ne), pt, sil)
}

// triangleHeap is a min-heap over active polytope triangles keyed by
// distance from the origin, so the closest (and thus next-to-expand)
// face is always on top.
type triangleHeap []*epaTriangle

func (h triangleHeap) Len() int            { return len(h) }
func (h triangleHeap) Less(i, j int) bool  { return h[i].distance < h[j].distance }
func (h triangleHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIdx, h[j].heapIdx = i, j
}
func (h *triangleHeap) Push(x any) {
	tri := x.(*epaTriangle)
	tri.heapIdx = len(*h)
	*h = append(*h, tri)
}
func (h *triangleHeap) Pop() any {
	old := *h
	n := len(old)
	tri := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return tri
}

// epaGrowthFraction is the minimum relative improvement in distance a
// new support point must provide for the polytope to keep expanding;
// below it the closest face is taken as converged.
const epaGrowthFraction = 1.005

// epa runs phase 2 on a GJK simplex known to enclose the origin,
// expanding a polytope outward until the closest face to the origin
// stops growing, then extracting the contact by barycentric
// interpolation of that face's witness points. Margins are already
// baked into every witness point by Support, so neither the tetrahedron
// case nor the degenerate (non-tetrahedron) simplex cases apply a
// separate margin-enlargement step.
func epa(a, b Shape, s *simplex) Result {
	switch s.n {
	case 1:
		v := s.v[0]
		return Result{Colliding: true, Normal: safeNormal(v.d.Mul(-1)), Depth: 0, PointOnA: v.a, PointOnB: v.b}
	case 2:
		if res, ok := epaLineCase(a, b, s); ok {
			return res
		}
	case 3:
		if res, ok := epaTriangleCase(a, b, s); ok {
			return res
		}
	}

	return epaTetrahedron(a, b, s)
}

// epaLineCase handles an origin-containing simplex edge: find a point
// off the line to either confirm the origin truly sits on the TCSO
// (zero-depth contact) or promote the simplex to a triangle.
func epaLineCase(a, b Shape, s *simplex) (Result, bool) {
	e01 := s.v[1].p.Sub(s.v[0].p)
	dir := perpendicular(e01)
	v := supportMinkowski(a, b, dir)

	if nearZero(dir.Dot(v.p.Sub(s.v[0].p))) {
		denom := e01.X()
		if nearZero(denom) {
			denom = 1e-12
		}
		w := -s.v[0].p.X() / denom
		p := s.v[0].a.Add(s.v[1].a.Sub(s.v[0].a).Mul(w))
		return Result{Colliding: true, Normal: mgl32.Vec3{}, Depth: 0, PointOnA: p, PointOnB: p}, true
	}

	s.push(v)
	return Result{}, false
}

// epaTriangleCase handles an origin-containing simplex face: find a
// point off the plane to either confirm a zero-depth contact or
// promote the simplex to a tetrahedron.
func epaTriangleCase(a, b Shape, s *simplex) (Result, bool) {
	e01 := s.v[1].p.Sub(s.v[0].p)
	e02 := s.v[2].p.Sub(s.v[0].p)
	dir := e01.Cross(e02)
	nd := dir.Normalize()
	v := supportMinkowski(a, b, nd)

	if nearZero(dir.Dot(v.p.Sub(s.v[0].p))) {
		e0p := v.p.Sub(s.v[0].p)
		oo4AreaSq := 1.0 / dir.Dot(dir)
		w2 := e01.Cross(e0p).Dot(dir) * oo4AreaSq
		w1 := e0p.Cross(e02).Dot(dir) * oo4AreaSq
		w0 := 1 - w1 - w2
		p := s.v[0].a.Mul(w0).Add(s.v[1].a.Mul(w1)).Add(s.v[2].a.Mul(w2))
		return Result{Colliding: true, Normal: safeNormal(nd.Mul(-1)), Depth: 0, PointOnA: p, PointOnB: p}, true
	}

	s.push(v)
	return Result{}, false
}

func perpendicular(v mgl32.Vec3) mgl32.Vec3 {
	axis := mgl32.Vec3{1, 0, 0}
	if absF32(v.Normalize().X()) > 0.9 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	return v.Cross(axis).Normalize()
}

func nearZero(f float32) bool {
	if f < 0 {
		f = -f
	}
	return f < 1e-5
}

// epaTetrahedron runs the full polytope-expansion loop from a
// 4-vertex enclosing simplex.
func epaTetrahedron(a, b Shape, s *simplex) Result {
	poly := &polytope{}
	for i := 0; i < 4; i++ {
		poly.addVertex(s.v[i])
	}

	h := &triangleHeap{}
	heap.Init(h)
	heap.Push(h, poly.addTriangle(0, 2, 1, 11, 8, 5))
	heap.Push(h, poly.addTriangle(1, 3, 0, 7, 9, 2))
	heap.Push(h, poly.addTriangle(2, 3, 1, 10, 3, 1))
	heap.Push(h, poly.addTriangle(0, 3, 2, 4, 6, 0))

	var top *epaTriangle
	maxIterations := config.EPAMaxIterations()
	for iter := 0; iter < maxIterations && h.Len() > 0; {
		top = heap.Pop(h).(*epaTriangle)
		if !top.active {
			continue
		}
		iter++

		np := supportMinkowski(a, b, top.dir)
		newDist := top.dir.Dot(np.p)
		if newDist <= epaGrowthFraction*top.distance {
			break
		}

		triBefore := len(poly.triangles)
		top.active = false
		topBase := top.index * 3
		var sil []int
		poly.addSilhouette(topBase+0, np.p, &sil)
		poly.addSilhouette(topBase+1, np.p, &sil)
		poly.addSilhouette(topBase+2, np.p, &sil)

		npID := poly.addVertex(np)

		startEdge := triBefore * 3
		lastEdge := (triBefore+len(sil))*3 - 1
		prevEdge := lastEdge

		for i, silEdge := range sil {
			newEdge := (triBefore + i) * 3
			nextEdge := newEdge + 3
			if nextEdge > lastEdge {
				nextEdge = startEdge
			}

			vA := poly.vertexIndexA(silEdge)
			vB := poly.vertexIndexB(silEdge)
			h1 := poly.neighborOf(silEdge)

			tri := poly.addTriangle(npID, vA, vB, prevEdge, h1, nextEdge)
			heap.Push(h, tri)

			prevEdge = newEdge + 2
			poly.updateNeighbor(h1, newEdge+1)
		}
	}

	return epaExtractContact(poly, top)
}

func epaExtractContact(poly *polytope, top *epaTriangle) Result {
	v0 := poly.vertices[top.v[0]]
	v1 := poly.vertices[top.v[1]]
	v2 := poly.vertices[top.v[2]]

	e01 := v1.p.Sub(v0.p)
	e02 := v2.p.Sub(v0.p)
	n := e01.Cross(e02)
	oo4AreaSq := -1.0 / n.Dot(n)
	w2 := e01.Cross(v0.p).Dot(n) * oo4AreaSq
	w1 := v0.p.Cross(e02).Dot(n) * oo4AreaSq
	w0 := 1 - w1 - w2

	colA := v0.a.Mul(w0).Add(v1.a.Mul(w1)).Add(v2.a.Mul(w2))
	colB := v0.b.Mul(w0).Add(v1.b.Mul(w1)).Add(v2.b.Mul(w2))

	diff := colB.Sub(colA)
	return Result{
		Colliding: true,
		Normal:    safeNormal(diff),
		Depth:     diff.Len(),
		PointOnA:  colA,
		PointOnB:  colB,
	}
}
