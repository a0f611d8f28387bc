package collision

import (
	"github.com/go-gl/mathgl/mgl32"

	"solidcore/internal/config"
)

// mvertex is a Minkowski-difference vertex: the witness point on each
// shape, the direction it was generated from, and their difference.
type mvertex struct {
	a, b, p mgl32.Vec3
	d       mgl32.Vec3
}

func supportMinkowski(a, b Shape, d mgl32.Vec3) mvertex {
	wa := Support(a, d)
	wb := Support(b, d.Mul(-1))
	return mvertex{a: wa, b: wb, p: wa.Sub(wb), d: d}
}

// Result is the outcome of colliding two shapes: either a separating
// axis and no contact, or a penetration depth, normal, and world-space
// witness points on each shape.
type Result struct {
	Colliding bool
	Normal    mgl32.Vec3 // points from A towards B
	Depth     float32
	PointOnA  mgl32.Vec3
	PointOnB  mgl32.Vec3
	// SeparatingAxis is populated on a "no collision" result, in A-to-B
	// convention, and is meant to be cached as next frame's GJK seed.
	SeparatingAxis mgl32.Vec3
}

// simplex is the up-to-4-vertex working set GJK refines towards the
// origin.
type simplex struct {
	v [4]mvertex
	n int
}

func (s *simplex) push(v mvertex) {
	s.v[s.n] = v
	s.n++
}

// gjk runs phase 1 of the pipeline, returning either a separating-axis
// "no collision" result or the terminal simplex handed off to EPA.
func gjk(a, b Shape, seed mgl32.Vec3) (Result, *simplex, bool) {
	if seed.Len() < 1e-12 {
		seed = mgl32.Vec3{1, 0, 0}
	}
	d := seed.Normalize()

	s := &simplex{}
	s.push(supportMinkowski(a, b, d))

	marginSum := a.Margin() + b.Margin() + 0.001

	for iter := 0; iter < config.GJKMaxIterations(); iter++ {
		if d.Dot(d) < 1e-12 {
			return Result{}, s, true
		}

		p := supportMinkowski(a, b, d)
		dp := d.Dot(p.p)

		if dp < 0 && dp*dp > (marginSum*marginSum)*d.Dot(d) {
			return Result{Colliding: false, SeparatingAxis: d.Normalize()}, nil, false
		}

		s0 := s.v[0]
		ds0 := d.Dot(s0.p)
		if (ds0 - dp) < 1e-6*ds0 {
			return reconstructTouching(s, marginSum), nil, false
		}

		s.push(p)
		var enclosesOrigin bool
		d, enclosesOrigin = reduceSimplex(s)
		if enclosesOrigin {
			return Result{}, s, true
		}
	}

	return reconstructTouching(s, marginSum), nil, false
}

// reconstructTouching builds a shallow/no-penetration contact from a
// converged (non-enclosing) simplex by barycentric interpolation of the
// witness points stored at each simplex vertex.
func reconstructTouching(s *simplex, marginSum float32) Result {
	switch s.n {
	case 1:
		v := s.v[0]
		return Result{Colliding: v.p.Len() <= marginSum, PointOnA: v.a, PointOnB: v.b, Depth: 0, Normal: safeNormal(v.p)}
	case 2:
		wa, wb, t := closestOnSegment(s.v[0].p, s.v[1].p)
		a := s.v[0].a.Mul(1 - t).Add(s.v[1].a.Mul(t))
		b := s.v[0].b.Mul(1 - t).Add(s.v[1].b.Mul(t))
		return Result{Colliding: wa.Sub(wb).Len() <= marginSum, PointOnA: a, PointOnB: b, Normal: safeNormal(wa.Sub(wb))}
	default:
		u, v, w := barycentricTriangle(s.v[0].p, s.v[1].p, s.v[2].p)
		a := s.v[0].a.Mul(u).Add(s.v[1].a.Mul(v)).Add(s.v[2].a.Mul(w))
		b := s.v[0].b.Mul(u).Add(s.v[1].b.Mul(v)).Add(s.v[2].b.Mul(w))
		return Result{Colliding: a.Sub(b).Len() <= marginSum, PointOnA: a, PointOnB: b, Normal: safeNormal(a.Sub(b))}
	}
}

func safeNormal(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 1e-12 {
		return mgl32.Vec3{0, 1, 0}
	}
	return v.Normalize()
}

func closestOnSegment(a, b mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3, float32) {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom < 1e-20 {
		return a, a, 0
	}
	t := -a.Dot(ab) / denom
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return a, b, t
}

// barycentricTriangle returns the barycentric weights of the point on
// triangle abc closest to the origin's projection onto its plane.
func barycentricTriangle(a, b, c mgl32.Vec3) (float32, float32, float32) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := a.Mul(-1)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01
	if denom*denom < 1e-20 {
		return 1.0 / 3, 1.0 / 3, 1.0 / 3
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w
	return u, v, w
}

// reduceSimplex prunes s to the sub-simplex closest to the origin,
// reporting whether the current (up to tetrahedron) simplex encloses the
// origin, in which case GJK hands off to EPA.
func reduceSimplex(s *simplex) (mgl32.Vec3, bool) {
	switch s.n {
	case 2:
		return reduceLine(s)
	case 3:
		return reduceTriangle(s)
	case 4:
		return reduceTetrahedron(s)
	}
	return mgl32.Vec3{}.Sub(s.v[0].p), false
}

func reduceLine(s *simplex) (mgl32.Vec3, bool) {
	a := s.v[1].p
	b := s.v[0].p
	ab := b.Sub(a)
	ao := a.Mul(-1)
	if ab.Dot(ao) > 0 {
		return tripleProduct(ab, ao, ab), false
	}
	s.v[0] = s.v[1]
	s.n = 1
	return ao, false
}

func reduceTriangle(s *simplex) (mgl32.Vec3, bool) {
	a := s.v[2].p
	b := s.v[1].p
	c := s.v[0].p
	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)
	abc := ab.Cross(ac)

	if abc.Cross(ac).Dot(ao) > 0 {
		if ac.Dot(ao) > 0 {
			s.v[1] = s.v[2]
			s.n = 2
			return tripleProduct(ac, ao, ac), false
		}
		s.v[0], s.v[1] = s.v[1], s.v[2]
		s.n = 2
		return reduceLine(s)
	}
	if ab.Cross(abc).Dot(ao) > 0 {
		s.v[0], s.v[1] = s.v[1], s.v[2]
		s.n = 2
		return reduceLine(s)
	}
	if abc.Dot(ao) > 0 {
		return abc, false
	}
	s.v[0], s.v[1] = s.v[1], s.v[0]
	return abc.Mul(-1), false
}

func reduceTetrahedron(s *simplex) (mgl32.Vec3, bool) {
	a := s.v[3].p
	b := s.v[2].p
	c := s.v[1].p
	d := s.v[0].p
	ao := a.Mul(-1)

	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)

	abc := ab.Cross(ac)
	acd := ac.Cross(ad)
	adb := ad.Cross(ab)

	switch {
	case abc.Dot(ao) > 0:
		s.v[0], s.v[1], s.v[2] = s.v[1], s.v[2], s.v[3]
		s.n = 3
		return reduceTriangle(s)
	case acd.Dot(ao) > 0:
		s.v[0], s.v[1], s.v[2] = s.v[0], s.v[1], s.v[3]
		s.n = 3
		return reduceTriangle(s)
	case adb.Dot(ao) > 0:
		s.v[0], s.v[1], s.v[2] = s.v[2], s.v[0], s.v[3]
		s.n = 3
		return reduceTriangle(s)
	}
	return mgl32.Vec3{}, true
}

func tripleProduct(a, b, c mgl32.Vec3) mgl32.Vec3 {
	return a.Cross(b).Cross(c)
}
