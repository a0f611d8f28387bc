package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Collide resolves contact between two shapes: analytically for the
// sphere/sphere and sphere/box pairs, by per-child recursion when
// either side is a Group, and through GJK (falling back to EPA on
// penetration) for everything else.
func Collide(a, b Shape, seed mgl32.Vec3) Result {
	if ga, ok := a.(*Group); ok {
		return collideGroup(ga, b, seed)
	}
	if gb, ok := b.(*Group); ok {
		return reverseResult(collideGroup(gb, a, seed.Mul(-1)))
	}

	if b.Kind() < a.Kind() {
		return reverseResult(Collide(b, a, seed.Mul(-1)))
	}

	if sa, ok := a.(*Sphere); ok {
		switch sb := b.(type) {
		case *Sphere:
			return collideSphereSphere(sa, sb)
		case *Box:
			return collideSphereBox(sa, sb)
		}
	}

	return collideGJKEPA(a, b, seed)
}

func reverseResult(r Result) Result {
	if !r.Colliding {
		return Result{Colliding: false, SeparatingAxis: r.SeparatingAxis.Mul(-1)}
	}
	return Result{
		Colliding: true,
		Normal:    r.Normal.Mul(-1),
		Depth:     r.Depth,
		PointOnA:  r.PointOnB,
		PointOnB:  r.PointOnA,
	}
}

// worldChild wraps a group's child shape with the group's world
// transform composed on top of the child's own, so it can be handed to
// Collide like any standalone shape.
type worldChild struct {
	inner  Shape
	parent mgl32.Mat4
}

func (w worldChild) Kind() Kind            { return w.inner.Kind() }
func (w worldChild) Transform() mgl32.Mat4 { return w.parent.Mul4(w.inner.Transform()) }
func (w worldChild) Margin() float32       { return w.inner.Margin() }
func (w worldChild) LocalSupport(d mgl32.Vec3) mgl32.Vec3 {
	return w.inner.LocalSupport(d)
}

// collideGroup tests other against every child of g in turn and keeps
// the deepest-penetrating contact, mirroring the per-child expansion
// the dispatcher performs so a composite shape doesn't get a single
// blurred support-based contact.
func collideGroup(g *Group, other Shape, seed mgl32.Vec3) Result {
	var best Result
	found := false
	for _, c := range g.Children {
		child := worldChild{inner: c, parent: g.Xform}
		r := Collide(child, other, seed)
		if r.Colliding && (!found || r.Depth > best.Depth) {
			best = r
			found = true
		}
		if !found {
			best = r
		}
	}
	return best
}

func collideGJKEPA(a, b Shape, seed mgl32.Vec3) Result {
	res, s, needsEPA := gjk(a, b, seed)
	if !needsEPA {
		return res
	}
	return epa(a, b, s)
}

// collideSphereSphere is the analytical fast path for two spheres:
// push A away from B along the line joining their centers.
func collideSphereSphere(sa, sb *Sphere) Result {
	posA := sa.WorldCenter()
	posB := sb.WorldCenter()
	ba := posA.Sub(posB)
	distSq := ba.Dot(ba)
	r := sa.Radius + sb.Radius

	if distSq > r*r {
		return Result{Colliding: false, SeparatingAxis: safeNormal(ba.Mul(-1))}
	}

	var dist float32
	if distSq == 0 {
		ba = mgl32.Vec3{0, 1, 0}
		dist = 0
	} else {
		dist = sqrtF32(distSq)
		ba = ba.Mul(1 / dist)
	}

	posOnA := posA.Sub(ba.Mul(sa.Radius))
	posOnB := posB.Add(ba.Mul(sb.Radius))
	return Result{Colliding: true, Normal: ba, Depth: r - dist, PointOnA: posOnA, PointOnB: posOnB}
}

// collideSphereBox is the analytical fast path for a sphere against a
// box, adapted from ODE's dSphereBox: clamp the sphere's center into
// the box's local frame, then either push out along the nearest face
// (center inside the box) or along the vector to the clamped point
// (center outside).
func collideSphereBox(s *Sphere, box *Box) Result {
	spherePos := s.WorldCenter()
	boxXform := box.Xform
	boxPos := boxXform.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()

	p := spherePos.Sub(boxPos)
	rot := mgl32.Mat3FromCols(boxXform.Col(0).Vec3(), boxXform.Col(1).Vec3(), boxXform.Col(2).Vec3())
	t := rot.Transpose().Mul3x1(p)

	lx, ly, lz := box.Half.X()+box.Mgn, box.Half.Y()+box.Mgn, box.Half.Z()+box.Mgn
	tx, ty, tz := t.X(), t.Y(), t.Z()
	onBorder := false

	if tx < -lx {
		tx, onBorder = -lx, true
	} else if tx > lx {
		tx, onBorder = lx, true
	}
	if ty < -ly {
		ty, onBorder = -ly, true
	} else if ty > ly {
		ty, onBorder = ly, true
	}
	if tz < -lz {
		tz, onBorder = -lz, true
	} else if tz > lz {
		tz, onBorder = lz, true
	}

	if !onBorder {
		dists := [3]float32{lx - absF32(tx), ly - absF32(ty), lz - absF32(tz)}
		comps := [3]float32{tx, ty, tz}
		minI, minDist := 0, dists[0]
		for i := 1; i < 3; i++ {
			if dists[i] < minDist {
				minDist = dists[i]
				minI = i
			}
		}

		normalLocal := mgl32.Vec3{}
		normalLocal[minI] = signF32(comps[minI])
		normal := rot.Mul3x1(normalLocal)

		posOnA := spherePos.Sub(normal.Mul(s.Radius))
		posOnB := spherePos.Add(normal.Mul(minDist))
		return Result{Colliding: true, Normal: normal, Depth: s.Radius + minDist, PointOnA: posOnA, PointOnB: posOnB}
	}

	q := rot.Mul3x1(mgl32.Vec3{tx, ty, tz})
	r := p.Sub(q)
	rLen := r.Len()
	depth := s.Radius - rLen
	if depth < 0 {
		return Result{Colliding: false, SeparatingAxis: safeNormal(r.Mul(-1))}
	}

	rn := safeNormal(r)
	posOnA := spherePos.Sub(rn.Mul(s.Radius))
	posOnB := spherePos.Sub(rn.Mul(s.Radius - depth))
	return Result{Colliding: true, Normal: rn, Depth: depth, PointOnA: posOnA, PointOnB: posOnB}
}

func absF32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func signF32(f float32) float32 {
	if f < 0 {
		return -1
	}
	return 1
}

func sqrtF32(f float32) float32 {
	return float32(math.Sqrt(float64(f)))
}
