// Package geom holds the 3D/4D vector, matrix, quaternion, plane and
// axis-aligned-box primitives shared by every other component of the core.
// Vectors, matrices and quaternions are mgl32 types directly; this package
// adds the plane and AABB types the engine needs on top of them.
package geom

import "github.com/go-gl/mathgl/mgl32"

// Plane is a unit normal n and signed distance d such that the plane is the
// set of points p satisfying n.Dot(p) + d == 0. A point is in front when
// n.Dot(p) + d > 0.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// NewPlaneFromNormalPoint builds a plane from a (not necessarily unit)
// normal and a point it passes through.
func NewPlaneFromNormalPoint(normal, point mgl32.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, D: -n.Dot(point)}
}

// NewPlaneFromPoints builds a plane through three non-collinear points,
// oriented so that the normal is (b-a) x (c-a).
func NewPlaneFromPoints(a, b, c mgl32.Vec3) Plane {
	n := b.Sub(a).Cross(c.Sub(a))
	return NewPlaneFromNormalPoint(n, a)
}

// Distance returns the signed distance from p to the plane.
func (p Plane) Distance(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Flipped returns the plane with its normal (and therefore its front/back
// sense) reversed.
func (p Plane) Flipped() Plane {
	return Plane{Normal: p.Normal.Mul(-1), D: -p.D}
}

// Direction returns the plane's unit normal, matching the original source's
// Planef::direction() accessor used by BSP3's orientation tests.
func (p Plane) Direction() mgl32.Vec3 {
	return p.Normal
}
