// Package collision implements shape-vs-shape contact generation via
// GJK (separation / shallow penetration) and EPA (penetration depth and
// contact manifold), plus a dispatcher with analytical fast paths for the
// common sphere/sphere and sphere/box pairs.
package collision

import "github.com/go-gl/mathgl/mgl32"

// Kind orders the shape variants for the dispatcher's lower-typed-first
// swap rule.
type Kind int

const (
	KindSphere Kind = iota
	KindBox
	KindCylinder
	KindCone
	KindConvexHull
	KindHullOfSpheres
	KindTriangleMesh
	KindGroup
)

// Shape is the closed sum type every collision primitive implements:
// a world transform, a support mapping in the shape's local frame, and a
// non-negative margin that inflates the shape uniformly along the support
// direction (the rounding radius used by GJK/EPA's Minkowski sum).
type Shape interface {
	Kind() Kind
	Transform() mgl32.Mat4
	Margin() float32
	// LocalSupport returns argmax_{p in S} d.Dot(p) for a shape expressed
	// in its own local frame; Support (below) adds the transform and
	// margin on top.
	LocalSupport(d mgl32.Vec3) mgl32.Vec3
}

// Support evaluates support(S, T, d) = T(localSupport(d/|d|)) + m*d/|d|,
// the effective support point used by GJK once a shape's margin and
// world transform are taken into account.
func Support(s Shape, d mgl32.Vec3) mgl32.Vec3 {
	if d.Len() < 1e-12 {
		d = mgl32.Vec3{1, 0, 0}
	} else {
		d = d.Normalize()
	}
	t := s.Transform()
	local := s.LocalSupport(invDirection(t, d))
	world := t.Mul4x1(mgl32.Vec4{local.X(), local.Y(), local.Z(), 1}).Vec3()
	return world.Add(d.Mul(s.Margin()))
}

// invDirection maps a world-space direction back into a shape's local
// frame, ignoring translation -- only the transform's linear part matters
// for choosing which local vertex maximizes the dot product.
func invDirection(t mgl32.Mat4, d mgl32.Vec3) mgl32.Vec3 {
	m3 := mgl32.Mat3FromCols(t.Col(0).Vec3(), t.Col(1).Vec3(), t.Col(2).Vec3())
	inv := m3.Transpose()
	return inv.Mul3x1(d)
}

// Sphere is a ball of radius Radius centered at the origin of its local
// frame; margin is folded directly into Radius rather than stored
// separately since the two are interchangeable for a sphere.
type Sphere struct {
	Xform  mgl32.Mat4
	Radius float32
}

func (s *Sphere) Kind() Kind                        { return KindSphere }
func (s *Sphere) Transform() mgl32.Mat4             { return s.Xform }
func (s *Sphere) Margin() float32                   { return 0 }
func (s *Sphere) LocalSupport(d mgl32.Vec3) mgl32.Vec3 {
	if d.Len() < 1e-12 {
		return mgl32.Vec3{s.Radius, 0, 0}
	}
	return d.Normalize().Mul(s.Radius)
}

// WorldCenter returns the sphere's center in world space.
func (s *Sphere) WorldCenter() mgl32.Vec3 {
	return s.Xform.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

// Box is an axis-aligned (in its own local frame) box with the given
// half-extents.
type Box struct {
	Xform mgl32.Mat4
	Half  mgl32.Vec3
	Mgn   float32
}

func (b *Box) Kind() Kind            { return KindBox }
func (b *Box) Transform() mgl32.Mat4 { return b.Xform }
func (b *Box) Margin() float32       { return b.Mgn }
func (b *Box) LocalSupport(d mgl32.Vec3) mgl32.Vec3 {
	sign := func(f float32) float32 {
		if f < 0 {
			return -1
		}
		return 1
	}
	return mgl32.Vec3{
		sign(d.X()) * b.Half.X(),
		sign(d.Y()) * b.Half.Y(),
		sign(d.Z()) * b.Half.Z(),
	}
}

// Cylinder stands along the local Y axis with the given radius and half
// height.
type Cylinder struct {
	Xform      mgl32.Mat4
	Radius     float32
	HalfHeight float32
	Mgn        float32
}

func (c *Cylinder) Kind() Kind            { return KindCylinder }
func (c *Cylinder) Transform() mgl32.Mat4 { return c.Xform }
func (c *Cylinder) Margin() float32       { return c.Mgn }
func (c *Cylinder) LocalSupport(d mgl32.Vec3) mgl32.Vec3 {
	radial := mgl32.Vec2{d.X(), d.Z()}
	y := c.HalfHeight
	if d.Y() < 0 {
		y = -c.HalfHeight
	}
	if radial.Len() < 1e-12 {
		return mgl32.Vec3{0, y, 0}
	}
	radial = radial.Normalize().Mul(c.Radius)
	return mgl32.Vec3{radial.X(), y, radial.Y()}
}

// Cone stands along the local Y axis, apex up, with the given base
// radius and half height.
type Cone struct {
	Xform      mgl32.Mat4
	Radius     float32
	HalfHeight float32
	Mgn        float32
}

func (c *Cone) Kind() Kind            { return KindCone }
func (c *Cone) Transform() mgl32.Mat4 { return c.Xform }
func (c *Cone) Margin() float32       { return c.Mgn }
func (c *Cone) LocalSupport(d mgl32.Vec3) mgl32.Vec3 {
	apex := mgl32.Vec3{0, c.HalfHeight, 0}
	radial := mgl32.Vec2{d.X(), d.Z()}
	base := mgl32.Vec3{0, -c.HalfHeight, 0}
	if radial.Len() > 1e-12 {
		r := radial.Normalize().Mul(c.Radius)
		base = mgl32.Vec3{r.X(), -c.HalfHeight, r.Y()}
	}
	if d.Dot(apex) > d.Dot(base) {
		return apex
	}
	return base
}

// ConvexHull is an explicit vertex cloud; support is a linear scan, which
// is adequate for the small hulls the core deals with (tens of vertices).
type ConvexHull struct {
	Xform    mgl32.Mat4
	Vertices []mgl32.Vec3
	Mgn      float32
}

func (h *ConvexHull) Kind() Kind            { return KindConvexHull }
func (h *ConvexHull) Transform() mgl32.Mat4 { return h.Xform }
func (h *ConvexHull) Margin() float32       { return h.Mgn }
func (h *ConvexHull) LocalSupport(d mgl32.Vec3) mgl32.Vec3 {
	best := h.Vertices[0]
	bestDot := d.Dot(best)
	for _, v := range h.Vertices[1:] {
		if dot := d.Dot(v); dot > bestDot {
			bestDot = dot
			best = v
		}
	}
	return best
}

// HullOfSpheres is a cluster of spheres at fixed local offsets; support
// picks whichever sphere's support point projects furthest along d.
type HullOfSpheres struct {
	Xform   mgl32.Mat4
	Centers []mgl32.Vec3
	Radii   []float32
}

func (h *HullOfSpheres) Kind() Kind            { return KindHullOfSpheres }
func (h *HullOfSpheres) Transform() mgl32.Mat4 { return h.Xform }
func (h *HullOfSpheres) Margin() float32       { return 0 }
func (h *HullOfSpheres) LocalSupport(d mgl32.Vec3) mgl32.Vec3 {
	nd := d
	if nd.Len() > 1e-12 {
		nd = nd.Normalize()
	}
	best := h.Centers[0].Add(nd.Mul(h.Radii[0]))
	bestDot := d.Dot(best)
	for i := 1; i < len(h.Centers); i++ {
		p := h.Centers[i].Add(nd.Mul(h.Radii[i]))
		if dot := d.Dot(p); dot > bestDot {
			bestDot = dot
			best = p
		}
	}
	return best
}

// TriangleMeshLeaf is a single BIH leaf's triangle soup, treated as a
// convex hull over its own vertices for support purposes -- collision
// against a full concave mesh is resolved leaf by leaf by the caller.
type TriangleMeshLeaf struct {
	Xform    mgl32.Mat4
	Vertices []mgl32.Vec3
	Mgn      float32
}

func (m *TriangleMeshLeaf) Kind() Kind            { return KindTriangleMesh }
func (m *TriangleMeshLeaf) Transform() mgl32.Mat4 { return m.Xform }
func (m *TriangleMeshLeaf) Margin() float32       { return m.Mgn }
func (m *TriangleMeshLeaf) LocalSupport(d mgl32.Vec3) mgl32.Vec3 {
	best := m.Vertices[0]
	bestDot := d.Dot(best)
	for _, v := range m.Vertices[1:] {
		if dot := d.Dot(v); dot > bestDot {
			bestDot = dot
			best = v
		}
	}
	return best
}

// Group is a composite shape: a world transform plus a list of child
// shapes expressed in the group's local frame. The dispatcher recurses
// into groups; LocalSupport is the support mapping over all children,
// used wherever a group is reached without that expansion.
type Group struct {
	Xform    mgl32.Mat4
	Children []Shape
}

func (g *Group) Kind() Kind            { return KindGroup }
func (g *Group) Transform() mgl32.Mat4 { return g.Xform }
func (g *Group) Margin() float32       { return 0 }
func (g *Group) LocalSupport(d mgl32.Vec3) mgl32.Vec3 {
	var best mgl32.Vec3
	bestDot := float32(-1e30)
	for _, c := range g.Children {
		p := Support(c, d)
		if dot := d.Dot(p); dot > bestDot {
			bestDot = dot
			best = p
		}
	}
	return best
}
