package geom

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned bounding box described by its min and max corners.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyAABB returns a box with min at +1e30 and max at -1e30 on every
// axis, so that the first Extend call establishes real bounds.
func EmptyAABB() AABB {
	inf := float32(1e30)
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// Extend grows the box to also contain p.
func (b AABB) Extend(p mgl32.Vec3) AABB {
	return AABB{
		Min: mgl32.Vec3{min32(b.Min.X(), p.X()), min32(b.Min.Y(), p.Y()), min32(b.Min.Z(), p.Z())},
		Max: mgl32.Vec3{max32(b.Max.X(), p.X()), max32(b.Max.Y(), p.Y()), max32(b.Max.Z(), p.Z())},
	}
}

// Union returns the smallest box containing both a and b.
func Union(a, b AABB) AABB {
	return AABB{
		Min: mgl32.Vec3{min32(a.Min.X(), b.Min.X()), min32(a.Min.Y(), b.Min.Y()), min32(a.Min.Z(), b.Min.Z())},
		Max: mgl32.Vec3{max32(a.Max.X(), b.Max.X()), max32(a.Max.Y(), b.Max.Y()), max32(a.Max.Z(), b.Max.Z())},
	}
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extent returns the full (not half) size of the box along each axis.
func (b AABB) Extent() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Padded returns the box grown uniformly by frac * extent on every side,
// matching the block graph's 25%-of-own-extent padding used for the
// neighborhood grid.
func (b AABB) Padded(frac float32) AABB {
	ext := b.Extent()
	pad := mgl32.Vec3{ext.X() * frac, ext.Y() * frac, ext.Z() * frac}
	return AABB{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
}

// Overlaps reports whether a and b intersect; the bounds are inclusive,
// so boxes that only touch on a face, edge or corner also overlap.
func Overlaps(a, b AABB) bool {
	return a.Min.X() <= b.Max.X() && a.Max.X() >= b.Min.X() &&
		a.Min.Y() <= b.Max.Y() && a.Max.Y() >= b.Min.Y() &&
		a.Min.Z() <= b.Max.Z() && a.Max.Z() >= b.Min.Z()
}

// Contains reports whether p lies within the box (inclusive).
func (b AABB) Contains(p mgl32.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
