// Package poly implements the convex-polygon utilities BSP3 and BSP2 are
// built on: plane classification, plane splitting, and T-vertex removal.
package poly

import (
	"github.com/go-gl/mathgl/mgl32"

	"solidcore/internal/geom"
)

// Class is a polygon's classification against a plane.
type Class int

const (
	ON Class = iota
	ONFlipped
	FRONT
	BACK
	SPANNING
)

// Polygon is an ordered ring of 3D vertices plus the cached plane, outward
// normal and identifier tag that every fragment produced by splitting it
// inherits.
type Polygon struct {
	Vertices []mgl32.Vec3
	Plane    geom.Plane
	Tag      string
}

// NewPolygon builds a polygon from a vertex ring, computing its plane from
// the first three vertices.
func NewPolygon(vertices []mgl32.Vec3, tag string) *Polygon {
	p := &Polygon{Vertices: append([]mgl32.Vec3(nil), vertices...), Tag: tag}
	p.ComputePlane()
	return p
}

// ComputePlane recomputes the cached plane from the current vertex ring.
// Used after a polygon's vertices are mutated in place (insertion during
// T-vertex removal, collinear merges during retrace).
func (p *Polygon) ComputePlane() {
	if len(p.Vertices) < 3 {
		return
	}
	p.Plane = geom.NewPlaneFromPoints(p.Vertices[0], p.Vertices[1], p.Vertices[2])
}

// Normal returns the polygon's cached outward normal.
func (p *Polygon) Normal() mgl32.Vec3 {
	return p.Plane.Normal
}

// Reversed returns a copy of the polygon with its vertex winding (and hence
// its plane orientation) reversed; used to build the complement solid for
// CSG difference.
func (p *Polygon) Reversed() *Polygon {
	n := len(p.Vertices)
	out := make([]mgl32.Vec3, n)
	for i, v := range p.Vertices {
		out[n-1-i] = v
	}
	r := &Polygon{Vertices: out, Tag: p.Tag}
	r.ComputePlane()
	return r
}

// InsertVertex inserts v into the ring immediately after index i.
func (p *Polygon) InsertVertex(i int, v mgl32.Vec3) {
	p.Vertices = append(p.Vertices, mgl32.Vec3{})
	copy(p.Vertices[i+2:], p.Vertices[i+1:len(p.Vertices)-1])
	p.Vertices[i+1] = v
}

// RemoveVertex removes the vertex at index i.
func (p *Polygon) RemoveVertex(i int) {
	p.Vertices = append(p.Vertices[:i], p.Vertices[i+1:]...)
}

// Classify determines how poly relates to plane: ON/ONFlipped when poly's
// own plane coincides with plane within epsilon, BACK when every vertex
// is below +epsilon, FRONT when every vertex is above -epsilon, SPANNING
// otherwise.
func Classify(plane geom.Plane, p *Polygon, epsilon float32) Class {
	minDist := float32(1e30)
	maxDist := float32(-1e30)
	for _, v := range p.Vertices {
		d := plane.Distance(v)
		if d < minDist {
			minDist = d
		}
		if d > maxDist {
			maxDist = d
		}
	}

	absMin, absMax := minDist, maxDist
	if absMin < 0 {
		absMin = -absMin
	}
	if absMax < 0 {
		absMax = -absMax
	}

	if absMax < epsilon && absMin < epsilon {
		if p.Normal().Dot(plane.Direction()) > 0 {
			return ON
		}
		return ONFlipped
	}
	if maxDist < epsilon {
		return BACK
	}
	if minDist > -epsilon {
		return FRONT
	}
	return SPANNING
}

// Split cuts a SPANNING polygon by plane into a front fragment and a back
// fragment. Both fragments inherit p's tag and plane. A fragment with fewer
// than three vertices is discarded (returned as nil), matching the spec's
// "degenerate splits are silently discarded" failure semantics.
func Split(p *Polygon, plane geom.Plane, epsilon float32) (front, back *Polygon) {
	n := len(p.Vertices)
	var frontV, backV []mgl32.Vec3

	a := p.Vertices[n-1]
	distA := plane.Distance(a)

	for i := 0; i < n; i++ {
		b := p.Vertices[i]
		distB := plane.Distance(b)

		switch {
		case absF(distA) < epsilon && absF(distB) < epsilon:
			frontV = append(frontV, b)
			backV = append(backV, b)
		case distA >= -epsilon && distB >= -epsilon:
			frontV = append(frontV, b)
		case distA <= epsilon && distB <= epsilon:
			backV = append(backV, b)
		default:
			denom := plane.Normal.Dot(b.Sub(a))
			t := -distA / denom
			ip := a.Add(b.Sub(a).Mul(t))
			frontV = append(frontV, ip)
			backV = append(backV, ip)
			if distA < 0 {
				backV = append(backV, b)
			} else {
				frontV = append(frontV, b)
			}
		}

		a = b
		distA = distB
	}

	front = makeFragment(frontV, p)
	back = makeFragment(backV, p)
	return front, back
}

func makeFragment(vertices []mgl32.Vec3, parent *Polygon) *Polygon {
	if len(vertices) < 3 {
		return nil
	}
	// A fragment lies on its parent's plane, so it takes that plane as-is
	// rather than recomputing one from its own (possibly collinear) vertices.
	return &Polygon{Vertices: vertices, Plane: parent.Plane, Tag: parent.Tag}
}

func absF(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// IsConvex reports whether every interior angle of the polygon's ring turns
// the same way as its cached normal, i.e. the polygon has no reflex vertex.
func (p *Polygon) IsConvex() bool {
	n := len(p.Vertices)
	if n < 4 {
		return true
	}
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		c := p.Vertices[(i+2)%n]
		cross := b.Sub(a).Cross(c.Sub(b))
		if cross.Dot(p.Normal()) < 0 {
			return false
		}
	}
	return true
}

// Centroid returns the arithmetic mean of the polygon's vertices.
func (p *Polygon) Centroid() mgl32.Vec3 {
	var sum mgl32.Vec3
	for _, v := range p.Vertices {
		sum = sum.Add(v)
	}
	return sum.Mul(1.0 / float32(len(p.Vertices)))
}

// Clone returns a deep copy of the polygon.
func (p *Polygon) Clone() *Polygon {
	return &Polygon{
		Vertices: append([]mgl32.Vec3(nil), p.Vertices...),
		Plane:    p.Plane,
		Tag:      p.Tag,
	}
}
