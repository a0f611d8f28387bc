package bsp3

import (
	"github.com/go-gl/mathgl/mgl32"

	"solidcore/internal/bsp2"
	"solidcore/internal/geom"
	"solidcore/internal/poly"
)

// planeBasis returns an orthonormal (u, v) pair spanning plane and a point
// on the plane to use as the projection origin.
func planeBasis(p geom.Plane) (mgl32.Vec3, mgl32.Vec3, mgl32.Vec3) {
	n := p.Normal
	origin := n.Mul(-p.D)

	up := mgl32.Vec3{0, 1, 0}
	if absF(n.Dot(up)) > 0.99 {
		up = mgl32.Vec3{1, 0, 0}
	}
	u := n.Cross(up).Normalize()
	v := n.Cross(u).Normalize()
	return u, v, origin
}

func project(p mgl32.Vec3, u, vAxis, origin mgl32.Vec3) mgl32.Vec2 {
	d := p.Sub(origin)
	return mgl32.Vec2{d.Dot(u), d.Dot(vAxis)}
}

func unproject(p mgl32.Vec2, u, vAxis, origin mgl32.Vec3) mgl32.Vec3 {
	return origin.Add(u.Mul(p.X())).Add(vAxis.Mul(p.Y()))
}

func absF(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// MakeConvex replaces every non-convex polygon in faces with its convex
// decomposition, computed via a throwaway BSP2 tree, mirroring the original
// source's makeConvex(): any polygon that fails isConvex() is rebuilt
// through bsp2.Tree.Build/ComputeConvexPolygons instead of being handed to
// BSP3 as-is (BSP3's own node-building logic assumes convex input).
func MakeConvex(faces []*poly.Polygon, epsilon float32) []*poly.Polygon {
	out := make([]*poly.Polygon, 0, len(faces))
	for _, f := range faces {
		if f.IsConvex() {
			out = append(out, f)
			continue
		}
		out = append(out, reconvexifyPolygon(f, epsilon)...)
	}
	return out
}

func reconvexifyPolygon(f *poly.Polygon, epsilon float32) []*poly.Polygon {
	u, v, origin := planeBasis(f.Plane)
	pts2d := make([]mgl32.Vec2, len(f.Vertices))
	for i, p := range f.Vertices {
		pts2d[i] = project(p, u, v, origin)
	}

	tree := bsp2.NewTree(epsilon)
	tree.Build(pts2d, f.Tag)

	bounds := boundingBox(pts2d, 1.0)
	polys2d := tree.ComputeConvexPolygons(bounds)

	out := make([]*poly.Polygon, 0, len(polys2d))
	for _, p2 := range polys2d {
		verts := make([]mgl32.Vec3, len(p2.Vertices))
		for i, p := range p2.Vertices {
			verts[i] = unproject(p, u, v, origin)
		}
		tag := p2.Tag
		if tag == "" {
			tag = f.Tag
		}
		out = append(out, poly.NewPolygon(verts, tag))
	}
	return out
}

func boundingBox(pts []mgl32.Vec2, margin float32) []mgl32.Vec2 {
	minX, minY := pts[0].X(), pts[0].Y()
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		if p.X() < minX {
			minX = p.X()
		}
		if p.X() > maxX {
			maxX = p.X()
		}
		if p.Y() < minY {
			minY = p.Y()
		}
		if p.Y() > maxY {
			maxY = p.Y()
		}
	}
	minX -= margin
	minY -= margin
	maxX += margin
	maxY += margin
	return []mgl32.Vec2{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}}
}
