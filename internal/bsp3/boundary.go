package bsp3

import (
	"github.com/go-gl/mathgl/mgl32"

	"solidcore/internal/bsp2"
	"solidcore/internal/poly"
	"solidcore/internal/profiling"
)

// ComputeBoundary extracts the polygonal boundary of the solid: every
// internal node's coplanar faces are clipped against the opposite subtree
// so only the true surface survives, reconvexified through a throwaway
// BSP2 tree when a node accumulated more than one coplanar fragment, then
// the whole tree's surviving faces are collected. When reduced is true the
// result is run through ReduceBoundary to merge collinear fragments and
// remove T-vertices.
func (t *Tree) ComputeBoundary(reduced bool) []*poly.Polygon {
	defer profiling.Track("bsp3.ComputeBoundary")()
	updateBoundary(t.Root, t.Epsilon)

	var faces []*poly.Polygon
	retrieveBoundary(t.Root, &faces)

	if reduced {
		faces = ReduceBoundary(faces, t.Precision, t.Epsilon)
	}
	return faces
}

func updateBoundary(node *Node, epsilon float32) {
	if node.Leaf {
		return
	}
	updateBoundary(node.Back, epsilon)
	updateBoundary(node.Front, epsilon)

	var front, back []*poly.Polygon
	for _, f := range node.Coplanar {
		if f.Normal().Dot(node.Plane.Direction()) > 0 {
			front = append(front, f)
		} else {
			back = append(back, f)
		}
	}

	if len(front) > 0 {
		front = clipBoundary(node.Back, front, Out, epsilon)
		front = clipBoundary(node.Front, front, In, epsilon)
	}
	if len(back) > 0 {
		back = clipBoundary(node.Back, back, In, epsilon)
		back = clipBoundary(node.Front, back, Out, epsilon)
	}

	node.Coplanar = nil
	node.Coplanar = append(node.Coplanar, reconvexifyCoplanar(back, epsilon)...)
	node.Coplanar = append(node.Coplanar, reconvexifyCoplanar(front, epsilon)...)
}

// reconvexifyCoplanar merges a clipped-fragment list lying on the same
// plane back into its convex decomposition, the way the original source
// feeds multi-fragment back/front lists through a throwaway BSP2 before
// re-adding them, so adjacent fragments from different source faces don't
// linger as unnecessarily-split slivers.
func reconvexifyCoplanar(faces []*poly.Polygon, epsilon float32) []*poly.Polygon {
	if len(faces) <= 1 {
		return faces
	}

	u, v, origin := planeBasis(faces[0].Plane)
	tag := faces[0].Tag

	tree := bsp2.NewTree(epsilon)
	for i, f := range faces {
		pts2d := make([]mgl32.Vec2, len(f.Vertices))
		for j, p := range f.Vertices {
			pts2d[j] = project(p, u, v, origin)
		}
		if i == 0 {
			tree.Build(pts2d, f.Tag)
		} else {
			tree.Add(pts2d, f.Tag)
		}
	}

	bounds := make([]mgl32.Vec2, 0, len(faces)*4)
	for _, f := range faces {
		for _, p := range f.Vertices {
			bounds = append(bounds, project(p, u, v, origin))
		}
	}
	polys2d := tree.ComputeConvexPolygons(boundingBox(bounds, 1.0))

	out := make([]*poly.Polygon, 0, len(polys2d))
	for _, p2 := range polys2d {
		verts := make([]mgl32.Vec3, len(p2.Vertices))
		for i, p := range p2.Vertices {
			verts[i] = unproject(p, u, v, origin)
		}
		t := p2.Tag
		if t == "" {
			t = tag
		}
		out = append(out, poly.NewPolygon(verts, t))
	}
	return out
}

// retrieveBoundary collects every node's surviving coplanar faces in
// back-front-self order, mirroring BSP3::retrieveBoundary.
func retrieveBoundary(node *Node, out *[]*poly.Polygon) {
	if node.Leaf {
		return
	}
	retrieveBoundary(node.Back, out)
	retrieveBoundary(node.Front, out)
	*out = append(*out, node.Coplanar...)
}

// clipBoundary walks faces down node, splitting spanning faces at each
// internal plane, and discards any fragment that lands on a leaf whose
// label matches region: an IN-region clip drops fragments proven to be
// interior, an OUT-region clip drops fragments proven to be exterior,
// leaving only the fragments that lie on the true boundary between the
// two operands.
func clipBoundary(node *Node, faces []*poly.Polygon, region Label, epsilon float32) []*poly.Polygon {
	if node.Leaf {
		if node.Label == region {
			return nil
		}
		return faces
	}

	var front, back []*poly.Polygon
	for _, f := range faces {
		switch poly.Classify(node.Plane, f, epsilon) {
		case poly.ON, poly.ONFlipped:
			// A boundary fragment should never lie exactly on an interior
			// splitting plane; if it does, drop it, the same as the
			// reference BSP3::clipBoundary.
		case poly.FRONT:
			front = append(front, f)
		case poly.BACK:
			back = append(back, f)
		case poly.SPANNING:
			ff, bf := poly.Split(f, node.Plane, epsilon)
			if ff != nil {
				front = append(front, ff)
			}
			if bf != nil {
				back = append(back, bf)
			}
		}
	}

	back = clipBoundary(node.Back, back, region, epsilon)
	front = clipBoundary(node.Front, front, region, epsilon)

	out := make([]*poly.Polygon, 0, len(back)+len(front))
	out = append(out, back...)
	out = append(out, front...)
	return out
}
