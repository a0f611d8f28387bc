package bsp3

import (
	"solidcore/internal/poly"
	"solidcore/internal/profiling"
)

// Build discards any existing content and builds the tree from faces,
// first reconvexifying anything that fails IsConvex.
func (t *Tree) Build(faces []*poly.Polygon) {
	defer profiling.Track("bsp3.Build")()
	if len(faces) == 0 {
		t.Root = outLeaf
		return
	}
	convex := MakeConvex(faces, t.Epsilon)
	t.Root = buildNode(convex, t.Epsilon)
}

// Add unions faces into the solid.
func (t *Tree) Add(faces []*poly.Polygon) {
	defer profiling.Track("bsp3.Add")()
	if len(faces) == 0 {
		return
	}
	convex := MakeConvex(faces, t.Epsilon)
	t.opRoot = buildNode(convex, t.Epsilon)
	t.Root = incrementalOp(Union, t.Root, convex, t.opRoot, t.Epsilon)
	t.opRoot = nil
}

// Intersect cuts the solid down to its intersection with faces.
func (t *Tree) Intersect(faces []*poly.Polygon) {
	defer profiling.Track("bsp3.Intersect")()
	if len(faces) == 0 {
		t.Root = outLeaf
		return
	}
	convex := MakeConvex(faces, t.Epsilon)
	t.opRoot = buildNode(convex, t.Epsilon)
	t.Root = incrementalOp(Intersection, t.Root, convex, t.opRoot, t.Epsilon)
	t.opRoot = nil
}

// Remove subtracts the solid bounded by faces, implemented as an
// intersection with faces' complement (reversed winding), matching the
// original source's remove(): invert, then intersect.
func (t *Tree) Remove(faces []*poly.Polygon) {
	defer profiling.Track("bsp3.Remove")()
	if len(faces) == 0 {
		return
	}
	inverted := make([]*poly.Polygon, len(faces))
	for i, f := range faces {
		inverted[i] = f.Reversed()
	}
	convex := MakeConvex(inverted, t.Epsilon)
	t.opRoot = buildNode(convex, t.Epsilon)
	t.Root = incrementalOp(Intersection, t.Root, convex, t.opRoot, t.Epsilon)
	t.opRoot = nil
}
