// Package bsp3 implements the 3D binary-space-partition engine: solids as
// trees of oriented planes, incremental CSG merge, and boundary extraction
// with reduction. See SPEC_FULL.md section 4 for the operation list.
package bsp3

import (
	"github.com/go-gl/mathgl/mgl32"

	"solidcore/internal/geom"
	"solidcore/internal/poly"
	"solidcore/internal/profiling"
)

// Label distinguishes the two interned BSP3 leaf sentinels.
type Label int

const (
	Out Label = iota
	In
)

// Node is either an internal node (a splitting plane, the polygons lying on
// it, and back/front children) or one of the two leaf sentinels. Leaves are
// interned: every tree shares the same two Node values for IN and OUT, so
// leaf identity comparison (`a == b`) is a valid "same region" test.
type Node struct {
	Leaf  bool
	Label Label

	Plane    geom.Plane
	Coplanar []*poly.Polygon
	Back     *Node
	Front    *Node
}

var (
	inLeaf  = &Node{Leaf: true, Label: In}
	outLeaf = &Node{Leaf: true, Label: Out}
)

// InLeaf returns the interned IN sentinel.
func InLeaf() *Node { return inLeaf }

// OutLeaf returns the interned OUT sentinel.
func OutLeaf() *Node { return outLeaf }

// Tree is a BSP3 solid: a root, an auxiliary operand root used transiently
// during incremental merges, and the precision/epsilon tolerance pair.
type Tree struct {
	Root      *Node
	opRoot    *Node
	Precision float32
	Epsilon   float32
}

// NewTree creates an empty (entirely OUT) tree with the given tolerances.
func NewTree(precision, epsilon float32) *Tree {
	return &Tree{Root: outLeaf, opRoot: outLeaf, Precision: precision, Epsilon: epsilon}
}

// PointInSolid descends from root, following the front child when pt is in
// front of a node's plane and the back child otherwise, returning the
// label of the leaf reached.
func PointInSolid(root *Node, pt mgl32.Vec3) Label {
	defer profiling.Track("bsp3.PointInSolid")()
	n := root
	for !n.Leaf {
		if n.Plane.Distance(pt) > 0 {
			n = n.Front
		} else {
			n = n.Back
		}
	}
	return n.Label
}

// PointInSolid reports whether pt lies inside the solid represented by t.
func (t *Tree) PointInSolid(pt mgl32.Vec3) Label {
	return PointInSolid(t.Root, pt)
}
