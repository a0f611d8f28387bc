package bsp3

import (
	"github.com/go-gl/mathgl/mgl32"

	"solidcore/internal/poly"
)

// Operation is the boolean operation incrementalOp folds a new batch of
// faces into an existing tree with.
type Operation int

const (
	Union Operation = iota
	Intersection
)

// buildNode builds a fresh subtree from a convex-only face set, in the
// style of BSP3::buildNode: the first face's plane becomes the node's
// splitting plane, every other face is classified against it and routed to
// ON/back/front, spanning faces are split first.
func buildNode(faces []*poly.Polygon, epsilon float32) *Node {
	plane := faces[0].Plane
	node := &Node{Plane: plane, Coplanar: []*poly.Polygon{faces[0]}}

	var front, back []*poly.Polygon
	sameOrient := true

	for _, f := range faces[1:] {
		switch poly.Classify(plane, f, epsilon) {
		case poly.ON:
			node.Coplanar = append(node.Coplanar, f)
		case poly.ONFlipped:
			node.Coplanar = append(node.Coplanar, f)
			sameOrient = false
		case poly.FRONT:
			front = append(front, f)
		case poly.BACK:
			back = append(back, f)
		case poly.SPANNING:
			ff, bf := poly.Split(f, plane, epsilon)
			if ff != nil {
				front = append(front, ff)
			}
			if bf != nil {
				back = append(back, bf)
			}
		}
	}

	if len(back) == 0 {
		if sameOrient {
			node.Back = inLeaf
		} else {
			node.Back = outLeaf
		}
	} else {
		node.Back = buildNode(back, epsilon)
	}

	if len(front) == 0 {
		if sameOrient {
			node.Front = outLeaf
		} else {
			node.Front = inLeaf
		}
	} else {
		node.Front = buildNode(front, epsilon)
	}

	return node
}

// incrementalOp folds faces (already convex, already classified as the
// opRoot tree) into node under op, mirroring BSP3::incrementalOp. Regions
// that receive no faces this round keep whatever leaf/subtree they already
// had unless op demands forcing them to the opposite label, decided by
// testing a representative point of the node against opRoot -- the tree
// built fresh from this round's incoming faces.
func incrementalOp(op Operation, node *Node, faces []*poly.Polygon, opRoot *Node, epsilon float32) *Node {
	if node.Leaf {
		switch op {
		case Union:
			if node.Label == In {
				return node
			}
			return buildNode(faces, epsilon)
		case Intersection:
			if node.Label == In {
				return buildNode(faces, epsilon)
			}
			return node
		}
		return node
	}

	var front, back []*poly.Polygon
	backKnown, frontKnown := false, false
	var backLabel, frontLabel Label

	for _, f := range faces {
		switch poly.Classify(node.Plane, f, epsilon) {
		case poly.ON:
			node.Coplanar = append(node.Coplanar, f)
			backKnown, backLabel = true, In
			frontKnown, frontLabel = true, Out
		case poly.ONFlipped:
			node.Coplanar = append(node.Coplanar, f)
			backKnown, backLabel = true, Out
			frontKnown, frontLabel = true, In
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

	var pt = representativePoint(node)

	if len(back) == 0 {
		if !backKnown {
			backLabel = PointInSolid(opRoot, pt)
		}
		switch op {
		case Union:
			if backLabel == In {
				node.Back = inLeaf
			}
		case Intersection:
			if backLabel == Out {
				node.Back = outLeaf
			}
		}
	} else {
		node.Back = incrementalOp(op, node.Back, back, opRoot, epsilon)
	}

	if len(front) == 0 {
		if !frontKnown {
			frontLabel = PointInSolid(opRoot, pt)
		}
		switch op {
		case Union:
			if frontLabel == In {
				node.Front = inLeaf
			}
		case Intersection:
			if frontLabel == Out {
				node.Front = outLeaf
			}
		}
	} else {
		node.Front = incrementalOp(op, node.Front, front, opRoot, epsilon)
	}

	if node.Back.Leaf && node.Front.Leaf && node.Back.Label == node.Front.Label {
		return node.Back
	}

	return node
}

func representativePoint(node *Node) mgl32.Vec3 {
	if len(node.Coplanar) == 0 {
		return mgl32.Vec3{}
	}
	return node.Coplanar[0].Centroid()
}
