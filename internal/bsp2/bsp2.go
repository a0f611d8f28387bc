// Package bsp2 implements the 2D binary-space-partition helper BSP3 uses to
// reconvexify the polygons it merges at a single plane. It has the same
// node shape as BSP3 (splitting line, colinear edge fragments, back/front
// children, interned IN/OUT leaves) but works on edges of a simple 2D
// polygon instead of planes and 3D faces.
package bsp2

import "github.com/go-gl/mathgl/mgl32"

// Label distinguishes the two BSP2 leaf sentinels.
type Label int

const (
	Out Label = iota
	In
)

// Line is a 2D splitting line: the set of points p with Normal.Dot(p)+D==0.
type Line struct {
	Normal mgl32.Vec2
	D      float32
}

// Distance returns the signed distance from p to the line.
func (l Line) Distance(p mgl32.Vec2) float32 {
	return l.Normal.Dot(p) + l.D
}

// LineFromEdge builds the line through a->b, with the normal rotated 90°
// clockwise from the edge direction (so that the polygon interior,
// traversed counter-clockwise, lies on the line's back side, the IN side).
func LineFromEdge(a, b mgl32.Vec2) Line {
	dir := b.Sub(a).Normalize()
	n := mgl32.Vec2{dir.Y(), -dir.X()}
	return Line{Normal: n, D: -n.Dot(a)}
}

// Edge is a colinear fragment stored at a node: a 2-vertex segment plus the
// tag inherited from the polygon it came from.
type Edge struct {
	A, B mgl32.Vec2
	Tag  string
}

// Node is a BSP2 tree node: either an internal node with a splitting line
// and the colinear edges lying on it, or one of the two leaf sentinels.
type Node struct {
	Leaf  bool
	Label Label

	Line  Line
	Edges []Edge
	Back  *Node
	Front *Node
}

var (
	inLeaf  = &Node{Leaf: true, Label: In}
	outLeaf = &Node{Leaf: true, Label: Out}
)

// Tree is a 2D BSP holding the union of every polygon added to it.
type Tree struct {
	root    *Node
	epsilon float32
}

// NewTree creates an empty (entirely OUT) tree.
func NewTree(epsilon float32) *Tree {
	return &Tree{root: outLeaf, epsilon: epsilon}
}

type edgeClass int

const (
	classOn edgeClass = iota
	classOnFlipped
	classFront
	classBack
	classSpanning
)

func classifyEdge(line Line, a, b mgl32.Vec2, epsilon float32) edgeClass {
	da := line.Distance(a)
	db := line.Distance(b)
	absA, absB := absF32(da), absF32(db)
	if absA < epsilon && absB < epsilon {
		dir := b.Sub(a).Normalize()
		edgeNormal := mgl32.Vec2{dir.Y(), -dir.X()}
		if edgeNormal.Dot(line.Normal) > 0 {
			return classOn
		}
		return classOnFlipped
	}
	if da >= -epsilon && db >= -epsilon {
		return classFront
	}
	if da <= epsilon && db <= epsilon {
		return classBack
	}
	return classSpanning
}

func splitEdge(line Line, a, b mgl32.Vec2) mgl32.Vec2 {
	da := line.Distance(a)
	denom := line.Normal.Dot(b.Sub(a))
	t := -da / denom
	return a.Add(b.Sub(a).Mul(t))
}

// Build discards any existing content and builds the tree from a single
// simple polygon (given as an ordered, counter-clockwise vertex ring).
func (t *Tree) Build(vertices []mgl32.Vec2, tag string) {
	edges := ringEdges(vertices, tag)
	t.root = buildNode(edges, t.epsilon)
}

// Add unions another simple polygon into the tree.
func (t *Tree) Add(vertices []mgl32.Vec2, tag string) {
	edges := ringEdges(vertices, tag)
	if t.root == nil {
		t.root = outLeaf
	}
	t.root = mergeUnion(t.root, edges, t.epsilon)
}

func ringEdges(vertices []mgl32.Vec2, tag string) []Edge {
	n := len(vertices)
	edges := make([]Edge, 0, n)
	for i := 0; i < n; i++ {
		a := vertices[i]
		b := vertices[(i+1)%n]
		edges = append(edges, Edge{A: a, B: b, Tag: tag})
	}
	return edges
}

func buildNode(edges []Edge, epsilon float32) *Node {
	if len(edges) == 0 {
		return outLeaf
	}
	line := LineFromEdge(edges[0].A, edges[0].B)
	node := &Node{Line: line, Edges: []Edge{edges[0]}}

	var front, back []Edge
	sameOrient := true

	for _, e := range edges[1:] {
		switch classifyEdge(line, e.A, e.B, epsilon) {
		case classOn:
			node.Edges = append(node.Edges, e)
		case classOnFlipped:
			node.Edges = append(node.Edges, e)
			sameOrient = false
		case classFront:
			front = append(front, e)
		case classBack:
			back = append(back, e)
		case classSpanning:
			mid := splitEdge(line, e.A, e.B)
			if line.Distance(e.A) > 0 {
				front = append(front, Edge{A: e.A, B: mid, Tag: e.Tag})
				back = append(back, Edge{A: mid, B: e.B, Tag: e.Tag})
			} else {
				back = append(back, Edge{A: e.A, B: mid, Tag: e.Tag})
				front = append(front, Edge{A: mid, B: e.B, Tag: e.Tag})
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

func mergeUnion(receiver *Node, edges []Edge, epsilon float32) *Node {
	if receiver.Leaf {
		if receiver.Label == In {
			return receiver
		}
		return buildNode(edges, epsilon)
	}

	var front, back []Edge
	backPinned, frontPinned := false, false
	var backLabel, frontLabel Label

	for _, e := range edges {
		switch classifyEdge(receiver.Line, e.A, e.B, epsilon) {
		case classOn:
			receiver.Edges = append(receiver.Edges, e)
			backPinned, backLabel = true, In
			frontPinned, frontLabel = true, Out
		case classOnFlipped:
			receiver.Edges = append(receiver.Edges, e)
			backPinned, backLabel = true, Out
			frontPinned, frontLabel = true, In
		case classFront:
			front = append(front, e)
		case classBack:
			back = append(back, e)
		case classSpanning:
			mid := splitEdge(receiver.Line, e.A, e.B)
			if receiver.Line.Distance(e.A) > 0 {
				front = append(front, Edge{A: e.A, B: mid, Tag: e.Tag})
				back = append(back, Edge{A: mid, B: e.B, Tag: e.Tag})
			} else {
				back = append(back, Edge{A: e.A, B: mid, Tag: e.Tag})
				front = append(front, Edge{A: mid, B: e.B, Tag: e.Tag})
			}
		}
	}

	if len(back) == 0 {
		if receiver.Back.Leaf && backPinned && backLabel == In {
			receiver.Back = inLeaf
		}
	} else {
		receiver.Back = mergeUnion(receiver.Back, back, epsilon)
	}

	if len(front) == 0 {
		if receiver.Front.Leaf && frontPinned && frontLabel == In {
			receiver.Front = inLeaf
		}
	} else {
		receiver.Front = mergeUnion(receiver.Front, front, epsilon)
	}

	if receiver.Back.Leaf && receiver.Front.Leaf && receiver.Back.Label == receiver.Front.Label {
		if receiver.Back.Label == In {
			return inLeaf
		}
		return outLeaf
	}

	return receiver
}

func absF32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
