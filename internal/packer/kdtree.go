// Package packer implements two rectangle-packing strategies for building
// texture/mesh atlases: a greedy binary kd-tree packer and a greedy
// class/group packer, both selectable by the caller and both able to grow
// the atlas and retry when a rectangle doesn't fit.
package packer

import "solidcore/internal/config"

// Size is an input rectangle's dimensions.
type Size struct {
	W, H int
}

// Placement is where an input rectangle landed, and whether it was
// rotated 90 degrees to fit.
type Placement struct {
	X, Y    int
	Flipped bool
}

// Result is the outcome of packing a batch of rectangles: the final atlas
// dimensions and one placement per input rectangle, in input order.
type Result struct {
	Width      int
	Height     int
	Placements []Placement
}

// kdNode is a node of the packer's binary tree: either an internal node
// with two children, or a leaf that is free, used, or (transiently,
// mid-split) about to become internal.
type kdNode struct {
	x, y, w, h int
	used       bool
	leaf       bool
	child      [2]*kdNode
}

// KDTreePacker packs rectangles into a single growable atlas using a
// binary tree of free/used regions. Each insertion descends the tree
// picking whichever subtree can contain the rectangle (with an optional
// 90-degree rotation), splitting a leaf once or twice to carve out the
// placed rectangle and whatever unused space remains.
type KDTreePacker struct {
	root        *kdNode
	width       int
	height      int
	requirePOT  bool
	allowRotate bool
}

// NewKDTreePacker creates a packer with an initial atlas size. requirePOT
// forces the atlas to stay power-of-two as it grows (doubling the smaller
// dimension on failure); otherwise the smaller dimension is extended by a
// fixed 64-pixel step per retry, not by the exact amount the rectangle
// that failed would need.
func NewKDTreePacker(width, height int, requirePOT, allowRotate bool) *KDTreePacker {
	if width <= 0 {
		width = config.PackerDefaultSize()
	}
	if height <= 0 {
		height = config.PackerDefaultSize()
	}
	p := &KDTreePacker{width: width, height: height, requirePOT: requirePOT, allowRotate: allowRotate}
	p.reset()
	return p
}

func (p *KDTreePacker) reset() {
	p.root = &kdNode{w: p.width, h: p.height, leaf: true}
}

// Pack places every size in order, growing and restarting from scratch
// whenever one doesn't fit, up to the packer's configured maximum atlas
// size. It reports the sizes that could not be placed even at the maximum
// size, rather than packing silently fewer than requested.
func (p *KDTreePacker) Pack(sizes []Size) (Result, []int) {
	for {
		placements, ok := p.tryPackAll(sizes)
		if ok {
			return Result{Width: p.width, Height: p.height, Placements: placements}, nil
		}
		if !p.grow() {
			return p.packBestEffort(sizes)
		}
	}
}

func (p *KDTreePacker) tryPackAll(sizes []Size) ([]Placement, bool) {
	p.reset()
	placements := make([]Placement, len(sizes))
	for i, s := range sizes {
		pl, ok := p.insert(s.W, s.H)
		if !ok {
			return nil, false
		}
		placements[i] = pl
	}
	return placements, true
}

func (p *KDTreePacker) packBestEffort(sizes []Size) (Result, []int) {
	p.reset()
	placements := make([]Placement, len(sizes))
	var failed []int
	for i, s := range sizes {
		pl, ok := p.insert(s.W, s.H)
		if !ok {
			failed = append(failed, i)
			continue
		}
		placements[i] = pl
	}
	return Result{Width: p.width, Height: p.height, Placements: placements}, failed
}

func (p *KDTreePacker) insert(w, h int) (Placement, bool) {
	n, flipped, ok := insertNode(p.root, w, h, p.allowRotate)
	if !ok {
		return Placement{}, false
	}
	return Placement{X: n.x, Y: n.y, Flipped: flipped}, true
}

func insertNode(n *kdNode, w, h int, allowRotate bool) (*kdNode, bool, bool) {
	if !n.leaf {
		if placed, flipped, ok := insertNode(n.child[0], w, h, allowRotate); ok {
			return placed, flipped, true
		}
		return insertNode(n.child[1], w, h, allowRotate)
	}

	if n.used {
		return nil, false, false
	}

	flipped := false
	if w > n.w || h > n.h {
		if allowRotate && h <= n.w && w <= n.h {
			w, h = h, w
			flipped = true
		} else {
			return nil, false, false
		}
	}

	if w == n.w && h == n.h {
		n.used = true
		return n, flipped, true
	}

	if w == n.w {
		splitHorizontal(n, h)
	} else if h == n.h {
		splitVertical(n, w)
	} else {
		dw := n.w - w
		dh := n.h - h
		if dw > dh {
			splitVerticalTwo(n, w)
		} else {
			splitHorizontalTwo(n, h)
		}
	}

	placed, _, ok := insertNode(n.child[0], w, h, allowRotate)
	return placed, flipped, ok
}

// splitHorizontal cuts a leaf whose width matches the placed rectangle
// into a top child (the placed rectangle) and a bottom leftover strip.
func splitHorizontal(n *kdNode, h int) {
	n.leaf = false
	n.child[0] = &kdNode{x: n.x, y: n.y, w: n.w, h: h, leaf: true}
	n.child[1] = &kdNode{x: n.x, y: n.y + h, w: n.w, h: n.h - h, leaf: true}
}

// splitVertical cuts a leaf whose height matches the placed rectangle
// into a left child (the placed rectangle) and a right leftover strip.
func splitVertical(n *kdNode, w int) {
	n.leaf = false
	n.child[0] = &kdNode{x: n.x, y: n.y, w: w, h: n.h, leaf: true}
	n.child[1] = &kdNode{x: n.x + w, y: n.y, w: n.w - w, h: n.h, leaf: true}
}

// splitVerticalTwo is the general-case split chosen when the leftover
// horizontal strip is wider than the leftover vertical strip: first cut a
// vertical line at w, then let the recursive insert into child[0] perform
// the horizontal split that carves out the placed rectangle.
func splitVerticalTwo(n *kdNode, w int) {
	n.leaf = false
	n.child[0] = &kdNode{x: n.x, y: n.y, w: w, h: n.h, leaf: true}
	n.child[1] = &kdNode{x: n.x + w, y: n.y, w: n.w - w, h: n.h, leaf: true}
}

// splitHorizontalTwo is the general-case split chosen when the leftover
// vertical strip is wider than or equal to the leftover horizontal strip.
func splitHorizontalTwo(n *kdNode, h int) {
	n.leaf = false
	n.child[0] = &kdNode{x: n.x, y: n.y, w: n.w, h: h, leaf: true}
	n.child[1] = &kdNode{x: n.x, y: n.y + h, w: n.w, h: n.h - h, leaf: true}
}

// grow enlarges the atlas, reporting false once the configured maximum is
// reached. Power-of-two mode doubles the smaller dimension; otherwise the
// smaller dimension is extended by a fixed step.
func (p *KDTreePacker) grow() bool {
	maxSize := config.PackerMaxSize()
	if p.width >= maxSize && p.height >= maxSize {
		return false
	}

	if p.requirePOT {
		if p.width <= p.height {
			p.width *= 2
		} else {
			p.height *= 2
		}
	} else {
		const step = 64
		if p.width <= p.height {
			p.width += step
		} else {
			p.height += step
		}
	}

	if p.width > maxSize {
		p.width = maxSize
	}
	if p.height > maxSize {
		p.height = maxSize
	}
	return true
}

// Stats reports atlas utilization after a Pack call: how much of the
// final atlas area the placed rectangles occupy, and how much is wasted.
type Stats struct {
	AtlasWidth  int
	AtlasHeight int
	UsedArea    int
	TotalArea   int
	WastedArea  int
	WastedFrac  float64
}

// ComputeStats derives utilization stats for a Result against the input
// sizes that produced it.
func ComputeStats(result Result, sizes []Size) Stats {
	total := result.Width * result.Height
	var used int
	for _, s := range sizes {
		used += s.W * s.H
	}
	wasted := total - used
	if wasted < 0 {
		wasted = 0
	}
	frac := 0.0
	if total > 0 {
		frac = float64(wasted) / float64(total)
	}
	return Stats{
		AtlasWidth:  result.Width,
		AtlasHeight: result.Height,
		UsedArea:    used,
		TotalArea:   total,
		WastedArea:  wasted,
		WastedFrac:  frac,
	}
}
