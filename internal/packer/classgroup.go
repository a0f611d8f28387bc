package packer

import (
	"sort"

	"solidcore/internal/config"
)

// region is a free rectangle of a given size sitting at a given position,
// ordered within its group by age so the oldest (first-freed) region is
// always donated first.
type region struct {
	x, y int
	w, h int
}

// group holds every free region whose smaller side equals minSide, kept
// in insertion order.
type group struct {
	minSide int
	regions []region
}

// class holds every group sharing the same larger side, i.e. every free
// region whose max(w,h) equals maxSide.
type class struct {
	maxSide int
	groups  []group
}

// ClassGroupPacker packs rectangles by bucketing free regions into classes
// (by max side) and, within a class, groups (by min side), so a lookup for
// "a region at least this big" is a pair of sorted-list scans instead of a
// tree descent.
type ClassGroupPacker struct {
	width, height int
	classes       []class
}

// NewClassGroupPacker creates a packer with an initial atlas size and one
// free region covering it.
func NewClassGroupPacker(width, height int) *ClassGroupPacker {
	if width <= 0 {
		width = config.PackerDefaultSize()
	}
	if height <= 0 {
		height = config.PackerDefaultSize()
	}
	p := &ClassGroupPacker{width: width, height: height}
	p.reset()
	return p
}

func (p *ClassGroupPacker) reset() {
	p.classes = nil
	p.donate(region{x: 0, y: 0, w: p.width, h: p.height})
}

func maxMin(w, h int) (max, min int) {
	if w >= h {
		return w, h
	}
	return h, w
}

// donate files a free region into its class/group, inserting both in
// sorted order by side length.
func (p *ClassGroupPacker) donate(r region) {
	maxSide, minSide := maxMin(r.w, r.h)

	ci := sort.Search(len(p.classes), func(i int) bool { return p.classes[i].maxSide >= maxSide })
	if ci == len(p.classes) || p.classes[ci].maxSide != maxSide {
		p.classes = append(p.classes, class{})
		copy(p.classes[ci+1:], p.classes[ci:])
		p.classes[ci] = class{maxSide: maxSide}
	}
	c := &p.classes[ci]

	gi := sort.Search(len(c.groups), func(i int) bool { return c.groups[i].minSide >= minSide })
	if gi == len(c.groups) || c.groups[gi].minSide != minSide {
		c.groups = append(c.groups, group{})
		copy(c.groups[gi+1:], c.groups[gi:])
		c.groups[gi] = group{minSide: minSide}
	}
	g := &c.groups[gi]
	g.regions = append(g.regions, r)
}

// Pack sorts rectangles by max side descending (min side descending as
// tiebreak) and places each into the smallest donor region that fits,
// growing the atlas and restarting whenever one doesn't.
func (p *ClassGroupPacker) Pack(sizes []Size) (Result, []int) {
	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		maxI, minI := maxMin(sizes[order[i]].W, sizes[order[i]].H)
		maxJ, minJ := maxMin(sizes[order[j]].W, sizes[order[j]].H)
		if maxI != maxJ {
			return maxI > maxJ
		}
		return minI > minJ
	})

	for {
		placements, failed := p.tryPackAll(sizes, order)
		if failed == nil {
			return Result{Width: p.width, Height: p.height, Placements: placements}, nil
		}
		if !p.grow() {
			return Result{Width: p.width, Height: p.height, Placements: placements}, failed
		}
	}
}

func (p *ClassGroupPacker) tryPackAll(sizes []Size, order []int) ([]Placement, []int) {
	p.reset()
	placements := make([]Placement, len(sizes))
	var failed []int
	for _, idx := range order {
		s := sizes[idx]
		pl, ok := p.place(s.W, s.H)
		if !ok {
			failed = append(failed, idx)
			continue
		}
		placements[idx] = pl
	}
	return placements, failed
}

// place finds the first group whose min side covers the rectangle's
// smaller side within a class whose max side covers the rectangle's
// larger side, donates the oldest region in that group, and reinserts
// the leftover strips (right, then top) after splitting at most twice.
func (p *ClassGroupPacker) place(w, h int) (Placement, bool) {
	reqMax, reqMin := maxMin(w, h)

	for ci := range p.classes {
		c := &p.classes[ci]
		if c.maxSide < reqMax {
			continue
		}
		for gi := range c.groups {
			g := &c.groups[gi]
			if g.minSide < reqMin {
				continue
			}
			if len(g.regions) == 0 {
				continue
			}

			r := g.regions[0]
			g.regions = g.regions[1:]

			rw, rh := w, h
			flipped := false
			if rw > r.w || rh > r.h {
				rw, rh = rh, rw
				flipped = true
			}

			p.splitAndDonate(r, rw, rh)
			return Placement{X: r.x, Y: r.y, Flipped: flipped}, true
		}
	}
	return Placement{}, false
}

// splitAndDonate carves the placed rw x rh rectangle out of the donor
// region's (x, y) corner, donating the right strip and the top strip
// (at most two leftover regions) back into the dictionary.
func (p *ClassGroupPacker) splitAndDonate(r region, rw, rh int) {
	if r.w > rw {
		p.donate(region{x: r.x + rw, y: r.y, w: r.w - rw, h: rh})
	}
	if r.h > rh {
		p.donate(region{x: r.x, y: r.y + rh, w: r.w, h: r.h - rh})
	}
}

func (p *ClassGroupPacker) grow() bool {
	maxSize := config.PackerMaxSize()
	if p.width >= maxSize && p.height >= maxSize {
		return false
	}
	const step = 64
	if p.width <= p.height {
		p.width += step
	} else {
		p.height += step
	}
	if p.width > maxSize {
		p.width = maxSize
	}
	if p.height > maxSize {
		p.height = maxSize
	}
	return true
}
