package bsp2

import "github.com/go-gl/mathgl/mgl32"

// Polygon is a convex 2D polygon fragment produced by ComputeConvexPolygons.
type Polygon struct {
	Vertices []mgl32.Vec2
	Tag      string
}

// ComputeConvexPolygons emits the convex decomposition of the union the
// tree currently represents. bounds is a convex polygon (typically a large
// box) enclosing every vertex ever added; it is recursively clipped by each
// splitting line on the way down, so every IN leaf reached is handed the
// convex cell cut out for it -- the standard way to read a region back out
// of a BSP tree.
func (t *Tree) ComputeConvexPolygons(bounds []mgl32.Vec2) []Polygon {
	var out []Polygon
	clipRecurse(t.root, bounds, "", &out)
	return out
}

func clipRecurse(node *Node, cell []mgl32.Vec2, tag string, out *[]Polygon) {
	if len(cell) < 3 {
		return
	}
	if node.Leaf {
		if node.Label == In {
			*out = append(*out, Polygon{Vertices: cell, Tag: tag})
		}
		return
	}

	cellTag := tag
	if len(node.Edges) > 0 {
		cellTag = node.Edges[0].Tag
	}

	frontCell := clipConvex(cell, node.Line, true)
	backCell := clipConvex(cell, node.Line, false)

	clipRecurse(node.Back, backCell, cellTag, out)
	clipRecurse(node.Front, frontCell, cellTag, out)
}

// clipConvex clips a convex polygon against a line using Sutherland-Hodgman,
// keeping the front half-plane (Distance >= 0) when keepFront is true, else
// the back half-plane.
func clipConvex(poly []mgl32.Vec2, line Line, keepFront bool) []mgl32.Vec2 {
	if len(poly) == 0 {
		return nil
	}
	var out []mgl32.Vec2
	n := len(poly)
	for i := 0; i < n; i++ {
		cur := poly[i]
		prev := poly[(i+n-1)%n]

		curD := line.Distance(cur)
		prevD := line.Distance(prev)
		if !keepFront {
			curD, prevD = -curD, -prevD
		}

		curIn := curD >= 0
		prevIn := prevD >= 0

		if curIn {
			if !prevIn {
				out = append(out, intersect(prev, cur, prevD, curD))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, intersect(prev, cur, prevD, curD))
		}
	}
	return out
}

func intersect(a, b mgl32.Vec2, da, db float32) mgl32.Vec2 {
	t := da / (da - db)
	return a.Add(b.Sub(a).Mul(t))
}
