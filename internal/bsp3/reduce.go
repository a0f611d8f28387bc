package bsp3

import (
	"github.com/go-gl/mathgl/mgl32"

	"solidcore/internal/config"
	"solidcore/internal/geom"
	"solidcore/internal/poly"
)

// ReduceBoundary groups faces by (plane, tag), removes T-vertices within
// each group, then runs every group's edges through a Reducer to merge
// adjacent coplanar fragments back into single polygons, mirroring
// BSP3::reduceBoundary. A final T-vertex pass cleans up seams left between
// groups.
func ReduceBoundary(faces []*poly.Polygon, precision, epsilon float32) []*poly.Polygon {
	var groups [][]*poly.Polygon

	for _, f := range faces {
		var dst *[]*poly.Polygon
		for i := range groups {
			g0 := groups[i][0]
			if planesEqual(g0.Plane, f.Plane, epsilon) && g0.Tag == f.Tag {
				dst = &groups[i]
				break
			}
		}
		if dst == nil {
			groups = append(groups, nil)
			dst = &groups[len(groups)-1]
		}
		*dst = append(*dst, f)
	}

	var result []*poly.Polygon
	for _, g := range groups {
		if len(g) == 1 {
			result = append(result, g[0])
			continue
		}

		poly.RemoveTVertices(g, precision, config.TVertexParametric())

		r := newReducer(precision)
		r.id = g[0].Tag
		for _, f := range g {
			n := len(f.Vertices)
			v0 := r.addVertex(f.Vertices[n-1])
			for i := 0; i < n; i++ {
				v1 := r.addVertex(f.Vertices[i])
				r.addEdge(v0, v1)
				v0 = v1
			}
		}
		r.reduce()
		result = append(result, r.computePolygons()...)
	}

	poly.RemoveTVertices(result, precision, config.TVertexParametric())
	return result
}

func planesEqual(a, b geom.Plane, epsilon float32) bool {
	return geom.EqualVec3(a.Normal, b.Normal, epsilon) && absF(a.D-b.D) < epsilon
}

// reducerEdge is a directed vertex pair plus the number of polygons in the
// group that shared it; an edge shared by two fragments (count 2) lies in
// the group's interior and is discarded before retracing the outer ring.
type reducerEdge struct {
	v0, v1 int
	count  int
}

func (e reducerEdge) equal(v0, v1 int) bool {
	return (e.v0 == v0 && e.v1 == v1) || (e.v1 == v0 && e.v0 == v1)
}

// reducer merges a set of coplanar polygon fragments sharing the same
// plane and tag back into the minimal polygon ring covering their union,
// ported from the original source's Reducer class: vertices and edges are
// deduplicated by exact-ish equality, edges seen twice cancel out as
// shared internal diagonals, and the remaining boundary edges are
// retraced into one or more closed polygons.
type reducer struct {
	id        string
	precision float32
	vertices  []mgl32.Vec3
	edges     []reducerEdge
}

func newReducer(precision float32) *reducer {
	return &reducer{precision: precision}
}

func (r *reducer) addVertex(v mgl32.Vec3) int {
	for i, existing := range r.vertices {
		if geom.EqualVec3(existing, v, r.precision) {
			return i
		}
	}
	r.vertices = append(r.vertices, v)
	return len(r.vertices) - 1
}

func (r *reducer) addEdge(v0, v1 int) int {
	for i := range r.edges {
		if r.edges[i].equal(v0, v1) {
			r.edges[i].count++
			return i
		}
	}
	r.edges = append(r.edges, reducerEdge{v0: v0, v1: v1, count: 1})
	return len(r.edges) - 1
}

// reduce drops every edge referenced more than once: those are interior
// diagonals shared by two fragments of the same merged region, and must
// not appear in the retraced outer boundary.
func (r *reducer) reduce() {
	out := r.edges[:0]
	for _, e := range r.edges {
		if e.count == 1 {
			out = append(out, e)
		}
	}
	r.edges = out
}

func (r *reducer) parallel(e0, e1 int) bool {
	dir0 := r.vertices[r.edges[e0].v1].Sub(r.vertices[r.edges[e0].v0]).Normalize()
	dir1 := r.vertices[r.edges[e1].v1].Sub(r.vertices[r.edges[e1].v0]).Normalize()
	return absF(dir0.Dot(dir1)-1.0) < 1e-5
}

// computePolygons retraces the surviving edges into closed polygon rings,
// walking from each edge's end vertex to the next edge starting there and
// collapsing collinear joins, exactly as the original source's
// Reducer::computePolygons does.
func (r *reducer) computePolygons() []*poly.Polygon {
	var faces []*poly.Polygon
	used := make([]bool, len(r.edges))
	numEdges := len(r.edges)

	var face *poly.Polygon
	var sedge, cedge int
	e := 0

	for numEdges > 0 {
		if used[e] {
			e++
			continue
		}

		if face == nil {
			sedge = e
			cedge = e
			face = &poly.Polygon{Tag: r.id}
			face.Vertices = append(face.Vertices, r.vertices[r.edges[e].v1])
			faces = append(faces, face)
			used[e] = true
			numEdges--
			e++
			continue
		}

		found := false
		for ne := e; ne < len(r.edges); ne++ {
			if used[ne] {
				continue
			}
			if r.edges[ne].v0 == r.edges[cedge].v1 {
				if r.parallel(cedge, ne) && len(face.Vertices) > 0 {
					face.Vertices = face.Vertices[:len(face.Vertices)-1]
				}
				face.Vertices = append(face.Vertices, r.vertices[r.edges[ne].v1])
				found = true
				cedge = ne
				used[ne] = true
				numEdges--
				break
			}
		}

		if !found || numEdges == 0 {
			if r.parallel(sedge, cedge) && len(face.Vertices) > 2 {
				face.Vertices = face.Vertices[:len(face.Vertices)-1]
			}
			face.ComputePlane()
			face = nil
		}
	}

	out := make([]*poly.Polygon, 0, len(faces))
	for _, f := range faces {
		if len(f.Vertices) >= 3 {
			out = append(out, f)
		}
	}
	return out
}
