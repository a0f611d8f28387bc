// Package blockgraph builds a watertight quad control mesh from a
// collection of oriented blocks: it links matching faces across
// neighboring blocks, reconciles their edge subdivisions, splits faces
// that carry their own subdivision grid, emits one quad per exterior
// half-edge (or per subface), and places Catmull-Clark initial vertex
// positions ready for a subdivision-surface renderer.
package blockgraph

import "github.com/go-gl/mathgl/mgl32"

// Face indices, matching the box-face convention used elsewhere in the
// core (+X,-X,+Y,-Y,+Z,-Z).
const (
	FacePosX = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
	numFaces = 6
)

// subdivDescriptor packs a face's own (sx, sy) subdivision grid, two bits
// each, into the low nibble: sx in bits 0-1, sy in bits 2-3. A raw value
// of 0 in either field means that axis is not split (count 1).
type subdivDescriptor byte

func (d subdivDescriptor) counts() (int, int) {
	sx := int(d&0x3) + 1
	sy := int((d>>2)&0x3) + 1
	return sx, sy
}

// Block is one hexahedron of the input fabric: its eight corner
// positions, the group it belongs to, which of its 12 edges are
// creases, which of its 6 faces accept bonding to a neighbor, and how
// many subfaces each face should be split into before being matched.
type Block struct {
	// Corners holds the block's eight corner positions, indexed by the
	// standard 3-bit (x,y,z) corner code also used by cornerOffsets. A
	// general hexahedron need not be a rectangular cuboid: any oriented
	// or sheared set of eight corners is valid input.
	Corners [8]mgl32.Vec3
	Group   int

	// Attraction holds a per-face bitmask; a face participates in
	// face-to-face linking only when (attrA|attrB) == attractionBond for
	// the candidate pair.
	Attraction [numFaces]byte

	// Force is a per-face link-strength threshold; two faces may bond
	// only when the squared distance between their centers is below the
	// sum of their two Force values. The spec treats this scalar as an
	// opaque input left to the caller.
	Force [numFaces]float32

	// Crease marks each of the 12 hexahedron edges (see edgeCorners) as a
	// crease for Catmull-Clark purposes.
	Crease [12]bool

	// EdgeSubdivisions holds, per hexahedron edge, the parametric
	// positions (in (0,1)) of any interior vertices already present on
	// that edge before matching begins.
	EdgeSubdivisions [12][]float32

	// FaceSubdivisions gives each face its own (sx, sy) subdivision grid;
	// a face with sx == sy == 1 (the zero value) is left as a single
	// quad, matching the zero value meaning "unsplit".
	FaceSubdivisions [numFaces]subdivDescriptor
}

// UniformFaceSubdivisions applies the same packed (sx, sy) descriptor
// byte to all six faces, the common case where a caller only needs one
// subdivision grid per block rather than one per face.
func UniformFaceSubdivisions(raw byte) [numFaces]subdivDescriptor {
	var out [numFaces]subdivDescriptor
	for i := range out {
		out[i] = subdivDescriptor(raw)
	}
	return out
}

// NewBoxCorners computes the eight corner positions of a hexahedron
// obtained by rotating an axis-aligned half-extent box by rot and
// translating it to center: the common case of a scene script
// describing a block as (center, half-extent, rotation) rather than
// listing all eight corners directly.
func NewBoxCorners(center, half mgl32.Vec3, rot mgl32.Quat) [8]mgl32.Vec3 {
	var c [8]mgl32.Vec3
	for i, o := range cornerOffsets {
		local := mgl32.Vec3{o.X() * half.X(), o.Y() * half.Y(), o.Z() * half.Z()}
		c[i] = center.Add(rot.Rotate(local))
	}
	return c
}

// attractionBond is the bit pattern two candidate faces' attraction
// masks OR together to, required for face-to-face linking.
const attractionBond = 2

// cornerOffsets gives the 8 hexahedron corners as +-1 multiples of Half,
// indexed by the standard 3-bit (x,y,z) corner code.
var cornerOffsets = [8]mgl32.Vec3{
	{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1}, {1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
}

// faceCornerCodes lists, for each face, its 4 corner codes in
// counter-clockwise order as seen from outside the block.
var faceCornerCodes = [numFaces][4]int{
	FacePosX: {1, 3, 7, 5},
	FaceNegX: {0, 4, 6, 2},
	FacePosY: {2, 6, 7, 3},
	FaceNegY: {0, 1, 5, 4},
	FacePosZ: {4, 5, 7, 6},
	FaceNegZ: {0, 2, 3, 1},
}

// edgeCorners lists the two corner codes of each of the 12 hexahedron
// edges, in a fixed canonical order used to index Crease and
// EdgeSubdivisions.
var edgeCorners = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {3, 7}, {2, 6},
}

func (b Block) corner(code int) mgl32.Vec3 {
	return b.Corners[code]
}

// boundsHalfExtent returns half the size of b's axis-aligned bounding
// box, used as a size-derived fallback wherever a scalar "how big is
// this block" input is needed (e.g. the default force threshold), since
// an oriented or sheared block no longer carries a single Half vector.
func (b Block) boundsHalfExtent() mgl32.Vec3 {
	min, max := b.Corners[0], b.Corners[0]
	for _, c := range b.Corners[1:] {
		min = componentMin(min, c)
		max = componentMax(max, c)
	}
	return max.Sub(min).Mul(0.5)
}

func componentMin(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{minf(a.X(), b.X()), minf(a.Y(), b.Y()), minf(a.Z(), b.Z())}
}

func componentMax(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{maxf(a.X(), b.X()), maxf(a.Y(), b.Y()), maxf(a.Z(), b.Z())}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// edgeIndex finds the canonical edge index for an unordered corner pair,
// or -1 if the pair is not adjacent.
func edgeIndex(c0, c1 int) int {
	for i, e := range edgeCorners {
		if (e[0] == c0 && e[1] == c1) || (e[0] == c1 && e[1] == c0) {
			return i
		}
	}
	return -1
}
