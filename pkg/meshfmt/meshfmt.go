// Package meshfmt is the core's mesh interchange format: per-vertex
// positions and skin weights, per-corner normals/tangents/UVs, and
// triangle indices partitioned into per-material patches with index
// width chosen per patch.
package meshfmt

import "github.com/go-gl/mathgl/mgl32"

// BoneWeights is one vertex's skinning data: up to four bone influences,
// their weights, and how many of the four slots are actually used.
type BoneWeights struct {
	Weights [4]float32
	Indices [4]uint16
	Count   uint8
}

// Corner is one triangle corner's per-corner attributes. Tangent.W
// carries handedness (+1 or -1).
type Corner struct {
	VertexIndex uint32
	Normal      mgl32.Vec3
	Tangent     mgl32.Vec4
	UV          mgl32.Vec2
}

// Patch is the triangle list for one material, indexed either as
// 16-bit or 32-bit depending on which slice is populated.
type Patch struct {
	Material  string
	Indices16 []uint16
	Indices32 []uint32
}

// Is32Bit reports whether this patch uses the 32-bit index slice.
func (p Patch) Is32Bit() bool { return p.Indices32 != nil }

// Len returns the index count regardless of width.
func (p Patch) Len() int {
	if p.Is32Bit() {
		return len(p.Indices32)
	}
	return len(p.Indices16)
}

// Mesh is a complete interchange mesh: one position and optional skin
// per vertex, one set of shading attributes per triangle corner, and
// indices grouped into material patches.
type Mesh struct {
	Positions []mgl32.Vec3
	Bones     []BoneWeights
	Corners   []Corner
	Patches   []Patch
}

// maxUint16Index is the largest vertex count a 16-bit index can address.
const maxUint16Index = 1 << 16

// NewPatch builds a Patch for material, choosing a 16-bit or 32-bit
// index slice depending on whether vertexCount fits in 16 bits.
func NewPatch(material string, indices []uint32, vertexCount int) Patch {
	if vertexCount > maxUint16Index {
		return Patch{Material: material, Indices32: indices}
	}
	narrow := make([]uint16, len(indices))
	for i, idx := range indices {
		narrow[i] = uint16(idx)
	}
	return Patch{Material: material, Indices16: narrow}
}
