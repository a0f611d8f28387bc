package meshfmt_test

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"solidcore/pkg/meshfmt"
)

func TestNewPatchChoosesIndexWidthByVertexCount(t *testing.T) {
	small := meshfmt.NewPatch("dirt", []uint32{0, 1, 2}, 100)
	require.False(t, small.Is32Bit())
	require.Equal(t, 3, small.Len())

	large := meshfmt.NewPatch("terrain", []uint32{0, 1, 70000}, 70001)
	require.True(t, large.Is32Bit())
	require.Equal(t, 3, large.Len())
}

func TestEncodeDecodeRoundTripsGeometryAndSkinning(t *testing.T) {
	mesh := &meshfmt.Mesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Bones: []meshfmt.BoneWeights{
			{Weights: [4]float32{1, 0, 0, 0}, Indices: [4]uint16{3, 0, 0, 0}, Count: 1},
			{Weights: [4]float32{0.5, 0.5, 0, 0}, Indices: [4]uint16{3, 4, 0, 0}, Count: 2},
			{Weights: [4]float32{1, 0, 0, 0}, Indices: [4]uint16{4, 0, 0, 0}, Count: 1},
		},
		Corners: []meshfmt.Corner{
			{VertexIndex: 0, Normal: mgl32.Vec3{0, 0, 1}, Tangent: mgl32.Vec4{1, 0, 0, -1}, UV: mgl32.Vec2{0, 0}},
			{VertexIndex: 1, Normal: mgl32.Vec3{0, 0, 1}, Tangent: mgl32.Vec4{1, 0, 0, -1}, UV: mgl32.Vec2{1, 0}},
			{VertexIndex: 2, Normal: mgl32.Vec3{0, 0, 1}, Tangent: mgl32.Vec4{1, 0, 0, -1}, UV: mgl32.Vec2{0, 1}},
		},
		Patches: []meshfmt.Patch{
			meshfmt.NewPatch("skin", []uint32{0, 1, 2}, 3),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, meshfmt.Encode(&buf, mesh))

	got, err := meshfmt.Decode(&buf)
	require.NoError(t, err)

	require.Equal(t, mesh.Positions, got.Positions)
	require.Equal(t, mesh.Bones, got.Bones)
	require.Equal(t, mesh.Corners, got.Corners)
	require.Len(t, got.Patches, 1)
	require.False(t, got.Patches[0].Is32Bit())
	require.Equal(t, []uint16{0, 1, 2}, got.Patches[0].Indices16)
}

func TestEncodeDecodeRoundTripsWithoutBoneData(t *testing.T) {
	mesh := &meshfmt.Mesh{
		Positions: []mgl32.Vec3{{0, 0, 0}},
		Corners:   nil,
		Patches:   nil,
	}

	var buf bytes.Buffer
	require.NoError(t, meshfmt.Encode(&buf, mesh))

	got, err := meshfmt.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, mesh.Positions, got.Positions)
	require.Empty(t, got.Bones)
}
