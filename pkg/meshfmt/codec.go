package meshfmt

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
)

var order = binary.LittleEndian

// Encode writes m to w in the interchange binary layout: vertex
// positions, an optional bone-weight block, per-corner attributes, then
// material patches with their chosen index width.
func Encode(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	if err := writeVertices(bw, m); err != nil {
		return fmt.Errorf("meshfmt: encode vertices: %w", err)
	}
	if err := writeCorners(bw, m.Corners); err != nil {
		return fmt.Errorf("meshfmt: encode corners: %w", err)
	}
	if err := writePatches(bw, m.Patches); err != nil {
		return fmt.Errorf("meshfmt: encode patches: %w", err)
	}

	return bw.Flush()
}

func writeVertices(w *bufio.Writer, m *Mesh) error {
	if err := binary.Write(w, order, uint32(len(m.Positions))); err != nil {
		return err
	}
	for _, p := range m.Positions {
		if err := binary.Write(w, order, [3]float32{p.X(), p.Y(), p.Z()}); err != nil {
			return err
		}
	}

	hasBones := uint8(0)
	if len(m.Bones) > 0 {
		hasBones = 1
	}
	if err := binary.Write(w, order, hasBones); err != nil {
		return err
	}
	if hasBones == 0 {
		return nil
	}
	for _, b := range m.Bones {
		if err := binary.Write(w, order, b.Weights); err != nil {
			return err
		}
		if err := binary.Write(w, order, b.Indices); err != nil {
			return err
		}
		if err := binary.Write(w, order, b.Count); err != nil {
			return err
		}
	}
	return nil
}

func writeCorners(w *bufio.Writer, corners []Corner) error {
	if err := binary.Write(w, order, uint32(len(corners))); err != nil {
		return err
	}
	for _, c := range corners {
		if err := binary.Write(w, order, c.VertexIndex); err != nil {
			return err
		}
		if err := binary.Write(w, order, [3]float32{c.Normal.X(), c.Normal.Y(), c.Normal.Z()}); err != nil {
			return err
		}
		if err := binary.Write(w, order, [4]float32{c.Tangent.X(), c.Tangent.Y(), c.Tangent.Z(), c.Tangent.W()}); err != nil {
			return err
		}
		if err := binary.Write(w, order, [2]float32{c.UV.X(), c.UV.Y()}); err != nil {
			return err
		}
	}
	return nil
}

func writePatches(w *bufio.Writer, patches []Patch) error {
	if err := binary.Write(w, order, uint32(len(patches))); err != nil {
		return err
	}
	for _, p := range patches {
		if err := binary.Write(w, order, uint32(len(p.Material))); err != nil {
			return err
		}
		if _, err := w.WriteString(p.Material); err != nil {
			return err
		}

		is32 := uint8(0)
		if p.Is32Bit() {
			is32 = 1
		}
		if err := binary.Write(w, order, is32); err != nil {
			return err
		}
		if err := binary.Write(w, order, uint32(p.Len())); err != nil {
			return err
		}
		if is32 == 1 {
			if err := binary.Write(w, order, p.Indices32); err != nil {
				return err
			}
		} else if err := binary.Write(w, order, p.Indices16); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads a Mesh written by Encode.
func Decode(r io.Reader) (*Mesh, error) {
	br := bufio.NewReader(r)
	m := &Mesh{}

	if err := readVertices(br, m); err != nil {
		return nil, fmt.Errorf("meshfmt: decode vertices: %w", err)
	}
	corners, err := readCorners(br)
	if err != nil {
		return nil, fmt.Errorf("meshfmt: decode corners: %w", err)
	}
	m.Corners = corners

	patches, err := readPatches(br)
	if err != nil {
		return nil, fmt.Errorf("meshfmt: decode patches: %w", err)
	}
	m.Patches = patches

	return m, nil
}

func readVertices(r io.Reader, m *Mesh) error {
	var count uint32
	if err := binary.Read(r, order, &count); err != nil {
		return err
	}
	m.Positions = make([]mgl32.Vec3, count)
	for i := range m.Positions {
		var p [3]float32
		if err := binary.Read(r, order, &p); err != nil {
			return err
		}
		m.Positions[i] = mgl32.Vec3{p[0], p[1], p[2]}
	}

	var hasBones uint8
	if err := binary.Read(r, order, &hasBones); err != nil {
		return err
	}
	if hasBones == 0 {
		return nil
	}
	m.Bones = make([]BoneWeights, count)
	for i := range m.Bones {
		if err := binary.Read(r, order, &m.Bones[i].Weights); err != nil {
			return err
		}
		if err := binary.Read(r, order, &m.Bones[i].Indices); err != nil {
			return err
		}
		if err := binary.Read(r, order, &m.Bones[i].Count); err != nil {
			return err
		}
	}
	return nil
}

func readCorners(r io.Reader) ([]Corner, error) {
	var count uint32
	if err := binary.Read(r, order, &count); err != nil {
		return nil, err
	}
	corners := make([]Corner, count)
	for i := range corners {
		if err := binary.Read(r, order, &corners[i].VertexIndex); err != nil {
			return nil, err
		}
		var n [3]float32
		var uv [2]float32
		var tan [4]float32
		if err := binary.Read(r, order, &n); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &tan); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &uv); err != nil {
			return nil, err
		}
		corners[i].Normal = mgl32.Vec3{n[0], n[1], n[2]}
		corners[i].Tangent = mgl32.Vec4{tan[0], tan[1], tan[2], tan[3]}
		corners[i].UV = mgl32.Vec2{uv[0], uv[1]}
	}
	return corners, nil
}

func readPatches(r io.Reader) ([]Patch, error) {
	var count uint32
	if err := binary.Read(r, order, &count); err != nil {
		return nil, err
	}
	patches := make([]Patch, count)
	for i := range patches {
		var matLen uint32
		if err := binary.Read(r, order, &matLen); err != nil {
			return nil, err
		}
		matBytes := make([]byte, matLen)
		if _, err := io.ReadFull(r, matBytes); err != nil {
			return nil, err
		}
		patches[i].Material = string(matBytes)

		var is32 uint8
		if err := binary.Read(r, order, &is32); err != nil {
			return nil, err
		}
		var idxCount uint32
		if err := binary.Read(r, order, &idxCount); err != nil {
			return nil, err
		}
		if is32 == 1 {
			patches[i].Indices32 = make([]uint32, idxCount)
			if err := binary.Read(r, order, &patches[i].Indices32); err != nil {
				return nil, err
			}
		} else {
			patches[i].Indices16 = make([]uint16, idxCount)
			if err := binary.Read(r, order, &patches[i].Indices16); err != nil {
				return nil, err
			}
		}
	}
	return patches, nil
}
