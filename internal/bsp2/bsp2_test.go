package bsp2_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"solidcore/internal/bsp2"
)

func square(minX, minY, maxX, maxY float32) []mgl32.Vec2 {
	return []mgl32.Vec2{
		{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY},
	}
}

func area(poly []mgl32.Vec2) float32 {
	var a float32
	n := len(poly)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += poly[i].X()*poly[j].Y() - poly[j].X()*poly[i].Y()
	}
	if a < 0 {
		a = -a
	}
	return a / 2
}

func TestComputeConvexPolygonsSingleSquare(t *testing.T) {
	tree := bsp2.NewTree(1e-4)
	tree.Build(square(0, 0, 2, 2), "a")

	bounds := square(-10, -10, 10, 10)
	polys := tree.ComputeConvexPolygons(bounds)

	require.Len(t, polys, 1)
	require.InDelta(t, 4.0, area(polys[0].Vertices), 1e-3)
}

func TestComputeConvexPolygonsUnionOfOverlappingSquares(t *testing.T) {
	tree := bsp2.NewTree(1e-4)
	tree.Build(square(0, 0, 2, 2), "a")
	tree.Add(square(1, 1, 3, 3), "b")

	bounds := square(-10, -10, 10, 10)
	polys := tree.ComputeConvexPolygons(bounds)

	var total float32
	for _, p := range polys {
		total += area(p.Vertices)
	}
	// Union area of two overlapping 2x2 squares sharing a 1x1 corner: 4+4-1=7.
	require.InDelta(t, 7.0, total, 1e-2)
}

func TestComputeConvexPolygonsDisjointSquares(t *testing.T) {
	tree := bsp2.NewTree(1e-4)
	tree.Build(square(0, 0, 1, 1), "a")
	tree.Add(square(5, 5, 6, 6), "b")

	bounds := square(-10, -10, 10, 10)
	polys := tree.ComputeConvexPolygons(bounds)

	var total float32
	for _, p := range polys {
		total += area(p.Vertices)
	}
	require.InDelta(t, 2.0, total, 1e-2)
}
