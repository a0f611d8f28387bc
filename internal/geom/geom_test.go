package geom_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"solidcore/internal/geom"
)

func TestPlaneDistance(t *testing.T) {
	p := geom.NewPlaneFromNormalPoint(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 2, 0})
	if d := p.Distance(mgl32.Vec3{5, 5, 5}); d < 2.99 || d > 3.01 {
		t.Errorf("expected distance ~3, got %f", d)
	}
	if d := p.Distance(mgl32.Vec3{0, 2, 0}); d < -1e-5 || d > 1e-5 {
		t.Errorf("expected point on plane to have distance 0, got %f", d)
	}
}

func TestPlaneFlipped(t *testing.T) {
	p := geom.NewPlaneFromNormalPoint(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 0})
	f := p.Flipped()
	if f.Distance(mgl32.Vec3{0, 1, 0}) > 0 {
		t.Errorf("expected flipped plane to report point above original as behind")
	}
}

func TestAABBOverlaps(t *testing.T) {
	a := geom.AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}
	b := geom.AABB{Min: mgl32.Vec3{0.5, 0.5, 0.5}, Max: mgl32.Vec3{2, 2, 2}}
	c := geom.AABB{Min: mgl32.Vec3{5, 5, 5}, Max: mgl32.Vec3{6, 6, 6}}
	if !geom.Overlaps(a, b) {
		t.Errorf("expected a and b to overlap")
	}
	if geom.Overlaps(a, c) {
		t.Errorf("expected a and c not to overlap")
	}
}

func TestAABBPadded(t *testing.T) {
	a := geom.AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{4, 4, 4}}
	p := a.Padded(0.25)
	if p.Min.X() != -1 || p.Max.X() != 5 {
		t.Errorf("expected padded box [-1,5], got [%f,%f]", p.Min.X(), p.Max.X())
	}
}

func TestEqualVec3(t *testing.T) {
	if !geom.EqualVec3(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.0001, 0, 0}, 0.001) {
		t.Errorf("expected points within precision to be equal")
	}
	if geom.EqualVec3(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, 0.001) {
		t.Errorf("expected distant points not to be equal")
	}
}
