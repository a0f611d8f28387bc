package collision_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"solidcore/internal/collision"
)

func sphereAt(center mgl32.Vec3, radius float32) *collision.Sphere {
	return &collision.Sphere{Xform: mgl32.Translate3D(center.X(), center.Y(), center.Z()), Radius: radius}
}

func boxAt(center, half mgl32.Vec3, margin float32) *collision.Box {
	return &collision.Box{Xform: mgl32.Translate3D(center.X(), center.Y(), center.Z()), Half: half, Mgn: margin}
}

func TestSphereSphereOverlapReportsDepthAndNormal(t *testing.T) {
	a := sphereAt(mgl32.Vec3{0, 0, 0}, 1)
	b := sphereAt(mgl32.Vec3{1.5, 0, 0}, 1)

	res := collision.Collide(a, b, mgl32.Vec3{1, 0, 0})

	require.True(t, res.Colliding)
	require.InDelta(t, 0.5, res.Depth, 1e-4)
	require.InDelta(t, 1.0, res.Normal.X(), 1e-4)
	require.InDelta(t, 0.0, res.Normal.Y(), 1e-4)
	require.InDelta(t, 0.0, res.Normal.Z(), 1e-4)
}

func TestSphereSphereSeparatedReportsNoCollision(t *testing.T) {
	a := sphereAt(mgl32.Vec3{0, 0, 0}, 1)
	b := sphereAt(mgl32.Vec3{2.5, 0, 0}, 1)

	res := collision.Collide(a, b, mgl32.Vec3{1, 0, 0})

	require.False(t, res.Colliding)
	require.InDelta(t, 1.0, res.SeparatingAxis.Normalize().X(), 1e-4)
}

func TestSphereSphereCoincidentPicksNonZeroNormal(t *testing.T) {
	a := sphereAt(mgl32.Vec3{0, 0, 0}, 1)
	b := sphereAt(mgl32.Vec3{0, 0, 0}, 1)

	res := collision.Collide(a, b, mgl32.Vec3{0, 0, 0})

	require.True(t, res.Colliding)
	require.InDelta(t, 2.0, res.Depth, 1e-4)
	require.Greater(t, res.Normal.Len(), float32(0.99))
}

func TestSphereBoxSphereCenterOutsideBox(t *testing.T) {
	sphere := sphereAt(mgl32.Vec3{0, 0, 2}, 1)
	box := boxAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, 0)

	res := collision.Collide(sphere, box, mgl32.Vec3{0, 0, 1})

	require.True(t, res.Colliding)
	require.InDelta(t, 0.0, res.Depth, 1e-4)
}

func TestSphereBoxSphereCenterInsideBox(t *testing.T) {
	sphere := sphereAt(mgl32.Vec3{0, 0, 0}, 1)
	box := boxAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 2}, 0)

	res := collision.Collide(sphere, box, mgl32.Vec3{0, 0, 1})

	require.True(t, res.Colliding)
	require.Greater(t, res.Depth, float32(0))
}

func TestBoxBoxOverlapUsesGJKEPA(t *testing.T) {
	a := boxAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, 0)
	b := boxAt(mgl32.Vec3{1.5, 0, 0}, mgl32.Vec3{1, 1, 1}, 0)

	res := collision.Collide(a, b, mgl32.Vec3{1, 0, 0})

	require.True(t, res.Colliding)
	require.Greater(t, res.Depth, float32(0))
	require.InDelta(t, 1.0, absComponent(res.Normal.X()), 0.2)
}

func TestBoxBoxSeparatedReportsNoCollision(t *testing.T) {
	a := boxAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, 0)
	b := boxAt(mgl32.Vec3{4, 0, 0}, mgl32.Vec3{1, 1, 1}, 0)

	res := collision.Collide(a, b, mgl32.Vec3{1, 0, 0})

	require.False(t, res.Colliding)
}

func TestGroupCollidesViaDeepestChild(t *testing.T) {
	near := sphereAt(mgl32.Vec3{1.5, 0, 0}, 1)
	far := sphereAt(mgl32.Vec3{0, 10, 0}, 1)
	group := &collision.Group{Xform: mgl32.Ident4(), Children: []collision.Shape{near, far}}
	target := sphereAt(mgl32.Vec3{0, 0, 0}, 1)

	res := collision.Collide(group, target, mgl32.Vec3{1, 0, 0})

	require.True(t, res.Colliding)
	// Routed through GJK/EPA rather than the sphere/sphere fast path (the
	// group wrapper hides the concrete *Sphere type), so only a loose
	// bound on the polytope-approximated depth is expected here.
	require.InDelta(t, 0.5, res.Depth, 0.1)
}

func absComponent(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
