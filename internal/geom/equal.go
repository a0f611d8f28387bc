package geom

import "github.com/go-gl/mathgl/mgl32"

// EqualVec3 reports whether a and b are within precision of each other in
// every component, the vertex-identity test used throughout the BSP and
// reducer passes.
func EqualVec3(a, b mgl32.Vec3, precision float32) bool {
	d := a.Sub(b)
	return d.X() < precision && d.X() > -precision &&
		d.Y() < precision && d.Y() > -precision &&
		d.Z() < precision && d.Z() > -precision
}

// EqualScalar reports whether a and b differ by less than epsilon.
func EqualScalar(a, b, epsilon float32) bool {
	d := a - b
	return d < epsilon && d > -epsilon
}
