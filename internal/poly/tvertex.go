package poly

import "solidcore/internal/geom"

// RemoveTVertices walks every edge of every polygon in faces and, for every
// vertex of every *other* polygon, tests whether that vertex lies strictly
// in the edge's interior. When it does, the vertex is spliced into the
// edge. This is ported directly from the original source's
// removeTVertices(): the parametric test uses tParametric (nominally
// 2^-14, a parametric rather than a distance tolerance) and the reconstruction check
// that confirms the projected point actually lands on the candidate vertex
// uses precision. The two tolerances are kept distinct on purpose -- see
// the numerical-tolerances note in SPEC_FULL.md.
func RemoveTVertices(faces []*Polygon, precision, tParametric float32) {
	if len(faces) <= 1 {
		return
	}

	for i, face1 := range faces {
		if len(face1.Vertices) == 0 {
			continue
		}
		v0 := face1.Vertices[len(face1.Vertices)-1]

		for v := 0; v < len(face1.Vertices); v++ {
			v1 := face1.Vertices[v]
			dv1 := v1.Sub(v0)
			sqrLen := dv1.Dot(dv1)
			if sqrLen < 1e-20 {
				v0 = v1
				continue
			}
			dn1 := 1.0 / sqrLen

			for j, face2 := range faces {
				if i == j {
					continue
				}
				for _, v2 := range face2.Vertices {
					dv2 := v2.Sub(v0)
					t := dv1.Dot(dv2) * dn1

					if t > tParametric && t < 1.0-tParametric {
						sqr2 := dv2.Dot(dv2)
						if sqr2 < 1e-20 {
							continue
						}
						dn2 := 1.0 / sqr2
						if geom.EqualVec3(v0.Add(dv1.Mul(t)), v2, precision) {
							if !geom.EqualVec3(v2, v0, precision) && !geom.EqualVec3(v2, v1, precision) {
								face1.InsertVertex(v, v2)
								v1 = v2
								dv1 = dv2
								dn1 = dn2
							}
						}
					}
				}
			}

			v0 = v1
		}
	}
}

func equalScalar(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}
