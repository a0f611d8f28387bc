package blockgraph

import "github.com/go-gl/mathgl/mgl32"

// splitFaces replaces every face whose block requests more than a 1x1
// subdivision grid with a row-major chain of subfaces, linked through
// nextSubface the way recursive splitting chains subfaces in the
// original block model. It runs after linking (so the coarse face still
// carries the attraction/force/crease identity neighbor blocks matched
// against) and before mesh emission, which emits a face's subfaces in
// place of its own quad whenever a chain is present.
func splitFaces(g *Graph) {
	for i := range g.faces {
		f := &g.faces[i]
		if f.linked {
			continue
		}
		sx, sy := g.blocks[f.block].FaceSubdivisions[f.local].counts()
		if sx <= 1 && sy <= 1 {
			continue
		}
		f.nextSubface = appendSubfaceChain(g, f, sx, sy)
	}
}

// appendSubfaceChain builds the sx*sy grid of subfaces for f in
// row-major order, appends them to the graph's subfaces slice, and
// returns the index of the first one.
func appendSubfaceChain(g *Graph, f *face, sx, sy int) int {
	head, prev := -1, -1
	for j := 0; j < sy; j++ {
		for i := 0; i < sx; i++ {
			corners := subQuad(f.corners, i, j, sx, sy)
			idx := len(g.subfaces)
			g.subfaces = append(g.subfaces, face{
				block:       f.block,
				local:       f.local,
				corners:     corners,
				center:      quadCenter(corners),
				normal:      f.normal,
				attraction:  f.attraction,
				link:        -1,
				nextSubface: -1,
			})
			if prev == -1 {
				head = idx
			} else {
				g.subfaces[prev].nextSubface = idx
			}
			prev = idx
		}
	}
	return head
}

// subQuad bilinearly interpolates the (i,j) cell of an sx-by-sy grid
// spanning a quad's four corners.
func subQuad(c [4]mgl32.Vec3, i, j, sx, sy int) [4]mgl32.Vec3 {
	u0, u1 := float32(i)/float32(sx), float32(i+1)/float32(sx)
	v0, v1 := float32(j)/float32(sy), float32(j+1)/float32(sy)
	return [4]mgl32.Vec3{
		bilinearQuad(c, u0, v0),
		bilinearQuad(c, u1, v0),
		bilinearQuad(c, u1, v1),
		bilinearQuad(c, u0, v1),
	}
}

// bilinearQuad evaluates the quad's bilinear parameterization at (u,v),
// with u running c0->c1 and v running c0->c3, matching the corner
// winding faceCornerCodes produces.
func bilinearQuad(c [4]mgl32.Vec3, u, v float32) mgl32.Vec3 {
	a := c[0].Mul((1 - u) * (1 - v))
	b := c[1].Mul(u * (1 - v))
	cc := c[2].Mul(u * v)
	d := c[3].Mul((1 - u) * v)
	return a.Add(b).Add(cc).Add(d)
}

// subfaceQuads walks a face's subface chain and returns one flat Quad
// per subface, in chain order. Subfaces are a local refinement of a
// single exterior face and are not themselves subject to Catmull-Clark
// placement.
func subfaceQuads(g *Graph, faceIdx, headSubface int) []Quad {
	var quads []Quad
	for s := headSubface; s >= 0; s = g.subfaces[s].nextSubface {
		quads = append(quads, Quad{
			Positions: g.subfaces[s].corners,
			Face:      faceIdx,
			Corner:    -1,
		})
	}
	return quads
}
