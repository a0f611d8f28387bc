package blockgraph

import "solidcore/internal/profiling"

// Build runs the full block-graph pipeline over a set of blocks: link
// matching faces, reconcile their edge subdivisions, and emit a
// Catmull-Clark-ready quad control cage.
func Build(blocks []Block) *Mesh {
	defer profiling.Track("blockgraph.Build")()

	g := buildTopology(blocks)
	pairs := candidatePairs(blocks)
	linkFaces(g, pairs)
	mergeSubdivisions(g)
	splitFaces(g)

	idx := buildCCIndex(g)
	return emitMesh(g, idx)
}
