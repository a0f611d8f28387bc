// Command solidgen drives a scene script through the core pipeline: parse
// the script, assemble its blocks into a block-graph build, and pack the
// resulting patches into an atlas, reporting what each stage produced.
package main

import (
	"flag"
	"fmt"
	"os"

	"solidcore/internal/blockgraph"
	"solidcore/internal/config"
	"solidcore/internal/packer"
	"solidcore/internal/profiling"
	"solidcore/internal/scenescript"
)

func main() {
	scriptPath := flag.String("script", "", "path to a scene script")
	atlasSize := flag.Int("atlas", 0, "atlas edge length in pixels (defaults to config.PackerDefaultSize)")
	flag.Parse()

	if *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "solidgen: -script is required")
		os.Exit(2)
	}

	if err := run(*scriptPath, *atlasSize); err != nil {
		fmt.Fprintf(os.Stderr, "solidgen: %v\n", err)
		os.Exit(1)
	}
}

func run(scriptPath string, atlasSize int) error {
	f, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	script, err := scenescript.Parse(f)
	if err != nil {
		return fmt.Errorf("parse script: %w", err)
	}
	fmt.Printf("parsed %d generator(s), %d block(s), %d csg op(s)\n",
		len(script.Generators), len(script.Blocks), len(script.Ops))

	blocks := make([]blockgraph.Block, len(script.Blocks))
	for i, decl := range script.Blocks {
		blocks[i] = blockgraph.Block{
			Corners:          blockgraph.NewBoxCorners(decl.Center, decl.Half, decl.Rotation),
			Group:            decl.Group,
			Attraction:       expandByte(decl.Attraction),
			FaceSubdivisions: blockgraph.UniformFaceSubdivisions(decl.Subdiv),
		}
	}

	mesh := blockgraph.Build(blocks)
	fmt.Printf("block graph emitted %d quad(s)\n", len(mesh.Quads))

	if atlasSize <= 0 {
		atlasSize = config.PackerDefaultSize()
	}
	sizes := atlasSizesForQuads(len(mesh.Quads))
	if len(sizes) > 0 {
		p := packer.NewKDTreePacker(atlasSize, atlasSize, false, true)
		result, failed := p.Pack(sizes)
		fmt.Printf("packed %d/%d patch(es) into a %dx%d atlas\n",
			len(sizes)-len(failed), len(sizes), result.Width, result.Height)
	}

	if total := profiling.Total(); total > 0 {
		fmt.Printf("profiled time: %s\n", total)
	}
	return nil
}

// expandByte spreads a scene script's compact per-face attraction mask
// (one bit per face, packed into the low 6 bits) across blockgraph.Block's
// per-face byte array.
func expandByte(mask uint16) [6]byte {
	var out [6]byte
	for i := 0; i < 6; i++ {
		if mask&(1<<uint(i)) != 0 {
			out[i] = 2
		}
	}
	return out
}

// atlasSizesForQuads derives one placeholder atlas rectangle per four
// emitted quads, standing in for the real per-patch texture footprint a
// full asset pipeline would compute from UV bounds.
func atlasSizesForQuads(quadCount int) []packer.Size {
	patches := quadCount / 4
	if patches == 0 {
		return nil
	}
	sizes := make([]packer.Size, patches)
	for i := range sizes {
		sizes[i] = packer.Size{W: 32, H: 32}
	}
	return sizes
}
