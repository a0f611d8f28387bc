package scenescript_test

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"solidcore/internal/scenescript"
)

const sample = `
# a tower with a window cut into it
generator tower kind=tower height=12

block shell center=0,0,0 half=1,2,1 group=1 attract=0x2 rot=0,0.7071,0,0.7071 subdiv=0x5
block cutter center=0,0,0 half=0.3,0.3,2 group=1

csg difference result = shell cutter
`

func TestParseProducesAllDeclaredEntities(t *testing.T) {
	script, err := scenescript.Parse(strings.NewReader(sample))
	require.NoError(t, err)

	require.Len(t, script.Generators, 1)
	require.Equal(t, "tower", script.Generators[0].Name)
	require.Equal(t, "tower", script.Generators[0].Kind)
	require.Equal(t, "12", script.Generators[0].Args["height"])

	require.Len(t, script.Blocks, 2)
	require.Equal(t, "shell", script.Blocks[0].Name)
	require.InDelta(t, 2, script.Blocks[0].Half.Y(), 1e-6)
	require.Equal(t, uint16(2), script.Blocks[0].Attraction)
	require.Equal(t, 1, script.Blocks[0].Group)
	require.Equal(t, byte(0x5), script.Blocks[0].Subdiv)
	require.InDelta(t, 0.7071, script.Blocks[0].Rotation.V.Y(), 1e-4)
	require.InDelta(t, 0.7071, script.Blocks[0].Rotation.W, 1e-4)

	require.Equal(t, mgl32.QuatIdent(), script.Blocks[1].Rotation)
	require.Equal(t, byte(0), script.Blocks[1].Subdiv)

	require.Len(t, script.Ops, 1)
	require.Equal(t, "difference", script.Ops[0].Op)
	require.Equal(t, "result", script.Ops[0].Result)
	require.Equal(t, "shell", script.Ops[0].A)
	require.Equal(t, "cutter", script.Ops[0].B)
}

func TestParseRejectsUnknownDirective(t *testing.T) {
	_, err := scenescript.Parse(strings.NewReader("bogus foo"))
	require.Error(t, err)
}

func TestParseRejectsMalformedCSGLine(t *testing.T) {
	_, err := scenescript.Parse(strings.NewReader("csg union missing_equals a b"))
	require.Error(t, err)
}
