package shadermanifest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"solidcore/pkg/shadermanifest"
)

const sample = `
# basic lit program
vertex shaders/lit.vert
-- silhouette pass needs a geometry stage
geometry shaders/lit.geom in=triangles out=triangle_strip max=4
fragment shaders/lit.frag
// fixed-function depth-only prepass
fixed-function depth_prepass
`

func TestParseReadsAllStages(t *testing.T) {
	m, err := shadermanifest.Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, m.Entries, 4)

	require.Equal(t, shadermanifest.StageVertex, m.Entries[0].Stage)
	require.Equal(t, "shaders/lit.vert", m.Entries[0].Path)
	require.Nil(t, m.Entries[0].Geometry)

	geo := m.Entries[1].Geometry
	require.NotNil(t, geo)
	require.Equal(t, "triangles", geo.InputPrimitive)
	require.Equal(t, "triangle_strip", geo.OutputPrimitive)
	require.Equal(t, 4, geo.MaxOutputVertices)

	require.Equal(t, shadermanifest.StageFixedFunction, m.Entries[3].Stage)
}

func TestParseRejectsUnknownStage(t *testing.T) {
	_, err := shadermanifest.Parse(strings.NewReader("compute foo.comp"))
	require.Error(t, err)
}

func TestParseRejectsMalformedGeometryOption(t *testing.T) {
	_, err := shadermanifest.Parse(strings.NewReader("geometry foo.geom bogus"))
	require.Error(t, err)
}
