package resource_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"solidcore/internal/resource"
)

func TestResolveFindsFileUnderRightmostRoot(t *testing.T) {
	base := t.TempDir()
	low := filepath.Join(base, "low")
	high := filepath.Join(base, "high")
	require.NoError(t, os.MkdirAll(low, 0o755))
	require.NoError(t, os.MkdirAll(high, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(low, "rock.obj"), []byte("low"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(high, "rock.obj"), []byte("high"), 0o644))

	r := resource.NewResolver([]string{low, high}, nil)
	path, err := r.Resolve("rock.obj")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(high, "rock.obj"), path)
}

func TestResolveProbesExtensions(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "rock.mesh"), []byte("x"), 0o644))

	r := resource.NewResolver([]string{base}, []string{".obj", ".mesh"})
	path, err := r.Resolve("rock")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "rock.mesh"), path)
}

func TestResolveHonorsFileScheme(t *testing.T) {
	r := resource.NewResolver(nil, nil)
	path, err := r.Resolve("file:///tmp/rock.obj")
	require.NoError(t, err)
	require.Equal(t, "/tmp/rock.obj", path)
}

func TestResolveRejectsOtherSchemes(t *testing.T) {
	r := resource.NewResolver(nil, nil)
	_, err := r.Resolve("http://example.com/rock.obj")
	require.Error(t, err)
}

func TestResolveFailsWhenNotFound(t *testing.T) {
	r := resource.NewResolver([]string{t.TempDir()}, nil)
	_, err := r.Resolve("missing")
	require.Error(t, err)
}
