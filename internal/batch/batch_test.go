package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	modelimport "github.com/marciocamello/game-engine-ai-sub001"
)

func writeOBJ(t *testing.T, path string) {
	t.Helper()
	src := `v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
f 1 2 3 4
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "props"), 0755))
	writeOBJ(t, filepath.Join(dir, "crate.obj"))
	writeOBJ(t, filepath.Join(dir, "props", "barrel.obj"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	paths, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "crate.obj"), paths[0])
	assert.Equal(t, filepath.Join(dir, "props", "barrel.obj"), paths[1])
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRunWritesOutputs(t *testing.T) {
	assets := t.TempDir()
	out := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(assets, "props"), 0755))
	writeOBJ(t, filepath.Join(assets, "crate.obj"))
	writeOBJ(t, filepath.Join(assets, "props", "barrel.obj"))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "empty.obj"), []byte("v 0 0 0\n"), 0644))

	cfg := Config{
		AssetDir:    assets,
		OutputDir:   out,
		Importer:    modelimport.NewImporter(modelimport.DefaultOptions()),
		RenderSize:  32,
		Supersample: 1,
		Thumbnails:  true,
		GLB:         true,
		Workers:     2,
	}
	paths, err := Discover(assets)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	results := Run(cfg, paths)
	require.Len(t, results, 3)
	byName := make(map[string]Result, len(results))
	for _, r := range results {
		byName[r.Name] = r
	}

	crate := byName["crate"]
	assert.True(t, crate.Success)
	assert.Equal(t, "crate.obj", crate.Source)
	assert.Equal(t, "crate.webp", crate.Thumbnail)
	assert.Equal(t, "crate.glb", crate.Scene)
	assert.Equal(t, 1, crate.Meshes)
	assert.Equal(t, 4, crate.Vertices)
	assert.Equal(t, 2, crate.Triangles)

	barrel := byName["props/barrel"]
	assert.True(t, barrel.Success)
	assert.Equal(t, "props/barrel.webp", barrel.Thumbnail)

	for _, rel := range []string{"crate.webp", "crate.glb", "props/barrel.webp", "props/barrel.glb"} {
		info, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel)))
		require.NoError(t, err, rel)
		assert.Positive(t, info.Size(), rel)
	}

	failed := byName["empty"]
	assert.False(t, failed.Success)
	assert.NotEmpty(t, failed.Error)
	assert.Empty(t, failed.Thumbnail)
	_, err = os.Stat(filepath.Join(out, "empty.webp"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunWithoutOutputsStillCounts(t *testing.T) {
	assets := t.TempDir()
	out := t.TempDir()
	writeOBJ(t, filepath.Join(assets, "crate.obj"))

	cfg := Config{
		AssetDir:  assets,
		OutputDir: out,
		Importer:  modelimport.NewImporter(modelimport.DefaultOptions()),
		Workers:   1,
	}
	paths, err := Discover(assets)
	require.NoError(t, err)

	results := Run(cfg, paths)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Equal(t, 2, results[0].Triangles)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteManifest(t *testing.T) {
	results := []Result{
		{
			Name: "crate", Source: "crate.obj",
			Thumbnail: "crate.webp", Scene: "crate.glb",
			Meshes: 1, Vertices: 4, Triangles: 2, Success: true,
		},
		{Name: "broken", Source: "broken.obj", Error: "model has no geometry"},
	}
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, WriteManifest(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)

	assert.Equal(t, "crate", entries[0].Name)
	assert.Equal(t, "crate.webp", entries[0].Thumbnail)
	assert.Equal(t, 2, entries[0].Triangles)
	assert.Empty(t, entries[0].Error)

	assert.Equal(t, "model has no geometry", entries[1].Error)
	assert.Empty(t, entries[1].Thumbnail)
	assert.NotContains(t, string(data), `"thumbnail": ""`)
}
