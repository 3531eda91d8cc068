package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marciocamello/game-engine-ai-sub001/material"
)

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	raw := `{
  "asset_dir": "` + dir + `",
  "output_dir": "out",
  "texture_dirs": ["textures"],
  "conversion_mode": "pbr",
  "thumbnail_size": 128
}`
	path := filepath.Join(dir, "import.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Resolve(Flags{})

	assert.Equal(t, dir, cfg.AssetDir)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.OutputDir)
	assert.Equal(t, []string{filepath.Join(dir, "textures")}, cfg.TextureDirs)
	assert.Equal(t, "pbr", cfg.ConversionMode)
	assert.Equal(t, 128, cfg.ThumbnailSize)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	assert.Equal(t, ".", cfg.AssetDir)
	assert.Equal(t, filepath.Join(".", "imported"), cfg.OutputDir)
	assert.Equal(t, "auto", cfg.ConversionMode)
	assert.Equal(t, float64(1), cfg.ImportScale)
	assert.Equal(t, 256, cfg.ThumbnailSize)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
}

func TestResolveFlagPriority(t *testing.T) {
	cfg := Config{
		AssetDir:       "/from/file",
		ConversionMode: "unlit",
		Workers:        2,
	}
	cfg.Resolve(Flags{
		AssetDir: "/from/flag",
		Mode:     "preserve",
		Workers:  8,
		Scale:    0.01,
	})

	assert.Equal(t, "/from/flag", cfg.AssetDir)
	assert.Equal(t, "preserve", cfg.ConversionMode)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 0.01, cfg.ImportScale)
}

func TestResolveNormalizesBadMode(t *testing.T) {
	cfg := Config{ConversionMode: "sparkly"}
	cfg.Resolve(Flags{})
	assert.Equal(t, "auto", cfg.ConversionMode)
}

func TestImporterOptions(t *testing.T) {
	cfg := Config{
		TextureDirs:    []string{"/tex"},
		ConversionMode: "unlit",
		ImportScale:    2,
		NoFallbacks:    true,
		VerifyTextures: true,
		NoCache:        true,
		ExcludeMeshes:  []string{"collision"},
		LODRatios:      []float64{0.5, 0.25},
	}
	cfg.Resolve(Flags{})
	opts := cfg.ImporterOptions()

	assert.Equal(t, []string{"/tex"}, opts.SearchPaths)
	assert.False(t, opts.GenerateFallbacks)
	assert.True(t, opts.VerifyTextures)
	assert.True(t, opts.DisableCache)
	assert.Equal(t, material.ModeForceUnlit, opts.ConversionMode)
	assert.Equal(t, float32(2), opts.ImportScale)
	assert.Equal(t, []string{"collision"}, opts.ExcludeMeshes)
	assert.Equal(t, []float64{0.5, 0.25}, opts.LODRatios)
}
