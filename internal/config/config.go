package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	modelimport "github.com/marciocamello/game-engine-ai-sub001"
	"github.com/marciocamello/game-engine-ai-sub001/material"
)

// Config holds all configurable paths and import settings.
type Config struct {
	// Paths
	AssetDir    string   `json:"asset_dir"`
	OutputDir   string   `json:"output_dir"`
	TextureDirs []string `json:"texture_dirs"`

	// Import settings
	ConversionMode string    `json:"conversion_mode"`
	ImportScale    float64   `json:"import_scale"`
	ExcludeMeshes  []string  `json:"exclude_meshes"`
	LODRatios      []float64 `json:"lod_ratios"`
	NoFallbacks    bool      `json:"no_fallbacks"`
	VerifyTextures bool      `json:"verify_textures"`
	NoCache        bool      `json:"no_cache"`

	// Batch output settings
	EmitGLB        bool `json:"emit_glb"`
	EmitThumbnails bool `json:"emit_thumbnails"`
	ThumbnailSize  int  `json:"thumbnail_size"`
	Supersample    int  `json:"supersample"`
	Workers        int  `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Mode != "" {
		c.ConversionMode = flags.Mode
	}
	if flags.Scale > 0 {
		c.ImportScale = flags.Scale
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.AssetDir == "" {
		c.AssetDir = "."
	}

	// Resolve relative paths against the asset dir
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.AssetDir, "imported")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.AssetDir, c.OutputDir)
	}
	for i, dir := range c.TextureDirs {
		if !filepath.IsAbs(dir) {
			c.TextureDirs[i] = filepath.Join(c.AssetDir, dir)
		}
	}

	if _, ok := material.ParseMode(c.ConversionMode); !ok {
		c.ConversionMode = "auto"
	}
	if c.ImportScale <= 0 {
		c.ImportScale = 1
	}

	// Defaults for batch output settings
	if c.ThumbnailSize <= 0 {
		c.ThumbnailSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// ImporterOptions maps the resolved config onto importer options.
func (c *Config) ImporterOptions() modelimport.Options {
	mode, _ := material.ParseMode(c.ConversionMode)
	return modelimport.Options{
		SearchPaths:       c.TextureDirs,
		GenerateFallbacks: !c.NoFallbacks,
		VerifyTextures:    c.VerifyTextures,
		ConversionMode:    mode,
		ImportScale:       float32(c.ImportScale),
		ExcludeMeshes:     c.ExcludeMeshes,
		LODRatios:         c.LODRatios,
		DisableCache:      c.NoCache,
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	AssetDir  string
	OutputDir string
	Mode      string
	Scale     float64
	Workers   int
}
