package modelimport

import "github.com/marciocamello/game-engine-ai-sub001/material"

// Options configure an Importer.
type Options struct {
	// SearchPaths are extra directories probed for texture files.
	SearchPaths []string
	// GenerateFallbacks substitutes flat placeholder textures for
	// texture references that cannot be resolved.
	GenerateFallbacks bool
	// VerifyTextures sniffs file content before accepting a resolved
	// texture path.
	VerifyTextures bool
	// ConversionMode selects the material conversion strategy.
	ConversionMode material.Mode
	// ImportScale multiplies vertex positions. Values <= 0 fall back
	// to 1.
	ImportScale float32
	// ExcludeMeshes drops meshes whose composite name contains any of
	// the given substrings.
	ExcludeMeshes []string
	// LODRatios generates simplified mesh sets at the given ratios in
	// (0,1).
	LODRatios []float64
	// DisableCache bypasses the session model cache.
	DisableCache bool
}

// DefaultOptions mirror the engine defaults: fallback textures on,
// automatic material conversion, unit scale.
func DefaultOptions() Options {
	return Options{
		GenerateFallbacks: true,
		ConversionMode:    material.ModeAuto,
		ImportScale:       1,
	}
}
