// Package texture resolves material texture references to on-disk files,
// decodes them, and caches the results for a loader session. Lookups that
// fail every search strategy degrade to counted misses and, optionally,
// synthesized per-slot defaults.
package texture

import "image"

// Slot identifies a texture binding point on an engine material.
type Slot string

const (
	SlotAlbedo    Slot = "albedo"
	SlotNormal    Slot = "normal"
	SlotSpecular  Slot = "specular"
	SlotMetallic  Slot = "metallic"
	SlotRoughness Slot = "roughness"
	SlotAO        Slot = "ao"
	SlotAlpha     Slot = "alpha"
	SlotHeight    Slot = "height"
)

// Texture is a decoded or synthesized texture. The resolver cache owns it;
// consumers hold the pointer as a borrowed handle.
type Texture struct {
	Path      string // resolved filesystem path, empty when synthesized
	Image     *image.NRGBA
	Synthetic bool
}

// LoadFunc decodes the file at path. The default implementation reads and
// decodes through image.Decode; tests and embedding applications may
// substitute their own.
type LoadFunc func(path string) (*Texture, error)

// StatFunc probes whether path exists as a regular file. Substituted in
// tests to count filesystem probes.
type StatFunc func(path string) bool
