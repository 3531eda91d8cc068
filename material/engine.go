package material

import (
	"github.com/flywave/go3d/vec3"

	"github.com/marciocamello/game-engine-ai-sub001/texture"
)

// Kind tags the property model an Engine material uses. Consumers branch
// on the tag instead of inspecting individual fields.
type Kind string

const (
	// KindPBR uses the metallic/roughness workflow.
	KindPBR Kind = "pbr"
	// KindUnlit carries a flat color plus an optional albedo texture.
	KindUnlit Kind = "unlit"
	// KindPhong marks a converted material whose original Phong scalars
	// (shininess, illumination model) are still meaningful to consumers.
	KindPhong Kind = "phong"
)

// Engine is the renderer-ready material produced from a Raw record. The
// PBR scalars are always populated; Shininess and Illum also carry the
// source Phong values for consumers that want them.
type Engine struct {
	Name string
	Kind Kind

	Albedo    vec3.T
	Metallic  float32
	Roughness float32
	AO        float32
	Emissive  vec3.T

	Transparency float32
	Shininess    float32
	IOR          float32
	Illum        int

	Slots map[texture.Slot]*texture.Texture
}

// Texture returns the texture bound to a slot, or nil.
func (e *Engine) Texture(slot texture.Slot) *texture.Texture {
	return e.Slots[slot]
}

// SetTexture binds a texture to a slot. A nil texture unbinds the slot.
func (e *Engine) SetTexture(slot texture.Slot, tex *texture.Texture) {
	if tex == nil {
		delete(e.Slots, slot)
		return
	}
	if e.Slots == nil {
		e.Slots = make(map[texture.Slot]*texture.Texture)
	}
	e.Slots[slot] = tex
}

// Transparent reports whether the material needs alpha handling.
func (e *Engine) Transparent() bool {
	return e.Transparency < 1 || e.Slots[texture.SlotAlpha] != nil
}
