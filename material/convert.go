package material

import (
	"github.com/flywave/go3d/vec3"

	"github.com/marciocamello/game-engine-ai-sub001/internal/logging"
	"github.com/marciocamello/game-engine-ai-sub001/texture"
)

var log = logging.New("material")

// Mode selects how Raw records map onto Engine materials.
type Mode int

const (
	// ModeAuto picks per record: unlit for illumination model 0 (color
	// with shading off), the PBR mapping otherwise.
	ModeAuto Mode = iota
	// ModeForcePBR always applies the PBR mapping.
	ModeForcePBR
	// ModeForceUnlit reduces every record to a flat color plus albedo
	// texture.
	ModeForceUnlit
	// ModePreserve applies the PBR mapping but tags the result KindPhong
	// so consumers keep treating the carried Phong scalars as primary.
	ModePreserve
)

func (m Mode) String() string {
	switch m {
	case ModeForcePBR:
		return "pbr"
	case ModeForceUnlit:
		return "unlit"
	case ModePreserve:
		return "preserve"
	default:
		return "auto"
	}
}

// ParseMode maps a configuration string to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "auto":
		return ModeAuto, true
	case "pbr":
		return ModeForcePBR, true
	case "unlit":
		return ModeForceUnlit, true
	case "preserve":
		return ModePreserve, true
	}
	return ModeAuto, false
}

// Converter turns Raw records into Engine materials, resolving texture
// references through an optional resolver. A nil resolver converts
// scalars only and leaves every slot unbound.
type Converter struct {
	mode     Mode
	resolver *texture.Resolver
}

// NewConverter builds a converter for one import session.
func NewConverter(mode Mode, resolver *texture.Resolver) *Converter {
	return &Converter{mode: mode, resolver: resolver}
}

// Convert maps one record. baseDir anchors relative texture paths,
// usually the directory of the material library. The scalar mapping is
// deterministic: identical input yields bit-identical output.
func (c *Converter) Convert(raw *Raw, baseDir string) *Engine {
	mode := c.mode
	if mode == ModeAuto && raw.Illum == 0 {
		mode = ModeForceUnlit
	}

	var eng *Engine
	switch mode {
	case ModeForceUnlit:
		eng = c.convertUnlit(raw, baseDir)
	case ModePreserve:
		eng = c.convertPBR(raw, baseDir)
		eng.Kind = KindPhong
	default:
		eng = c.convertPBR(raw, baseDir)
	}
	log.Debugf("converted material %q as %s", raw.Name, eng.Kind)
	return eng
}

// convertPBR approximates metallic/roughness/ao from the Phong fields
// unless the record carries explicit Pm/Pr values.
func (c *Converter) convertPBR(raw *Raw, baseDir string) *Engine {
	eng := &Engine{
		Name:         raw.Name,
		Kind:         KindPBR,
		Albedo:       raw.Diffuse,
		Emissive:     raw.Emissive,
		Transparency: raw.Transparency,
		Shininess:    raw.Shininess,
		IOR:          raw.IOR,
		Illum:        raw.Illum,
	}

	// Specular close to diffuse in intensity suggests a metal.
	if raw.Metallic > 0 {
		eng.Metallic = clamp01(raw.Metallic)
	} else if d := mean(raw.Diffuse); d > 0.1 {
		eng.Metallic = clamp01(mean(raw.Specular) / d)
	}

	// Shininess and roughness are inversely related.
	if raw.Roughness > 0 {
		eng.Roughness = clamp01(raw.Roughness)
	} else {
		eng.Roughness = 1 - clamp01(raw.Shininess/128)
	}

	eng.AO = mean(raw.Ambient)

	c.bind(eng, texture.SlotAlbedo, baseDir, raw.DiffuseMap)
	c.bind(eng, texture.SlotNormal, baseDir, raw.NormalMap)
	c.bind(eng, texture.SlotSpecular, baseDir, raw.SpecularMap)
	c.bind(eng, texture.SlotMetallic, baseDir, raw.MetallicMap)
	c.bind(eng, texture.SlotRoughness, baseDir, raw.RoughnessMap)
	c.bind(eng, texture.SlotAO, baseDir, raw.AOMap)
	c.bind(eng, texture.SlotAlpha, baseDir, raw.AlphaMap)
	c.bind(eng, texture.SlotHeight, baseDir, raw.HeightMap)
	c.defaultAlbedo(eng)
	return eng
}

// convertUnlit keeps the flat diffuse color and only the albedo texture.
func (c *Converter) convertUnlit(raw *Raw, baseDir string) *Engine {
	eng := &Engine{
		Name:         raw.Name,
		Kind:         KindUnlit,
		Albedo:       raw.Diffuse,
		Roughness:    1,
		AO:           1,
		Transparency: raw.Transparency,
		Illum:        raw.Illum,
	}
	c.bind(eng, texture.SlotAlbedo, baseDir, raw.DiffuseMap)
	c.bind(eng, texture.SlotAlpha, baseDir, raw.AlphaMap)
	c.defaultAlbedo(eng)
	return eng
}

func (c *Converter) bind(eng *Engine, slot texture.Slot, baseDir, path string) {
	if c.resolver == nil || path == "" {
		return
	}
	if tex := c.resolver.Load(slot, baseDir, path); tex != nil {
		eng.SetTexture(slot, tex)
	}
}

// defaultAlbedo fills the albedo slot with the synthesized default when
// the record named no diffuse map at all and fallbacks are enabled.
func (c *Converter) defaultAlbedo(eng *Engine) {
	if c.resolver == nil || !c.resolver.GeneratesFallbacks() {
		return
	}
	if eng.Slots[texture.SlotAlbedo] == nil {
		eng.SetTexture(texture.SlotAlbedo, c.resolver.Default(texture.SlotAlbedo))
	}
}

func mean(v vec3.T) float32 {
	return (v[0] + v[1] + v[2]) / 3
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
