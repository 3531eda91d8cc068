// Package material converts Wavefront Phong-style material records into
// renderer-ready PBR property sets with resolved texture slots.
package material

import (
	"github.com/flywave/go3d/vec3"
)

// Raw is one material record as read from an MTL library, before any
// conversion. Field defaults follow the Wavefront conventions for
// unspecified properties.
type Raw struct {
	Name string

	Ambient  vec3.T // Ka
	Diffuse  vec3.T // Kd
	Specular vec3.T // Ks
	Emissive vec3.T // Ke

	Shininess    float32 // Ns
	Transparency float32 // d, or 1-Tr
	IOR          float32 // Ni
	Illum        int     // illum

	DiffuseMap    string // map_Kd
	AmbientMap    string // map_Ka
	SpecularMap   string // map_Ks
	NormalMap     string // map_Bump, bump
	HeightMap     string // map_Disp
	AlphaMap      string // map_d
	ReflectionMap string // refl
	MetallicMap   string // map_Pm
	RoughnessMap  string // map_Pr
	AOMap         string

	// Explicit PBR extension scalars. Zero means unspecified; conversion
	// then falls back to the Phong heuristics.
	Metallic  float32 // Pm
	Roughness float32 // Pr
}

// NewRaw returns a record carrying the Wavefront defaults.
func NewRaw(name string) *Raw {
	return &Raw{
		Name:         name,
		Ambient:      vec3.T{0.2, 0.2, 0.2},
		Diffuse:      vec3.T{0.8, 0.8, 0.8},
		Specular:     vec3.T{1, 1, 1},
		Shininess:    32,
		Transparency: 1,
		IOR:          1,
		Illum:        2,
	}
}
