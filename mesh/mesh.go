// Package mesh holds the triangle-mesh model produced by model imports
// and the validation, optimization, and simplification passes over it.
package mesh

import (
	"github.com/flywave/go3d/vec2"
	"github.com/flywave/go3d/vec3"

	"github.com/marciocamello/game-engine-ai-sub001/material"
)

// Vertex is one triangle corner with a full tangent basis.
type Vertex struct {
	Position  vec3.T
	Normal    vec3.T
	TexCoord  vec2.T
	Tangent   vec3.T
	Bitangent vec3.T
}

// MeshData is one finalized mesh: an indexed triangle list plus the
// object/group/material names it was assembled under in the source file.
type MeshData struct {
	Object       string
	Group        string
	MaterialName string

	Vertices []Vertex
	Indices  []uint32

	// Material is set when the material library resolved MaterialName.
	Material *material.Engine

	Valid bool
	Error string
}

// Name returns a display name for logs and manifests.
func (m *MeshData) Name() string {
	switch {
	case m.Object != "" && m.Group != "" && m.Object != m.Group:
		return m.Object + "/" + m.Group
	case m.Object != "":
		return m.Object
	case m.Group != "":
		return m.Group
	}
	return "default"
}

// TriangleCount returns the number of whole triangles in the index list.
func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the axis-aligned bounding box of the vertex positions.
func (m *MeshData) Bounds() (min, max vec3.T) {
	if len(m.Vertices) == 0 {
		return vec3.T{}, vec3.T{}
	}
	min = m.Vertices[0].Position
	max = min
	for i := 1; i < len(m.Vertices); i++ {
		p := m.Vertices[i].Position
		for c := 0; c < 3; c++ {
			if p[c] < min[c] {
				min[c] = p[c]
			}
			if p[c] > max[c] {
				max[c] = p[c]
			}
		}
	}
	return min, max
}

// Size returns the bounding-box dimensions.
func (m *MeshData) Size() vec3.T {
	min, max := m.Bounds()
	return vec3.Sub(&max, &min)
}
