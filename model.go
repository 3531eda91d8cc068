package modelimport

import (
	"time"

	"github.com/flywave/go3d/vec3"

	"github.com/marciocamello/game-engine-ai-sub001/material"
	"github.com/marciocamello/game-engine-ai-sub001/mesh"
)

// Model is a fully imported model file: its meshes, the converted
// materials of every library it referenced, and per-load statistics.
type Model struct {
	// Path is the absolute path the model was loaded from.
	Path string
	// Format is the short format name, e.g. "obj".
	Format string

	Meshes    []*mesh.MeshData
	Materials map[string]*material.Engine
	// LODs holds simplified copies of Meshes keyed by requested ratio.
	LODs map[float64][]*mesh.MeshData

	Warnings []string

	TotalVertices  int
	TotalTriangles int
	SkippedFaces   int
	LoadTime       time.Duration

	modTime time.Time
}

// Mesh returns the mesh with the given composite name, or nil.
func (m *Model) Mesh(name string) *mesh.MeshData {
	for _, md := range m.Meshes {
		if md.Name() == name {
			return md
		}
	}
	return nil
}

// Material returns the converted material with the given library name,
// or nil.
func (m *Model) Material(name string) *material.Engine {
	return m.Materials[name]
}

// Bounds returns the axis-aligned bounding box over all meshes.
func (m *Model) Bounds() (min, max vec3.T) {
	first := true
	for _, md := range m.Meshes {
		if len(md.Vertices) == 0 {
			continue
		}
		lo, hi := md.Bounds()
		if first {
			min, max = lo, hi
			first = false
			continue
		}
		for i := 0; i < 3; i++ {
			if lo[i] < min[i] {
				min[i] = lo[i]
			}
			if hi[i] > max[i] {
				max[i] = hi[i]
			}
		}
	}
	return min, max
}
