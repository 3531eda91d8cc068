package mesh

import (
	"github.com/flywave/go3d/vec2"
	"github.com/flywave/go3d/vec3"
)

// Cube returns the built-in unit cube used when a model cannot be loaded:
// 24 vertices with per-face normals and UVs, 12 triangles, with a computed
// tangent basis.
func Cube() *MeshData {
	type corner struct {
		p vec3.T
		n vec3.T
		t vec2.T
	}
	corners := []corner{
		// Front
		{vec3.T{-0.5, -0.5, 0.5}, vec3.T{0, 0, 1}, vec2.T{0, 0}},
		{vec3.T{0.5, -0.5, 0.5}, vec3.T{0, 0, 1}, vec2.T{1, 0}},
		{vec3.T{0.5, 0.5, 0.5}, vec3.T{0, 0, 1}, vec2.T{1, 1}},
		{vec3.T{-0.5, 0.5, 0.5}, vec3.T{0, 0, 1}, vec2.T{0, 1}},
		// Back
		{vec3.T{-0.5, -0.5, -0.5}, vec3.T{0, 0, -1}, vec2.T{1, 0}},
		{vec3.T{-0.5, 0.5, -0.5}, vec3.T{0, 0, -1}, vec2.T{1, 1}},
		{vec3.T{0.5, 0.5, -0.5}, vec3.T{0, 0, -1}, vec2.T{0, 1}},
		{vec3.T{0.5, -0.5, -0.5}, vec3.T{0, 0, -1}, vec2.T{0, 0}},
		// Left
		{vec3.T{-0.5, 0.5, 0.5}, vec3.T{-1, 0, 0}, vec2.T{1, 0}},
		{vec3.T{-0.5, 0.5, -0.5}, vec3.T{-1, 0, 0}, vec2.T{1, 1}},
		{vec3.T{-0.5, -0.5, -0.5}, vec3.T{-1, 0, 0}, vec2.T{0, 1}},
		{vec3.T{-0.5, -0.5, 0.5}, vec3.T{-1, 0, 0}, vec2.T{0, 0}},
		// Right
		{vec3.T{0.5, 0.5, 0.5}, vec3.T{1, 0, 0}, vec2.T{1, 0}},
		{vec3.T{0.5, -0.5, 0.5}, vec3.T{1, 0, 0}, vec2.T{0, 0}},
		{vec3.T{0.5, -0.5, -0.5}, vec3.T{1, 0, 0}, vec2.T{0, 1}},
		{vec3.T{0.5, 0.5, -0.5}, vec3.T{1, 0, 0}, vec2.T{1, 1}},
		// Bottom
		{vec3.T{-0.5, -0.5, -0.5}, vec3.T{0, -1, 0}, vec2.T{0, 1}},
		{vec3.T{0.5, -0.5, -0.5}, vec3.T{0, -1, 0}, vec2.T{1, 1}},
		{vec3.T{0.5, -0.5, 0.5}, vec3.T{0, -1, 0}, vec2.T{1, 0}},
		{vec3.T{-0.5, -0.5, 0.5}, vec3.T{0, -1, 0}, vec2.T{0, 0}},
		// Top
		{vec3.T{-0.5, 0.5, -0.5}, vec3.T{0, 1, 0}, vec2.T{0, 1}},
		{vec3.T{-0.5, 0.5, 0.5}, vec3.T{0, 1, 0}, vec2.T{0, 0}},
		{vec3.T{0.5, 0.5, 0.5}, vec3.T{0, 1, 0}, vec2.T{1, 0}},
		{vec3.T{0.5, 0.5, -0.5}, vec3.T{0, 1, 0}, vec2.T{1, 1}},
	}

	m := &MeshData{
		Object:   "cube",
		Vertices: make([]Vertex, len(corners)),
		Indices: []uint32{
			0, 1, 2, 2, 3, 0,
			4, 5, 6, 6, 7, 4,
			8, 9, 10, 10, 11, 8,
			12, 13, 14, 14, 15, 12,
			16, 17, 18, 18, 19, 16,
			20, 21, 22, 22, 23, 20,
		},
		Valid: true,
	}
	for i, c := range corners {
		m.Vertices[i] = Vertex{Position: c.p, Normal: c.n, TexCoord: c.t}
	}
	calculateTangents(m.Vertices, m.Indices)
	return m
}
