package mesh

import (
	"testing"

	"github.com/flywave/go3d/vec2"
	"github.com/flywave/go3d/vec3"
	"github.com/stretchr/testify/assert"
)

func flatQuad() *MeshData {
	return &MeshData{
		Object: "quad",
		Vertices: []Vertex{
			{Position: vec3.T{0, 0, 0}, Normal: vec3.T{0, 0, 1}, TexCoord: vec2.T{0, 0}},
			{Position: vec3.T{1, 0, 0}, Normal: vec3.T{0, 0, 1}, TexCoord: vec2.T{1, 0}},
			{Position: vec3.T{1, 1, 0}, Normal: vec3.T{0, 0, 1}, TexCoord: vec2.T{1, 1}},
			{Position: vec3.T{0, 1, 0}, Normal: vec3.T{0, 0, 1}, TexCoord: vec2.T{0, 1}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestValidateAcceptsSoundMesh(t *testing.T) {
	r := Validate(flatQuad())
	assert.True(t, r.Valid)
	assert.Empty(t, r.Issues)
	assert.Zero(t, r.DegenerateTriangles)
	assert.True(t, r.HasNormals)
	assert.True(t, r.HasUVs)
	assert.Empty(t, r.Warnings)
}

func TestValidateStructuralFailures(t *testing.T) {
	empty := &MeshData{}
	r := Validate(empty)
	assert.False(t, r.Valid)
	assert.Len(t, r.Issues, 2, "no vertices and no indices")

	ragged := flatQuad()
	ragged.Indices = ragged.Indices[:5]
	r = Validate(ragged)
	assert.False(t, r.Valid)

	oob := flatQuad()
	oob.Indices[3] = 99
	r = Validate(oob)
	assert.False(t, r.Valid)
}

func TestValidateFindings(t *testing.T) {
	m := flatQuad()
	// Second triangle repeats an index, so it is degenerate.
	m.Indices = []uint32{0, 1, 2, 0, 0, 3}
	for i := range m.Vertices {
		m.Vertices[i].Normal = vec3.T{}
		m.Vertices[i].TexCoord = vec2.T{}
	}

	r := Validate(m)
	assert.True(t, r.Valid, "findings are advisory")
	assert.Equal(t, 1, r.DegenerateTriangles)
	assert.False(t, r.HasNormals)
	assert.False(t, r.HasUVs)
	assert.NotEmpty(t, r.Warnings)
}

func TestValidateSizeWarning(t *testing.T) {
	huge := flatQuad()
	for i := range huge.Vertices {
		huge.Vertices[i].Position.Scale(5000)
	}
	r := Validate(huge)
	assert.True(t, r.Valid)
	assert.NotEmpty(t, r.Warnings)
}

func TestBounds(t *testing.T) {
	m := flatQuad()
	min, max := m.Bounds()
	assert.Equal(t, vec3.T{0, 0, 0}, min)
	assert.Equal(t, vec3.T{1, 1, 0}, max)
	assert.Equal(t, vec3.T{1, 1, 0}, m.Size())
}

func TestMeshName(t *testing.T) {
	assert.Equal(t, "default", (&MeshData{}).Name())
	assert.Equal(t, "ship", (&MeshData{Object: "ship"}).Name())
	assert.Equal(t, "ship/hull", (&MeshData{Object: "ship", Group: "hull"}).Name())
	assert.Equal(t, "hull", (&MeshData{Group: "hull"}).Name())
}
