package mesh

import (
	"testing"

	"github.com/flywave/go3d/vec3"
	"github.com/stretchr/testify/assert"
)

func TestCube(t *testing.T) {
	c := Cube()

	assert.Len(t, c.Vertices, 24, "four corners per face")
	assert.Len(t, c.Indices, 36)
	assert.Equal(t, 12, c.TriangleCount())

	r := Validate(c)
	assert.True(t, r.Valid)
	assert.Empty(t, r.Issues)
	assert.Zero(t, r.DegenerateTriangles)
	assert.True(t, r.HasNormals)
	assert.True(t, r.HasUVs)

	min, max := c.Bounds()
	assert.Equal(t, vec3.T{-0.5, -0.5, -0.5}, min)
	assert.Equal(t, vec3.T{0.5, 0.5, 0.5}, max)

	for i, v := range c.Vertices {
		assert.InDelta(t, 1.0, float64(v.Normal.Length()), 1e-6, "normal %d", i)
		assert.InDelta(t, 1.0, float64(v.Tangent.Length()), 1e-5, "tangent %d", i)
		assert.InDelta(t, 1.0, float64(v.Bitangent.Length()), 1e-5, "bitangent %d", i)
	}
}

func TestCubeFreshPerCall(t *testing.T) {
	a := Cube()
	b := Cube()
	a.Vertices[0].Position = vec3.T{9, 9, 9}
	assert.NotEqual(t, a.Vertices[0].Position, b.Vertices[0].Position)
}
