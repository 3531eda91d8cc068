package mesh

import (
	"testing"

	"github.com/flywave/go3d/vec3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grid builds an n x n flat plane with shared vertices.
func grid(n int) *MeshData {
	m := &MeshData{Object: "plane"}
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			m.Vertices = append(m.Vertices, Vertex{
				Position: vec3.T{float32(x), 0, float32(y)},
			})
		}
	}
	stride := uint32(n + 1)
	for y := uint32(0); y < uint32(n); y++ {
		for x := uint32(0); x < uint32(n); x++ {
			i := y*stride + x
			m.Indices = append(m.Indices,
				i, i+1, i+stride+1,
				i, i+stride+1, i+stride)
		}
	}
	m.Valid = true
	return m
}

func TestSimplifyReducesTriangles(t *testing.T) {
	src := grid(8)
	require.Equal(t, 128, src.TriangleCount())

	got := Simplify(src, 0.25)
	require.NotSame(t, src, got)
	assert.Greater(t, got.TriangleCount(), 0)
	assert.Less(t, got.TriangleCount(), src.TriangleCount())

	r := Validate(got)
	assert.True(t, r.Valid, "issues: %v", r.Issues)
	assert.True(t, r.HasNormals, "rebuild regenerates normals")
	assert.True(t, r.HasUVs, "rebuild synthesizes planar UVs")
	assert.Equal(t, src.Object, got.Object)
}

func TestSimplifyPassThrough(t *testing.T) {
	src := grid(2)
	assert.Same(t, src, Simplify(src, 1))
	assert.Same(t, src, Simplify(src, 0))
	assert.Same(t, src, Simplify(src, -0.5))

	empty := &MeshData{}
	assert.Same(t, empty, Simplify(empty, 0.5))
}
