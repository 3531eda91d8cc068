package objfile

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flywave/go3d/vec2"
	"github.com/flywave/go3d/vec3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marciocamello/game-engine-ai-sub001/material"
)

func parseString(t *testing.T, src string) *Result {
	t.Helper()
	res, err := Parse(strings.NewReader(src), Options{})
	require.NoError(t, err)
	return res
}

func TestParseQuadFanTriangulation(t *testing.T) {
	res := parseString(t, `
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
f 1 2 3 4
`)
	require.Len(t, res.Meshes, 1)

	m := res.Meshes[0]
	assert.True(t, m.Valid)
	assert.Len(t, m.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
	assert.Equal(t, vec3.T{-1, -1, 0}, m.Vertices[0].Position)
	assert.Equal(t, vec3.T{1, 1, 0}, m.Vertices[2].Position)

	// No vn lines: every corner falls back to the up normal.
	for _, v := range m.Vertices {
		assert.Equal(t, vec3.T{0, 1, 0}, v.Normal)
	}
	// No vt lines: planar UVs are synthesized from the bounding box.
	assert.Equal(t, float32(0), m.Vertices[0].TexCoord[0])
	assert.Equal(t, float32(1), m.Vertices[1].TexCoord[0])
}

func TestParseKeepsExplicitNormals(t *testing.T) {
	res := parseString(t, `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`)
	require.Len(t, res.Meshes, 1)
	for _, v := range res.Meshes[0].Vertices {
		assert.Equal(t, vec3.T{0, 0, 1}, v.Normal)
	}
}

func TestParseFlipsAndClampsTexCoords(t *testing.T) {
	res := parseString(t, `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0.25 0.25
vt -0.5 1.5
f 1/1 2/2 3/1
`)
	require.Len(t, res.Meshes, 1)

	verts := res.Meshes[0].Vertices
	assert.Equal(t, vec2.T{0.25, 0.75}, verts[0].TexCoord)
	assert.Equal(t, vec2.T{0, 0}, verts[1].TexCoord)
}

func TestParseNegativeIndices(t *testing.T) {
	res := parseString(t, `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)
	require.Len(t, res.Meshes, 1)

	m := res.Meshes[0]
	require.Len(t, m.Vertices, 3)
	assert.Equal(t, vec3.T{0, 0, 0}, m.Vertices[0].Position)
	assert.Equal(t, vec3.T{1, 0, 0}, m.Vertices[1].Position)
	assert.Equal(t, vec3.T{0, 1, 0}, m.Vertices[2].Position)
}

func TestParseSkipsOnlyTrianglesTouchingBadCorner(t *testing.T) {
	res := parseString(t, `
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
f 1 2 3 99
f 1 2 4
`)
	require.Len(t, res.Meshes, 1)

	// The quad keeps its first fan triangle and loses the one touching
	// the bad corner; the following face line is unaffected.
	m := res.Meshes[0]
	assert.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, 1, res.SkippedFaces)
	assert.NotEmpty(t, res.Warnings)
}

func TestParseSegmentsOnMaterialSwitch(t *testing.T) {
	res := parseString(t, `
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
usemtl red
f 1 2 3
usemtl blue
f 1 2 4
`)
	require.Len(t, res.Meshes, 2)
	assert.Equal(t, "red", res.Meshes[0].MaterialName)
	assert.Equal(t, "blue", res.Meshes[1].MaterialName)

	// Repeating the current material must not split the mesh.
	res = parseString(t, `
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
usemtl red
f 1 2 3
usemtl red
f 1 2 4
`)
	require.Len(t, res.Meshes, 1)
	assert.Equal(t, 2, res.Meshes[0].TriangleCount())
}

func TestParseSegmentsOnObjectAndGroup(t *testing.T) {
	res := parseString(t, `
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
o alpha
f 1 2 3
o beta
g
f 1 2 4
`)
	require.Len(t, res.Meshes, 2)
	assert.Equal(t, "alpha", res.Meshes[0].Object)
	assert.Equal(t, "alpha", res.Meshes[0].Name())
	assert.Equal(t, "beta", res.Meshes[1].Object)
	assert.Equal(t, "default", res.Meshes[1].Group)
	assert.Equal(t, "beta/default", res.Meshes[1].Name())
}

func TestParseUnknownMaterialKeepsNameOnly(t *testing.T) {
	res := parseString(t, `
v 0 0 0
v 1 0 0
v 0 1 0
usemtl ghost
f 1 2 3
`)
	require.Len(t, res.Meshes, 1)
	assert.Equal(t, "ghost", res.Meshes[0].MaterialName)
	assert.Nil(t, res.Meshes[0].Material)
}

func TestParseMaterialLibrary(t *testing.T) {
	dir := t.TempDir()
	mtl := `newmtl wood
Kd 0.6 0.4 0.2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crate.mtl"), []byte(mtl), 0o644))
	obj := `mtllib crate.mtl
mtllib absent.mtl
v 0 0 0
v 1 0 0
v 0 1 0
usemtl wood
f 1 2 3
`
	objPath := filepath.Join(dir, "crate.obj")
	require.NoError(t, os.WriteFile(objPath, []byte(obj), 0o644))

	res, err := ParseFile(objPath, Options{})
	require.NoError(t, err)

	require.Contains(t, res.Materials, "wood")
	eng := res.Materials["wood"]
	assert.Equal(t, material.KindPBR, eng.Kind)
	assert.Equal(t, vec3.T{0.6, 0.4, 0.2}, eng.Albedo)
	assert.Equal(t, float32(0.75), eng.Roughness)

	require.Len(t, res.Meshes, 1)
	assert.Same(t, eng, res.Meshes[0].Material)
	assert.Len(t, res.Libraries, 1)

	// The unreadable library is a warning, never a failure.
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "absent.mtl") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParseWarnsOnMalformedVertexLines(t *testing.T) {
	res := parseString(t, `
v 1 2
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)
	require.Len(t, res.Meshes, 1)
	assert.NotEmpty(t, res.Warnings)
	assert.Equal(t, vec3.T{0, 0, 0}, res.Meshes[0].Vertices[0].Position)
}

func TestParseNoGeometry(t *testing.T) {
	_, err := Parse(strings.NewReader("# header\nv 0 0 0\nv 1 0 0\n"), Options{})
	assert.ErrorIs(t, err, ErrNoGeometry)

	_, err = Parse(strings.NewReader(""), Options{})
	assert.ErrorIs(t, err, ErrNoGeometry)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.obj"), Options{})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestParseIndexCountMatchesFanRule(t *testing.T) {
	res := parseString(t, `
v 0 0 0
v 2 0 0
v 2 1 0
v 1 2 0
v 0 1 0
f 1 2 3 4 5
`)
	require.Len(t, res.Meshes, 1)

	// A pentagon yields (5-2)*3 indices over 5 shared vertices.
	m := res.Meshes[0]
	assert.Len(t, m.Indices, 9)
	assert.Len(t, m.Vertices, 5)
	for _, idx := range m.Indices {
		assert.Less(t, int(idx), len(m.Vertices))
	}
}
