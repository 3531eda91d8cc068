package modelimport

import (
	"bytes"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marciocamello/game-engine-ai-sub001/material"
	"github.com/marciocamello/game-engine-ai-sub001/mesh"
)

func pbrMaterial(t *testing.T, raw *material.Raw) *material.Engine {
	t.Helper()
	return material.NewConverter(material.ModeForcePBR, nil).Convert(raw, "")
}

func TestExportGLTFDocument(t *testing.T) {
	cube := mesh.Cube()
	cube.Material = pbrMaterial(t, material.NewRaw("shell"))
	model := &Model{Meshes: []*mesh.MeshData{cube}}

	doc, err := ExportGLTFDocument(model)
	require.NoError(t, err)

	assert.Equal(t, "2.0", doc.Asset.Version)
	require.Len(t, doc.Meshes, 1)
	require.Len(t, doc.Nodes, 1)
	require.Len(t, doc.Scenes, 1)
	assert.Equal(t, []uint32{0}, doc.Scenes[0].Nodes)
	require.Len(t, doc.Accessors, 4)
	require.Len(t, doc.BufferViews, 4)
	require.Len(t, doc.Materials, 1)

	// 24 vertices of position and normal vec3 plus uv vec2, then 36
	// uint32 indices, tightly packed.
	byteLen := 24*12 + 24*12 + 24*8 + 36*4
	require.Len(t, doc.Buffers, 1)
	assert.Equal(t, uint32(byteLen), doc.Buffers[0].ByteLength)
	assert.Len(t, doc.Buffers[0].Data, byteLen)

	pos := doc.Accessors[0]
	assert.Equal(t, uint32(24), pos.Count)
	assert.Equal(t, []float32{-0.5, -0.5, -0.5}, pos.Min)
	assert.Equal(t, []float32{0.5, 0.5, 0.5}, pos.Max)

	prim := doc.Meshes[0].Primitives[0]
	require.NotNil(t, prim.Indices)
	assert.Equal(t, uint32(36), doc.Accessors[*prim.Indices].Count)
	require.NotNil(t, prim.Material)
	assert.Equal(t, uint32(0), *prim.Material)

	gm := doc.Materials[0]
	assert.Equal(t, gltf.AlphaOpaque, gm.AlphaMode)
	require.NotNil(t, gm.PBRMetallicRoughness.BaseColorFactor)
	assert.Equal(t, [4]float32{0.8, 0.8, 0.8, 1}, *gm.PBRMetallicRoughness.BaseColorFactor)
	assert.Equal(t, float32(0.75), *gm.PBRMetallicRoughness.RoughnessFactor)
}

func TestExportSharesMaterials(t *testing.T) {
	eng := pbrMaterial(t, material.NewRaw("shared"))
	a, b := mesh.Cube(), mesh.Cube()
	a.Material = eng
	b.Material = eng
	model := &Model{Meshes: []*mesh.MeshData{a, b}}

	doc, err := ExportGLTFDocument(model)
	require.NoError(t, err)

	require.Len(t, doc.Meshes, 2)
	require.Len(t, doc.Materials, 1)
	assert.Equal(t, uint32(0), *doc.Meshes[0].Primitives[0].Material)
	assert.Equal(t, uint32(0), *doc.Meshes[1].Primitives[0].Material)
	assert.Equal(t, []uint32{0, 1}, doc.Scenes[0].Nodes)
}

func TestExportTransparentAlphaMode(t *testing.T) {
	raw := material.NewRaw("glass")
	raw.Transparency = 0.5
	cube := mesh.Cube()
	cube.Material = pbrMaterial(t, raw)

	doc, err := ExportGLTFDocument(&Model{Meshes: []*mesh.MeshData{cube}})
	require.NoError(t, err)

	gm := doc.Materials[0]
	assert.Equal(t, gltf.AlphaMask, gm.AlphaMode)
	assert.Equal(t, float32(0.5), (*gm.PBRMetallicRoughness.BaseColorFactor)[3])
}

func TestExportGLBMagic(t *testing.T) {
	model := &Model{Meshes: []*mesh.MeshData{mesh.Cube()}}

	var buf bytes.Buffer
	require.NoError(t, ExportGLB(&buf, model))
	require.Greater(t, buf.Len(), 12)
	assert.Equal(t, "glTF", string(buf.Bytes()[:4]))
}

func TestExportEmpty(t *testing.T) {
	_, err := ExportGLTFDocument(nil)
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = ExportGLTFDocument(&Model{})
	assert.ErrorIs(t, err, ErrEmpty)

	var buf bytes.Buffer
	assert.ErrorIs(t, ExportGLB(&buf, &Model{}), ErrEmpty)
}
