package modelimport

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/flywave/go3d/vec2"
	"github.com/flywave/go3d/vec3"
	"github.com/qmuntal/gltf"

	"github.com/marciocamello/game-engine-ai-sub001/material"
	"github.com/marciocamello/game-engine-ai-sub001/mesh"
)

// ExportGLB writes the model as binary glTF (GLB).
func ExportGLB(w io.Writer, model *Model) error {
	doc, err := ExportGLTFDocument(model)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("modelimport: encode glb: %w", err)
	}
	return nil
}

// ExportGLTFDocument builds a glTF 2.0 document from the model. Each
// mesh becomes one node with per-attribute buffer views; materials map
// their PBR scalars onto metallic-roughness factors.
func ExportGLTFDocument(model *Model) (*gltf.Document, error) {
	if model == nil || len(model.Meshes) == 0 {
		return nil, fmt.Errorf("modelimport: export: %w", ErrEmpty)
	}

	doc := &gltf.Document{}
	doc.Asset.Version = "2.0"
	scene := uint32(0)
	doc.Scene = &scene
	doc.Scenes = append(doc.Scenes, &gltf.Scene{})

	buffer := &gltf.Buffer{}
	doc.Buffers = append(doc.Buffers, buffer)

	matIndex := make(map[*material.Engine]uint32)
	for _, md := range model.Meshes {
		if len(md.Vertices) == 0 || len(md.Indices) == 0 {
			continue
		}
		appendGLTFMesh(doc, buffer, md, matIndex)
	}
	if len(doc.Meshes) == 0 {
		return nil, fmt.Errorf("modelimport: export: %w", ErrEmpty)
	}
	return doc, nil
}

func appendGLTFMesh(doc *gltf.Document, buffer *gltf.Buffer, md *mesh.MeshData, matIndex map[*material.Engine]uint32) {
	nv := len(md.Vertices)
	positions := make([]vec3.T, nv)
	normals := make([]vec3.T, nv)
	uvs := make([]vec2.T, nv)
	for i, v := range md.Vertices {
		positions[i] = v.Position
		normals[i] = v.Normal
		uvs[i] = v.TexCoord
	}

	posView := appendBufferView(doc, buffer, positions)
	normView := appendBufferView(doc, buffer, normals)
	uvView := appendBufferView(doc, buffer, uvs)
	idxView := appendBufferView(doc, buffer, md.Indices)

	lo, hi := md.Bounds()
	posAcc := uint32(len(doc.Accessors))
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView:    &posView,
		ComponentType: gltf.ComponentFloat,
		Type:          gltf.AccessorVec3,
		Count:         uint32(nv),
		Min:           []float32{lo[0], lo[1], lo[2]},
		Max:           []float32{hi[0], hi[1], hi[2]},
	})
	normAcc := uint32(len(doc.Accessors))
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView:    &normView,
		ComponentType: gltf.ComponentFloat,
		Type:          gltf.AccessorVec3,
		Count:         uint32(nv),
	})
	uvAcc := uint32(len(doc.Accessors))
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView:    &uvView,
		ComponentType: gltf.ComponentFloat,
		Type:          gltf.AccessorVec2,
		Count:         uint32(nv),
	})
	idxAcc := uint32(len(doc.Accessors))
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView:    &idxView,
		ComponentType: gltf.ComponentUint,
		Type:          gltf.AccessorScalar,
		Count:         uint32(len(md.Indices)),
	})

	prim := &gltf.Primitive{
		Attributes: gltf.Attribute{
			"POSITION":   posAcc,
			"NORMAL":     normAcc,
			"TEXCOORD_0": uvAcc,
		},
		Indices: &idxAcc,
		Mode:    gltf.PrimitiveTriangles,
	}
	if md.Material != nil {
		prim.Material = exportGLTFMaterial(doc, md.Material, matIndex)
	}

	nodeIdx := uint32(len(doc.Nodes))
	meshIdx := uint32(len(doc.Meshes))
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name:       md.Name(),
		Primitives: []*gltf.Primitive{prim},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: md.Name(), Mesh: &meshIdx})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, nodeIdx)
}

func exportGLTFMaterial(doc *gltf.Document, eng *material.Engine, matIndex map[*material.Engine]uint32) *uint32 {
	if idx, ok := matIndex[eng]; ok {
		return &idx
	}

	metallic := eng.Metallic
	roughness := eng.Roughness
	gm := &gltf.Material{
		Name:      eng.Name,
		AlphaMode: gltf.AlphaOpaque,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{eng.Albedo[0], eng.Albedo[1], eng.Albedo[2], eng.Transparency},
			MetallicFactor:  &metallic,
			RoughnessFactor: &roughness,
		},
		EmissiveFactor: [3]float32{eng.Emissive[0], eng.Emissive[1], eng.Emissive[2]},
	}
	if eng.Transparent() {
		gm.AlphaMode = gltf.AlphaMask
	}

	idx := uint32(len(doc.Materials))
	doc.Materials = append(doc.Materials, gm)
	matIndex[eng] = idx
	return &idx
}

// appendBufferView serializes data little-endian into the shared
// buffer and registers a view over it. All attribute types used here
// keep the buffer 4-byte aligned.
func appendBufferView(doc *gltf.Document, buffer *gltf.Buffer, data interface{}) uint32 {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, data)

	view := &gltf.BufferView{
		Buffer:     0,
		ByteOffset: uint32(len(buffer.Data)),
		ByteLength: uint32(buf.Len()),
	}
	buffer.Data = append(buffer.Data, buf.Bytes()...)
	buffer.ByteLength += view.ByteLength

	idx := uint32(len(doc.BufferViews))
	doc.BufferViews = append(doc.BufferViews, view)
	return idx
}
