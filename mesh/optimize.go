package mesh

import (
	"github.com/chewxy/math32"
	"github.com/flywave/go3d/vec3"
)

// Optimize rewrites the mesh in place: degenerate triangles are dropped,
// smooth normals are regenerated when none are usable, and the tangent
// basis is always recomputed from positions and UVs. Running it twice
// produces the same result as running it once.
func Optimize(m *MeshData) {
	before := m.TriangleCount()
	dropDegenerates(m)
	if dropped := before - m.TriangleCount(); dropped > 0 {
		log.Debugf("mesh %s: dropped %d degenerate triangles", m.Name(), dropped)
	}

	if !hasUsableNormals(m.Vertices) {
		generateSmoothNormals(m)
		log.Debugf("mesh %s: regenerated smooth normals", m.Name())
	}

	calculateTangents(m.Vertices, m.Indices)
}

func dropDegenerates(m *MeshData) {
	kept := m.Indices[:0]
	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		if int(i0) >= len(m.Vertices) || int(i1) >= len(m.Vertices) || int(i2) >= len(m.Vertices) {
			continue
		}
		if degenerate(m.Vertices, i0, i1, i2) {
			continue
		}
		kept = append(kept, i0, i1, i2)
	}
	m.Indices = kept
}

// generateSmoothNormals accumulates area-weighted face normals onto each
// referenced vertex. Vertices touched by no triangle point up.
func generateSmoothNormals(m *MeshData) {
	acc := make([]vec3.T, len(m.Vertices))
	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		if int(i0) >= len(m.Vertices) || int(i1) >= len(m.Vertices) || int(i2) >= len(m.Vertices) {
			continue
		}
		e1 := vec3.Sub(&m.Vertices[i1].Position, &m.Vertices[i0].Position)
		e2 := vec3.Sub(&m.Vertices[i2].Position, &m.Vertices[i0].Position)
		fn := vec3.Cross(&e1, &e2)

		acc[i0].Add(&fn)
		acc[i1].Add(&fn)
		acc[i2].Add(&fn)
	}
	for i := range m.Vertices {
		if acc[i].Length() > 0 {
			acc[i].Normalize()
			m.Vertices[i].Normal = acc[i]
		} else {
			m.Vertices[i].Normal = vec3.T{0, 1, 0}
		}
	}
}

// calculateTangents rebuilds the tangent basis with the UV-delta method,
// accumulating per-triangle tangents onto the shared vertices. Triangles
// with collapsed UVs contribute nothing.
func calculateTangents(verts []Vertex, indices []uint32) {
	for i := range verts {
		verts[i].Tangent = vec3.T{}
		verts[i].Bitangent = vec3.T{}
	}

	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		if int(i0) >= len(verts) || int(i1) >= len(verts) || int(i2) >= len(verts) {
			continue
		}
		v0, v1, v2 := &verts[i0], &verts[i1], &verts[i2]

		e1 := vec3.Sub(&v1.Position, &v0.Position)
		e2 := vec3.Sub(&v2.Position, &v0.Position)

		du1 := v1.TexCoord[0] - v0.TexCoord[0]
		dv1 := v1.TexCoord[1] - v0.TexCoord[1]
		du2 := v2.TexCoord[0] - v0.TexCoord[0]
		dv2 := v2.TexCoord[1] - v0.TexCoord[1]

		f := 1 / (du1*dv2 - du2*dv1)
		if math32.IsInf(f, 0) || math32.IsNaN(f) {
			continue
		}

		tangent := vec3.T{
			f * (dv2*e1[0] - dv1*e2[0]),
			f * (dv2*e1[1] - dv1*e2[1]),
			f * (dv2*e1[2] - dv1*e2[2]),
		}
		bitangent := vec3.T{
			f * (-du2*e1[0] + du1*e2[0]),
			f * (-du2*e1[1] + du1*e2[1]),
			f * (-du2*e1[2] + du1*e2[2]),
		}

		v0.Tangent.Add(&tangent)
		v1.Tangent.Add(&tangent)
		v2.Tangent.Add(&tangent)
		v0.Bitangent.Add(&bitangent)
		v1.Bitangent.Add(&bitangent)
		v2.Bitangent.Add(&bitangent)
	}

	for i := range verts {
		if verts[i].Tangent.Length() > 0 {
			verts[i].Tangent.Normalize()
		} else {
			verts[i].Tangent = vec3.T{1, 0, 0}
		}
		if verts[i].Bitangent.Length() > 0 {
			verts[i].Bitangent.Normalize()
		} else {
			verts[i].Bitangent = vec3.T{0, 0, 1}
		}
	}
}

// SynthesizePlanarUVs projects top-down bounding-box UVs onto every
// vertex, for meshes whose source had no texture coordinates. Returns
// false when the mesh has no extent to project against.
func SynthesizePlanarUVs(m *MeshData) bool {
	if len(m.Vertices) == 0 {
		return false
	}
	min, max := m.Bounds()
	size := vec3.Sub(&max, &min)
	maxDim := size[0]
	if size[1] > maxDim {
		maxDim = size[1]
	}
	if size[2] > maxDim {
		maxDim = size[2]
	}
	if maxDim <= 0 {
		return false
	}
	for i := range m.Vertices {
		p := m.Vertices[i].Position
		m.Vertices[i].TexCoord[0] = clamp01((p[0] - min[0]) / maxDim)
		m.Vertices[i].TexCoord[1] = clamp01((p[2] - min[2]) / maxDim)
	}
	return true
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
