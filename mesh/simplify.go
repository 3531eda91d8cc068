package mesh

import (
	"github.com/flywave/go3d/vec3"
	"github.com/fogleman/simplify"
)

// Simplify returns a reduced copy of the mesh holding roughly ratio of
// its triangles, collapsed by quadric error. Collapsing invalidates the
// source attributes, so the copy gets planar UVs and a fresh
// optimization pass. A ratio outside (0, 1) or an empty mesh returns the
// input unchanged.
func Simplify(m *MeshData, ratio float64) *MeshData {
	if ratio <= 0 || ratio >= 1 || m.TriangleCount() == 0 {
		return m
	}

	tris := make([]*simplify.Triangle, 0, m.TriangleCount())
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a := m.Vertices[m.Indices[t]].Position
		b := m.Vertices[m.Indices[t+1]].Position
		c := m.Vertices[m.Indices[t+2]].Position
		tris = append(tris, simplify.NewTriangle(
			simplify.Vector{X: float64(a[0]), Y: float64(a[1]), Z: float64(a[2])},
			simplify.Vector{X: float64(b[0]), Y: float64(b[1]), Z: float64(b[2])},
			simplify.Vector{X: float64(c[0]), Y: float64(c[1]), Z: float64(c[2])},
		))
	}

	reduced := simplify.NewMesh(tris).Simplify(ratio)

	out := &MeshData{
		Object:       m.Object,
		Group:        m.Group,
		MaterialName: m.MaterialName,
		Material:     m.Material,
		Vertices:     make([]Vertex, 0, len(reduced.Triangles)*3),
		Indices:      make([]uint32, 0, len(reduced.Triangles)*3),
		Valid:        true,
	}

	seen := make(map[simplify.Vector]uint32, len(reduced.Triangles)*3)
	add := func(v simplify.Vector) {
		if idx, ok := seen[v]; ok {
			out.Indices = append(out.Indices, idx)
			return
		}
		idx := uint32(len(out.Vertices))
		seen[v] = idx
		out.Vertices = append(out.Vertices, Vertex{
			Position: vec3.T{float32(v.X), float32(v.Y), float32(v.Z)},
		})
		out.Indices = append(out.Indices, idx)
	}
	for _, tri := range reduced.Triangles {
		add(tri.V1)
		add(tri.V2)
		add(tri.V3)
	}

	SynthesizePlanarUVs(out)
	Optimize(out)
	log.Debugf("simplified %s: %d -> %d triangles (ratio %.2f)",
		m.Name(), m.TriangleCount(), out.TriangleCount(), ratio)
	return out
}
