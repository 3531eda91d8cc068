package mesh

import (
	"fmt"

	"github.com/flywave/go3d/vec3"

	"github.com/marciocamello/game-engine-ai-sub001/internal/logging"
)

var log = logging.New("mesh")

// Triangles with less area than this are degenerate.
const degenerateArea = 1e-6

// Imported models are expected to fit these scene-unit dimensions.
const (
	minReasonableSize = 0.001
	maxReasonableSize = 1000.0
)

// Report is the outcome of validating one mesh. Issues make the mesh
// unusable; warnings are quality findings the caller may log or ignore.
type Report struct {
	Valid    bool
	Issues   []string
	Warnings []string

	DegenerateTriangles int
	HasNormals          bool
	HasUVs              bool
}

func (r *Report) fail(msg string) {
	r.Valid = false
	r.Issues = append(r.Issues, msg)
}

func (r *Report) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Validate checks structural soundness and collects quality findings
// without modifying the mesh.
func Validate(m *MeshData) Report {
	r := Report{Valid: true}

	if len(m.Vertices) == 0 {
		r.fail("mesh has no vertices")
	}
	if len(m.Indices) == 0 {
		r.fail("mesh has no indices")
	} else if len(m.Indices)%3 != 0 {
		r.fail(fmt.Sprintf("index count %d is not a multiple of 3", len(m.Indices)))
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			r.fail(fmt.Sprintf("index %d out of range for %d vertices", idx, len(m.Vertices)))
			break
		}
	}
	if !r.Valid {
		return r
	}

	for t := 0; t+2 < len(m.Indices); t += 3 {
		if degenerate(m.Vertices, m.Indices[t], m.Indices[t+1], m.Indices[t+2]) {
			r.DegenerateTriangles++
		}
	}
	if r.DegenerateTriangles > 0 {
		r.warn(fmt.Sprintf("%d degenerate triangles", r.DegenerateTriangles))
	}

	r.HasNormals = hasUsableNormals(m.Vertices)
	if !r.HasNormals {
		r.warn("no usable normals")
	}
	r.HasUVs = hasNonZeroUVs(m.Vertices)
	if !r.HasUVs {
		r.warn("no texture coordinates")
	}

	size := m.Size()
	largest := size[0]
	if size[1] > largest {
		largest = size[1]
	}
	if size[2] > largest {
		largest = size[2]
	}
	if largest < minReasonableSize || largest > maxReasonableSize {
		r.warn(fmt.Sprintf("bounding dimension %g outside [%g, %g]", largest, minReasonableSize, maxReasonableSize))
	}

	return r
}

// degenerate reports a triangle with repeated indices or near-zero area.
func degenerate(verts []Vertex, i0, i1, i2 uint32) bool {
	if i0 == i1 || i1 == i2 || i0 == i2 {
		return true
	}
	e1 := vec3.Sub(&verts[i1].Position, &verts[i0].Position)
	e2 := vec3.Sub(&verts[i2].Position, &verts[i0].Position)
	cr := vec3.Cross(&e1, &e2)
	return 0.5*cr.Length() < degenerateArea
}

func hasUsableNormals(verts []Vertex) bool {
	for i := range verts {
		if verts[i].Normal.Length() > 0.1 {
			return true
		}
	}
	return false
}

func hasNonZeroUVs(verts []Vertex) bool {
	for i := range verts {
		if verts[i].TexCoord[0] != 0 || verts[i].TexCoord[1] != 0 {
			return true
		}
	}
	return false
}
