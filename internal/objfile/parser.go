// Package objfile parses Wavefront OBJ geometry into mesh data. A
// single parse pass segments the file into meshes on object, group and
// material switches, resolves material libraries referenced by mtllib,
// and runs validation and optimization on every finalized mesh.
package objfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/flywave/go3d/vec2"
	"github.com/flywave/go3d/vec3"

	"github.com/marciocamello/game-engine-ai-sub001/internal/logging"
	"github.com/marciocamello/game-engine-ai-sub001/internal/mtlfile"
	"github.com/marciocamello/game-engine-ai-sub001/material"
	"github.com/marciocamello/game-engine-ai-sub001/mesh"
)

var log = logging.New("obj")

// ErrNoGeometry marks a file that parsed without a single face.
var ErrNoGeometry = errors.New("objfile: no geometry")

// Options configure one parse pass.
type Options struct {
	// BaseDir resolves mtllib references. ParseFile defaults it to the
	// OBJ file's directory.
	BaseDir string
	// Converter turns raw material records into engine materials. A
	// nil converter falls back to automatic mode without textures.
	Converter *material.Converter
}

// Result is the outcome of parsing one OBJ file.
type Result struct {
	// Meshes holds the finalized meshes in file order.
	Meshes []*mesh.MeshData
	// Materials indexes converted materials by their library name.
	Materials map[string]*material.Engine
	// Libraries lists the material library paths that were loaded.
	Libraries []string

	Warnings     []string
	SkippedFaces int
	Elapsed      time.Duration
}

// VertexCount returns the total vertex count across all meshes.
func (r *Result) VertexCount() int {
	n := 0
	for _, m := range r.Meshes {
		n += len(m.Vertices)
	}
	return n
}

// TriangleCount returns the total triangle count across all meshes.
func (r *Result) TriangleCount() int {
	n := 0
	for _, m := range r.Meshes {
		n += m.TriangleCount()
	}
	return n
}

// ParseFile reads an OBJ file from disk.
func ParseFile(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("objfile: open %s: %w", path, err)
	}
	defer f.Close()

	if opts.BaseDir == "" {
		opts.BaseDir = filepath.Dir(path)
	}
	res, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("objfile: parse %s: %w", path, err)
	}
	return res, nil
}

// Parse reads OBJ geometry. The vertex, normal and texcoord pools are
// append-only for the duration of the pass; parse state is discarded
// when Parse returns.
func Parse(r io.Reader, opts Options) (*Result, error) {
	start := time.Now()

	conv := opts.Converter
	if conv == nil {
		conv = material.NewConverter(material.ModeAuto, nil)
	}
	st := &parseState{
		res:     &Result{Materials: make(map[string]*material.Engine)},
		baseDir: opts.BaseDir,
		conv:    conv,
	}

	scanner := bufio.NewScanner(r)
	// Face lines on dense polygon meshes can outgrow the default buffer.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		st.handleLine(scanner.Text(), lineNum)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("objfile: read: %w", err)
	}
	st.finalize()

	res := st.res
	res.Elapsed = time.Since(start)
	if len(res.Meshes) == 0 {
		return nil, ErrNoGeometry
	}
	log.Debugf("parsed %d meshes, %d triangles, %d materials in %s",
		len(res.Meshes), res.TriangleCount(), len(res.Materials), res.Elapsed)
	return res, nil
}

type parseState struct {
	positions []vec3.T
	normals   []vec3.T
	texCoords []vec2.T

	object  string
	group   string
	matName string
	matRef  *material.Engine

	verts   []mesh.Vertex
	indices []uint32

	res     *Result
	baseDir string
	conv    *material.Converter
}

func (st *parseState) warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	st.res.Warnings = append(st.res.Warnings, msg)
	log.Warningf("%s", msg)
}

func (st *parseState) handleLine(line string, lineNum int) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
		return
	}

	switch tokens[0] {
	case "v":
		v, err := parseVec3(tokens)
		if err != nil {
			st.warnf("line %d: %v", lineNum, err)
			return
		}
		st.positions = append(st.positions, v)
	case "vn":
		v, err := parseVec3(tokens)
		if err != nil {
			st.warnf("line %d: %v", lineNum, err)
			return
		}
		st.normals = append(st.normals, v)
	case "vt":
		uv, err := parseVec2(tokens)
		if err != nil {
			st.warnf("line %d: %v", lineNum, err)
			return
		}
		// OBJ uses a bottom-left UV origin; flip V and clamp.
		uv[1] = 1 - uv[1]
		uv[0] = clamp01(uv[0])
		uv[1] = clamp01(uv[1])
		st.texCoords = append(st.texCoords, uv)
	case "f":
		st.handleFace(tokens, lineNum)
	case "usemtl":
		if len(tokens) < 2 {
			st.warnf("line %d: usemtl without a name", lineNum)
			return
		}
		if tokens[1] != st.matName {
			st.finalize()
			st.matName = tokens[1]
			st.matRef = st.res.Materials[tokens[1]]
			if st.matRef == nil {
				log.Debugf("line %d: material %q not loaded, mesh keeps the name only", lineNum, tokens[1])
			}
		}
	case "o":
		if name := nameOrDefault(tokens); name != st.object {
			st.finalize()
			st.object = name
		}
	case "g":
		if name := nameOrDefault(tokens); name != st.group {
			st.finalize()
			st.group = name
		}
	case "mtllib":
		if len(tokens) < 2 {
			st.warnf("line %d: mtllib without a path", lineNum)
			return
		}
		for _, ref := range tokens[1:] {
			st.loadLibrary(ref)
		}
	case "s":
		// Smoothing groups are ignored.
	default:
		// Unknown directives are ignored.
	}
}

// faceCorner is one parsed pos[/tex[/normal]] token. The vertex is
// appended to the mesh lazily, on its first use in an emitted triangle,
// so fan triangles of the same face share corner vertices.
type faceCorner struct {
	vert    mesh.Vertex
	ok      bool
	emitted int
}

// handleFace fan-triangulates one face line. A corner with an
// unresolvable position index voids only the fan triangles that touch
// it; the rest of the line is kept.
func (st *parseState) handleFace(tokens []string, lineNum int) {
	if len(tokens) < 4 {
		st.warnf("line %d: face with %d corners", lineNum, len(tokens)-1)
		return
	}

	corners := make([]faceCorner, 0, len(tokens)-1)
	bad := 0
	for _, tok := range tokens[1:] {
		v, ok := st.parseCorner(tok)
		corners = append(corners, faceCorner{vert: v, ok: ok, emitted: -1})
		if !ok {
			bad++
		}
	}
	if bad > 0 {
		st.warnf("line %d: %d face corner(s) with unresolvable indices", lineNum, bad)
	}

	emit := func(c *faceCorner) uint32 {
		if c.emitted < 0 {
			c.emitted = len(st.verts)
			st.verts = append(st.verts, c.vert)
		}
		return uint32(c.emitted)
	}
	for i := 1; i+1 < len(corners); i++ {
		if !corners[0].ok || !corners[i].ok || !corners[i+1].ok {
			st.res.SkippedFaces++
			continue
		}
		st.indices = append(st.indices,
			emit(&corners[0]), emit(&corners[i]), emit(&corners[i+1]))
	}
}

// parseCorner resolves one pos[/tex[/normal]] token against the pools.
// Missing or out-of-range texcoord and normal references fall back to
// defaults; only the position reference is mandatory.
func (st *parseState) parseCorner(tok string) (mesh.Vertex, bool) {
	var v mesh.Vertex

	parts := strings.Split(tok, "/")
	idx, ok := resolveIndex(parts[0], len(st.positions))
	if !ok {
		return v, false
	}
	v.Position = st.positions[idx]

	if len(parts) > 1 && parts[1] != "" {
		if ti, ok := resolveIndex(parts[1], len(st.texCoords)); ok {
			v.TexCoord = st.texCoords[ti]
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if ni, ok := resolveIndex(parts[2], len(st.normals)); ok {
			v.Normal = st.normals[ni]
		}
	}
	if v.Normal[0] == 0 && v.Normal[1] == 0 && v.Normal[2] == 0 {
		v.Normal = vec3.T{0, 1, 0}
	}
	return v, true
}

// resolveIndex turns a 1-based OBJ index token into a pool offset.
// Negative values count back from the end of the pool.
func resolveIndex(tok string, poolLen int) (int, bool) {
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	idx := v - 1
	if v < 0 {
		idx = poolLen + v
	}
	if idx < 0 || idx >= poolLen {
		return 0, false
	}
	return idx, true
}

// finalize emits the accumulated geometry as one mesh. Meshes without
// a single face are dropped.
func (st *parseState) finalize() {
	verts, indices := st.verts, st.indices
	st.verts, st.indices = nil, nil
	if len(verts) == 0 || len(indices) == 0 {
		return
	}

	m := &mesh.MeshData{
		Object:       st.object,
		Group:        st.group,
		MaterialName: st.matName,
		Vertices:     verts,
		Indices:      indices,
		Material:     st.matRef,
	}

	report := mesh.Validate(m)
	if !report.Valid {
		m.Error = strings.Join(report.Issues, "; ")
		st.warnf("mesh %s: %s", m.Name(), m.Error)
		st.res.Meshes = append(st.res.Meshes, m)
		return
	}
	for _, w := range report.Warnings {
		log.Debugf("mesh %s: %s", m.Name(), w)
	}

	if !report.HasUVs {
		mesh.SynthesizePlanarUVs(m)
	}
	mesh.Optimize(m)
	m.Valid = true
	st.res.Meshes = append(st.res.Meshes, m)
}

func (st *parseState) loadLibrary(ref string) {
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(st.baseDir, ref)
	}
	lib, err := mtlfile.ParseFile(path)
	if err != nil {
		st.warnf("mtllib %s: %v", ref, err)
		return
	}
	st.res.Warnings = append(st.res.Warnings, lib.Warnings...)

	matDir := filepath.Dir(path)
	for _, raw := range lib.Records {
		st.res.Materials[raw.Name] = st.conv.Convert(raw, matDir)
	}
	st.res.Libraries = append(st.res.Libraries, path)
	log.Debugf("loaded %d materials from %s", lib.Count(), ref)
}

func nameOrDefault(tokens []string) string {
	if len(tokens) > 1 {
		return tokens[1]
	}
	return "default"
}

func parseVec3(tokens []string) (vec3.T, error) {
	var v vec3.T
	if len(tokens) < 4 {
		return v, fmt.Errorf("%s: expected 3 components, got %d", tokens[0], len(tokens)-1)
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(tokens[i+1], 32)
		if err != nil {
			return v, fmt.Errorf("%s: %w", tokens[0], err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseVec2(tokens []string) (vec2.T, error) {
	var v vec2.T
	if len(tokens) < 3 {
		return v, fmt.Errorf("%s: expected 2 components, got %d", tokens[0], len(tokens)-1)
	}
	for i := 0; i < 2; i++ {
		f, err := strconv.ParseFloat(tokens[i+1], 32)
		if err != nil {
			return v, fmt.Errorf("%s: %w", tokens[0], err)
		}
		v[i] = float32(f)
	}
	return v, nil
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
