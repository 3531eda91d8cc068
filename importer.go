// Package modelimport loads 3D model files into engine-ready meshes
// and materials. The supported pipeline is Wavefront OBJ with MTL
// material libraries: geometry is parsed, validated and optimized,
// Phong material definitions are converted to PBR scalars, and texture
// references are resolved against the model directory and configured
// search paths. Loaded models are cached for the session, keyed by
// absolute path and invalidated on modification-time changes.
package modelimport

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/marciocamello/game-engine-ai-sub001/internal/logging"
	"github.com/marciocamello/game-engine-ai-sub001/internal/objfile"
	"github.com/marciocamello/game-engine-ai-sub001/material"
	"github.com/marciocamello/game-engine-ai-sub001/mesh"
	"github.com/marciocamello/game-engine-ai-sub001/texture"
)

var log = logging.New("import")

// knownExts are extensions the importer recognizes as model files even
// when it cannot read them yet.
var knownExts = map[string]bool{
	".obj":   true,
	".fbx":   true,
	".gltf":  true,
	".glb":   true,
	".dae":   true,
	".3ds":   true,
	".blend": true,
}

// KnownExtensions lists the recognized model file extensions, sorted.
func KnownExtensions() []string {
	exts := make([]string, 0, len(knownExts))
	for ext := range knownExts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// CanImport reports whether Load can fully read files with the given
// extension.
func CanImport(ext string) bool {
	return strings.ToLower(ext) == ".obj"
}

// Importer loads model files. One Importer shares its texture resolver
// and session cache across loads and is safe for concurrent use.
type Importer struct {
	opts      Options
	resolver  *texture.Resolver
	converter *material.Converter

	mu    sync.RWMutex
	cache map[string]*Model

	hits   atomic.Int64
	misses atomic.Int64
}

// NewImporter builds an Importer for the given options.
func NewImporter(opts Options) *Importer {
	if opts.ImportScale <= 0 {
		opts.ImportScale = 1
	}
	resolver := texture.NewResolver(texture.Options{
		SearchPaths:       opts.SearchPaths,
		GenerateFallbacks: opts.GenerateFallbacks,
		VerifyContent:     opts.VerifyTextures,
	})
	return &Importer{
		opts:      opts,
		resolver:  resolver,
		converter: material.NewConverter(opts.ConversionMode, resolver),
		cache:     make(map[string]*Model),
	}
}

// Resolver exposes the texture resolver shared by all loads.
func (im *Importer) Resolver() *texture.Resolver {
	return im.resolver
}

// Load imports the model at path, dispatching on its extension.
func (im *Importer) Load(path string) (*Model, error) {
	return im.load(path, false)
}

// LoadOBJ imports path through the OBJ pipeline regardless of its
// extension.
func (im *Importer) LoadOBJ(path string) (*Model, error) {
	return im.load(path, true)
}

// AsyncResult delivers the outcome of LoadAsync.
type AsyncResult struct {
	Model *Model
	Err   error
}

// LoadAsync imports on a background goroutine and delivers exactly one
// result on the returned channel.
func (im *Importer) LoadAsync(path string) <-chan AsyncResult {
	ch := make(chan AsyncResult, 1)
	go func() {
		model, err := im.Load(path)
		ch <- AsyncResult{Model: model, Err: err}
		close(ch)
	}()
	return ch
}

func (im *Importer) load(path string, forceOBJ bool) (*Model, error) {
	abs := absPath(path)
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("modelimport: %s: %w", path, ErrNotFound)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("modelimport: %s is a directory: %w", path, ErrUnsupported)
	}

	if !im.opts.DisableCache {
		if model := im.fromCache(abs, info.ModTime()); model != nil {
			return model, nil
		}
	}

	if ext := strings.ToLower(filepath.Ext(abs)); !forceOBJ && ext != ".obj" {
		if knownExts[ext] {
			return nil, fmt.Errorf("modelimport: %s: no reader for %s: %w", path, ext, ErrUnsupported)
		}
		return nil, fmt.Errorf("modelimport: %s: %w", path, ErrUnsupported)
	}

	model, err := im.importOBJ(abs, info.ModTime())
	if err != nil {
		return nil, err
	}
	if !im.opts.DisableCache {
		im.store(model)
	}
	return model, nil
}

func (im *Importer) importOBJ(abs string, modTime time.Time) (*Model, error) {
	start := time.Now()

	res, err := objfile.ParseFile(abs, objfile.Options{Converter: im.converter})
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("modelimport: %s: %w", abs, ErrNotFound)
		case errors.Is(err, objfile.ErrNoGeometry):
			return nil, fmt.Errorf("modelimport: %s: %w", abs, ErrEmpty)
		default:
			return nil, fmt.Errorf("modelimport: %s: %w", err, ErrMalformed)
		}
	}

	meshes := res.Meshes
	if len(im.opts.ExcludeMeshes) > 0 {
		kept := make([]*mesh.MeshData, 0, len(meshes))
		for _, md := range meshes {
			if im.excludedMesh(md.Name()) {
				log.Debugf("excluding mesh %s", md.Name())
				continue
			}
			kept = append(kept, md)
		}
		meshes = kept
	}
	if im.opts.ImportScale != 1 {
		for _, md := range meshes {
			for i := range md.Vertices {
				md.Vertices[i].Position.Scale(im.opts.ImportScale)
			}
		}
	}

	model := &Model{
		Path:         abs,
		Format:       "obj",
		Meshes:       meshes,
		Materials:    res.Materials,
		Warnings:     res.Warnings,
		SkippedFaces: res.SkippedFaces,
		modTime:      modTime,
	}
	for _, md := range meshes {
		model.TotalVertices += len(md.Vertices)
		model.TotalTriangles += md.TriangleCount()
	}
	if len(im.opts.LODRatios) > 0 {
		model.LODs = make(map[float64][]*mesh.MeshData, len(im.opts.LODRatios))
		for _, ratio := range im.opts.LODRatios {
			set := make([]*mesh.MeshData, 0, len(meshes))
			for _, md := range meshes {
				set = append(set, mesh.Simplify(md, ratio))
			}
			model.LODs[ratio] = set
		}
	}
	model.LoadTime = time.Since(start)

	log.Infof("loaded %s: %d meshes, %d vertices, %d triangles, %d materials in %s",
		filepath.Base(abs), len(model.Meshes), model.TotalVertices,
		model.TotalTriangles, len(model.Materials), model.LoadTime)
	return model, nil
}

func (im *Importer) excludedMesh(name string) bool {
	for _, pattern := range im.opts.ExcludeMeshes {
		if pattern != "" && strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}

func (im *Importer) fromCache(abs string, modTime time.Time) *Model {
	im.mu.RLock()
	model := im.cache[abs]
	im.mu.RUnlock()

	if model != nil && model.modTime.Equal(modTime) {
		im.hits.Add(1)
		log.Debugf("cache hit for %s", abs)
		return model
	}
	im.misses.Add(1)
	return nil
}

func (im *Importer) store(model *Model) {
	im.mu.Lock()
	im.cache[model.Path] = model
	im.mu.Unlock()
}

// Invalidate removes the cache entry for path, if any.
func (im *Importer) Invalidate(path string) {
	abs := absPath(path)
	im.mu.Lock()
	delete(im.cache, abs)
	im.mu.Unlock()
}

// ClearCache drops every cached model. Hit and miss counters are
// cumulative and survive the clear.
func (im *Importer) ClearCache() {
	im.mu.Lock()
	im.cache = make(map[string]*Model)
	im.mu.Unlock()
}

// CacheStats summarize session cache behavior.
type CacheStats struct {
	Hits   int64
	Misses int64
	Size   int
}

// CacheStats returns a snapshot of the session cache counters.
func (im *Importer) CacheStats() CacheStats {
	im.mu.RLock()
	size := len(im.cache)
	im.mu.RUnlock()
	return CacheStats{
		Hits:   im.hits.Load(),
		Misses: im.misses.Load(),
		Size:   size,
	}
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
