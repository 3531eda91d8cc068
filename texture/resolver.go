package texture

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/marciocamello/game-engine-ai-sub001/internal/logging"
)

var log = logging.New("texture")

// Extensions tried, in order, when the referenced file is absent.
var fallbackExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tga", ".dds"}

// Options configures a Resolver.
type Options struct {
	// SearchPaths are extra directories tried between the base directory
	// and the filename-only fallback.
	SearchPaths []string

	// GenerateFallbacks substitutes a synthesized per-slot default when a
	// texture cannot be found.
	GenerateFallbacks bool

	// VerifyContent sniffs file headers before accepting a resolved file.
	VerifyContent bool

	// Load decodes resolved files. Defaults to LoadFile.
	Load LoadFunc

	// Stat probes candidate paths. Defaults to an os.Stat regular-file check.
	Stat StatFunc
}

// Resolver maps texture references from material files to decoded textures.
// All methods are safe for concurrent use; the caches are the session
// texture store and are dropped only by Clear.
type Resolver struct {
	mu       sync.RWMutex
	paths    map[pathKey]pathResult // memoized resolution, failures included
	textures map[string]*Texture    // decoded, keyed by resolved path
	defaults map[Slot]*Texture
	index    *Index

	searchPaths []string
	generate    bool
	verify      bool
	load        LoadFunc
	stat        StatFunc

	resolved  atomic.Int64
	missing   atomic.Int64
	fallbacks atomic.Int64
}

type pathKey struct {
	baseDir string
	path    string
}

type pathResult struct {
	path string
	ok   bool
}

// Stats reports resolver activity since construction or the last Clear.
type Stats struct {
	Resolved  int64
	Missing   int64
	Fallbacks int64
	CacheSize int
}

// NewResolver builds a resolver. Zero-value options give a resolver with no
// search paths, no fallbacks, and direct file decoding.
func NewResolver(opts Options) *Resolver {
	r := &Resolver{
		paths:       make(map[pathKey]pathResult),
		textures:    make(map[string]*Texture),
		defaults:    make(map[Slot]*Texture),
		searchPaths: append([]string(nil), opts.SearchPaths...),
		generate:    opts.GenerateFallbacks,
		verify:      opts.VerifyContent,
		load:        opts.Load,
		stat:        opts.Stat,
	}
	if r.load == nil {
		r.load = LoadFile
	}
	if r.stat == nil {
		r.stat = statFile
	}
	return r
}

func statFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// AddSearchPath registers an extra directory for lookups. Duplicates are
// ignored.
func (r *Resolver) AddSearchPath(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.searchPaths {
		if p == dir {
			return
		}
	}
	r.searchPaths = append(r.searchPaths, dir)
}

// BuildIndex scans the search paths into a case-insensitive stem index,
// consulted after the direct and variant searches fail.
func (r *Resolver) BuildIndex() {
	r.mu.RLock()
	dirs := append([]string(nil), r.searchPaths...)
	r.mu.RUnlock()

	idx := BuildIndex(dirs)
	r.mu.Lock()
	r.index = idx
	r.mu.Unlock()
	log.Debugf("indexed %d textures across %d search paths", idx.Len(), len(dirs))
}

// Resolve maps a texture reference to an existing file path. baseDir is the
// directory of the model or material file naming the texture. Results,
// including failures, are memoized per (baseDir, path).
func (r *Resolver) Resolve(baseDir, path string) (string, bool) {
	if path == "" {
		return "", false
	}
	resolved, ok, _ := r.resolveCached(baseDir, path)
	return resolved, ok
}

// Load resolves, decodes, and caches the texture for a slot. When every
// search strategy fails the miss is counted once per (baseDir, path) and,
// with fallback generation enabled, a synthesized default for the slot is
// returned instead of nil.
func (r *Resolver) Load(slot Slot, baseDir, path string) *Texture {
	if path == "" {
		return nil
	}
	resolved, found, fresh := r.resolveCached(baseDir, path)
	if found {
		if tex := r.decodeCached(resolved); tex != nil {
			return tex
		}
		// Decoding failed; degrade the same way as a missing file.
	}
	if !r.generate {
		if fresh {
			log.Warningf("missing texture %q (base %q)", path, baseDir)
		}
		return nil
	}
	if fresh {
		r.fallbacks.Add(1)
		log.Warningf("missing texture %q (base %q), substituting %s default", path, baseDir, slot)
	}
	return r.defaultFor(slot)
}

// resolveCached memoizes resolvePath per (baseDir, path). fresh reports
// whether this call performed the search, so callers can count each unique
// miss exactly once.
func (r *Resolver) resolveCached(baseDir, path string) (resolved string, ok, fresh bool) {
	key := pathKey{baseDir, path}

	r.mu.RLock()
	res, hit := r.paths[key]
	r.mu.RUnlock()
	if hit {
		return res.path, res.ok, false
	}

	p, found := r.resolvePath(baseDir, path)

	r.mu.Lock()
	if res, hit := r.paths[key]; hit {
		r.mu.Unlock()
		return res.path, res.ok, false
	}
	r.paths[key] = pathResult{path: p, ok: found}
	r.mu.Unlock()

	if found {
		r.resolved.Add(1)
	} else {
		r.missing.Add(1)
	}
	return p, found, true
}

// decodeCached decodes a resolved file once, sharing the texture between
// every reference that resolves to it. A nil entry records a decode failure.
func (r *Resolver) decodeCached(resolved string) *Texture {
	r.mu.RLock()
	tex, hit := r.textures[resolved]
	r.mu.RUnlock()
	if hit {
		return tex
	}

	loaded, err := r.load(resolved)
	if err != nil {
		log.Warningf("decode %s: %v", resolved, err)
		loaded = nil
	}

	r.mu.Lock()
	if tex, hit := r.textures[resolved]; hit {
		r.mu.Unlock()
		return tex
	}
	r.textures[resolved] = loaded
	r.mu.Unlock()
	return loaded
}

// resolvePath runs the search order over the path as given, then over each
// generated variant: other extensions, stem case swaps, separator swaps.
func (r *Resolver) resolvePath(baseDir, path string) (string, bool) {
	for _, cand := range r.candidates(baseDir, path) {
		if r.stat(cand) && r.accept(cand) {
			return cand, true
		}
	}
	for _, variant := range pathVariants(path) {
		for _, cand := range r.candidates(baseDir, variant) {
			if r.stat(cand) && r.accept(cand) {
				return cand, true
			}
		}
	}

	r.mu.RLock()
	idx := r.index
	r.mu.RUnlock()
	if idx != nil {
		if p, ok := idx.Lookup(path); ok && r.accept(p) {
			return p, true
		}
	}
	return "", false
}

func (r *Resolver) accept(path string) bool {
	if !r.verify {
		return true
	}
	if err := VerifyImage(path); err != nil {
		log.Warningf("%v", err)
		return false
	}
	return true
}

// candidates lists probe paths in resolution order: as given, under the
// base directory, under each search path, and filename-only under the base
// directory.
func (r *Resolver) candidates(baseDir, path string) []string {
	r.mu.RLock()
	search := r.searchPaths
	r.mu.RUnlock()

	cands := make([]string, 0, len(search)+3)
	cands = append(cands, path)
	if baseDir != "" {
		cands = append(cands, filepath.Join(baseDir, path))
	}
	for _, dir := range search {
		cands = append(cands, filepath.Join(dir, path))
	}
	if baseDir != "" {
		cands = append(cands, filepath.Join(baseDir, baseName(path)))
	}
	return cands
}

// baseName returns the filename portion of a path that may use either
// separator style.
func baseName(path string) string {
	return filepath.Base(strings.ReplaceAll(path, "\\", "/"))
}

// pathVariants generates alternate spellings of a texture path: the other
// known extensions, upper/lower stem case, and swapped separators.
func pathVariants(path string) []string {
	var variants []string

	norm := strings.ReplaceAll(path, "\\", "/")
	dir, file := filepath.Split(norm)
	ext := filepath.Ext(file)
	stem := strings.TrimSuffix(file, ext)

	for _, e := range fallbackExtensions {
		if e != ext {
			variants = append(variants, dir+stem+e)
		}
	}

	upper := strings.ToUpper(stem)
	lower := strings.ToLower(stem)
	if upper != stem {
		variants = append(variants, dir+upper+ext)
	}
	if lower != stem {
		variants = append(variants, dir+lower+ext)
	}

	if norm != path {
		variants = append(variants, norm)
	}
	if back := strings.ReplaceAll(path, "/", "\\"); back != path {
		variants = append(variants, back)
	}
	return variants
}

// GeneratesFallbacks reports whether missing textures are substituted
// with synthesized defaults.
func (r *Resolver) GeneratesFallbacks() bool {
	return r.generate
}

// Default returns the shared synthesized default texture for a slot.
func (r *Resolver) Default(slot Slot) *Texture {
	return r.defaultFor(slot)
}

// defaultFor returns the synthesized default for a slot, built once and
// shared for the resolver's lifetime.
func (r *Resolver) defaultFor(slot Slot) *Texture {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tex, ok := r.defaults[slot]; ok {
		return tex
	}
	tex := Synthesize(slot)
	r.defaults[slot] = tex
	return tex
}

// Stats reports counters and cache occupancy.
func (r *Resolver) Stats() Stats {
	r.mu.RLock()
	size := len(r.textures)
	r.mu.RUnlock()
	return Stats{
		Resolved:  r.resolved.Load(),
		Missing:   r.missing.Load(),
		Fallbacks: r.fallbacks.Load(),
		CacheSize: size,
	}
}

// Clear drops every cached texture and resets the counters.
func (r *Resolver) Clear() {
	r.mu.Lock()
	r.paths = make(map[pathKey]pathResult)
	r.textures = make(map[string]*Texture)
	r.defaults = make(map[Slot]*Texture)
	r.mu.Unlock()
	r.resolved.Store(0)
	r.missing.Store(0)
	r.fallbacks.Store(0)
}
