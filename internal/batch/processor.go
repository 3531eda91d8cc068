// Package batch imports every model under an asset directory with a
// worker pool and writes thumbnails, GLB scenes, and a manifest to an
// output directory.
package batch

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	modelimport "github.com/marciocamello/game-engine-ai-sub001"
	"github.com/marciocamello/game-engine-ai-sub001/internal/preview"
)

// Config holds the shared resources for a batch run.
type Config struct {
	AssetDir    string
	OutputDir   string
	Importer    *modelimport.Importer
	RenderSize  int
	Supersample int
	Thumbnails  bool
	GLB         bool
	Workers     int
}

// Result holds the outcome of processing one model file.
type Result struct {
	Name      string // asset-relative path without extension
	Source    string // asset-relative source path
	Thumbnail string // output-relative thumbnail path, when written
	Scene     string // output-relative GLB path, when written
	Meshes    int
	Vertices  int
	Triangles int
	Success   bool
	Error     string
}

// Discover walks root and returns every importable model file, sorted.
func Discover(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if modelimport.CanImport(filepath.Ext(path)) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Run processes all model files using a worker pool.
func Run(cfg Config, paths []string) []Result {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	total := len(paths)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f models/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	work := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = processFile(cfg, paths[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range paths {
		work <- i
	}
	close(work)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, path string) Result {
	source, err := filepath.Rel(cfg.AssetDir, path)
	if err != nil {
		source = filepath.Base(path)
	}
	source = filepath.ToSlash(source)
	stem := strings.TrimSuffix(source, filepath.Ext(source))

	res := Result{Name: stem, Source: source}

	model, err := cfg.Importer.Load(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Meshes = len(model.Meshes)
	res.Vertices = model.TotalVertices
	res.Triangles = model.TotalTriangles

	outStem := filepath.Join(cfg.OutputDir, filepath.FromSlash(stem))
	if cfg.Thumbnails || cfg.GLB {
		if err := os.MkdirAll(filepath.Dir(outStem), 0755); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	if cfg.Thumbnails {
		img := preview.Render(model.Meshes, preview.Options{
			Size:        cfg.RenderSize,
			Supersample: cfg.Supersample,
		})
		if err := writeWebP(outStem+".webp", img); err != nil {
			res.Error = err.Error()
			return res
		}
		res.Thumbnail = stem + ".webp"
	}

	if cfg.GLB {
		if err := writeGLB(outStem+".glb", model); err != nil {
			res.Error = err.Error()
			return res
		}
		res.Scene = stem + ".glb"
	}

	res.Success = true
	return res
}

func writeWebP(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("webp encode: %w", err)
	}
	return nil
}

func writeGLB(path string, model *modelimport.Model) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return modelimport.ExportGLB(f, model)
}
