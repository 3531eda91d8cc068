package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	modelimport "github.com/marciocamello/game-engine-ai-sub001"
	"github.com/marciocamello/game-engine-ai-sub001/internal/batch"
	"github.com/marciocamello/game-engine-ai-sub001/internal/config"
	"github.com/marciocamello/game-engine-ai-sub001/internal/logging"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to import.json config file")
	assetDir := flag.String("assets", "", "Asset directory to scan (default: current directory)")
	outputDir := flag.String("output", "", "Output directory (default: <assets>/imported)")
	mode := flag.String("mode", "", "Material conversion mode: auto, pbr, unlit, preserve")
	scale := flag.Float64("scale", 0, "Uniform import scale applied to vertex positions")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Import only the first N models for testing")
	glb := flag.Bool("glb", false, "Write a GLB scene per model")
	thumbs := flag.Bool("thumbs", false, "Write a WebP thumbnail per model")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()
	logging.Setup(*verbose)

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		AssetDir:  *assetDir,
		OutputDir: *outputDir,
		Mode:      *mode,
		Scale:     *scale,
		Workers:   *workers,
	})
	if *glb {
		cfg.EmitGLB = true
	}
	if *thumbs {
		cfg.EmitThumbnails = true
	}
	// With nothing requested, emit both
	if !cfg.EmitGLB && !cfg.EmitThumbnails {
		cfg.EmitGLB = true
		cfg.EmitThumbnails = true
	}

	paths, err := batch.Discover(cfg.AssetDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning assets: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(paths) {
		paths = paths[:*testN]
	}

	if len(paths) == 0 {
		fmt.Println("No model files to import.")
		os.Exit(0)
	}

	im := modelimport.NewImporter(cfg.ImporterOptions())

	banner := "OBJ import -> GLB + WebP"
	if *testN > 0 {
		banner += fmt.Sprintf(" (TEST: first %d)", *testN)
	}
	fmt.Println(banner)
	fmt.Printf("Models: %d, Workers: %d\n", len(paths), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		AssetDir:    cfg.AssetDir,
		OutputDir:   cfg.OutputDir,
		Importer:    im,
		RenderSize:  cfg.ThumbnailSize,
		Supersample: cfg.Supersample,
		Thumbnails:  cfg.EmitThumbnails,
		GLB:         cfg.EmitGLB,
		Workers:     cfg.Workers,
	}, paths)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Imported: %d/%d\n", success, len(paths))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
