package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	modelimport "github.com/marciocamello/game-engine-ai-sub001"
	"github.com/marciocamello/game-engine-ai-sub001/internal/logging"
	"github.com/marciocamello/game-engine-ai-sub001/material"
)

func main() {
	out := flag.String("o", "", "Output GLB path (default: model path with .glb extension)")
	mode := flag.String("mode", "auto", "Material conversion mode: auto, pbr, unlit, preserve")
	scale := flag.Float64("scale", 1, "Uniform import scale")
	texDirs := flag.String("textures", "", "Comma-separated texture search directories")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: obj2glb [flags] model.obj")
		os.Exit(1)
	}
	logging.Setup(*verbose)
	src := flag.Arg(0)

	convMode, ok := material.ParseMode(*mode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown conversion mode %q\n", *mode)
		os.Exit(1)
	}

	opts := modelimport.DefaultOptions()
	opts.ConversionMode = convMode
	opts.ImportScale = float32(*scale)
	if *texDirs != "" {
		opts.SearchPaths = strings.Split(*texDirs, ",")
	}

	model, err := modelimport.NewImporter(opts).Load(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load error %s: %v\n", src, err)
		os.Exit(1)
	}

	dst := *out
	if dst == "" {
		dst = strings.TrimSuffix(src, filepath.Ext(src)) + ".glb"
	}

	f, err := os.Create(dst)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", dst, err)
		os.Exit(1)
	}
	if err := modelimport.ExportGLB(f, model); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Export error %s: %v\n", dst, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", dst, err)
		os.Exit(1)
	}

	info, err := os.Stat(dst)
	size := int64(0)
	if err == nil {
		size = info.Size()
	}
	fmt.Printf("%s: %d meshes, %d triangles -> %s (%d bytes)\n",
		filepath.Base(src), len(model.Meshes), model.TotalTriangles, dst, size)
}
