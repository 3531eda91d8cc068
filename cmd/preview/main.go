package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	modelimport "github.com/marciocamello/game-engine-ai-sub001"
	"github.com/marciocamello/game-engine-ai-sub001/internal/logging"
	"github.com/marciocamello/game-engine-ai-sub001/internal/preview"
	"github.com/marciocamello/game-engine-ai-sub001/material"
)

func main() {
	out := flag.String("o", "", "Output WebP path (default: model path with .webp extension)")
	size := flag.Int("size", 256, "Output image edge length in pixels")
	super := flag.Int("supersample", 2, "Render scale factor before downsampling")
	yaw := flag.Float64("yaw", 30, "Camera yaw in degrees")
	pitch := flag.Float64("pitch", -20, "Camera pitch in degrees")
	fov := flag.Float64("fov", 0, "Field of view in degrees (0 = orthographic)")
	mode := flag.String("mode", "auto", "Material conversion mode: auto, pbr, unlit, preserve")
	texDirs := flag.String("textures", "", "Comma-separated texture search directories")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: preview [flags] model.obj")
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
	if *texDirs != "" {
		opts.SearchPaths = strings.Split(*texDirs, ",")
	}

	model, err := modelimport.NewImporter(opts).Load(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load error %s: %v\n", src, err)
		os.Exit(1)
	}

	img := preview.Render(model.Meshes, preview.Options{
		Size:        *size,
		Supersample: *super,
		Camera:      preview.Camera{Yaw: *yaw, Pitch: *pitch, FOV: *fov},
	})

	dst := *out
	if dst == "" {
		dst = strings.TrimSuffix(src, filepath.Ext(src)) + ".webp"
	}
	f, err := os.Create(dst)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", dst, err)
		os.Exit(1)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Encode error %s: %v\n", dst, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", dst, err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d meshes, %d triangles -> %s (%dx%d)\n",
		filepath.Base(src), len(model.Meshes), model.TotalTriangles, dst, *size, *size)
}
