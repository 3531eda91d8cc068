// watchimport keeps model files imported: it reloads each watched OBJ
// when it or a companion file changes and rewrites the GLB next to it.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	modelimport "github.com/marciocamello/game-engine-ai-sub001"
	"github.com/marciocamello/game-engine-ai-sub001/internal/logging"
)

func main() {
	glb := flag.Bool("glb", true, "Rewrite the GLB after each reload")
	texDirs := flag.String("textures", "", "Comma-separated texture search directories")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: watchimport [flags] model.obj ...")
		os.Exit(1)
	}
	logging.Setup(*verbose)

	opts := modelimport.DefaultOptions()
	if *texDirs != "" {
		opts.SearchPaths = strings.Split(*texDirs, ",")
	}
	im := modelimport.NewImporter(opts)

	watcher, err := im.Watch(func(path string, model *modelimport.Model, err error) {
		name := filepath.Base(path)
		if err != nil {
			fmt.Printf("%s: reload failed: %v\n", name, err)
			return
		}
		fmt.Printf("%s: %d meshes, %d triangles\n", name, len(model.Meshes), model.TotalTriangles)
		if *glb {
			dst := strings.TrimSuffix(path, filepath.Ext(path)) + ".glb"
			if err := writeGLB(dst, model); err != nil {
				fmt.Printf("%s: glb export failed: %v\n", name, err)
			}
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting watcher: %v\n", err)
		os.Exit(1)
	}
	defer watcher.Close()

	for _, arg := range flag.Args() {
		if _, err := im.Load(arg); err != nil {
			fmt.Fprintf(os.Stderr, "Load error %s: %v\n", arg, err)
			os.Exit(1)
		}
		if err := watcher.Add(arg); err != nil {
			fmt.Fprintf(os.Stderr, "Watch error %s: %v\n", arg, err)
			os.Exit(1)
		}
		fmt.Printf("watching %s\n", arg)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	st := watcher.Stats()
	fmt.Printf("\n%d events, %d reloads, %d failures\n", st.Events, st.Reloads, st.Failures)
}

func writeGLB(path string, model *modelimport.Model) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := modelimport.ExportGLB(f, model); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
