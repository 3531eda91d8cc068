// texprobe parses a material library and reports where every texture
// reference resolves, without decoding anything.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marciocamello/game-engine-ai-sub001/internal/logging"
	"github.com/marciocamello/game-engine-ai-sub001/internal/mtlfile"
	"github.com/marciocamello/game-engine-ai-sub001/material"
	"github.com/marciocamello/game-engine-ai-sub001/texture"
)

func main() {
	texDirs := flag.String("textures", "", "Comma-separated texture search directories")
	index := flag.Bool("index", false, "Build a case-insensitive stem index over the search directories")
	verify := flag.Bool("verify", false, "Sniff file content before accepting a resolved path")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: texprobe [flags] materials.mtl ...")
		os.Exit(1)
	}
	logging.Setup(*verbose)

	var search []string
	if *texDirs != "" {
		search = strings.Split(*texDirs, ",")
	}
	resolver := texture.NewResolver(texture.Options{
		SearchPaths:   search,
		VerifyContent: *verify,
	})
	if *index {
		resolver.BuildIndex()
	}

	exit := 0
	for _, arg := range flag.Args() {
		lib, err := mtlfile.ParseFile(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			exit = 1
			continue
		}
		baseDir := filepath.Dir(arg)
		fmt.Printf("\n=== %s (%d materials) ===\n", arg, lib.Count())
		for _, raw := range lib.Records {
			probeMaterial(resolver, baseDir, raw)
		}
		for _, w := range lib.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}
	}

	st := resolver.Stats()
	fmt.Printf("\nReferences: %d resolved, %d missing\n", st.Resolved, st.Missing)
	if st.Missing > 0 {
		exit = 1
	}
	os.Exit(exit)
}

func probeMaterial(resolver *texture.Resolver, baseDir string, raw *material.Raw) {
	refs := []struct {
		slot string
		path string
	}{
		{"diffuse", raw.DiffuseMap},
		{"ambient", raw.AmbientMap},
		{"specular", raw.SpecularMap},
		{"normal", raw.NormalMap},
		{"height", raw.HeightMap},
		{"alpha", raw.AlphaMap},
		{"reflection", raw.ReflectionMap},
		{"metallic", raw.MetallicMap},
		{"roughness", raw.RoughnessMap},
	}

	fmt.Printf("%s:\n", raw.Name)
	any := false
	for _, ref := range refs {
		if ref.path == "" {
			continue
		}
		any = true
		if resolved, ok := resolver.Resolve(baseDir, ref.path); ok {
			fmt.Printf("  %-10s %s -> %s\n", ref.slot, ref.path, resolved)
		} else {
			fmt.Printf("  %-10s %s -> MISSING\n", ref.slot, ref.path)
		}
	}
	if !any {
		fmt.Println("  (no texture references)")
	}
}
