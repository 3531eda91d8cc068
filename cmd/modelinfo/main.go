package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/flywave/go3d/vec3"

	modelimport "github.com/marciocamello/game-engine-ai-sub001"
	"github.com/marciocamello/game-engine-ai-sub001/internal/logging"
	"github.com/marciocamello/game-engine-ai-sub001/material"
	"github.com/marciocamello/game-engine-ai-sub001/mesh"
	"github.com/marciocamello/game-engine-ai-sub001/texture"
)

func main() {
	mode := flag.String("mode", "auto", "Material conversion mode: auto, pbr, unlit, preserve")
	texDirs := flag.String("textures", "", "Comma-separated texture search directories")
	scale := flag.Float64("scale", 1, "Uniform import scale")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: modelinfo [flags] model.obj ...")
		os.Exit(1)
	}
	logging.Setup(*verbose)

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
	im := modelimport.NewImporter(opts)

	exit := 0
	for _, arg := range flag.Args() {
		model, err := im.Load(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Load error %s: %v\n", arg, err)
			exit = 1
			continue
		}
		printModel(model)
	}

	st := im.Resolver().Stats()
	if st.Resolved+st.Missing > 0 {
		fmt.Printf("\nTextures: %d resolved, %d missing, %d fallbacks\n",
			st.Resolved, st.Missing, st.Fallbacks)
	}
	os.Exit(exit)
}

func printModel(model *modelimport.Model) {
	fmt.Printf("\n=== %s (format=%s) ===\n", model.Path, model.Format)
	fmt.Printf("Meshes: %d, Vertices: %d, Triangles: %d, Loaded in %s\n",
		len(model.Meshes), model.TotalVertices, model.TotalTriangles, model.LoadTime)
	if model.SkippedFaces > 0 {
		fmt.Printf("Skipped faces: %d\n", model.SkippedFaces)
	}

	min, max := model.Bounds()
	size := vec3.Sub(&max, &min)
	fmt.Printf("Bounds: min=(%.3f, %.3f, %.3f) max=(%.3f, %.3f, %.3f) size=(%.3f, %.3f, %.3f)\n",
		min[0], min[1], min[2], max[0], max[1], max[2], size[0], size[1], size[2])

	for i, m := range model.Meshes {
		printMesh(i, m)
	}

	if len(model.LODs) > 0 {
		ratios := make([]float64, 0, len(model.LODs))
		for r := range model.LODs {
			ratios = append(ratios, r)
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(ratios)))
		for _, r := range ratios {
			tris := 0
			for _, m := range model.LODs[r] {
				tris += m.TriangleCount()
			}
			fmt.Printf("  LOD %.0f%%: %d triangles\n", r*100, tris)
		}
	}

	if len(model.Materials) > 0 {
		fmt.Println("--- MATERIALS ---")
		names := make([]string, 0, len(model.Materials))
		for name := range model.Materials {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			printMaterial(model.Materials[name])
		}
	}

	if len(model.Warnings) > 0 {
		fmt.Printf("--- WARNINGS (%d) ---\n", len(model.Warnings))
		for _, w := range model.Warnings {
			fmt.Printf("  %s\n", w)
		}
	}
}

func printMesh(i int, m *mesh.MeshData) {
	if !m.Valid {
		fmt.Printf("  Mesh[%d] %s: INVALID: %s\n", i, m.Name(), m.Error)
		return
	}

	minV, maxV := m.Bounds()
	s := vec3.Sub(&maxV, &minV)
	matName := m.MaterialName
	if matName == "" {
		matName = "(none)"
	}
	marker := ""
	if m.MaterialName != "" && m.Material == nil {
		marker = " [unresolved]"
	}
	fmt.Printf("  Mesh[%d] %s: v=%d t=%d material=%s%s bbox=(%.3f, %.3f, %.3f)\n",
		i, m.Name(), len(m.Vertices), m.TriangleCount(), matName, marker, s[0], s[1], s[2])
}

func printMaterial(eng *material.Engine) {
	fmt.Printf("  %s [%s]: albedo=(%.2f, %.2f, %.2f) metallic=%.2f roughness=%.2f ao=%.2f transparency=%.2f\n",
		eng.Name, eng.Kind,
		eng.Albedo[0], eng.Albedo[1], eng.Albedo[2],
		eng.Metallic, eng.Roughness, eng.AO, eng.Transparency)

	slots := make([]string, 0, len(eng.Slots))
	for s := range eng.Slots {
		slots = append(slots, string(s))
	}
	sort.Strings(slots)
	for _, s := range slots {
		tex := eng.Slots[texture.Slot(s)]
		src := tex.Path
		if tex.Synthetic {
			src = "(synthesized)"
		}
		fmt.Printf("    %-10s %s\n", s, src)
	}
}
