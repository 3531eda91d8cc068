// lodgen imports a model and writes a simplified GLB per requested
// level-of-detail ratio.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	modelimport "github.com/marciocamello/game-engine-ai-sub001"
	"github.com/marciocamello/game-engine-ai-sub001/internal/logging"
)

func main() {
	ratioList := flag.String("ratios", "0.5,0.25,0.1", "Comma-separated triangle ratios in (0,1)")
	outDir := flag.String("o", "", "Output directory (default: model directory)")
	texDirs := flag.String("textures", "", "Comma-separated texture search directories")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: lodgen [flags] model.obj")
		os.Exit(1)
	}
	logging.Setup(*verbose)
	src := flag.Arg(0)

	var ratios []float64
	for _, tok := range strings.Split(*ratioList, ",") {
		r, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil || r <= 0 || r >= 1 {
			fmt.Fprintf(os.Stderr, "Error: bad ratio %q (want a value in (0,1))\n", tok)
			os.Exit(1)
		}
		ratios = append(ratios, r)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(ratios)))

	opts := modelimport.DefaultOptions()
	opts.LODRatios = ratios
	if *texDirs != "" {
		opts.SearchPaths = strings.Split(*texDirs, ",")
	}

	model, err := modelimport.NewImporter(opts).Load(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load error %s: %v\n", src, err)
		os.Exit(1)
	}

	dir := *outDir
	if dir == "" {
		dir = filepath.Dir(src)
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", dir, err)
		os.Exit(1)
	}
	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))

	fmt.Printf("%s: %d triangles\n", filepath.Base(src), model.TotalTriangles)
	for _, r := range ratios {
		lod := &modelimport.Model{
			Path:      model.Path,
			Format:    model.Format,
			Meshes:    model.LODs[r],
			Materials: model.Materials,
		}
		tris := 0
		for _, m := range lod.Meshes {
			tris += m.TriangleCount()
		}

		dst := filepath.Join(dir, fmt.Sprintf("%s_lod%02d.glb", stem, int(r*100)))
		if err := writeGLB(dst, lod); err != nil {
			fmt.Fprintf(os.Stderr, "Export error %s: %v\n", dst, err)
			os.Exit(1)
		}
		fmt.Printf("  %.0f%%: %d triangles -> %s\n", r*100, tris, dst)
	}
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
