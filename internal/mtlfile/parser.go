// Package mtlfile parses Wavefront MTL material libraries into raw
// material records. Tokens are matched case-insensitively; malformed
// lines are recorded as warnings and skipped, never fatal.
package mtlfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/flywave/go3d/vec3"

	"github.com/marciocamello/game-engine-ai-sub001/internal/logging"
	"github.com/marciocamello/game-engine-ai-sub001/material"
)

var log = logging.New("mtl")

// ErrNoMaterials marks a library that parsed without a single record.
var ErrNoMaterials = errors.New("mtlfile: no materials")

// Result is the outcome of parsing one material library.
type Result struct {
	// Records holds the materials in definition order.
	Records []*material.Raw
	// ByName indexes Records by material name.
	ByName map[string]*material.Raw

	Warnings []string
	Elapsed  time.Duration
}

// Count returns the number of parsed records.
func (r *Result) Count() int {
	return len(r.Records)
}

func (r *Result) warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	log.Warningf("%s", msg)
}

// ParseFile reads a library from disk.
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mtlfile: open %s: %w", path, err)
	}
	defer f.Close()

	res, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("mtlfile: parse %s: %w", path, err)
	}
	return res, nil
}

// Parse reads a material library. It fails only when nothing could be
// read or no material was defined.
func Parse(r io.Reader) (*Result, error) {
	start := time.Now()
	res := &Result{ByName: make(map[string]*material.Raw)}

	var cur *material.Raw
	flush := func() {
		if cur == nil {
			return
		}
		res.Records = append(res.Records, cur)
		res.ByName[cur.Name] = cur
		cur = nil
	}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
			continue
		}

		if strings.EqualFold(tokens[0], "newmtl") {
			if len(tokens) < 2 {
				res.warnf("line %d: newmtl without a name", lineNum)
				continue
			}
			flush()
			cur = material.NewRaw(tokens[1])
			continue
		}

		if cur == nil {
			res.warnf("line %d: %q before any newmtl", lineNum, tokens[0])
			continue
		}
		if err := parseProperty(cur, tokens); err != nil {
			res.warnf("line %d: %v", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mtlfile: read: %w", err)
	}
	flush()

	res.Elapsed = time.Since(start)
	if len(res.Records) == 0 {
		return nil, ErrNoMaterials
	}
	log.Debugf("parsed %d materials in %s", len(res.Records), res.Elapsed)
	return res, nil
}

func parseProperty(m *material.Raw, tokens []string) error {
	switch strings.ToLower(tokens[0]) {
	case "ka":
		return parseColor(tokens, &m.Ambient)
	case "kd":
		return parseColor(tokens, &m.Diffuse)
	case "ks":
		return parseColor(tokens, &m.Specular)
	case "ke":
		return parseColor(tokens, &m.Emissive)
	case "ns":
		return parseScalar(tokens, &m.Shininess)
	case "d":
		return parseScalar(tokens, &m.Transparency)
	case "tr":
		// Tr is inverted dissolve: Tr 0.3 means 70% opaque.
		var tr float32
		if err := parseScalar(tokens, &tr); err != nil {
			return err
		}
		m.Transparency = 1 - tr
	case "ni":
		return parseScalar(tokens, &m.IOR)
	case "illum":
		if len(tokens) < 2 {
			return fmt.Errorf("illum: missing value")
		}
		v, err := strconv.Atoi(tokens[1])
		if err != nil {
			return fmt.Errorf("illum: %w", err)
		}
		m.Illum = v
	case "pm":
		return parseScalar(tokens, &m.Metallic)
	case "pr":
		return parseScalar(tokens, &m.Roughness)
	case "map_kd":
		return parseMap(tokens, &m.DiffuseMap)
	case "map_ka":
		return parseMap(tokens, &m.AmbientMap)
	case "map_ks":
		return parseMap(tokens, &m.SpecularMap)
	case "map_bump", "bump":
		return parseMap(tokens, &m.NormalMap)
	case "map_disp":
		return parseMap(tokens, &m.HeightMap)
	case "map_d":
		return parseMap(tokens, &m.AlphaMap)
	case "refl":
		return parseMap(tokens, &m.ReflectionMap)
	case "map_pm":
		return parseMap(tokens, &m.MetallicMap)
	case "map_pr":
		return parseMap(tokens, &m.RoughnessMap)
	}
	// Unrecognized tokens are ignored, not errors.
	return nil
}

func parseColor(tokens []string, dst *vec3.T) error {
	if len(tokens) < 4 {
		return fmt.Errorf("%s: expected 3 components, got %d", tokens[0], len(tokens)-1)
	}
	var v vec3.T
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(tokens[i+1], 32)
		if err != nil {
			return fmt.Errorf("%s: %w", tokens[0], err)
		}
		v[i] = float32(f)
	}
	*dst = v
	return nil
}

func parseScalar(tokens []string, dst *float32) error {
	if len(tokens) < 2 {
		return fmt.Errorf("%s: missing value", tokens[0])
	}
	f, err := strconv.ParseFloat(tokens[1], 32)
	if err != nil {
		return fmt.Errorf("%s: %w", tokens[0], err)
	}
	*dst = float32(f)
	return nil
}

// parseMap extracts the file reference from a texture-map line, skipping
// any leading "-option value" pairs.
func parseMap(tokens []string, dst *string) error {
	for i := 1; i < len(tokens); {
		if strings.HasPrefix(tokens[i], "-") {
			i += 2
			continue
		}
		*dst = tokens[i]
		return nil
	}
	return fmt.Errorf("%s: missing file name", tokens[0])
}
