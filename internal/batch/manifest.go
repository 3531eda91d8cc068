package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one model in the output manifest.
type ManifestEntry struct {
	Name      string `json:"name"`
	Source    string `json:"source"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Scene     string `json:"scene,omitempty"`
	Meshes    int    `json:"meshes,omitempty"`
	Vertices  int    `json:"vertices,omitempty"`
	Triangles int    `json:"triangles,omitempty"`
	Error     string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json for a finished batch run. Failed
// models are included with their error so the manifest reflects the
// whole run.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:      r.Name,
			Source:    r.Source,
			Thumbnail: r.Thumbnail,
			Scene:     r.Scene,
			Meshes:    r.Meshes,
			Vertices:  r.Vertices,
			Triangles: r.Triangles,
			Error:     r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
