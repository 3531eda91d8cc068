package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// Index maps lowercase filename stems to filesystem paths, giving the
// resolver a last-chance case-insensitive lookup across the search paths.
// Alpha-capable formats (PNG, TGA, DDS) take priority over JPEG/BMP for the
// same stem.
type Index struct {
	entries map[string]string
}

func alphaCapable(ext string) bool {
	switch ext {
	case ".png", ".tga", ".dds":
		return true
	}
	return false
}

// BuildIndex walks each directory recursively, registering every file with
// a known texture extension.
func BuildIndex(dirs []string) *Index {
	idx := &Index{entries: make(map[string]string)}

	for _, dir := range dirs {
		filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			known := false
			for _, e := range fallbackExtensions {
				if ext == e {
					known = true
					break
				}
			}
			if !known {
				return nil
			}
			stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

			existing, exists := idx.entries[stem]
			if !exists {
				idx.entries[stem] = path
			} else if alphaCapable(ext) && !alphaCapable(strings.ToLower(filepath.Ext(existing))) {
				idx.entries[stem] = path
			}
			return nil
		})
	}

	return idx
}

// Lookup returns the indexed path for a reference's filename stem, ignoring
// any directory prefix and separator style.
func (idx *Index) Lookup(ref string) (string, bool) {
	base := baseName(ref)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed stems.
func (idx *Index) Len() int {
	return len(idx.entries)
}
