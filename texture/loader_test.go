package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileDecodesPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "check.png")

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	tex, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, tex.Path)
	assert.False(t, tex.Synthetic)
	require.NotNil(t, tex.Image)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, tex.Image.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 128}, tex.Image.NRGBAAt(1, 1))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestLoadFileRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image at all"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestVerifyImage(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.png")
	writePNG(t, good)
	assert.NoError(t, VerifyImage(good))

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("plain text, long enough to sniff but no magic"), 0o644))
	assert.Error(t, VerifyImage(bad))

	// DDS has its own magic that the generic sniffer does not know.
	dds := filepath.Join(dir, "surface.dds")
	require.NoError(t, os.WriteFile(dds, append([]byte("DDS "), make([]byte, 124)...), 0o644))
	assert.NoError(t, VerifyImage(dds))

	// TGA has no magic at all; the extension is trusted.
	tga := filepath.Join(dir, "sprite.tga")
	require.NoError(t, os.WriteFile(tga, make([]byte, 64), 0o644))
	assert.NoError(t, VerifyImage(tga))
}
