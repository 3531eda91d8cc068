package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func stubLoad(counter *atomic.Int64) LoadFunc {
	return func(path string) (*Texture, error) {
		counter.Add(1)
		return &Texture{Path: path, Image: image.NewNRGBA(image.Rect(0, 0, 1, 1))}, nil
	}
}

func TestResolveSearchOrder(t *testing.T) {
	base := t.TempDir()
	search := t.TempDir()
	writePNG(t, filepath.Join(base, "wood.png"))
	writePNG(t, filepath.Join(search, "stone.png"))

	r := NewResolver(Options{SearchPaths: []string{search}})

	got, ok := r.Resolve(base, "wood.png")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "wood.png"), got)

	got, ok = r.Resolve(base, "stone.png")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(search, "stone.png"), got)

	// A stale directory prefix still finds the file next to the model.
	got, ok = r.Resolve(base, "old/assets/wood.png")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "wood.png"), got)

	_, ok = r.Resolve(base, "absent.png")
	assert.False(t, ok)
}

func TestResolveExtensionVariants(t *testing.T) {
	base := t.TempDir()
	writePNG(t, filepath.Join(base, "wood.png"))

	r := NewResolver(Options{})

	got, ok := r.Resolve(base, "wood.tga")
	require.True(t, ok, "alternate extension should be tried")
	assert.Equal(t, filepath.Join(base, "wood.png"), got)

	got, ok = r.Resolve(base, "wood.PNG")
	require.True(t, ok, "uppercase extension should fall back to lowercase")
	assert.Equal(t, filepath.Join(base, "wood.png"), got)
}

func TestResolveStemCaseVariants(t *testing.T) {
	base := t.TempDir()
	writePNG(t, filepath.Join(base, "BRICK.png"))

	r := NewResolver(Options{})
	got, ok := r.Resolve(base, "brick.png")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "BRICK.png"), got)
}

func TestResolveBackslashSeparators(t *testing.T) {
	base := t.TempDir()
	writePNG(t, filepath.Join(base, "textures", "wood.png"))

	r := NewResolver(Options{})
	got, ok := r.Resolve(base, `textures\wood.png`)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "textures", "wood.png"), got)
}

func TestResolveMemoizesLookups(t *testing.T) {
	var stats atomic.Int64
	r := NewResolver(Options{
		Stat: func(string) bool { stats.Add(1); return false },
	})

	_, ok := r.Resolve("/models", "missing.png")
	assert.False(t, ok)
	probes := stats.Load()
	require.Greater(t, probes, int64(0))

	_, ok = r.Resolve("/models", "missing.png")
	assert.False(t, ok)
	assert.Equal(t, probes, stats.Load(), "second lookup must hit the cache")
	assert.Equal(t, int64(1), r.Stats().Missing)
}

func TestLoadCountsMissOncePerReference(t *testing.T) {
	var decodes atomic.Int64
	r := NewResolver(Options{
		GenerateFallbacks: true,
		Stat:              func(string) bool { return false },
		Load:              stubLoad(&decodes),
	})

	first := r.Load(SlotAlbedo, "/models", "missing.png")
	require.NotNil(t, first)
	assert.True(t, first.Synthetic)

	second := r.Load(SlotAlbedo, "/models", "missing.png")
	assert.Same(t, first, second)

	st := r.Stats()
	assert.Equal(t, int64(1), st.Missing)
	assert.Equal(t, int64(1), st.Fallbacks)
	assert.Equal(t, int64(0), st.Resolved)
	assert.Equal(t, int64(0), decodes.Load())

	r.Load(SlotAlbedo, "/models", "other.png")
	st = r.Stats()
	assert.Equal(t, int64(2), st.Missing)
	assert.Equal(t, int64(2), st.Fallbacks)
}

func TestLoadWithoutFallbacksReturnsNil(t *testing.T) {
	r := NewResolver(Options{
		Stat: func(string) bool { return false },
	})
	assert.Nil(t, r.Load(SlotAlbedo, "/models", "missing.png"))
	assert.Nil(t, r.Load(SlotAlbedo, "", ""))
}

func TestLoadSharesDecodeAcrossReferences(t *testing.T) {
	base := t.TempDir()
	writePNG(t, filepath.Join(base, "wood.png"))

	var decodes atomic.Int64
	r := NewResolver(Options{Load: stubLoad(&decodes)})

	a := r.Load(SlotAlbedo, base, "wood.png")
	b := r.Load(SlotAlbedo, base, "wood.PNG")
	require.NotNil(t, a)
	assert.Same(t, a, b, "both spellings resolve to one file, one decode")
	assert.Equal(t, int64(1), decodes.Load())
	assert.Equal(t, int64(2), r.Stats().Resolved)
	assert.Equal(t, 1, r.Stats().CacheSize)
}

func TestClearResetsCachesAndCounters(t *testing.T) {
	var decodes atomic.Int64
	base := t.TempDir()
	writePNG(t, filepath.Join(base, "wood.png"))

	r := NewResolver(Options{Load: stubLoad(&decodes)})
	require.NotNil(t, r.Load(SlotAlbedo, base, "wood.png"))

	r.Clear()
	st := r.Stats()
	assert.Equal(t, int64(0), st.Resolved)
	assert.Equal(t, 0, st.CacheSize)

	require.NotNil(t, r.Load(SlotAlbedo, base, "wood.png"))
	assert.Equal(t, int64(2), decodes.Load(), "clear drops the decoded texture")
}

func TestSynthesizeSlotColors(t *testing.T) {
	cases := []struct {
		slot Slot
		want color.NRGBA
	}{
		{SlotAlbedo, color.NRGBA{R: 204, G: 204, B: 204, A: 255}},
		{SlotNormal, color.NRGBA{R: 128, G: 128, B: 255, A: 255}},
		{SlotSpecular, color.NRGBA{R: 10, G: 10, B: 10, A: 255}},
		{SlotMetallic, color.NRGBA{R: 0, G: 0, B: 0, A: 255}},
		{SlotRoughness, color.NRGBA{R: 128, G: 128, B: 128, A: 255}},
		{SlotAO, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{SlotHeight, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tc := range cases {
		tex := Synthesize(tc.slot)
		require.NotNil(t, tex.Image, "slot %s", tc.slot)
		assert.True(t, tex.Synthetic)
		assert.Equal(t, fallbackSize, tex.Image.Rect.Dx())
		got := tex.Image.NRGBAAt(0, 0)
		assert.Equal(t, tc.want, got, "slot %s", tc.slot)
	}
}

func TestIndexPrefersAlphaCapableFormats(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a", "wood.jpg"))
	writePNG(t, filepath.Join(dir, "b", "wood.png"))

	idx := BuildIndex([]string{dir})
	assert.Equal(t, 1, idx.Len())

	got, ok := idx.Lookup(`legacy\path\WOOD.JPG`)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "b", "wood.png"), got)
}

func TestResolverIndexFallback(t *testing.T) {
	base := t.TempDir()
	search := t.TempDir()
	writePNG(t, filepath.Join(search, "deep", "nested", "wood.png"))

	r := NewResolver(Options{SearchPaths: []string{search}})
	_, ok := r.Resolve(base, "elsewhere/wood.png")
	assert.False(t, ok, "without an index only direct probes run")

	r2 := NewResolver(Options{SearchPaths: []string{search}})
	r2.BuildIndex()
	got, ok := r2.Resolve(base, "elsewhere/wood.png")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(search, "deep", "nested", "wood.png"), got)
}
