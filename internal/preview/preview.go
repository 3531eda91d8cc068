// Package preview renders imported meshes to small shaded images for
// thumbnails and spot checks. It is a software rasterizer with flat
// shading, a z-buffer, bilinear texture sampling, and ACES tone mapping.
// Frames are rendered at a supersampled size and downsampled with
// premultiplied alpha.
package preview

import (
	"image"
	"math"

	"github.com/flywave/go3d/vec3"

	"github.com/marciocamello/game-engine-ai-sub001/internal/mathutil"
	"github.com/marciocamello/game-engine-ai-sub001/material"
	"github.com/marciocamello/game-engine-ai-sub001/mesh"
	"github.com/marciocamello/game-engine-ai-sub001/texture"
)

// Options controls the output image.
type Options struct {
	// Size is the output edge length in pixels. Default 256.
	Size int
	// Supersample is the render scale factor before downsampling.
	// Default 2.
	Supersample int
	// Camera orients the view. The zero value selects DefaultCamera.
	Camera Camera
}

func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = 256
	}
	if o.Supersample <= 0 {
		o.Supersample = 2
	}
	if o.Camera == (Camera{}) {
		o.Camera = DefaultCamera()
	}
	return o
}

// Render draws the meshes on a transparent background. Meshes without
// geometry are skipped; rendering nothing produces a fully transparent
// image of the requested size.
func Render(meshes []*mesh.MeshData, opts Options) *image.NRGBA {
	opts = opts.withDefaults()
	renderSize := opts.Size * opts.Supersample
	rot := opts.Camera.rotation()

	center, span, ok := viewBounds(meshes, rot)
	if !ok {
		return image.NewNRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	}

	margin := 16 * opts.Supersample
	scale := float64(renderSize-2*margin) / span

	fb := NewFrameBuffer(renderSize, renderSize)
	for _, m := range meshes {
		if m == nil || len(m.Vertices) == 0 || len(m.Indices) < 3 {
			continue
		}
		drawMesh(fb, m, opts.Camera, rot, center, scale, renderSize)
	}

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(img.Pix, fb.Color)
	return Downsample(img, opts.Size)
}

// viewBounds returns the view-space center and XY span of all vertices.
func viewBounds(meshes []*mesh.MeshData, rot mathutil.Mat3) (center mathutil.Vec3, span float64, ok bool) {
	min := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, m := range meshes {
		if m == nil {
			continue
		}
		for i := range m.Vertices {
			t := rot.MulVec3(vecOf(m.Vertices[i].Position))
			for k := 0; k < 3; k++ {
				if t[k] < min[k] {
					min[k] = t[k]
				}
				if t[k] > max[k] {
					max[k] = t[k]
				}
			}
			ok = true
		}
	}
	if !ok {
		return mathutil.Vec3{}, 0, false
	}
	center = mathutil.Vec3{
		(min[0] + max[0]) / 2,
		(min[1] + max[1]) / 2,
		(min[2] + max[2]) / 2,
	}
	span = max[0] - min[0]
	if s := max[1] - min[1]; s > span {
		span = s
	}
	if span < 0.001 {
		span = 0.001
	}
	return center, span, true
}

func drawMesh(fb *FrameBuffer, m *mesh.MeshData, cam Camera, rot mathutil.Mat3, center mathutil.Vec3, scale float64, renderSize int) {
	px, py, pz := cam.project(m.Vertices, rot, center, scale, renderSize)

	uvs := make([][2]float64, len(m.Vertices))
	for i := range m.Vertices {
		uvs[i] = [2]float64{
			float64(m.Vertices[i].TexCoord[0]),
			float64(m.Vertices[i].TexCoord[1]),
		}
	}

	tex := albedoImage(m.Material)
	defR, defG, defB, defA := flatColor(m.Material, tex)
	lc := MaterialLight(m.Material)

	for i := 0; i+2 < len(m.Indices); i += 3 {
		RasterizeTriangle(fb, px, py, pz, uvs,
			int(m.Indices[i]), int(m.Indices[i+1]), int(m.Indices[i+2]),
			tex, defR, defG, defB, defA, &lc)
	}
}

// albedoImage returns the decoded albedo texture when the material
// carries a real one. Synthesized fallbacks are flat colors, which the
// flatColor path renders without per-pixel sampling.
func albedoImage(eng *material.Engine) *image.NRGBA {
	if eng == nil {
		return nil
	}
	t := eng.Texture(texture.SlotAlbedo)
	if t == nil || t.Image == nil || t.Synthetic {
		return nil
	}
	return t.Image
}

// flatColor picks the color drawn where no texture sample exists: the
// texture average when textured, the material albedo otherwise, and a
// neutral grey when there is no material at all.
func flatColor(eng *material.Engine, tex *image.NRGBA) (r, g, b, a uint8) {
	if tex != nil {
		return averageColor(tex)
	}
	if eng != nil {
		return channel(eng.Albedo[0]), channel(eng.Albedo[1]), channel(eng.Albedo[2]), channel(eng.Transparency)
	}
	return 160, 160, 170, 255
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func averageColor(tex *image.NRGBA) (uint8, uint8, uint8, uint8) {
	b := tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 160, 160, 170, 255
	}

	var sumR, sumG, sumB float64
	stride := tex.Stride
	for y := 0; y < h; y++ {
		off := y * stride
		for x := 0; x < w; x++ {
			i := off + x*4
			sumR += float64(tex.Pix[i])
			sumG += float64(tex.Pix[i+1])
			sumB += float64(tex.Pix[i+2])
		}
	}
	n := float64(w * h)
	return uint8(sumR/n + 0.5), uint8(sumG/n + 0.5), uint8(sumB/n + 0.5), 255
}

func vecOf(v vec3.T) mathutil.Vec3 {
	return mathutil.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}
