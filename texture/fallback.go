package texture

import (
	"image"
	"image/color"
)

const fallbackSize = 4

// Synthesize builds the flat default texture for a slot: neutral gray
// albedo, dielectric specular, black metallic, mid roughness, white
// occlusion, and the flat (128,128,255) normal map.
func Synthesize(slot Slot) *Texture {
	c := defaultColor(slot)
	img := image.NewNRGBA(image.Rect(0, 0, fallbackSize, fallbackSize))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return &Texture{Image: img, Synthetic: true}
}

func defaultColor(slot Slot) color.NRGBA {
	switch slot {
	case SlotAlbedo:
		return color.NRGBA{R: 204, G: 204, B: 204, A: 255}
	case SlotNormal:
		return color.NRGBA{R: 128, G: 128, B: 255, A: 255}
	case SlotSpecular:
		return color.NRGBA{R: 10, G: 10, B: 10, A: 255}
	case SlotMetallic:
		return color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	case SlotRoughness:
		return color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	case SlotAO:
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	default:
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
}
