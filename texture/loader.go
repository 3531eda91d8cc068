package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"

	_ "github.com/marciocamello/game-engine-ai-sub001/internal/dds"
)

// LoadFile reads an image file and decodes it into an NRGBA texture.
// PNG and JPEG decode through the stdlib; TGA, BMP, and DDS through
// registered formats.
func LoadFile(path string) (*Texture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	return &Texture{Path: path, Image: toNRGBA(img)}, nil
}

// VerifyImage sniffs the file header and rejects files whose content is not
// a recognized image format. TGA carries no magic bytes, so .tga files are
// accepted on extension alone.
func VerifyImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, 261)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("texture: read %s: %w", path, err)
	}
	head = head[:n]

	if filetype.IsImage(head) {
		return nil
	}
	if len(head) >= 4 && string(head[:4]) == "DDS " {
		return nil
	}
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		return nil
	}
	return fmt.Errorf("texture: %s is not an image", path)
}

// toNRGBA converts any decoded image to NRGBA.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// Alpha-less sources: draw then force opaque alpha.
		draw.Draw(dst, b, src, b.Min, draw.Src)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.Pix[dst.PixOffset(x, y)+3] = 255
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
