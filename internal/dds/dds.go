// Package dds decodes DirectDraw Surface textures: DXT1/DXT3/DXT5 block
// compression and uncompressed masked RGB(A). Registering the format lets
// image.Decode handle .dds files alongside PNG/JPEG/TGA/BMP.
//
// Only the top mip level of 2D surfaces is decoded; DX10 extended headers
// are rejected.
package dds

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
)

const (
	headerSize = 124
	dataOffset = 4 + headerSize

	pfFourCC      = 0x4
	pfRGB         = 0x40
	pfAlphaPixels = 0x1
)

type header struct {
	width, height uint32
	flags         uint32

	pfFlags  uint32
	fourCC   string
	bitCount uint32
	maskR    uint32
	maskG    uint32
	maskB    uint32
	maskA    uint32
}

func init() {
	image.RegisterFormat("dds", "DDS ", Decode, DecodeConfig)
}

func parseHeader(r io.Reader) (*header, error) {
	buf := make([]byte, dataOffset)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("dds: short header: %w", err)
	}
	if string(buf[:4]) != "DDS " {
		return nil, fmt.Errorf("dds: bad magic")
	}
	le := binary.LittleEndian
	if le.Uint32(buf[4:]) != headerSize {
		return nil, fmt.Errorf("dds: unexpected header size %d", le.Uint32(buf[4:]))
	}

	h := &header{
		flags:    le.Uint32(buf[8:]),
		height:   le.Uint32(buf[12:]),
		width:    le.Uint32(buf[16:]),
		pfFlags:  le.Uint32(buf[80:]),
		fourCC:   string(buf[84:88]),
		bitCount: le.Uint32(buf[88:]),
		maskR:    le.Uint32(buf[92:]),
		maskG:    le.Uint32(buf[96:]),
		maskB:    le.Uint32(buf[100:]),
		maskA:    le.Uint32(buf[104:]),
	}
	if h.width == 0 || h.height == 0 {
		return nil, fmt.Errorf("dds: zero dimensions %dx%d", h.width, h.height)
	}
	if h.width > 1<<15 || h.height > 1<<15 {
		return nil, fmt.Errorf("dds: unreasonable dimensions %dx%d", h.width, h.height)
	}
	if h.pfFlags&pfFourCC != 0 && h.fourCC == "DX10" {
		return nil, fmt.Errorf("dds: DX10 extended header not supported")
	}
	return h, nil
}

// DecodeConfig returns the dimensions and color model without decoding
// pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := parseHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(h.width),
		Height:     int(h.height),
	}, nil
}

// Decode reads the top-level surface into an NRGBA image.
func Decode(r io.Reader) (image.Image, error) {
	h, err := parseHeader(r)
	if err != nil {
		return nil, err
	}

	w, ht := int(h.width), int(h.height)
	img := image.NewNRGBA(image.Rect(0, 0, w, ht))

	if h.pfFlags&pfFourCC != 0 {
		switch h.fourCC {
		case "DXT1":
			return img, decodeBlocks(r, img, 8, decodeDXT1Block)
		case "DXT3":
			return img, decodeBlocks(r, img, 16, decodeDXT3Block)
		case "DXT5":
			return img, decodeBlocks(r, img, 16, decodeDXT5Block)
		default:
			return nil, fmt.Errorf("dds: unsupported fourcc %q", h.fourCC)
		}
	}
	if h.pfFlags&pfRGB != 0 {
		return img, decodeMasked(r, img, h)
	}
	return nil, fmt.Errorf("dds: unsupported pixel format flags %#x", h.pfFlags)
}

// decodeBlocks walks 4x4 blocks in raster order, discarding texels that
// fall outside non-multiple-of-4 dimensions.
func decodeBlocks(r io.Reader, img *image.NRGBA, blockSize int, decode func(block []byte, texels *[16][4]uint8)) error {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	bw := (w + 3) / 4
	bh := (h + 3) / 4

	block := make([]byte, blockSize)
	var texels [16][4]uint8

	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			if _, err := io.ReadFull(r, block); err != nil {
				return fmt.Errorf("dds: block (%d,%d): %w", bx, by, err)
			}
			decode(block, &texels)
			for ty := 0; ty < 4; ty++ {
				y := by*4 + ty
				if y >= h {
					break
				}
				for tx := 0; tx < 4; tx++ {
					x := bx*4 + tx
					if x >= w {
						break
					}
					t := texels[ty*4+tx]
					i := img.PixOffset(x, y)
					img.Pix[i] = t[0]
					img.Pix[i+1] = t[1]
					img.Pix[i+2] = t[2]
					img.Pix[i+3] = t[3]
				}
			}
		}
	}
	return nil
}

func expand565(c uint16) (r, g, b uint8) {
	r5 := uint8(c >> 11 & 0x1f)
	g6 := uint8(c >> 5 & 0x3f)
	b5 := uint8(c & 0x1f)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// colorPalette fills the 4-entry palette shared by every DXT variant.
// opaque forces 4-color mode, which DXT3/DXT5 always use.
func colorPalette(block []byte, opaque bool) (pal [4][4]uint8) {
	c0 := binary.LittleEndian.Uint16(block)
	c1 := binary.LittleEndian.Uint16(block[2:])
	r0, g0, b0 := expand565(c0)
	r1, g1, b1 := expand565(c1)

	pal[0] = [4]uint8{r0, g0, b0, 255}
	pal[1] = [4]uint8{r1, g1, b1, 255}
	if opaque || c0 > c1 {
		pal[2] = [4]uint8{u8((2*int(r0) + int(r1)) / 3), u8((2*int(g0) + int(g1)) / 3), u8((2*int(b0) + int(b1)) / 3), 255}
		pal[3] = [4]uint8{u8((int(r0) + 2*int(r1)) / 3), u8((int(g0) + 2*int(g1)) / 3), u8((int(b0) + 2*int(b1)) / 3), 255}
	} else {
		pal[2] = [4]uint8{u8((int(r0) + int(r1)) / 2), u8((int(g0) + int(g1)) / 2), u8((int(b0) + int(b1)) / 2), 255}
		pal[3] = [4]uint8{0, 0, 0, 0}
	}
	return pal
}

func u8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func decodeDXT1Block(block []byte, texels *[16][4]uint8) {
	pal := colorPalette(block, false)
	bits := binary.LittleEndian.Uint32(block[4:])
	for i := 0; i < 16; i++ {
		texels[i] = pal[bits>>(2*uint(i))&3]
	}
}

func decodeDXT3Block(block []byte, texels *[16][4]uint8) {
	pal := colorPalette(block[8:], true)
	bits := binary.LittleEndian.Uint32(block[12:])
	alpha := binary.LittleEndian.Uint64(block)
	for i := 0; i < 16; i++ {
		t := pal[bits>>(2*uint(i))&3]
		a4 := uint8(alpha >> (4 * uint(i)) & 0xf)
		t[3] = a4 * 17
		texels[i] = t
	}
}

func decodeDXT5Block(block []byte, texels *[16][4]uint8) {
	a0 := int(block[0])
	a1 := int(block[1])
	var apal [8]uint8
	apal[0] = uint8(a0)
	apal[1] = uint8(a1)
	if a0 > a1 {
		for i := 2; i < 8; i++ {
			apal[i] = u8(((8-i)*a0 + (i-1)*a1) / 7)
		}
	} else {
		for i := 2; i < 6; i++ {
			apal[i] = u8(((6-i)*a0 + (i-1)*a1) / 5)
		}
		apal[6] = 0
		apal[7] = 255
	}

	var abits uint64
	for i := 5; i >= 0; i-- {
		abits = abits<<8 | uint64(block[2+i])
	}

	pal := colorPalette(block[8:], true)
	bits := binary.LittleEndian.Uint32(block[12:])
	for i := 0; i < 16; i++ {
		t := pal[bits>>(2*uint(i))&3]
		t[3] = apal[abits>>(3*uint(i))&7]
		texels[i] = t
	}
}

// decodeMasked handles uncompressed surfaces through the channel bit masks
// (A8R8G8B8, X8R8G8B8, R8G8B8, R5G6B5, and similar).
func decodeMasked(r io.Reader, img *image.NRGBA, h *header) error {
	bpp := int(h.bitCount)
	if bpp != 16 && bpp != 24 && bpp != 32 {
		return fmt.Errorf("dds: unsupported bit count %d", bpp)
	}
	bytesPerPixel := bpp / 8

	w := img.Rect.Dx()
	ht := img.Rect.Dy()
	row := make([]byte, w*bytesPerPixel)

	hasAlpha := h.pfFlags&pfAlphaPixels != 0 && h.maskA != 0

	for y := 0; y < ht; y++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return fmt.Errorf("dds: row %d: %w", y, err)
		}
		for x := 0; x < w; x++ {
			var px uint32
			for b := 0; b < bytesPerPixel; b++ {
				px |= uint32(row[x*bytesPerPixel+b]) << (8 * uint(b))
			}
			i := img.PixOffset(x, y)
			img.Pix[i] = maskedChannel(px, h.maskR)
			img.Pix[i+1] = maskedChannel(px, h.maskG)
			img.Pix[i+2] = maskedChannel(px, h.maskB)
			if hasAlpha {
				img.Pix[i+3] = maskedChannel(px, h.maskA)
			} else {
				img.Pix[i+3] = 255
			}
		}
	}
	return nil
}

// maskedChannel extracts one channel and rescales it to 8 bits.
func maskedChannel(px, mask uint32) uint8 {
	if mask == 0 {
		return 0
	}
	shift := uint(0)
	for mask&(1<<shift) == 0 {
		shift++
	}
	bits := uint(0)
	for shift+bits < 32 && mask&(1<<(shift+bits)) != 0 {
		bits++
	}
	v := (px & mask) >> shift
	max := uint32(1)<<bits - 1
	if max == 0 {
		return 0
	}
	return uint8(v * 255 / max)
}
