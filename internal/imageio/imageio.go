// Package imageio decodes source textures into straight-alpha pixel
// buffers the packing engine can sample.
//
// Formats: PNG and JPEG from the standard library, plus WebP, TIFF and BMP.
// Files with an unknown extension are decoded by content sniffing. All
// decoded pixels are normalized to 8-bit straight-alpha RGBA regardless of
// the source color model.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/horizonkit/texpack"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// Image is a decoded texture: straight-alpha RGBA bytes at native
// resolution. It implements texpack.PixelSource, reporting texels on the
// [0, 1] float scale the engine works in.
//
// Image is immutable after decoding and safe for concurrent reads.
type Image struct {
	pix    []uint8 // NRGBA order, 4 bytes per pixel
	width  int
	height int
}

// Width returns the native width in texels.
func (m *Image) Width() int { return m.width }

// Height returns the native height in texels.
func (m *Image) Height() int { return m.height }

// At returns the texel at (x, y) as straight-alpha floats. Coordinates must
// be within bounds.
func (m *Image) At(x, y int) texpack.RGBA {
	i := (y*m.width + x) * 4
	return texpack.RGBA{
		R: float64(m.pix[i+0]) / 255,
		G: float64(m.pix[i+1]) / 255,
		B: float64(m.pix[i+2]) / 255,
		A: float64(m.pix[i+3]) / 255,
	}
}

var _ texpack.PixelSource = (*Image)(nil)

// FromStd converts a decoded standard-library image. NRGBA sources copy
// straight through; everything else converts per pixel via the NRGBA color
// model, which un-premultiplies alpha where needed.
func FromStd(img image.Image) *Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := &Image{
		pix:    make([]uint8, w*h*4),
		width:  w,
		height: h,
	}

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(out.pix[y*w*4:(y+1)*w*4], src.Pix[off:off+w*4])
		}
		return out
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := (y*w + x) * 4
			out.pix[i+0] = c.R
			out.pix[i+1] = c.G
			out.pix[i+2] = c.B
			out.pix[i+3] = c.A
		}
	}
	return out
}

// Load reads and decodes the texture at path, choosing the decoder by file
// extension and falling back to content sniffing.
func Load(path string) (*Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, err := decodeExt(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// LoadBytes decodes a texture from memory, auto-detecting the format.
func LoadBytes(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes a texture from r, auto-detecting the format.
func Decode(r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if errors.Is(err, image.ErrFormat) {
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	return FromStd(img), nil
}

// decodeExt picks a decoder from the file extension. Unknown extensions
// sniff the content instead, which covers the registered formats anyway.
func decodeExt(r io.Reader, ext string) (*Image, error) {
	var (
		img image.Image
		err error
	)
	switch strings.ToLower(ext) {
	case ".png":
		img, err = png.Decode(r)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(r)
	case ".webp":
		img, err = webp.Decode(r)
	case ".tif", ".tiff":
		img, err = tiff.Decode(r)
	case ".bmp":
		img, err = bmp.Decode(r)
	default:
		img, _, err = image.Decode(r)
		if errors.Is(err, image.ErrFormat) {
			err = ErrUnsupportedFormat
		}
	}
	if err != nil {
		return nil, err
	}
	return FromStd(img), nil
}
