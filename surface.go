package xpm

import (
	"image"
	"image/color"
)

// surface is an image normalized to a packed row-major ARGB grid: one uint32
// per pixel, alpha in the top byte, RGB below, no row padding. All encoding
// stages read pixels from here so the per-pixel hot path never touches the
// color.Color interface.
type surface struct {
	w, h int
	pix  []uint32 // len w*h
}

// newSurface copies img into a surface. Concrete 8-bit image types are read
// through their Pix slices; everything else (YCbCr, CMYK, Gray16, ...) goes
// through the generic color-model path. Sources without an alpha channel
// come out fully opaque.
func newSurface(img image.Image) (*surface, error) {
	if img == nil {
		return nil, ErrInvalidFormat
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 0 || h < 0 {
		return nil, ErrInvalidFormat
	}

	s := &surface{w: w, h: h, pix: make([]uint32, w*h)}
	if w == 0 || h == 0 {
		return s, nil
	}

	switch src := img.(type) {
	case *image.NRGBA:
		s.fromNRGBA(src, bounds)
	case *image.RGBA:
		s.fromRGBA(src, bounds)
	case *image.Gray:
		s.fromGray(src, bounds)
	case *image.Paletted:
		s.fromPaletted(src, bounds)
	default:
		s.fromGeneric(img, bounds)
	}
	return s, nil
}

// row returns the pixels of row y, left to right.
func (s *surface) row(y int) []uint32 {
	return s.pix[y*s.w : (y+1)*s.w]
}

func packARGB(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// fromNRGBA — non-premultiplied RGBA (PNG). Channels are copied verbatim.
func (s *surface) fromNRGBA(src *image.NRGBA, bounds image.Rectangle) {
	pix := src.Pix
	base := (bounds.Min.Y-src.Rect.Min.Y)*src.Stride + (bounds.Min.X-src.Rect.Min.X)*4

	di := 0
	for y := 0; y < s.h; y++ {
		off := base + y*src.Stride
		for x := 0; x < s.w; x++ {
			s.pix[di] = packARGB(pix[off], pix[off+1], pix[off+2], pix[off+3])
			di++
			off += 4
		}
	}
}

// fromRGBA — premultiplied RGBA. Un-premultiplies so the stored RGB bits
// match the source colors; a fully transparent pixel keeps zero RGB.
func (s *surface) fromRGBA(src *image.RGBA, bounds image.Rectangle) {
	pix := src.Pix
	base := (bounds.Min.Y-src.Rect.Min.Y)*src.Stride + (bounds.Min.X-src.Rect.Min.X)*4

	di := 0
	for y := 0; y < s.h; y++ {
		off := base + y*src.Stride
		for x := 0; x < s.w; x++ {
			a := uint32(pix[off+3])
			if a == 0 {
				s.pix[di] = 0
			} else if a == 0xff {
				s.pix[di] = packARGB(pix[off], pix[off+1], pix[off+2], 0xff)
			} else {
				r := (uint32(pix[off])*0xff + a/2) / a
				g := (uint32(pix[off+1])*0xff + a/2) / a
				b := (uint32(pix[off+2])*0xff + a/2) / a
				s.pix[di] = a<<24 | r<<16 | g<<8 | b
			}
			di++
			off += 4
		}
	}
}

func (s *surface) fromGray(src *image.Gray, bounds image.Rectangle) {
	pix := src.Pix
	base := (bounds.Min.Y-src.Rect.Min.Y)*src.Stride + (bounds.Min.X - src.Rect.Min.X)

	di := 0
	for y := 0; y < s.h; y++ {
		off := base + y*src.Stride
		for x := 0; x < s.w; x++ {
			v := pix[off]
			s.pix[di] = packARGB(v, v, v, 0xff)
			di++
			off++
		}
	}
}

// fromPaletted converts the palette once, then maps indices through a LUT.
func (s *surface) fromPaletted(src *image.Paletted, bounds image.Rectangle) {
	lut := make([]uint32, len(src.Palette))
	for i, c := range src.Palette {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		lut[i] = packARGB(n.R, n.G, n.B, n.A)
	}

	pix := src.Pix
	base := (bounds.Min.Y-src.Rect.Min.Y)*src.Stride + (bounds.Min.X - src.Rect.Min.X)

	di := 0
	for y := 0; y < s.h; y++ {
		off := base + y*src.Stride
		for x := 0; x < s.w; x++ {
			s.pix[di] = lut[pix[off]]
			di++
			off++
		}
	}
}

func (s *surface) fromGeneric(img image.Image, bounds image.Rectangle) {
	di := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			s.pix[di] = packARGB(n.R, n.G, n.B, n.A)
			di++
		}
	}
}
