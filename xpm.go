package xpm

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
)

// Error kinds. Wrapped errors keep the underlying cause in the chain, so
// callers classify with errors.Is and can still unwrap OS errors for
// diagnostics.
var (
	// ErrInvalidFormat means the input is not image data the encoder can
	// normalize into an ARGB surface.
	ErrInvalidFormat = errors.New("xpm: unsupported image")

	// ErrImageTooLarge means the output size computation overflowed and
	// the document buffer cannot be allocated.
	ErrImageTooLarge = errors.New("xpm: image too large to encode")

	// ErrWrite means the sink reported a short or failed write. The
	// complete document was available; none of it should be considered
	// delivered.
	ErrWrite = errors.New("xpm: short write")

	// ErrDevice means the output file could not be opened or created.
	ErrDevice = errors.New("xpm: cannot open output file")
)

// EncodeBytes encodes img as a complete XPM3 document and returns its raw
// bytes. The caller owns the returned buffer. All working memory is local
// to the call, so concurrent encodes of independent images are safe.
func EncodeBytes(img image.Image) ([]byte, error) {
	s, err := newSurface(img)
	if err != nil {
		return nil, err
	}

	p := buildPalette(s)
	capacity, ok := estimateSize(s.w, s.h, p.size(), symbolWidth(p.size()))
	if !ok {
		return nil, ErrImageTooLarge
	}
	return formatDocument(s, p, capacity), nil
}

// Encode encodes img and hands the complete document to w in a single Write
// call. On encoding failure nothing is written; a short or failed write is
// reported as ErrWrite.
func Encode(w io.Writer, img image.Image) error {
	buf, err := EncodeBytes(img)
	if err != nil {
		return err
	}

	n, err := w.Write(buf)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if n < len(buf) {
		return fmt.Errorf("%w: wrote %d of %d bytes", ErrWrite, n, len(buf))
	}
	return nil
}

// EncodeFile encodes img into the file at path, creating or truncating it.
// An open failure is ErrDevice; the file is closed even when the write
// fails, and a close failure surfaces only if everything else succeeded.
func EncodeFile(img image.Image, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDevice, err)
	}

	werr := Encode(f, img)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	if cerr != nil {
		return fmt.Errorf("%w: %w", ErrWrite, cerr)
	}
	return nil
}

// Info describes how an image encodes without producing the document.
type Info struct {
	Width  int
	Height int

	// Colors is the number of distinct palette entries; all pixels below
	// the transparency threshold count as one.
	Colors int

	// CharsPerPixel is the fixed symbol count encoding one palette index.
	CharsPerPixel int

	// MaxEncodedSize is the upper bound the encoder would pre-size its
	// output buffer to.
	MaxEncodedSize int

	// Transparent reports whether the palette contains the None entry.
	Transparent bool
}

// Analyze builds the palette for img and returns its encoding parameters.
func Analyze(img image.Image) (Info, error) {
	s, err := newSurface(img)
	if err != nil {
		return Info{}, err
	}

	p := buildPalette(s)
	cpp := symbolWidth(p.size())
	capacity, ok := estimateSize(s.w, s.h, p.size(), cpp)
	if !ok {
		return Info{}, ErrImageTooLarge
	}

	return Info{
		Width:          s.w,
		Height:         s.h,
		Colors:         p.size(),
		CharsPerPixel:  cpp,
		MaxEncodedSize: capacity,
		Transparent:    p.transparent(),
	}, nil
}
