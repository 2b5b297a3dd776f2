package xpm

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var redNRGBA = color.NRGBA{255, 0, 0, 255}

// Golden documents, byte for byte.
func TestGoldenDocuments(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		want string
	}{
		{
			name: "single_red_pixel",
			img:  solidImg(1, 1, redNRGBA),
			want: "/* XPM */\n" +
				"static char *xpm_c1_[] = {\n" +
				"\"1 1 1 1\",\n" +
				"\"A c #ff0000\",\n" +
				"\"A\"\n" +
				"};\n",
		},
		{
			name: "blue_and_transparent",
			img: func() image.Image {
				m := image.NewNRGBA(image.Rect(0, 0, 2, 1))
				m.SetNRGBA(0, 0, color.NRGBA{0, 0, 255, 255})
				m.SetNRGBA(1, 0, color.NRGBA{0, 0, 0, 0x10})
				return m
			}(),
			want: "/* XPM */\n" +
				"static char *xpm_c2_[] = {\n" +
				"\"2 1 2 1\",\n" +
				"\"A c #0000ff\",\n" +
				"\"B c None\",\n" +
				"\"AB\"\n" +
				"};\n",
		},
		{
			name: "transparent_seen_first",
			img: func() image.Image {
				m := image.NewNRGBA(image.Rect(0, 0, 2, 1))
				m.SetNRGBA(0, 0, color.NRGBA{99, 99, 99, 0})
				m.SetNRGBA(1, 0, redNRGBA)
				return m
			}(),
			want: "/* XPM */\n" +
				"static char *xpm_c2_[] = {\n" +
				"\"2 1 2 1\",\n" +
				"\"A c None\",\n" +
				"\"B c #ff0000\",\n" +
				"\"AB\"\n" +
				"};\n",
		},
		{
			name: "checkerboard",
			img: func() image.Image {
				m := image.NewNRGBA(image.Rect(0, 0, 2, 2))
				white := color.NRGBA{255, 255, 255, 255}
				black := color.NRGBA{0, 0, 0, 255}
				m.SetNRGBA(0, 0, white)
				m.SetNRGBA(1, 0, black)
				m.SetNRGBA(0, 1, black)
				m.SetNRGBA(1, 1, white)
				return m
			}(),
			want: "/* XPM */\n" +
				"static char *xpm_c2_[] = {\n" +
				"\"2 2 2 1\",\n" +
				"\"A c #ffffff\",\n" +
				"\"B c #000000\",\n" +
				"\"AB\",\n" +
				"\"BA\"\n" +
				"};\n",
		},
		{
			name: "zero_area",
			img:  image.NewNRGBA(image.Rect(0, 0, 0, 0)),
			want: "/* XPM */\n" +
				"static char *xpm_c0_[] = {\n" +
				"\"0 0 0 0\"\n" +
				"};\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeBytes(tt.img)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("document mismatch\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

// 65 distinct colors force two characters per pixel; every quoted string
// must keep the fixed-width geometry.
func TestTwoCharsPerPixel(t *testing.T) {
	img := distinctColorsImg(65)

	buf, err := EncodeBytes(img)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(string(buf), "\n")
	if lines[2] != "\"65 1 65 2\"," {
		t.Fatalf("header = %q", lines[2])
	}

	// 65 color lines follow the header.
	for i := 3; i < 3+65; i++ {
		body, ok := quotedBody(lines[i])
		if !ok {
			t.Fatalf("line %d not a quoted string: %q", i, lines[i])
		}
		// Symbol field plus " c #rrggbb".
		if len(body) != 2+10 {
			t.Errorf("color line %d: length %d, want 12: %q", i, len(body), body)
		}
		if body[2:6] != " c #" {
			t.Errorf("color line %d: missing color key: %q", i, body)
		}
	}

	// One pixel row of 65*2 symbols.
	body, ok := quotedBody(lines[3+65])
	if !ok {
		t.Fatalf("pixel row not a quoted string: %q", lines[3+65])
	}
	if len(body) != 65*2 {
		t.Errorf("pixel row length %d, want %d", len(body), 65*2)
	}
	if body[:2] != "AA" || body[128:] != "BA" {
		t.Errorf("pixel row symbols wrong: %q...%q", body[:2], body[128:])
	}
}

func quotedBody(line string) (string, bool) {
	line = strings.TrimSuffix(line, ",")
	if len(line) < 2 || line[0] != '"' || line[len(line)-1] != '"' {
		return "", false
	}
	return line[1 : len(line)-1], true
}

// Re-encoding the identical pixel source yields byte-identical output.
func TestDeterminism(t *testing.T) {
	images := []image.Image{
		gradientImg(64, 48),
		alphaImg(33, 17),
		distinctColorsImg(100),
	}
	for i, img := range images {
		a, err := EncodeBytes(img)
		if err != nil {
			t.Fatal(err)
		}
		b, err := EncodeBytes(img)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("image %d: two encodes differ", i)
		}
	}
}

func TestEncodeBytesInvalid(t *testing.T) {
	if _, err := EncodeBytes(nil); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("EncodeBytes(nil) = %v, want ErrInvalidFormat", err)
	}
	if _, err := Analyze(nil); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Analyze(nil) = %v, want ErrInvalidFormat", err)
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("sink closed") }

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) - 1, nil }

func TestEncodeWriteFailure(t *testing.T) {
	img := solidImg(2, 2, redNRGBA)

	if err := Encode(failWriter{}, img); !errors.Is(err, ErrWrite) {
		t.Errorf("failing writer: %v, want ErrWrite", err)
	}
	if err := Encode(shortWriter{}, img); !errors.Is(err, ErrWrite) {
		t.Errorf("short writer: %v, want ErrWrite", err)
	}

	// An encoding failure must reach the sink with zero bytes.
	var buf bytes.Buffer
	if err := Encode(&buf, nil); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("Encode(nil image) = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("sink received %d bytes after encode failure", buf.Len())
	}
}

func TestEncodeMatchesEncodeBytes(t *testing.T) {
	img := gradientImg(16, 16)

	want, err := EncodeBytes(img)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Error("Encode output differs from EncodeBytes")
	}
}

func TestEncodeFile(t *testing.T) {
	img := alphaImg(8, 8)
	path := filepath.Join(t.TempDir(), "out.xpm")

	if err := EncodeFile(img, path); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want, err := EncodeBytes(img)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Error("file contents differ from EncodeBytes")
	}

	// Re-encoding over an existing longer file must truncate.
	small := solidImg(1, 1, redNRGBA)
	if err := EncodeFile(small, path); err != nil {
		t.Fatal(err)
	}
	got, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want, _ = EncodeBytes(small)
	if !bytes.Equal(got, want) {
		t.Error("stale bytes left after re-encode")
	}
}

func TestEncodeFileDeviceError(t *testing.T) {
	img := solidImg(1, 1, redNRGBA)
	path := filepath.Join(t.TempDir(), "missing", "out.xpm")

	err := EncodeFile(img, path)
	if !errors.Is(err, ErrDevice) {
		t.Fatalf("EncodeFile into missing dir = %v, want ErrDevice", err)
	}
	// The OS error stays in the chain for diagnostics.
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("underlying os error lost: %v", err)
	}
}

func TestAnalyze(t *testing.T) {
	img := alphaImg(16, 16)

	info, err := Analyze(img)
	if err != nil {
		t.Fatal(err)
	}
	if info.Width != 16 || info.Height != 16 {
		t.Errorf("geometry %dx%d, want 16x16", info.Width, info.Height)
	}
	if !info.Transparent {
		t.Error("alpha ramp image must have a transparent entry")
	}
	if want := symbolWidth(info.Colors); info.CharsPerPixel != want {
		t.Errorf("CharsPerPixel = %d, want %d", info.CharsPerPixel, want)
	}

	buf, err := EncodeBytes(img)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) > info.MaxEncodedSize {
		t.Errorf("encoded %d bytes, MaxEncodedSize %d", len(buf), info.MaxEncodedSize)
	}
}

// ─── fixture image builders ──────────────────────────────────

func solidImg(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func gradientImg(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

// alphaImg ramps alpha left to right so both sides of the transparency
// threshold appear.
func alphaImg(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: uint8(y),
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

// distinctColorsImg returns an n×1 image with n distinct opaque colors in
// scan order.
func distinctColorsImg(n int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, n, 1))
	for x := 0; x < n; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{
			R: uint8(x),
			G: uint8(x >> 8),
			B: 7,
			A: 255,
		})
	}
	return img
}
