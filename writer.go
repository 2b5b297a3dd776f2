package xpm

import (
	"fmt"
	"math"
)

// Per-line overheads for the size estimate, covering the longest literal
// form of each line:
//
//	color line: `,\n"` + cpp symbols + ` c #rrggbb"` = cpp + 14
//	pixel row:  `,\n"` + w*cpp symbols + `"`         = w*cpp + 4
//
// The `c None` line is shorter than the hex form, so cpp+14 bounds both.
const (
	colorLineOverhead = 14
	pixelRowOverhead  = 4
	headerAllowance   = 256
)

// estimateSize returns an upper bound for the encoded document length, or
// ok=false when the arithmetic overflows int. The bound is what the output
// buffer is pre-sized to; formatting never exceeds it.
func estimateSize(w, h, ncolors, cpp int) (size int, ok bool) {
	// ncolors <= 1<<24+1 and cpp <= 5, so the color table cannot overflow.
	colorTable := ncolors * (cpp + colorLineOverhead)

	rowLen, ok := mulInt(w, cpp)
	if !ok {
		return 0, false
	}
	rowLen, ok = addInt(rowLen, pixelRowOverhead)
	if !ok {
		return 0, false
	}
	pixelTable, ok := mulInt(h, rowLen)
	if !ok {
		return 0, false
	}

	size, ok = addInt(pixelTable, colorTable+headerAllowance)
	if !ok {
		return 0, false
	}
	return size, true
}

func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	n := a * b
	if n/b != a {
		return 0, false
	}
	return n, true
}

// addInt assumes non-negative operands.
func addInt(a, b int) (int, bool) {
	if a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

// formatDocument renders the complete XPM source into a buffer of the given
// pre-computed capacity. Emission order: declaration comment and header
// line, color table in ascending index order, pixel rows top to bottom,
// closing brace. Indices are written 0-based (palette index minus one).
// No I/O happens here.
func formatDocument(s *surface, p *palette, capacity int) []byte {
	ncolors := p.size()
	cpp := symbolWidth(ncolors)

	buf := make([]byte, 0, capacity)
	buf = fmt.Appendf(buf, "/* XPM */\nstatic char *xpm_c%d_[] = {\n\"%d %d %d %d\"",
		ncolors, s.w, s.h, ncolors, cpp)

	for i, key := range p.keys {
		buf = append(buf, ',', '\n', '"')
		buf = appendSymbols(buf, i, cpp)
		if key == transKey {
			buf = append(buf, " c None"...)
		} else {
			buf = append(buf, " c #"...)
			buf = appendHexColor(buf, key)
		}
		buf = append(buf, '"')
	}

	for y := 0; y < s.h; y++ {
		buf = append(buf, ',', '\n', '"')
		for _, px := range s.row(y) {
			buf = appendSymbols(buf, p.indexOf(colorKey(px)), cpp)
		}
		buf = append(buf, '"')
	}

	buf = append(buf, "\n};\n"...)
	return buf
}
