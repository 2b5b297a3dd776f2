package xpm

const (
	// maxColor is the number of representable 24-bit RGB colors.
	maxColor = 1 << 24

	// transKey is the palette table slot reserved for the synthetic
	// transparent color, placed just past the RGB key space.
	transKey = maxColor

	// transThreshold is the alpha cutoff below which a pixel belongs to
	// the single transparent entry XPM supports (50%).
	transThreshold = 0x80
)

// colorKey maps a packed ARGB pixel to its palette key: transKey when the
// pixel is at least half transparent, its 24-bit RGB value otherwise. Pure,
// so row emission can re-derive keys instead of storing them per pixel.
func colorKey(argb uint32) uint32 {
	if argb>>24 < transThreshold {
		return transKey
	}
	return argb & 0x00ffffff
}

// palette assigns each distinct color key a 1-based index in first-seen
// order over a row-major, top-to-bottom scan. Indices are contiguous in
// [1, size] with no gaps.
type palette struct {
	// lookup is direct-addressed over the 24-bit color space plus the
	// transparent slot: maxColor+1 uint32 entries, 0 meaning unseen.
	// 64 MB per encode call, allocated once, no hashing on the pixel
	// hot path.
	lookup []uint32
	keys   []uint32 // index-1 → key, in assignment order
}

// buildPalette scans the surface once and returns the finished palette.
func buildPalette(s *surface) *palette {
	p := &palette{lookup: make([]uint32, maxColor+1)}
	for _, px := range s.pix {
		key := colorKey(px)
		if p.lookup[key] == 0 {
			p.keys = append(p.keys, key)
			p.lookup[key] = uint32(len(p.keys))
		}
	}
	return p
}

func (p *palette) size() int {
	return len(p.keys)
}

// indexOf returns the 0-based index of a key seen during buildPalette.
func (p *palette) indexOf(key uint32) int {
	return int(p.lookup[key]) - 1
}

// transparent reports whether the palette contains the None entry.
func (p *palette) transparent() bool {
	return p.lookup[transKey] != 0
}
