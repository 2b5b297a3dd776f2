// Package xpm encodes raster images into the XPM3 (X PixMap) text format,
// color-only variant: a C string array with a header line, a color table and
// one row string per pixel line.
//
// Palette indices are written with a fixed 64-character alphabet, one
// character per 6 bits, padded to a document-wide width so every pixel row
// has the same length. XPM supports a single transparent color, so pixels
// that are at least half transparent collapse into one "None" palette entry.
//
// Performance design:
//   - Input images are normalized once into a packed ARGB surface with
//     fast paths for NRGBA, RGBA, Gray and Paletted (no image.At calls)
//   - The palette is a direct-addressed table over the full 24-bit color
//     space plus one transparent slot: no hashing, no per-pixel allocation
//   - The output buffer is sized up front from the geometry and palette
//     size and never reallocates during formatting
//   - Deterministic: identical input produces byte-identical output
package xpm
