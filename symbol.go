package xpm

import "math/bits"

// symbolAlphabet is the 64-character index alphabet, 6 bits per character.
// The order is significant: readers of this scheme expect exactly this
// base64-style table.
const symbolAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const hexDigits = "0123456789abcdef"

// symbolWidth returns the number of alphabet characters used to encode one
// palette index in a document with ncolors entries, zero for an empty
// palette. The width is fixed for the whole document so every pixel row has
// length exactly W*symbolWidth. Monotonic non-decreasing in ncolors.
func symbolWidth(ncolors int) int {
	return (bits.Len(uint(ncolors)) + 5) / 6
}

// appendSymbols appends the fixed-width encoding of index, most significant
// symbol first. index must satisfy 0 <= index < 64^width, which holds by
// construction from symbolWidth.
func appendSymbols(dst []byte, index, width int) []byte {
	for i := width - 1; i >= 0; i-- {
		dst = append(dst, symbolAlphabet[index>>(uint(i)*6)&0x3f])
	}
	return dst
}

// appendHexColor appends a 24-bit RGB value as six lowercase hex digits.
func appendHexColor(dst []byte, rgb uint32) []byte {
	for shift := 20; shift >= 0; shift -= 4 {
		dst = append(dst, hexDigits[rgb>>uint(shift)&0xf])
	}
	return dst
}
