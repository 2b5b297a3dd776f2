// Package hasher provides xxHash64 content hashes for converted outputs.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// ContentHash returns the xxHash64 of data as a hex string truncated to
// hexLen characters. Content-addressed output names use 16 hex chars (the
// full 64 bits), which is collision-safe for practical image counts.
func ContentHash(data []byte, hexLen int) string {
	return truncate(hex.EncodeToString(binary.BigEndian.AppendUint64(nil, xxhash.Sum64(data))), hexLen)
}

// ContentHashReader hashes a stream without buffering it.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return truncate(hex.EncodeToString(binary.BigEndian.AppendUint64(nil, h.Sum64())), hexLen), nil
}

func truncate(s string, n int) string {
	if n > 0 && n < len(s) {
		return s[:n]
	}
	return s
}
