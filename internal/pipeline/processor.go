package pipeline

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/rahra/go-xpm"
	"github.com/rahra/go-xpm/internal/hasher"
	"github.com/rahra/go-xpm/internal/manifest"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// hashLen is the number of hex chars in content hashes (full 64 bits).
const hashLen = 16

// processResult holds the result of converting a single source image.
type processResult struct {
	key   string
	entry manifest.Entry
	err   error
}

// processImage handles one source: decode, analyze, encode, write output.
func processImage(src Source, cfg Config) processResult {
	result := processResult{key: src.Key}

	f, err := os.Open(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("open %s: %w", src.RelPath, err)
		return result
	}
	defer f.Close()

	srcHash, err := hasher.ContentHashReader(f, hashLen)
	if err != nil {
		result.err = fmt.Errorf("hash %s: %w", src.RelPath, err)
		return result
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		result.err = fmt.Errorf("rewind %s: %w", src.RelPath, err)
		return result
	}

	img, _, err := image.Decode(f)
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	// The palette pass runs twice (analyze + encode); it is cheap next to
	// decoding and keeps the encoder API to single-purpose calls.
	info, err := xpm.Analyze(img)
	if err != nil {
		result.err = fmt.Errorf("analyze %s: %w", src.RelPath, err)
		return result
	}
	doc, err := xpm.EncodeBytes(img)
	if err != nil {
		result.err = fmt.Errorf("encode %s: %w", src.RelPath, err)
		return result
	}

	hash := hasher.ContentHash(doc, hashLen)

	outRel := src.Key + ".xpm"
	if cfg.HashNames {
		outRel = fmt.Sprintf("%s.%s.xpm", src.Key, hash)
	}
	outAbs := filepath.Join(cfg.OutputDir, filepath.FromSlash(outRel))

	if err := os.MkdirAll(filepath.Dir(outAbs), 0o755); err != nil {
		result.err = fmt.Errorf("create output dir for %s: %w", outRel, err)
		return result
	}
	if err := os.WriteFile(outAbs, doc, 0o644); err != nil {
		result.err = fmt.Errorf("write %s: %w", outRel, err)
		return result
	}

	result.entry = manifest.Entry{
		Source:        src.RelPath,
		Output:        outRel,
		Format:        src.Format,
		Width:         info.Width,
		Height:        info.Height,
		Colors:        info.Colors,
		CharsPerPixel: info.CharsPerPixel,
		Transparent:   info.Transparent,
		SourceSize:    src.Size,
		OutputSize:    int64(len(doc)),
		SourceHash:    srcHash,
		Hash:          hash,
	}
	return result
}
