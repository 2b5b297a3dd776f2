// Package pipeline converts a directory tree of raster images into XPM
// documents, in parallel, and records the outputs in a manifest.
package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/rahra/go-xpm/internal/manifest"
)

// Config holds all parameters of a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Workers   int
	Verbose   bool
	HashNames bool // content-addressed output names: <key>.<hash>.xpm
}

// Pipeline orchestrates batch conversion.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{cfg: cfg}
}

// Run converts every discovered image and returns the manifest. Individual
// failures are reported on stderr; the run errors only when nothing could
// be converted.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	sources, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}

	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[goxpm] found %d images\n", len(sources))
	}

	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if p.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[goxpm] converting: %s\n", s.Key)
			}

			results[idx] = processImage(s, p.cfg)

			if p.cfg.Verbose && results[idx].err == nil {
				e := results[idx].entry
				fmt.Fprintf(os.Stderr, "[goxpm] done: %s (%d colors, %d cpp, %d bytes)\n",
					s.Key, e.Colors, e.CharsPerPixel, e.OutputSize)
			}
		}(i, src)
	}
	wg.Wait()

	m := manifest.New()
	m.Workers = p.cfg.Workers

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Entries[r.key] = r.entry
	}

	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[goxpm] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to convert", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[goxpm] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	m.ComputeStats()
	return m, nil
}
