package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rahra/go-xpm/internal/manifest"
	"github.com/rahra/go-xpm/internal/pipeline"
)

var (
	batchOutDir    string
	batchWorkers   int
	batchHashNames bool
	batchManifest  bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir>",
	Short: "Convert a directory tree of images to XPM files",
	Long: `Scans the input directory for images (png, jpg, jpeg, webp, gif,
bmp, tiff), converts them in parallel, and writes a manifest describing
every output: geometry, palette size, chars per pixel, sizes and content
hashes.

With --hash-names outputs are content-addressed: <key>.<hash>.xpm`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "./xpm_out", "output directory")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	batchCmd.Flags().BoolVar(&batchHashNames, "hash-names", false, "content-addressed output filenames")
	batchCmd.Flags().BoolVar(&batchManifest, "manifest", true, "write goxpm.manifest.json to the output directory")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(batchOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	logVerbose("input:  %s", absInput)
	logVerbose("output: %s", absOutput)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Workers:   batchWorkers,
		Verbose:   verbose,
		HashNames: batchHashNames,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if batchManifest {
		manifestPath := filepath.Join(absOutput, "goxpm.manifest.json")
		if err := manifest.WriteJSON(m, manifestPath); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		logVerbose("wrote %s", manifestPath)
	}

	fmt.Printf("converted %d images in %s (%d KB in, %d KB out)\n",
		m.Stats.TotalImages, time.Since(start).Round(time.Millisecond),
		m.Stats.TotalInputBytes/1024, m.Stats.TotalOutputBytes/1024)
	return nil
}
