package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rahra/go-xpm/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate <out_dir_or_manifest>",
	Short: "Validate a goxpm manifest and check referenced files exist",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, "goxpm.manifest.json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	baseDir := filepath.Dir(path)
	errs := validateManifest(&m, baseDir)

	if len(errs) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d images — all outputs present\n", m.Stats.TotalImages)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	seenOutputs := map[string]bool{}
	for key, e := range m.Entries {
		if e.Width <= 0 || e.Height <= 0 {
			errs = append(errs, fmt.Sprintf("entry %q: invalid dimensions %dx%d", key, e.Width, e.Height))
		}
		if e.Colors < 1 {
			errs = append(errs, fmt.Sprintf("entry %q: no colors", key))
		}
		if e.CharsPerPixel < 1 {
			errs = append(errs, fmt.Sprintf("entry %q: invalid chars_per_pixel %d", key, e.CharsPerPixel))
		}
		if e.Hash == "" {
			errs = append(errs, fmt.Sprintf("entry %q: missing hash", key))
		}
		if e.Output == "" {
			errs = append(errs, fmt.Sprintf("entry %q: missing output path", key))
			continue
		}

		if seenOutputs[e.Output] {
			errs = append(errs, fmt.Sprintf("entry %q: duplicate output %q", key, e.Output))
		}
		seenOutputs[e.Output] = true

		fullPath := filepath.Join(baseDir, filepath.FromSlash(e.Output))
		info, err := os.Stat(fullPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("entry %q: output not found: %s", key, e.Output))
		} else if e.OutputSize > 0 && info.Size() != e.OutputSize {
			errs = append(errs, fmt.Sprintf("entry %q: size mismatch: manifest=%d, disk=%d",
				key, e.OutputSize, info.Size()))
		}
	}

	if m.Stats.TotalImages != len(m.Entries) {
		errs = append(errs, fmt.Sprintf("stats.total_images mismatch: %d != %d",
			m.Stats.TotalImages, len(m.Entries)))
	}

	return errs
}
