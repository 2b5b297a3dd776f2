// Package cmd implements the goxpm command line interface.
package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "goxpm",
	Short: "Convert raster images to the XPM3 text format",
	Long: `goxpm — converts PNG, JPEG, GIF, WebP, BMP and TIFF images into
XPM3 source files as consumed by X11 toolkits and C compilers.

The palette is built from the exact colors of the image; pixels that are
at least half transparent share the single "None" entry XPM supports.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"goxpm %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[goxpm] "+format+"\n", args...)
	}
}
