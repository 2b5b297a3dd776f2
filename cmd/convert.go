package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/rahra/go-xpm"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	convertOut    string
	convertStdout bool
	convertWidth  int
	convertHeight int
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> [output]",
	Short: "Convert a single image to an XPM file",
	Long: `Decodes the input image and writes it as an XPM3 source file.
Without an output argument the file is written next to the input with
an .xpm extension; --stdout prints the document instead.

--width/--height pre-resize the image (Lanczos); giving only one of the
two preserves the aspect ratio. XPM stores one line per pixel row, so
downsizing first keeps the output practical for large photos.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "output path (default: input with .xpm extension)")
	convertCmd.Flags().BoolVar(&convertStdout, "stdout", false, "write the document to stdout")
	convertCmd.Flags().IntVar(&convertWidth, "width", 0, "resize to this width before encoding (0 = keep)")
	convertCmd.Flags().IntVar(&convertHeight, "height", 0, "resize to this height before encoding (0 = keep)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(_ *cobra.Command, args []string) error {
	input := args[0]

	img, err := imaging.Open(input, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}

	if convertWidth > 0 || convertHeight > 0 {
		img = imaging.Resize(img, convertWidth, convertHeight, imaging.Lanczos)
		logVerbose("resized to %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}

	if verbose {
		info, err := xpm.Analyze(img)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", input, err)
		}
		logVerbose("%dx%d, %d colors, %d chars/pixel", info.Width, info.Height, info.Colors, info.CharsPerPixel)
	}

	if convertStdout {
		return xpm.Encode(os.Stdout, img)
	}

	out := convertOut
	if out == "" && len(args) == 2 {
		out = args[1]
	}
	if out == "" {
		ext := filepath.Ext(input)
		out = strings.TrimSuffix(input, ext) + ".xpm"
	}

	if err := xpm.EncodeFile(img, out); err != nil {
		return err
	}
	logVerbose("wrote %s", out)
	return nil
}
