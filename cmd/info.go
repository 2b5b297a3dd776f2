package cmd

import (
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/rahra/go-xpm"
	"github.com/rahra/go-xpm/internal/hasher"
)

var infoCmd = &cobra.Command{
	Use:   "info <input>",
	Short: "Show how an image would encode as XPM",
	Long: `Decodes the input image and prints its encoding parameters:
geometry, distinct colors, characters per pixel, the pre-computed size
bound versus the exact encoded size, and the xxHash64 of the document.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, args []string) error {
	input := args[0]

	img, err := imaging.Open(input, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}

	info, err := xpm.Analyze(img)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", input, err)
	}
	doc, err := xpm.EncodeBytes(img)
	if err != nil {
		return fmt.Errorf("encode %s: %w", input, err)
	}

	transparent := "no"
	if info.Transparent {
		transparent = "yes (c None entry)"
	}

	fmt.Println()
	fmt.Printf("  Geometry:        %d x %d\n", info.Width, info.Height)
	fmt.Printf("  Colors:          %d\n", info.Colors)
	fmt.Printf("  Chars per pixel: %d\n", info.CharsPerPixel)
	fmt.Printf("  Transparency:    %s\n", transparent)
	fmt.Printf("  Size bound:      %d bytes\n", info.MaxEncodedSize)
	fmt.Printf("  Encoded size:    %d bytes\n", len(doc))
	fmt.Printf("  Content hash:    %s\n", hasher.ContentHash(doc, 16))
	fmt.Println()
	return nil
}
