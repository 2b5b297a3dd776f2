// Package manifest records the outputs of a goxpm batch run.
package manifest

// Manifest is the top-level JSON record of one batch conversion.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	BasePath    string           `json:"base_path"`
	Workers     int              `json:"workers,omitempty"`
	Entries     map[string]Entry `json:"entries"`
	Stats       Stats            `json:"stats"`
}

// Entry describes one source image and its converted XPM output.
type Entry struct {
	Source        string `json:"source"`  // path relative to the input dir
	Output        string `json:"output"`  // path relative to base_path
	Format        string `json:"format"`  // source format (png, jpeg, ...)
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Colors        int    `json:"colors"`
	CharsPerPixel int    `json:"chars_per_pixel"`
	Transparent   bool   `json:"transparent,omitempty"`
	SourceSize    int64  `json:"source_size"`
	OutputSize    int64  `json:"output_size"`
	SourceHash    string `json:"source_hash"` // first 16 hex chars of xxhash64
	Hash          string `json:"hash"`        // xxhash64 of the output document
}

// Stats aggregates run metrics.
type Stats struct {
	TotalImages      int   `json:"total_images"`
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
