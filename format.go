package wavesurfer

import (
	"github.com/simonhull/wavesurfer/internal/types"
)

// Format is an alias to types.Format.
// Re-exporting from internal/types keeps the public API in one package.
type Format = types.Format

// Trace formats.
const (
	// FormatDouble returns traces scaled to float64.
	FormatDouble = types.FormatDouble
	// FormatSingle returns traces scaled to float32.
	FormatSingle = types.FormatSingle
	// FormatRaw returns the stored 16-bit ADC counts unscaled.
	FormatRaw = types.FormatRaw
)

// ParseFormat parses a format name ("double", "single", or "raw",
// case-insensitive). Unknown names return FormatDouble and an error.
func ParseFormat(s string) (Format, error) {
	return types.ParseFormat(s)
}
