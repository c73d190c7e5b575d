package types

import (
	"fmt"
	"strings"
)

// Format selects the numeric type of returned traces and whether scaling
// is applied at all.
type Format int

const (
	// FormatDouble returns calibrated traces as float64 values.
	FormatDouble Format = iota
	// FormatSingle returns calibrated traces as float32 values.
	FormatSingle
	// FormatRaw returns unscaled ADC counts; scaling is skipped entirely.
	FormatRaw
)

func (f Format) String() string {
	switch f {
	case FormatDouble:
		return "double"
	case FormatSingle:
		return "single"
	case FormatRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// ParseFormat maps a textual format name to a Format. Matching is
// case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "double":
		return FormatDouble, nil
	case "single":
		return FormatSingle, nil
	case "raw":
		return FormatRaw, nil
	}
	return FormatDouble, &FormatError{Reason: fmt.Sprintf("unknown format %q (want double, single, or raw)", s)}
}
