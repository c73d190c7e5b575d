package wavesurfer

import "github.com/simonhull/wavesurfer/internal/compat"

// Option configures behavior when opening data files.
//
// Options use the functional options pattern:
//
//	rec, err := wavesurfer.Open("recording.h5",
//	    wavesurfer.WithFormat(wavesurfer.FormatRaw),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	format        Format // Element type of returned traces
	strictVersion bool   // Fail on version warnings
	latestTested  string // Version the warning threshold compares against
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		format:        FormatDouble,
		strictVersion: false,
		latestTested:  compat.LatestTested,
	}
}

// WithFormat sets the element type traces are returned in.
//
// FormatDouble (the default) scales traces to float64, FormatSingle
// scales to float32, and FormatRaw skips calibration entirely and
// returns the stored 16-bit ADC counts.
//
// Example:
//
//	rec, err := wavesurfer.Open("recording.h5",
//	    wavesurfer.WithFormat(wavesurfer.FormatSingle),
//	)
func WithFormat(format Format) Option {
	return func(o *openOptions) {
		o.format = format
	}
}

// WithStrictVersionCheck treats a version warning as a fatal error.
//
// By default, a file written by a WaveSurfer release newer than the
// newest tested one opens normally and the mismatch is reported in
// Recording.Warnings. With strict checking enabled, Open fails
// instead.
//
// Example:
//
//	rec, err := wavesurfer.Open("recording.h5",
//	    wavesurfer.WithStrictVersionCheck(),
//	)
//	// err != nil if the file's version is newer than tested
func WithStrictVersionCheck() Option {
	return func(o *openOptions) {
		o.strictVersion = true
	}
}

// WithLatestTested overrides the WaveSurfer version the warning
// threshold compares against. The version must be a plain decimal
// like "0.99" or "1.2", matching how WaveSurfer numbers its releases.
//
// Use this after verifying the module against a newer WaveSurfer
// release than the built-in default.
func WithLatestTested(version string) Option {
	return func(o *openOptions) {
		o.latestTested = version
	}
}
