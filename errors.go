package wavesurfer

import (
	"github.com/simonhull/wavesurfer/internal/types"
)

// NotFoundError is an alias to types.NotFoundError.
// Re-exporting from internal/types keeps the public API in one package.
type NotFoundError = types.NotFoundError

// FormatError is an alias to types.FormatError.
// Re-exporting from internal/types keeps the public API in one package.
type FormatError = types.FormatError

// SchemaError is an alias to types.SchemaError.
// Re-exporting from internal/types keeps the public API in one package.
type SchemaError = types.SchemaError

// LookupError is an alias to types.LookupError.
// Re-exporting from internal/types keeps the public API in one package.
type LookupError = types.LookupError

// OutOfRangeError is an alias to types.OutOfRangeError.
// Re-exporting from internal/types keeps the public API in one package.
type OutOfRangeError = types.OutOfRangeError

// SegmentIndexError is an alias to types.SegmentIndexError.
// Re-exporting from internal/types keeps the public API in one package.
type SegmentIndexError = types.SegmentIndexError

// Warning is an alias to types.Warning.
// Re-exporting from internal/types keeps the public API in one package.
type Warning = types.Warning
