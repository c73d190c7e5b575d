package wavesurfer

import (
	"github.com/simonhull/wavesurfer/internal/types"
)

// Value is an alias to types.Value.
// Re-exporting from internal/types keeps the public API in one package.
type Value = types.Value

// Map is an alias to types.Map.
// Re-exporting from internal/types keeps the public API in one package.
type Map = types.Map

// Scalar is an alias to types.Scalar.
// Re-exporting from internal/types keeps the public API in one package.
type Scalar = types.Scalar

// Array is an alias to types.Array.
// Re-exporting from internal/types keeps the public API in one package.
type Array = types.Array
