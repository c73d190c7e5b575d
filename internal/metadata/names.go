// Package metadata crawls a container hierarchy into nested maps and
// orders the per-segment groups recorded in it.
package metadata

import (
	"math"
	"strconv"

	"github.com/simonhull/wavesurfer/internal/types"
)

// FieldName converts an HDF5 object name into a legal struct field
// name. Purely integer names get an "n" prefix, matching the MATLAB
// convention for struct fields; everything else passes through
// unchanged. Names that parse as fractional numbers cannot be made
// into field names and are rejected.
func FieldName(name string) (string, error) {
	v, err := strconv.ParseFloat(name, 64)
	if err != nil {
		return name, nil
	}
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return "", &types.SchemaError{Name: name, Reason: "not convertible to a field name"}
	}
	return "n" + name, nil
}
