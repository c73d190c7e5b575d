// Package scaling resolves per-channel calibration from a recording's
// header and converts raw ADC counts into scaled analog traces.
package scaling

import (
	"fmt"

	"github.com/simonhull/wavesurfer/internal/types"
)

// ChannelScaling is the calibration of the active analog input
// channels: one scale and one coefficient row per active channel.
// Scales and Coefficients stay nil for raw reads and for files without
// analog channels; NumChannels is reported either way.
type ChannelScaling struct {
	Scales       []float64
	Coefficients [][]float64
	NumChannels  int
}

// Resolve reads the channel calibration for the header layout at hand.
// Newer files carry AIChannelScales, IsAIChannelActive, and
// AIScalingCoefficients at the header root; older files keep their
// equivalents under Acquisition. The channel scales are filtered down
// to the active channels, the coefficient rows are stored per active
// channel already.
func Resolve(tree types.Map, format types.Format) (ChannelScaling, error) {
	header, err := tree.Map("header")
	if err != nil {
		return ChannelScaling{}, err
	}

	n, err := channelCount(header)
	if err != nil {
		return ChannelScaling{}, err
	}
	if format == types.FormatRaw || n <= 0 {
		return ChannelScaling{NumChannels: n}, nil
	}

	allScales, err := floatsAt(header, "AIChannelScales", "AnalogChannelScales", "channel scale information")
	if err != nil {
		return ChannelScaling{}, err
	}
	active, activeField, err := boolsAt(header, "IsAIChannelActive", "IsAnalogChannelActive", "active/inactive channel information")
	if err != nil {
		return ChannelScaling{}, err
	}
	if len(active) != len(allScales) {
		return ChannelScaling{}, &types.SchemaError{
			Name:   activeField,
			Reason: fmt.Sprintf("%d activity flags for %d channel scales", len(active), len(allScales)),
		}
	}

	scales := make([]float64, 0, len(allScales))
	for i, on := range active {
		if on {
			scales = append(scales, allScales[i])
		}
	}

	coefficients, coeffField, err := rowsAt(header, "AIScalingCoefficients", "AnalogScalingCoefficients", "channel scaling coefficients")
	if err != nil {
		return ChannelScaling{}, err
	}
	if len(coefficients) != len(scales) {
		return ChannelScaling{}, &types.SchemaError{
			Name:   coeffField,
			Reason: fmt.Sprintf("%d coefficient rows for %d active channels", len(coefficients), len(scales)),
		}
	}

	return ChannelScaling{Scales: scales, Coefficients: coefficients, NumChannels: n}, nil
}

// channelCount returns the analog input channel count. Newer files
// record it as NAIChannels; before that it is implied by the length of
// the acquisition channel scales.
func channelCount(header types.Map) (int, error) {
	if v, ok := header.Child("NAIChannels"); ok {
		s, ok := v.(*types.Scalar)
		if !ok {
			return 0, &types.SchemaError{Name: "NAIChannels", Reason: "not a scalar count"}
		}
		n, err := s.Int()
		if err != nil {
			return 0, &types.SchemaError{Name: "NAIChannels", Reason: "not a scalar count"}
		}
		return int(n), nil
	}

	acq, err := header.Map("Acquisition")
	if err != nil {
		return 0, &types.LookupError{What: "channel count information"}
	}
	name := "Acquisition/AnalogChannelScales"
	v, ok := acq.Child("AnalogChannelScales")
	if !ok {
		// Files from before digital inputs were supported.
		name = "Acquisition/ChannelScales"
		v, ok = acq.Child("ChannelScales")
	}
	if !ok {
		return 0, &types.LookupError{What: "channel count information"}
	}

	switch val := v.(type) {
	case *types.Scalar:
		return 1, nil
	case *types.Array:
		return val.Len(), nil
	}
	return 0, &types.SchemaError{Name: name, Reason: "not a dataset"}
}

// fieldAt finds a header field, falling back to its pre-rename home
// under Acquisition. A miss on both is reported against what, the
// human name of the information being read.
func fieldAt(header types.Map, name, fallback, what string) (types.Value, string, error) {
	if v, ok := header.Child(name); ok {
		return v, name, nil
	}
	if acq, err := header.Map("Acquisition"); err == nil {
		if v, ok := acq.Child(fallback); ok {
			return v, "Acquisition/" + fallback, nil
		}
	}
	return nil, "", &types.LookupError{What: what}
}

func floatsAt(header types.Map, name, fallback, what string) ([]float64, error) {
	v, field, err := fieldAt(header, name, fallback, what)
	if err != nil {
		return nil, err
	}
	switch val := v.(type) {
	case *types.Scalar:
		f, err := val.Float()
		if err != nil {
			return nil, &types.SchemaError{Name: field, Reason: "not numeric"}
		}
		return []float64{f}, nil
	case *types.Array:
		vals, err := val.Floats()
		if err != nil {
			return nil, &types.SchemaError{Name: field, Reason: "not numeric"}
		}
		return vals, nil
	}
	return nil, &types.SchemaError{Name: field, Reason: "not a numeric dataset"}
}

func boolsAt(header types.Map, name, fallback, what string) ([]bool, string, error) {
	v, field, err := fieldAt(header, name, fallback, what)
	if err != nil {
		return nil, "", err
	}
	switch val := v.(type) {
	case *types.Scalar:
		b, err := val.Bool()
		if err != nil {
			return nil, "", &types.SchemaError{Name: field, Reason: "not boolean"}
		}
		return []bool{b}, field, nil
	case *types.Array:
		vals, err := val.Bools()
		if err != nil {
			return nil, "", &types.SchemaError{Name: field, Reason: "not boolean"}
		}
		return vals, field, nil
	}
	return nil, "", &types.SchemaError{Name: field, Reason: "not a boolean dataset"}
}

// rowsAt reads a coefficient matrix. A single-element dataset counts
// as one row of one coefficient, the 1x1 shape MATLAB writes for a
// lone channel with a constant polynomial.
func rowsAt(header types.Map, name, fallback, what string) ([][]float64, string, error) {
	v, field, err := fieldAt(header, name, fallback, what)
	if err != nil {
		return nil, "", err
	}
	switch val := v.(type) {
	case *types.Scalar:
		f, err := val.Float()
		if err != nil {
			return nil, "", &types.SchemaError{Name: field, Reason: "not numeric"}
		}
		return [][]float64{{f}}, field, nil
	case *types.Array:
		rows, err := val.Rows()
		if err != nil {
			return nil, "", &types.SchemaError{Name: field, Reason: "not a channels x coefficients matrix"}
		}
		return rows, field, nil
	}
	return nil, "", &types.SchemaError{Name: field, Reason: "not a numeric dataset"}
}

// ScaledDoubleFromRaw converts raw ADC counts, shaped channels x
// samples, into calibrated analog values. Each channel's counts pass
// through that channel's calibration polynomial and the result divides
// by the channel scale to land in the channel's native unit. A zero
// scale yields infinities, as the calibration genuinely is singular
// there.
func ScaledDoubleFromRaw(counts *types.Array, scales []float64, coefficients [][]float64) (*types.Array, error) {
	dims := counts.Dims()
	if len(dims) != 2 {
		return nil, &types.SchemaError{Name: "analog data", Reason: fmt.Sprintf("expected channels x samples, have rank %d", len(dims))}
	}
	rows, cols := dims[0], dims[1]
	if rows != len(scales) || rows != len(coefficients) {
		return nil, &types.SchemaError{
			Name:   "analog data",
			Reason: fmt.Sprintf("%d channels with %d scales and %d coefficient rows", rows, len(scales), len(coefficients)),
		}
	}

	flat, err := counts.Floats()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(flat))
	for i := 0; i < rows; i++ {
		inv := 1.0 / scales[i]
		row := coefficients[i]
		for k := 0; k < cols; k++ {
			out[i*cols+k] = inv * polyEval(row, flat[i*cols+k])
		}
	}
	return types.NewArray(dims, out)
}

// ScaledSingleFromRaw is ScaledDoubleFromRaw narrowed to float32.
func ScaledSingleFromRaw(counts *types.Array, scales []float64, coefficients [][]float64) (*types.Array, error) {
	scaled, err := ScaledDoubleFromRaw(counts, scales, coefficients)
	if err != nil {
		return nil, err
	}
	flat, err := scaled.Floats()
	if err != nil {
		return nil, err
	}
	narrow := make([]float32, len(flat))
	for i, v := range flat {
		narrow[i] = float32(v)
	}
	return types.NewArray(scaled.Dims(), narrow)
}

// polyEval evaluates a calibration polynomial at x. Coefficients are
// stored lowest degree first.
func polyEval(coefficients []float64, x float64) float64 {
	var y float64
	for k := len(coefficients) - 1; k >= 0; k-- {
		y = y*x + coefficients[k]
	}
	return y
}
