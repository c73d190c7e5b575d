package types

import (
	"fmt"
	"math"
	"slices"
)

// Value is one node of a recording's metadata tree: either a nested Map
// or a leaf Scalar/Array read from the container.
//
// The union is closed - every tree produced by this module consists of
// exactly these three kinds. Accessors fail explicitly on a kind or type
// mismatch instead of guessing.
type Value interface {
	isValue()
}

// Map is one level of the metadata tree, keyed by normalized field names.
type Map map[string]Value

func (Map) isValue() {}

// Child returns the named value and whether it exists.
func (m Map) Child(name string) (Value, bool) {
	v, ok := m[name]
	return v, ok
}

// Has reports whether the named field exists at this level.
func (m Map) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// Map returns the nested map stored under name.
func (m Map) Map(name string) (Map, error) {
	v, ok := m[name]
	if !ok {
		return nil, &LookupError{What: name}
	}
	sub, ok := v.(Map)
	if !ok {
		return nil, &SchemaError{Name: name, Reason: "not a nested group"}
	}
	return sub, nil
}

// Scalar returns the scalar leaf stored under name.
func (m Map) Scalar(name string) (*Scalar, error) {
	v, ok := m[name]
	if !ok {
		return nil, &LookupError{What: name}
	}
	s, ok := v.(*Scalar)
	if !ok {
		return nil, &SchemaError{Name: name, Reason: "not a scalar value"}
	}
	return s, nil
}

// Array returns the array leaf stored under name.
func (m Map) Array(name string) (*Array, error) {
	v, ok := m[name]
	if !ok {
		return nil, &LookupError{What: name}
	}
	a, ok := v.(*Array)
	if !ok {
		return nil, &SchemaError{Name: name, Reason: "not an array value"}
	}
	return a, nil
}

// Scalar is a single leaf value: a float, integer, text, or boolean.
//
// Single-element container datasets normalize to Scalar regardless of
// their stored rank, because the originating software writes scalars as
// 1x1 arrays.
type Scalar struct {
	v any
}

func (*Scalar) isValue() {}

// Float builds a float scalar.
func Float(v float64) *Scalar { return &Scalar{v: v} }

// Int builds an integer scalar.
func Int(v int64) *Scalar { return &Scalar{v: v} }

// Text builds a text scalar.
func Text(v string) *Scalar { return &Scalar{v: v} }

// Bool builds a boolean scalar.
func Bool(v bool) *Scalar { return &Scalar{v: v} }

// Value returns the underlying value (float64, int64, string, or bool).
func (s *Scalar) Value() any { return s.v }

// Float returns the scalar as a float64. Integers widen; text and
// booleans fail.
func (s *Scalar) Float() (float64, error) {
	switch v := s.v.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	}
	return 0, &SchemaError{Reason: fmt.Sprintf("scalar holds %T, not a number", s.v)}
}

// Int returns the scalar as an int64. Floats must be integral.
func (s *Scalar) Int() (int64, error) {
	switch v := s.v.(type) {
	case int64:
		return v, nil
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int64(v), nil
		}
		return 0, &SchemaError{Reason: fmt.Sprintf("%v is not an integer", v)}
	}
	return 0, &SchemaError{Reason: fmt.Sprintf("scalar holds %T, not an integer", s.v)}
}

// Text returns the scalar as a string. Only text scalars qualify.
func (s *Scalar) Text() (string, error) {
	if v, ok := s.v.(string); ok {
		return v, nil
	}
	return "", &SchemaError{Reason: fmt.Sprintf("scalar holds %T, not text", s.v)}
}

// Bool returns the scalar as a boolean. Numeric values coerce to their
// non-zero test; text fails.
func (s *Scalar) Bool() (bool, error) {
	switch v := s.v.(type) {
	case bool:
		return v, nil
	case float64:
		return v != 0, nil
	case int64:
		return v != 0, nil
	}
	return false, &SchemaError{Reason: fmt.Sprintf("scalar holds %T, not a boolean", s.v)}
}

func (s *Scalar) String() string {
	return fmt.Sprint(s.v)
}

// Array is an n-dimensional leaf value stored row-major.
//
// The payload is one of []float64, []float32, []int64, []int16, []uint8,
// []bool, or []string. Numeric accessors flatten: the mask-filtering and
// element-wise operations downstream do not care about the stored shape,
// only about element order.
type Array struct {
	dims []int
	data any
}

func (*Array) isValue() {}

// NewArray builds an array from row-major data. The payload length must
// equal the product of dims.
func NewArray(dims []int, data any) (*Array, error) {
	n := 1
	for _, d := range dims {
		if d < 0 {
			return nil, &SchemaError{Reason: fmt.Sprintf("negative dimension %d", d)}
		}
		n *= d
	}
	ln, ok := payloadLen(data)
	if !ok {
		return nil, &SchemaError{Reason: fmt.Sprintf("unsupported array payload %T", data)}
	}
	if ln != n {
		return nil, &SchemaError{Reason: fmt.Sprintf("payload has %d elements, dimensions %v require %d", ln, dims, n)}
	}
	return &Array{dims: slices.Clone(dims), data: data}, nil
}

// Dims returns a copy of the array dimensions.
func (a *Array) Dims() []int {
	return slices.Clone(a.dims)
}

// Len returns the total element count.
func (a *Array) Len() int {
	n := 1
	for _, d := range a.dims {
		n *= d
	}
	return n
}

// Floats returns the flattened elements as float64. Any numeric payload
// qualifies; booleans and text fail.
func (a *Array) Floats() ([]float64, error) {
	switch d := a.data.(type) {
	case []float64:
		return slices.Clone(d), nil
	case []float32:
		return widen(d, func(v float32) float64 { return float64(v) }), nil
	case []int64:
		return widen(d, func(v int64) float64 { return float64(v) }), nil
	case []int16:
		return widen(d, func(v int16) float64 { return float64(v) }), nil
	case []uint8:
		return widen(d, func(v uint8) float64 { return float64(v) }), nil
	}
	return nil, &SchemaError{Reason: fmt.Sprintf("array holds %T, not numbers", a.data)}
}

// Bools returns the flattened elements as booleans. Numeric payloads
// coerce element-wise to their non-zero test.
func (a *Array) Bools() ([]bool, error) {
	switch d := a.data.(type) {
	case []bool:
		return slices.Clone(d), nil
	case []float64:
		return widen(d, func(v float64) bool { return v != 0 }), nil
	case []float32:
		return widen(d, func(v float32) bool { return v != 0 }), nil
	case []int64:
		return widen(d, func(v int64) bool { return v != 0 }), nil
	case []int16:
		return widen(d, func(v int16) bool { return v != 0 }), nil
	case []uint8:
		return widen(d, func(v uint8) bool { return v != 0 }), nil
	}
	return nil, &SchemaError{Reason: fmt.Sprintf("array holds %T, not booleans", a.data)}
}

// Int16s returns the payload as int16 counts. No coercion: raw segment
// data is stored as 16-bit ADC counts and anything else is a mismatch.
func (a *Array) Int16s() ([]int16, error) {
	if d, ok := a.data.([]int16); ok {
		return slices.Clone(d), nil
	}
	return nil, &SchemaError{Reason: fmt.Sprintf("array holds %T, not int16 counts", a.data)}
}

// Strings returns the payload as strings.
func (a *Array) Strings() ([]string, error) {
	if d, ok := a.data.([]string); ok {
		return slices.Clone(d), nil
	}
	return nil, &SchemaError{Reason: fmt.Sprintf("array holds %T, not text", a.data)}
}

// Bytes returns the payload as raw bytes, for fixed-width encoded text.
func (a *Array) Bytes() ([]byte, error) {
	if d, ok := a.data.([]uint8); ok {
		return slices.Clone(d), nil
	}
	return nil, &SchemaError{Reason: fmt.Sprintf("array holds %T, not bytes", a.data)}
}

// Rows returns a rank-2 numeric array as one float64 slice per row.
func (a *Array) Rows() ([][]float64, error) {
	if len(a.dims) != 2 {
		return nil, &SchemaError{Reason: fmt.Sprintf("expected a rank-2 array, have rank %d", len(a.dims))}
	}
	flat, err := a.Floats()
	if err != nil {
		return nil, err
	}
	rows, cols := a.dims[0], a.dims[1]
	out := make([][]float64, rows)
	for i := range out {
		out[i] = flat[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return out, nil
}

// SliceCols returns columns [start, end) of a rank-2 array as a new
// array, preserving the payload type. Bounds must satisfy
// 0 <= start < end <= cols.
func (a *Array) SliceCols(start, end int) (*Array, error) {
	if len(a.dims) != 2 {
		return nil, &SchemaError{Reason: fmt.Sprintf("expected a channels x samples array, have rank %d", len(a.dims))}
	}
	rows, cols := a.dims[0], a.dims[1]
	if start < 0 || start >= end {
		return nil, &OutOfRangeError{What: "frame", Index: start, Size: cols}
	}
	if end > cols {
		return nil, &OutOfRangeError{What: "frame", Index: end, Size: cols}
	}

	var data any
	switch d := a.data.(type) {
	case []float64:
		data = sliceCols(d, rows, cols, start, end)
	case []float32:
		data = sliceCols(d, rows, cols, start, end)
	case []int64:
		data = sliceCols(d, rows, cols, start, end)
	case []int16:
		data = sliceCols(d, rows, cols, start, end)
	case []uint8:
		data = sliceCols(d, rows, cols, start, end)
	case []bool:
		data = sliceCols(d, rows, cols, start, end)
	case []string:
		data = sliceCols(d, rows, cols, start, end)
	default:
		return nil, &SchemaError{Reason: fmt.Sprintf("unsupported array payload %T", a.data)}
	}
	return &Array{dims: []int{rows, end - start}, data: data}, nil
}

func (a *Array) String() string {
	return fmt.Sprintf("%s%v", payloadName(a.data), a.dims)
}

func payloadLen(data any) (int, bool) {
	switch d := data.(type) {
	case []float64:
		return len(d), true
	case []float32:
		return len(d), true
	case []int64:
		return len(d), true
	case []int16:
		return len(d), true
	case []uint8:
		return len(d), true
	case []bool:
		return len(d), true
	case []string:
		return len(d), true
	}
	return 0, false
}

func payloadName(data any) string {
	switch data.(type) {
	case []float64:
		return "float64"
	case []float32:
		return "float32"
	case []int64:
		return "int64"
	case []int16:
		return "int16"
	case []uint8:
		return "uint8"
	case []bool:
		return "bool"
	case []string:
		return "string"
	}
	return "unknown"
}

func widen[T, U any](in []T, conv func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = conv(v)
	}
	return out
}

func sliceCols[T any](data []T, rows, cols, start, end int) []T {
	width := end - start
	out := make([]T, rows*width)
	for r := 0; r < rows; r++ {
		copy(out[r*width:(r+1)*width], data[r*cols+start:r*cols+end])
	}
	return out
}
