package types

import "fmt"

// NotFoundError is returned when the recording file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: file does not exist", e.Path)
}

// FormatError is returned for a wrong file extension or an invalid
// format/scaling combination.
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
	return e.Reason
}

// SchemaError is returned when a container node name cannot become a
// field name, or when the container layout contradicts itself.
type SchemaError struct {
	Name   string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%q: %s", e.Name, e.Reason)
	}
	return e.Reason
}

// LookupError is returned when an expected metadata field is missing
// under all known schema variants, new and legacy. What names the
// missing concept.
type LookupError struct {
	What string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unable to read %s from file", e.What)
}

// OutOfRangeError is returned when a requested segment or frame window
// lies outside the recording's bounds.
type OutOfRangeError struct {
	What  string // what was being indexed
	Index int
	Size  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %d out of range (size %d)", e.What, e.Index, e.Size)
}

// SegmentIndexError is returned when the segment names in a file do not
// carry a dense 1..N numbering.
type SegmentIndexError struct {
	Index  int
	Count  int
	Reason string // "duplicated" or "out of range"
}

func (e *SegmentIndexError) Error() string {
	return fmt.Sprintf("segment index %d %s (%d segments in file)", e.Index, e.Reason, e.Count)
}

// Warning represents a non-fatal issue found while opening a recording.
//
// Warnings indicate conditions that do not prevent reading but that the
// caller may want to surface, such as a file written by a newer program
// version than this module was tested against. They are collected on the
// Recording during Open.
type Warning struct {
	// Stage where the warning was raised
	Stage string // "version"

	// Warning message
	Message string
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
