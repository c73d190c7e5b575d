package wavesurfer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/simonhull/wavesurfer/internal/compat"
	"github.com/simonhull/wavesurfer/internal/container"
	"github.com/simonhull/wavesurfer/internal/metadata"
	"github.com/simonhull/wavesurfer/internal/scaling"
	"github.com/simonhull/wavesurfer/internal/types"
)

// ErrClosed is returned by data operations on a closed Recording.
var ErrClosed = errors.New("wavesurfer: recording is closed")

// Recording represents an opened WaveSurfer data file.
//
// Recording provides access to the crawled header metadata (Header),
// the ordered segment names (Segments), and the analog traces of each
// segment (Traces). Opening a file reads only metadata; trace data
// loads lazily on access.
//
// Always call Close() when done to release the file handle:
//
//	rec, err := wavesurfer.Open("recording.h5")
//	if err != nil {
//		return err
//	}
//	defer rec.Close()
type Recording struct {
	// Path to the data file
	Path string

	// Format the traces are returned in (double, single, or raw)
	Format Format

	// Warnings encountered while opening (non-fatal issues)
	Warnings []Warning

	// Internal state (unexported)
	container container.File
	tree      types.Map
	scaling   scaling.ChannelScaling
	segments  []string
	version   string
	closed    bool
}

// Open opens a WaveSurfer data file and reads its metadata.
//
// The file must carry the .h5 extension WaveSurfer writes. Open crawls
// the header hierarchy, corrects the sampling rates of files recorded
// by early WaveSurfer releases, and resolves the per-channel scaling
// needed to calibrate traces. Trace data itself is not read until
// Traces or LoadAll is called.
//
// Files written by a WaveSurfer release newer than the newest this
// module was tested with still open, with a warning appended to
// Recording.Warnings.
//
// Options can be provided to customize loading:
//
//	rec, err := wavesurfer.Open("recording.h5",
//	    wavesurfer.WithFormat(wavesurfer.FormatSingle),
//	)
//
// Example:
//
//	rec, err := wavesurfer.Open("recording.h5")
//	if err != nil {
//		return err
//	}
//	defer rec.Close()
//	fmt.Printf("%d segments\n", len(rec.Segments()))
func Open(path string, opts ...Option) (*Recording, error) {
	// Apply options
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	// Check that the file exists
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("stat file: %w", err)
	}

	// Check that the file has the proper extension
	if ext := filepath.Ext(path); ext != ".h5" {
		return nil, &FormatError{Path: path, Reason: "not a WaveSurfer-generated HDF5 (.h5) file"}
	}

	c, err := container.OpenHDF5(path)
	if err != nil {
		return nil, err
	}

	rec, err := openContainer(c, path, options)
	if err != nil {
		c.Close()
		return nil, err
	}
	return rec, nil
}

// openContainer builds a Recording from an open container (internal,
// for testing). The caller owns the container on error.
func openContainer(c container.File, path string, options *openOptions) (*Recording, error) {
	tree, err := metadata.Crawl(c)
	if err != nil {
		return nil, err
	}

	version, _, err := compat.Version(tree)
	if err != nil {
		return nil, err
	}

	warnings, err := compat.Correct(tree, options.latestTested)
	if err != nil {
		return nil, err
	}

	channelScaling, err := scaling.Resolve(tree, options.format)
	if err != nil {
		return nil, err
	}

	nodes, err := c.Children()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(nodes))
	for _, node := range nodes {
		names = append(names, node.Name)
	}
	segments, err := metadata.OrderSegments(names)
	if err != nil {
		return nil, err
	}

	// Check strict version mode
	if options.strictVersion && len(warnings) > 0 {
		return nil, fmt.Errorf("strict version check failed: %s", warnings[0].Message)
	}

	return &Recording{
		Path:      path,
		Format:    options.format,
		Warnings:  warnings,
		container: c,
		tree:      tree,
		scaling:   channelScaling,
		segments:  segments,
		version:   version,
	}, nil
}

// Close releases the file handle. Closing an already closed Recording
// is a no-op.
func (r *Recording) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.container.Close()
}

// Header returns the recording's header metadata as a nested map.
//
// The map is the Recording's own working copy: mutating it changes
// what later accessors see.
func (r *Recording) Header() Map {
	header, _ := r.tree.Map("header")
	return header
}

// Segments returns the segment names in acquisition order, one per
// sweep (or trial, in older files).
func (r *Recording) Segments() []string {
	out := make([]string, len(r.segments))
	copy(out, r.segments)
	return out
}

// NumChannels returns the number of analog input channels.
func (r *Recording) NumChannels() int {
	return r.scaling.NumChannels
}

// FileVersion returns the WaveSurfer version string recorded in the
// file, or "" for files from before versions were recorded.
func (r *Recording) FileVersion() string {
	return r.version
}

// NumFrames returns the number of frames (samples per channel) stored
// for one segment. Only the dataset shape is read, not the data.
func (r *Recording) NumFrames(segment int) (int, error) {
	if r.closed {
		return 0, ErrClosed
	}
	if segment < 0 || segment >= len(r.segments) {
		return 0, &OutOfRangeError{What: "segment", Index: segment, Size: len(r.segments)}
	}

	ds, err := r.segmentDataset(r.segments[segment])
	if err != nil {
		return 0, err
	}
	dims := ds.Dims()
	if len(dims) != 2 {
		return 0, &SchemaError{Name: r.segments[segment], Reason: fmt.Sprintf("expected channels x samples, have rank %d", len(dims))}
	}
	return dims[1], nil
}

// Traces reads frames [startFrame, endFrame) of one segment.
//
// The result is shaped channels x samples. With returnScaled, counts
// pass through each channel's calibration polynomial and scale; the
// element type then follows the Recording's Format. Without it, the
// raw 16-bit ADC counts are returned as stored.
//
// Requesting scaled traces from a raw-format Recording is an error,
// as is an empty or out-of-bounds frame window.
func (r *Recording) Traces(segment, startFrame, endFrame int, returnScaled bool) (*Array, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if returnScaled && r.Format == FormatRaw {
		return nil, &FormatError{Reason: "scaled traces cannot be read from a raw format recording"}
	}
	if segment < 0 || segment >= len(r.segments) {
		return nil, &OutOfRangeError{What: "segment", Index: segment, Size: len(r.segments)}
	}

	ds, err := r.segmentDataset(r.segments[segment])
	if err != nil {
		return nil, err
	}
	v, err := ds.Read()
	if err != nil {
		return nil, err
	}
	arr, ok := v.(*types.Array)
	if !ok {
		return nil, &SchemaError{Name: r.segments[segment], Reason: "segment data is not an array"}
	}
	counts, err := arr.SliceCols(startFrame, endFrame)
	if err != nil {
		return nil, err
	}

	if returnScaled && r.scaling.NumChannels > 0 {
		if r.Format == FormatSingle {
			return scaling.ScaledSingleFromRaw(counts, r.scaling.Scales, r.scaling.Coefficients)
		}
		return scaling.ScaledDoubleFromRaw(counts, r.scaling.Scales, r.scaling.Coefficients)
	}
	return counts, nil
}

// segmentDataset resolves the dataset holding a segment's ADC counts.
// Sweeps keep them in an "analogScans" dataset inside the sweep group;
// older files store each trial as a flat dataset.
func (r *Recording) segmentDataset(name string) (container.Dataset, error) {
	node, err := r.segmentNode(name)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(name, "sweep") {
		if node.Kind != container.KindGroup {
			return nil, &SchemaError{Name: name, Reason: "not a group"}
		}
		return childDataset(node.Group, "analogScans")
	}
	if node.Kind != container.KindDataset {
		return nil, &SchemaError{Name: name, Reason: "not a dataset"}
	}
	return node.Dataset, nil
}

func (r *Recording) segmentNode(name string) (container.Node, error) {
	nodes, err := r.container.Children()
	if err != nil {
		return container.Node{}, err
	}
	for _, node := range nodes {
		if node.Name == name {
			return node, nil
		}
	}
	return container.Node{}, &LookupError{What: "segment " + name}
}

func childDataset(g container.Group, name string) (container.Dataset, error) {
	nodes, err := g.Children()
	if err != nil {
		return nil, err
	}
	for _, node := range nodes {
		if node.Name == name && node.Kind == container.KindDataset {
			return node.Dataset, nil
		}
	}
	return nil, &LookupError{What: name}
}
