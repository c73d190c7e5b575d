package wavesurfer

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// LoadAll reads every segment's traces into the metadata tree and
// returns the tree.
//
// Each sweep group gains an "analogScans" entry holding its traces;
// legacy trial segments are stored directly under their name. Unless
// the Recording's format is raw, traces are scaled.
//
// The returned map is the Recording's working copy, so a second call
// sees the already loaded data again.
func (r *Recording) LoadAll() (Map, error) {
	if r.closed {
		return nil, ErrClosed
	}

	for i, name := range r.segments {
		frames, err := r.NumFrames(i)
		if err != nil {
			return nil, err
		}

		data, err := r.Traces(i, 0, frames, r.Format != FormatRaw)
		if err != nil {
			return nil, err
		}

		if strings.HasPrefix(name, "sweep") {
			sweep, err := r.tree.Map(name)
			if err != nil {
				return nil, err
			}
			sweep["analogScans"] = data
		} else {
			r.tree[name] = data
		}
	}
	return r.tree, nil
}

// LoadFile opens a WaveSurfer data file, loads all of its segments,
// and closes it again.
//
// This convenience function returns the entire dataset at once, for
// callers that do not need lazy access:
//
//	data, err := wavesurfer.LoadFile("recording.h5")
//	if err != nil {
//		return err
//	}
//	sweep := data["sweep_0001"].(wavesurfer.Map)
//	traces := sweep["analogScans"].(*wavesurfer.Array)
func LoadFile(path string, opts ...Option) (Map, error) {
	rec, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer rec.Close()
	return rec.LoadAll()
}

// OpenContext opens a file with context support for cancellation.
//
// This is a thin wrapper around Open() that checks the context before
// starting. Options can be provided just like with Open().
func OpenContext(ctx context.Context, path string, opts ...Option) (*Recording, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// LoadMany loads multiple data files concurrently.
//
// Files are loaded in parallel using up to runtime.NumCPU()
// goroutines. Results are returned in the same order as the input
// paths. If any file fails to load, the first error is returned.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
//	defer cancel()
//
//	datasets, err := wavesurfer.LoadMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
func LoadMany(ctx context.Context, paths ...string) ([]Map, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU()) // Limit concurrent operations

	results := make([]Map, len(paths))

	for i, path := range paths {
		i, path := i, path // Capture loop variables
		g.Go(func() error {
			// Check for cancellation
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			data, err := LoadFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
