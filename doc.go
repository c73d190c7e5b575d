// Package wavesurfer reads electrophysiology data files recorded by
// WaveSurfer.
//
// WaveSurfer stores each acquisition run as an HDF5 file: a header
// hierarchy with the rig configuration, plus one group per sweep
// holding the raw 16-bit ADC counts of every analog input channel.
// This package crawls the header into nested maps, resolves the
// per-channel calibration, and converts counts into analog values on
// demand.
//
// # Quick Start
//
// Loading a whole recording at once:
//
//	data, err := wavesurfer.LoadFile("recording.h5")
//	if err != nil {
//		log.Fatal(err)
//	}
//	sweep := data["sweep_0001"].(wavesurfer.Map)
//	traces := sweep["analogScans"].(*wavesurfer.Array)
//
// Lazy access to individual sweeps:
//
//	rec, err := wavesurfer.Open("recording.h5")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rec.Close()
//
//	traces, err := rec.Traces(0, 0, 20000, true)
//
// # Formats
//
// Traces are returned in one of three element types, chosen at open
// time with WithFormat:
//
//   - double: float64, scaled (the default)
//   - single: float32, scaled
//   - raw: int16 ADC counts, unscaled
//
// Scaling runs each channel's counts through that channel's
// calibration polynomial and divides by the channel scale, yielding
// values in the channel's native unit (volts, typically).
//
// # Older Files
//
// WaveSurfer's file layout changed across releases, and this package
// reads them all: flat "trial" datasets from before sweeps became
// groups, calibration fields living under Acquisition before they
// moved to the header root, and files from before version strings were
// recorded. Early releases also wrote sampling rates the hardware
// could not actually produce; those rates are corrected transparently
// during Open.
//
// Files written by a WaveSurfer release newer than the newest tested
// one load normally and report the mismatch:
//
//	if len(rec.Warnings) > 0 {
//		for _, w := range rec.Warnings {
//			log.Printf("Warning: %s", w)
//		}
//	}
//
// Pass WithStrictVersionCheck to fail instead.
//
// # Error Handling
//
// Fatal problems return typed errors that identify what went wrong:
// NotFoundError and FormatError for unusable paths, SchemaError for
// malformed hierarchies, LookupError for missing header information,
// OutOfRangeError and SegmentIndexError for bad indices. Non-fatal
// issues become Warnings on the Recording.
//
// # Concurrency
//
// A Recording is not safe for concurrent use. Load several files in
// parallel with LoadMany:
//
//	datasets, err := wavesurfer.LoadMany(ctx, paths...)
package wavesurfer
