package wavesurfer_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robert-malhotra/go-hdf5/hdf5"

	"github.com/simonhull/wavesurfer"
)

// writeRecording writes a minimal single-channel WaveSurfer file at
// path: one active channel with scale 2 and a constant calibration
// polynomial. The customize hook can add groups and datasets before
// the file is finalized.
func writeRecording(t *testing.T, path, version string, customize func(t *testing.T, root, header *hdf5.Group)) {
	t.Helper()

	f, err := hdf5.Create(path)
	if err != nil {
		t.Fatalf("Create(%s) error = %v", path, err)
	}
	root := f.Root()
	header := mustGroup(t, root, "header")

	mustDataset(t, header, "VersionString", []byte(version))
	mustDataset(t, header, "NAIChannels", 1.0)
	mustDataset(t, header, "AIChannelScales", 2.0)
	mustDataset(t, header, "IsAIChannelActive", 1.0)
	mustDataset(t, header, "AIScalingCoefficients", 1.0)

	if customize != nil {
		customize(t, root, header)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func mustGroup(t *testing.T, g *hdf5.Group, name string) *hdf5.Group {
	t.Helper()
	child, err := g.CreateGroup(name)
	if err != nil {
		t.Fatalf("CreateGroup(%s) error = %v", name, err)
	}
	return child
}

func mustDataset(t *testing.T, g *hdf5.Group, name string, data any) {
	t.Helper()
	if _, err := g.CreateDataset(name, data); err != nil {
		t.Fatalf("CreateDataset(%s) error = %v", name, err)
	}
}

func TestOpen_RealFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec_0001.h5")
	writeRecording(t, path, "0.982", func(t *testing.T, root, header *hdf5.Group) {
		acq := mustGroup(t, header, "Acquisition")
		mustDataset(t, acq, "SampleRate", 20000.0)

		// Numbered stimulus entries turn into n-prefixed field names.
		lib := mustGroup(t, header, "StimLibrary")
		first := mustGroup(t, lib, "1")
		mustDataset(t, first, "Delay", 0.25)

		// Sweeps out of file order; the suffix decides their place.
		sweep2 := mustGroup(t, root, "sweep_0002")
		mustDataset(t, sweep2, "timestamp", 12.5)
		sweep1 := mustGroup(t, root, "sweep_0001")
		mustDataset(t, sweep1, "timestamp", 2.5)
	})

	rec, err := wavesurfer.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rec.Close()

	if got := rec.FileVersion(); got != "0.982" {
		t.Errorf("FileVersion() = %q, want %q", got, "0.982")
	}
	if got := rec.NumChannels(); got != 1 {
		t.Errorf("NumChannels() = %d, want 1", got)
	}
	if rec.Format != wavesurfer.FormatDouble {
		t.Errorf("Format = %v, want %v", rec.Format, wavesurfer.FormatDouble)
	}
	if len(rec.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", rec.Warnings)
	}

	want := []string{"sweep_0001", "sweep_0002"}
	segments := rec.Segments()
	if len(segments) != len(want) {
		t.Fatalf("Segments() = %v, want %v", segments, want)
	}
	for i := range segments {
		if segments[i] != want[i] {
			t.Errorf("Segments()[%d] = %q, want %q", i, segments[i], want[i])
		}
	}

	header := rec.Header()
	n, err := header.Scalar("NAIChannels")
	if err != nil {
		t.Fatal(err)
	}
	if count, err := n.Int(); err != nil || count != 1 {
		t.Errorf("NAIChannels = %v (err %v), want 1", count, err)
	}

	lib, err := header.Map("StimLibrary")
	if err != nil {
		t.Fatal(err)
	}
	first, err := lib.Map("n1")
	if err != nil {
		t.Fatalf("numeric group was not normalized: %v", err)
	}
	delay, err := first.Scalar("Delay")
	if err != nil {
		t.Fatal(err)
	}
	if v, err := delay.Float(); err != nil || v != 0.25 {
		t.Errorf("StimLibrary/n1/Delay = %v (err %v), want 0.25", v, err)
	}

	if err := rec.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestOpen_FileNotFound(t *testing.T) {
	_, err := wavesurfer.Open(filepath.Join(t.TempDir(), "missing.h5"))
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
	if _, ok := err.(*wavesurfer.NotFoundError); !ok {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}

func TestOpen_WrongExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not a recording"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := wavesurfer.Open(path)
	if err == nil {
		t.Fatal("expected error for wrong extension")
	}
	if _, ok := err.(*wavesurfer.FormatError); !ok {
		t.Errorf("expected FormatError, got %T", err)
	}
}

func TestOpen_NotHDF5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.h5")
	if err := os.WriteFile(path, []byte("this is not an HDF5 container"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := wavesurfer.Open(path); err == nil {
		t.Fatal("expected error for a non-HDF5 payload")
	}
}

func TestOpen_VersionWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.h5")
	writeRecording(t, path, "1.1.0", nil)

	rec, err := wavesurfer.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rec.Close()

	if got := rec.FileVersion(); got != "1.1.0" {
		t.Errorf("FileVersion() = %q, want %q", got, "1.1.0")
	}
	if len(rec.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", rec.Warnings)
	}
	msg := rec.Warnings[0].Message
	if !strings.Contains(msg, "not tested with") || !strings.Contains(msg, "1.1.0") {
		t.Errorf("warning %q should name the untested file version", msg)
	}
}

func TestOpen_StrictVersionCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.h5")
	writeRecording(t, path, "1.1.0", nil)

	_, err := wavesurfer.Open(path, wavesurfer.WithStrictVersionCheck())
	if err == nil {
		t.Fatal("expected strict version check to fail")
	}
	if !strings.Contains(err.Error(), "strict version check failed") {
		t.Errorf("error %q should mention the strict check", err)
	}
}

func TestOpen_WithLatestTested(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.h5")
	writeRecording(t, path, "1.1.0", nil)

	rec, err := wavesurfer.Open(path, wavesurfer.WithLatestTested("1.2"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rec.Close()

	if len(rec.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none after raising the tested version", rec.Warnings)
	}
}

func TestOpen_RateFix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.h5")
	writeRecording(t, path, "0.912", func(t *testing.T, root, header *hdf5.Group) {
		acq := mustGroup(t, header, "Acquisition")
		mustDataset(t, acq, "SampleRate", 6.25e7)
		stim := mustGroup(t, header, "Stimulation")
		mustDataset(t, stim, "SampleRate", 6.25e7)
	})

	rec, err := wavesurfer.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rec.Close()

	for section, want := range map[string]float64{
		"Acquisition": 1e8, // floored timebase divisor
		"Stimulation": 5e7, // rounded timebase divisor
	} {
		sub, err := rec.Header().Map(section)
		if err != nil {
			t.Fatal(err)
		}
		s, err := sub.Scalar("SampleRate")
		if err != nil {
			t.Fatal(err)
		}
		got, err := s.Float()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%s SampleRate = %v, want %v", section, got, want)
		}
	}
}

func TestLoadFile_RealFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec_0001.h5")
	writeRecording(t, path, "0.982", nil)

	data, err := wavesurfer.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	header, err := data.Map("header")
	if err != nil {
		t.Fatal(err)
	}
	n, err := header.Scalar("NAIChannels")
	if err != nil {
		t.Fatal(err)
	}
	if count, err := n.Int(); err != nil || count != 1 {
		t.Errorf("NAIChannels = %v (err %v), want 1", count, err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := wavesurfer.LoadFile(filepath.Join(t.TempDir(), "missing.h5"))
	if err == nil {
		t.Fatal("expected error for nonexistent file")
	}
}
