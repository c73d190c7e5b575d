package compat

import (
	"errors"
	"fmt"
	"testing"

	"github.com/simonhull/wavesurfer/internal/types"
)

// tree builds a minimal header with both sample rates. A nil version
// leaves VersionString out entirely.
func tree(version types.Value, acqRate, stimRate float64) types.Map {
	header := types.Map{
		"Acquisition": types.Map{"SampleRate": types.Float(acqRate)},
		"Stimulation": types.Map{"SampleRate": types.Float(stimRate)},
	}
	if version != nil {
		header["VersionString"] = version
	}
	return types.Map{"header": header}
}

func rate(t *testing.T, tree types.Map, section string) float64 {
	t.Helper()
	header, err := tree.Map("header")
	if err != nil {
		t.Fatal(err)
	}
	sub, err := header.Map(section)
	if err != nil {
		t.Fatal(err)
	}
	s, err := sub.Scalar("SampleRate")
	if err != nil {
		t.Fatal(err)
	}
	v, err := s.Float()
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestVersion(t *testing.T) {
	bytesVersion, err := types.NewArray([]int{7}, []uint8("0.912\x00\x00"))
	if err != nil {
		t.Fatal(err)
	}
	codes := []float64{'0', '.', '9', '1', '2'}
	codesVersion, err := types.NewArray([]int{5}, codes)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		version     types.Value
		want        string
		wantPresent bool
	}{
		{"string scalar", types.Text("0.913"), "0.913", true},
		{"byte array with padding", bytesVersion, "0.912", true},
		{"character codes", codesVersion, "0.912", true},
		{"absent", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present, err := Version(tree(tt.version, 20000, 20000))
			if err != nil {
				t.Fatalf("Version() error = %v", err)
			}
			if present != tt.wantPresent {
				t.Fatalf("Version() present = %v, want %v", present, tt.wantPresent)
			}
			if got != tt.want {
				t.Errorf("Version() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCorrect_RateFix(t *testing.T) {
	// 62.5 MHz nominal puts 1.6 timebase ticks in each sample, which
	// no board can do. Acquisition floors the divisor to 1 tick and
	// stimulation rounds it to 2.
	data := tree(types.Text("0.912"), 6.25e7, 6.25e7)

	warnings, err := Correct(data, LatestTested)
	if err != nil {
		t.Fatalf("Correct() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("Correct() warnings = %v, want none", warnings)
	}

	if got := rate(t, data, "Acquisition"); got != 1.0e8 {
		t.Errorf("acquisition rate = %v, want 1e8", got)
	}
	if got := rate(t, data, "Stimulation"); got != 5.0e7 {
		t.Errorf("stimulation rate = %v, want 5e7", got)
	}
}

func TestCorrect_FixedReleaseUntouched(t *testing.T) {
	// 0.913 is the first release with the divisor coercion; 1.x
	// releases never had the problem.
	for _, version := range []string{"0.913", "1.0.5"} {
		t.Run(version, func(t *testing.T) {
			data := tree(types.Text(version), 6.25e7, 6.25e7)

			if _, err := Correct(data, LatestTested); err != nil {
				t.Fatalf("Correct() error = %v", err)
			}
			if got := rate(t, data, "Acquisition"); got != 6.25e7 {
				t.Errorf("acquisition rate = %v, want unchanged", got)
			}
			if got := rate(t, data, "Stimulation"); got != 6.25e7 {
				t.Errorf("stimulation rate = %v, want unchanged", got)
			}
		})
	}
}

func TestCorrect_IntegralTicksUntouched(t *testing.T) {
	// 20 kHz divides the timebase evenly, so even buggy releases
	// recorded it correctly.
	data := tree(types.Text("0.5"), 20000, 20000)

	if _, err := Correct(data, LatestTested); err != nil {
		t.Fatalf("Correct() error = %v", err)
	}
	if got := rate(t, data, "Acquisition"); got != 20000 {
		t.Errorf("acquisition rate = %v, want 20000", got)
	}
	if got := rate(t, data, "Stimulation"); got != 20000 {
		t.Errorf("stimulation rate = %v, want 20000", got)
	}
}

func TestCorrect_MissingVersion(t *testing.T) {
	data := tree(nil, 6.25e7, 20000)

	warnings, err := Correct(data, LatestTested)
	if err != nil {
		t.Fatalf("Correct() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unversioned files should not warn, got %v", warnings)
	}
	if got := rate(t, data, "Acquisition"); got != 1.0e8 {
		t.Errorf("acquisition rate = %v, want fixed", got)
	}
}

func TestCorrect_NewerVersionWarns(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{
			"over one",
			"1.0.5",
			fmt.Sprintf(untestedVersion, "1.0.5", "0.982"),
		},
		{
			"under one",
			"0.99",
			fmt.Sprintf(untestedVersion, "0.99", "0.982"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tree(types.Text(tt.version), 20000, 20000)
			warnings, err := Correct(data, LatestTested)
			if err != nil {
				t.Fatalf("Correct() error = %v", err)
			}
			if len(warnings) != 1 {
				t.Fatalf("Correct() warnings = %v, want one", warnings)
			}
			if warnings[0].Stage != "version" {
				t.Errorf("warning stage = %q, want %q", warnings[0].Stage, "version")
			}
			if warnings[0].Message != tt.want {
				t.Errorf("warning message = %q, want %q", warnings[0].Message, tt.want)
			}
		})
	}
}

func TestCorrect_TestedVersionsSilent(t *testing.T) {
	for _, version := range []string{"0.912", "0.982", "0.945"} {
		data := tree(types.Text(version), 20000, 20000)
		warnings, err := Correct(data, LatestTested)
		if err != nil {
			t.Fatalf("Correct(%q) error = %v", version, err)
		}
		if len(warnings) != 0 {
			t.Errorf("Correct(%q) warnings = %v, want none", version, warnings)
		}
	}
}

func TestCorrect_BadVersions(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"garbage", "abc"},
		{"dotted under one", "0.9.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tree(types.Text(tt.version), 20000, 20000)
			var schemaErr *types.SchemaError
			if _, err := Correct(data, LatestTested); !errors.As(err, &schemaErr) {
				t.Fatalf("Correct() = %v, want SchemaError", err)
			}
		})
	}
}

func TestCorrect_MissingRate(t *testing.T) {
	data := types.Map{
		"header": types.Map{
			"VersionString": types.Text("0.912"),
			"Stimulation":   types.Map{"SampleRate": types.Float(20000)},
		},
	}

	var lookupErr *types.LookupError
	_, err := Correct(data, LatestTested)
	if !errors.As(err, &lookupErr) {
		t.Fatalf("Correct() = %v, want LookupError", err)
	}
	if lookupErr.What != "acquisition sample rate" {
		t.Errorf("LookupError.What = %q, want %q", lookupErr.What, "acquisition sample rate")
	}
}

func TestCorrect_MissingHeader(t *testing.T) {
	if _, err := Correct(types.Map{}, LatestTested); err == nil {
		t.Fatal("Correct() without a header should fail")
	}
}
