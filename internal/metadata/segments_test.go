package metadata

import (
	"errors"
	"testing"

	"github.com/simonhull/wavesurfer/internal/types"
)

func TestIsSegmentName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"sweep_0001", true},
		{"trial_0042", true},
		{"sweep", true},
		{"header", false},
		{"swee", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsSegmentName(tt.in); got != tt.want {
			t.Errorf("IsSegmentName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrderSegments(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			"already ordered",
			[]string{"header", "sweep_0001", "sweep_0002"},
			[]string{"sweep_0001", "sweep_0002"},
		},
		{
			"shuffled",
			[]string{"sweep_0003", "sweep_0001", "sweep_0002"},
			[]string{"sweep_0001", "sweep_0002", "sweep_0003"},
		},
		{
			"legacy trials",
			[]string{"trial_0002", "header", "trial_0001"},
			[]string{"trial_0001", "trial_0002"},
		},
		{
			"no segments",
			[]string{"header"},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OrderSegments(tt.in)
			if err != nil {
				t.Fatalf("OrderSegments() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("OrderSegments() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("OrderSegments()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOrderSegments_Errors(t *testing.T) {
	tests := []struct {
		name      string
		in        []string
		wantIndex bool
	}{
		{"gap leaves index out of range", []string{"sweep_0001", "sweep_0003"}, true},
		{"duplicate index", []string{"sweep_0001", "sweep_01"}, true},
		{"zero index", []string{"sweep_0000"}, true},
		{"no suffix", []string{"sweep_"}, false},
		{"bare prefix", []string{"sweep"}, false},
		{"garbage suffix", []string{"sweep_abc"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OrderSegments(tt.in)
			if err == nil {
				t.Fatal("OrderSegments() should fail")
			}
			var indexErr *types.SegmentIndexError
			var schemaErr *types.SchemaError
			switch {
			case tt.wantIndex && !errors.As(err, &indexErr):
				t.Errorf("error = %v, want SegmentIndexError", err)
			case !tt.wantIndex && !errors.As(err, &schemaErr):
				t.Errorf("error = %v, want SchemaError", err)
			}
		})
	}
}
