package metadata

import (
	"errors"
	"testing"

	"github.com/simonhull/wavesurfer/internal/types"
)

func TestFieldName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain name", "header", "header", false},
		{"segment name", "sweep_0001", "sweep_0001", false},
		{"integer", "5", "n5", false},
		{"zero padded integer", "0012", "n0012", false},
		{"negative integer", "-3", "n-3", false},
		{"integral float", "4.0", "n4.0", false},
		{"fractional", "1.5", "", true},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FieldName(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FieldName(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				var schemaErr *types.SchemaError
				if !errors.As(err, &schemaErr) {
					t.Fatalf("FieldName(%q) error type = %T, want *types.SchemaError", tt.in, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("FieldName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
