package utils

import (
	"errors"
	"testing"

	"github.com/hailam/fillgen/internal/ports"
	"github.com/hailam/fillgen/internal/sizespec"
)

func TestSpecSizeParser_Parse(t *testing.T) {
	var parser ports.SizeParser = NewSpecSizeParser()

	tests := []struct {
		input    string
		expected uint64
		wantErr  error
	}{
		{"500b", 500, nil},
		{"10k", 10 * 1024, nil},
		{"10 KB", 10 * 1024, nil},
		{"1.5 mb", 1536 * 1024, nil},
		{"1G", 1024 * 1024 * 1024, nil},
		{"", 0, sizespec.ErrMissingValue},
		{"10P", 0, sizespec.ErrInvalidMultiplier},
		{"1.0.1kb", 0, sizespec.ErrDoublePeriod},
	}

	for _, tc := range tests {
		t.Run("Input_"+tc.input, func(t *testing.T) {
			got, err := parser.Parse(tc.input)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("Parse(%q) error = %v, want %v", tc.input, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tc.input, err)
			}
			if got != tc.expected {
				t.Errorf("Parse(%q) = %d, want %d", tc.input, got, tc.expected)
			}
		})
	}
}
