package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "a", false},
		{"with dash", "lib-core", false},
		{"with spaces", "node one", false},
		{"unicode", "nœud", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 300), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidGraph) {
				t.Errorf("ValidateNodeID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidGraph)
			}
		})
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name                  string
		width, height, margin float64
		wantErr               bool
	}{
		{"default frame", 800, 600, 40, false},
		{"no margin", 100, 100, 0, false},

		{"negative width", -1, 600, 0, true},
		{"negative margin", 800, 600, -5, true},
		{"NaN height", 800, math.NaN(), 0, true},
		{"infinite width", math.Inf(1), 600, 0, true},
		{"margin eats frame", 100, 100, 50, true},
		{"zero frame", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.width, tt.height, tt.margin)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%v, %v, %v) error = %v, wantErr %v", tt.width, tt.height, tt.margin, err, tt.wantErr)
			}
		})
	}
}
