package errors

import (
	"math"
	"unicode"
)

// maxNodeIDLength bounds node identifiers accepted from graph files and requests.
const maxNodeIDLength = 256

// ValidateNodeID validates a node identifier.
//
// The rules are intentionally conservative:
//   - No empty IDs
//   - No control characters (IDs end up in SVG attributes and DOT source)
//   - Maximum length of 256 bytes
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidGraph, "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "node id %q contains control characters", id)
		}
	}

	return nil
}

// ValidateDimensions validates the frame size and margin of a drawing.
//
// The layout core accepts any numbers; this check exists for the CLI and API,
// where a negative or non-finite frame is always a user mistake.
func ValidateDimensions(width, height, margin float64) error {
	for _, v := range []struct {
		name  string
		value float64
	}{{"width", width}, {"height", height}, {"margin", margin}} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return New(ErrCodeInvalidInput, "%s must be a finite number", v.name)
		}
		if v.value < 0 {
			return New(ErrCodeInvalidInput, "%s cannot be negative (got %g)", v.name, v.value)
		}
	}

	if 2*margin >= width || 2*margin >= height {
		return New(ErrCodeInvalidInput, "margin %g leaves no drawing area in a %gx%g frame", margin, width, height)
	}

	return nil
}
