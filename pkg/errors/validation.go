package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxNodeIDLength bounds node and edge identifiers accepted from callers.
const MaxNodeIDLength = 256

// ValidateNodeID validates a node or edge identifier received from a caller.
//
// The rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - Maximum length of MaxNodeIDLength bytes
//   - No leading or trailing whitespace
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNode, "node id cannot be empty")
	}

	if len(id) > MaxNodeIDLength {
		return New(ErrCodeInvalidNode, "node id too long (max %d characters)", MaxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNode, "node id contains invalid control characters")
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidNode, "node id %q has surrounding whitespace", id)
	}

	return nil
}

// ValidateCoordinate rejects NaN and infinite coordinates.
// name identifies the field in the error message (e.g. "position.x").
func ValidateCoordinate(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidNode, "%s must be a finite number", name)
	}
	return nil
}

// ValidateDimension rejects negative, NaN and infinite measured sizes.
func ValidateDimension(name string, v float64) error {
	if err := ValidateCoordinate(name, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidNode, "%s cannot be negative", name)
	}
	return nil
}
