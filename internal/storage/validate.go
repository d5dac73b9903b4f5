package storage

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput marks validation failures on inventory edits. This is the
// one error class that surfaces to the end user; handlers map it to a 400.
var ErrInvalidInput = errors.New("invalid input")

func validateWeight(weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: weight must be a number", ErrInvalidInput)
	}
	if weight <= 0 {
		return fmt.Errorf("%w: weight must be positive, got %v", ErrInvalidInput, weight)
	}
	return nil
}

func validateUnit(unit string) error {
	switch unit {
	case "kg", "lb", "lbs":
		return nil
	default:
		return fmt.Errorf("%w: unit must be kg or lb, got %q", ErrInvalidInput, unit)
	}
}

func validateCount(count *int) error {
	if count != nil && *count < 0 {
		return fmt.Errorf("%w: count must not be negative, got %d", ErrInvalidInput, *count)
	}
	return nil
}
