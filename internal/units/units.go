// Package units handles weight unit conversion. All engine computation is
// done in kilograms; values are converted at the API boundary.
package units

import (
	"fmt"
	"math"
	"strings"
)

// KgPerLb is the exact international avoirdupois pound.
const KgPerLb = 0.45359237

// Unit is a weight unit accepted at the API boundary.
type Unit string

const (
	Kg Unit = "kg"
	Lb Unit = "lb"
)

// Parse normalizes a wire string ("kg", "KG", "lbs", "lb") to a Unit.
func Parse(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg", "kgs":
		return Kg, nil
	case "lb", "lbs":
		return Lb, nil
	default:
		return "", fmt.Errorf("unknown unit %q", s)
	}
}

// ToKg converts a value in the given unit to kilograms.
func ToKg(value float64, unit Unit) float64 {
	if unit == Lb {
		return value * KgPerLb
	}
	return value
}

// FromKg converts a value in kilograms to the given unit.
func FromKg(valueKg float64, unit Unit) float64 {
	if unit == Lb {
		return valueKg / KgPerLb
	}
	return valueKg
}

// RoundTo rounds v to the nearest multiple of step. A step of zero or less
// returns v unchanged.
func RoundTo(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}
