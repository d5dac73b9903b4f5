package storage

import (
	"errors"
	"math"
	"testing"
)

// TestValidateWeight verifies rejection of non-positive and non-numeric
// weights, the one error class that surfaces to the end user.
func TestValidateWeight(t *testing.T) {
	if err := validateWeight(2.5); err != nil {
		t.Errorf("validateWeight(2.5): unexpected error %v", err)
	}
	for _, w := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := validateWeight(w)
		if err == nil {
			t.Errorf("validateWeight(%v): expected error", w)
			continue
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("validateWeight(%v): error %v does not wrap ErrInvalidInput", w, err)
		}
	}
}

// TestValidateUnit verifies only kg/lb spellings pass.
func TestValidateUnit(t *testing.T) {
	for _, u := range []string{"kg", "lb", "lbs"} {
		if err := validateUnit(u); err != nil {
			t.Errorf("validateUnit(%q): unexpected error %v", u, err)
		}
	}
	if err := validateUnit("stone"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("validateUnit(stone): got %v, want ErrInvalidInput", err)
	}
}

// TestValidateCount verifies nil (unlimited) and non-negative counts pass
// while negative counts are rejected.
func TestValidateCount(t *testing.T) {
	if err := validateCount(nil); err != nil {
		t.Errorf("validateCount(nil): unexpected error %v", err)
	}
	zero, neg := 0, -1
	if err := validateCount(&zero); err != nil {
		t.Errorf("validateCount(0): unexpected error %v", err)
	}
	if err := validateCount(&neg); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("validateCount(-1): got %v, want ErrInvalidInput", err)
	}
}
