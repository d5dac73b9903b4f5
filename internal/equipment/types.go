// Package equipment implements load resolution: snapping a requested
// training weight to the closest weight that is physically loadable with
// the plates, dumbbells, or machine stack a user actually has.
package equipment

import (
	"fmt"
	"strings"

	"github.com/claude/liftplan/internal/units"
	"github.com/google/uuid"
)

// LoadType is the physical loading mechanism of an exercise.
type LoadType string

const (
	// DualLoad is a barbell loaded symmetrically with plates per side.
	DualLoad LoadType = "dual_load"
	// SingleLoad is a discrete pick, one dumbbell per hand.
	SingleLoad LoadType = "single_load"
	// Stack is a pin-selected machine weight stack.
	Stack LoadType = "stack"
)

// ParseLoadType normalizes a wire string to a LoadType.
func ParseLoadType(s string) (LoadType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dual_load", "barbell":
		return DualLoad, nil
	case "single_load", "dumbbell":
		return SingleLoad, nil
	case "stack", "machine":
		return Stack, nil
	default:
		return "", fmt.Errorf("unknown load type %q", s)
	}
}

// Inventory is the concrete equipment available for one resolution, already
// canonicalized to kilograms.
type Inventory struct {
	// Barbell
	BarKg         float64
	PlateSizesKg  []float64
	CountsPerSide []int // parallel to PlateSizesKg; missing entries mean unlimited

	// Dumbbell
	DumbbellsKg []float64

	// Stack
	StepsKg []float64
	AuxKg   []float64
}

// ResolvedWeight is the outcome of snapping a target to the inventory,
// expressed in the caller's unit.
type ResolvedWeight struct {
	Weight       float64    `json:"weight"`
	Unit         units.Unit `json:"unit"`
	Achievable   bool       `json:"achievable"`
	Breakdown    *Breakdown `json:"breakdown,omitempty"`
	MinIncrement float64    `json:"min_increment"`
}

// Breakdown explains how a dual-load weight is assembled.
type Breakdown struct {
	BarKg      float64   `json:"bar_kg"`
	PerSideKg  []float64 `json:"per_side_kg"`
	ResidualKg float64   `json:"residual_kg"`
}

// Resolution wraps a ResolvedWeight with degradation state so callers can
// tell a fully resolved weight from a best-effort fallback.
type Resolution struct {
	ResolvedWeight
	Degraded bool   `json:"degraded,omitempty"`
	Reason   string `json:"degraded_reason,omitempty"`
}

// Degradation reasons.
const (
	ReasonMissingInventory  = "missing_inventory"
	ReasonResolutionFailure = "resolution_failure"
)

// LoadingContext is the per-user equipment context that gates every
// resolution: which profiles apply and what increments drive the UI.
type LoadingContext struct {
	Unit              units.Unit `json:"unit"`
	BarProfileID      *uuid.UUID `json:"bar_profile_id,omitempty"`
	PlateProfileID    *uuid.UUID `json:"plate_profile_id,omitempty"`
	DumbbellProfileID *uuid.UUID `json:"dumbbell_profile_id,omitempty"`
	StackProfileID    *uuid.UUID `json:"stack_profile_id,omitempty"`
	MinIncKg          float64    `json:"min_inc_kg"`
	MinIncLb          float64    `json:"min_inc_lb"`
	GymID             *int64     `json:"gym_id,omitempty"`
}

// DefaultContext is the safe fallback when a user has no equipment profiles
// or the lookup fails. Resolution must never be blocked by configuration.
func DefaultContext() LoadingContext {
	return LoadingContext{
		Unit:     units.Kg,
		MinIncKg: 1.25,
		MinIncLb: 2.5,
	}
}
