// Package warmup derives ramped warm-up sequences from a top working weight
// and adjusts them from user feedback.
package warmup

import (
	"fmt"
	"strings"
	"time"

	"github.com/claude/liftplan/internal/units"
	"github.com/google/uuid"
)

// Feedback is the user's rating of a completed warm-up. The most recent
// rating per exercise instance wins.
type Feedback string

const (
	NotEnough Feedback = "not_enough"
	Excellent Feedback = "excellent"
	TooMuch   Feedback = "too_much"
)

// ParseFeedback normalizes a wire string to a Feedback value.
func ParseFeedback(s string) (Feedback, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "not_enough":
		return NotEnough, nil
	case "excellent":
		return Excellent, nil
	case "too_much":
		return TooMuch, nil
	default:
		return "", fmt.Errorf("unknown warmup feedback %q", s)
	}
}

// Adjustment constants. A feedback rating shifts every step by
// ShiftPoints percentage points; shifts clamp to [MinPct, MaxPct] and
// steps are re-spaced by MinGapPct so the ramp stays strictly ascending.
const (
	ShiftPoints = 5.0
	MinPct      = 20.0
	MaxPct      = 90.0
	MinGapPct   = 5.0

	// DisplayStepKg is the granularity warm-up weights are rounded to when
	// derived from a percentage at display time.
	DisplayStepKg = 0.25
)

// Step is one warm-up set. Pct is authoritative: the absolute weight is
// re-derived from it whenever the top weight is known, so a plan stays
// correct when the working weight changes between generation and display.
// TargetWeight is only a fallback for steps without a percentage.
type Step struct {
	ID           uuid.UUID `json:"id"`
	Pct          float64   `json:"pct"`
	Reps         int       `json:"reps"`
	RestSec      int       `json:"rest_sec"`
	TargetWeight float64   `json:"target_weight"`
}

// Plan is a warm-up ramp for one exercise instance. Steps are strictly
// ascending in Pct.
type Plan struct {
	Strategy    string    `json:"strategy"`
	BaseWeight  float64   `json:"base_weight"`
	Steps       []Step    `json:"steps"`
	UpdatedFrom string    `json:"updated_from"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Planner generates and revises warm-up plans.
type Planner struct {
	now func() time.Time
}

// NewPlanner returns a Planner using the wall clock.
func NewPlanner() *Planner {
	return &Planner{now: time.Now}
}

// Generate builds the default ramped plan toward topWeightKg: three steps
// at 40/60/80 percent with descending reps and escalating rest.
func (p *Planner) Generate(topWeightKg float64) *Plan {
	plan := &Plan{
		Strategy:    "ramped",
		BaseWeight:  topWeightKg,
		UpdatedFrom: "generate",
		UpdatedAt:   p.now(),
	}
	defaults := []struct {
		pct     float64
		reps    int
		restSec int
	}{
		{40, 12, 45},
		{60, 8, 60},
		{80, 5, 90},
	}
	for _, d := range defaults {
		plan.Steps = append(plan.Steps, Step{
			ID:           uuid.New(),
			Pct:          d.pct,
			Reps:         d.reps,
			RestSec:      d.restSec,
			TargetWeight: StepWeight(Step{Pct: d.pct}, topWeightKg),
		})
	}
	return plan
}

// ApplyFeedback returns a revised copy of plan: too_much shifts every step
// down ShiftPoints, not_enough shifts up, excellent leaves the ramp as is.
// The revised ramp stays strictly ascending within [MinPct, MaxPct].
func (p *Planner) ApplyFeedback(plan *Plan, fb Feedback) *Plan {
	revised := *plan
	revised.Steps = make([]Step, len(plan.Steps))
	copy(revised.Steps, plan.Steps)
	revised.UpdatedFrom = "feedback:" + string(fb)
	revised.UpdatedAt = p.now()

	var delta float64
	switch fb {
	case TooMuch:
		delta = -ShiftPoints
	case NotEnough:
		delta = ShiftPoints
	default:
		return &revised
	}

	for i := range revised.Steps {
		pct := revised.Steps[i].Pct + delta
		if pct < MinPct {
			pct = MinPct
		}
		if pct > MaxPct {
			pct = MaxPct
		}
		revised.Steps[i].Pct = pct
	}

	// Clamping can collapse neighboring steps; re-space forward against the
	// lower bound, then backward against the upper.
	for i := 1; i < len(revised.Steps); i++ {
		if revised.Steps[i].Pct <= revised.Steps[i-1].Pct {
			revised.Steps[i].Pct = revised.Steps[i-1].Pct + MinGapPct
		}
	}
	for i := len(revised.Steps) - 1; i >= 0; i-- {
		if revised.Steps[i].Pct > MaxPct {
			revised.Steps[i].Pct = MaxPct
		}
		if i+1 < len(revised.Steps) && revised.Steps[i].Pct >= revised.Steps[i+1].Pct {
			revised.Steps[i].Pct = revised.Steps[i+1].Pct - MinGapPct
		}
	}

	for i := range revised.Steps {
		revised.Steps[i].TargetWeight = StepWeight(Step{Pct: revised.Steps[i].Pct}, revised.BaseWeight)
	}
	return &revised
}

// Rebase returns a copy of plan re-anchored to a new top working weight.
// Percentages carry over unchanged; stored target weights are re-derived.
func (p *Planner) Rebase(plan *Plan, topWeightKg float64) *Plan {
	revised := *plan
	revised.Steps = make([]Step, len(plan.Steps))
	copy(revised.Steps, plan.Steps)
	revised.BaseWeight = topWeightKg
	revised.UpdatedFrom = "rebase"
	revised.UpdatedAt = p.now()
	for i := range revised.Steps {
		revised.Steps[i].TargetWeight = StepWeight(revised.Steps[i], topWeightKg)
	}
	return &revised
}

// StepWeight derives a step's absolute weight at display time: the
// percentage of the top weight rounded to DisplayStepKg. A step without a
// percentage falls back to its stored target weight.
func StepWeight(s Step, topWeightKg float64) float64 {
	if s.Pct <= 0 {
		return s.TargetWeight
	}
	return units.RoundTo(topWeightKg*s.Pct/100, DisplayStepKg)
}

// Validate checks the strict-ascent invariant.
func (plan *Plan) Validate() error {
	for i := 1; i < len(plan.Steps); i++ {
		if plan.Steps[i].Pct <= plan.Steps[i-1].Pct {
			return fmt.Errorf("warmup steps not strictly ascending: step %d (%.1f%%) after %.1f%%",
				i, plan.Steps[i].Pct, plan.Steps[i-1].Pct)
		}
	}
	return nil
}
