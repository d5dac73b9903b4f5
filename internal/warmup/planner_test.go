package warmup

import (
	"math"
	"testing"
)

// TestGenerateDefaultRamp verifies the default three-step ramp: 40/60/80
// percent, descending reps, escalating rest, strictly ascending.
func TestGenerateDefaultRamp(t *testing.T) {
	plan := NewPlanner().Generate(100)

	if plan.Strategy != "ramped" {
		t.Errorf("strategy = %q, want ramped", plan.Strategy)
	}
	if plan.BaseWeight != 100 {
		t.Errorf("base weight = %v, want 100", plan.BaseWeight)
	}
	if len(plan.Steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(plan.Steps))
	}

	wantPct := []float64{40, 60, 80}
	wantReps := []int{12, 8, 5}
	wantRest := []int{45, 60, 90}
	for i, s := range plan.Steps {
		if s.Pct != wantPct[i] {
			t.Errorf("step %d pct = %v, want %v", i, s.Pct, wantPct[i])
		}
		if s.Reps != wantReps[i] {
			t.Errorf("step %d reps = %d, want %d", i, s.Reps, wantReps[i])
		}
		if s.RestSec != wantRest[i] {
			t.Errorf("step %d rest = %d, want %d", i, s.RestSec, wantRest[i])
		}
		if s.ID.String() == "00000000-0000-0000-0000-000000000000" {
			t.Errorf("step %d has zero ID", i)
		}
	}
	if err := plan.Validate(); err != nil {
		t.Errorf("generated plan invalid: %v", err)
	}
}

// TestStepWeightRederived verifies display weights come from the
// percentage and the current top weight, rounded to 0.25, so a changed top
// weight flows through without regenerating the plan.
func TestStepWeightRederived(t *testing.T) {
	step := Step{Pct: 40, TargetWeight: 40} // stored from a 100 kg top

	// Top weight moved to 102.5: 41.0 exactly.
	if got := StepWeight(step, 102.5); got != 41 {
		t.Errorf("StepWeight(40%%, 102.5) = %v, want 41", got)
	}
	// 103 * 0.4 = 41.2 → rounds to 41.25.
	if got := StepWeight(step, 103); math.Abs(got-41.25) > 1e-9 {
		t.Errorf("StepWeight(40%%, 103) = %v, want 41.25", got)
	}
	// No percentage: stored target weight is the fallback.
	if got := StepWeight(Step{TargetWeight: 37.5}, 103); got != 37.5 {
		t.Errorf("StepWeight(no pct) = %v, want stored 37.5", got)
	}
}

// TestApplyFeedbackShifts verifies the adjustment rule: too_much shifts
// every step down 5 points, not_enough up 5, excellent is a no-op.
func TestApplyFeedbackShifts(t *testing.T) {
	p := NewPlanner()
	plan := p.Generate(100)

	down := p.ApplyFeedback(plan, TooMuch)
	for i, want := range []float64{35, 55, 75} {
		if down.Steps[i].Pct != want {
			t.Errorf("too_much step %d pct = %v, want %v", i, down.Steps[i].Pct, want)
		}
	}
	if down.UpdatedFrom != "feedback:too_much" {
		t.Errorf("updated_from = %q, want feedback:too_much", down.UpdatedFrom)
	}

	up := p.ApplyFeedback(plan, NotEnough)
	for i, want := range []float64{45, 65, 85} {
		if up.Steps[i].Pct != want {
			t.Errorf("not_enough step %d pct = %v, want %v", i, up.Steps[i].Pct, want)
		}
	}

	same := p.ApplyFeedback(plan, Excellent)
	for i := range plan.Steps {
		if same.Steps[i].Pct != plan.Steps[i].Pct {
			t.Errorf("excellent changed step %d pct to %v", i, same.Steps[i].Pct)
		}
	}

	// The input plan is never mutated.
	if plan.Steps[0].Pct != 40 {
		t.Errorf("original plan mutated: first pct = %v", plan.Steps[0].Pct)
	}
}

// TestApplyFeedbackClampsAndStaysAscending verifies repeated shifts clamp
// to the percentage bounds while keeping the ramp strictly ascending.
func TestApplyFeedbackClampsAndStaysAscending(t *testing.T) {
	p := NewPlanner()

	plan := p.Generate(100)
	for i := 0; i < 10; i++ {
		plan = p.ApplyFeedback(plan, TooMuch)
		if err := plan.Validate(); err != nil {
			t.Fatalf("after %d too_much shifts: %v", i+1, err)
		}
	}
	if plan.Steps[0].Pct < MinPct {
		t.Errorf("first pct = %v, below MinPct %v", plan.Steps[0].Pct, MinPct)
	}

	plan = p.Generate(100)
	for i := 0; i < 10; i++ {
		plan = p.ApplyFeedback(plan, NotEnough)
		if err := plan.Validate(); err != nil {
			t.Fatalf("after %d not_enough shifts: %v", i+1, err)
		}
	}
	if last := plan.Steps[len(plan.Steps)-1].Pct; last > MaxPct {
		t.Errorf("last pct = %v, above MaxPct %v", last, MaxPct)
	}
}

// TestRebase verifies re-anchoring to a new top weight keeps percentages
// and re-derives stored target weights.
func TestRebase(t *testing.T) {
	p := NewPlanner()
	plan := p.Generate(100)

	rebased := p.Rebase(plan, 110)

	if rebased.BaseWeight != 110 {
		t.Errorf("base weight = %v, want 110", rebased.BaseWeight)
	}
	if rebased.Steps[0].Pct != 40 {
		t.Errorf("pct changed on rebase: %v", rebased.Steps[0].Pct)
	}
	if rebased.Steps[0].TargetWeight != 44 {
		t.Errorf("target weight = %v, want 44 (40%% of 110)", rebased.Steps[0].TargetWeight)
	}
	if plan.Steps[0].TargetWeight != 40 {
		t.Errorf("original plan mutated: %v", plan.Steps[0].TargetWeight)
	}
}

// TestParseFeedback verifies wire parsing of the three ratings.
func TestParseFeedback(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  Feedback
		ok    bool
	}{
		{"not_enough", NotEnough, true},
		{"EXCELLENT", Excellent, true},
		{" too_much ", TooMuch, true},
		{"meh", "", false},
	} {
		got, err := ParseFeedback(tc.input)
		if tc.ok != (err == nil) {
			t.Errorf("ParseFeedback(%q): err = %v, want ok=%v", tc.input, err, tc.ok)
		}
		if got != tc.want {
			t.Errorf("ParseFeedback(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
