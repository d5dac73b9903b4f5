package progression

// Defaults used when the caller supplies no template values.
const (
	DefaultStepKg     = 2.5
	DefaultTargetReps = 8
)

// Input describes the previous working set and the template the exercise
// is programmed against.
type Input struct {
	LastWeightKg float64 `json:"last_weight_kg"`
	LastReps     int     `json:"last_reps"`
	// Notes and RPE feed feel derivation; an explicit Feel wins over both.
	Notes string  `json:"notes,omitempty"`
	RPE   float64 `json:"rpe,omitempty"`
	Feel  Feel    `json:"feel,omitempty"`

	TemplateTargetReps     int     `json:"template_target_reps,omitempty"`
	TemplateTargetWeightKg float64 `json:"template_target_weight_kg,omitempty"`
	StepKg                 float64 `json:"step_kg,omitempty"`
}

// Target is the suggested weight and reps for the next session.
type Target struct {
	WeightKg float64 `json:"weight_kg"`
	Reps     int     `json:"reps"`
	Feel     Feel    `json:"feel"`
}

// Engine applies linear progressive overload: add a small fixed increment
// when the previous set met its rep target without excessive strain, back
// off when it was a grind, otherwise hold and close the rep gap.
type Engine struct{}

// NewEngine returns a progression engine.
func NewEngine() *Engine {
	return &Engine{}
}

// SuggestTarget computes the next target. It is a pure function of its
// input: identical inputs always give identical suggestions.
func (e *Engine) SuggestTarget(in Input) Target {
	step := in.StepKg
	if step <= 0 {
		step = DefaultStepKg
	}
	targetReps := in.TemplateTargetReps
	if targetReps <= 0 {
		targetReps = DefaultTargetReps
	}

	feel := in.Feel
	if feel == FeelUnknown {
		feel = DeriveFeel(in.Notes, in.RPE)
	}

	// No history: start from the template weight.
	if in.LastWeightKg <= 0 {
		return Target{WeightKg: in.TemplateTargetWeightKg, Reps: targetReps, Feel: feel}
	}

	metReps := in.LastReps >= targetReps

	switch {
	case feel == FeelVeryHard:
		// Back off one step regardless of reps.
		w := in.LastWeightKg - step
		if w < 0 {
			w = 0
		}
		return Target{WeightKg: w, Reps: targetReps, Feel: feel}
	case metReps && feel != FeelHard:
		return Target{WeightKg: in.LastWeightKg + step, Reps: targetReps, Feel: feel}
	default:
		// Reps met but hard, or reps short: hold the weight and work on
		// closing the rep gap.
		return Target{WeightKg: in.LastWeightKg, Reps: targetReps, Feel: feel}
	}
}
