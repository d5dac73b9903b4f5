// Package progression suggests the next session's target weight and reps
// from the previous working set using linear progressive overload.
package progression

import (
	"strings"
	"unicode"
)

// Feel is the subjective difficulty of the previous working set, derived
// from free-text notes or from an RPE value.
type Feel string

const (
	FeelEasy     Feel = "easy"
	FeelModerate Feel = "moderate"
	FeelHard     Feel = "hard"
	FeelVeryHard Feel = "very_hard"
	FeelUnknown  Feel = ""
)

// noteTokens maps sentiment tokens found in session notes to a feel. Word
// keys are matched against whole words of the lowercased note text ("took"
// must not fire "ok"); emoji are matched as substrings.
var noteTokens = map[string]Feel{
	"easy":    FeelEasy,
	"light":   FeelEasy,
	"smooth":  FeelEasy,
	"💪":       FeelEasy,
	"😀":       FeelEasy,
	"🙂":       FeelEasy,
	"ok":      FeelModerate,
	"fine":    FeelModerate,
	"solid":   FeelModerate,
	"😐":       FeelModerate,
	"hard":    FeelHard,
	"tough":   FeelHard,
	"heavy":   FeelHard,
	"😓":       FeelHard,
	"grind":   FeelVeryHard,
	"brutal":  FeelVeryHard,
	"failed":  FeelVeryHard,
	"failure": FeelVeryHard,
	"💀":       FeelVeryHard,
	"😵":       FeelVeryHard,
}

// tokenOrder fixes the scan order so that overlapping notes ("hard but
// smooth grind") resolve deterministically, harshest token first.
var tokenOrder = []string{
	"grind", "brutal", "failed", "failure", "💀", "😵",
	"hard", "tough", "heavy", "😓",
	"easy", "light", "smooth", "💪", "😀", "🙂",
	"ok", "fine", "solid", "😐",
}

// FeelFromNotes extracts a feel from free-text session notes. Returns
// FeelUnknown when no sentiment token is present.
func FeelFromNotes(notes string) Feel {
	lowered := strings.ToLower(notes)
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		words[w] = true
	}

	for _, token := range tokenOrder {
		if r := []rune(token); unicode.IsLetter(r[0]) {
			if words[token] {
				return noteTokens[token]
			}
		} else if strings.Contains(lowered, token) {
			return noteTokens[token]
		}
	}
	return FeelUnknown
}

// FeelFromRPE maps a 1-10 Rate of Perceived Exertion onto the feel scale.
// Out-of-range values return FeelUnknown.
func FeelFromRPE(rpe float64) Feel {
	switch {
	case rpe < 1 || rpe > 10:
		return FeelUnknown
	case rpe <= 6:
		return FeelEasy
	case rpe <= 7.5:
		return FeelModerate
	case rpe <= 9:
		return FeelHard
	default:
		return FeelVeryHard
	}
}

// DeriveFeel combines both sources. Notes take priority over RPE when they
// carry a sentiment token.
func DeriveFeel(notes string, rpe float64) Feel {
	if f := FeelFromNotes(notes); f != FeelUnknown {
		return f
	}
	return FeelFromRPE(rpe)
}
