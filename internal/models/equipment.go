// Package models defines the row types shared between the storage layer and
// the resolution engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// PlateItem is one plate size in a plate profile. Count is per side of the
// bar; nil means unlimited supply.
type PlateItem struct {
	ProfileID    uuid.UUID `json:"profile_id"`
	Weight       float64   `json:"weight"`
	Unit         string    `json:"unit"`
	CountPerSide *int      `json:"count_per_side,omitempty"`
}

// DumbbellItem is one dumbbell value in a dumbbell profile. Weight is per
// hand, never summed across a pair.
type DumbbellItem struct {
	ProfileID uuid.UUID `json:"profile_id"`
	Weight    float64   `json:"weight"`
	Unit      string    `json:"unit"`
}

// StackStep is one pin position in a machine stack profile. Aux steps are
// small add-on weights combinable with any single pin position.
type StackStep struct {
	ProfileID  uuid.UUID `json:"profile_id"`
	StepWeight float64   `json:"step_weight"`
	Unit       string    `json:"unit"`
	IsAux      bool      `json:"is_aux"`
}

// BarWeight is the weight of a bar type, optionally overridden per exercise.
type BarWeight struct {
	BarType    string     `json:"bar_type"`
	ExerciseID *uuid.UUID `json:"exercise_id,omitempty"`
	WeightKg   float64    `json:"weight_kg"`
}

// EquipmentProfile groups inventory items under a named profile that users
// associate with a gym.
type EquipmentProfile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"` // plate | dumbbell | stack | bar
	GymID     *int64    `json:"gym_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileAssociation links a user (and optionally a gym) to the equipment
// profiles that apply to their sessions.
type ProfileAssociation struct {
	UserID            int64      `json:"user_id"`
	GymID             *int64     `json:"gym_id,omitempty"`
	Unit              string     `json:"unit"`
	BarProfileID      *uuid.UUID `json:"bar_profile_id,omitempty"`
	PlateProfileID    *uuid.UUID `json:"plate_profile_id,omitempty"`
	DumbbellProfileID *uuid.UUID `json:"dumbbell_profile_id,omitempty"`
	StackProfileID    *uuid.UUID `json:"stack_profile_id,omitempty"`
	MinIncrementKg    *float64   `json:"min_increment_kg,omitempty"`
	MinIncrementLb    *float64   `json:"min_increment_lb,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
