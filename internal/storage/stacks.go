package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
)

// FetchStackSteps returns the pin positions and aux add-on weights of a
// stack profile, ascending.
func (db *DB) FetchStackSteps(ctx context.Context, profileID uuid.UUID) ([]models.StackStep, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT profile_id, step_weight, unit, is_aux
		 FROM stack_steps
		 WHERE profile_id = $1
		 ORDER BY step_weight ASC`,
		profileID)
	if err != nil {
		return nil, fmt.Errorf("querying stack steps: %w", err)
	}
	defer rows.Close()

	var result []models.StackStep
	for rows.Next() {
		var step models.StackStep
		if err := rows.Scan(&step.ProfileID, &step.StepWeight, &step.Unit, &step.IsAux); err != nil {
			return nil, fmt.Errorf("scanning stack step: %w", err)
		}
		result = append(result, step)
	}
	return result, rows.Err()
}

// UpsertStackStep adds one pin position or aux weight to a stack profile.
func (db *DB) UpsertStackStep(ctx context.Context, step models.StackStep) error {
	if err := validateWeight(step.StepWeight); err != nil {
		return err
	}
	if err := validateUnit(step.Unit); err != nil {
		return err
	}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO stack_steps (profile_id, step_weight, unit, is_aux)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (profile_id, step_weight, is_aux) DO UPDATE SET unit = $3`,
		step.ProfileID, step.StepWeight, step.Unit, step.IsAux)
	if err != nil {
		return fmt.Errorf("upserting stack step: %w", err)
	}
	return nil
}

// DeleteStackStep removes one pin position or aux weight from a profile.
func (db *DB) DeleteStackStep(ctx context.Context, profileID uuid.UUID, weight float64, isAux bool) error {
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM stack_steps WHERE profile_id = $1 AND step_weight = $2 AND is_aux = $3`,
		profileID, weight, isAux)
	if err != nil {
		return fmt.Errorf("deleting stack step: %w", err)
	}
	return nil
}
