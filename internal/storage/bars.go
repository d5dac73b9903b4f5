package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Standard bar weights in kilograms, used when no override is stored.
var defaultBarWeightsKg = map[string]float64{
	"barbell": 20,
	"ez":      7.5,
	"fixed":   20,
}

// FetchBarWeight returns the bar weight in kilograms for a bar type,
// preferring an exercise-specific override, then a bar-type row, then the
// built-in defaults.
func (db *DB) FetchBarWeight(ctx context.Context, exerciseID *uuid.UUID, barType string) (float64, error) {
	if exerciseID != nil {
		var weight float64
		err := db.Pool.QueryRow(ctx,
			`SELECT weight_kg FROM bar_weights WHERE exercise_id = $1 AND bar_type = $2`,
			exerciseID, barType).Scan(&weight)
		if err == nil {
			return weight, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("querying bar weight override: %w", err)
		}
	}

	var weight float64
	err := db.Pool.QueryRow(ctx,
		`SELECT weight_kg FROM bar_weights WHERE exercise_id IS NULL AND bar_type = $1`,
		barType).Scan(&weight)
	if err == nil {
		return weight, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("querying bar weight: %w", err)
	}

	if w, ok := defaultBarWeightsKg[barType]; ok {
		return w, nil
	}
	return defaultBarWeightsKg["barbell"], nil
}

// SetBarWeight stores a bar weight, optionally scoped to one exercise.
func (db *DB) SetBarWeight(ctx context.Context, exerciseID *uuid.UUID, barType string, weightKg float64) error {
	if err := validateWeight(weightKg); err != nil {
		return err
	}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO bar_weights (exercise_id, bar_type, weight_kg)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (exercise_id, bar_type) DO UPDATE SET weight_kg = $3`,
		exerciseID, barType, weightKg)
	if err != nil {
		return fmt.Errorf("setting bar weight: %w", err)
	}
	return nil
}
