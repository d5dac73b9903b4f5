package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
)

// FetchDumbbells returns the dumbbell values of a profile, ascending.
func (db *DB) FetchDumbbells(ctx context.Context, profileID uuid.UUID) ([]models.DumbbellItem, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT profile_id, weight, unit
		 FROM dumbbell_items
		 WHERE profile_id = $1
		 ORDER BY weight ASC`,
		profileID)
	if err != nil {
		return nil, fmt.Errorf("querying dumbbells: %w", err)
	}
	defer rows.Close()

	var result []models.DumbbellItem
	for rows.Next() {
		var item models.DumbbellItem
		if err := rows.Scan(&item.ProfileID, &item.Weight, &item.Unit); err != nil {
			return nil, fmt.Errorf("scanning dumbbell: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// UpsertDumbbell adds one dumbbell value to a profile.
func (db *DB) UpsertDumbbell(ctx context.Context, item models.DumbbellItem) error {
	if err := validateWeight(item.Weight); err != nil {
		return err
	}
	if err := validateUnit(item.Unit); err != nil {
		return err
	}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO dumbbell_items (profile_id, weight, unit)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (profile_id, weight) DO UPDATE SET unit = $3`,
		item.ProfileID, item.Weight, item.Unit)
	if err != nil {
		return fmt.Errorf("upserting dumbbell: %w", err)
	}
	return nil
}

// DeleteDumbbell removes one dumbbell value from a profile.
func (db *DB) DeleteDumbbell(ctx context.Context, profileID uuid.UUID, weight float64) error {
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM dumbbell_items WHERE profile_id = $1 AND weight = $2`,
		profileID, weight)
	if err != nil {
		return fmt.Errorf("deleting dumbbell: %w", err)
	}
	return nil
}
