package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
)

// FetchPlateItems returns the plate sizes of a profile, largest first.
func (db *DB) FetchPlateItems(ctx context.Context, profileID uuid.UUID) ([]models.PlateItem, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT profile_id, weight, unit, count_per_side
		 FROM plate_items
		 WHERE profile_id = $1
		 ORDER BY weight DESC`,
		profileID)
	if err != nil {
		return nil, fmt.Errorf("querying plate items: %w", err)
	}
	defer rows.Close()

	var result []models.PlateItem
	for rows.Next() {
		var item models.PlateItem
		if err := rows.Scan(&item.ProfileID, &item.Weight, &item.Unit, &item.CountPerSide); err != nil {
			return nil, fmt.Errorf("scanning plate item: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// UpsertPlateItem adds or updates one plate size in a profile. Inventory
// edits are the one place validation errors surface to the user.
func (db *DB) UpsertPlateItem(ctx context.Context, item models.PlateItem) error {
	if err := validateWeight(item.Weight); err != nil {
		return err
	}
	if err := validateUnit(item.Unit); err != nil {
		return err
	}
	if err := validateCount(item.CountPerSide); err != nil {
		return err
	}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO plate_items (profile_id, weight, unit, count_per_side)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (profile_id, weight) DO UPDATE SET unit = $3, count_per_side = $4`,
		item.ProfileID, item.Weight, item.Unit, item.CountPerSide)
	if err != nil {
		return fmt.Errorf("upserting plate item: %w", err)
	}
	return nil
}

// DeletePlateItem removes one plate size from a profile.
func (db *DB) DeletePlateItem(ctx context.Context, profileID uuid.UUID, weight float64) error {
	_, err := db.Pool.Exec(ctx,
		`DELETE FROM plate_items WHERE profile_id = $1 AND weight = $2`,
		profileID, weight)
	if err != nil {
		return fmt.Errorf("deleting plate item: %w", err)
	}
	return nil
}
