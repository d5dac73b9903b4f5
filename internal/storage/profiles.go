package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftplan/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateProfile creates a named equipment profile of the given kind.
func (db *DB) CreateProfile(ctx context.Context, name, kind string, gymID *int64) (*models.EquipmentProfile, error) {
	switch kind {
	case "plate", "dumbbell", "stack", "bar":
	default:
		return nil, fmt.Errorf("%w: unknown profile kind %q", ErrInvalidInput, kind)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: profile name is required", ErrInvalidInput)
	}

	profile := &models.EquipmentProfile{ID: uuid.New(), Name: name, Kind: kind, GymID: gymID}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO equipment_profiles (id, name, kind, gym_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		profile.ID, profile.Name, profile.Kind, profile.GymID).Scan(&profile.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	return profile, nil
}

// ListProfiles returns all equipment profiles, optionally filtered by kind.
func (db *DB) ListProfiles(ctx context.Context, kind string) ([]models.EquipmentProfile, error) {
	query := `SELECT id, name, kind, gym_id, created_at FROM equipment_profiles`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var result []models.EquipmentProfile
	for rows.Next() {
		var p models.EquipmentProfile
		if err := rows.Scan(&p.ID, &p.Name, &p.Kind, &p.GymID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// GetProfileAssociation returns the equipment-profile association for a
// user, or nil when none exists.
func (db *DB) GetProfileAssociation(ctx context.Context, userID int64) (*models.ProfileAssociation, error) {
	var a models.ProfileAssociation
	err := db.Pool.QueryRow(ctx,
		`SELECT user_id, gym_id, unit, bar_profile_id, plate_profile_id,
		        dumbbell_profile_id, stack_profile_id,
		        min_increment_kg, min_increment_lb, updated_at
		 FROM profile_associations
		 WHERE user_id = $1`,
		userID).Scan(&a.UserID, &a.GymID, &a.Unit, &a.BarProfileID, &a.PlateProfileID,
		&a.DumbbellProfileID, &a.StackProfileID, &a.MinIncrementKg, &a.MinIncrementLb, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile association: %w", err)
	}
	return &a, nil
}

// UpsertProfileAssociation stores which profiles and unit apply to a user.
// Callers must invalidate the user's loading-context cache entry afterward.
func (db *DB) UpsertProfileAssociation(ctx context.Context, a models.ProfileAssociation) error {
	if err := validateUnit(a.Unit); err != nil {
		return err
	}
	if a.MinIncrementKg != nil {
		if err := validateWeight(*a.MinIncrementKg); err != nil {
			return err
		}
	}
	if a.MinIncrementLb != nil {
		if err := validateWeight(*a.MinIncrementLb); err != nil {
			return err
		}
	}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO profile_associations
		   (user_id, gym_id, unit, bar_profile_id, plate_profile_id,
		    dumbbell_profile_id, stack_profile_id, min_increment_kg, min_increment_lb, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET
		   gym_id = $2, unit = $3, bar_profile_id = $4, plate_profile_id = $5,
		   dumbbell_profile_id = $6, stack_profile_id = $7,
		   min_increment_kg = $8, min_increment_lb = $9, updated_at = NOW()`,
		a.UserID, a.GymID, a.Unit, a.BarProfileID, a.PlateProfileID,
		a.DumbbellProfileID, a.StackProfileID, a.MinIncrementKg, a.MinIncrementLb)
	if err != nil {
		return fmt.Errorf("upserting profile association: %w", err)
	}
	return nil
}
