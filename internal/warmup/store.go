package warmup

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// PlanStore persists warm-up plans and their latest feedback per exercise
// instance. Plans are mutated when the top weight changes or feedback is
// recorded, and retained indefinitely as exercise-instance state.
type PlanStore struct {
	db *sql.DB
}

// OpenPlanStore opens (or creates) the SQLite plan database at dir/warmup.db.
func OpenPlanStore(dir string) (*PlanStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "warmup.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening plan db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS warmup_plans (
		user_id     INTEGER NOT NULL,
		instance_id TEXT NOT NULL,
		plan        TEXT NOT NULL,
		feedback    TEXT,
		updated_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, instance_id)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating plan table: %w", err)
	}

	return &PlanStore{db: db}, nil
}

// SavePlan upserts the plan for an exercise instance, preserving any
// recorded feedback.
func (s *PlanStore) SavePlan(userID int64, instanceID string, plan *Plan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO warmup_plans (user_id, instance_id, plan, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, instance_id)
		 DO UPDATE SET plan = excluded.plan, updated_at = CURRENT_TIMESTAMP`,
		userID, instanceID, string(data),
	)
	return err
}

// GetPlan returns the stored plan for an exercise instance, or nil if the
// exercise has not been engaged yet.
func (s *PlanStore) GetPlan(userID int64, instanceID string) (*Plan, error) {
	var data string
	err := s.db.QueryRow(
		`SELECT plan FROM warmup_plans WHERE user_id = ? AND instance_id = ?`,
		userID, instanceID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var plan Plan
	if err := json.Unmarshal([]byte(data), &plan); err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}
	return &plan, nil
}

// SaveFeedback records the latest warm-up rating for an exercise instance.
// Most recent wins; there is at most one rating per instance.
func (s *PlanStore) SaveFeedback(userID int64, instanceID string, fb Feedback) error {
	res, err := s.db.Exec(
		`UPDATE warmup_plans SET feedback = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE user_id = ? AND instance_id = ?`,
		string(fb), userID, instanceID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no warmup plan for instance %q", instanceID)
	}
	return nil
}

// LatestFeedback returns the stored rating for an exercise instance, or ""
// if none was recorded.
func (s *PlanStore) LatestFeedback(userID int64, instanceID string) (Feedback, error) {
	var fb sql.NullString
	err := s.db.QueryRow(
		`SELECT feedback FROM warmup_plans WHERE user_id = ? AND instance_id = ?`,
		userID, instanceID,
	).Scan(&fb)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !fb.Valid {
		return "", nil
	}
	return Feedback(fb.String), nil
}

// Close closes the plan database.
func (s *PlanStore) Close() error {
	return s.db.Close()
}
