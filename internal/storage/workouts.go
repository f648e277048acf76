// ABOUTME: WorkoutPlan CRUD operations for SQL storage.
// ABOUTME: Exercises are stored as a JSON column; saving replaces the plan for that date.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

const workoutColumns = `id, user_id, date, day_name, exercises, estimated_duration,
	completed, completed_at, ai_insight, generated_at`

// SaveWorkoutPlan stores a plan, replacing any existing plan for the same user and date.
func (d *DB) SaveWorkoutPlan(p *models.WorkoutPlan) error {
	exercises, err := marshalList(p.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("save workout plan: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM workout_plans WHERE user_id = ? AND date = ?`,
		p.UserID.String(), p.Date); err != nil {
		return fmt.Errorf("replace workout plan: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO workout_plans (`+workoutColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID.String(),
		p.UserID.String(),
		p.Date,
		p.DayName,
		exercises,
		p.EstimatedDuration,
		boolToInt(p.Completed),
		formatNullTime(p.CompletedAt),
		p.AIInsight,
		formatTime(p.GeneratedAt),
	)
	if err != nil {
		return fmt.Errorf("save workout plan: %w", err)
	}

	return tx.Commit()
}

// GetWorkoutPlan retrieves a plan by ID, scoped to its owner.
func (d *DB) GetWorkoutPlan(userID, id uuid.UUID) (*models.WorkoutPlan, error) {
	row := d.db.QueryRow(`SELECT `+workoutColumns+` FROM workout_plans WHERE id = ? AND user_id = ?`,
		id.String(), userID.String())
	return d.scanWorkoutPlan(row)
}

// GetWorkoutPlanByDate retrieves the plan for a calendar date.
func (d *DB) GetWorkoutPlanByDate(userID uuid.UUID, date string) (*models.WorkoutPlan, error) {
	row := d.db.QueryRow(`SELECT `+workoutColumns+` FROM workout_plans WHERE user_id = ? AND date = ?`,
		userID.String(), date)
	return d.scanWorkoutPlan(row)
}

// ListWorkoutPlans retrieves the most recent plans, sorted by date descending.
func (d *DB) ListWorkoutPlans(userID uuid.UUID, limit int) ([]*models.WorkoutPlan, error) {
	query := `SELECT ` + workoutColumns + ` FROM workout_plans WHERE user_id = ? ORDER BY date DESC, generated_at DESC`
	args := []any{userID.String()}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workout plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.WorkoutPlan
	for rows.Next() {
		p, err := d.scanWorkoutPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// UpdateWorkoutPlan persists completion state and logged actuals of an existing plan.
func (d *DB) UpdateWorkoutPlan(p *models.WorkoutPlan) error {
	exercises, err := marshalList(p.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	result, err := d.db.Exec(`
		UPDATE workout_plans
		SET day_name = ?, exercises = ?, estimated_duration = ?, completed = ?,
			completed_at = ?, ai_insight = ?
		WHERE id = ? AND user_id = ?
	`,
		p.DayName,
		exercises,
		p.EstimatedDuration,
		boolToInt(p.Completed),
		formatNullTime(p.CompletedAt),
		p.AIInsight,
		p.ID.String(),
		p.UserID.String(),
	)
	if err != nil {
		return fmt.Errorf("update workout plan: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update workout plan: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("workout plan %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

// scanWorkoutPlan scans a single row into a WorkoutPlan struct.
func (d *DB) scanWorkoutPlan(row rowScanner) (*models.WorkoutPlan, error) {
	var p models.WorkoutPlan
	var idStr, userIDStr, exercises, generatedAt string
	var completedAt, insight sql.NullString

	err := row.Scan(&idStr, &userIDStr, &p.Date, &p.DayName, &exercises, &p.EstimatedDuration,
		&p.Completed, &completedAt, &insight, &generatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("workout plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scan workout plan: %w", err)
	}

	p.ID, _ = uuid.Parse(idStr)
	p.UserID, _ = uuid.Parse(userIDStr)
	p.CompletedAt = parseNullTime(completedAt)
	p.AIInsight = insight.String
	p.GeneratedAt = parseTime(generatedAt)
	if err := json.Unmarshal([]byte(exercises), &p.Exercises); err != nil {
		return nil, fmt.Errorf("unmarshal exercises: %w", err)
	}

	return &p, nil
}

// marshalList encodes a slice as JSON, writing nil as an empty array.
func marshalList[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
