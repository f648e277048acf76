// ABOUTME: DailyCheckIn operations for SQL storage.
// ABOUTME: Check-ins are append-only; several may exist for one date.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

// CreateCheckIn stores a new check-in.
func (d *DB) CreateCheckIn(c *models.CheckIn) error {
	query := `
		INSERT INTO checkins (id, user_id, date, workout_completed, nutrition_status,
			actual_calories, weight, sleep_quality, soreness_level, energy_level, notes, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		c.ID.String(),
		c.UserID.String(),
		c.Date,
		c.WorkoutCompleted,
		c.NutritionStatus,
		c.ActualCalories,
		c.Weight,
		c.SleepQuality,
		c.SorenessLevel,
		c.EnergyLevel,
		c.Notes,
		formatTime(c.SubmittedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("check-in %s: %w", c.ID, ErrDuplicate)
		}
		return fmt.Errorf("create check-in: %w", err)
	}
	return nil
}

// ListCheckIns retrieves the most recent check-ins, sorted by date descending.
func (d *DB) ListCheckIns(userID uuid.UUID, limit int) ([]*models.CheckIn, error) {
	query := `
		SELECT id, user_id, date, workout_completed, nutrition_status, actual_calories, weight,
			sleep_quality, soreness_level, energy_level, notes, submitted_at
		FROM checkins
		WHERE user_id = ?
		ORDER BY date DESC, submitted_at DESC
	`
	args := []any{userID.String()}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	defer rows.Close()

	var checkIns []*models.CheckIn
	for rows.Next() {
		var c models.CheckIn
		var idStr, userIDStr, submittedAt string
		var workout, nutrition, soreness, notes sql.NullString
		var calories, weight sql.NullFloat64
		var sleep, energy sql.NullInt64

		err := rows.Scan(&idStr, &userIDStr, &c.Date, &workout, &nutrition, &calories, &weight,
			&sleep, &soreness, &energy, &notes, &submittedAt)
		if err != nil {
			return nil, fmt.Errorf("scan check-in: %w", err)
		}

		c.ID, _ = uuid.Parse(idStr)
		c.UserID, _ = uuid.Parse(userIDStr)
		c.WorkoutCompleted = workout.String
		c.NutritionStatus = nutrition.String
		c.SorenessLevel = soreness.String
		c.SleepQuality = int(sleep.Int64)
		c.EnergyLevel = int(energy.Int64)
		c.SubmittedAt = parseTime(submittedAt)
		if calories.Valid {
			c.ActualCalories = &calories.Float64
		}
		if weight.Valid {
			c.Weight = &weight.Float64
		}
		if notes.Valid {
			c.Notes = &notes.String
		}

		checkIns = append(checkIns, &c)
	}

	return checkIns, rows.Err()
}
