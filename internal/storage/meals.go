// ABOUTME: MealPlan CRUD operations for SQL storage.
// ABOUTME: Mirrors the workout plan layout: meals JSON column, one plan per user and date.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

const mealColumns = `id, user_id, date, meals, total_calories, total_protein, total_carbs,
	total_fats, logged, logged_at, generated_at`

// SaveMealPlan stores a meal plan, replacing any existing plan for the same user and date.
func (d *DB) SaveMealPlan(p *models.MealPlan) error {
	meals, err := marshalList(p.Meals)
	if err != nil {
		return fmt.Errorf("marshal meals: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("save meal plan: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM meal_plans WHERE user_id = ? AND date = ?`,
		p.UserID.String(), p.Date); err != nil {
		return fmt.Errorf("replace meal plan: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO meal_plans (`+mealColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID.String(),
		p.UserID.String(),
		p.Date,
		meals,
		p.TotalCalories,
		p.TotalProtein,
		p.TotalCarbs,
		p.TotalFats,
		boolToInt(p.Logged),
		formatNullTime(p.LoggedAt),
		formatTime(p.GeneratedAt),
	)
	if err != nil {
		return fmt.Errorf("save meal plan: %w", err)
	}

	return tx.Commit()
}

// GetMealPlan retrieves a meal plan by ID, scoped to its owner.
func (d *DB) GetMealPlan(userID, id uuid.UUID) (*models.MealPlan, error) {
	row := d.db.QueryRow(`SELECT `+mealColumns+` FROM meal_plans WHERE id = ? AND user_id = ?`,
		id.String(), userID.String())
	return d.scanMealPlan(row)
}

// GetMealPlanByDate retrieves the meal plan for a calendar date.
func (d *DB) GetMealPlanByDate(userID uuid.UUID, date string) (*models.MealPlan, error) {
	row := d.db.QueryRow(`SELECT `+mealColumns+` FROM meal_plans WHERE user_id = ? AND date = ?`,
		userID.String(), date)
	return d.scanMealPlan(row)
}

// ListMealPlans retrieves the most recent meal plans, sorted by date descending.
func (d *DB) ListMealPlans(userID uuid.UUID, limit int) ([]*models.MealPlan, error) {
	query := `SELECT ` + mealColumns + ` FROM meal_plans WHERE user_id = ? ORDER BY date DESC, generated_at DESC`
	args := []any{userID.String()}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meal plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.MealPlan
	for rows.Next() {
		p, err := d.scanMealPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// UpdateMealPlan persists the logged state and meals of an existing plan.
func (d *DB) UpdateMealPlan(p *models.MealPlan) error {
	meals, err := marshalList(p.Meals)
	if err != nil {
		return fmt.Errorf("marshal meals: %w", err)
	}

	result, err := d.db.Exec(`
		UPDATE meal_plans
		SET meals = ?, total_calories = ?, total_protein = ?, total_carbs = ?, total_fats = ?,
			logged = ?, logged_at = ?
		WHERE id = ? AND user_id = ?
	`,
		meals,
		p.TotalCalories,
		p.TotalProtein,
		p.TotalCarbs,
		p.TotalFats,
		boolToInt(p.Logged),
		formatNullTime(p.LoggedAt),
		p.ID.String(),
		p.UserID.String(),
	)
	if err != nil {
		return fmt.Errorf("update meal plan: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update meal plan: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("meal plan %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

// scanMealPlan scans a single row into a MealPlan struct.
func (d *DB) scanMealPlan(row rowScanner) (*models.MealPlan, error) {
	var p models.MealPlan
	var idStr, userIDStr, meals, generatedAt string
	var loggedAt sql.NullString

	err := row.Scan(&idStr, &userIDStr, &p.Date, &meals, &p.TotalCalories, &p.TotalProtein,
		&p.TotalCarbs, &p.TotalFats, &p.Logged, &loggedAt, &generatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("meal plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scan meal plan: %w", err)
	}

	p.ID, _ = uuid.Parse(idStr)
	p.UserID, _ = uuid.Parse(userIDStr)
	p.LoggedAt = parseNullTime(loggedAt)
	p.GeneratedAt = parseTime(generatedAt)
	if err := json.Unmarshal([]byte(meals), &p.Meals); err != nil {
		return nil, fmt.Errorf("unmarshal meals: %w", err)
	}

	return &p, nil
}
