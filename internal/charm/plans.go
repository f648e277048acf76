// ABOUTME: Workout and meal plan operations for Charm KV storage.
// ABOUTME: One key per user and date; lookups by ID scan the user's plan prefix.
package charm

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
)

// SaveWorkoutPlan stores a plan, replacing any existing plan for the same user and date.
func (c *Client) SaveWorkoutPlan(p *models.WorkoutPlan) error {
	data, err := marshalJSON(p)
	if err != nil {
		return fmt.Errorf("marshal workout plan: %w", err)
	}
	return c.set(workoutKey(p.UserID, p.Date), data)
}

// GetWorkoutPlan retrieves a plan by ID, scoped to its owner.
func (c *Client) GetWorkoutPlan(userID, id uuid.UUID) (*models.WorkoutPlan, error) {
	plans, err := c.ListWorkoutPlans(userID, 0)
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("workout plan %s: %w", id, storage.ErrNotFound)
}

// GetWorkoutPlanByDate retrieves the plan for a calendar date.
func (c *Client) GetWorkoutPlanByDate(userID uuid.UUID, date string) (*models.WorkoutPlan, error) {
	data, err := c.get(workoutKey(userID, date))
	if err != nil {
		return nil, fmt.Errorf("workout plan: %w", err)
	}
	p, err := unmarshalJSON[models.WorkoutPlan](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal workout plan: %w", err)
	}
	return p, nil
}

// ListWorkoutPlans retrieves the most recent plans, sorted by date descending.
func (c *Client) ListWorkoutPlans(userID uuid.UUID, limit int) ([]*models.WorkoutPlan, error) {
	values, err := c.listByPrefix(workoutUserPrefix(userID))
	if err != nil {
		return nil, fmt.Errorf("list workout plans: %w", err)
	}

	plans := decodeAll[models.WorkoutPlan](values)
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].Date > plans[j].Date
	})
	return limitList(plans, limit), nil
}

// UpdateWorkoutPlan persists completion state and logged actuals of an existing plan.
func (c *Client) UpdateWorkoutPlan(p *models.WorkoutPlan) error {
	existing, err := c.GetWorkoutPlan(p.UserID, p.ID)
	if err != nil {
		return err
	}
	p.Date = existing.Date
	return c.SaveWorkoutPlan(p)
}

// SaveMealPlan stores a meal plan, replacing any existing plan for the same user and date.
func (c *Client) SaveMealPlan(p *models.MealPlan) error {
	data, err := marshalJSON(p)
	if err != nil {
		return fmt.Errorf("marshal meal plan: %w", err)
	}
	return c.set(mealKey(p.UserID, p.Date), data)
}

// GetMealPlan retrieves a meal plan by ID, scoped to its owner.
func (c *Client) GetMealPlan(userID, id uuid.UUID) (*models.MealPlan, error) {
	plans, err := c.ListMealPlans(userID, 0)
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("meal plan %s: %w", id, storage.ErrNotFound)
}

// GetMealPlanByDate retrieves the meal plan for a calendar date.
func (c *Client) GetMealPlanByDate(userID uuid.UUID, date string) (*models.MealPlan, error) {
	data, err := c.get(mealKey(userID, date))
	if err != nil {
		return nil, fmt.Errorf("meal plan: %w", err)
	}
	p, err := unmarshalJSON[models.MealPlan](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal meal plan: %w", err)
	}
	return p, nil
}

// ListMealPlans retrieves the most recent meal plans, sorted by date descending.
func (c *Client) ListMealPlans(userID uuid.UUID, limit int) ([]*models.MealPlan, error) {
	values, err := c.listByPrefix(mealUserPrefix(userID))
	if err != nil {
		return nil, fmt.Errorf("list meal plans: %w", err)
	}

	plans := decodeAll[models.MealPlan](values)
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].Date > plans[j].Date
	})
	return limitList(plans, limit), nil
}

// UpdateMealPlan persists the logged state and meals of an existing plan.
func (c *Client) UpdateMealPlan(p *models.MealPlan) error {
	existing, err := c.GetMealPlan(p.UserID, p.ID)
	if err != nil {
		return err
	}
	p.Date = existing.Date
	return c.SaveMealPlan(p)
}

// limitList truncates to limit items; limit <= 0 keeps everything.
func limitList[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
