// ABOUTME: MealPlan and Meal models for daily nutrition plans.
// ABOUTME: Plan totals are stored as supplied, not recomputed from meals.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Meal types.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// Meal is one entry in a meal plan.
type Meal struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	MealType     string    `json:"mealType"`
	Calories     float64   `json:"calories"`
	Protein      float64   `json:"protein"`
	Carbs        float64   `json:"carbs"`
	Fats         float64   `json:"fats"`
	Ingredients  []string  `json:"ingredients,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
}

// MealPlan is the generated nutrition plan for one user on one calendar date.
type MealPlan struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	Date          string     `json:"date"`
	Meals         []Meal     `json:"meals"`
	TotalCalories float64    `json:"totalCalories"`
	TotalProtein  float64    `json:"totalProtein"`
	TotalCarbs    float64    `json:"totalCarbs"`
	TotalFats     float64    `json:"totalFats"`
	Logged        bool       `json:"logged"`
	LoggedAt      *time.Time `json:"loggedAt,omitempty"`
	GeneratedAt   time.Time  `json:"generatedAt"`
}

// NewMealPlan creates an empty meal plan for a user and date with a generated UUID.
func NewMealPlan(userID uuid.UUID, date string) *MealPlan {
	return &MealPlan{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		GeneratedAt: time.Now(),
	}
}

// MarkLogged flags the meal plan as eaten and stamps the time.
func (m *MealPlan) MarkLogged(at time.Time) {
	m.Logged = true
	m.LoggedAt = &at
}

// HasTotals reports whether any aggregate total was supplied.
func (m *MealPlan) HasTotals() bool {
	return m.TotalCalories != 0 || m.TotalProtein != 0 || m.TotalCarbs != 0 || m.TotalFats != 0
}

// SumMeals fills the aggregate totals from the child meals.
func (m *MealPlan) SumMeals() {
	m.TotalCalories, m.TotalProtein, m.TotalCarbs, m.TotalFats = 0, 0, 0, 0
	for _, meal := range m.Meals {
		m.TotalCalories += meal.Calories
		m.TotalProtein += meal.Protein
		m.TotalCarbs += meal.Carbs
		m.TotalFats += meal.Fats
	}
}
