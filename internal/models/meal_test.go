// ABOUTME: Tests for MealPlan model.
// ABOUTME: Validates totals helpers and logged stamping.
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMealPlanSumMeals(t *testing.T) {
	p := NewMealPlan(uuid.New(), "2025-01-31")
	if p.HasTotals() {
		t.Error("expected empty plan to have no totals")
	}

	p.Meals = []Meal{
		{Name: "Oats", Calories: 450, Protein: 35, Carbs: 55, Fats: 10},
		{Name: "Chicken", Calories: 600, Protein: 50, Carbs: 60, Fats: 15},
	}
	p.SumMeals()

	if p.TotalCalories != 1050 {
		t.Errorf("TotalCalories = %v, want 1050", p.TotalCalories)
	}
	if p.TotalProtein != 85 {
		t.Errorf("TotalProtein = %v, want 85", p.TotalProtein)
	}
	if !p.HasTotals() {
		t.Error("expected totals after SumMeals")
	}
}

func TestMealPlanMarkLogged(t *testing.T) {
	p := NewMealPlan(uuid.New(), "2025-01-31")
	now := time.Now()
	p.MarkLogged(now)

	if !p.Logged {
		t.Error("expected Logged to be true")
	}
	if p.LoggedAt == nil || !p.LoggedAt.Equal(now) {
		t.Errorf("LoggedAt = %v, want %v", p.LoggedAt, now)
	}
}
