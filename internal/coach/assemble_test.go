// ABOUTME: Tests for plan assembly from drafts.
// ABOUTME: Covers slugs, ordering, reset sets, default dates, and empty-plan rejection.
package coach

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Bench Press":             "bench-press",
		"  Romanian   Deadlift ": "romanian-deadlift",
		"Pull-Up":                 "pull-up",
		"":                        "",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAssembleWorkout(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2025, 1, 31, 21, 0, 0, 0, time.Local)
	logged := 90.0

	draft := &WorkoutDraft{
		DayName: "Push Day",
		Exercises: []ExerciseDraft{
			{ExerciseName: "Bench Press", MuscleGroup: "Chest", Sets: []models.WorkoutSet{
				{SetNumber: 1, Reps: 8, Weight: 80, Completed: true, ActualWeight: &logged},
				{Reps: 8, Weight: 80},
			}},
			{ExerciseName: "Dips", Sets: []models.WorkoutSet{{Reps: 12}}},
		},
		EstimatedDuration: 59.6,
		AIInsight:         "Go.",
	}

	plan, err := AssembleWorkout(userID, "", draft, now)
	if err != nil {
		t.Fatalf("AssembleWorkout failed: %v", err)
	}

	if plan.Date != "2025-02-01" {
		t.Errorf("Date = %s, want tomorrow 2025-02-01", plan.Date)
	}
	if plan.UserID != userID || plan.ID == uuid.Nil {
		t.Error("expected plan ID and owner to be set")
	}
	if plan.Completed {
		t.Error("new plan should not be completed")
	}
	if !plan.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v, want %v", plan.GeneratedAt, now)
	}
	if plan.EstimatedDuration != 60 {
		t.Errorf("EstimatedDuration = %d, want 60", plan.EstimatedDuration)
	}

	seen := map[uuid.UUID]bool{}
	for i, ex := range plan.Exercises {
		if ex.Order != i+1 {
			t.Errorf("exercise %d order = %d", i, ex.Order)
		}
		if seen[ex.ID] {
			t.Errorf("duplicate exercise ID %v", ex.ID)
		}
		seen[ex.ID] = true
	}
	if plan.Exercises[0].ExerciseID != "bench-press" {
		t.Errorf("ExerciseID = %q, want bench-press", plan.Exercises[0].ExerciseID)
	}

	sets := plan.Exercises[0].Sets
	if sets[0].Completed || sets[0].ActualWeight != nil {
		t.Error("expected logged values from the model to be cleared")
	}
	if sets[1].SetNumber != 2 {
		t.Errorf("SetNumber = %d, want 2", sets[1].SetNumber)
	}
}

func TestAssembleWorkoutKeepsDate(t *testing.T) {
	plan, err := AssembleWorkout(uuid.New(), "2025-03-03", &WorkoutDraft{
		Exercises: []ExerciseDraft{{ExerciseName: "Squat"}},
	}, time.Now())
	if err != nil {
		t.Fatalf("AssembleWorkout failed: %v", err)
	}
	if plan.Date != "2025-03-03" {
		t.Errorf("Date = %s, want 2025-03-03", plan.Date)
	}
}

func TestAssembleEmptyPlans(t *testing.T) {
	var ipe *IncompletePlanError

	_, err := AssembleWorkout(uuid.New(), "", &WorkoutDraft{DayName: "Push Day"}, time.Now())
	if !errors.As(err, &ipe) || ipe.Field != "exercises" {
		t.Errorf("expected IncompletePlanError for exercises, got %v", err)
	}

	_, err = AssembleMeal(uuid.New(), "", &MealDraft{TotalCalories: 2000}, time.Now())
	if !errors.As(err, &ipe) || ipe.Field != "meals" {
		t.Errorf("expected IncompletePlanError for meals, got %v", err)
	}
}

func TestAssembleMeal(t *testing.T) {
	draft := &MealDraft{
		Meals: []MealItemDraft{
			{Name: "Oats", MealType: models.MealBreakfast, Calories: 400, Protein: 30},
			{Name: "Steak", MealType: models.MealDinner, Calories: 800, Protein: 60},
		},
		TotalCalories: 2100,
	}

	plan, err := AssembleMeal(uuid.New(), "2025-01-31", draft, time.Now())
	if err != nil {
		t.Fatalf("AssembleMeal failed: %v", err)
	}
	if plan.TotalCalories != 2100 {
		t.Errorf("TotalCalories = %v, want supplied 2100", plan.TotalCalories)
	}
	if plan.Logged {
		t.Error("new meal plan should not be logged")
	}
	if plan.Meals[0].ID == plan.Meals[1].ID {
		t.Error("expected distinct meal IDs")
	}

	draft.TotalCalories = 0
	plan, _ = AssembleMeal(uuid.New(), "2025-01-31", draft, time.Now())
	if plan.TotalCalories != 1200 || plan.TotalProtein != 90 {
		t.Errorf("totals = %v/%v, want summed 1200/90", plan.TotalCalories, plan.TotalProtein)
	}
}
