// ABOUTME: Turns parsed drafts into persisted-shape workout and meal plans.
// ABOUTME: Assigns IDs, slugs, ordering, and timestamps; rejects empty plans.
package coach

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

// Slug lowercases name and joins its words with dashes.
func Slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// resolveDate defaults an empty target date to the day after now.
func resolveDate(date string, now time.Time) string {
	if date == "" {
		return models.Tomorrow(now)
	}
	return date
}

// AssembleWorkout builds a fresh, uncompleted plan from a draft.
func AssembleWorkout(userID uuid.UUID, date string, draft *WorkoutDraft, now time.Time) (*models.WorkoutPlan, error) {
	if draft == nil || len(draft.Exercises) == 0 {
		return nil, &IncompletePlanError{Plan: "workout", Field: "exercises"}
	}

	plan := &models.WorkoutPlan{
		ID:                uuid.New(),
		UserID:            userID,
		Date:              resolveDate(date, now),
		DayName:           draft.DayName,
		Exercises:         make([]models.WorkoutExercise, 0, len(draft.Exercises)),
		EstimatedDuration: int(math.Round(draft.EstimatedDuration)),
		AIInsight:         draft.AIInsight,
		GeneratedAt:       now,
	}

	for i, ex := range draft.Exercises {
		plan.Exercises = append(plan.Exercises, models.WorkoutExercise{
			ID:           uuid.New(),
			ExerciseID:   Slug(ex.ExerciseName),
			ExerciseName: ex.ExerciseName,
			MuscleGroup:  ex.MuscleGroup,
			Sets:         freshSets(ex.Sets),
			Notes:        ex.Notes,
			Order:        i + 1,
		})
	}

	return plan, nil
}

// freshSets clears anything logged and numbers unnumbered sets by position.
func freshSets(sets []models.WorkoutSet) []models.WorkoutSet {
	out := make([]models.WorkoutSet, len(sets))
	for i, s := range sets {
		if s.SetNumber == 0 {
			s.SetNumber = i + 1
		}
		s.ActualWeight = nil
		s.ActualReps = nil
		s.Completed = false
		out[i] = s
	}
	return out
}

// AssembleMeal builds a fresh, unlogged meal plan from a draft. Totals are
// taken as supplied and summed from the meals only when all are absent.
func AssembleMeal(userID uuid.UUID, date string, draft *MealDraft, now time.Time) (*models.MealPlan, error) {
	if draft == nil || len(draft.Meals) == 0 {
		return nil, &IncompletePlanError{Plan: "meal", Field: "meals"}
	}

	plan := &models.MealPlan{
		ID:            uuid.New(),
		UserID:        userID,
		Date:          resolveDate(date, now),
		Meals:         make([]models.Meal, 0, len(draft.Meals)),
		TotalCalories: draft.TotalCalories,
		TotalProtein:  draft.TotalProtein,
		TotalCarbs:    draft.TotalCarbs,
		TotalFats:     draft.TotalFats,
		GeneratedAt:   now,
	}

	for _, m := range draft.Meals {
		plan.Meals = append(plan.Meals, models.Meal{
			ID:           uuid.New(),
			Name:         m.Name,
			MealType:     m.MealType,
			Calories:     m.Calories,
			Protein:      m.Protein,
			Carbs:        m.Carbs,
			Fats:         m.Fats,
			Ingredients:  m.Ingredients,
			Instructions: m.Instructions,
		})
	}

	if !plan.HasTotals() {
		plan.SumMeals()
	}

	return plan, nil
}
