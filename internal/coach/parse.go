// ABOUTME: Decodes model replies into workout and meal drafts.
// ABOUTME: Strips markdown fences first; no schema validation happens here.
package coach

import (
	"encoding/json"
	"strings"

	"github.com/harperreed/coach/internal/models"
)

const fence = "```"

// WorkoutDraft is the workout JSON shape the model is asked to return.
type WorkoutDraft struct {
	DayName           string          `json:"dayName"`
	Exercises         []ExerciseDraft `json:"exercises"`
	EstimatedDuration float64         `json:"estimatedDuration"`
	AIInsight         string          `json:"aiInsight"`
}

// ExerciseDraft is one exercise in a WorkoutDraft.
type ExerciseDraft struct {
	ExerciseName string              `json:"exerciseName"`
	MuscleGroup  string              `json:"muscleGroup"`
	Sets         []models.WorkoutSet `json:"sets"`
	Notes        string              `json:"notes"`
}

// MealDraft is the meal plan JSON shape the model is asked to return.
type MealDraft struct {
	Meals         []MealItemDraft `json:"meals"`
	TotalCalories float64         `json:"totalCalories"`
	TotalProtein  float64         `json:"totalProtein"`
	TotalCarbs    float64         `json:"totalCarbs"`
	TotalFats     float64         `json:"totalFats"`
}

// MealItemDraft is one meal in a MealDraft.
type MealItemDraft struct {
	Name         string   `json:"name"`
	MealType     string   `json:"mealType"`
	Calories     float64  `json:"calories"`
	Protein      float64  `json:"protein"`
	Carbs        float64  `json:"carbs"`
	Fats         float64  `json:"fats"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
}

// StripFences removes a surrounding markdown code fence, with or without a
// language tag. Applying it twice gives the same result as once.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, fence) {
		s = strings.TrimPrefix(s, fence)
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && isLanguageTag(s[:nl]) {
			s = s[nl+1:]
		} else {
			s = strings.TrimLeft(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), fence)

	return strings.TrimSpace(s)
}

// isLanguageTag reports whether the fence's first line is a bare tag like "json".
func isLanguageTag(s string) bool {
	s = strings.TrimSpace(s)
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return false
		}
	}
	return true
}

// ParseWorkout decodes a workout reply.
func ParseWorkout(raw string) (*WorkoutDraft, error) {
	var d WorkoutDraft
	if err := json.Unmarshal([]byte(StripFences(raw)), &d); err != nil {
		return nil, &MalformedPlanError{Plan: "workout", Raw: raw, Err: err}
	}
	return &d, nil
}

// ParseMeal decodes a meal plan reply.
func ParseMeal(raw string) (*MealDraft, error) {
	var d MealDraft
	if err := json.Unmarshal([]byte(StripFences(raw)), &d); err != nil {
		return nil, &MalformedPlanError{Plan: "meal", Raw: raw, Err: err}
	}
	return &d, nil
}
