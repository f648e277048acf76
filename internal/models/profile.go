// ABOUTME: Onboarding profile model and its enumerations.
// ABOUTME: Describes training split, goal, nutrition targets, and food preferences.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TrainingSplit is the weekly training-day rotation pattern.
type TrainingSplit string

const (
	SplitPPL        TrainingSplit = "ppl"
	SplitUpperLower TrainingSplit = "upper_lower"
	SplitFullBody   TrainingSplit = "full_body"
)

// Gender values accepted by the profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Experience levels.
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// Goal values.
const (
	GoalMuscleGain  = "muscle_gain"
	GoalStrength    = "strength"
	GoalMaintenance = "maintenance"
)

// AllSplits lists the supported training splits.
var AllSplits = []TrainingSplit{SplitPPL, SplitUpperLower, SplitFullBody}

// IsValidSplit checks if a string is a supported training split.
func IsValidSplit(s string) bool {
	for _, sp := range AllSplits {
		if string(sp) == s {
			return true
		}
	}
	return false
}

// Macros holds daily macronutrient targets in grams.
type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fats    int `json:"fats"`
}

// FoodPreferences captures dietary flags and exclusions.
type FoodPreferences struct {
	Vegetarian    bool     `json:"vegetarian"`
	Vegan         bool     `json:"vegan"`
	Allergies     []string `json:"allergies"`
	DislikedFoods []string `json:"dislikedFoods"`
}

// Profile is the onboarding record describing a user's training and nutrition parameters.
type Profile struct {
	UserID          uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Age             int             `json:"age"`
	Weight          float64         `json:"weight"`
	Height          float64         `json:"height"`
	Gender          string          `json:"gender"`
	ExperienceLevel string          `json:"experienceLevel"`
	TrainingDays    int             `json:"trainingDays"`
	TrainingSplit   TrainingSplit   `json:"trainingSplit"`
	Goal            string          `json:"goal"`
	TargetCalories  int             `json:"targetCalories"`
	Macros          Macros          `json:"macros"`
	Equipment       []string        `json:"equipment"`
	Injuries        []string        `json:"injuries"`
	FoodPreferences FoodPreferences `json:"foodPreferences"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Validate checks enumerated fields. Empty enums are allowed since
// onboarding fills them in steps.
func (p *Profile) Validate() error {
	if p.TrainingSplit != "" && !IsValidSplit(string(p.TrainingSplit)) {
		return fmt.Errorf("unknown training split: %s", p.TrainingSplit)
	}
	if !oneOf(p.Gender, GenderMale, GenderFemale, GenderOther) {
		return fmt.Errorf("unknown gender: %s", p.Gender)
	}
	if !oneOf(p.ExperienceLevel, ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced) {
		return fmt.Errorf("unknown experience level: %s", p.ExperienceLevel)
	}
	if !oneOf(p.Goal, GoalMuscleGain, GoalStrength, GoalMaintenance) {
		return fmt.Errorf("unknown goal: %s", p.Goal)
	}
	if p.TrainingDays < 0 || p.TrainingDays > 7 {
		return fmt.Errorf("training days must be between 0 and 7, got %d", p.TrainingDays)
	}
	return nil
}

// oneOf reports whether v is empty or equals one of the allowed values.
func oneOf(v string, allowed ...string) bool {
	if v == "" {
		return true
	}
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
