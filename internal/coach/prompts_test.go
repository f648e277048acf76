// ABOUTME: Tests for training-day rotation and prompt text.
// ABOUTME: Checks split cycling and that profile fields land in the system prompt.
package coach

import (
	"strings"
	"testing"

	"github.com/harperreed/coach/internal/models"
)

func TestNextDayName(t *testing.T) {
	tests := []struct {
		split models.TrainingSplit
		last  string
		want  string
	}{
		{models.SplitPPL, "", "Push Day"},
		{models.SplitPPL, "Push Day", "Pull Day"},
		{models.SplitPPL, "Pull Day", "Legs Day"},
		{models.SplitPPL, "Legs Day", "Push Day"},
		{models.SplitPPL, "Arm Day", "Push Day"},
		{models.SplitUpperLower, "", "Upper Body"},
		{models.SplitUpperLower, "Upper Body", "Lower Body"},
		{models.SplitUpperLower, "Lower Body", "Upper Body"},
		{models.SplitFullBody, "", "Full Body Workout"},
		{models.SplitFullBody, "Full Body Workout", "Full Body Workout"},
		{"bro_split", "Push Day", "Pull Day"},
		{"", "", "Push Day"},
	}

	for _, tt := range tests {
		t.Run(string(tt.split)+"/"+tt.last, func(t *testing.T) {
			if got := NextDayName(tt.split, tt.last); got != tt.want {
				t.Errorf("NextDayName(%q, %q) = %q, want %q", tt.split, tt.last, got, tt.want)
			}
		})
	}
}

func TestNextDayNameCyclesThroughSplit(t *testing.T) {
	for split, days := range splitDays {
		last := ""
		for i := 0; i < len(days)*2; i++ {
			last = NextDayName(split, last)
			if want := days[i%len(days)]; last != want {
				t.Fatalf("%s step %d = %q, want %q", split, i, last, want)
			}
		}
	}
}

func TestSystemPrompt(t *testing.T) {
	p := &models.Profile{
		Name:            "Sam",
		Age:             31,
		Weight:          80.5,
		Height:          180,
		Gender:          models.GenderOther,
		ExperienceLevel: models.ExperienceIntermediate,
		TrainingDays:    4,
		TrainingSplit:   models.SplitUpperLower,
		Goal:            models.GoalMuscleGain,
		TargetCalories:  2600,
		Macros:          models.Macros{Protein: 180, Carbs: 280, Fats: 80},
		Equipment:       []string{"barbell", "dumbbells"},
		FoodPreferences: models.FoodPreferences{Vegetarian: true, Allergies: []string{"peanuts"}},
	}

	got := SystemPrompt(p)

	for _, want := range []string{
		"- Name: Sam",
		"- Weight: 80.5 kg, Height: 180 cm",
		"- Training Split: UPPER_LOWER (4 days/week)",
		"- Goal: muscle gain",
		"- Available Equipment: barbell, dumbbells",
		"- Injuries/Limitations: None",
		"- Daily Calories: 2600",
		"- Macros: 180g protein, 280g carbs, 80g fats",
		"- Food Preferences: Vegetarian",
		"- Allergies: peanuts",
		"- Dislikes: None",
		"Return ONLY valid JSON",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestWorkoutPrompt(t *testing.T) {
	got := WorkoutPrompt("Pull Day", "WORKOUTS-HERE", "CHECKINS-HERE")

	for _, want := range []string{
		"Generate the Pull Day workout plan.",
		"Select 5-7 exercises appropriate for Pull Day",
		"ACTUAL weights",
		`"dayName": "Pull Day"`,
		"WORKOUTS-HERE",
		"CHECKINS-HERE",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("workout prompt missing %q", want)
		}
	}
}

func TestMealPrompt(t *testing.T) {
	got := MealPrompt(2600, models.Macros{Protein: 180, Carbs: 280, Fats: 80}, noCheckIns)

	for _, want := range []string{
		"- Calories: 2600",
		"- Protein: 180g",
		"within 5% accuracy",
		`"totalCalories": 2600`,
		noCheckIns,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("meal prompt missing %q", want)
		}
	}
	if strings.Contains(got, "workout plan") {
		t.Error("meal prompt should not mention a workout plan")
	}
}
