// ABOUTME: Prompt text for workout and meal plan generation.
// ABOUTME: Also decides which training day comes next in a split rotation.
package coach

import (
	"fmt"
	"strings"

	"github.com/harperreed/coach/internal/models"
)

var splitDays = map[models.TrainingSplit][]string{
	models.SplitPPL:        {"Push Day", "Pull Day", "Legs Day"},
	models.SplitUpperLower: {"Upper Body", "Lower Body"},
	models.SplitFullBody:   {"Full Body Workout"},
}

// NextDayName returns the training day after last in the split's rotation.
// Unknown splits rotate as ppl; an unknown last day restarts the rotation.
func NextDayName(split models.TrainingSplit, last string) string {
	days, ok := splitDays[split]
	if !ok {
		days = splitDays[models.SplitPPL]
	}
	if last == "" {
		return days[0]
	}

	current := -1
	for i, d := range days {
		if d == last {
			current = i
			break
		}
	}
	return days[(current+1)%len(days)]
}

// SystemPrompt describes the coach role and embeds the user's profile.
func SystemPrompt(p *models.Profile) string {
	var b strings.Builder

	b.WriteString("You are an expert personal trainer and nutritionist AI. You generate personalized workout and meal plans.\n\n")

	b.WriteString("USER PROFILE:\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.Name)
	fmt.Fprintf(&b, "- Age: %d, Gender: %s\n", p.Age, p.Gender)
	fmt.Fprintf(&b, "- Weight: %s kg, Height: %s cm\n", formatNumber(p.Weight), formatNumber(p.Height))
	fmt.Fprintf(&b, "- Experience: %s\n", p.ExperienceLevel)
	fmt.Fprintf(&b, "- Training Split: %s (%d days/week)\n", strings.ToUpper(string(p.TrainingSplit)), p.TrainingDays)
	fmt.Fprintf(&b, "- Goal: %s\n", strings.Replace(p.Goal, "_", " ", 1))
	fmt.Fprintf(&b, "- Available Equipment: %s\n", strings.Join(p.Equipment, ", "))
	fmt.Fprintf(&b, "- Injuries/Limitations: %s\n\n", listOrNone(p.Injuries))

	b.WriteString("NUTRITION TARGETS:\n")
	fmt.Fprintf(&b, "- Daily Calories: %d\n", p.TargetCalories)
	fmt.Fprintf(&b, "- Macros: %dg protein, %dg carbs, %dg fats\n", p.Macros.Protein, p.Macros.Carbs, p.Macros.Fats)
	fmt.Fprintf(&b, "- Food Preferences: %s\n", listOrNone(dietFlags(p.FoodPreferences)))
	fmt.Fprintf(&b, "- Allergies: %s\n", listOrNone(p.FoodPreferences.Allergies))
	fmt.Fprintf(&b, "- Dislikes: %s\n\n", listOrNone(p.FoodPreferences.DislikedFoods))

	b.WriteString(`INSTRUCTIONS:
- Generate plans based on progressive overload principles
- Ensure adequate recovery between muscle groups
- Provide variety in exercises and meals
- Be specific with sets, reps, and weights
- Consider the user's experience level and limitations
- Return ONLY valid JSON with no markdown formatting or code blocks`)

	return b.String()
}

// WorkoutPrompt asks for one training day's plan as JSON.
func WorkoutPrompt(dayName, workoutContext, checkInContext string) string {
	return fmt.Sprintf(`Generate the %[1]s workout plan.

RECENT WORKOUTS:
%[2]s

RECENT CHECK-INS:
%[3]s

REQUIREMENTS:
- Select 5-7 exercises appropriate for %[1]s
- Include warm-up recommendations
- Provide specific sets, reps, and weight recommendations (in kg)
- Use the ACTUAL weights from recent workouts (not planned weights) as the baseline for progressive overload
- If the user completed all reps at the actual weight, increase weight by 1-2.5kg
- If the user did fewer reps than planned, keep the same weight or reduce slightly
- Adjust based on reported soreness and energy levels
- Include 1-2 sentence coaching insight referencing actual performance

Return a JSON object with this EXACT structure:
{
  "dayName": "%[1]s",
  "exercises": [
    {
      "exerciseName": "Bench Press",
      "muscleGroup": "Chest",
      "sets": [
        {"setNumber": 1, "reps": 8, "weight": 80, "completed": false},
        {"setNumber": 2, "reps": 8, "weight": 80, "completed": false},
        {"setNumber": 3, "reps": 8, "weight": 80, "completed": false}
      ],
      "notes": "Focus on controlled eccentric"
    }
  ],
  "estimatedDuration": 60,
  "aiInsight": "Last push day was strong. Adding 2.5kg to bench press."
}`, dayName, workoutContext, checkInContext)
}

// MealPrompt asks for one day's meals against the calorie and macro targets.
func MealPrompt(calories int, macros models.Macros, checkInContext string) string {
	return fmt.Sprintf(`Generate the meal plan.

NUTRITION TARGETS:
- Calories: %[1]d
- Protein: %[2]dg
- Carbs: %[3]dg
- Fats: %[4]dg

RECENT CHECK-INS:
%[5]s

REQUIREMENTS:
- Create 3 main meals (breakfast, lunch, dinner) and 1-2 snacks
- Meals should be realistic and easy to prepare
- Include specific ingredients and portions
- Hit macro targets within 5%% accuracy
- Provide variety from previous days
- Consider reported nutrition status

Return a JSON object with this EXACT structure:
{
  "meals": [
    {
      "name": "Protein Oatmeal Bowl",
      "mealType": "breakfast",
      "calories": 450,
      "protein": 35,
      "carbs": 55,
      "fats": 10,
      "ingredients": ["1 cup oats", "1 scoop protein powder", "1/2 banana", "1 tbsp peanut butter"],
      "instructions": "Cook oats, mix in protein powder, top with banana and peanut butter"
    }
  ],
  "totalCalories": %[1]d,
  "totalProtein": %[2]d,
  "totalCarbs": %[3]d,
  "totalFats": %[4]d
}`, calories, macros.Protein, macros.Carbs, macros.Fats, checkInContext)
}

func dietFlags(prefs models.FoodPreferences) []string {
	var flags []string
	if prefs.Vegetarian {
		flags = append(flags, "Vegetarian")
	}
	if prefs.Vegan {
		flags = append(flags, "Vegan")
	}
	return flags
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
