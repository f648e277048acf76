// ABOUTME: Renders recent check-ins and workouts into prompt context blocks.
// ABOUTME: Pure functions; missing optional fields are left out.
package coach

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/coach/internal/models"
)

const (
	noCheckIns = "No recent check-ins available."
	noWorkouts = "No recent workouts available."
)

// BuildCheckInContext renders check-ins in the order given, newest first by convention.
func BuildCheckInContext(checkIns []*models.CheckIn) string {
	if len(checkIns) == 0 {
		return noCheckIns
	}

	blocks := make([]string, 0, len(checkIns))
	for _, c := range checkIns {
		lines := []string{
			"Date: " + c.Date,
			"- Workout: " + c.WorkoutCompleted,
			"- Nutrition: " + c.NutritionStatus,
			fmt.Sprintf("- Sleep Quality: %d/5", c.SleepQuality),
			"- Soreness: " + c.SorenessLevel,
			fmt.Sprintf("- Energy: %d/5", c.EnergyLevel),
		}
		if c.Weight != nil && *c.Weight != 0 {
			lines = append(lines, "- Weight: "+formatNumber(*c.Weight)+" kg")
		}
		if c.Notes != nil && *c.Notes != "" {
			lines = append(lines, "- Notes: "+*c.Notes)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// BuildWorkoutContext renders planned against actual performance per set.
func BuildWorkoutContext(plans []*models.WorkoutPlan) string {
	if len(plans) == 0 {
		return noWorkouts
	}

	blocks := make([]string, 0, len(plans))
	for _, p := range plans {
		status := "Skipped"
		if p.Completed {
			status = "Completed"
		}

		lines := []string{fmt.Sprintf("%s - %s (%s)", p.Date, p.DayName, status)}
		for _, ex := range p.Exercises {
			sets := make([]string, 0, len(ex.Sets))
			for _, s := range ex.Sets {
				sets = append(sets, describeSet(s))
			}
			lines = append(lines, fmt.Sprintf("  • %s: %s", ex.ExerciseName, strings.Join(sets, "; ")))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// describeSet shows the actual lift only when a weight was logged.
// Without logged reps the planned reps stand in.
func describeSet(s models.WorkoutSet) string {
	planned := fmt.Sprintf("Planned: %skg x %d", formatNumber(s.Weight), s.Reps)
	if s.ActualWeight == nil {
		return planned
	}
	reps := s.Reps
	if s.ActualReps != nil {
		reps = *s.ActualReps
	}
	return fmt.Sprintf("%s → Actual: %skg x %d", planned, formatNumber(*s.ActualWeight), reps)
}

// formatNumber prints 80 as "80" and 82.5 as "82.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
