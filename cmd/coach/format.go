// ABOUTME: Plain-text rendering helpers for plans and run summaries.
// ABOUTME: Shared by generate, show, and nightly.
package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/scheduler"
)

var nowFunc = time.Now

func formatWorkout(w *models.WorkoutPlan) string {
	var b strings.Builder
	for _, ex := range w.Exercises {
		fmt.Fprintf(&b, "  %d. %s", ex.Order, ex.ExerciseName)
		if ex.MuscleGroup != "" {
			fmt.Fprintf(&b, " (%s)", ex.MuscleGroup)
		}
		b.WriteString("\n")
		for _, s := range ex.Sets {
			fmt.Fprintf(&b, "     set %d: %d x %s kg", s.SetNumber, s.Reps, formatKg(s.Weight))
			if s.ActualWeight != nil || s.ActualReps != nil {
				b.WriteString(" -> ")
				if s.ActualReps != nil {
					fmt.Fprintf(&b, "%d", *s.ActualReps)
				} else {
					fmt.Fprintf(&b, "%d", s.Reps)
				}
				if s.ActualWeight != nil {
					fmt.Fprintf(&b, " x %s kg", formatKg(*s.ActualWeight))
				}
			}
			b.WriteString("\n")
		}
	}
	if w.EstimatedDuration > 0 {
		fmt.Fprintf(&b, "  ~%d min", w.EstimatedDuration)
		if w.Completed {
			b.WriteString(", completed")
		}
		b.WriteString("\n")
	}
	if w.AIInsight != "" {
		fmt.Fprintf(&b, "  %s\n", w.AIInsight)
	}
	return b.String()
}

func formatMealPlan(m *models.MealPlan) string {
	var b strings.Builder
	for _, meal := range m.Meals {
		fmt.Fprintf(&b, "  %s %s %4.0f kcal  P%.0f C%.0f F%.0f\n",
			padRight(meal.MealType, 10), padRight(truncate(meal.Name, 32), 32),
			meal.Calories, meal.Protein, meal.Carbs, meal.Fats)
	}
	fmt.Fprintf(&b, "  %s %s %4.0f kcal  P%.0f C%.0f F%.0f\n",
		padRight("total", 10), padRight("", 32),
		m.TotalCalories, m.TotalProtein, m.TotalCarbs, m.TotalFats)
	if m.Logged {
		b.WriteString("  logged\n")
	}
	return b.String()
}

func printSummary(w io.Writer, sum *scheduler.Summary) {
	fmt.Fprintln(w, color.GreenString("✓ Pre-generation for %s finished", sum.Date))
	fmt.Fprintf(w, "  Accounts: %d\n", sum.Users)
	fmt.Fprintf(w, "  Generated: %d\n", sum.Generated)
	fmt.Fprintf(w, "  Skipped: %d\n", sum.Skipped)
	if sum.Failed > 0 {
		fmt.Fprintln(w, color.RedString("  Failed: %d", sum.Failed))
	}
}

// formatKg drops a trailing ".0" so 80 prints as "80" and 82.5 as "82.5".
func formatKg(v float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", v), ".0")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
