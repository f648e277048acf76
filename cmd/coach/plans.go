// ABOUTME: CLI commands for generating and viewing plans.
// ABOUTME: generate calls the model; show prints stored plans for a date.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
	"github.com/spf13/cobra"
)

var (
	planDate string
	planWhen string
	planType string
	showDate string
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate plans with the model",
	Long: `Generate workout and meal plans for one account.

The date defaults to tomorrow. An existing plan for the same date is replaced.

Examples:
  coach generate --email me@example.com
  coach generate --email me@example.com --when today
  coach generate --email me@example.com --date 2025-02-01 --type workout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := requireUser()
		if err != nil {
			return err
		}
		pt, err := coach.ParsePlanType(planType)
		if err != nil {
			return err
		}
		if planDate != "" && planWhen != "" {
			return errors.New("use either --date or --when, not both")
		}
		if planDate != "" {
			if _, err := models.ParseDate(planDate); err != nil {
				return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", planDate)
			}
		}

		gw, err := cfg.OpenGateway()
		if err != nil {
			return err
		}
		gen := coach.NewGenerator(repo, gw, logger, nil)

		date := planDate
		switch planWhen {
		case "":
		case "today":
			date = gen.Today()
		case "tomorrow":
			date = gen.Tomorrow()
		default:
			return fmt.Errorf("--when must be today or tomorrow, got %q", planWhen)
		}

		plans, err := gen.Generate(cmd.Context(), u.ID, date, pt)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if plans.WorkoutPlan != nil {
			fmt.Fprintln(out, color.GreenString("✓ Generated %s for %s", plans.WorkoutPlan.DayName, plans.WorkoutPlan.Date))
			fmt.Fprint(out, formatWorkout(plans.WorkoutPlan))
		}
		if plans.MealPlan != nil {
			fmt.Fprintln(out, color.GreenString("✓ Generated meal plan for %s", plans.MealPlan.Date))
			fmt.Fprint(out, formatMealPlan(plans.MealPlan))
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stored plans for a date",
	Long: `Show the workout and meal plan stored for a date (default today).

Example:
  coach show --email me@example.com --date 2025-02-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := requireUser()
		if err != nil {
			return err
		}

		date := models.Today(nowFunc())
		if showDate != "" {
			if _, err := models.ParseDate(showDate); err != nil {
				return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", showDate)
			}
			date = showDate
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)

		w, err := repo.GetWorkoutPlanByDate(u.ID, date)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			fmt.Fprintf(out, "No workout plan for %s.\n", date)
		case err != nil:
			return err
		default:
			fmt.Fprintln(out, bold.Sprintf("%s (%s)", w.DayName, w.Date))
			fmt.Fprint(out, formatWorkout(w))
		}

		fmt.Fprintln(out)

		m, err := repo.GetMealPlanByDate(u.ID, date)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			fmt.Fprintf(out, "No meal plan for %s.\n", date)
		case err != nil:
			return err
		default:
			fmt.Fprintln(out, bold.Sprintf("Meals (%s)", m.Date))
			fmt.Fprint(out, formatMealPlan(m))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&planDate, "date", "d", "", "target date YYYY-MM-DD (default tomorrow)")
	generateCmd.Flags().StringVarP(&planWhen, "when", "w", "", "today or tomorrow")
	generateCmd.Flags().StringVarP(&planType, "type", "t", "both", "plan type: both, workout, or meal")
	showCmd.Flags().StringVarP(&showDate, "date", "d", "", "date YYYY-MM-DD (default today)")
	addEmailFlag(generateCmd)
	addEmailFlag(showCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(showCmd)
}
