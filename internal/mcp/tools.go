// ABOUTME: MCP tool implementations for the coach account.
// ABOUTME: Plans, completion, actual weights, and check-ins; dates default to today.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_profile",
		Description: "Get the training and nutrition profile",
	}, s.handleGetProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "generate_plans",
		Description: "Generate workout and/or meal plans for a day with the AI coach",
	}, s.handleGeneratePlans)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout_plan",
		Description: "Get the workout plan for a date",
	}, s.handleGetWorkoutPlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_meal_plan",
		Description: "Get the meal plan for a date",
	}, s.handleGetMealPlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_workout",
		Description: "Mark the workout plan for a date as completed",
	}, s.handleCompleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_actual_weights",
		Description: "Record the weights and reps actually lifted, by exercise index and set number",
	}, s.handleLogActualWeights)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_checkin",
		Description: "Submit a daily check-in (sleep, soreness, energy, adherence)",
	}, s.handleAddCheckIn)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_checkins",
		Description: "List recent daily check-ins, newest first",
	}, s.handleListCheckIns)
}

// Tool input/output types

type emptyInput struct{}

type dateInput struct {
	Date string `json:"date,omitempty" jsonschema:"date as YYYY-MM-DD, defaults to today"`
}

type generateInput struct {
	When string `json:"when,omitempty" jsonschema:"today or tomorrow, defaults to tomorrow; ignored when date is set"`
	Date string `json:"date,omitempty" jsonschema:"explicit date as YYYY-MM-DD"`
	Type string `json:"type,omitempty" jsonschema:"both, workout, or meal; defaults to both"`
}

type actualWeightsInput struct {
	Date      string                   `json:"date,omitempty" jsonschema:"date of the workout as YYYY-MM-DD, defaults to today"`
	Exercises []models.ExerciseActuals `json:"exercises" jsonschema:"per exercise index, the sets with actual weight and reps"`
}

type addCheckInInput struct {
	Date             string   `json:"date,omitempty" jsonschema:"date as YYYY-MM-DD, defaults to today"`
	WorkoutCompleted string   `json:"workout_completed" jsonschema:"completed, partial, or skipped"`
	NutritionStatus  string   `json:"nutrition_status" jsonschema:"on_track, under, or over"`
	SleepQuality     int      `json:"sleep_quality,omitempty" jsonschema:"sleep quality from 1 to 5"`
	SorenessLevel    string   `json:"soreness_level" jsonschema:"low, medium, or high"`
	EnergyLevel      int      `json:"energy_level,omitempty" jsonschema:"energy from 1 to 5"`
	ActualCalories   *float64 `json:"actual_calories,omitempty" jsonschema:"calories actually eaten"`
	Weight           *float64 `json:"weight,omitempty" jsonschema:"body weight in kg"`
	Notes            string   `json:"notes,omitempty" jsonschema:"free-form notes"`
}

type listCheckInsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"max results, default 7"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// resolveDate defaults an empty date to today and validates the rest.
func (s *Server) resolveDate(date string) (string, error) {
	if date == "" {
		return models.Today(s.now()), nil
	}
	if _, err := models.ParseDate(date); err != nil {
		return "", err
	}
	return date, nil
}

// Tool handlers

func (s *Server) handleGetProfile(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
	p, err := s.repo.GetProfile(s.userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, simpleOutput{Message: "No profile yet. Complete onboarding first."}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return nil, p, nil
}

func (s *Server) handleGeneratePlans(ctx context.Context, req *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, any, error) {
	if s.generator == nil {
		return nil, nil, errors.New("no model provider configured (set ANTHROPIC_API_KEY or OPENAI_API_KEY)")
	}

	planType, err := coach.ParsePlanType(input.Type)
	if err != nil {
		return nil, nil, err
	}

	date := input.Date
	switch {
	case date != "":
		if _, err := models.ParseDate(date); err != nil {
			return nil, nil, err
		}
	case input.When == "today":
		date = s.generator.Today()
	case input.When == "" || input.When == "tomorrow":
		date = s.generator.Tomorrow()
	default:
		return nil, nil, fmt.Errorf("when must be today or tomorrow, got %q", input.When)
	}

	plans, err := s.generator.Generate(ctx, s.userID, date, planType)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate plans: %w", err)
	}
	return nil, plans, nil
}

func (s *Server) handleGetWorkoutPlan(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, any, error) {
	date, err := s.resolveDate(input.Date)
	if err != nil {
		return nil, nil, err
	}
	plan, err := s.repo.GetWorkoutPlanByDate(s.userID, date)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, simpleOutput{Message: fmt.Sprintf("No workout plan for %s.", date)}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get workout plan: %w", err)
	}
	return nil, plan, nil
}

func (s *Server) handleGetMealPlan(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, any, error) {
	date, err := s.resolveDate(input.Date)
	if err != nil {
		return nil, nil, err
	}
	plan, err := s.repo.GetMealPlanByDate(s.userID, date)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, simpleOutput{Message: fmt.Sprintf("No meal plan for %s.", date)}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get meal plan: %w", err)
	}
	return nil, plan, nil
}

func (s *Server) workoutFor(date string) (*models.WorkoutPlan, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	plan, err := s.repo.GetWorkoutPlanByDate(s.userID, date)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("no workout plan for %s", date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workout plan: %w", err)
	}
	return plan, nil
}

func (s *Server) handleCompleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, simpleOutput, error) {
	plan, err := s.workoutFor(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	plan.MarkCompleted(s.now())
	if err := s.repo.UpdateWorkoutPlan(plan); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to complete workout: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Completed %s on %s", plan.DayName, plan.Date),
	}, nil
}

func (s *Server) handleLogActualWeights(ctx context.Context, req *mcp.CallToolRequest, input actualWeightsInput) (*mcp.CallToolResult, simpleOutput, error) {
	if len(input.Exercises) == 0 {
		return nil, simpleOutput{}, errors.New("exercises is required")
	}
	plan, err := s.workoutFor(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	updated := plan.ApplyActuals(input.Exercises)
	if err := s.repo.UpdateWorkoutPlan(plan); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to save actual weights: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Logged %d sets for %s on %s", updated, plan.DayName, plan.Date),
	}, nil
}

func (s *Server) handleAddCheckIn(ctx context.Context, req *mcp.CallToolRequest, input addCheckInInput) (*mcp.CallToolResult, simpleOutput, error) {
	date, err := s.resolveDate(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	c := models.NewCheckIn(s.userID, date)
	c.WorkoutCompleted = input.WorkoutCompleted
	c.NutritionStatus = input.NutritionStatus
	c.SleepQuality = input.SleepQuality
	c.SorenessLevel = input.SorenessLevel
	c.EnergyLevel = input.EnergyLevel
	c.ActualCalories = input.ActualCalories
	c.Weight = input.Weight
	if input.Notes != "" {
		c.WithNotes(input.Notes)
	}

	if err := c.Validate(); err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.repo.CreateCheckIn(c); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to save check-in: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Saved check-in for %s (ID: %s)", date, c.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListCheckIns(ctx context.Context, req *mcp.CallToolRequest, input listCheckInsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = storage.DefaultRecentLimit
	}

	checkIns, err := s.repo.ListCheckIns(s.userID, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	if len(checkIns) == 0 {
		return nil, simpleOutput{Message: "No check-ins found."}, nil
	}
	return nil, map[string]any{"checkins": checkIns}, nil
}
