// ABOUTME: MCP resource implementations for the coach account.
// ABOUTME: Provides coach://today and coach://history resources.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const historyLimit = 7

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "coach://today",
		Name:        "Today's Plans",
		Description: "Today's workout and meal plans plus any check-ins for today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "coach://history",
		Name:        "Training History",
		Description: "Recent workouts, meal plans, and check-ins",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := models.Today(s.now())

	workout, err := s.repo.GetWorkoutPlanByDate(s.userID, today)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to get workout plan: %w", err)
	}
	meal, err := s.repo.GetMealPlanByDate(s.userID, today)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}

	recent, err := s.repo.ListCheckIns(s.userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	var todays []*models.CheckIn
	for _, c := range recent {
		if c.Date == today {
			todays = append(todays, c)
		}
	}

	return jsonResource("coach://today", map[string]any{
		"date":     today,
		"workout":  workout,
		"meals":    meal,
		"checkins": todays,
	})
}

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.repo.ListWorkoutPlans(s.userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	meals, err := s.repo.ListMealPlans(s.userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	checkIns, err := s.repo.ListCheckIns(s.userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}

	completed := 0
	for _, w := range workouts {
		if w.Completed {
			completed++
		}
	}

	return jsonResource("coach://history", map[string]any{
		"workouts": workouts,
		"meals":    meals,
		"checkins": checkIns,
		"summary": map[string]int{
			"workouts":           len(workouts),
			"completed_workouts": completed,
			"meal_plans":         len(meals),
			"checkins":           len(checkIns),
		},
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
