// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Calls handlers directly against SQLite and a scripted gateway.
package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/llm/llmtest"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var fixedNow = time.Date(2025, 1, 31, 9, 0, 0, 0, time.Local)

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T) *storage.DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "coach-mcp-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := storage.Open(filepath.Join(tmpDir, "coach.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// setupServer creates an onboarded account and a server bound to it.
func setupServer(t *testing.T, onboard bool) (*Server, *storage.DB) {
	t.Helper()

	db := setupTestDB(t)
	u := models.NewUser("lifter@example.com", "hash")
	if err := db.CreateUser(u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if onboard {
		p := &models.Profile{Name: "Sam", TrainingSplit: models.SplitUpperLower, TargetCalories: 2400}
		if err := db.SaveProfile(u.ID, p); err != nil {
			t.Fatalf("SaveProfile failed: %v", err)
		}
	}

	clock := func() time.Time { return fixedNow }
	gen := coach.NewGenerator(db, &llmtest.Fake{Handler: llmtest.PlanReplies}, nil, nil, coach.WithClock(clock))
	server, err := NewServer(db, gen, u.ID)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	server.now = clock
	return server, db
}

func TestNewServer(t *testing.T) {
	server, _ := setupServer(t, false)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.repo == nil {
		t.Error("Expected non-nil repo")
	}
	if server.userID == uuid.Nil {
		t.Error("Expected account to be bound")
	}
}

func TestHandleGetProfile(t *testing.T) {
	server, _ := setupServer(t, false)
	ctx := context.Background()

	_, out, err := server.handleGetProfile(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("handleGetProfile failed: %v", err)
	}
	if msg, ok := out.(simpleOutput); !ok || !strings.Contains(msg.Message, "onboarding") {
		t.Errorf("expected onboarding message, got %#v", out)
	}

	server, _ = setupServer(t, true)
	_, out, err = server.handleGetProfile(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("handleGetProfile failed: %v", err)
	}
	if p, ok := out.(*models.Profile); !ok || p.Name != "Sam" {
		t.Errorf("expected profile, got %#v", out)
	}
}

func TestHandleGeneratePlans(t *testing.T) {
	server, db := setupServer(t, true)
	ctx := context.Background()

	_, out, err := server.handleGeneratePlans(ctx, &mcp.CallToolRequest{}, generateInput{When: "today"})
	if err != nil {
		t.Fatalf("handleGeneratePlans failed: %v", err)
	}
	plans, ok := out.(*coach.Plans)
	if !ok || plans.WorkoutPlan == nil || plans.MealPlan == nil {
		t.Fatalf("expected both plans, got %#v", out)
	}
	if plans.WorkoutPlan.DayName != "Upper Body" {
		t.Errorf("DayName = %q, want Upper Body", plans.WorkoutPlan.DayName)
	}
	if _, err := db.GetWorkoutPlanByDate(server.userID, "2025-01-31"); err != nil {
		t.Errorf("expected plan stored for today: %v", err)
	}

	for _, bad := range []generateInput{{When: "someday"}, {Type: "brunch"}, {Date: "tomorrow"}} {
		if _, _, err := server.handleGeneratePlans(ctx, &mcp.CallToolRequest{}, bad); err == nil {
			t.Errorf("expected error for %+v", bad)
		}
	}
}

func TestHandleGeneratePlansWithoutProfile(t *testing.T) {
	server, _ := setupServer(t, false)

	_, _, err := server.handleGeneratePlans(context.Background(), &mcp.CallToolRequest{}, generateInput{})
	if coach.KindOf(err) != coach.KindProfileMissing {
		t.Errorf("expected profile_missing, got %v", err)
	}
}

func TestWorkoutTools(t *testing.T) {
	server, db := setupServer(t, true)
	ctx := context.Background()

	_, out, err := server.handleGetWorkoutPlan(ctx, &mcp.CallToolRequest{}, dateInput{})
	if err != nil {
		t.Fatalf("handleGetWorkoutPlan failed: %v", err)
	}
	if _, ok := out.(simpleOutput); !ok {
		t.Errorf("expected not-found message, got %#v", out)
	}

	if _, _, err := server.handleCompleteWorkout(ctx, &mcp.CallToolRequest{}, dateInput{}); err == nil {
		t.Error("expected error completing a missing plan")
	}

	plan := models.NewWorkoutPlan(server.userID, "2025-01-31")
	plan.DayName = "Upper Body"
	plan.Exercises = []models.WorkoutExercise{{
		ID: uuid.New(), ExerciseID: "row", ExerciseName: "Row", Order: 1,
		Sets: []models.WorkoutSet{{SetNumber: 1, Reps: 10, Weight: 60}},
	}}
	if err := db.SaveWorkoutPlan(plan); err != nil {
		t.Fatalf("SaveWorkoutPlan failed: %v", err)
	}

	weight := 62.5
	_, msg, err := server.handleLogActualWeights(ctx, &mcp.CallToolRequest{}, actualWeightsInput{
		Exercises: []models.ExerciseActuals{{ExerciseIndex: 0, Sets: []models.SetActual{{SetNumber: 1, ActualWeight: &weight}}}},
	})
	if err != nil {
		t.Fatalf("handleLogActualWeights failed: %v", err)
	}
	if !strings.Contains(msg.Message, "Logged 1 sets") {
		t.Errorf("Message = %q", msg.Message)
	}

	_, msg, err = server.handleCompleteWorkout(ctx, &mcp.CallToolRequest{}, dateInput{Date: "2025-01-31"})
	if err != nil {
		t.Fatalf("handleCompleteWorkout failed: %v", err)
	}
	if !strings.Contains(msg.Message, "Upper Body") {
		t.Errorf("Message = %q", msg.Message)
	}

	stored, _ := db.GetWorkoutPlanByDate(server.userID, "2025-01-31")
	if !stored.Completed {
		t.Error("expected plan to be completed")
	}
	if got := stored.Exercises[0].Sets[0].ActualWeight; got == nil || *got != 62.5 {
		t.Errorf("ActualWeight = %v, want 62.5", got)
	}

	if _, _, err := server.handleGetMealPlan(ctx, &mcp.CallToolRequest{}, dateInput{Date: "31/01/2025"}); err == nil {
		t.Error("expected error for bad date")
	}
}

func TestCheckInTools(t *testing.T) {
	server, _ := setupServer(t, true)
	ctx := context.Background()

	_, out, err := server.handleListCheckIns(ctx, &mcp.CallToolRequest{}, listCheckInsInput{})
	if err != nil {
		t.Fatalf("handleListCheckIns failed: %v", err)
	}
	if _, ok := out.(simpleOutput); !ok {
		t.Errorf("expected empty message, got %#v", out)
	}

	tests := []struct {
		name    string
		input   addCheckInInput
		wantErr bool
	}{
		{"valid", addCheckInInput{
			WorkoutCompleted: models.WorkoutPartial, NutritionStatus: models.NutritionOver,
			SorenessLevel: models.SorenessMedium, SleepQuality: 3, EnergyLevel: 4, Notes: "knee ok",
		}, false},
		{"bad soreness", addCheckInInput{SorenessLevel: "extreme"}, true},
		{"bad energy", addCheckInInput{EnergyLevel: 11}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := server.handleAddCheckIn(ctx, &mcp.CallToolRequest{}, tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("handleAddCheckIn error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	_, out, err = server.handleListCheckIns(ctx, &mcp.CallToolRequest{}, listCheckInsInput{Limit: 5})
	if err != nil {
		t.Fatalf("handleListCheckIns failed: %v", err)
	}
	list, ok := out.(map[string]any)["checkins"].([]*models.CheckIn)
	if !ok || len(list) != 1 || list[0].Date != "2025-01-31" {
		t.Errorf("unexpected check-ins: %#v", out)
	}
}

func TestResources(t *testing.T) {
	server, _ := setupServer(t, true)
	ctx := context.Background()

	if _, _, err := server.handleGeneratePlans(ctx, &mcp.CallToolRequest{}, generateInput{When: "today"}); err != nil {
		t.Fatalf("handleGeneratePlans failed: %v", err)
	}

	res, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleTodayResource failed: %v", err)
	}
	var today struct {
		Date    string              `json:"date"`
		Workout *models.WorkoutPlan `json:"workout"`
		Meals   *models.MealPlan    `json:"meals"`
	}
	if err := json.Unmarshal([]byte(res.Contents[0].Text), &today); err != nil {
		t.Fatalf("unmarshal today: %v", err)
	}
	if today.Date != "2025-01-31" || today.Workout == nil || today.Meals == nil {
		t.Errorf("unexpected today resource: %+v", today)
	}

	res, err = server.handleHistoryResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleHistoryResource failed: %v", err)
	}
	if res.Contents[0].URI != "coach://history" {
		t.Errorf("URI = %s", res.Contents[0].URI)
	}
	if !strings.Contains(res.Contents[0].Text, `"workouts": 1`) {
		t.Errorf("history summary missing workout count:\n%s", res.Contents[0].Text)
	}
}
