// ABOUTME: Tests for the SQL Repository implementation.
// ABOUTME: Verifies accounts, profiles, plan upserts, check-ins, and not-found handling using SQLite.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

func TestCreateAndGetUser(t *testing.T) {
	db := setupTestDB(t)

	u := models.NewUser("  Lifter@Example.com ", "hash")
	if err := db.CreateUser(u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := db.GetUserByEmail("LIFTER@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("ID mismatch: got %v, want %v", got.ID, u.ID)
	}
	if got.Email != "lifter@example.com" {
		t.Errorf("Email = %q, want normalized", got.Email)
	}
	if got.PasswordHash != "hash" {
		t.Errorf("PasswordHash = %q, want 'hash'", got.PasswordHash)
	}
	if got.Onboarded {
		t.Error("new user should not be onboarded")
	}

	byID, err := db.GetUser(u.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if byID.Email != got.Email {
		t.Errorf("GetUser email = %q, want %q", byID.Email, got.Email)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)

	if err := db.CreateUser(models.NewUser("a@example.com", "h")); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	err := db.CreateUser(models.NewUser("A@example.com", "h"))
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetUser(uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveProfileMarksOnboarded(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)

	if _, err := db.GetProfile(u.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before onboarding, got %v", err)
	}

	p := testProfile()
	if err := db.SaveProfile(u.ID, p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	got, err := db.GetProfile(u.ID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got.UserID != u.ID {
		t.Errorf("UserID = %v, want %v", got.UserID, u.ID)
	}
	if got.TrainingSplit != models.SplitPPL {
		t.Errorf("TrainingSplit = %q, want ppl", got.TrainingSplit)
	}
	if len(got.Equipment) != 2 {
		t.Errorf("Equipment = %v, want 2 items", got.Equipment)
	}

	reloaded, _ := db.GetUser(u.ID)
	if !reloaded.Onboarded {
		t.Error("expected user to be onboarded after SaveProfile")
	}

	onboarded, err := db.ListOnboardedUsers()
	if err != nil {
		t.Fatalf("ListOnboardedUsers failed: %v", err)
	}
	if len(onboarded) != 1 || onboarded[0].ID != u.ID {
		t.Errorf("ListOnboardedUsers = %v, want only %v", onboarded, u.ID)
	}
}

func TestSaveProfileReplaces(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)

	p := testProfile()
	if err := db.SaveProfile(u.ID, p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	p.TrainingSplit = models.SplitFullBody
	if err := db.SaveProfile(u.ID, p); err != nil {
		t.Fatalf("second SaveProfile failed: %v", err)
	}

	got, _ := db.GetProfile(u.ID)
	if got.TrainingSplit != models.SplitFullBody {
		t.Errorf("TrainingSplit = %q, want full_body", got.TrainingSplit)
	}
}

func TestSaveProfileUnknownUser(t *testing.T) {
	db := setupTestDB(t)

	err := db.SaveProfile(uuid.New(), testProfile())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveAndGetWorkoutPlan(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)

	p := testWorkoutPlan(u.ID, "2026-03-02")
	if err := db.SaveWorkoutPlan(p); err != nil {
		t.Fatalf("SaveWorkoutPlan failed: %v", err)
	}

	got, err := db.GetWorkoutPlanByDate(u.ID, "2026-03-02")
	if err != nil {
		t.Fatalf("GetWorkoutPlanByDate failed: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("ID mismatch: got %v, want %v", got.ID, p.ID)
	}
	if got.DayName != "Push Day" {
		t.Errorf("DayName = %q, want Push Day", got.DayName)
	}
	if len(got.Exercises) != 2 {
		t.Fatalf("Exercises = %d, want 2", len(got.Exercises))
	}
	if got.Exercises[1].Order != 2 || len(got.Exercises[1].Sets) != 3 {
		t.Errorf("second exercise = %+v", got.Exercises[1])
	}
	if got.Completed || got.CompletedAt != nil {
		t.Error("new plan should not be completed")
	}
	if !got.GeneratedAt.Equal(p.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", got.GeneratedAt, p.GeneratedAt)
	}

	byID, err := db.GetWorkoutPlan(u.ID, p.ID)
	if err != nil {
		t.Fatalf("GetWorkoutPlan failed: %v", err)
	}
	if byID.Date != "2026-03-02" {
		t.Errorf("Date = %q", byID.Date)
	}
}

func TestSaveWorkoutPlanReplacesSameDate(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)

	first := testWorkoutPlan(u.ID, "2026-03-02")
	if err := db.SaveWorkoutPlan(first); err != nil {
		t.Fatalf("SaveWorkoutPlan failed: %v", err)
	}

	second := testWorkoutPlan(u.ID, "2026-03-02")
	second.DayName = "Pull Day"
	if err := db.SaveWorkoutPlan(second); err != nil {
		t.Fatalf("second SaveWorkoutPlan failed: %v", err)
	}

	plans, err := db.ListWorkoutPlans(u.ID, 0)
	if err != nil {
		t.Fatalf("ListWorkoutPlans failed: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("expected 1 plan after replace, got %d", len(plans))
	}
	if plans[0].DayName != "Pull Day" {
		t.Errorf("DayName = %q, want Pull Day", plans[0].DayName)
	}

	if _, err := db.GetWorkoutPlan(u.ID, first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("replaced plan should be gone, got %v", err)
	}
}

func TestWorkoutPlanScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db)
	other := models.NewUser("other@example.com", "h")
	if err := db.CreateUser(other); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	p := testWorkoutPlan(owner.ID, "2026-03-02")
	if err := db.SaveWorkoutPlan(p); err != nil {
		t.Fatalf("SaveWorkoutPlan failed: %v", err)
	}

	if _, err := db.GetWorkoutPlan(other.ID, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for other user, got %v", err)
	}
}

func TestListWorkoutPlansOrderAndLimit(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)

	for _, date := range []string{"2026-03-01", "2026-03-03", "2026-03-02"} {
		if err := db.SaveWorkoutPlan(testWorkoutPlan(u.ID, date)); err != nil {
			t.Fatalf("SaveWorkoutPlan(%s) failed: %v", date, err)
		}
	}

	plans, err := db.ListWorkoutPlans(u.ID, 2)
	if err != nil {
		t.Fatalf("ListWorkoutPlans failed: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(plans))
	}
	if plans[0].Date != "2026-03-03" || plans[1].Date != "2026-03-02" {
		t.Errorf("order = %s, %s; want newest first", plans[0].Date, plans[1].Date)
	}
}

func TestUpdateWorkoutPlan(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)

	p := testWorkoutPlan(u.ID, "2026-03-02")
	if err := db.SaveWorkoutPlan(p); err != nil {
		t.Fatalf("SaveWorkoutPlan failed: %v", err)
	}

	weight := 65.0
	p.ApplyActuals([]models.ExerciseActuals{{
		ExerciseIndex: 0,
		Sets:          []models.SetActual{{SetNumber: 1, ActualWeight: &weight}},
	}})
	p.MarkCompleted(time.Now())
	if err := db.UpdateWorkoutPlan(p); err != nil {
		t.Fatalf("UpdateWorkoutPlan failed: %v", err)
	}

	got, _ := db.GetWorkoutPlan(u.ID, p.ID)
	if !got.Completed || got.CompletedAt == nil {
		t.Error("expected plan to be completed")
	}
	set := got.Exercises[0].Sets[0]
	if set.ActualWeight == nil || *set.ActualWeight != 65 || !set.Completed {
		t.Errorf("set actuals not persisted: %+v", set)
	}
}

func TestUpdateWorkoutPlanNotFound(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)

	err := db.UpdateWorkoutPlan(testWorkoutPlan(u.ID, "2026-03-02"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveAndGetMealPlan(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)

	p := testMealPlan(u.ID, "2026-03-02")
	if err := db.SaveMealPlan(p); err != nil {
		t.Fatalf("SaveMealPlan failed: %v", err)
	}

	got, err := db.GetMealPlanByDate(u.ID, "2026-03-02")
	if err != nil {
		t.Fatalf("GetMealPlanByDate failed: %v", err)
	}
	if len(got.Meals) != 2 {
		t.Fatalf("Meals = %d, want 2", len(got.Meals))
	}
	if got.TotalCalories != 2500 {
		t.Errorf("TotalCalories = %v, want stored total 2500", got.TotalCalories)
	}
	if got.Meals[0].Ingredients[0] != "oats" {
		t.Errorf("Ingredients = %v", got.Meals[0].Ingredients)
	}

	got.MarkLogged(time.Now())
	if err := db.UpdateMealPlan(got); err != nil {
		t.Fatalf("UpdateMealPlan failed: %v", err)
	}
	logged, _ := db.GetMealPlan(u.ID, p.ID)
	if !logged.Logged || logged.LoggedAt == nil {
		t.Error("expected meal plan to be logged")
	}
}

func TestSaveMealPlanReplacesSameDate(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)

	if err := db.SaveMealPlan(testMealPlan(u.ID, "2026-03-02")); err != nil {
		t.Fatalf("SaveMealPlan failed: %v", err)
	}
	second := testMealPlan(u.ID, "2026-03-02")
	second.TotalCalories = 1800
	if err := db.SaveMealPlan(second); err != nil {
		t.Fatalf("second SaveMealPlan failed: %v", err)
	}

	plans, _ := db.ListMealPlans(u.ID, 0)
	if len(plans) != 1 {
		t.Fatalf("expected 1 plan, got %d", len(plans))
	}
	if plans[0].TotalCalories != 1800 {
		t.Errorf("TotalCalories = %v, want 1800", plans[0].TotalCalories)
	}
}

func TestGetMealPlanByDateNotFound(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)

	_, err := db.GetMealPlanByDate(u.ID, "2026-03-02")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCheckIns(t *testing.T) {
	db := setupTestDB(t)
	u := createTestUser(t, db)

	older := models.NewCheckIn(u.ID, "2026-03-01").WithWeight(81.5).WithNotes("tired")
	older.EnergyLevel = 2
	newer := models.NewCheckIn(u.ID, "2026-03-02")
	newer.WorkoutCompleted = models.WorkoutCompleted
	sameDay := models.NewCheckIn(u.ID, "2026-03-02")
	sameDay.SubmittedAt = newer.SubmittedAt.Add(time.Minute)

	for _, c := range []*models.CheckIn{older, newer, sameDay} {
		if err := db.CreateCheckIn(c); err != nil {
			t.Fatalf("CreateCheckIn failed: %v", err)
		}
	}

	all, err := db.ListCheckIns(u.ID, 0)
	if err != nil {
		t.Fatalf("ListCheckIns failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 check-ins on append, got %d", len(all))
	}
	if all[0].ID != sameDay.ID || all[2].ID != older.ID {
		t.Errorf("unexpected order: %v, %v, %v", all[0].Date, all[1].Date, all[2].Date)
	}
	last := all[2]
	if last.Weight == nil || *last.Weight != 81.5 {
		t.Errorf("Weight = %v, want 81.5", last.Weight)
	}
	if last.Notes == nil || *last.Notes != "tired" {
		t.Errorf("Notes = %v, want 'tired'", last.Notes)
	}
	if last.ActualCalories != nil {
		t.Errorf("ActualCalories = %v, want nil", last.ActualCalories)
	}

	limited, _ := db.ListCheckIns(u.ID, 1)
	if len(limited) != 1 {
		t.Errorf("expected 1 check-in with limit, got %d", len(limited))
	}

	if err := db.CreateCheckIn(older); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate on reused ID, got %v", err)
	}
}

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "coach-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	dbPath := filepath.Join(tmpDir, "coach.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func createTestUser(t *testing.T, r Repository) *models.User {
	t.Helper()

	u := models.NewUser("lifter@example.com", "hash")
	if err := r.CreateUser(u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return u
}

func testProfile() *models.Profile {
	return &models.Profile{
		Name:            "Sam",
		Age:             31,
		Weight:          80,
		Height:          180,
		Gender:          models.GenderOther,
		ExperienceLevel: models.ExperienceIntermediate,
		TrainingDays:    4,
		TrainingSplit:   models.SplitPPL,
		Goal:            models.GoalStrength,
		TargetCalories:  2600,
		Macros:          models.Macros{Protein: 180, Carbs: 280, Fats: 80},
		Equipment:       []string{"barbell", "dumbbells"},
	}
}

func testWorkoutPlan(userID uuid.UUID, date string) *models.WorkoutPlan {
	p := models.NewWorkoutPlan(userID, date)
	p.DayName = "Push Day"
	p.EstimatedDuration = 60
	p.AIInsight = "Keep the bar path tight."
	p.Exercises = []models.WorkoutExercise{
		{
			ID:           uuid.New(),
			ExerciseID:   "bench-press",
			ExerciseName: "Bench Press",
			MuscleGroup:  "chest",
			Sets:         []models.WorkoutSet{{SetNumber: 1, Reps: 8, Weight: 60}, {SetNumber: 2, Reps: 8, Weight: 60}},
			Order:        1,
		},
		{
			ID:           uuid.New(),
			ExerciseID:   "overhead-press",
			ExerciseName: "Overhead Press",
			Sets: []models.WorkoutSet{
				{SetNumber: 1, Reps: 10, Weight: 40},
				{SetNumber: 2, Reps: 10, Weight: 40},
				{SetNumber: 3, Reps: 10, Weight: 40},
			},
			Order: 2,
		},
	}
	return p
}

func testMealPlan(userID uuid.UUID, date string) *models.MealPlan {
	p := models.NewMealPlan(userID, date)
	p.Meals = []models.Meal{
		{ID: uuid.New(), Name: "Oatmeal", MealType: models.MealBreakfast, Calories: 500, Protein: 30, Ingredients: []string{"oats", "whey"}},
		{ID: uuid.New(), Name: "Chicken and Rice", MealType: models.MealLunch, Calories: 800, Protein: 60},
	}
	p.TotalCalories = 2500
	p.TotalProtein = 180
	p.TotalCarbs = 280
	p.TotalFats = 80
	return p
}
