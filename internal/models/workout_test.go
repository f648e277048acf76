// ABOUTME: Tests for WorkoutPlan models.
// ABOUTME: Validates constructors, completion stamping, and actual-weight merging.
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func samplePlan() *WorkoutPlan {
	p := NewWorkoutPlan(uuid.New(), "2025-01-31")
	p.DayName = "Push Day"
	p.Exercises = []WorkoutExercise{
		{
			ID:           uuid.New(),
			ExerciseID:   "bench-press",
			ExerciseName: "Bench Press",
			Order:        1,
			Sets: []WorkoutSet{
				{SetNumber: 1, Reps: 8, Weight: 80},
				{SetNumber: 2, Reps: 8, Weight: 80},
			},
		},
		{
			ID:           uuid.New(),
			ExerciseID:   "overhead-press",
			ExerciseName: "Overhead Press",
			Order:        2,
			Sets: []WorkoutSet{
				{SetNumber: 1, Reps: 10, Weight: 40},
			},
		},
	}
	return p
}

func TestNewWorkoutPlan(t *testing.T) {
	userID := uuid.New()
	p := NewWorkoutPlan(userID, "2025-01-31")

	if p.ID == uuid.Nil {
		t.Error("expected UUID to be set")
	}
	if p.UserID != userID {
		t.Error("expected UserID to match")
	}
	if p.Date != "2025-01-31" {
		t.Errorf("Date = %s, want 2025-01-31", p.Date)
	}
	if p.Completed {
		t.Error("expected new plan to be incomplete")
	}
	if p.GeneratedAt.IsZero() {
		t.Error("expected GeneratedAt to be set")
	}
}

func TestMarkCompletedTwice(t *testing.T) {
	p := samplePlan()
	first := time.Now()
	p.MarkCompleted(first)
	second := first.Add(time.Second)
	p.MarkCompleted(second)

	if !p.Completed {
		t.Fatal("expected plan to be completed")
	}
	if p.CompletedAt == nil || p.CompletedAt.Before(first) {
		t.Errorf("CompletedAt = %v, want no earlier than %v", p.CompletedAt, first)
	}
}

func TestApplyActuals(t *testing.T) {
	p := samplePlan()
	weight := 82.5
	reps := 7

	updated := p.ApplyActuals([]ExerciseActuals{
		{ExerciseIndex: 0, Sets: []SetActual{
			{SetNumber: 1, ActualWeight: &weight, ActualReps: &reps},
			{SetNumber: 9, ActualWeight: &weight},
		}},
		{ExerciseIndex: 5, Sets: []SetActual{{SetNumber: 1, ActualWeight: &weight}}},
	})

	if updated != 1 {
		t.Fatalf("updated = %d, want 1", updated)
	}
	set := p.Exercises[0].Sets[0]
	if set.ActualWeight == nil || *set.ActualWeight != 82.5 {
		t.Errorf("ActualWeight = %v, want 82.5", set.ActualWeight)
	}
	if set.ActualReps == nil || *set.ActualReps != 7 {
		t.Errorf("ActualReps = %v, want 7", set.ActualReps)
	}
	if !set.Completed {
		t.Error("expected touched set to be completed")
	}
	if p.Exercises[0].Sets[1].Completed {
		t.Error("expected untouched set to stay incomplete")
	}
}

func TestApplyActualsKeepsRepsWhenOnlyWeightLogged(t *testing.T) {
	p := samplePlan()
	weight := 42.5

	p.ApplyActuals([]ExerciseActuals{
		{ExerciseIndex: 1, Sets: []SetActual{{SetNumber: 1, ActualWeight: &weight}}},
	})

	set := p.Exercises[1].Sets[0]
	if set.ActualReps != nil {
		t.Errorf("ActualReps = %v, want nil", *set.ActualReps)
	}
	if set.Reps != 10 {
		t.Errorf("planned Reps changed to %d", set.Reps)
	}
}
