// ABOUTME: WorkoutPlan, WorkoutExercise, and WorkoutSet models.
// ABOUTME: A plan is date-scoped; sets carry planned values plus optional logged actuals.
package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutSet is one planned set, optionally with the actual values lifted.
type WorkoutSet struct {
	SetNumber    int      `json:"setNumber"`
	Reps         int      `json:"reps"`
	Weight       float64  `json:"weight"`
	ActualWeight *float64 `json:"actualWeight,omitempty"`
	ActualReps   *int     `json:"actualReps,omitempty"`
	RPE          *float64 `json:"rpe,omitempty"`
	Completed    bool     `json:"completed"`
}

// WorkoutExercise is an exercise within a specific plan.
type WorkoutExercise struct {
	ID           uuid.UUID    `json:"id"`
	ExerciseID   string       `json:"exerciseId"`
	ExerciseName string       `json:"exerciseName"`
	MuscleGroup  string       `json:"muscleGroup,omitempty"`
	Sets         []WorkoutSet `json:"sets"`
	Notes        string       `json:"notes,omitempty"`
	Order        int          `json:"order"`
}

// WorkoutPlan is the generated workout for one user on one calendar date.
type WorkoutPlan struct {
	ID                uuid.UUID         `json:"id"`
	UserID            uuid.UUID         `json:"userId"`
	Date              string            `json:"date"`
	DayName           string            `json:"dayName"`
	Exercises         []WorkoutExercise `json:"exercises"`
	EstimatedDuration int               `json:"estimatedDuration"`
	Completed         bool              `json:"completed"`
	CompletedAt       *time.Time        `json:"completedAt,omitempty"`
	AIInsight         string            `json:"aiInsight"`
	GeneratedAt       time.Time         `json:"generatedAt"`
}

// NewWorkoutPlan creates an empty plan for a user and date with a generated UUID.
func NewWorkoutPlan(userID uuid.UUID, date string) *WorkoutPlan {
	return &WorkoutPlan{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		GeneratedAt: time.Now(),
	}
}

// MarkCompleted flags the plan completed and stamps the completion time.
// Calling it again re-stamps with the later time.
func (w *WorkoutPlan) MarkCompleted(at time.Time) {
	w.Completed = true
	w.CompletedAt = &at
}

// SetActual is a logged actual for one set, addressed by set number.
type SetActual struct {
	SetNumber    int      `json:"setNumber"`
	ActualWeight *float64 `json:"actualWeight,omitempty"`
	ActualReps   *int     `json:"actualReps,omitempty"`
}

// ExerciseActuals addresses an exercise by its index in the plan.
type ExerciseActuals struct {
	ExerciseIndex int         `json:"exerciseIndex"`
	Sets          []SetActual `json:"sets"`
}

// ApplyActuals merges logged weights and reps into existing sets.
// Unknown exercise indexes and set numbers are skipped. Every touched set
// is marked completed. Returns the number of sets updated.
func (w *WorkoutPlan) ApplyActuals(entries []ExerciseActuals) int {
	updated := 0
	for _, entry := range entries {
		if entry.ExerciseIndex < 0 || entry.ExerciseIndex >= len(w.Exercises) {
			continue
		}
		ex := &w.Exercises[entry.ExerciseIndex]
		for _, actual := range entry.Sets {
			set := ex.findSet(actual.SetNumber)
			if set == nil {
				continue
			}
			if actual.ActualWeight != nil {
				v := *actual.ActualWeight
				set.ActualWeight = &v
			}
			if actual.ActualReps != nil {
				v := *actual.ActualReps
				set.ActualReps = &v
			}
			set.Completed = true
			updated++
		}
	}
	return updated
}

func (e *WorkoutExercise) findSet(setNumber int) *WorkoutSet {
	for i := range e.Sets {
		if e.Sets[i].SetNumber == setNumber {
			return &e.Sets[i]
		}
	}
	return nil
}
