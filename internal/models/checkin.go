// ABOUTME: DailyCheckIn model for the evening status log.
// ABOUTME: Append-style; several check-ins may share a date.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Workout adherence values.
const (
	WorkoutCompleted = "completed"
	WorkoutPartial   = "partial"
	WorkoutSkipped   = "skipped"
)

// Nutrition adherence values.
const (
	NutritionOnTrack = "on_track"
	NutritionUnder   = "under"
	NutritionOver    = "over"
)

// Soreness levels.
const (
	SorenessLow    = "low"
	SorenessMedium = "medium"
	SorenessHigh   = "high"
)

// CheckIn is a daily subjective/objective status record.
type CheckIn struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"userId"`
	Date             string    `json:"date"`
	WorkoutCompleted string    `json:"workoutCompleted"`
	NutritionStatus  string    `json:"nutritionStatus"`
	ActualCalories   *float64  `json:"actualCalories,omitempty"`
	Weight           *float64  `json:"weight,omitempty"`
	SleepQuality     int       `json:"sleepQuality"`
	SorenessLevel    string    `json:"sorenessLevel"`
	EnergyLevel      int       `json:"energyLevel"`
	Notes            *string   `json:"notes,omitempty"`
	SubmittedAt      time.Time `json:"submittedAt"`
}

// NewCheckIn creates a CheckIn with a generated UUID and current timestamp.
func NewCheckIn(userID uuid.UUID, date string) *CheckIn {
	return &CheckIn{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		SubmittedAt: time.Now(),
	}
}

// WithWeight sets the body weight in kg.
func (c *CheckIn) WithWeight(kg float64) *CheckIn {
	c.Weight = &kg
	return c
}

// WithNotes sets free-form notes.
func (c *CheckIn) WithNotes(notes string) *CheckIn {
	c.Notes = &notes
	return c
}

// Validate checks the date, enumerations, and 1-5 ratings.
func (c *CheckIn) Validate() error {
	if _, err := ParseDate(c.Date); err != nil {
		return err
	}
	if !oneOf(c.WorkoutCompleted, WorkoutCompleted, WorkoutPartial, WorkoutSkipped) {
		return fmt.Errorf("unknown workout status: %s", c.WorkoutCompleted)
	}
	if !oneOf(c.NutritionStatus, NutritionOnTrack, NutritionUnder, NutritionOver) {
		return fmt.Errorf("unknown nutrition status: %s", c.NutritionStatus)
	}
	if !oneOf(c.SorenessLevel, SorenessLow, SorenessMedium, SorenessHigh) {
		return fmt.Errorf("unknown soreness level: %s", c.SorenessLevel)
	}
	if c.SleepQuality != 0 && (c.SleepQuality < 1 || c.SleepQuality > 5) {
		return fmt.Errorf("sleep quality must be between 1 and 5, got %d", c.SleepQuality)
	}
	if c.EnergyLevel != 0 && (c.EnergyLevel < 1 || c.EnergyLevel > 5) {
		return fmt.Errorf("energy level must be between 1 and 5, got %d", c.EnergyLevel)
	}
	return nil
}
