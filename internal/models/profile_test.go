// ABOUTME: Tests for Profile and CheckIn validation plus date helpers.
// ABOUTME: Covers enum checks, rating bounds, and today/tomorrow formatting.
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIsValidSplit(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"ppl", true},
		{"upper_lower", true},
		{"full_body", true},
		{"bro_split", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidSplit(tt.input); got != tt.want {
				t.Errorf("IsValidSplit(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr bool
	}{
		{"empty profile", Profile{}, false},
		{"complete profile", Profile{
			Gender: GenderFemale, ExperienceLevel: ExperienceAdvanced,
			TrainingSplit: SplitUpperLower, Goal: GoalStrength, TrainingDays: 4,
		}, false},
		{"bad split", Profile{TrainingSplit: "bro"}, true},
		{"bad gender", Profile{Gender: "robot"}, true},
		{"bad goal", Profile{Goal: "cut"}, true},
		{"too many days", Profile{TrainingDays: 8}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckInValidate(t *testing.T) {
	valid := func() *CheckIn {
		c := NewCheckIn(uuid.New(), "2025-01-31")
		c.WorkoutCompleted = WorkoutPartial
		c.NutritionStatus = NutritionOnTrack
		c.SorenessLevel = SorenessHigh
		c.SleepQuality = 4
		c.EnergyLevel = 2
		return c
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid check-in failed: %v", err)
	}

	c := valid()
	c.SleepQuality = 6
	if err := c.Validate(); err == nil {
		t.Error("expected error for sleep quality 6")
	}

	c = valid()
	c.Date = "31-01-2025"
	if err := c.Validate(); err == nil {
		t.Error("expected error for bad date")
	}

	c = valid()
	c.SorenessLevel = "extreme"
	if err := c.Validate(); err == nil {
		t.Error("expected error for unknown soreness")
	}
}

func TestTodayTomorrow(t *testing.T) {
	now := time.Date(2024, 12, 31, 23, 30, 0, 0, time.Local)

	if got := Today(now); got != "2024-12-31" {
		t.Errorf("Today = %s, want 2024-12-31", got)
	}
	if got := Tomorrow(now); got != "2025-01-01" {
		t.Errorf("Tomorrow = %s, want 2025-01-01", got)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
