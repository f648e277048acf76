// ABOUTME: Export and import of a single account's coaching data.
// ABOUTME: Supports JSON and YAML formats; shared by every Repository implementation.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export document.
const ExportVersion = "1.0"

// ExportData represents the full export format for one account.
type ExportData struct {
	Version      string                `json:"version" yaml:"version"`
	ExportedAt   time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool         string                `json:"tool" yaml:"tool"`
	Profile      *models.Profile       `json:"profile,omitempty" yaml:"profile,omitempty"`
	WorkoutPlans []*models.WorkoutPlan `json:"workout_plans" yaml:"workout_plans"`
	MealPlans    []*models.MealPlan    `json:"meal_plans" yaml:"meal_plans"`
	CheckIns     []*models.CheckIn     `json:"checkins" yaml:"checkins"`
}

// CollectExport gathers everything stored for userID.
// A missing profile is not an error; the export simply omits it.
func CollectExport(r Repository, userID uuid.UUID) (*ExportData, error) {
	profile, err := r.GetProfile(userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	workouts, err := r.ListWorkoutPlans(userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list workout plans: %w", err)
	}

	meals, err := r.ListMealPlans(userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list meal plans: %w", err)
	}

	checkIns, err := r.ListCheckIns(userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}

	return &ExportData{
		Version:      ExportVersion,
		ExportedAt:   time.Now(),
		Tool:         "coach",
		Profile:      profile,
		WorkoutPlans: workouts,
		MealPlans:    meals,
		CheckIns:     checkIns,
	}, nil
}

// ApplyImport writes an export into r under userID, which must already exist.
// Plans replace whatever is stored for their date; check-ins already present are skipped.
func ApplyImport(r Repository, userID uuid.UUID, data *ExportData) error {
	if data.Profile != nil {
		if err := r.SaveProfile(userID, data.Profile); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
	}

	for _, p := range data.WorkoutPlans {
		p.UserID = userID
		if err := r.SaveWorkoutPlan(p); err != nil {
			return fmt.Errorf("import workout plan %s: %w", p.Date, err)
		}
	}

	for _, p := range data.MealPlans {
		p.UserID = userID
		if err := r.SaveMealPlan(p); err != nil {
			return fmt.Errorf("import meal plan %s: %w", p.Date, err)
		}
	}

	for _, c := range data.CheckIns {
		c.UserID = userID
		if err := r.CreateCheckIn(c); err != nil {
			if errors.Is(err, ErrDuplicate) {
				continue
			}
			return fmt.Errorf("import check-in %s: %w", c.ID, err)
		}
	}

	return nil
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData(userID uuid.UUID) (*ExportData, error) {
	return CollectExport(d, userID)
}

// ImportData imports data from an export file.
func (d *DB) ImportData(userID uuid.UUID, data *ExportData) error {
	return ApplyImport(d, userID, data)
}

// ExportJSON exports all data for userID as indented JSON.
func ExportJSON(r Repository, userID uuid.UUID) ([]byte, error) {
	data, err := r.GetAllData(userID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports a compact YAML summary: plans by date with their headline numbers.
func ExportYAML(r Repository, userID uuid.UUID) ([]byte, error) {
	data, err := r.GetAllData(userID)
	if err != nil {
		return nil, err
	}

	doc := yamlExport{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Workouts:   make([]yamlWorkout, 0, len(data.WorkoutPlans)),
		Meals:      make([]yamlMealPlan, 0, len(data.MealPlans)),
		CheckIns:   make([]yamlCheckIn, 0, len(data.CheckIns)),
	}
	if data.Profile != nil {
		doc.Profile = &yamlProfile{
			Name:           data.Profile.Name,
			Goal:           string(data.Profile.Goal),
			TrainingSplit:  string(data.Profile.TrainingSplit),
			TrainingDays:   data.Profile.TrainingDays,
			TargetCalories: data.Profile.TargetCalories,
		}
	}

	for _, w := range data.WorkoutPlans {
		yw := yamlWorkout{
			Date:      w.Date,
			DayName:   w.DayName,
			Duration:  w.EstimatedDuration,
			Completed: w.Completed,
		}
		for _, ex := range w.Exercises {
			yw.Exercises = append(yw.Exercises, fmt.Sprintf("%s (%d sets)", ex.ExerciseName, len(ex.Sets)))
		}
		doc.Workouts = append(doc.Workouts, yw)
	}

	for _, m := range data.MealPlans {
		ym := yamlMealPlan{
			Date:     m.Date,
			Calories: m.TotalCalories,
			Protein:  m.TotalProtein,
			Logged:   m.Logged,
		}
		for _, meal := range m.Meals {
			ym.Meals = append(ym.Meals, meal.MealType+": "+meal.Name)
		}
		doc.Meals = append(doc.Meals, ym)
	}

	for _, c := range data.CheckIns {
		yc := yamlCheckIn{
			Date:      c.Date,
			Workout:   c.WorkoutCompleted,
			Nutrition: c.NutritionStatus,
			Energy:    c.EnergyLevel,
		}
		if c.Weight != nil {
			yc.Weight = *c.Weight
		}
		doc.CheckIns = append(doc.CheckIns, yc)
	}

	return yaml.Marshal(doc)
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(r Repository, userID uuid.UUID, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return r.ImportData(userID, &data)
}

type yamlExport struct {
	Version    string         `yaml:"version"`
	ExportedAt string         `yaml:"exported_at"`
	Tool       string         `yaml:"tool"`
	Profile    *yamlProfile   `yaml:"profile,omitempty"`
	Workouts   []yamlWorkout  `yaml:"workouts"`
	Meals      []yamlMealPlan `yaml:"meals"`
	CheckIns   []yamlCheckIn  `yaml:"checkins"`
}

type yamlProfile struct {
	Name           string `yaml:"name"`
	Goal           string `yaml:"goal"`
	TrainingSplit  string `yaml:"training_split"`
	TrainingDays   int    `yaml:"training_days"`
	TargetCalories int    `yaml:"target_calories,omitempty"`
}

type yamlWorkout struct {
	Date      string   `yaml:"date"`
	DayName   string   `yaml:"day_name"`
	Duration  int      `yaml:"duration_minutes,omitempty"`
	Completed bool     `yaml:"completed"`
	Exercises []string `yaml:"exercises,omitempty"`
}

type yamlMealPlan struct {
	Date     string   `yaml:"date"`
	Calories float64  `yaml:"calories"`
	Protein  float64  `yaml:"protein"`
	Logged   bool     `yaml:"logged"`
	Meals    []string `yaml:"meals,omitempty"`
}

type yamlCheckIn struct {
	Date      string  `yaml:"date"`
	Workout   string  `yaml:"workout,omitempty"`
	Nutrition string  `yaml:"nutrition,omitempty"`
	Energy    int     `yaml:"energy,omitempty"`
	Weight    float64 `yaml:"weight,omitempty"`
}
