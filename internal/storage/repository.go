// ABOUTME: Repository interface for coach data storage.
// ABOUTME: Defines the contract for accounts, profiles, plans, and check-ins.
package storage

import (
	"errors"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist for the account.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique key (account email) is taken.
	ErrDuplicate = errors.New("already exists")
)

// DefaultRecentLimit is the list size used when a caller passes no limit.
const DefaultRecentLimit = 7

// Repository defines the storage interface for coach data.
// Every plan and check-in operation is scoped to the owning account.
type Repository interface {
	// Account operations
	CreateUser(u *models.User) error
	GetUser(id uuid.UUID) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	ListUsers() ([]*models.User, error)
	ListOnboardedUsers() ([]*models.User, error)

	// Profile operations
	SaveProfile(userID uuid.UUID, p *models.Profile) error
	GetProfile(userID uuid.UUID) (*models.Profile, error)

	// Workout plan operations; Save replaces any plan on the same date.
	SaveWorkoutPlan(p *models.WorkoutPlan) error
	GetWorkoutPlan(userID, id uuid.UUID) (*models.WorkoutPlan, error)
	GetWorkoutPlanByDate(userID uuid.UUID, date string) (*models.WorkoutPlan, error)
	ListWorkoutPlans(userID uuid.UUID, limit int) ([]*models.WorkoutPlan, error)
	UpdateWorkoutPlan(p *models.WorkoutPlan) error

	// Meal plan operations; Save replaces any plan on the same date.
	SaveMealPlan(p *models.MealPlan) error
	GetMealPlan(userID, id uuid.UUID) (*models.MealPlan, error)
	GetMealPlanByDate(userID uuid.UUID, date string) (*models.MealPlan, error)
	ListMealPlans(userID uuid.UUID, limit int) ([]*models.MealPlan, error)
	UpdateMealPlan(p *models.MealPlan) error

	// Check-in operations; Create returns ErrDuplicate for a reused ID.
	CreateCheckIn(c *models.CheckIn) error
	ListCheckIns(userID uuid.UUID, limit int) ([]*models.CheckIn, error)

	// Export/Import
	GetAllData(userID uuid.UUID) (*ExportData, error)
	ImportData(userID uuid.UUID, data *ExportData) error

	// Lifecycle
	Close() error
}
