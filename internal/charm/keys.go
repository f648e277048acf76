// ABOUTME: Key layout for coach records in the Charm KV store.
// ABOUTME: Plans are keyed by owner and date so a save replaces the plan for that day.
package charm

import (
	"github.com/google/uuid"
)

func userKey(id uuid.UUID) string {
	return UserPrefix + id.String()
}

func emailKey(email string) string {
	return EmailPrefix + email
}

func profileKey(userID uuid.UUID) string {
	return ProfilePrefix + userID.String()
}

// workoutKey is workout:<user>:<date>.
func workoutKey(userID uuid.UUID, date string) string {
	return workoutUserPrefix(userID) + date
}

func workoutUserPrefix(userID uuid.UUID) string {
	return WorkoutPrefix + userID.String() + ":"
}

// mealKey is meal:<user>:<date>.
func mealKey(userID uuid.UUID, date string) string {
	return mealUserPrefix(userID) + date
}

func mealUserPrefix(userID uuid.UUID) string {
	return MealPrefix + userID.String() + ":"
}

// checkInKey is checkin:<user>:<id>; several check-ins may share a date.
func checkInKey(userID, id uuid.UUID) string {
	return checkInUserPrefix(userID) + id.String()
}

func checkInUserPrefix(userID uuid.UUID) string {
	return CheckInPrefix + userID.String() + ":"
}
