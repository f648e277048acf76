// ABOUTME: Data migration between coach storage backends.
// ABOUTME: Copies accounts, profiles, plans, and check-ins from source to destination.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Users        int
	Profiles     int
	WorkoutPlans int
	MealPlans    int
	CheckIns     int
}

// MigrateData copies all data from src to dst storage.
// Accounts are created first so every plan has an owner in the destination.
// The destination should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	users, err := src.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("list source users: %w", err)
	}

	for _, u := range users {
		// Profile import re-marks the account onboarded.
		onboarded := u.Onboarded
		u.Onboarded = false
		if err := dst.CreateUser(u); err != nil {
			return nil, fmt.Errorf("create user %s: %w", u.Email, err)
		}
		u.Onboarded = onboarded
		summary.Users++

		data, err := src.GetAllData(u.ID)
		if err != nil {
			return nil, fmt.Errorf("read data for %s: %w", u.Email, err)
		}
		if err := dst.ImportData(u.ID, data); err != nil {
			return nil, fmt.Errorf("write data for %s: %w", u.Email, err)
		}

		if data.Profile != nil {
			summary.Profiles++
		}
		summary.WorkoutPlans += len(data.WorkoutPlans)
		summary.MealPlans += len(data.MealPlans)
		summary.CheckIns += len(data.CheckIns)
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
