// ABOUTME: CLI command for copying all data between storage backends.
// ABOUTME: Typically Charm KV to SQLite/libSQL or the reverse.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/coach/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy all data between storage backends",
	Long: `Copy every account, profile, plan, and check-in from one backend to another.

BACKENDS:

  sqlite    The local SQLite file in the data directory
  libsql    The libSQL/Turso database at COACH_DATABASE_URL
  charm     Charm KV

IMPORTANT:

  - The destination must be empty
  - Run with --dry-run first to see what would be migrated

USAGE:

  coach migrate --from charm --to sqlite --dry-run
  coach migrate --from charm --to sqlite`,
	Annotations: map[string]string{skipStorage: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %s", migrateFrom)
		}

		src, err := openBackend(migrateFrom)
		if err != nil {
			return fmt.Errorf("open source: %w", err)
		}
		defer src.Close()

		out := cmd.OutOrStdout()
		if migrateDryRun {
			users, err := src.ListUsers()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, color.YellowString("Dry run mode - no changes will be made"))
			fmt.Fprintf(out, "Would migrate %d accounts from %s to %s.\n", len(users), migrateFrom, migrateTo)
			return nil
		}

		dst, err := openBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("open destination: %w", err)
		}
		defer dst.Close()

		existing, err := dst.ListUsers()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("destination %s already has %d accounts", migrateTo, len(existing))
		}

		sum, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		fmt.Fprintln(out, color.GreenString("✓ Migrated %s to %s", migrateFrom, migrateTo))
		fmt.Fprintf(out, "  Accounts: %d\n", sum.Users)
		fmt.Fprintf(out, "  Profiles: %d\n", sum.Profiles)
		fmt.Fprintf(out, "  Workout plans: %d\n", sum.WorkoutPlans)
		fmt.Fprintf(out, "  Meal plans: %d\n", sum.MealPlans)
		fmt.Fprintf(out, "  Check-ins: %d\n", sum.CheckIns)
		return nil
	},
}

// openBackend opens the named backend using the loaded config for everything else.
func openBackend(name string) (storage.Repository, error) {
	c := *cfg
	c.Backend = name
	return c.OpenStorage()
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "charm", "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "sqlite", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
