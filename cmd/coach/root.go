// ABOUTME: Root Cobra command for the coach CLI.
// ABOUTME: Loads config and opens storage and logging in PersistentPre/PostRunE.
package main

import (
	"errors"
	"fmt"

	"github.com/harperreed/coach/internal/config"
	"github.com/harperreed/coach/internal/logging"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// skipStorage marks commands that manage their own storage handles.
const skipStorage = "skip-storage"

var (
	cfg    *config.Config
	repo   storage.Repository
	logger *zap.Logger

	userEmail string
)

var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "AI fitness coach backend",
	Long: `Coach generates daily workout and meal plans with a hosted language model
and serves them to the mobile app over a JSON API.

QUICK START:

  $ export ANTHROPIC_API_KEY=sk-ant-...
  $ export JWT_SECRET=$(openssl rand -hex 32)
  $ coach serve                               # API on :8080 plus nightly generation
  $ coach user add me@example.com --password hunter22
  $ coach generate --email me@example.com     # Plans for tomorrow
  $ coach show --email me@example.com         # Today's plans

MCP INTEGRATION:

  Run 'coach mcp --email you@example.com' to expose one account's plans to
  an MCP-compatible assistant over stdio.

CONFIGURATION:

  ~/.config/coach/config.toml, a .env file in the working directory, and
  COACH_* environment variables, in increasing order of precedence.

DATA STORAGE:

  sqlite (default)  ~/.local/share/coach/coach.db
  libsql            COACH_DATABASE_URL
  charm             Charm KV, synced across devices`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}

		if needsStorage(cmd) {
			repo, err = cfg.OpenStorage()
			if err != nil {
				return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			_ = logger.Sync()
		}
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}

func needsStorage(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[skipStorage]; ok {
			return false
		}
	}
	return true
}

// requireUser resolves the --email flag to an account.
func requireUser() (*models.User, error) {
	if userEmail == "" {
		return nil, errors.New("--email is required")
	}
	return lookupUser(repo, userEmail)
}

func lookupUser(r storage.Repository, email string) (*models.User, error) {
	u, err := r.GetUserByEmail(models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("no account for %s", email)
		}
		return nil, err
	}
	return u, nil
}

// addEmailFlag registers the shared --email flag on commands that act on one account.
func addEmailFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&userEmail, "email", "e", "", "account email")
}
