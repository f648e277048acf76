// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server bound to one account.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for one account.

The server communicates via stdin/stdout. Logs go to stderr.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "coach": {
        "command": "coach",
        "args": ["mcp", "--email", "you@example.com"]
      }
    }
  }

AVAILABLE TOOLS:

  get_profile          Read the training and nutrition profile
  generate_plans       Generate workout and/or meal plans for a date
  get_workout_plan     Read the workout plan for a date
  get_meal_plan        Read the meal plan for a date
  complete_workout     Mark a workout completed
  log_actual_weights   Record lifted weights and reps
  add_checkin          Record a daily check-in
  list_checkins        List recent check-ins

AVAILABLE RESOURCES:

  coach://today        Today's plans and check-ins
  coach://history      Recent plans and check-ins`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := requireUser()
		if err != nil {
			return err
		}

		// Without a model key the read and logging tools still work.
		var gen *coach.Generator
		if gw, err := cfg.OpenGateway(); err != nil {
			logger.Warn("plan generation disabled", zap.Error(err))
		} else {
			gen = coach.NewGenerator(repo, gw, logger, nil)
		}

		server, err := mcp.NewServer(repo, gen, u.ID)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	addEmailFlag(mcpCmd)
	rootCmd.AddCommand(mcpCmd)
}
