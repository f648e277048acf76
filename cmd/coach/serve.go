// ABOUTME: CLI command for running the HTTP API and nightly pre-generation.
// ABOUTME: Shuts down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harperreed/coach/internal/api"
	"github.com/harperreed/coach/internal/auth"
	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/metrics"
	"github.com/harperreed/coach/internal/scheduler"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	Long: `Run the JSON API used by the mobile app.

The server also pre-generates tomorrow's plans for every onboarded account on
the configured cron schedule (default "0 21 * * *"). Set schedule = "off" or
COACH_SCHEDULE=off to disable it.

REQUIRED ENVIRONMENT:

  JWT_SECRET           Signs bearer tokens
  ANTHROPIC_API_KEY    Or OPENAI_API_KEY with COACH_LLM_PROVIDER=openai

Prometheus metrics are served at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET is not set")
		}
		tokens, err := auth.NewTokens(cfg.JWTSecret)
		if err != nil {
			return err
		}
		gw, err := cfg.OpenGateway()
		if err != nil {
			return err
		}

		m := metrics.New()
		gen := coach.NewGenerator(repo, gw, logger, m)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.ScheduleEnabled() {
			sched, err := scheduler.New(repo, gen, logger, cfg.Schedule)
			if err != nil {
				return err
			}
			sched.Start()
			defer func() {
				stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				sched.Stop(stopCtx)
			}()
		}

		logger.Info("coach starting",
			zap.String("backend", cfg.GetBackend()),
			zap.String("provider", cfg.LLM.Provider),
			zap.Bool("schedule", cfg.ScheduleEnabled()))

		srv := api.NewServer(repo, gen, gw, tokens, logger, m)
		return srv.ListenAndServe(ctx, cfg.GetListen(), cfg.ReadTimeout(), cfg.WriteTimeout())
	},
}

var nightlyCmd = &cobra.Command{
	Use:   "nightly",
	Short: "Run one pre-generation pass now",
	Long: `Generate tomorrow's missing plans for every onboarded account, once.

Useful from an external scheduler when the built-in one is disabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := cfg.OpenGateway()
		if err != nil {
			return err
		}
		gen := coach.NewGenerator(repo, gw, logger, nil)
		sched, err := scheduler.New(repo, gen, logger, "")
		if err != nil {
			return err
		}

		sum, err := sched.RunOnce(cmd.Context())
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), sum)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(nightlyCmd)
}
