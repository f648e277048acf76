// ABOUTME: Nightly job that pre-generates tomorrow's plans for onboarded accounts.
// ABOUTME: Runs on a cron schedule; overlapping runs are skipped, and existing plans are left alone.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/storage"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSpec runs every evening at 21:00 local time.
const DefaultSpec = "0 21 * * *"

// Summary counts what one run did.
type Summary struct {
	Date      string
	Users     int
	Generated int
	Skipped   int
	Failed    int
}

// Scheduler owns the cron runner and the pre-generation job.
type Scheduler struct {
	repo      storage.Repository
	generator *coach.Generator
	log       *zap.Logger
	cron      *cron.Cron
}

// New validates the cron expression and registers the job. Call Start to begin firing.
func New(repo storage.Repository, gen *coach.Generator, log *zap.Logger, spec string) (*Scheduler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if spec == "" {
		spec = DefaultSpec
	}

	s := &Scheduler{repo: repo, generator: gen, log: log}
	cl := cronLogger{log: log.Sugar()}
	s.cron = cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins firing in the background.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop halts the schedule and waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) run() {
	sum, err := s.RunOnce(context.Background())
	if err != nil {
		s.log.Error("pre-generation run failed", zap.Error(err))
		return
	}
	s.log.Info("pre-generation run finished",
		zap.String("date", sum.Date),
		zap.Int("users", sum.Users),
		zap.Int("generated", sum.Generated),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed))
}

// RunOnce generates whichever of tomorrow's plans each onboarded account lacks.
// A failure for one account is logged and does not stop the others.
func (s *Scheduler) RunOnce(ctx context.Context) (*Summary, error) {
	users, err := s.repo.ListOnboardedUsers()
	if err != nil {
		return nil, fmt.Errorf("list onboarded users: %w", err)
	}

	sum := &Summary{Date: s.generator.Tomorrow(), Users: len(users)}
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		planType, err := s.missingPlans(u.ID, sum.Date)
		if err != nil {
			sum.Failed++
			s.log.Warn("plan lookup failed", zap.String("user_id", u.ID.String()), zap.Error(err))
			continue
		}
		if planType == "" {
			sum.Skipped++
			continue
		}

		start := time.Now()
		if _, err := s.generator.Generate(ctx, u.ID, sum.Date, planType); err != nil {
			sum.Failed++
			s.log.Warn("pre-generation failed",
				zap.String("user_id", u.ID.String()),
				zap.String("kind", string(coach.KindOf(err))),
				zap.Error(err))
			continue
		}
		sum.Generated++
		s.log.Debug("pre-generated plans",
			zap.String("user_id", u.ID.String()),
			zap.String("type", string(planType)),
			zap.Duration("elapsed", time.Since(start)))
	}
	return sum, nil
}

// missingPlans returns the plan type still needed on date, or "" when both exist.
func (s *Scheduler) missingPlans(userID uuid.UUID, date string) (coach.PlanType, error) {
	_, err := s.repo.GetWorkoutPlanByDate(userID, date)
	hasWorkout, err := exists(err)
	if err != nil {
		return "", err
	}
	_, err = s.repo.GetMealPlanByDate(userID, date)
	hasMeal, err := exists(err)
	if err != nil {
		return "", err
	}

	switch {
	case hasWorkout && hasMeal:
		return "", nil
	case hasWorkout:
		return coach.PlanMeal, nil
	case hasMeal:
		return coach.PlanWorkout, nil
	default:
		return coach.PlanBoth, nil
	}
}

func exists(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// cronLogger routes cron's own logging through zap.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
