// ABOUTME: Orchestrates profile lookup, prompting, parsing, assembly, and persistence.
// ABOUTME: Identical concurrent requests share one run; caller cancellation does not abort a started run.
package coach

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/llm"
	"github.com/harperreed/coach/internal/metrics"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCheckInHistory = 7
	DefaultWorkoutHistory = 5
	DefaultPlanMaxTokens  = 3000
)

// PlanType selects which plans a generation run produces.
type PlanType string

const (
	PlanBoth    PlanType = "both"
	PlanWorkout PlanType = "workout"
	PlanMeal    PlanType = "meal"
)

// ParsePlanType accepts "", "both", "workout", or "meal". Empty means both.
func ParsePlanType(s string) (PlanType, error) {
	switch PlanType(s) {
	case "", PlanBoth:
		return PlanBoth, nil
	case PlanWorkout, PlanMeal:
		return PlanType(s), nil
	default:
		return "", fmt.Errorf("unknown plan type: %s", s)
	}
}

// Plans is the result of a generation run. Unrequested plans are nil.
type Plans struct {
	WorkoutPlan *models.WorkoutPlan `json:"workoutPlan,omitempty"`
	MealPlan    *models.MealPlan    `json:"mealPlan,omitempty"`
}

// Generator produces and stores plans for one account at a time.
type Generator struct {
	repo    storage.Repository
	gateway llm.Gateway
	log     *zap.Logger
	metrics *metrics.Metrics

	now            func() time.Time
	checkInHistory int
	workoutHistory int
	maxTokens      int

	flight singleflight.Group
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock replaces time.Now, which decides today and tomorrow.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithHistory sets how many check-ins and workouts feed the prompts.
func WithHistory(checkIns, workouts int) Option {
	return func(g *Generator) {
		if checkIns > 0 {
			g.checkInHistory = checkIns
		}
		if workouts > 0 {
			g.workoutHistory = workouts
		}
	}
}

// WithMaxTokens caps the model reply length for plan generation.
func WithMaxTokens(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxTokens = n
		}
	}
}

// NewGenerator wires a Generator. log and m may be nil.
func NewGenerator(repo storage.Repository, gateway llm.Gateway, log *zap.Logger, m *metrics.Metrics, opts ...Option) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Generator{
		repo:           repo,
		gateway:        gateway,
		log:            log,
		metrics:        m,
		now:            time.Now,
		checkInHistory: DefaultCheckInHistory,
		workoutHistory: DefaultWorkoutHistory,
		maxTokens:      DefaultPlanMaxTokens,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Today returns the generator's current calendar day.
func (g *Generator) Today() string {
	return models.Today(g.now())
}

// Tomorrow returns the calendar day after Today.
func (g *Generator) Tomorrow() string {
	return models.Tomorrow(g.now())
}

// Generate runs the requested pipelines for date; empty date means tomorrow.
func (g *Generator) Generate(ctx context.Context, userID uuid.UUID, date string, t PlanType) (*Plans, error) {
	switch t {
	case PlanWorkout:
		w, err := g.GenerateWorkout(ctx, userID, date)
		if err != nil {
			return nil, err
		}
		return &Plans{WorkoutPlan: w}, nil
	case PlanMeal:
		m, err := g.GenerateMeal(ctx, userID, date)
		if err != nil {
			return nil, err
		}
		return &Plans{MealPlan: m}, nil
	default:
		return g.GenerateBoth(ctx, userID, date)
	}
}

// GenerateToday produces both plans for the current day.
func (g *Generator) GenerateToday(ctx context.Context, userID uuid.UUID) (*Plans, error) {
	return g.GenerateBoth(ctx, userID, g.Today())
}

// GenerateTomorrow produces both plans for the next day.
func (g *Generator) GenerateTomorrow(ctx context.Context, userID uuid.UUID) (*Plans, error) {
	return g.GenerateBoth(ctx, userID, g.Tomorrow())
}

// GenerateBoth runs the workout and meal pipelines concurrently and waits for
// both. A failure in one does not cancel the other; the first error is returned.
func (g *Generator) GenerateBoth(ctx context.Context, userID uuid.UUID, date string) (*Plans, error) {
	date = resolveDate(date, g.now())
	plans := &Plans{}

	var eg errgroup.Group
	eg.Go(func() error {
		w, err := g.GenerateWorkout(ctx, userID, date)
		plans.WorkoutPlan = w
		return err
	})
	eg.Go(func() error {
		m, err := g.GenerateMeal(ctx, userID, date)
		plans.MealPlan = m
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}

// GenerateWorkout produces and stores the workout plan for date.
func (g *Generator) GenerateWorkout(ctx context.Context, userID uuid.UUID, date string) (*models.WorkoutPlan, error) {
	date = resolveDate(date, g.now())
	ctx = context.WithoutCancel(ctx)

	v, err, _ := g.flight.Do(flightKey(userID, date, PlanWorkout), func() (any, error) {
		return g.generateWorkout(ctx, userID, date)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.WorkoutPlan), nil
}

// GenerateMeal produces and stores the meal plan for date.
func (g *Generator) GenerateMeal(ctx context.Context, userID uuid.UUID, date string) (*models.MealPlan, error) {
	date = resolveDate(date, g.now())
	ctx = context.WithoutCancel(ctx)

	v, err, _ := g.flight.Do(flightKey(userID, date, PlanMeal), func() (any, error) {
		return g.generateMeal(ctx, userID, date)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.MealPlan), nil
}

func flightKey(userID uuid.UUID, date string, t PlanType) string {
	return userID.String() + "|" + date + "|" + string(t)
}

func (g *Generator) generateWorkout(ctx context.Context, userID uuid.UUID, date string) (plan *models.WorkoutPlan, err error) {
	const op = "generate workout plan"
	start := time.Now()
	defer func() { g.observe(PlanWorkout, start, err) }()

	profile, err := g.loadProfile(op, userID)
	if err != nil {
		return nil, err
	}

	checkIns, err := g.repo.ListCheckIns(userID, g.checkInHistory)
	if err != nil {
		return nil, wrap(KindStorage, op, err)
	}
	recent, err := g.repo.ListWorkoutPlans(userID, g.workoutHistory)
	if err != nil {
		return nil, wrap(KindStorage, op, err)
	}

	last := ""
	if len(recent) > 0 {
		last = recent[0].DayName
	}
	dayName := NextDayName(profile.TrainingSplit, last)

	prompt := WorkoutPrompt(dayName, BuildWorkoutContext(recent), BuildCheckInContext(checkIns))
	raw, err := g.complete(ctx, op, SystemPrompt(profile), prompt)
	if err != nil {
		return nil, err
	}

	draft, err := ParseWorkout(raw)
	if err != nil {
		g.log.Warn("model returned malformed workout plan",
			zap.String("user_id", userID.String()),
			zap.String("raw", raw),
			zap.Error(err))
		return nil, wrap(KindMalformedPlan, op, err)
	}
	if draft.DayName == "" {
		draft.DayName = dayName
	}

	plan, err = AssembleWorkout(userID, date, draft, g.now())
	if err != nil {
		return nil, wrap(KindIncompletePlan, op, err)
	}

	if err := g.repo.SaveWorkoutPlan(plan); err != nil {
		return nil, wrap(KindStorage, op, err)
	}

	g.log.Info("workout plan generated",
		zap.String("user_id", userID.String()),
		zap.String("date", plan.Date),
		zap.String("day_name", plan.DayName),
		zap.Int("exercises", len(plan.Exercises)),
		zap.Duration("elapsed", time.Since(start)))

	return plan, nil
}

func (g *Generator) generateMeal(ctx context.Context, userID uuid.UUID, date string) (plan *models.MealPlan, err error) {
	const op = "generate meal plan"
	start := time.Now()
	defer func() { g.observe(PlanMeal, start, err) }()

	profile, err := g.loadProfile(op, userID)
	if err != nil {
		return nil, err
	}

	checkIns, err := g.repo.ListCheckIns(userID, g.checkInHistory)
	if err != nil {
		return nil, wrap(KindStorage, op, err)
	}

	prompt := MealPrompt(profile.TargetCalories, profile.Macros, BuildCheckInContext(checkIns))
	raw, err := g.complete(ctx, op, SystemPrompt(profile), prompt)
	if err != nil {
		return nil, err
	}

	draft, err := ParseMeal(raw)
	if err != nil {
		g.log.Warn("model returned malformed meal plan",
			zap.String("user_id", userID.String()),
			zap.String("raw", raw),
			zap.Error(err))
		return nil, wrap(KindMalformedPlan, op, err)
	}

	plan, err = AssembleMeal(userID, date, draft, g.now())
	if err != nil {
		return nil, wrap(KindIncompletePlan, op, err)
	}

	if err := g.repo.SaveMealPlan(plan); err != nil {
		return nil, wrap(KindStorage, op, err)
	}

	g.log.Info("meal plan generated",
		zap.String("user_id", userID.String()),
		zap.String("date", plan.Date),
		zap.Int("meals", len(plan.Meals)),
		zap.Float64("calories", plan.TotalCalories),
		zap.Duration("elapsed", time.Since(start)))

	return plan, nil
}

func (g *Generator) loadProfile(op string, userID uuid.UUID) (*models.Profile, error) {
	profile, err := g.repo.GetProfile(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, wrap(KindProfileMissing, op, &ProfileMissingError{UserID: userID})
		}
		return nil, wrap(KindStorage, op, err)
	}
	return profile, nil
}

func (g *Generator) complete(ctx context.Context, op, system, prompt string) (string, error) {
	resp, err := g.gateway.Complete(ctx, llm.Request{
		System:    system,
		Messages:  []llm.Message{{Role: "user", Content: prompt}},
		MaxTokens: g.maxTokens,
	})
	if err != nil {
		return "", wrap(KindGateway, op, err)
	}
	g.metrics.AddTokens(resp.Usage.InputTokens, resp.Usage.OutputTokens)
	return resp.Content, nil
}

func (g *Generator) observe(t PlanType, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(KindOf(err))
	}
	g.metrics.ObserveGeneration(string(t), outcome, time.Since(start))
}
