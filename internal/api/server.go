// ABOUTME: HTTP API server wiring: router, CORS, auth, logging, and metrics.
// ABOUTME: Every /api route except health, register, and login requires a bearer token.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/harperreed/coach/internal/auth"
	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/llm"
	"github.com/harperreed/coach/internal/metrics"
	"github.com/harperreed/coach/internal/storage"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const (
	// maxBodyBytes caps JSON request bodies.
	maxBodyBytes = 5 << 20

	shutdownTimeout = 10 * time.Second
)

// Server serves the coach JSON API.
type Server struct {
	repo      storage.Repository
	generator *coach.Generator
	gateway   llm.Gateway
	tokens    *auth.Tokens
	log       *zap.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewServer wires a Server. log and m may be nil.
func NewServer(repo storage.Repository, gen *coach.Generator, gw llm.Gateway, tokens *auth.Tokens, log *zap.Logger, m *metrics.Metrics) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		repo:      repo,
		generator: gen,
		gateway:   gw,
		tokens:    tokens,
		log:       log,
		metrics:   m,
		now:       time.Now,
	}
}

// Handler builds the full middleware chain around the router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.instrument)

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", s.handle(s.register)).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handle(s.login)).Methods(http.MethodPost)

	private := api.NewRoute().Subrouter()
	private.Use(s.requireAuth)

	private.HandleFunc("/auth/me", s.handle(s.me)).Methods(http.MethodGet)

	private.HandleFunc("/profile", s.handle(s.getProfile)).Methods(http.MethodGet)
	private.HandleFunc("/profile", s.handle(s.putProfile)).Methods(http.MethodPut)

	private.HandleFunc("/workouts/date/{date}", s.handle(s.getWorkoutByDate)).Methods(http.MethodGet)
	private.HandleFunc("/workouts/recent", s.handle(s.recentWorkouts)).Methods(http.MethodGet)
	private.HandleFunc("/workouts", s.handle(s.createWorkout)).Methods(http.MethodPost)
	private.HandleFunc("/workouts/{id}/complete", s.handle(s.completeWorkout)).Methods(http.MethodPatch)
	private.HandleFunc("/workouts/{id}/actual-weights", s.handle(s.logActualWeights)).Methods(http.MethodPatch)

	private.HandleFunc("/meals/date/{date}", s.handle(s.getMealByDate)).Methods(http.MethodGet)
	private.HandleFunc("/meals/recent", s.handle(s.recentMeals)).Methods(http.MethodGet)
	private.HandleFunc("/meals", s.handle(s.createMeal)).Methods(http.MethodPost)
	private.HandleFunc("/meals/{id}/logged", s.handle(s.markMealLogged)).Methods(http.MethodPatch)

	private.HandleFunc("/checkins", s.handle(s.createCheckIn)).Methods(http.MethodPost)
	private.HandleFunc("/checkins/recent", s.handle(s.recentCheckIns)).Methods(http.MethodGet)

	private.HandleFunc("/ai/chat", s.handle(s.chat)).Methods(http.MethodPost)
	private.HandleFunc("/plans/generate", s.handle(s.generatePlans)).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(s.logRequests(r))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
