// ABOUTME: Workout and meal plan handlers: fetch by date, save, recent lists, and status updates.
// ABOUTME: Every lookup is scoped to the authenticated account.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
)

func pathDate(r *http.Request) (string, error) {
	date := mux.Vars(r)["date"]
	if _, err := models.ParseDate(date); err != nil {
		return "", badRequest(err.Error())
	}
	return date, nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, badRequest("invalid plan id")
	}
	return id, nil
}

// recentLimit reads ?limit=, falling back to the default for missing or non-positive values.
func recentLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return storage.DefaultRecentLimit
	}
	return n
}

func planNotFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return notFound("plan not found")
	}
	return err
}

func (s *Server) getWorkoutByDate(w http.ResponseWriter, r *http.Request) error {
	date, err := pathDate(r)
	if err != nil {
		return err
	}
	plan, err := s.repo.GetWorkoutPlanByDate(userIDFrom(r), date)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusOK, nil)
		return nil
	}
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, plan)
	return nil
}

func (s *Server) createWorkout(w http.ResponseWriter, r *http.Request) error {
	var plan models.WorkoutPlan
	if err := decodeJSON(w, r, &plan); err != nil {
		return err
	}
	if _, err := models.ParseDate(plan.Date); err != nil {
		return badRequest(err.Error())
	}

	plan.UserID = userIDFrom(r)
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	if plan.GeneratedAt.IsZero() {
		plan.GeneratedAt = s.now()
	}
	for i := range plan.Exercises {
		ex := &plan.Exercises[i]
		if ex.ID == uuid.Nil {
			ex.ID = uuid.New()
		}
		if ex.Order == 0 {
			ex.Order = i + 1
		}
	}

	if err := s.repo.SaveWorkoutPlan(&plan); err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, plan)
	return nil
}

func (s *Server) completeWorkout(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	userID := userIDFrom(r)

	plan, err := s.repo.GetWorkoutPlan(userID, id)
	if err != nil {
		return planNotFound(err)
	}
	plan.MarkCompleted(s.now())
	if err := s.repo.UpdateWorkoutPlan(plan); err != nil {
		return planNotFound(err)
	}
	writeJSON(w, http.StatusOK, plan)
	return nil
}

type actualWeightsRequest struct {
	Exercises []models.ExerciseActuals `json:"exercises"`
}

func (s *Server) logActualWeights(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	var req actualWeightsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	if req.Exercises == nil {
		return badRequest("exercises is required")
	}

	plan, err := s.repo.GetWorkoutPlan(userIDFrom(r), id)
	if err != nil {
		return planNotFound(err)
	}
	plan.ApplyActuals(req.Exercises)
	if err := s.repo.UpdateWorkoutPlan(plan); err != nil {
		return planNotFound(err)
	}
	writeJSON(w, http.StatusOK, plan)
	return nil
}

func (s *Server) recentWorkouts(w http.ResponseWriter, r *http.Request) error {
	plans, err := s.repo.ListWorkoutPlans(userIDFrom(r), recentLimit(r))
	if err != nil {
		return err
	}
	if plans == nil {
		plans = []*models.WorkoutPlan{}
	}
	writeJSON(w, http.StatusOK, plans)
	return nil
}

func (s *Server) getMealByDate(w http.ResponseWriter, r *http.Request) error {
	date, err := pathDate(r)
	if err != nil {
		return err
	}
	plan, err := s.repo.GetMealPlanByDate(userIDFrom(r), date)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusOK, nil)
		return nil
	}
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, plan)
	return nil
}

func (s *Server) createMeal(w http.ResponseWriter, r *http.Request) error {
	var plan models.MealPlan
	if err := decodeJSON(w, r, &plan); err != nil {
		return err
	}
	if _, err := models.ParseDate(plan.Date); err != nil {
		return badRequest(err.Error())
	}

	plan.UserID = userIDFrom(r)
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	if plan.GeneratedAt.IsZero() {
		plan.GeneratedAt = s.now()
	}
	for i := range plan.Meals {
		if plan.Meals[i].ID == uuid.Nil {
			plan.Meals[i].ID = uuid.New()
		}
	}

	if err := s.repo.SaveMealPlan(&plan); err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, plan)
	return nil
}

func (s *Server) markMealLogged(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	userID := userIDFrom(r)

	plan, err := s.repo.GetMealPlan(userID, id)
	if err != nil {
		return planNotFound(err)
	}
	plan.MarkLogged(s.now())
	if err := s.repo.UpdateMealPlan(plan); err != nil {
		return planNotFound(err)
	}
	writeJSON(w, http.StatusOK, plan)
	return nil
}

func (s *Server) recentMeals(w http.ResponseWriter, r *http.Request) error {
	plans, err := s.repo.ListMealPlans(userIDFrom(r), recentLimit(r))
	if err != nil {
		return err
	}
	if plans == nil {
		plans = []*models.MealPlan{}
	}
	writeJSON(w, http.StatusOK, plans)
	return nil
}
