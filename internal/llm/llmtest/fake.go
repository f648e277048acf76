// ABOUTME: Scripted Gateway for tests.
// ABOUTME: Returns canned content or a handler result and records every request.
package llmtest

import (
	"context"
	"strings"
	"sync"

	"github.com/harperreed/coach/internal/llm"
)

// Fake is a thread-safe scripted llm.Gateway.
//
// Handler, when set, decides the reply for each request. Otherwise Err is
// returned if set, else Content.
type Fake struct {
	Content string
	Err     error
	Handler func(req llm.Request) (string, error)

	mu       sync.Mutex
	requests []llm.Request
}

// Complete records req and returns the scripted reply.
func (f *Fake) Complete(_ context.Context, req llm.Request) (*llm.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	content, err := f.Content, f.Err
	if f.Handler != nil {
		content, err = f.Handler(req)
	}
	if err != nil {
		return nil, err
	}
	return &llm.Response{
		Content: content,
		Model:   "fake-model",
		Usage:   llm.Usage{InputTokens: len(req.System), OutputTokens: len(content)},
	}, nil
}

// Requests returns a copy of every request seen so far.
func (f *Fake) Requests() []llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]llm.Request, len(f.requests))
	copy(out, f.requests)
	return out
}

// Calls returns the number of requests seen.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// WorkoutJSON is a fenced workout reply with five exercises and no dayName,
// so callers fall back to their computed training day.
const WorkoutJSON = "```json\n" + `{
  "exercises": [
    {"exerciseName": "Bench Press", "muscleGroup": "Chest", "sets": [
      {"setNumber": 1, "reps": 8, "weight": 80},
      {"setNumber": 2, "reps": 8, "weight": 80},
      {"setNumber": 3, "reps": 8, "weight": 80}
    ], "notes": "Controlled eccentric"},
    {"exerciseName": "Overhead  Press", "muscleGroup": "Shoulders", "sets": [
      {"reps": 10, "weight": 40},
      {"reps": 10, "weight": 40}
    ]},
    {"exerciseName": "Incline Dumbbell Press", "muscleGroup": "Chest", "sets": [
      {"setNumber": 1, "reps": 10, "weight": 26}
    ]},
    {"exerciseName": "Lateral Raise", "muscleGroup": "Shoulders", "sets": [
      {"setNumber": 1, "reps": 15, "weight": 10, "completed": true, "actualWeight": 12}
    ]},
    {"exerciseName": "Triceps Pushdown", "muscleGroup": "Triceps", "sets": [
      {"setNumber": 1, "reps": 12, "weight": 30}
    ]}
  ],
  "estimatedDuration": 62.6,
  "aiInsight": "Bench moved well last time, adding 2.5kg."
}` + "\n```"

// MealJSON is a meal reply with totals supplied.
const MealJSON = `{
  "meals": [
    {"name": "Protein Oatmeal Bowl", "mealType": "breakfast", "calories": 450, "protein": 35, "carbs": 55, "fats": 10,
     "ingredients": ["1 cup oats", "1 scoop protein powder"], "instructions": "Cook oats, stir in protein."},
    {"name": "Chicken Rice Bowl", "mealType": "lunch", "calories": 700, "protein": 55, "carbs": 80, "fats": 15},
    {"name": "Salmon and Potatoes", "mealType": "dinner", "calories": 750, "protein": 50, "carbs": 70, "fats": 28},
    {"name": "Greek Yogurt", "mealType": "snack", "calories": 200, "protein": 20, "carbs": 15, "fats": 5}
  ],
  "totalCalories": 2100,
  "totalProtein": 160,
  "totalCarbs": 220,
  "totalFats": 58
}`

// PlanReplies answers meal prompts with MealJSON and everything else with WorkoutJSON.
func PlanReplies(req llm.Request) (string, error) {
	if IsMealRequest(req) {
		return MealJSON, nil
	}
	return WorkoutJSON, nil
}

// IsMealRequest reports whether the last user message asks for a meal plan.
func IsMealRequest(req llm.Request) bool {
	if len(req.Messages) == 0 {
		return false
	}
	return strings.Contains(req.Messages[len(req.Messages)-1].Content, "meal plan")
}
