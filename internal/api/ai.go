// ABOUTME: Model-backed handlers: the raw chat proxy and plan generation.
// ABOUTME: The provider credential stays server-side; clients only send prompts.
package api

import (
	"net/http"
	"strings"

	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/llm"
	"github.com/harperreed/coach/internal/models"
)

type chatRequest struct {
	SystemPrompt string        `json:"systemPrompt"`
	Messages     []llm.Message `json:"messages"`
	MaxTokens    int           `json:"maxTokens"`
}

type chatResponse struct {
	Content string    `json:"content"`
	Usage   llm.Usage `json:"usage"`
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) error {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.SystemPrompt) == "" || len(req.Messages) == 0 {
		return badRequest("systemPrompt and messages are required")
	}
	for _, m := range req.Messages {
		if m.Role != "user" && m.Role != "assistant" {
			return badRequest("message role must be user or assistant")
		}
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = llm.DefaultMaxTokens
	}

	resp, err := s.gateway.Complete(r.Context(), llm.Request{
		System:    req.SystemPrompt,
		Messages:  req.Messages,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return err
	}
	s.metrics.AddTokens(resp.Usage.InputTokens, resp.Usage.OutputTokens)

	writeJSON(w, http.StatusOK, chatResponse{Content: resp.Content, Usage: resp.Usage})
	return nil
}

type generateRequest struct {
	Date string `json:"date"`
	When string `json:"when"`
	Type string `json:"type"`
}

// generatePlans accepts an empty body, which means both plans for tomorrow.
func (s *Server) generatePlans(w http.ResponseWriter, r *http.Request) error {
	var req generateRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		return err
	}

	planType, err := coach.ParsePlanType(req.Type)
	if err != nil {
		return badRequest(err.Error())
	}

	date := req.Date
	switch {
	case date != "":
		if _, err := models.ParseDate(date); err != nil {
			return badRequest(err.Error())
		}
	case req.When == "today":
		date = s.generator.Today()
	case req.When == "" || req.When == "tomorrow":
		date = s.generator.Tomorrow()
	default:
		return badRequest("when must be today or tomorrow")
	}

	plans, err := s.generator.Generate(r.Context(), userIDFrom(r), date, planType)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, plans)
	return nil
}
