// ABOUTME: Daily check-in handlers.
// ABOUTME: Check-ins are append-only; several may share a date.
package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

func (s *Server) createCheckIn(w http.ResponseWriter, r *http.Request) error {
	var c models.CheckIn
	if err := decodeJSON(w, r, &c); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return badRequest(err.Error())
	}

	c.UserID = userIDFrom(r)
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.SubmittedAt.IsZero() {
		c.SubmittedAt = s.now()
	}

	if err := s.repo.CreateCheckIn(&c); err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, c)
	return nil
}

func (s *Server) recentCheckIns(w http.ResponseWriter, r *http.Request) error {
	checkIns, err := s.repo.ListCheckIns(userIDFrom(r), recentLimit(r))
	if err != nil {
		return err
	}
	if checkIns == nil {
		checkIns = []*models.CheckIn{}
	}
	writeJSON(w, http.StatusOK, checkIns)
	return nil
}
