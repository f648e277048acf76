// ABOUTME: Account and profile handlers: register, login, me, and onboarding.
// ABOUTME: Tokens carry only the account ID; the password hash never leaves storage.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/harperreed/coach/internal/auth"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) error {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return badRequest("email and password required")
	}
	if len(req.Password) < auth.MinPasswordLength {
		return badRequest("password must be at least 6 characters")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}
	u := models.NewUser(req.Email, hash)
	if err := s.repo.CreateUser(u); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return conflict("email already registered")
		}
		return err
	}

	return s.writeAuth(w, http.StatusCreated, u)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) error {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return badRequest("email and password required")
	}

	u, err := s.repo.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return unauthorized("invalid credentials")
		}
		return err
	}
	if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
		return unauthorized("invalid credentials")
	}

	return s.writeAuth(w, http.StatusOK, u)
}

func (s *Server) writeAuth(w http.ResponseWriter, status int, u *models.User) error {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return err
	}
	writeJSON(w, status, authResponse{Token: token, User: u.Public()})
	return nil
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) error {
	u, err := s.repo.GetUser(userIDFrom(r))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound("user not found")
		}
		return err
	}
	writeJSON(w, http.StatusOK, u)
	return nil
}

// getProfile returns null until onboarding is done.
func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) error {
	p, err := s.repo.GetProfile(userIDFrom(r))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusOK, nil)
			return nil
		}
		return err
	}
	writeJSON(w, http.StatusOK, p)
	return nil
}

func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) error {
	var p models.Profile
	if err := decodeJSON(w, r, &p); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return badRequest(err.Error())
	}

	if err := s.repo.SaveProfile(userIDFrom(r), &p); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound("user not found")
		}
		return err
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	return nil
}
