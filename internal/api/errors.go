// ABOUTME: Maps domain errors to HTTP status codes and JSON error bodies.
// ABOUTME: Bodies are {"error": message, "kind": kind}; internal details are logged, not returned.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/harperreed/coach/internal/auth"
	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/llm"
	"github.com/harperreed/coach/internal/storage"
	"go.uber.org/zap"
)

// Error kinds reported to clients beyond the coach pipeline kinds.
const (
	KindValidation   = "validation"
	KindUnauthorized = "unauthorized"
	KindNotFound     = "not_found"
	KindConflict     = "conflict"
	KindInternal     = "internal"
)

const serverErrorMessage = "server error"

// apiError is an error that already knows its HTTP shape.
type apiError struct {
	status  int
	kind    string
	message string
}

func (e *apiError) Error() string {
	return e.message
}

func badRequest(msg string) error {
	return &apiError{status: http.StatusBadRequest, kind: KindValidation, message: msg}
}

func unauthorized(msg string) error {
	return &apiError{status: http.StatusUnauthorized, kind: KindUnauthorized, message: msg}
}

func notFound(msg string) error {
	return &apiError{status: http.StatusNotFound, kind: KindNotFound, message: msg}
}

func conflict(msg string) error {
	return &apiError{status: http.StatusConflict, kind: KindConflict, message: msg}
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// classify picks the status, kind, and client-facing message for err.
func classify(err error) (int, string, string) {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.status, ae.kind, ae.message
	}

	var ce *coach.Error
	if errors.As(err, &ce) {
		switch ce.Kind {
		case coach.KindProfileMissing:
			return http.StatusNotFound, string(ce.Kind), ce.Err.Error()
		case coach.KindGateway, coach.KindMalformedPlan, coach.KindIncompletePlan:
			return http.StatusBadGateway, string(ce.Kind), ce.Err.Error()
		default:
			return http.StatusInternalServerError, KindInternal, serverErrorMessage
		}
	}

	var ge *llm.GatewayError
	if errors.As(err, &ge) {
		return http.StatusBadGateway, string(coach.KindGateway), ge.Message
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, KindNotFound, "not found"
	case errors.Is(err, storage.ErrDuplicate):
		return http.StatusConflict, KindConflict, "already exists"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, KindUnauthorized, "invalid credentials"
	}

	return http.StatusInternalServerError, KindInternal, serverErrorMessage
}

func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	status, kind, msg := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.String("kind", kind), zap.Error(err))
	}
	writeJSON(w, status, errorBody{Error: msg, Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("invalid JSON body")
	}
	return nil
}

// decodeOptionalJSON is decodeJSON but leaves v untouched for an empty body.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return badRequest("invalid JSON body")
	}
	return nil
}

// handle adapts an error-returning handler.
func (s *Server) handle(fn func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			writeError(w, s.log, err)
		}
	}
}
