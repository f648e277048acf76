// ABOUTME: Tagged errors for the plan generation pipeline.
// ABOUTME: Every failure carries a Kind so transports can map it without string matching.
package coach

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Kind classifies a pipeline failure.
type Kind string

const (
	KindProfileMissing Kind = "profile_missing"
	KindGateway        Kind = "gateway"
	KindMalformedPlan  Kind = "malformed_plan"
	KindIncompletePlan Kind = "incomplete_plan"
	KindStorage        Kind = "storage"
)

// Error tags a pipeline failure with its kind and the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

func wrap(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// ProfileMissingError means the account has not completed onboarding.
type ProfileMissingError struct {
	UserID uuid.UUID
}

func (e *ProfileMissingError) Error() string {
	return "no user profile found, complete onboarding first"
}

// MalformedPlanError means the model reply was not valid JSON.
// Raw is kept for logs and never shown to end users.
type MalformedPlanError struct {
	Plan string
	Raw  string
	Err  error
}

func (e *MalformedPlanError) Error() string {
	return "invalid response format from the model"
}

func (e *MalformedPlanError) Unwrap() error {
	return e.Err
}

// IncompletePlanError means the reply decoded but lacks a required list.
type IncompletePlanError struct {
	Plan  string
	Field string
}

func (e *IncompletePlanError) Error() string {
	return fmt.Sprintf("generated %s plan has no %s", e.Plan, e.Field)
}
