// ABOUTME: Error type for failed gateway calls.
// ABOUTME: Carries the provider, upstream status, and a caller-safe message.
package llm

import (
	"errors"
	"net/http"
)

// FallbackMessage is reported when the upstream gave no usable message.
const FallbackMessage = "failed to communicate with the model provider"

// GatewayError is returned for every failed completion: auth, rate limits,
// upstream 5xx, transport failures, and unreadable responses.
type GatewayError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	return e.Message
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// newGatewayError builds the caller-facing message from the upstream one.
func newGatewayError(provider string, status int, upstream string, err error) *GatewayError {
	msg := FallbackMessage
	if upstream != "" {
		msg = provider + " API error: " + upstream
	}
	return &GatewayError{
		Provider:   provider,
		StatusCode: status,
		Message:    msg,
		Err:        err,
	}
}

// IsRateLimited reports whether err is an upstream 429.
func IsRateLimited(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.StatusCode == http.StatusTooManyRequests
}

// IsAuth reports whether the upstream rejected the credential.
func IsAuth(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) &&
		(ge.StatusCode == http.StatusUnauthorized || ge.StatusCode == http.StatusForbidden)
}
