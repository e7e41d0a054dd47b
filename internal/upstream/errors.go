package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	dErrors "storefront/pkg/domain-errors"
)

// Kind classifies a failed upstream call.
type Kind int

const (
	// NetworkFailure covers transport errors and timeouts. Retryable.
	NetworkFailure Kind = iota + 1
	// ValidationFailure is a 4xx other than 401/404; Message carries the
	// upstream explanation.
	ValidationFailure
	// AuthFailure is a 401: the credential is missing, expired or revoked.
	AuthFailure
	NotFound
	// ServerFailure is any 5xx or an undecodable success body.
	ServerFailure
)

func (k Kind) String() string {
	switch k {
	case NetworkFailure:
		return "network_failure"
	case ValidationFailure:
		return "validation_failure"
	case AuthFailure:
		return "auth_failure"
	case NotFound:
		return "not_found"
	case ServerFailure:
		return "server_failure"
	default:
		return "unknown"
	}
}

var (
	// ErrUnauthorized matches any AuthFailure via errors.Is.
	ErrUnauthorized = errors.New("upstream: unauthorized")
	// ErrInvalidQuantity is returned without a request when a cart quantity is below 1.
	ErrInvalidQuantity = errors.New("upstream: quantity must be at least 1")
	// ErrCircuitOpen is returned without a request while the breaker is open.
	ErrCircuitOpen = errors.New("upstream: circuit open")
)

// Error is a failed upstream call.
type Error struct {
	Kind      Kind
	Operation string
	Status    int
	Message   string
	Err       error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("upstream %s: %s (%d): %s", e.Operation, e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("upstream %s: %s: %s", e.Operation, e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrUnauthorized) match every AuthFailure.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Kind == AuthFailure
}

// Retryable reports whether the failure is transient.
func (e *Error) Retryable() bool {
	return e.Kind == NetworkFailure || e.Kind == ServerFailure
}

// KindOf returns the Kind of err, or 0 when err is not an upstream error.
func KindOf(err error) Kind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	if errors.Is(err, ErrCircuitOpen) {
		return NetworkFailure
	}
	return 0
}

// Message returns the upstream-supplied message of err, if any.
func Message(err error) string {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Message
	}
	return ""
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return AuthFailure
	case status == http.StatusNotFound:
		return NotFound
	case status >= 500:
		return ServerFailure
	default:
		return ValidationFailure
	}
}

// Translate maps an upstream failure onto a domain error so handlers can
// render it. The original error stays wrapped: errors.Is(err,
// ErrUnauthorized) still holds on the result.
func Translate(err error, action string) error {
	if err == nil {
		return nil
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		return dErrors.Wrap(err, dErrors.CodeValidation, "quantity must be at least 1")
	case errors.Is(err, ErrCircuitOpen):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "store is temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, action+" timed out")
	}
	msg := Message(err)
	switch KindOf(err) {
	case AuthFailure:
		if msg == "" {
			msg = "sign in required"
		}
		return dErrors.Wrap(err, dErrors.CodeUnauthorized, msg)
	case NotFound:
		if msg == "" {
			msg = "not found"
		}
		return dErrors.Wrap(err, dErrors.CodeNotFound, msg)
	case ValidationFailure:
		if msg == "" {
			msg = action + " was rejected"
		}
		return dErrors.Wrap(err, dErrors.CodeBadRequest, msg)
	case NetworkFailure:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "could not reach the store, try again")
	case ServerFailure:
		return dErrors.Wrap(err, dErrors.CodeBadGateway, "the store returned an error, try again")
	}
	if errors.Is(err, context.Canceled) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, action+" was cancelled")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+action)
}
