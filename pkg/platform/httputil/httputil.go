// Package httputil holds the JSON response helpers shared by every handler so
// error envelopes and status mapping stay consistent.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	dErrors "storefront/pkg/domain-errors"
)

// maxBodyBytes bounds request bodies decoded by DecodeAndPrepare.
const maxBodyBytes = 1 << 20

// Validatable is implemented by request types that check their own fields.
type Validatable interface {
	Validate() error
}

// Normalizer is implemented by request types that trim or canonicalise input
// before validation.
type Normalizer interface {
	Normalize()
}

// ErrorResponse is the JSON envelope for every non-2xx response.
type ErrorResponse struct {
	Error       string            `json:"error"`
	Description string            `json:"error_description,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
	Redirect    string            `json:"redirect,omitempty"`
	Retry       bool              `json:"retry,omitempty"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into a status code and JSON envelope. Internal
// errors never leak their description.
func WriteError(w http.ResponseWriter, err error) {
	status, body := ErrorBody(err)
	WriteJSON(w, status, body)
}

// ErrorBody computes the status and envelope WriteError would produce.
func ErrorBody(err error) (int, ErrorResponse) {
	de, ok := dErrors.As(err)
	if !ok {
		return http.StatusInternalServerError, ErrorResponse{Error: string(dErrors.CodeInternal)}
	}
	status := StatusFor(de.Code)
	body := ErrorResponse{
		Error:  string(de.Code),
		Fields: de.Fields,
	}
	if de.Code != dErrors.CodeInternal {
		body.Description = de.Message
	}
	switch de.Code {
	case dErrors.CodeUnavailable, dErrors.CodeBadGateway, dErrors.CodeTimeout:
		body.Retry = true
	case dErrors.CodeUnauthorized:
		body.Redirect = "/login"
	}
	return status, body
}

// StatusFor maps a domain error code to an HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	case dErrors.CodeBadGateway:
		return http.StatusBadGateway
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// WriteRedirect sends a 303 so form POSTs and page GETs both land on a GET.
func WriteRedirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// DecodeAndPrepare decodes a JSON body into T, normalises and validates it.
// On failure it writes the error response and returns false.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		logger.WarnContext(ctx, "invalid request body",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}

	if n, ok := any(&req).(Normalizer); ok {
		n.Normalize()
	}
	if v, ok := any(&req).(Validatable); ok {
		if err := v.Validate(); err != nil {
			logger.InfoContext(ctx, "request validation failed",
				"request_id", requestID,
				"error", err,
			)
			WriteError(w, err)
			return nil, false
		}
	}
	return &req, true
}
