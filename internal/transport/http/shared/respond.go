// Package shared holds the response and validation helpers every feature
// handler uses, so 401 handling and page fallbacks behave the same on every
// route.
package shared

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/audit"
	"storefront/internal/gate"
	"storefront/internal/session"
	"storefront/internal/upstream"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/platform/httputil"
	"storefront/pkg/requestcontext"
)

// NotFoundPage is rendered for unknown products, brands and categories.
type NotFoundPage struct {
	Page string `json:"page"`
	Back string `json:"back"`
}

// ErrorPage is the full-page fallback for failures a page cannot recover
// from.
type ErrorPage struct {
	Page        string `json:"page"`
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
	Retry       bool   `json:"retry"`
}

// SessionClearer drops the caller's session and cookie.
type SessionClearer interface {
	Clear(w http.ResponseWriter, r *http.Request, reason string)
}

// Auditor records audit events without failing the request.
type Auditor interface {
	Record(ctx context.Context, event audit.Event)
}

// Responder renders service errors. An upstream 401 anywhere clears the
// session before responding.
type Responder struct {
	sessions SessionClearer
	auditor  Auditor
	logger   *slog.Logger
}

func NewResponder(sessions SessionClearer, auditor Auditor, logger *slog.Logger) *Responder {
	return &Responder{sessions: sessions, auditor: auditor, logger: logger}
}

// Page renders err for a GET page: 303 to sign-in on auth failure, the
// not-found page on 404, the error page otherwise.
func (p *Responder) Page(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	if p.unauthorized(w, r, err) {
		httputil.WriteRedirect(w, r, gate.SignInPath)
		return
	}
	de := asDomain(err)
	switch de.Code {
	case dErrors.CodeNotFound:
		httputil.WriteJSON(w, http.StatusNotFound, NotFoundPage{Page: "not_found", Back: gate.LandingPath})
		return
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		httputil.WriteError(w, de)
		return
	}
	p.logger.ErrorContext(ctx, "page failed",
		"request_id", requestcontext.RequestID(ctx),
		"path", r.URL.Path,
		"error", err,
	)
	p.Fallback(w, de)
}

// Critical renders err for a page that cannot show anything without the
// failed data: sign-in redirect on auth failure, the full-page fallback for
// everything else, not-found included.
func (p *Responder) Critical(w http.ResponseWriter, r *http.Request, err error) {
	if p.unauthorized(w, r, err) {
		httputil.WriteRedirect(w, r, gate.SignInPath)
		return
	}
	ctx := r.Context()
	p.logger.ErrorContext(ctx, "page data unavailable",
		"request_id", requestcontext.RequestID(ctx),
		"path", r.URL.Path,
		"error", err,
	)
	p.Fallback(w, err)
}

// Fallback renders the full-page error model with a retry affordance.
func (p *Responder) Fallback(w http.ResponseWriter, err error) {
	de := asDomain(err)
	status := httputil.StatusFor(de.Code)
	if status < http.StatusInternalServerError {
		status = http.StatusBadGateway
	}
	page := ErrorPage{Page: "error", Error: string(de.Code), Retry: true}
	if de.Code != dErrors.CodeInternal {
		page.Description = de.Message
	}
	httputil.WriteJSON(w, status, page)
}

// Action renders err for a POST/PUT/DELETE: 401 JSON pointing at sign-in
// on auth failure, the error envelope otherwise.
func (p *Responder) Action(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	if p.unauthorized(w, r, err) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "your session has ended, sign in again"))
		return
	}
	de := asDomain(err)
	if httputil.StatusFor(de.Code) >= http.StatusInternalServerError {
		p.logger.ErrorContext(ctx, "action failed",
			"request_id", requestcontext.RequestID(ctx),
			"path", r.URL.Path,
			"error", err,
		)
	} else {
		p.logger.InfoContext(ctx, "action rejected",
			"request_id", requestcontext.RequestID(ctx),
			"path", r.URL.Path,
			"code", de.Code,
		)
	}
	httputil.WriteError(w, de)
}

func (p *Responder) unauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, upstream.ErrUnauthorized) && !dErrors.HasCode(err, dErrors.CodeUnauthorized) {
		return false
	}
	ctx := r.Context()
	p.logger.InfoContext(ctx, "credential rejected by upstream, clearing session",
		"request_id", requestcontext.RequestID(ctx),
		"path", r.URL.Path,
	)
	p.sessions.Clear(w, r, session.ReasonUnauthorized)
	if p.auditor != nil {
		p.auditor.Record(ctx, audit.Event{Action: audit.ActionSessionCleared, Reason: r.URL.Path})
	}
	return true
}

func asDomain(err error) *dErrors.Error {
	if de, ok := dErrors.As(err); ok {
		return de
	}
	if de, ok := dErrors.As(upstream.Translate(err, "complete the request")); ok {
		return de
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "internal error")
}

// RequireSession returns the session the gate resolved for r, answering 401
// when there is none.
func RequireSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := gate.SessionFrom(r.Context())
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "sign in required"))
		return nil, false
	}
	return sess, true
}
