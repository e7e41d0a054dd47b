package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"storefront/internal/auth"
	"storefront/internal/gate"
	"storefront/internal/session"
	"storefront/internal/transport/http/shared"
	"storefront/internal/upstream"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/platform/httputil"
	"storefront/pkg/requestcontext"
)

// Service defines the sign-in flows the handler drives.
type Service interface {
	SignIn(ctx context.Context, email, password string) (*auth.Identity, error)
	SignUp(ctx context.Context, req upstream.SignUpRequest) error
	SignedOut(ctx context.Context, sess *session.Session)
}

// Sessions creates, binds and drops session records.
type Sessions interface {
	New(token string, user session.UserSummary, now time.Time) *session.Session
	Set(w http.ResponseWriter, r *http.Request, sess *session.Session) error
	Clear(w http.ResponseWriter, r *http.Request, reason string)
}

// Page is the page model of the landing, sign-in and sign-up screens.
type Page struct {
	Page string `json:"page"`
}

type Handler struct {
	service   Service
	sessions  Sessions
	responder *shared.Responder
	logger    *slog.Logger
}

func New(service Service, sessions Sessions, responder *shared.Responder, logger *slog.Logger) *Handler {
	return &Handler{
		service:   service,
		sessions:  sessions,
		responder: responder,
		logger:    logger,
	}
}

// RegisterPages mounts the GET screens. They sit behind the edge gate.
func (h *Handler) RegisterPages(r chi.Router) {
	r.Get("/", h.page("landing"))
	r.Get("/login", h.page("login"))
	r.Get("/signup", h.page("signup"))
}

// RegisterActions mounts the form posts. They need no credential.
func (h *Handler) RegisterActions(r chi.Router) {
	r.Post("/login", h.HandleSignIn)
	r.Post("/signup", h.HandleSignUp)
	r.Post("/logout", h.HandleSignOut)
}

func (h *Handler) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, Page{Page: name})
	}
}

// HandleSignIn handles POST /login. A rejected sign-in drops any session
// the browser still holds and answers 401 with the upstream message.
func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SignInRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	identity, err := h.service.SignIn(ctx, req.Email, req.Password)
	if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
		h.logger.InfoContext(ctx, "sign-in rejected",
			"request_id", requestID,
			"error", err,
		)
		h.sessions.Clear(w, r, session.ReasonUnauthorized)
		httputil.WriteError(w, err)
		return
	}
	if err != nil {
		h.responder.Action(w, r, err)
		return
	}

	sess := h.sessions.New(identity.Token, identity.User, requestcontext.Now(ctx))
	if err := h.sessions.Set(w, r, sess); err != nil {
		h.responder.Action(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "shopper signed in",
		"request_id", requestID,
		"session", sess,
	)
	httputil.WriteRedirect(w, r, gate.LandingPath)
}

// HandleSignUp handles POST /signup and sends the shopper on to sign in.
func (h *Handler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SignUpRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.SignUp(ctx, req.toUpstream()); err != nil {
		h.responder.Action(w, r, err)
		return
	}
	httputil.WriteRedirect(w, r, gate.SignInPath)
}

// HandleSignOut handles POST /logout. It succeeds with or without a session.
func (h *Handler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	if sess, ok := gate.SessionFrom(r.Context()); ok {
		h.service.SignedOut(r.Context(), sess)
	}
	h.sessions.Clear(w, r, session.ReasonSignOut)
	httputil.WriteRedirect(w, r, gate.SignInPath)
}
