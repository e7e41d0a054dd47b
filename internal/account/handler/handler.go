package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"storefront/internal/account"
	"storefront/internal/session"
	"storefront/internal/transport/http/shared"
	"storefront/internal/upstream"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/platform/httputil"
	"storefront/pkg/requestcontext"
)

type Service interface {
	Profile(ctx context.Context, sess *session.Session) (*account.Profile, error)
	AddAddress(ctx context.Context, sess *session.Session, addr upstream.Address) ([]upstream.Address, error)
	RemoveAddress(ctx context.Context, sess *session.Session, addressID string) ([]upstream.Address, error)
	ChangePassword(ctx context.Context, sess *session.Session, req upstream.ChangePasswordRequest) (string, error)
	UpdateProfile(ctx context.Context, sess *session.Session, req upstream.ProfileUpdate) (session.UserSummary, error)
}

// Sessions is the part of session.Manager that rewrites the caller's
// session after a credential or identity change.
type Sessions interface {
	New(token string, user session.UserSummary, now time.Time) *session.Session
	Set(w http.ResponseWriter, r *http.Request, sess *session.Session) error
}

type Handler struct {
	service   Service
	sessions  Sessions
	responder *shared.Responder
	logger    *slog.Logger
}

func New(service Service, sessions Sessions, responder *shared.Responder, logger *slog.Logger) *Handler {
	return &Handler{service: service, sessions: sessions, responder: responder, logger: logger}
}

func (h *Handler) RegisterPages(r chi.Router) {
	r.Get("/user", h.HandleProfile)
}

func (h *Handler) RegisterActions(r chi.Router) {
	r.Post("/user/addresses", h.HandleAddAddress)
	r.Delete("/user/addresses/{addressID}", h.HandleRemoveAddress)
	r.Put("/user/password", h.HandleChangePassword)
	r.Put("/user/profile", h.HandleUpdateProfile)
}

type ProfilePage struct {
	Page      string              `json:"page"`
	User      session.UserSummary `json:"user"`
	Phone     string              `json:"phone,omitempty"`
	Addresses []upstream.Address  `json:"addresses"`
	Orders    []upstream.Order    `json:"orders"`
}

type AddressBook struct {
	Addresses []upstream.Address `json:"addresses"`
	Count     int                `json:"count"`
}

type Updated struct {
	Message string               `json:"message"`
	User    *session.UserSummary `json:"user,omitempty"`
}

func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := shared.RequireSession(w, r)
	if !ok {
		return
	}
	p, err := h.service.Profile(r.Context(), sess)
	if err != nil {
		h.responder.Page(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ProfilePage{
		Page:      "profile",
		User:      p.User,
		Phone:     p.Phone,
		Addresses: p.Addresses,
		Orders:    p.Orders,
	})
}

func (h *Handler) HandleAddAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := shared.RequireSession(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddAddressRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	addrs, err := h.service.AddAddress(ctx, sess, req.toUpstream())
	if err != nil {
		h.responder.Action(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, AddressBook{Addresses: addrs, Count: len(addrs)})
}

func (h *Handler) HandleRemoveAddress(w http.ResponseWriter, r *http.Request) {
	sess, ok := shared.RequireSession(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "addressID")
	if !shared.IsObjectID(id) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid address id"))
		return
	}
	addrs, err := h.service.RemoveAddress(r.Context(), sess, id)
	if err != nil {
		h.responder.Action(w, r, err)
		return
	}
	if addrs == nil {
		addrs = []upstream.Address{}
	}
	httputil.WriteJSON(w, http.StatusOK, AddressBook{Addresses: addrs, Count: len(addrs)})
}

// HandleChangePassword swaps the rotated credential into a fresh session;
// the previous session is revoked by Set.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := shared.RequireSession(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ChangePasswordRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	token, err := h.service.ChangePassword(ctx, sess, req.toUpstream())
	if err != nil {
		h.responder.Action(w, r, err)
		return
	}
	if err := h.sessions.Set(w, r, h.sessions.New(token, sess.User, requestcontext.Now(ctx))); err != nil {
		h.logger.ErrorContext(ctx, "failed to store rotated session",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save session"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, Updated{Message: "Password updated successfully"})
}

func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := shared.RequireSession(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateProfileRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	user, err := h.service.UpdateProfile(ctx, sess, req.toUpstream())
	if err != nil {
		h.responder.Action(w, r, err)
		return
	}
	next := *sess
	next.User = user
	if err := h.sessions.Set(w, r, &next); err != nil {
		// The upstream change stands; the header shows the old name until
		// the next sign-in.
		h.logger.WarnContext(ctx, "failed to refresh session identity",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteJSON(w, http.StatusOK, Updated{Message: "Profile updated successfully", User: &user})
}
