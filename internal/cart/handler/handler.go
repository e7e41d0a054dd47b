package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/session"
	"storefront/internal/transport/http/shared"
	"storefront/internal/upstream"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/platform/httputil"
	"storefront/pkg/requestcontext"
)

type Service interface {
	Get(ctx context.Context, sess *session.Session) (*upstream.Cart, error)
	Add(ctx context.Context, sess *session.Session, productID string) (*upstream.Cart, error)
	Update(ctx context.Context, sess *session.Session, productID string, count int) (*upstream.Cart, error)
	Remove(ctx context.Context, sess *session.Session, productID string) (*upstream.Cart, error)
	Clear(ctx context.Context, sess *session.Session) error
}

type Handler struct {
	service   Service
	responder *shared.Responder
	logger    *slog.Logger
}

func New(service Service, responder *shared.Responder, logger *slog.Logger) *Handler {
	return &Handler{service: service, responder: responder, logger: logger}
}

func (h *Handler) RegisterPages(r chi.Router) {
	r.Get("/cart", h.HandleCart)
}

func (h *Handler) RegisterActions(r chi.Router) {
	r.Post("/cart/items", h.HandleAdd)
	r.Put("/cart/items/{productID}", h.HandleUpdate)
	r.Delete("/cart/items/{productID}", h.HandleRemove)
	r.Delete("/cart", h.HandleClear)
}

func (h *Handler) HandleCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := shared.RequireSession(w, r)
	if !ok {
		return
	}
	c, err := h.service.Get(r.Context(), sess)
	if err != nil {
		h.responder.Page(w, r, err)
		return
	}
	view := NewView(c)
	view.Page = "cart"
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := shared.RequireSession(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddItemRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respond(w, r)(h.service.Add(ctx, sess, req.ProductID))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := shared.RequireSession(w, r)
	if !ok {
		return
	}
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateItemRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respond(w, r)(h.service.Update(ctx, sess, productID, *req.Count))
}

func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	sess, ok := shared.RequireSession(w, r)
	if !ok {
		return
	}
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}
	h.respond(w, r)(h.service.Remove(r.Context(), sess, productID))
}

func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	sess, ok := shared.RequireSession(w, r)
	if !ok {
		return
	}
	if err := h.service.Clear(r.Context(), sess); err != nil {
		h.responder.Action(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NewView(nil))
}

func (h *Handler) productID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "productID")
	if !shared.IsObjectID(id) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid product id"))
		return "", false
	}
	return id, true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request) func(*upstream.Cart, error) {
	return func(c *upstream.Cart, err error) {
		if err != nil {
			h.responder.Action(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, NewView(c))
	}
}
