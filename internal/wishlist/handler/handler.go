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
	List(ctx context.Context, sess *session.Session) ([]upstream.Product, error)
	Add(ctx context.Context, sess *session.Session, productID string) ([]string, error)
	Remove(ctx context.Context, sess *session.Session, productID string) ([]string, error)
}

type Handler struct {
	service   Service
	responder *shared.Responder
	logger    *slog.Logger
}

func New(service Service, responder *shared.Responder, logger *slog.Logger) *Handler {
	return &Handler{service: service, responder: responder, logger: logger}
}

// RegisterPages mounts GET /wishlist behind the edge gate.
func (h *Handler) RegisterPages(r chi.Router) {
	r.Get("/wishlist", h.HandleWishlist)
}

// RegisterActions mounts the mutations; the router guards them with
// RequireCredential.
func (h *Handler) RegisterActions(r chi.Router) {
	r.Post("/wishlist", h.HandleAdd)
	r.Delete("/wishlist/{productID}", h.HandleRemove)
}

type Page struct {
	Page     string             `json:"page"`
	Count    int                `json:"count"`
	Products []upstream.Product `json:"products"`
}

// Membership is the response of wishlist mutations.
type Membership struct {
	Wishlist []string `json:"wishlist"`
	Count    int      `json:"count"`
}

type AddRequest struct {
	ProductID string `json:"productId"`
}

func (r *AddRequest) Normalize() {
	shared.Trim(&r.ProductID)
}

func (r *AddRequest) Validate() error {
	if !shared.IsObjectID(r.ProductID) {
		return dErrors.Validation(map[string]string{"productId": "a valid product id is required"})
	}
	return nil
}

func (h *Handler) HandleWishlist(w http.ResponseWriter, r *http.Request) {
	sess, ok := shared.RequireSession(w, r)
	if !ok {
		return
	}
	products, err := h.service.List(r.Context(), sess)
	if err != nil {
		h.responder.Page(w, r, err)
		return
	}
	if products == nil {
		products = []upstream.Product{}
	}
	httputil.WriteJSON(w, http.StatusOK, Page{Page: "wishlist", Count: len(products), Products: products})
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := shared.RequireSession(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	ids, err := h.service.Add(ctx, sess, req.ProductID)
	if err != nil {
		h.responder.Action(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, Membership{Wishlist: ids, Count: len(ids)})
}

func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := shared.RequireSession(w, r)
	if !ok {
		return
	}
	productID := chi.URLParam(r, "productID")
	if !shared.IsObjectID(productID) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid product id"))
		return
	}
	ids, err := h.service.Remove(ctx, sess, productID)
	if err != nil {
		h.responder.Action(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, Membership{Wishlist: ids, Count: len(ids)})
}
