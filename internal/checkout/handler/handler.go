package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	cartview "storefront/internal/cart/handler"
	"storefront/internal/checkout"
	"storefront/internal/session"
	"storefront/internal/transport/http/shared"
	"storefront/internal/upstream"
	"storefront/pkg/platform/httputil"
	"storefront/pkg/requestcontext"
)

// OrdersPath is where a shopper lands after a cash order.
const OrdersPath = "/allorders"

type Service interface {
	Summary(ctx context.Context, sess *session.Session) (*checkout.Summary, error)
	PlaceOrder(ctx context.Context, sess *session.Session, req checkout.Order) (*checkout.Placement, error)
	Orders(ctx context.Context, sess *session.Session) ([]upstream.Order, error)
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
	r.Get("/cart/checkout", h.HandleCheckout)
	r.Get(OrdersPath, h.HandleOrders)
}

func (h *Handler) RegisterActions(r chi.Router) {
	r.Post("/cart/checkout", h.HandlePlaceOrder)
}

type CheckoutPage struct {
	Page                 string             `json:"page"`
	Cart                 cartview.View      `json:"cart"`
	Addresses            []upstream.Address `json:"addresses"`
	AddressesUnavailable bool               `json:"addressesUnavailable,omitempty"`
	Methods              []checkout.Method  `json:"methods"`
}

type OrdersPage struct {
	Page   string           `json:"page"`
	Count  int              `json:"count"`
	Orders []upstream.Order `json:"orders"`
}

// Confirmation answers POST /cart/checkout. Redirect is the orders page for
// cash orders and the hosted payment page for online ones.
type Confirmation struct {
	Method   checkout.Method `json:"method"`
	Order    *upstream.Order `json:"order,omitempty"`
	Redirect string          `json:"redirect"`
	Message  string          `json:"message"`
}

func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := shared.RequireSession(w, r)
	if !ok {
		return
	}
	sum, err := h.service.Summary(r.Context(), sess)
	if err != nil {
		h.responder.Critical(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CheckoutPage{
		Page:                 "checkout",
		Cart:                 cartview.NewView(sum.Cart),
		Addresses:            sum.Addresses,
		AddressesUnavailable: sum.AddressesUnavailable,
		Methods:              []checkout.Method{checkout.MethodOnline, checkout.MethodCash},
	})
}

func (h *Handler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := shared.RequireSession(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[PlaceOrderRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	p, err := h.service.PlaceOrder(ctx, sess, req.toOrder())
	if err != nil {
		h.responder.Action(w, r, err)
		return
	}
	if p.Method == checkout.MethodOnline {
		httputil.WriteJSON(w, http.StatusOK, Confirmation{
			Method:   p.Method,
			Redirect: p.RedirectURL,
			Message:  "Continue to payment",
		})
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, Confirmation{
		Method:   p.Method,
		Order:    p.Order,
		Redirect: OrdersPath,
		Message:  "Cash order placed successfully",
	})
}

func (h *Handler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	sess, ok := shared.RequireSession(w, r)
	if !ok {
		return
	}
	orders, err := h.service.Orders(r.Context(), sess)
	if err != nil {
		h.responder.Page(w, r, err)
		return
	}
	if orders == nil {
		orders = []upstream.Order{}
	}
	httputil.WriteJSON(w, http.StatusOK, OrdersPage{Page: "orders", Count: len(orders), Orders: orders})
}
