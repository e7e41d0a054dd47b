// Package httptransport assembles the gateway's HTTP surface: platform
// middleware, the edge gate in front of every page, the credential guard in
// front of every mutation, and the support endpoints.
package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/internal/appstate"
	"storefront/internal/gate"
	"storefront/internal/imageproxy"
	"storefront/internal/platform/metrics"
	"storefront/internal/platform/middleware"
	"storefront/internal/session"
	"storefront/internal/transport/http/shared"
	"storefront/internal/upstream"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/platform/httputil"
	"storefront/pkg/requestcontext"
)

// Pages is implemented by feature handlers that serve GET pages.
type Pages interface {
	RegisterPages(r chi.Router)
}

// Actions is implemented by feature handlers that serve mutations.
type Actions interface {
	RegisterActions(r chi.Router)
}

// Feature is a handler with both pages and actions.
type Feature interface {
	Pages
	Actions
}

// CartCounter reads the cart badge count.
type CartCounter interface {
	CartItemCount(ctx context.Context, sess *session.Session) (appstate.Count, error)
}

// HealthCheck probes one dependency for /healthz.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Deps is everything the router mounts. Catalog only has pages; Auth's
// actions run without the credential guard so signed-out shoppers can sign
// in.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	Gate           *gate.Gate
	Cart           CartCounter
	Responder      *shared.Responder
	RequestTimeout time.Duration

	Auth     Feature
	Catalog  interface{ Register(r chi.Router) }
	Carts    Feature
	Checkout Feature
	Wishlist Feature
	Account  Feature

	ImageProxy *imageproxy.Handler
	Health     []HealthCheck
}

// NewRouter wires every route. Support endpoints sit outside the gate so
// health probes and image loads never trigger credential verification.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Latency(d.Metrics))
	if d.RequestTimeout > 0 {
		r.Use(middleware.Timeout(d.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, shared.NotFoundPage{Page: "not_found", Back: gate.LandingPath})
	})

	r.Get("/healthz", healthHandler(d.Health))
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}
	if d.ImageProxy != nil {
		d.ImageProxy.Register(r)
	}

	r.Group(func(r chi.Router) {
		r.Use(d.Gate.Middleware)

		d.Auth.RegisterPages(r)
		d.Catalog.Register(r)
		for _, f := range []Feature{d.Carts, d.Checkout, d.Wishlist, d.Account} {
			f.RegisterPages(r)
		}
		r.Get("/api/context", contextHandler(d))

		d.Auth.RegisterActions(r)
		r.Group(func(r chi.Router) {
			r.Use(d.Gate.RequireCredential)
			for _, f := range []Feature{d.Carts, d.Checkout, d.Wishlist, d.Account} {
				f.RegisterActions(r)
			}
		})
	})
	return r
}

// AppContext is what the page shell needs on every load: who is signed in
// and the cart badge.
type AppContext struct {
	Authenticated bool                 `json:"authenticated"`
	State         string               `json:"state"`
	User          *session.UserSummary `json:"user,omitempty"`
	Cart          *appstate.Count      `json:"cart,omitempty"`
}

func contextHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		res, _ := gate.FromContext(ctx)
		out := AppContext{State: res.State.String()}
		w.Header().Set("Cache-Control", "no-store")

		sess, ok := gate.SessionFrom(ctx)
		if !ok {
			httputil.WriteJSON(w, http.StatusOK, out)
			return
		}
		out.Authenticated = true
		out.User = &sess.User

		count, err := d.Cart.CartItemCount(ctx, sess)
		switch {
		case err == nil:
			out.Cart = &count
		case !isUnauthorized(err):
			// Badge shows the last known count while the upstream recovers.
			d.Logger.WarnContext(ctx, "cart count unavailable",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			out.Cart = &count
		default:
			d.Responder.Action(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, out)
	}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		out := healthResponse{Status: "ok"}
		status := http.StatusOK
		for _, c := range checks {
			if out.Checks == nil {
				out.Checks = make(map[string]string, len(checks))
			}
			if err := c.Check(ctx); err != nil {
				out.Checks[c.Name] = err.Error()
				out.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			out.Checks[c.Name] = "ok"
		}
		httputil.WriteJSON(w, status, out)
	}
}

func isUnauthorized(err error) bool {
	return errors.Is(err, upstream.ErrUnauthorized) || dErrors.HasCode(err, dErrors.CodeUnauthorized)
}
