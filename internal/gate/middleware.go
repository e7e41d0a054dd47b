package gate

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/platform/metrics"
	"storefront/internal/route"
	"storefront/internal/session"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/platform/httputil"
	"storefront/pkg/requestcontext"
)

type resolutionKey struct{}

// WithResolution stores res in ctx, along with the session and user ids.
func WithResolution(ctx context.Context, res Resolution) context.Context {
	ctx = context.WithValue(ctx, resolutionKey{}, res)
	if res.Session != nil {
		ctx = requestcontext.WithSessionID(ctx, res.Session.ID)
		ctx = requestcontext.WithUserID(ctx, res.Session.User.ID)
	}
	return ctx
}

// FromContext returns the resolution stored by the gate, if any.
func FromContext(ctx context.Context) (Resolution, bool) {
	res, ok := ctx.Value(resolutionKey{}).(Resolution)
	return res, ok
}

// SessionFrom returns the authenticated session resolved for this request.
func SessionFrom(ctx context.Context) (*session.Session, bool) {
	res, ok := FromContext(ctx)
	if !ok || res.State != Authenticated || res.Session == nil {
		return nil, false
	}
	return res.Session, true
}

// CookieExpirer drops the session cookie when resolution revoked the session.
type CookieExpirer interface {
	ExpireCookie(w http.ResponseWriter)
}

// Gate is the single gate implementation. Middleware guards page
// navigations; RequireCredential guards actions. Both share one Resolver.
type Gate struct {
	classifier *route.Classifier
	resolver   *Resolver
	cookies    CookieExpirer
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func New(classifier *route.Classifier, resolver *Resolver, cookies CookieExpirer, logger *slog.Logger, m *metrics.Metrics) *Gate {
	return &Gate{
		classifier: classifier,
		resolver:   resolver,
		cookies:    cookies,
		logger:     logger,
		metrics:    m,
	}
}

// resolve returns the request's resolution, computing it at most once.
func (g *Gate) resolve(w http.ResponseWriter, r *http.Request) (Resolution, *http.Request) {
	if res, ok := FromContext(r.Context()); ok {
		return res, r
	}
	res := g.resolver.Resolve(r.Context(), r)
	if res.Cleared {
		g.cookies.ExpireCookie(w)
	}
	return res, r.WithContext(WithResolution(r.Context(), res))
}

// Middleware resolves the credential for every request and applies the
// navigation decision to GET and HEAD requests.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, r := g.resolve(w, r)
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		class := g.classifier.Classify(r.URL.Path)
		decision := Decide(class, res.State)
		g.metrics.ObserveGateDecision(class.String(), decision.String())

		switch decision {
		case RedirectSignIn, RedirectLanding:
			g.logger.DebugContext(r.Context(), "gate redirect",
				"request_id", requestcontext.RequestID(r.Context()),
				"path", r.URL.Path,
				"state", res.State.String(),
				"location", decision.Location(),
			)
			httputil.WriteRedirect(w, r, decision.Location())
		case Pending:
			WritePending(w)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// WritePending renders the loading placeholder shown while the credential
// cannot be resolved.
func WritePending(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "1")
	w.Header().Set("Cache-Control", "no-store")
	httputil.WriteJSON(w, http.StatusAccepted, map[string]string{"page": "loading"})
}

// RequireCredential rejects actions without a verified credential: 401 with
// a sign-in redirect hint, or 503 while the credential cannot be resolved.
func (g *Gate) RequireCredential(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, r := g.resolve(w, r)
		switch res.State {
		case Authenticated:
			next.ServeHTTP(w, r)
		case Unauthenticated:
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "sign in required"))
		default:
			w.Header().Set("Retry-After", "1")
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnavailable, "unable to verify session, try again"))
		}
	})
}
