// Package app assembles the storefront gateway from configuration: stores,
// the upstream client, feature services and the router. main and the
// end-to-end scenario tests share it.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"storefront/internal/account"
	accounthandler "storefront/internal/account/handler"
	"storefront/internal/appstate"
	"storefront/internal/audit"
	"storefront/internal/auth"
	authhandler "storefront/internal/auth/handler"
	"storefront/internal/cart"
	carthandler "storefront/internal/cart/handler"
	"storefront/internal/catalog"
	cataloghandler "storefront/internal/catalog/handler"
	"storefront/internal/checkout"
	checkouthandler "storefront/internal/checkout/handler"
	"storefront/internal/gate"
	"storefront/internal/imageproxy"
	"storefront/internal/platform/config"
	"storefront/internal/platform/metrics"
	platformredis "storefront/internal/platform/redis"
	"storefront/internal/route"
	"storefront/internal/session"
	httptransport "storefront/internal/transport/http"
	"storefront/internal/transport/http/shared"
	"storefront/internal/upstream"
	"storefront/internal/wishlist"
	wishlisthandler "storefront/internal/wishlist/handler"
)

// App is a wired gateway. Close releases background resources in reverse
// order of construction.
type App struct {
	Handler  http.Handler
	Sessions *session.Manager
	Audit    *audit.Publisher

	closers []func()
}

type options struct {
	registry   *prometheus.Registry
	auditStore audit.Store
	imageHTTP  *http.Client
}

type Option func(*options)

// WithRegistry registers metrics on reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithAuditStore replaces the configured audit sink.
func WithAuditStore(store audit.Store) Option {
	return func(o *options) { o.auditStore = store }
}

// WithImageClient replaces the HTTP client the image proxy fetches with.
func WithImageClient(c *http.Client) Option {
	return func(o *options) { o.imageHTTP = c }
}

// New builds the gateway. Redis and Kafka are optional: without REDIS_URL
// sessions and the catalog cache live in memory, and without brokers audit
// events stay in memory.
func New(ctx context.Context, cfg config.Server, logger *slog.Logger, opts ...Option) (*App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
		o.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	m := metrics.New(o.registry)

	a := &App{}
	cleanupEvery := cfg.Cache.CleanupInterval
	if cleanupEvery <= 0 {
		cleanupEvery = time.Minute
	}
	var health []httptransport.HealthCheck

	rdb, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	var (
		sessionStore session.Store
		catalogCache catalog.Cache
	)
	if rdb != nil {
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		health = append(health, httptransport.HealthCheck{Name: "redis", Check: rdb.Health})
		sessionStore = session.NewRedisStore(rdb.Client)
		catalogCache = catalog.NewRedisCache(rdb.Client)
		logger.InfoContext(ctx, "using redis for sessions and catalog cache")
	} else {
		memSessions := session.NewInMemoryStore(time.Now)
		memCatalog := catalog.NewMemoryCache(time.Now)
		a.background(func(ctx context.Context) { memSessions.StartCleanup(ctx, cleanupEvery) })
		a.background(func(ctx context.Context) { memCatalog.StartCleanup(ctx, cleanupEvery) })
		sessionStore = memSessions
		catalogCache = memCatalog
	}

	auditStore := o.auditStore
	if auditStore == nil {
		auditStore, err = newAuditStore(cfg.Audit, &health, a)
		if err != nil {
			a.Close()
			return nil, err
		}
	}
	publisher := audit.NewPublisher(auditStore,
		audit.WithAsyncBuffer(cfg.Audit.BufferSize),
		audit.WithLogger(logger),
		audit.WithMetrics(m),
	)
	// Publisher drains before the sinks close.
	a.closers = append(a.closers, publisher.Close)
	a.Audit = publisher

	manager := session.NewManager(sessionStore,
		session.NewCookieCodec(cfg.Session.SigningKey, cfg.Session.TTL),
		cfg.Session.TTL,
		session.WithCookieName(cfg.Session.CookieName),
		session.WithSecureCookie(cfg.Session.CookieSecure),
		session.WithLogger(logger),
		session.WithMetrics(m),
	)
	a.Sessions = manager

	client := upstream.New(cfg.Upstream, upstream.WithLogger(logger), upstream.WithMetrics(m))
	// Shared fetches outlive the request that started them, up to one
	// call's full retry budget.
	upstreamBudget := cfg.Upstream.Timeout * time.Duration(cfg.Upstream.RetryAttempts+1)
	state := appstate.New(manager, client, cfg.Cache.CartCountTTL,
		appstate.WithLogger(logger),
		appstate.WithMetrics(m),
		appstate.WithFetchTimeout(upstreamBudget),
	)
	a.background(func(ctx context.Context) { state.StartCleanup(ctx, cleanupEvery, cfg.Session.TTL) })

	resolver := gate.NewResolver(manager, client, cfg.Session.VerifyInterval,
		gate.WithLogger(logger),
		gate.WithVerifyTimeout(upstreamBudget),
		gate.WithClearedHook(func(ctx context.Context, sess *session.Session) {
			publisher.Record(ctx, audit.Event{
				Action:    audit.ActionSessionCleared,
				UserID:    sess.User.ID,
				SessionID: sess.ID,
				Reason:    "credential_verification",
			})
		}),
	)
	edge := gate.New(route.Default(), resolver, manager, logger, m)
	responder := shared.NewResponder(manager, publisher, logger)

	catalogSvc := catalog.NewService(client, catalog.WithCache(catalogCache, cfg.Cache.CatalogTTL), catalog.WithLogger(logger))
	wishlistSvc := wishlist.NewService(client)
	authSvc := auth.NewService(client, publisher, logger)
	cartSvc := cart.NewService(client, state)
	checkoutSvc := checkout.NewService(client, state, publisher, cfg.Upstream.CheckoutReturnURL, logger)
	accountSvc := account.NewService(client, publisher, logger)

	proxyOpts := []imageproxy.Option{imageproxy.WithMetrics(m)}
	if o.imageHTTP != nil {
		proxyOpts = append(proxyOpts, imageproxy.WithHTTPClient(o.imageHTTP))
	}

	a.Handler = httptransport.NewRouter(httptransport.Deps{
		Logger:         logger,
		Metrics:        m,
		Gatherer:       o.registry,
		Gate:           edge,
		Cart:           state,
		Responder:      responder,
		RequestTimeout: cfg.Upstream.Timeout * 3,

		Auth:     authhandler.New(authSvc, manager, responder, logger),
		Catalog:  cataloghandler.New(catalogSvc, wishlistSvc, responder, logger),
		Carts:    carthandler.New(cartSvc, responder, logger),
		Checkout: checkouthandler.New(checkoutSvc, responder, logger),
		Wishlist: wishlisthandler.New(wishlistSvc, responder, logger),
		Account:  accounthandler.New(accountSvc, manager, responder, logger),

		ImageProxy: imageproxy.New(cfg.ImageProxy.AllowedHosts, logger, proxyOpts...),
		Health:     health,
	})
	return a, nil
}

func newAuditStore(cfg config.AuditConfig, health *[]httptransport.HealthCheck, a *App) (audit.Store, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return audit.NewInMemoryStore(), nil
	}
	sink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		return nil, fmt.Errorf("audit kafka sink: %w", err)
	}
	a.closers = append(a.closers, sink.Close)
	*health = append(*health, httptransport.HealthCheck{Name: "kafka", Check: sink.Ping})
	return sink, nil
}

// background runs fn until Close.
func (a *App) background(fn func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(ctx)
	}()
	a.closers = append(a.closers, func() {
		cancel()
		<-done
	})
}

// Close stops background work and releases connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
