// Package appstate is the shared application context: the one place the
// credential and the derived cart item count are read from, and the only
// writer of the cached count.
package appstate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"storefront/internal/platform/metrics"
	"storefront/internal/session"
	"storefront/internal/upstream"
	"storefront/pkg/requestcontext"
)

// Sessions is the session manager surface appstate depends on.
type Sessions interface {
	Get(r *http.Request) (*session.Session, bool)
	Subscribe(fn func(session.Change))
}

// CartFetcher reads the authoritative cart.
type CartFetcher interface {
	GetCart(ctx context.Context, token string) (*upstream.Cart, error)
}

// Count is the cart badge value. Updating is set while an invalidation has
// not yet been followed by a fresh fetch.
type Count struct {
	Value    int  `json:"count"`
	Updating bool `json:"updating"`
}

type entry struct {
	count     int
	fetchedAt time.Time
	lastSeen  time.Time
	stale     bool
	// issued numbers fetches in start order; applied is the newest applied.
	issued  uint64
	applied uint64
	// staleUpTo marks fetches issued at or before the last invalidation.
	staleUpTo  uint64
	generation uint64
}

// State holds per-session derived reads.
type State struct {
	sessions Sessions
	carts    CartFetcher
	ttl      time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics

	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group
}

// Option configures State.
type Option func(*State)

func WithLogger(logger *slog.Logger) Option {
	return func(s *State) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *State) { s.metrics = m }
}

// WithFetchTimeout bounds a shared cart fetch. The fetch is detached from
// the reader that started it, so a disconnect does not fail the others.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *State) { s.timeout = d }
}

const defaultFetchTimeout = 10 * time.Second

// New builds a State and subscribes it to session changes so cleared
// sessions are forgotten.
func New(sessions Sessions, carts CartFetcher, ttl time.Duration, opts ...Option) *State {
	s := &State{
		sessions: sessions,
		carts:    carts,
		ttl:      ttl,
		timeout:  defaultFetchTimeout,
		logger:   slog.Default(),
		entries:  make(map[string]*entry),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	sessions.Subscribe(func(c session.Change) {
		if c.Cleared {
			s.Forget(c.SessionID)
		}
	})
	return s
}

// Credential returns the request's session, delegating to the session store.
func (s *State) Credential(r *http.Request) (*session.Session, bool) {
	return s.sessions.Get(r)
}

// InvalidateCart marks the session's cart-derived reads stale. The next read
// refetches.
func (s *State) InvalidateCart(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok {
		return
	}
	e.stale = true
	e.staleUpTo = e.issued
	e.generation++
}

// Forget drops everything cached for a session.
func (s *State) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}

// DeleteIdle drops entries not read since now minus idle, such as those of
// sessions that expired without being cleared. It returns how many went.
func (s *State) DeleteIdle(now time.Time, idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) >= idle {
			delete(s.entries, id)
			deleted++
		}
	}
	return deleted
}

// StartCleanup runs DeleteIdle every interval until ctx is cancelled.
func (s *State) StartCleanup(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.DeleteIdle(time.Now(), idle); n > 0 {
				s.logger.DebugContext(ctx, "dropped idle cart counts", "count", n)
			}
		case <-ctx.Done():
			return
		}
	}
}

// CartItemCount returns the session's cart item count, refetching when the
// cached value is stale or older than the TTL. Concurrent reads of one
// session share a fetch. On an upstream 401 it reports 0 and returns the
// error so the caller clears the session.
func (s *State) CartItemCount(ctx context.Context, sess *session.Session) (Count, error) {
	now := requestcontext.Now(ctx)

	s.mu.Lock()
	e, ok := s.entries[sess.ID]
	if !ok {
		e = &entry{stale: true}
		s.entries[sess.ID] = e
	}
	e.lastSeen = now
	if !e.stale && now.Sub(e.fetchedAt) < s.ttl {
		c := Count{Value: e.count}
		s.mu.Unlock()
		return c, nil
	}
	key := sess.ID + "/" + strconv.FormatUint(e.generation, 10)
	s.mu.Unlock()

	ch := s.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.refresh(fctx, sess, e, now)
	})
	var (
		v   any
		err error
	)
	select {
	case out := <-ch:
		v, err = out.Val, out.Err
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return Count{}, err
		}
		s.mu.Lock()
		c := Count{Value: e.count, Updating: true}
		s.mu.Unlock()
		return c, err
	}
	return v.(Count), nil
}

func (s *State) refresh(ctx context.Context, sess *session.Session, e *entry, now time.Time) (Count, error) {
	s.mu.Lock()
	e.issued++
	seq := e.issued
	s.mu.Unlock()

	cart, err := s.carts.GetCart(ctx, sess.Token)
	if upstream.KindOf(err) == upstream.NotFound {
		// No cart yet, or it was cleared by an order.
		return s.apply(sess.ID, e, seq, 0, now), nil
	}
	if err != nil {
		s.metrics.IncCartRefresh("error")
		s.logger.WarnContext(ctx, "cart count refresh failed",
			"request_id", requestcontext.RequestID(ctx),
			"session", sess,
			"error", err,
		)
		return Count{}, err
	}
	return s.apply(sess.ID, e, seq, cart.NumItems, now), nil
}

// apply records a fetch result. Results older than the newest applied one
// are dropped; a result from before the last invalidation is kept but stays
// stale.
func (s *State) apply(sessionID string, e *entry, seq uint64, count int, now time.Time) Count {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries[sessionID] != e || seq <= e.applied {
		s.metrics.IncCartRefresh("dropped")
		return Count{Value: e.count, Updating: e.stale}
	}
	e.count = max(count, 0)
	e.applied = seq
	e.fetchedAt = now
	if seq > e.staleUpTo {
		e.stale = false
	}
	s.metrics.IncCartRefresh("applied")
	return Count{Value: e.count, Updating: e.stale}
}
