package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/platform/metrics"
	"storefront/pkg/platform/sentinel"
	"storefront/pkg/requestcontext"
)

// DefaultCookieName is the name of the session cookie.
const DefaultCookieName = "session"

// Manager is the only reader and writer of the shopper's credential. Every
// other component goes through it.
type Manager struct {
	store      Store
	codec      *CookieCodec
	cookieName string
	secure     bool
	ttl        time.Duration
	logger     *slog.Logger
	metrics    *metrics.Metrics

	mu          sync.RWMutex
	subscribers []func(Change)
}

// Option configures a Manager.
type Option func(*Manager)

func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.cookieName = name
		}
	}
}

func WithSecureCookie(secure bool) Option {
	return func(m *Manager) { m.secure = secure }
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) { m.metrics = mt }
}

// NewManager builds a Manager. ttl bounds both the record and the cookie.
func NewManager(store Store, codec *CookieCodec, ttl time.Duration, opts ...Option) *Manager {
	m := &Manager{
		store:      store,
		codec:      codec,
		cookieName: DefaultCookieName,
		ttl:        ttl,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// New builds a fresh session for a signed-in shopper, verified at now.
func (m *Manager) New(token string, user UserSummary, now time.Time) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Token:      token,
		User:       user,
		CreatedAt:  now,
		ExpiresAt:  now.Add(m.ttl),
		VerifiedAt: now,
	}
}

// Get resolves the session named by the request's cookie. Every failure
// reads as absent; store errors are logged.
func (m *Manager) Get(r *http.Request) (*Session, bool) {
	ctx := r.Context()
	id, ok := m.sessionID(r)
	if !ok {
		return nil, false
	}
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			m.logger.WarnContext(ctx, "session store read failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
		return nil, false
	}
	if sess.IsExpired(requestcontext.Now(ctx)) {
		return nil, false
	}
	return sess, true
}

func (m *Manager) sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(m.cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	id, err := m.codec.Decode(c.Value, requestcontext.Now(r.Context()))
	if err != nil {
		return "", false
	}
	return id, true
}

// Set persists sess, writes its cookie and notifies subscribers. A session
// already bound to the request is revoked first.
func (m *Manager) Set(w http.ResponseWriter, r *http.Request, sess *Session) error {
	ctx := r.Context()
	if prev, ok := m.sessionID(r); ok && prev != sess.ID {
		m.Revoke(ctx, prev, ReasonReplaced)
	}
	if err := m.store.Save(ctx, sess, m.ttl); err != nil {
		return err
	}
	value, err := m.codec.Encode(sess.ID, requestcontext.Now(ctx))
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	m.notify(Change{SessionID: sess.ID})
	return nil
}

// Clear removes the request's session record (if any) and expires the cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request, reason string) {
	if id, ok := m.sessionID(r); ok {
		m.Revoke(r.Context(), id, reason)
	}
	m.ExpireCookie(w)
}

// Revoke deletes a session record by id and notifies subscribers. Used when
// no response writer is at hand.
func (m *Manager) Revoke(ctx context.Context, sessionID, reason string) {
	if err := m.store.Delete(ctx, sessionID); err != nil {
		m.logger.WarnContext(ctx, "session delete failed",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", sessionID,
			"error", err,
		)
	}
	m.metrics.IncSessionCleared(reason)
	m.notify(Change{SessionID: sessionID, Cleared: true, Reason: reason})
}

// ExpireCookie instructs the browser to drop the session cookie.
func (m *Manager) ExpireCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// MarkVerified records a successful upstream credential check.
func (m *Manager) MarkVerified(ctx context.Context, sess *Session, at time.Time) error {
	if err := m.store.Touch(ctx, sess.ID, at); err != nil {
		return err
	}
	sess.VerifiedAt = at
	return nil
}

// Subscribe registers fn for every subsequent Change. Callbacks run
// synchronously on the writer's goroutine and must not block.
func (m *Manager) Subscribe(fn func(Change)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

func (m *Manager) notify(c Change) {
	m.mu.RLock()
	subs := append([]func(Change){}, m.subscribers...)
	m.mu.RUnlock()
	for _, fn := range subs {
		fn(c)
	}
}
