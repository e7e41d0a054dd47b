package gate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"storefront/internal/session"
	"storefront/internal/upstream"
	"storefront/pkg/requestcontext"
)

// Sessions is the part of the session manager the resolver needs.
type Sessions interface {
	Get(r *http.Request) (*session.Session, bool)
	MarkVerified(ctx context.Context, sess *session.Session, at time.Time) error
	Revoke(ctx context.Context, sessionID, reason string)
}

// Verifier checks a credential with the upstream.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (*upstream.VerifiedToken, error)
}

// Resolution is the outcome of resolving a request's credential.
type Resolution struct {
	State   State
	Session *session.Session
	// Cleared is set when resolution revoked the session; the caller should
	// expire the cookie.
	Cleared bool
}

// Resolver turns a request into a credential State. Local presence of a
// session is only a hint: the credential is re-verified with the upstream
// once VerifyInterval has passed.
type Resolver struct {
	sessions       Sessions
	verifier       Verifier
	verifyInterval time.Duration
	verifyTimeout  time.Duration
	logger         *slog.Logger
	onCleared      func(ctx context.Context, sess *session.Session)
	group          singleflight.Group
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

// WithVerifyTimeout bounds a shared verification. It runs detached from any
// single request so one shopper navigating away cannot fail the others.
func WithVerifyTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.verifyTimeout = d }
}

// WithClearedHook is called after a session is revoked because the upstream
// rejected its credential.
func WithClearedHook(fn func(ctx context.Context, sess *session.Session)) ResolverOption {
	return func(r *Resolver) { r.onCleared = fn }
}

const defaultVerifyTimeout = 10 * time.Second

func NewResolver(sessions Sessions, verifier Verifier, verifyInterval time.Duration, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		sessions:       sessions,
		verifier:       verifier,
		verifyInterval: verifyInterval,
		verifyTimeout:  defaultVerifyTimeout,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve resolves the credential state of req.
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) Resolution {
	sess, ok := r.sessions.Get(req.WithContext(ctx))
	if !ok {
		return Resolution{State: Unauthenticated}
	}
	now := requestcontext.Now(ctx)
	if !sess.NeedsVerification(now, r.verifyInterval) {
		return Resolution{State: Authenticated, Session: sess}
	}

	// Concurrent navigations of one session share a single verification.
	// Each caller still stops waiting when its own request ends.
	ch := r.group.DoChan(sess.ID, func() (any, error) {
		vctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.verifyTimeout)
		defer cancel()
		return r.verify(vctx, sess, now), nil
	})
	select {
	case out := <-ch:
		res := out.Val.(Resolution)
		if res.Session != nil {
			res.Session = sess
		}
		return res
	case <-ctx.Done():
		return Resolution{State: Unknown, Session: sess}
	}
}

func (r *Resolver) verify(ctx context.Context, sess *session.Session, now time.Time) Resolution {
	_, err := r.verifier.VerifyToken(ctx, sess.Token)
	switch {
	case err == nil:
		if err := r.sessions.MarkVerified(ctx, sess, now); err != nil {
			r.logger.WarnContext(ctx, "failed to record credential verification",
				"request_id", requestcontext.RequestID(ctx),
				"session", sess,
				"error", err,
			)
		}
		return Resolution{State: Authenticated, Session: sess}
	case errors.Is(err, upstream.ErrUnauthorized):
		r.logger.InfoContext(ctx, "credential rejected by upstream, clearing session",
			"request_id", requestcontext.RequestID(ctx),
			"session", sess,
		)
		r.sessions.Revoke(ctx, sess.ID, session.ReasonUnauthorized)
		if r.onCleared != nil {
			r.onCleared(ctx, sess)
		}
		return Resolution{State: Unauthenticated, Cleared: true}
	default:
		r.logger.WarnContext(ctx, "credential verification unavailable",
			"request_id", requestcontext.RequestID(ctx),
			"session", sess,
			"error", err,
		)
		return Resolution{State: Unknown, Session: sess}
	}
}
