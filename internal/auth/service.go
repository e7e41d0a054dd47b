// Package auth signs shoppers in and up against the upstream store and
// turns the issued credential into a session identity.
package auth

import (
	"context"
	"log/slog"

	"storefront/internal/audit"
	"storefront/internal/session"
	"storefront/internal/upstream"
	"storefront/pkg/requestcontext"
)

// Upstream is the slice of the remote client the auth flows call.
type Upstream interface {
	SignIn(ctx context.Context, email, password string) (*upstream.AuthResult, error)
	SignUp(ctx context.Context, req upstream.SignUpRequest) (*upstream.AuthResult, error)
	VerifyToken(ctx context.Context, token string) (*upstream.VerifiedToken, error)
}

// Auditor records audit events without failing the caller.
type Auditor interface {
	Record(ctx context.Context, event audit.Event)
}

// Identity is what a successful sign-in yields: the credential and the
// shopper it belongs to.
type Identity struct {
	Token string
	User  session.UserSummary
}

type Service struct {
	upstream Upstream
	auditor  Auditor
	logger   *slog.Logger
}

func NewService(up Upstream, auditor Auditor, logger *slog.Logger) *Service {
	return &Service{upstream: up, auditor: auditor, logger: logger}
}

// SignIn exchanges credentials for an Identity. Sign-in responses do not
// always carry the user id, so it is filled from the verify endpoint.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	res, err := s.upstream.SignIn(ctx, email, password)
	if err != nil {
		s.auditor.Record(ctx, audit.Event{
			Action:  audit.ActionSignInFailed,
			Subject: email,
			Reason:  upstream.KindOf(err).String(),
		})
		return nil, upstream.Translate(err, "sign in")
	}

	user := session.UserSummary{
		ID:    res.User.ID,
		Name:  res.User.Name,
		Email: res.User.Email,
		Role:  res.User.Role,
	}
	if user.ID == "" {
		verified, err := s.upstream.VerifyToken(ctx, res.Token)
		if err != nil {
			s.logger.WarnContext(ctx, "verify after sign-in failed",
				"request_id", requestcontext.RequestID(ctx),
				"credential", session.Fingerprint(res.Token),
				"error", err,
			)
			return nil, upstream.Translate(err, "sign in")
		}
		user.ID = verified.ID
		if user.Name == "" {
			user.Name = verified.Name
		}
		if user.Role == "" {
			user.Role = verified.Role
		}
	}

	s.auditor.Record(ctx, audit.Event{Action: audit.ActionSignIn, UserID: user.ID, Subject: user.Email})
	return &Identity{Token: res.Token, User: user}, nil
}

// SignUp registers a shopper. The caller signs in separately afterwards.
func (s *Service) SignUp(ctx context.Context, req upstream.SignUpRequest) error {
	res, err := s.upstream.SignUp(ctx, req)
	if err != nil {
		return upstream.Translate(err, "sign up")
	}
	s.auditor.Record(ctx, audit.Event{Action: audit.ActionSignUp, UserID: res.User.ID, Subject: req.Email})
	return nil
}

// SignedOut records the end of a session.
func (s *Service) SignedOut(ctx context.Context, sess *session.Session) {
	s.auditor.Record(ctx, audit.Event{
		Action:    audit.ActionSignOut,
		UserID:    sess.User.ID,
		SessionID: sess.ID,
	})
}
