// Package account serves the shopper's profile page and the changes made
// from it: saved addresses, password and contact details.
package account

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"storefront/internal/audit"
	"storefront/internal/checkout"
	"storefront/internal/session"
	"storefront/internal/upstream"
	"storefront/pkg/requestcontext"
)

type Upstream interface {
	VerifyToken(ctx context.Context, token string) (*upstream.VerifiedToken, error)
	ListAddresses(ctx context.Context, token string) ([]upstream.Address, error)
	AddAddress(ctx context.Context, token string, addr upstream.Address) ([]upstream.Address, error)
	DeleteAddress(ctx context.Context, token, addressID string) ([]upstream.Address, error)
	ListOrders(ctx context.Context, token, userID string) ([]upstream.Order, error)
	GetUser(ctx context.Context, userID string) (*upstream.User, error)
	ChangePassword(ctx context.Context, token string, req upstream.ChangePasswordRequest) (*upstream.AuthResult, error)
	UpdateProfile(ctx context.Context, token string, req upstream.ProfileUpdate) (*upstream.User, error)
}

type Auditor interface {
	Record(ctx context.Context, event audit.Event)
}

type Service struct {
	upstream Upstream
	auditor  Auditor
	logger   *slog.Logger
}

func NewService(up Upstream, auditor Auditor, logger *slog.Logger) *Service {
	return &Service{upstream: up, auditor: auditor, logger: logger}
}

// Profile is the profile page: who the shopper is, where they ship to and
// what they ordered.
type Profile struct {
	User      session.UserSummary
	Phone     string
	Addresses []upstream.Address
	Orders    []upstream.Order
}

// Profile verifies the credential to learn the user id, then loads orders
// and the stored user record for it while the address book loads alongside.
// A missing user record only costs the contact details.
func (s *Service) Profile(ctx context.Context, sess *session.Session) (*Profile, error) {
	p := Profile{User: sess.User}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addrs, err := s.upstream.ListAddresses(gctx, sess.Token)
		if err != nil {
			return upstream.Translate(err, "load addresses")
		}
		p.Addresses = addrs
		return nil
	})
	g.Go(func() error {
		verified, err := s.upstream.VerifyToken(gctx, sess.Token)
		if err != nil {
			return upstream.Translate(err, "load profile")
		}
		var record *upstream.User
		ug, uctx := errgroup.WithContext(gctx)
		ug.Go(func() error {
			orders, err := s.upstream.ListOrders(uctx, sess.Token, verified.ID)
			if err != nil {
				return upstream.Translate(err, "load orders")
			}
			checkout.SortNewestFirst(orders)
			p.Orders = orders
			return nil
		})
		ug.Go(func() error {
			record = s.userRecord(uctx, verified.ID)
			return nil
		})
		if err := ug.Wait(); err != nil {
			return err
		}
		if record != nil {
			if record.Name != "" {
				p.User.Name = record.Name
			}
			if record.Email != "" {
				p.User.Email = record.Email
			}
			p.Phone = record.Phone
		}
		p.User.ID = verified.ID
		if p.User.Name == "" {
			p.User.Name = verified.Name
		}
		if p.User.Role == "" {
			p.User.Role = verified.Role
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if p.Addresses == nil {
		p.Addresses = []upstream.Address{}
	}
	if p.Orders == nil {
		p.Orders = []upstream.Order{}
	}
	return &p, nil
}

func (s *Service) userRecord(ctx context.Context, userID string) *upstream.User {
	user, err := s.upstream.GetUser(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "user record unavailable",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		return nil
	}
	return user
}

func (s *Service) AddAddress(ctx context.Context, sess *session.Session, addr upstream.Address) ([]upstream.Address, error) {
	addrs, err := s.upstream.AddAddress(ctx, sess.Token, addr)
	if err != nil {
		return nil, upstream.Translate(err, "add address")
	}
	s.auditor.Record(ctx, audit.Event{
		Action:    audit.ActionAddressAdded,
		UserID:    sess.User.ID,
		SessionID: sess.ID,
		Subject:   addr.City,
	})
	return addrs, nil
}

func (s *Service) RemoveAddress(ctx context.Context, sess *session.Session, addressID string) ([]upstream.Address, error) {
	addrs, err := s.upstream.DeleteAddress(ctx, sess.Token, addressID)
	if err != nil {
		return nil, upstream.Translate(err, "remove address")
	}
	s.auditor.Record(ctx, audit.Event{
		Action:    audit.ActionAddressRemoved,
		UserID:    sess.User.ID,
		SessionID: sess.ID,
		Subject:   addressID,
	})
	return addrs, nil
}

// ChangePassword rotates the password and returns the replacement
// credential. The caller must swap it into the session; the old one stops
// working upstream.
func (s *Service) ChangePassword(ctx context.Context, sess *session.Session, req upstream.ChangePasswordRequest) (string, error) {
	res, err := s.upstream.ChangePassword(ctx, sess.Token, req)
	if err != nil {
		return "", upstream.Translate(err, "change password")
	}
	s.logger.InfoContext(ctx, "password changed, credential rotated",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", sess.User.ID,
		"credential", session.Fingerprint(res.Token),
	)
	s.auditor.Record(ctx, audit.Event{
		Action:    audit.ActionPasswordChanged,
		UserID:    sess.User.ID,
		SessionID: sess.ID,
	})
	return res.Token, nil
}

// UpdateProfile changes name, email and phone and returns the session
// identity with the changes applied.
func (s *Service) UpdateProfile(ctx context.Context, sess *session.Session, req upstream.ProfileUpdate) (session.UserSummary, error) {
	u, err := s.upstream.UpdateProfile(ctx, sess.Token, req)
	if err != nil {
		return session.UserSummary{}, upstream.Translate(err, "update profile")
	}
	updated := sess.User
	updated.Name = firstNonEmpty(u.Name, req.Name)
	updated.Email = firstNonEmpty(u.Email, req.Email)
	s.auditor.Record(ctx, audit.Event{
		Action:    audit.ActionProfileUpdated,
		UserID:    sess.User.ID,
		SessionID: sess.ID,
	})
	return updated, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
