// Package cart drives cart mutations. The cart returned by the upstream
// after each call is the only truth; every mutation invalidates the cached
// item count.
package cart

import (
	"context"

	"storefront/internal/session"
	"storefront/internal/upstream"
)

type Upstream interface {
	GetCart(ctx context.Context, token string) (*upstream.Cart, error)
	AddToCart(ctx context.Context, token, productID string) (*upstream.Cart, error)
	UpdateCartItem(ctx context.Context, token, productID string, count int) (*upstream.Cart, error)
	RemoveFromCart(ctx context.Context, token, productID string) (*upstream.Cart, error)
	ClearCart(ctx context.Context, token string) error
}

// Counts is the single writer of the cached cart item count.
type Counts interface {
	InvalidateCart(sessionID string)
}

type Service struct {
	upstream Upstream
	counts   Counts
	locks    *keyedMutex
}

func NewService(up Upstream, counts Counts) *Service {
	return &Service{upstream: up, counts: counts, locks: newKeyedMutex()}
}

// Get returns the shopper's cart. A shopper without a cart gets an empty
// one.
func (s *Service) Get(ctx context.Context, sess *session.Session) (*upstream.Cart, error) {
	c, err := s.upstream.GetCart(ctx, sess.Token)
	if upstream.KindOf(err) == upstream.NotFound {
		return &upstream.Cart{}, nil
	}
	if err != nil {
		return nil, upstream.Translate(err, "load cart")
	}
	return c, nil
}

func (s *Service) Add(ctx context.Context, sess *session.Session, productID string) (*upstream.Cart, error) {
	defer s.lock(sess, productID)()
	c, err := s.upstream.AddToCart(ctx, sess.Token, productID)
	if err != nil {
		return nil, upstream.Translate(err, "add to cart")
	}
	return c, nil
}

// Update sets a line's quantity. A quantity below 1 removes the line.
func (s *Service) Update(ctx context.Context, sess *session.Session, productID string, count int) (*upstream.Cart, error) {
	if count < 1 {
		return s.Remove(ctx, sess, productID)
	}
	defer s.lock(sess, productID)()
	c, err := s.upstream.UpdateCartItem(ctx, sess.Token, productID, count)
	if err != nil {
		return nil, upstream.Translate(err, "update cart")
	}
	return c, nil
}

func (s *Service) Remove(ctx context.Context, sess *session.Session, productID string) (*upstream.Cart, error) {
	defer s.lock(sess, productID)()
	c, err := s.upstream.RemoveFromCart(ctx, sess.Token, productID)
	if err != nil {
		return nil, upstream.Translate(err, "remove from cart")
	}
	return c, nil
}

// Clear empties the cart. Clearing a cart that no longer exists succeeds.
func (s *Service) Clear(ctx context.Context, sess *session.Session) error {
	defer s.counts.InvalidateCart(sess.ID)
	err := s.upstream.ClearCart(ctx, sess.Token)
	if err != nil && upstream.KindOf(err) != upstream.NotFound {
		return upstream.Translate(err, "clear cart")
	}
	return nil
}

// lock serialises mutations of one cart line and returns a release func
// that also invalidates the cached count, whatever the outcome.
func (s *Service) lock(sess *session.Session, productID string) func() {
	unlock := s.locks.Lock(sess.ID + "/" + productID)
	return func() {
		s.counts.InvalidateCart(sess.ID)
		unlock()
	}
}
