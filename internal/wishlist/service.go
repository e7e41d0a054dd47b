// Package wishlist manages the shopper's saved products. Membership is
// always derived from the upstream list, never kept locally.
package wishlist

import (
	"context"

	"storefront/internal/session"
	"storefront/internal/upstream"
)

type Upstream interface {
	GetWishlist(ctx context.Context, token string) ([]upstream.Product, error)
	AddToWishlist(ctx context.Context, token, productID string) ([]string, error)
	RemoveFromWishlist(ctx context.Context, token, productID string) ([]string, error)
}

type Service struct {
	upstream Upstream
}

func NewService(up Upstream) *Service {
	return &Service{upstream: up}
}

func (s *Service) List(ctx context.Context, sess *session.Session) ([]upstream.Product, error) {
	products, err := s.upstream.GetWishlist(ctx, sess.Token)
	if err != nil {
		return nil, upstream.Translate(err, "load wishlist")
	}
	return products, nil
}

// ProductIDs returns the set of saved product ids.
func (s *Service) ProductIDs(ctx context.Context, sess *session.Session) (map[string]bool, error) {
	products, err := s.List(ctx, sess)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(products))
	for _, p := range products {
		ids[p.ID] = true
	}
	return ids, nil
}

// Add saves a product and returns the ids now on the list.
func (s *Service) Add(ctx context.Context, sess *session.Session, productID string) ([]string, error) {
	ids, err := s.upstream.AddToWishlist(ctx, sess.Token, productID)
	if err != nil {
		return nil, upstream.Translate(err, "add to wishlist")
	}
	return ids, nil
}

// Remove drops a product and returns the ids still on the list.
func (s *Service) Remove(ctx context.Context, sess *session.Session, productID string) ([]string, error) {
	ids, err := s.upstream.RemoveFromWishlist(ctx, sess.Token, productID)
	if err != nil {
		return nil, upstream.Translate(err, "remove from wishlist")
	}
	return ids, nil
}
