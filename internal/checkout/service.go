// Package checkout turns a shopper's cart into an order, either paid on
// delivery or through a hosted payment session, and lists past orders.
package checkout

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"storefront/internal/audit"
	"storefront/internal/session"
	"storefront/internal/upstream"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/requestcontext"
)

// Method is how an order is paid.
type Method string

const (
	MethodCash   Method = "cash"
	MethodOnline Method = "online"
)

func (m Method) IsValid() bool {
	return m == MethodCash || m == MethodOnline
}

type Upstream interface {
	GetCart(ctx context.Context, token string) (*upstream.Cart, error)
	ClearCart(ctx context.Context, token string) error
	ListAddresses(ctx context.Context, token string) ([]upstream.Address, error)
	CreateCashOrder(ctx context.Context, token, cartID string, addr upstream.ShippingAddress) (*upstream.Order, error)
	CreateCheckoutSession(ctx context.Context, token, cartID string, addr upstream.ShippingAddress, returnURL string) (*upstream.CheckoutSession, error)
	ListOrders(ctx context.Context, token, userID string) ([]upstream.Order, error)
	VerifyToken(ctx context.Context, token string) (*upstream.VerifiedToken, error)
}

type Counts interface {
	InvalidateCart(sessionID string)
}

type Auditor interface {
	Record(ctx context.Context, event audit.Event)
}

type Service struct {
	upstream  Upstream
	counts    Counts
	auditor   Auditor
	returnURL string
	logger    *slog.Logger
}

func NewService(up Upstream, counts Counts, auditor Auditor, returnURL string, logger *slog.Logger) *Service {
	return &Service{upstream: up, counts: counts, auditor: auditor, returnURL: returnURL, logger: logger}
}

// Summary is what the checkout page shows: the cart being ordered and the
// shopper's saved addresses.
type Summary struct {
	Cart      *upstream.Cart
	Addresses []upstream.Address
	// AddressesUnavailable is set when the address book could not be loaded;
	// the shopper can still enter an address by hand.
	AddressesUnavailable bool
}

// Summary loads the cart and the address book concurrently. A cart failure
// fails the page; an address failure other than an expired credential only
// degrades it.
func (s *Service) Summary(ctx context.Context, sess *session.Session) (*Summary, error) {
	var sum Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.upstream.GetCart(gctx, sess.Token)
		if upstream.KindOf(err) == upstream.NotFound {
			sum.Cart = &upstream.Cart{}
			return nil
		}
		if err != nil {
			return upstream.Translate(err, "load cart")
		}
		sum.Cart = c
		return nil
	})
	g.Go(func() error {
		addrs, err := s.upstream.ListAddresses(gctx, sess.Token)
		if err == nil {
			sum.Addresses = addrs
			return nil
		}
		if upstream.KindOf(err) == upstream.AuthFailure {
			return upstream.Translate(err, "load addresses")
		}
		s.logger.WarnContext(ctx, "address book unavailable on checkout",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		sum.AddressesUnavailable = true
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if sum.Addresses == nil {
		sum.Addresses = []upstream.Address{}
	}
	return &sum, nil
}

// Order is a request to place the current cart. Exactly one of AddressID
// and Address is used; AddressID wins when both are set.
type Order struct {
	Method    Method
	AddressID string
	Address   upstream.ShippingAddress
}

// Placement is the outcome of PlaceOrder. Cash orders carry the created
// order; online orders carry the payment page to send the shopper to.
type Placement struct {
	Method      Method
	Order       *upstream.Order
	RedirectURL string
}

// PlaceOrder submits the current cart. A cash order empties the cart once
// the order exists; an online order leaves it alone until payment
// completes on the hosted page.
func (s *Service) PlaceOrder(ctx context.Context, sess *session.Session, req Order) (*Placement, error) {
	if !req.Method.IsValid() {
		return nil, dErrors.Validation(map[string]string{"method": "payment method must be cash or online"})
	}
	c, err := s.upstream.GetCart(ctx, sess.Token)
	if upstream.KindOf(err) == upstream.NotFound || (err == nil && c.Empty()) {
		return nil, dErrors.New(dErrors.CodeConflict, "your cart is empty")
	}
	if err != nil {
		return nil, upstream.Translate(err, "load cart")
	}

	addr, err := s.shippingAddress(ctx, sess, req)
	if err != nil {
		return nil, err
	}

	switch req.Method {
	case MethodCash:
		return s.placeCash(ctx, sess, c.CartID, addr)
	default:
		return s.startOnline(ctx, sess, c.CartID, addr)
	}
}

func (s *Service) placeCash(ctx context.Context, sess *session.Session, cartID string, addr upstream.ShippingAddress) (*Placement, error) {
	order, err := s.upstream.CreateCashOrder(ctx, sess.Token, cartID, addr)
	if err != nil {
		return nil, upstream.Translate(err, "place order")
	}
	// The order exists from here on; a failed clear must not fail it.
	if err := s.upstream.ClearCart(ctx, sess.Token); err != nil && upstream.KindOf(err) != upstream.NotFound {
		s.logger.WarnContext(ctx, "clear cart after cash order failed",
			"request_id", requestcontext.RequestID(ctx),
			"order_id", order.ID,
			"error", err,
		)
	}
	s.counts.InvalidateCart(sess.ID)
	s.auditor.Record(ctx, audit.Event{
		Action:    audit.ActionOrderPlaced,
		UserID:    sess.User.ID,
		SessionID: sess.ID,
		Subject:   order.ID,
		Reason:    string(MethodCash),
	})
	return &Placement{Method: MethodCash, Order: order}, nil
}

func (s *Service) startOnline(ctx context.Context, sess *session.Session, cartID string, addr upstream.ShippingAddress) (*Placement, error) {
	cs, err := s.upstream.CreateCheckoutSession(ctx, sess.Token, cartID, addr, s.returnURL)
	if err != nil {
		return nil, upstream.Translate(err, "start checkout")
	}
	if cs.URL == "" {
		return nil, dErrors.New(dErrors.CodeBadGateway, "payment provider returned no checkout page")
	}
	s.auditor.Record(ctx, audit.Event{
		Action:    audit.ActionCheckoutStarted,
		UserID:    sess.User.ID,
		SessionID: sess.ID,
		Subject:   cartID,
		Reason:    string(MethodOnline),
	})
	return &Placement{Method: MethodOnline, RedirectURL: cs.URL}, nil
}

func (s *Service) shippingAddress(ctx context.Context, sess *session.Session, req Order) (upstream.ShippingAddress, error) {
	if req.AddressID == "" {
		return req.Address, nil
	}
	addrs, err := s.upstream.ListAddresses(ctx, sess.Token)
	if err != nil {
		return upstream.ShippingAddress{}, upstream.Translate(err, "load addresses")
	}
	for _, a := range addrs {
		if a.ID == req.AddressID {
			return upstream.ShippingFrom(a), nil
		}
	}
	return upstream.ShippingAddress{}, dErrors.Validation(map[string]string{"addressId": "select one of your saved addresses"})
}

// Orders lists the shopper's orders, newest first.
func (s *Service) Orders(ctx context.Context, sess *session.Session) ([]upstream.Order, error) {
	userID := sess.User.ID
	if userID == "" {
		verified, err := s.upstream.VerifyToken(ctx, sess.Token)
		if err != nil {
			return nil, upstream.Translate(err, "load orders")
		}
		userID = verified.ID
	}
	orders, err := s.upstream.ListOrders(ctx, sess.Token, userID)
	if err != nil {
		return nil, upstream.Translate(err, "load orders")
	}
	SortNewestFirst(orders)
	return orders, nil
}

// SortNewestFirst orders by creation time, most recent first.
func SortNewestFirst(orders []upstream.Order) {
	slices.SortStableFunc(orders, func(a, b upstream.Order) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
}
