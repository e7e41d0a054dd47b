package checkout

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"storefront/internal/audit"
	"storefront/internal/checkout/mocks"
	"storefront/internal/session"
	"storefront/internal/upstream"
	dErrors "storefront/pkg/domain-errors"
)

const returnURL = "http://localhost:8080"

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Upstream,Counts,Auditor
type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	upstream *mocks.MockUpstream
	counts   *mocks.MockCounts
	events   *audit.InMemoryStore
	service  *Service
	sess     *session.Session
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.upstream = mocks.NewMockUpstream(s.ctrl)
	s.counts = mocks.NewMockCounts(s.ctrl)
	s.events = audit.NewInMemoryStore()
	s.service = NewService(s.upstream, s.counts, audit.NewPublisher(s.events), returnURL, slog.New(slog.DiscardHandler))
	s.sess = &session.Session{ID: "s1", Token: "tok", User: session.UserSummary{ID: "u1"}}
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

var (
	fullCart = &upstream.Cart{CartID: "c1", NumItems: 1, TotalPrice: 19.99, Items: []upstream.CartItem{{Count: 1, Price: 19.99}}}
	home     = upstream.Address{ID: "a1", Name: "Home", Details: "12 Nile Street", Phone: "01012345678", City: "Cairo"}
)

func (s *ServiceSuite) TestSummary() {
	ctx := context.Background()

	s.Run("loads cart and addresses", func() {
		s.upstream.EXPECT().GetCart(gomock.Any(), "tok").Return(fullCart, nil)
		s.upstream.EXPECT().ListAddresses(gomock.Any(), "tok").Return([]upstream.Address{home}, nil)
		sum, err := s.service.Summary(ctx, s.sess)
		s.Require().NoError(err)
		s.Equal("c1", sum.Cart.CartID)
		s.Len(sum.Addresses, 1)
		s.False(sum.AddressesUnavailable)
	})

	s.Run("address outage degrades the page", func() {
		s.upstream.EXPECT().GetCart(gomock.Any(), "tok").Return(fullCart, nil)
		s.upstream.EXPECT().ListAddresses(gomock.Any(), "tok").Return(nil, &upstream.Error{Kind: upstream.ServerFailure, Status: 500})
		sum, err := s.service.Summary(ctx, s.sess)
		s.Require().NoError(err)
		s.True(sum.AddressesUnavailable)
		s.Empty(sum.Addresses)
	})

	s.Run("cart failure fails the page", func() {
		s.upstream.EXPECT().GetCart(gomock.Any(), "tok").Return(nil, &upstream.Error{Kind: upstream.ServerFailure, Status: 500})
		s.upstream.EXPECT().ListAddresses(gomock.Any(), "tok").Return(nil, nil).AnyTimes()
		_, err := s.service.Summary(ctx, s.sess)
		s.True(dErrors.HasCode(err, dErrors.CodeBadGateway))
	})
}

func (s *ServiceSuite) TestCashOrder() {
	ctx := context.Background()
	ship := upstream.ShippingFrom(home)

	s.Run("places the order then clears the cart", func() {
		gomock.InOrder(
			s.upstream.EXPECT().GetCart(ctx, "tok").Return(fullCart, nil),
			s.upstream.EXPECT().ListAddresses(ctx, "tok").Return([]upstream.Address{home}, nil),
			s.upstream.EXPECT().CreateCashOrder(ctx, "tok", "c1", ship).Return(&upstream.Order{ID: "o1"}, nil),
			s.upstream.EXPECT().ClearCart(ctx, "tok").Return(nil),
			s.counts.EXPECT().InvalidateCart("s1"),
		)
		p, err := s.service.PlaceOrder(ctx, s.sess, Order{Method: MethodCash, AddressID: "a1"})
		s.Require().NoError(err)
		s.Equal("o1", p.Order.ID)
		s.Empty(p.RedirectURL)

		events, err := s.events.ListByUser(ctx, "u1")
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(audit.ActionOrderPlaced, events[0].Action)
		s.Equal("o1", events[0].Subject)
	})

	s.Run("a failed clear does not fail a placed order", func() {
		s.upstream.EXPECT().GetCart(ctx, "tok").Return(fullCart, nil)
		s.upstream.EXPECT().CreateCashOrder(ctx, "tok", "c1", ship).Return(&upstream.Order{ID: "o2"}, nil)
		s.upstream.EXPECT().ClearCart(ctx, "tok").Return(&upstream.Error{Kind: upstream.NetworkFailure})
		s.counts.EXPECT().InvalidateCart("s1")
		p, err := s.service.PlaceOrder(ctx, s.sess, Order{Method: MethodCash, Address: ship})
		s.Require().NoError(err)
		s.Equal("o2", p.Order.ID)
	})

	s.Run("unknown saved address", func() {
		s.upstream.EXPECT().GetCart(ctx, "tok").Return(fullCart, nil)
		s.upstream.EXPECT().ListAddresses(ctx, "tok").Return([]upstream.Address{home}, nil)
		_, err := s.service.PlaceOrder(ctx, s.sess, Order{Method: MethodCash, AddressID: "missing"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("empty cart", func() {
		s.upstream.EXPECT().GetCart(ctx, "tok").Return(nil, &upstream.Error{Kind: upstream.NotFound, Status: 404})
		_, err := s.service.PlaceOrder(ctx, s.sess, Order{Method: MethodCash, Address: ship})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("rejects unknown methods before any request", func() {
		_, err := s.service.PlaceOrder(ctx, s.sess, Order{Method: "barter", Address: ship})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestOnlineOrder() {
	ctx := context.Background()
	ship := upstream.ShippingFrom(home)

	s.Run("returns the payment page and keeps the cart", func() {
		s.upstream.EXPECT().GetCart(ctx, "tok").Return(fullCart, nil)
		s.upstream.EXPECT().CreateCheckoutSession(ctx, "tok", "c1", ship, returnURL).
			Return(&upstream.CheckoutSession{URL: "https://pay.example.com/cs_1"}, nil)
		p, err := s.service.PlaceOrder(ctx, s.sess, Order{Method: MethodOnline, Address: ship})
		s.Require().NoError(err)
		s.Equal("https://pay.example.com/cs_1", p.RedirectURL)
		s.Nil(p.Order)
	})

	s.Run("missing session url is a gateway failure", func() {
		s.upstream.EXPECT().GetCart(ctx, "tok").Return(fullCart, nil)
		s.upstream.EXPECT().CreateCheckoutSession(ctx, "tok", "c1", ship, returnURL).Return(&upstream.CheckoutSession{}, nil)
		_, err := s.service.PlaceOrder(ctx, s.sess, Order{Method: MethodOnline, Address: ship})
		s.True(dErrors.HasCode(err, dErrors.CodeBadGateway))
	})
}

func (s *ServiceSuite) TestOrders() {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.Run("newest first", func() {
		s.upstream.EXPECT().ListOrders(ctx, "tok", "u1").Return([]upstream.Order{
			{ID: "old", CreatedAt: now.Add(-48 * time.Hour)},
			{ID: "new", CreatedAt: now},
			{ID: "mid", CreatedAt: now.Add(-time.Hour)},
		}, nil)
		orders, err := s.service.Orders(ctx, s.sess)
		s.Require().NoError(err)
		s.Equal([]string{"new", "mid", "old"}, []string{orders[0].ID, orders[1].ID, orders[2].ID})
	})

	s.Run("resolves the user id when the session lacks it", func() {
		anon := &session.Session{ID: "s2", Token: "tok2"}
		s.upstream.EXPECT().VerifyToken(ctx, "tok2").Return(&upstream.VerifiedToken{ID: "u9"}, nil)
		s.upstream.EXPECT().ListOrders(ctx, "tok2", "u9").Return(nil, nil)
		_, err := s.service.Orders(ctx, anon)
		s.NoError(err)
	})
}

func TestMethodIsValid(t *testing.T) {
	assert.True(t, MethodCash.IsValid())
	assert.True(t, MethodOnline.IsValid())
	assert.False(t, Method("").IsValid())
}
