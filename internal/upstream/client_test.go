package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"storefront/internal/platform/config"
	"storefront/pkg/platform/circuit"
)

type ClientSuite struct {
	suite.Suite
	server  *httptest.Server
	handler http.HandlerFunc
	client  *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotImplemented)
	}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handler(w, r)
	}))
	s.client = New(config.UpstreamConfig{
		BaseURL:          s.server.URL,
		Timeout:          2 * time.Second,
		RetryAttempts:    2,
		BreakerThreshold: 100,
	})
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *ClientSuite) TestCredentialHeader() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("tok-123", r.Header.Get("token"))
		s.Empty(r.Header.Get("Authorization"))
		s.Equal("/cart", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "success", "numOfCartItems": 2, "cartId": "c1",
			"data": map[string]any{
				"_id": "c1", "cartOwner": "u1", "totalCartPrice": 39.98,
				"products": []any{map[string]any{
					"count": 2, "_id": "line1", "price": 19.99,
					"product": map[string]any{"_id": "p1", "title": "Mug"},
				}},
			},
		})
	}

	cart, err := s.client.GetCart(context.Background(), "tok-123")
	s.Require().NoError(err)
	s.Equal("c1", cart.CartID)
	s.Equal(2, cart.NumItems)
	s.Equal(39.98, cart.TotalPrice)
	s.Require().Len(cart.Items, 1)
	s.Equal("p1", cart.Items[0].Product.ID)
}

func (s *ClientSuite) TestErrorTaxonomy() {
	cases := []struct {
		name   string
		status int
		kind   Kind
	}{
		{"401 is auth failure", http.StatusUnauthorized, AuthFailure},
		{"404 is not found", http.StatusNotFound, NotFound},
		{"400 is validation failure", http.StatusBadRequest, ValidationFailure},
		{"409 is validation failure", http.StatusConflict, ValidationFailure},
		{"500 is server failure", http.StatusInternalServerError, ServerFailure},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.handler = func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, map[string]string{"message": "upstream says no"})
			}
			_, err := s.client.GetProduct(context.Background(), "p1")
			s.Require().Error(err)
			s.Equal(tc.kind, KindOf(err))
			s.Equal("upstream says no", Message(err))
			s.Equal(tc.status == http.StatusUnauthorized, errors.Is(err, ErrUnauthorized))
		})
	}
}

func (s *ClientSuite) TestValidationMessageFromErrorsBlock() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"statusMsg": "fail",
			"errors":    map[string]string{"msg": "Invalid email", "param": "email"},
		})
	}
	_, err := s.client.SignUp(context.Background(), SignUpRequest{Email: "x"})
	s.Equal("Invalid email", Message(err))
}

func (s *ClientSuite) TestNetworkFailure() {
	s.server.Close()
	_, err := s.client.ListCategories(context.Background())
	s.Require().Error(err)
	s.Equal(NetworkFailure, KindOf(err))
}

func (s *ClientSuite) TestRetriesIdempotentOnly() {
	var calls atomic.Int32
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}

	s.Run("GET is retried", func() {
		calls.Store(0)
		_, err := s.client.GetCart(context.Background(), "t")
		s.Equal(ServerFailure, KindOf(err))
		s.Equal(int32(3), calls.Load())
	})

	s.Run("POST is not retried", func() {
		calls.Store(0)
		_, err := s.client.AddToCart(context.Background(), "t", "p1")
		s.Equal(ServerFailure, KindOf(err))
		s.Equal(int32(1), calls.Load())
	})

	s.Run("4xx is not retried", func() {
		calls.Store(0)
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		}
		_, err := s.client.GetCart(context.Background(), "t")
		s.True(errors.Is(err, ErrUnauthorized))
		s.Equal(int32(1), calls.Load())
	})
}

func (s *ClientSuite) TestRetryRecovers() {
	var calls atomic.Int32
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{map[string]string{"_id": "c1", "name": "Music"}}})
	}
	cats, err := s.client.ListCategories(context.Background())
	s.Require().NoError(err)
	s.Require().Len(cats, 1)
	s.Equal("Music", cats[0].Name)
}

func (s *ClientSuite) TestCircuitOpens() {
	var calls atomic.Int32
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}
	client := New(config.UpstreamConfig{BaseURL: s.server.URL, Timeout: time.Second},
		WithBreaker(circuit.New("upstream", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))))

	_, _ = client.ListCategories(context.Background())
	_, _ = client.ListCategories(context.Background())
	_, err := client.ListCategories(context.Background())

	s.ErrorIs(err, ErrCircuitOpen)
	s.Equal(NetworkFailure, KindOf(err))
	s.Equal(int32(2), calls.Load())
}

func (s *ClientSuite) TestUpdateCartItemRejectsLowQuantity() {
	var calls atomic.Int32
	s.handler = func(w http.ResponseWriter, r *http.Request) { calls.Add(1) }

	_, err := s.client.UpdateCartItem(context.Background(), "t", "p1", 0)
	s.ErrorIs(err, ErrInvalidQuantity)
	s.Equal(int32(0), calls.Load())
}

func (s *ClientSuite) TestUpdateCartItemSendsCount() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPut, r.Method)
		s.Equal("/cart/p1", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		s.JSONEq(`{"count":3}`, string(raw))
		writeJSON(w, http.StatusOK, map[string]any{"numOfCartItems": 3, "data": map[string]any{"_id": "c1", "totalCartPrice": 59.97}})
	}
	cart, err := s.client.UpdateCartItem(context.Background(), "t", "p1", 3)
	s.Require().NoError(err)
	s.Equal("c1", cart.CartID)
	s.Equal(59.97, cart.TotalPrice)
}

func (s *ClientSuite) TestListShapesAreNormalised() {
	s.Run("raw array", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			s.Equal("/orders/user/u1", r.URL.Path)
			writeJSON(w, http.StatusOK, []any{
				map[string]any{"_id": "o1", "totalOrderPrice": 10, "user": "u1", "createdAt": "2024-01-02T10:00:00.000Z"},
			})
		}
		orders, err := s.client.ListOrders(context.Background(), "t", "u1")
		s.Require().NoError(err)
		s.Require().Len(orders, 1)
		s.Equal("u1", orders[0].User.ID)
	})

	s.Run("data envelope", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"results": 1, "data": []any{map[string]string{"_id": "a1", "city": "Cairo"}}})
		}
		addrs, err := s.client.ListAddresses(context.Background(), "t")
		s.Require().NoError(err)
		s.Require().Len(addrs, 1)
		s.Equal("Cairo", addrs[0].City)
	})

	s.Run("paged", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			s.Equal("2", r.URL.Query().Get("page"))
			s.Equal("50", r.URL.Query().Get("limit"))
			writeJSON(w, http.StatusOK, map[string]any{
				"results":  1,
				"metadata": map[string]int{"currentPage": 2, "numberOfPages": 4, "limit": 50},
				"data":     []any{map[string]any{"_id": "p9", "price": 5}},
			})
		}
		page, err := s.client.ListProducts(context.Background(), 2, 50)
		s.Require().NoError(err)
		s.Equal(4, page.Metadata.NumberOfPages)
		s.Equal(5.0, page.Data[0].Price)
	})

	s.Run("undecodable body", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}
		_, err := s.client.ListCategories(context.Background())
		s.Equal(ServerFailure, KindOf(err))
	})
}

func (s *ClientSuite) TestCategoryQuery() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		s.Equal("cat1", q.Get("category[in]"))
		s.Equal("-price", q.Get("sort"))
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
	}
	page, err := s.client.ListProductsByCategory(context.Background(), "cat1", 1, 20)
	s.Require().NoError(err)
	s.Empty(page.Data)
	s.Equal(1, page.Metadata.NumberOfPages)
}

func (s *ClientSuite) TestOrders() {
	s.Run("cash order posts shipping address", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			s.Equal(http.MethodPost, r.Method)
			s.Equal("/orders/cart9", r.URL.Path)
			raw, _ := io.ReadAll(r.Body)
			s.JSONEq(`{"shippingAddress":{"details":"12 Nile St","phone":"01012345678","city":"Cairo"}}`, string(raw))
			writeJSON(w, http.StatusCreated, map[string]any{"status": "success", "data": map[string]any{
				"_id": "o1", "totalOrderPrice": 59.97, "paymentMethodType": "cash", "user": "u1",
				"cartItems": []any{map[string]any{"count": 3, "product": "p1", "price": 19.99}},
			}})
		}
		order, err := s.client.CreateCashOrder(context.Background(), "t", "cart9",
			ShippingAddress{Details: "12 Nile St", Phone: "01012345678", City: "Cairo"})
		s.Require().NoError(err)
		s.Equal("o1", order.ID)
		s.Equal("p1", order.CartItems[0].Product.ID)
	})

	s.Run("checkout session returns url", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			s.Equal("/orders/checkout-session/cart9", r.URL.Path)
			s.Equal("http://localhost:8080", r.URL.Query().Get("url"))
			writeJSON(w, http.StatusOK, map[string]any{"status": "success", "session": map[string]string{"url": "https://pay.example/s/1"}})
		}
		sess, err := s.client.CreateCheckoutSession(context.Background(), "t", "cart9", ShippingAddress{}, "http://localhost:8080")
		s.Require().NoError(err)
		s.Equal("https://pay.example/s/1", sess.URL)
	})
}

func (s *ClientSuite) TestAuth() {
	s.Run("sign in", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			s.Equal("/auth/signin", r.URL.Path)
			writeJSON(w, http.StatusOK, map[string]any{
				"message": "success", "token": "jwt-abc",
				"user": map[string]string{"name": "Ada", "email": "ada@example.com", "role": "user"},
			})
		}
		res, err := s.client.SignIn(context.Background(), "ada@example.com", "secret1")
		s.Require().NoError(err)
		s.Equal("jwt-abc", res.Token)
		s.Equal("Ada", res.User.Name)
	})

	s.Run("wrong password", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Incorrect email or password"})
		}
		_, err := s.client.SignIn(context.Background(), "ada@example.com", "nope123")
		s.ErrorIs(err, ErrUnauthorized)
		s.Equal("Incorrect email or password", Message(err))
	})

	s.Run("verify token", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			s.Equal("jwt-abc", r.Header.Get(CredentialHeader))
			writeJSON(w, http.StatusOK, map[string]any{
				"message": "verified",
				"decoded": map[string]any{"id": "u1", "name": "Ada", "role": "user", "iat": 1, "exp": 2},
			})
		}
		v, err := s.client.VerifyToken(context.Background(), "jwt-abc")
		s.Require().NoError(err)
		s.Equal("u1", v.ID)
	})
}

func (s *ClientSuite) TestWishlist() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]any{"count": 1, "data": []any{map[string]any{"_id": "p1", "title": "Mug"}}})
		case http.MethodDelete:
			s.Equal("/wishlist/p1", r.URL.Path)
			writeJSON(w, http.StatusOK, map[string]any{"data": []string{}})
		}
	}
	items, err := s.client.GetWishlist(context.Background(), "t")
	s.Require().NoError(err)
	s.Equal("Mug", items[0].Title)

	ids, err := s.client.RemoveFromWishlist(context.Background(), "t", "p1")
	s.Require().NoError(err)
	s.Empty(ids)
}

func (s *ClientSuite) TestCancelledCallerAbortsUpstreamRequest() {
	started := make(chan struct{})
	aborted := make(chan struct{})
	var calls atomic.Int32
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		close(started)
		select {
		case <-r.Context().Done():
			close(aborted)
		case <-time.After(2 * time.Second):
			writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := s.client.GetCart(ctx, "tok")
		errCh <- err
	}()
	<-started
	cancel()

	err := <-errCh
	s.Require().Error(err)
	s.ErrorIs(err, context.Canceled)
	s.Equal(NetworkFailure, KindOf(err))

	select {
	case <-aborted:
	case <-time.After(time.Second):
		s.Fail("upstream request was not aborted")
	}
	s.Equal(int32(1), calls.Load(), "a cancelled call must not be retried")
}
