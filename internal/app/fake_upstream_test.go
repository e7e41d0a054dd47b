package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

const (
	teeID    = "6428ebc6dc1175abc65ca0b9"
	teePrice = 19.99
	payURL   = "https://checkout.stripe.com/c/pay/cs_test_1"
)

type fakeLine struct {
	productID string
	count     int
}

type fakeCart struct {
	id    string
	lines []fakeLine
}

type fakeUser struct {
	id, name, email, password string
}

// fakeUpstream is an in-memory stand-in for the e-commerce API, shaped like
// the real responses.
type fakeUpstream struct {
	mu        sync.Mutex
	users     map[string]fakeUser // by email
	tokens    map[string]string   // token -> user id
	carts     map[string]*fakeCart
	orders    map[string][]map[string]any
	addresses map[string][]map[string]any

	clears         int
	sessionsOpened int
	returnURL      string
}

func newFakeUpstream(t *testing.T) (*fakeUpstream, *httptest.Server) {
	t.Helper()
	f := &fakeUpstream{
		users: map[string]fakeUser{
			"mona@example.com": {id: "64b0c0c0c0c0c0c0c0c0c0c1", name: "Mona", email: "mona@example.com", password: "Secret1"},
		},
		tokens:    map[string]string{},
		carts:     map[string]*fakeCart{},
		orders:    map[string][]map[string]any{},
		addresses: map[string][]map[string]any{},
	}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

// revoke makes every later call with token fail with 401.
func (f *fakeUpstream) revoke(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
}

type fakeStats struct {
	clears         int
	sessionsOpened int
	returnURL      string
}

func (f *fakeUpstream) stats() fakeStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fakeStats{clears: f.clears, sessionsOpened: f.sessionsOpened, returnURL: f.returnURL}
}

func (f *fakeUpstream) anyToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for tok := range f.tokens {
		return tok
	}
	return ""
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	switch {
	case r.Method == http.MethodPost && path == "/auth/signin":
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		u, ok := f.users[body.Email]
		if !ok || u.password != body.Password {
			reply(w, http.StatusUnauthorized, map[string]string{"statusMsg": "fail", "message": "Incorrect email or password"})
			return
		}
		token := "tok-" + time.Now().Format("150405.000000000")
		f.tokens[token] = u.id
		reply(w, http.StatusOK, map[string]any{
			"message": "success",
			"user":    map[string]string{"name": u.name, "email": u.email, "role": "user"},
			"token":   token,
		})
		return
	case path == "/products":
		reply(w, http.StatusOK, map[string]any{
			"results":  1,
			"metadata": map[string]int{"currentPage": 1, "numberOfPages": 1, "limit": 20},
			"data":     []any{map[string]any{"_id": teeID, "title": "Tee", "price": teePrice}},
		})
		return
	case path == "/products/"+teeID:
		reply(w, http.StatusOK, map[string]any{"data": map[string]any{"_id": teeID, "title": "Tee", "price": teePrice}})
		return
	case path == "/categories":
		reply(w, http.StatusOK, map[string]any{"results": 0, "data": []any{}})
		return
	}

	userID, ok := f.tokens[r.Header.Get("token")]
	if !ok {
		reply(w, http.StatusUnauthorized, map[string]string{"statusMsg": "fail", "message": "Invalid Token. please login again"})
		return
	}
	token := r.Header.Get("token")

	switch {
	case path == "/auth/verifyToken":
		reply(w, http.StatusOK, map[string]any{"message": "verified", "decoded": map[string]any{"id": userID, "name": "Mona", "role": "user"}})
	case path == "/wishlist" && r.Method == http.MethodGet:
		reply(w, http.StatusOK, map[string]any{"status": "success", "count": 0, "data": []any{}})
	case path == "/cart" && r.Method == http.MethodGet:
		c, ok := f.carts[token]
		if !ok {
			reply(w, http.StatusNotFound, map[string]string{"statusMsg": "fail", "message": "No cart exist for this user"})
			return
		}
		reply(w, http.StatusOK, f.cartBody(c, userID))
	case path == "/cart" && r.Method == http.MethodPost:
		var body struct {
			ProductID string `json:"productId"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		c := f.cartFor(token)
		found := false
		for i := range c.lines {
			if c.lines[i].productID == body.ProductID {
				c.lines[i].count++
				found = true
			}
		}
		if !found {
			c.lines = append(c.lines, fakeLine{productID: body.ProductID, count: 1})
		}
		reply(w, http.StatusOK, f.cartBody(c, userID))
	case path == "/cart" && r.Method == http.MethodDelete:
		f.clears++
		delete(f.carts, token)
		reply(w, http.StatusOK, map[string]string{"message": "success"})
	case strings.HasPrefix(path, "/cart/"):
		pid := strings.TrimPrefix(path, "/cart/")
		c := f.cartFor(token)
		switch r.Method {
		case http.MethodPut:
			var body struct{ Count int }
			_ = json.NewDecoder(r.Body).Decode(&body)
			for i := range c.lines {
				if c.lines[i].productID == pid {
					c.lines[i].count = body.Count
				}
			}
		case http.MethodDelete:
			kept := c.lines[:0]
			for _, l := range c.lines {
				if l.productID != pid {
					kept = append(kept, l)
				}
			}
			c.lines = kept
		}
		reply(w, http.StatusOK, f.cartBody(c, userID))
	case path == "/addresses" && r.Method == http.MethodGet:
		reply(w, http.StatusOK, map[string]any{"status": "success", "data": f.addressesFor(userID)})
	case path == "/addresses" && r.Method == http.MethodPost:
		var addr map[string]any
		_ = json.NewDecoder(r.Body).Decode(&addr)
		addr["_id"] = "64c0c0c0c0c0c0c0c0c0c0c" + string(rune('0'+len(f.addresses[userID])))
		f.addresses[userID] = append(f.addressesFor(userID), addr)
		reply(w, http.StatusOK, map[string]any{"status": "success", "data": f.addresses[userID]})
	case strings.HasPrefix(path, "/orders/checkout-session/") && r.Method == http.MethodPost:
		f.sessionsOpened++
		f.returnURL = r.URL.Query().Get("url")
		reply(w, http.StatusOK, map[string]any{"status": "success", "session": map[string]string{"url": payURL}})
	case strings.HasPrefix(path, "/orders/user/"):
		orders := f.orders[strings.TrimPrefix(path, "/orders/user/")]
		if orders == nil {
			orders = []map[string]any{}
		}
		reply(w, http.StatusOK, orders)
	case strings.HasPrefix(path, "/orders/") && r.Method == http.MethodPost:
		cartID := strings.TrimPrefix(path, "/orders/")
		c, ok := f.carts[token]
		if !ok || c.id != cartID {
			reply(w, http.StatusNotFound, map[string]string{"message": "There is no cart with this id"})
			return
		}
		order := map[string]any{
			"_id":               "order-" + cartID,
			"user":              map[string]string{"_id": userID},
			"paymentMethodType": "cash",
			"totalOrderPrice":   f.total(c),
			"createdAt":         time.Now().UTC().Format(time.RFC3339),
		}
		f.orders[userID] = append(f.orders[userID], order)
		reply(w, http.StatusCreated, map[string]any{"status": "success", "data": order})
	default:
		reply(w, http.StatusNotFound, map[string]string{"message": "route not found: " + r.Method + " " + path})
	}
}

func (f *fakeUpstream) cartFor(token string) *fakeCart {
	c, ok := f.carts[token]
	if !ok {
		c = &fakeCart{id: "cart-" + token}
		f.carts[token] = c
	}
	return c
}

func (f *fakeUpstream) addressesFor(userID string) []map[string]any {
	if a := f.addresses[userID]; a != nil {
		return a
	}
	return []map[string]any{}
}

func (f *fakeUpstream) total(c *fakeCart) float64 {
	var total float64
	for _, l := range c.lines {
		total += teePrice * float64(l.count)
	}
	return total
}

func (f *fakeUpstream) cartBody(c *fakeCart, userID string) map[string]any {
	products := make([]any, 0, len(c.lines))
	for _, l := range c.lines {
		products = append(products, map[string]any{
			"_id":     "line-" + l.productID,
			"count":   l.count,
			"price":   teePrice,
			"product": map[string]any{"_id": l.productID, "title": "Tee"},
		})
	}
	return map[string]any{
		"status":         "success",
		"numOfCartItems": len(c.lines),
		"cartId":         c.id,
		"data": map[string]any{
			"_id":            c.id,
			"cartOwner":      userID,
			"products":       products,
			"totalCartPrice": f.total(c),
		},
	}
}
