package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

type orderBody struct {
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

// CreateCashOrder places a cash-on-delivery order for cartID. It does not
// clear the cart; the caller does.
func (c *Client) CreateCashOrder(ctx context.Context, token, cartID string, addr ShippingAddress) (*Order, error) {
	const op = "orders.create_cash"
	body, err := c.do(ctx, call{
		op: op, method: http.MethodPost, path: "/orders/" + url.PathEscape(cartID), token: token,
		body: orderBody{ShippingAddress: addr},
	})
	if err != nil {
		return nil, err
	}
	order, err := decodeData[Order](body)
	if err != nil {
		return nil, decodeFailure(op, err)
	}
	return &order, nil
}

// CreateCheckoutSession opens a hosted payment session; the shopper is sent
// to its URL and comes back to returnURL.
func (c *Client) CreateCheckoutSession(ctx context.Context, token, cartID string, addr ShippingAddress, returnURL string) (*CheckoutSession, error) {
	const op = "orders.checkout_session"
	q := url.Values{}
	q.Set("url", returnURL)
	body, err := c.do(ctx, call{
		op: op, method: http.MethodPost, path: "/orders/checkout-session/" + url.PathEscape(cartID), query: q, token: token,
		body: orderBody{ShippingAddress: addr},
	})
	if err != nil {
		return nil, err
	}
	var env struct {
		Session CheckoutSession `json:"session"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, decodeFailure(op, err)
	}
	if env.Session.URL == "" {
		return nil, &Error{Kind: ServerFailure, Operation: op, Message: "checkout session without url"}
	}
	return &env.Session, nil
}

// ListOrders returns userID's orders. The upstream answers with a bare array.
func (c *Client) ListOrders(ctx context.Context, token, userID string) ([]Order, error) {
	const op = "orders.list"
	body, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/orders/user/" + url.PathEscape(userID), token: token})
	if err != nil {
		return nil, err
	}
	orders, err := decodeList[Order](body)
	if err != nil {
		return nil, decodeFailure(op, err)
	}
	return orders, nil
}
