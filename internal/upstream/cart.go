package upstream

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) cartCall(ctx context.Context, cl call) (*Cart, error) {
	body, err := c.do(ctx, cl)
	if err != nil {
		return nil, err
	}
	cart, err := decodeCart(body)
	if err != nil {
		return nil, decodeFailure(cl.op, err)
	}
	return cart, nil
}

// GetCart returns the shopper's cart. The item count is numOfCartItems.
func (c *Client) GetCart(ctx context.Context, token string) (*Cart, error) {
	return c.cartCall(ctx, call{op: "cart.get", method: http.MethodGet, path: "/cart", token: token})
}

// AddToCart adds one unit of productID (or increments an existing line).
func (c *Client) AddToCart(ctx context.Context, token, productID string) (*Cart, error) {
	return c.cartCall(ctx, call{
		op: "cart.add", method: http.MethodPost, path: "/cart", token: token,
		body: map[string]string{"productId": productID},
	})
}

// UpdateCartItem sets a line's quantity. Quantities below 1 are rejected
// locally; callers remove the line instead.
func (c *Client) UpdateCartItem(ctx context.Context, token, productID string, count int) (*Cart, error) {
	if count < 1 {
		return nil, ErrInvalidQuantity
	}
	return c.cartCall(ctx, call{
		op: "cart.update", method: http.MethodPut, path: "/cart/" + url.PathEscape(productID), token: token,
		body: map[string]int{"count": count},
	})
}

func (c *Client) RemoveFromCart(ctx context.Context, token, productID string) (*Cart, error) {
	return c.cartCall(ctx, call{
		op: "cart.remove", method: http.MethodDelete, path: "/cart/" + url.PathEscape(productID), token: token,
	})
}

// ClearCart empties the cart. The upstream answers with a bare message.
func (c *Client) ClearCart(ctx context.Context, token string) error {
	_, err := c.do(ctx, call{op: "cart.clear", method: http.MethodDelete, path: "/cart", token: token})
	return err
}
