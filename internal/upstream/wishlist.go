package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// GetWishlist returns the full products on the shopper's wishlist.
func (c *Client) GetWishlist(ctx context.Context, token string) ([]Product, error) {
	const op = "wishlist.get"
	body, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/wishlist", token: token})
	if err != nil {
		return nil, err
	}
	items, err := decodeList[Product](body)
	if err != nil {
		return nil, decodeFailure(op, err)
	}
	return items, nil
}

// AddToWishlist returns the product ids on the wishlist after the add.
func (c *Client) AddToWishlist(ctx context.Context, token, productID string) ([]string, error) {
	return c.wishlistIDs(ctx, call{
		op: "wishlist.add", method: http.MethodPost, path: "/wishlist", token: token,
		body: map[string]string{"productId": productID},
	})
}

func (c *Client) RemoveFromWishlist(ctx context.Context, token, productID string) ([]string, error) {
	return c.wishlistIDs(ctx, call{
		op: "wishlist.remove", method: http.MethodDelete, path: "/wishlist/" + url.PathEscape(productID), token: token,
	})
}

func (c *Client) wishlistIDs(ctx context.Context, cl call) ([]string, error) {
	body, err := c.do(ctx, cl)
	if err != nil {
		return nil, err
	}
	var env struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, decodeFailure(cl.op, err)
	}
	return env.Data, nil
}
