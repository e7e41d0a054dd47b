package upstream

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) addressCall(ctx context.Context, cl call) ([]Address, error) {
	body, err := c.do(ctx, cl)
	if err != nil {
		return nil, err
	}
	list, err := decodeList[Address](body)
	if err != nil {
		return nil, decodeFailure(cl.op, err)
	}
	return list, nil
}

func (c *Client) ListAddresses(ctx context.Context, token string) ([]Address, error) {
	return c.addressCall(ctx, call{op: "addresses.list", method: http.MethodGet, path: "/addresses", token: token})
}

// AddAddress saves addr and returns the updated address book.
func (c *Client) AddAddress(ctx context.Context, token string, addr Address) ([]Address, error) {
	addr.ID = ""
	return c.addressCall(ctx, call{op: "addresses.add", method: http.MethodPost, path: "/addresses", token: token, body: addr})
}

func (c *Client) DeleteAddress(ctx context.Context, token, addressID string) ([]Address, error) {
	return c.addressCall(ctx, call{
		op: "addresses.delete", method: http.MethodDelete, path: "/addresses/" + url.PathEscape(addressID), token: token,
	})
}
