package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

func (c *Client) authCall(ctx context.Context, cl call) (*AuthResult, error) {
	body, err := c.do(ctx, cl)
	if err != nil {
		return nil, err
	}
	var res AuthResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, decodeFailure(cl.op, err)
	}
	if res.Token == "" {
		return nil, &Error{Kind: ServerFailure, Operation: cl.op, Message: "response without token"}
	}
	return &res, nil
}

// SignIn exchanges credentials for a bearer token. Wrong credentials are an
// AuthFailure.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	return c.authCall(ctx, call{
		op: "auth.sign_in", method: http.MethodPost, path: "/auth/signin",
		body: map[string]string{"email": email, "password": password},
	})
}

func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*AuthResult, error) {
	return c.authCall(ctx, call{op: "auth.sign_up", method: http.MethodPost, path: "/auth/signup", body: req})
}

// VerifyToken checks token with the upstream and returns its decoded claims.
func (c *Client) VerifyToken(ctx context.Context, token string) (*VerifiedToken, error) {
	const op = "auth.verify"
	body, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/auth/verifyToken", token: token})
	if err != nil {
		return nil, err
	}
	var env struct {
		Decoded VerifiedToken `json:"decoded"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, decodeFailure(op, err)
	}
	return &env.Decoded, nil
}

// ChangePassword rotates the password. The upstream issues a new token which
// replaces the old one.
func (c *Client) ChangePassword(ctx context.Context, token string, req ChangePasswordRequest) (*AuthResult, error) {
	return c.authCall(ctx, call{op: "users.change_password", method: http.MethodPut, path: "/users/changeMyPassword", token: token, body: req})
}

func (c *Client) UpdateProfile(ctx context.Context, token string, req ProfileUpdate) (*User, error) {
	const op = "users.update_me"
	body, err := c.do(ctx, call{op: op, method: http.MethodPut, path: "/users/updateMe/", token: token, body: req})
	if err != nil {
		return nil, err
	}
	var env struct {
		User User `json:"user"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, decodeFailure(op, err)
	}
	return &env.User, nil
}

// GetUser returns the public profile of userID.
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	return getOne[User](ctx, c, "users.get", "/users/"+url.PathEscape(userID))
}
