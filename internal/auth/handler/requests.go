package handler

import (
	"strings"

	"storefront/internal/transport/http/shared"
	"storefront/internal/upstream"
)

// SignInRequest is the body of POST /login.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SignInRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *SignInRequest) Validate() error {
	f := shared.Fields{}
	f.Email("email", r.Email)
	f.Length("password", r.Password, "Password", 6, 0)
	return f.Err()
}

// SignUpRequest is the body of POST /signup.
type SignUpRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	RePassword string `json:"rePassword"`
	Phone      string `json:"phone"`
}

func (r *SignUpRequest) Normalize() {
	shared.Trim(&r.Name, &r.Email, &r.Phone)
	r.Email = strings.ToLower(r.Email)
}

func (r *SignUpRequest) Validate() error {
	f := shared.Fields{}
	f.Length("name", r.Name, "Username", 2, 0)
	f.Email("email", r.Email)
	f.Length("password", r.Password, "Password", 6, 0)
	f.Check(r.Password == r.RePassword, "rePassword", "Passwords do not match")
	f.Phone("phone", r.Phone)
	return f.Err()
}

func (r *SignUpRequest) toUpstream() upstream.SignUpRequest {
	return upstream.SignUpRequest{
		Name:       r.Name,
		Email:      r.Email,
		Password:   r.Password,
		RePassword: r.RePassword,
		Phone:      r.Phone,
	}
}
