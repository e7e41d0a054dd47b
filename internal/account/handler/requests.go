package handler

import (
	"strings"

	"storefront/internal/transport/http/shared"
	"storefront/internal/upstream"
)

type AddAddressRequest struct {
	Name    string `json:"name"`
	Details string `json:"details"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
}

func (r *AddAddressRequest) Normalize() {
	shared.Trim(&r.Name, &r.Details, &r.Phone, &r.City)
}

func (r *AddAddressRequest) Validate() error {
	f := shared.Fields{}
	f.Length("name", r.Name, "Name", 2, 50)
	f.Shipping("", r.Details, r.Phone, r.City)
	return f.Err()
}

func (r *AddAddressRequest) toUpstream() upstream.Address {
	return upstream.Address{Name: r.Name, Details: r.Details, Phone: r.Phone, City: r.City}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	Password        string `json:"password"`
	RePassword      string `json:"rePassword"`
}

func (r *ChangePasswordRequest) Normalize() {}

func (r *ChangePasswordRequest) Validate() error {
	f := shared.Fields{}
	f.Length("currentPassword", r.CurrentPassword, "Current password", 6, 0)
	f.Length("password", r.Password, "Password", 6, 0)
	f.StrongPassword("password", r.Password)
	f.Check(r.Password == r.RePassword, "rePassword", "Passwords do not match")
	return f.Err()
}

func (r *ChangePasswordRequest) toUpstream() upstream.ChangePasswordRequest {
	return upstream.ChangePasswordRequest{
		CurrentPassword: r.CurrentPassword,
		Password:        r.Password,
		RePassword:      r.RePassword,
	}
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r *UpdateProfileRequest) Normalize() {
	shared.Trim(&r.Name, &r.Email, &r.Phone)
	r.Email = strings.ToLower(r.Email)
}

func (r *UpdateProfileRequest) Validate() error {
	f := shared.Fields{}
	f.Length("name", r.Name, "Name", 2, 50)
	f.Email("email", r.Email)
	f.Phone("phone", r.Phone)
	return f.Err()
}

func (r *UpdateProfileRequest) toUpstream() upstream.ProfileUpdate {
	return upstream.ProfileUpdate{Name: r.Name, Email: r.Email, Phone: r.Phone}
}
