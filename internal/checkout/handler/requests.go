package handler

import (
	"strings"

	"storefront/internal/checkout"
	"storefront/internal/transport/http/shared"
	"storefront/internal/upstream"
)

type AddressInput struct {
	Details string `json:"details"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
}

// PlaceOrderRequest is the body of POST /cart/checkout. A saved address is
// picked by addressId; otherwise address is required.
type PlaceOrderRequest struct {
	Method    string        `json:"method"`
	AddressID string        `json:"addressId"`
	Address   *AddressInput `json:"address"`
}

func (r *PlaceOrderRequest) Normalize() {
	r.Method = strings.ToLower(strings.TrimSpace(r.Method))
	shared.Trim(&r.AddressID)
	if r.Address != nil {
		shared.Trim(&r.Address.Details, &r.Address.Phone, &r.Address.City)
	}
}

func (r *PlaceOrderRequest) Validate() error {
	f := shared.Fields{}
	f.Check(checkout.Method(r.Method).IsValid(), "method", "Choose cash or online payment")
	switch {
	case r.AddressID != "":
		f.Check(shared.IsObjectID(r.AddressID), "addressId", "Select one of your saved addresses")
	case r.Address == nil:
		f.Check(false, "address", "Please select a shipping address")
	default:
		f.Shipping("address.", r.Address.Details, r.Address.Phone, r.Address.City)
	}
	return f.Err()
}

func (r *PlaceOrderRequest) toOrder() checkout.Order {
	o := checkout.Order{Method: checkout.Method(r.Method), AddressID: r.AddressID}
	if r.Address != nil {
		o.Address = upstream.ShippingAddress{Details: r.Address.Details, Phone: r.Address.Phone, City: r.Address.City}
	}
	return o
}
