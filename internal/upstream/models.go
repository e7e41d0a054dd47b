package upstream

import (
	"encoding/json"
	"time"
)

type Subcategory struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Category string `json:"category"`
}

type Brand struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image,omitempty"`
}

type Category struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image,omitempty"`
}

type Product struct {
	ID                 string        `json:"_id"`
	Title              string        `json:"title"`
	Slug               string        `json:"slug"`
	Description        string        `json:"description,omitempty"`
	Quantity           int           `json:"quantity"`
	Price              float64       `json:"price"`
	PriceAfterDiscount *float64      `json:"priceAfterDiscount,omitempty"`
	ImageCover         string        `json:"imageCover"`
	Images             []string      `json:"images,omitempty"`
	Sold               int           `json:"sold,omitempty"`
	RatingsAverage     float64       `json:"ratingsAverage"`
	RatingsQuantity    int           `json:"ratingsQuantity,omitempty"`
	Subcategory        []Subcategory `json:"subcategory,omitempty"`
	Category           Category      `json:"category"`
	Brand              Brand         `json:"brand"`
}

// PageMetadata is the paging block of list responses.
type PageMetadata struct {
	CurrentPage   int `json:"currentPage"`
	NumberOfPages int `json:"numberOfPages"`
	Limit         int `json:"limit"`
	NextPage      int `json:"nextPage,omitempty"`
	PrevPage      int `json:"prevPage,omitempty"`
}

// Page is a normalised paged list.
type Page[T any] struct {
	Results  int          `json:"results"`
	Metadata PageMetadata `json:"metadata"`
	Data     []T          `json:"data"`
}

// CartProduct is the product summary embedded in a cart line.
type CartProduct struct {
	ID             string   `json:"_id"`
	Title          string   `json:"title"`
	ImageCover     string   `json:"imageCover"`
	Quantity       int      `json:"quantity"`
	RatingsAverage float64  `json:"ratingsAverage"`
	Category       Category `json:"category"`
	Brand          Brand    `json:"brand"`
}

// CartItem is one cart line. Price is the unit price.
type CartItem struct {
	ID      string      `json:"_id"`
	Count   int         `json:"count"`
	Price   float64     `json:"price"`
	Product CartProduct `json:"product"`
}

// Cart is the authoritative cart snapshot returned by every cart call.
type Cart struct {
	CartID     string     `json:"cartId"`
	NumItems   int        `json:"numOfCartItems"`
	OwnerID    string     `json:"cartOwner"`
	Items      []CartItem `json:"products"`
	TotalPrice float64    `json:"totalCartPrice"`
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}

type Address struct {
	ID      string `json:"_id,omitempty"`
	Name    string `json:"name"`
	Details string `json:"details"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
}

// ShippingAddress is the address block sent with an order.
type ShippingAddress struct {
	Details string `json:"details"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
}

// ShippingFrom projects a saved address onto an order's shipping block.
func ShippingFrom(a Address) ShippingAddress {
	return ShippingAddress{Details: a.Details, Phone: a.Phone, City: a.City}
}

type OrderUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Order struct {
	ID                string          `json:"_id"`
	ShippingAddress   ShippingAddress `json:"shippingAddress"`
	TaxPrice          float64         `json:"taxPrice"`
	ShippingPrice     float64         `json:"shippingPrice"`
	TotalOrderPrice   float64         `json:"totalOrderPrice"`
	PaymentMethodType string          `json:"paymentMethodType"`
	IsPaid            bool            `json:"isPaid"`
	IsDelivered       bool            `json:"isDelivered"`
	User              OrderUser       `json:"user"`
	CartItems         []CartItem      `json:"cartItems"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// CheckoutSession is the hosted payment session for online orders.
type CheckoutSession struct {
	URL string `json:"url"`
}

// User is the signed-in shopper as returned by sign-in.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Phone string `json:"phone,omitempty"`
}

// AuthResult is the sign-in/sign-up response.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// VerifiedToken is the decoded credential from /auth/verifyToken.
type VerifiedToken struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

type SignUpRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	RePassword string `json:"rePassword"`
	Phone      string `json:"phone"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	Password        string `json:"password"`
	RePassword      string `json:"rePassword"`
}

type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UnmarshalJSON accepts either a populated user object or a bare id, which
// is what freshly created orders carry.
func (u *OrderUser) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		*u = OrderUser{ID: id}
		return nil
	}
	type plain OrderUser
	return json.Unmarshal(b, (*plain)(u))
}

// UnmarshalJSON accepts either a populated product or a bare id.
func (p *CartProduct) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		*p = CartProduct{ID: id}
		return nil
	}
	type plain CartProduct
	return json.Unmarshal(b, (*plain)(p))
}
