package handler

import (
	"storefront/internal/transport/http/shared"
	"storefront/internal/upstream"
	dErrors "storefront/pkg/domain-errors"
)

type AddItemRequest struct {
	ProductID string `json:"productId"`
}

func (r *AddItemRequest) Normalize() {
	shared.Trim(&r.ProductID)
}

func (r *AddItemRequest) Validate() error {
	if !shared.IsObjectID(r.ProductID) {
		return dErrors.Validation(map[string]string{"productId": "a valid product id is required"})
	}
	return nil
}

// UpdateItemRequest carries the new line quantity. Zero or less removes the
// line.
type UpdateItemRequest struct {
	Count *int `json:"count"`
}

func (r *UpdateItemRequest) Normalize() {}

func (r *UpdateItemRequest) Validate() error {
	if r.Count == nil {
		return dErrors.Validation(map[string]string{"count": "count is required"})
	}
	return nil
}

// Line is one cart line as the storefront shows it.
type Line struct {
	ProductID  string  `json:"productId"`
	Title      string  `json:"title"`
	ImageCover string  `json:"imageCover"`
	Brand      string  `json:"brand,omitempty"`
	Category   string  `json:"category,omitempty"`
	Count      int     `json:"count"`
	Price      float64 `json:"price"`
	Subtotal   float64 `json:"subtotal"`
}

// View is the cart as returned by the upstream after the last call.
type View struct {
	Page   string  `json:"page,omitempty"`
	CartID string  `json:"cartId,omitempty"`
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
	Empty  bool    `json:"empty"`
	Items  []Line  `json:"items"`
}

func NewView(c *upstream.Cart) View {
	if c.Empty() {
		return View{Empty: true, Items: []Line{}}
	}
	v := View{
		CartID: c.CartID,
		Count:  c.NumItems,
		Total:  c.TotalPrice,
		Items:  make([]Line, 0, len(c.Items)),
	}
	for _, it := range c.Items {
		v.Items = append(v.Items, Line{
			ProductID:  it.Product.ID,
			Title:      it.Product.Title,
			ImageCover: it.Product.ImageCover,
			Brand:      it.Product.Brand.Name,
			Category:   it.Product.Category.Name,
			Count:      it.Count,
			Price:      it.Price,
			Subtotal:   it.Price * float64(it.Count),
		})
	}
	return v
}
