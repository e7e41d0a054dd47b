package handler

import "storefront/internal/upstream"

// ProductCard is a product as shown in grids, marked when saved.
type ProductCard struct {
	upstream.Product
	InWishlist bool `json:"inWishlist"`
}

func cards(products []upstream.Product, saved map[string]bool) []ProductCard {
	out := make([]ProductCard, len(products))
	for i, p := range products {
		out[i] = ProductCard{Product: p, InWishlist: saved[p.ID]}
	}
	return out
}

type HomePage struct {
	Page       string                `json:"page"`
	Query      string                `json:"query,omitempty"`
	Products   []ProductCard         `json:"products"`
	Metadata   upstream.PageMetadata `json:"metadata"`
	Categories []upstream.Category   `json:"categories"`
}

type ProductsPage struct {
	Page     string        `json:"page"`
	Results  int           `json:"results"`
	Products []ProductCard `json:"products"`
}

type ProductPage struct {
	Page    string      `json:"page"`
	Product ProductCard `json:"product"`
}

type BrandsPage struct {
	Page     string                 `json:"page"`
	Query    string                 `json:"query,omitempty"`
	Results  int                    `json:"results"`
	Brands   []upstream.Brand       `json:"brands"`
	Metadata *upstream.PageMetadata `json:"metadata,omitempty"`
}

type BrandPage struct {
	Page     string                `json:"page"`
	Brand    upstream.Brand        `json:"brand"`
	Products []ProductCard         `json:"products"`
	Metadata upstream.PageMetadata `json:"metadata"`
}

type CategoriesPage struct {
	Page       string              `json:"page"`
	Categories []upstream.Category `json:"categories"`
}

type CategoryPage struct {
	Page     string                `json:"page"`
	Category upstream.Category     `json:"category"`
	Products []ProductCard         `json:"products"`
	Metadata upstream.PageMetadata `json:"metadata"`
}
