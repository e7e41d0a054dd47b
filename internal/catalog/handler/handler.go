package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"storefront/internal/catalog"
	"storefront/internal/gate"
	"storefront/internal/session"
	"storefront/internal/transport/http/shared"
	"storefront/internal/upstream"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/platform/httputil"
	"storefront/pkg/requestcontext"
)

const (
	defaultAllProducts = 200
	maxAllProducts     = 500
	brandListMax       = 200
)

// Service defines the catalog reads behind the browsing pages.
type Service interface {
	Home(ctx context.Context, keyword string, page, limit int) (*catalog.Home, error)
	Product(ctx context.Context, id string) (*upstream.Product, error)
	AllProducts(ctx context.Context, maxProducts int) ([]upstream.Product, error)
	SearchBrands(ctx context.Context, term string, page, limit int) (upstream.Page[upstream.Brand], error)
	FindBrands(ctx context.Context, term string, maxBrands int) ([]upstream.Brand, error)
	BrandBySlug(ctx context.Context, slug string) (*upstream.Brand, error)
	BrandProducts(ctx context.Context, brandID string, page, limit int) (upstream.Page[upstream.Product], error)
	Categories(ctx context.Context) ([]upstream.Category, error)
	Category(ctx context.Context, id string, page, limit int) (*catalog.CategoryPage, error)
}

// Wishlist reports which products the signed-in shopper has saved.
type Wishlist interface {
	ProductIDs(ctx context.Context, sess *session.Session) (map[string]bool, error)
}

type Handler struct {
	service   Service
	wishlist  Wishlist
	responder *shared.Responder
	logger    *slog.Logger
}

func New(service Service, wishlist Wishlist, responder *shared.Responder, logger *slog.Logger) *Handler {
	return &Handler{
		service:   service,
		wishlist:  wishlist,
		responder: responder,
		logger:    logger,
	}
}

// Register mounts the browsing pages.
func (h *Handler) Register(r chi.Router) {
	r.Get("/home", h.HandleHome)
	r.Get("/home/products", h.HandleAllProducts)
	r.Get("/home/products/{productID}", h.HandleProduct)
	r.Get("/home/products/{productID}/*", h.HandleProduct)
	r.Get("/brands", h.HandleBrands)
	r.Get("/brands/{slug}", h.HandleBrand)
	r.Get("/categories", h.HandleCategories)
	r.Get("/categories/*", h.HandleCategory)
}

// HandleHome handles GET /home: the product grid, optionally searched by q.
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	keyword := r.URL.Query().Get("q")
	home, err := h.service.Home(ctx, keyword,
		shared.QueryInt(r, "page", 1), shared.QueryInt(r, "limit", catalog.DefaultLimit))
	if err != nil {
		h.responder.Page(w, r, err)
		return
	}
	saved, ok := h.savedProducts(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, HomePage{
		Page:       "home",
		Query:      strings.TrimSpace(keyword),
		Products:   cards(home.Products.Data, saved),
		Metadata:   home.Products.Metadata,
		Categories: home.Categories,
	})
}

// HandleAllProducts handles GET /home/products: every product up to max.
func (h *Handler) HandleAllProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	products, err := h.service.AllProducts(ctx, min(shared.QueryInt(r, "max", defaultAllProducts), maxAllProducts))
	if err != nil {
		h.responder.Page(w, r, err)
		return
	}
	saved, ok := h.savedProducts(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ProductsPage{
		Page:     "products",
		Results:  len(products),
		Products: cards(products, saved),
	})
}

// HandleProduct handles GET /home/products/{productID}.
func (h *Handler) HandleProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "productID")
	if !shared.IsObjectID(id) {
		h.responder.Page(w, r, dErrors.New(dErrors.CodeNotFound, "product not found"))
		return
	}
	product, err := h.service.Product(ctx, id)
	if err != nil {
		h.responder.Page(w, r, err)
		return
	}
	saved, ok := h.savedProducts(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ProductPage{
		Page:    "product",
		Product: ProductCard{Product: *product, InWishlist: saved[product.ID]},
	})
}

// HandleBrands handles GET /brands. With ?page it serves one filtered page;
// otherwise the whole list filtered by ?q.
func (h *Handler) HandleBrands(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	term := r.URL.Query().Get("q")
	if r.URL.Query().Has("page") {
		res, err := h.service.SearchBrands(ctx, term,
			shared.QueryInt(r, "page", 1), shared.QueryInt(r, "limit", catalog.DefaultLimit))
		if err != nil {
			h.responder.Page(w, r, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, BrandsPage{
			Page: "brands", Query: term, Results: res.Results, Brands: res.Data, Metadata: &res.Metadata,
		})
		return
	}
	brands, err := h.service.FindBrands(ctx, term, brandListMax)
	if err != nil {
		h.responder.Page(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BrandsPage{Page: "brands", Query: term, Results: len(brands), Brands: brands})
}

// HandleBrand handles GET /brands/{slug}.
func (h *Handler) HandleBrand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	brand, err := h.service.BrandBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		h.responder.Page(w, r, err)
		return
	}
	products, err := h.service.BrandProducts(ctx, brand.ID,
		shared.QueryInt(r, "page", 1), shared.QueryInt(r, "limit", catalog.DefaultLimit))
	if err != nil {
		h.responder.Page(w, r, err)
		return
	}
	saved, ok := h.savedProducts(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BrandPage{
		Page:     "brand",
		Brand:    *brand,
		Products: cards(products.Data, saved),
		Metadata: products.Metadata,
	})
}

// HandleCategories handles GET /categories.
func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.responder.Page(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CategoriesPage{Page: "categories", Categories: categories})
}

// HandleCategory handles GET /categories/{id}/...; only the first segment
// names the category.
func (h *Handler) HandleCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _, _ := strings.Cut(chi.URLParam(r, "*"), "/")
	if !shared.IsObjectID(id) {
		h.responder.Page(w, r, dErrors.New(dErrors.CodeNotFound, "category not found"))
		return
	}
	res, err := h.service.Category(ctx, id,
		shared.QueryInt(r, "page", 1), shared.QueryInt(r, "limit", catalog.DefaultLimit))
	if err != nil {
		h.responder.Page(w, r, err)
		return
	}
	saved, ok := h.savedProducts(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CategoryPage{
		Page:     "category",
		Category: *res.Category,
		Products: cards(res.Products.Data, saved),
		Metadata: res.Products.Metadata,
	})
}

// savedProducts loads wishlist membership for a signed-in shopper. A
// rejected credential ends the request; other failures only lose the
// hearts.
func (h *Handler) savedProducts(w http.ResponseWriter, r *http.Request) (map[string]bool, bool) {
	ctx := r.Context()
	sess, ok := gate.SessionFrom(ctx)
	if !ok || h.wishlist == nil {
		return nil, true
	}
	saved, err := h.wishlist.ProductIDs(ctx, sess)
	if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
		h.responder.Page(w, r, err)
		return nil, false
	}
	if err != nil {
		h.logger.WarnContext(ctx, "wishlist membership unavailable",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, true
	}
	return saved, true
}
