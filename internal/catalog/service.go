// Package catalog serves the browsing pages: products, brands and
// categories. Reads are public and cached briefly.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"storefront/internal/upstream"
	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/platform/sentinel"
	"storefront/pkg/requestcontext"
)

const (
	// DefaultLimit is the page size of product and brand grids.
	DefaultLimit = 20
	// fetchAllPageSize is the page size used when walking every page.
	fetchAllPageSize = 50
	// maxConcurrentPages bounds the fan-out of AllProducts/AllBrands.
	maxConcurrentPages = 4
	// brandLookupMax caps the brand list scanned when resolving a slug.
	brandLookupMax = 200
)

// Upstream is the slice of the remote client the catalog reads from.
type Upstream interface {
	ListProducts(ctx context.Context, page, limit int) (upstream.Page[upstream.Product], error)
	SearchProducts(ctx context.Context, keyword string, page, limit int) (upstream.Page[upstream.Product], error)
	ListProductsByBrand(ctx context.Context, brandID string, page, limit int) (upstream.Page[upstream.Product], error)
	ListProductsByCategory(ctx context.Context, categoryID string, page, limit int) (upstream.Page[upstream.Product], error)
	GetProduct(ctx context.Context, id string) (*upstream.Product, error)
	ListBrands(ctx context.Context, page, limit int) (upstream.Page[upstream.Brand], error)
	ListCategories(ctx context.Context) ([]upstream.Category, error)
	GetCategory(ctx context.Context, id string) (*upstream.Category, error)
}

type Service struct {
	upstream Upstream
	cache    Cache
	ttl      time.Duration
	logger   *slog.Logger
}

type Option func(*Service)

// WithCache enables caching of reads for ttl. A zero ttl disables it.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = cache
		s.ttl = ttl
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(up Upstream, opts ...Option) *Service {
	s := &Service{upstream: up, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// cached serves key from the cache or runs fetch and stores its result.
// Cache failures degrade to a direct fetch.
func cached[T any](ctx context.Context, s *Service, key string, fetch func(context.Context) (T, error)) (T, error) {
	if s.cache == nil || s.ttl <= 0 {
		return fetch(ctx)
	}
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "catalog cache read failed",
			"request_id", requestcontext.RequestID(ctx),
			"key", key,
			"error", err,
		)
	}

	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}
	if raw, err := json.Marshal(v); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			s.logger.WarnContext(ctx, "catalog cache write failed",
				"request_id", requestcontext.RequestID(ctx),
				"key", key,
				"error", err,
			)
		}
	}
	return v, nil
}

func pageKey(parts ...any) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(':')
		}
		fmt.Fprint(&b, p)
	}
	return b.String()
}

// Products lists one page of products, or searches by keyword when given.
func (s *Service) Products(ctx context.Context, keyword string, page, limit int) (upstream.Page[upstream.Product], error) {
	page, limit = clampPage(page, limit)
	keyword = strings.TrimSpace(keyword)
	if keyword != "" {
		res, err := cached(ctx, s, pageKey("search", strings.ToLower(keyword), page, limit),
			func(ctx context.Context) (upstream.Page[upstream.Product], error) {
				return s.upstream.SearchProducts(ctx, keyword, page, limit)
			})
		return res, upstream.Translate(err, "search products")
	}
	res, err := cached(ctx, s, pageKey("products", page, limit),
		func(ctx context.Context) (upstream.Page[upstream.Product], error) {
			return s.upstream.ListProducts(ctx, page, limit)
		})
	return res, upstream.Translate(err, "load products")
}

func (s *Service) Product(ctx context.Context, id string) (*upstream.Product, error) {
	res, err := cached(ctx, s, pageKey("product", id), func(ctx context.Context) (*upstream.Product, error) {
		return s.upstream.GetProduct(ctx, id)
	})
	if err != nil {
		return nil, upstream.Translate(err, "load product")
	}
	return res, nil
}

// Home is the landing grid: a product page plus the category strip.
type Home struct {
	Products   upstream.Page[upstream.Product]
	Categories []upstream.Category
}

func (s *Service) Home(ctx context.Context, keyword string, page, limit int) (*Home, error) {
	var home Home
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		home.Products, err = s.Products(gctx, keyword, page, limit)
		return err
	})
	g.Go(func() error {
		var err error
		home.Categories, err = s.Categories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &home, nil
}

func (s *Service) Brands(ctx context.Context, page, limit int) (upstream.Page[upstream.Brand], error) {
	page, limit = clampPage(page, limit)
	res, err := cached(ctx, s, pageKey("brands", page, limit), func(ctx context.Context) (upstream.Page[upstream.Brand], error) {
		return s.upstream.ListBrands(ctx, page, limit)
	})
	return res, upstream.Translate(err, "load brands")
}

// SearchBrands filters one brand page by name or slug, case-insensitively.
func (s *Service) SearchBrands(ctx context.Context, term string, page, limit int) (upstream.Page[upstream.Brand], error) {
	res, err := s.Brands(ctx, page, limit)
	if err != nil {
		return res, err
	}
	if strings.TrimSpace(term) == "" {
		return res, nil
	}
	res.Data = filterBrands(res.Data, term)
	res.Results = len(res.Data)
	return res, nil
}

// FindBrands filters the whole brand list (up to maxBrands) by name or slug.
func (s *Service) FindBrands(ctx context.Context, term string, maxBrands int) ([]upstream.Brand, error) {
	brands, err := s.AllBrands(ctx, maxBrands)
	if err != nil {
		return nil, err
	}
	return filterBrands(brands, term), nil
}

func filterBrands(brands []upstream.Brand, term string) []upstream.Brand {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return brands
	}
	filtered := make([]upstream.Brand, 0, len(brands))
	for _, b := range brands {
		if strings.Contains(strings.ToLower(b.Name), term) || strings.Contains(strings.ToLower(b.Slug), term) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// AllBrands walks the brand list up to maxBrands.
func (s *Service) AllBrands(ctx context.Context, maxBrands int) ([]upstream.Brand, error) {
	res, err := cached(ctx, s, pageKey("brands-all", maxBrands), func(ctx context.Context) ([]upstream.Brand, error) {
		return fetchAll(ctx, maxBrands, s.upstream.ListBrands)
	})
	return res, upstream.Translate(err, "load brands")
}

// AllProducts walks the product list up to maxProducts.
func (s *Service) AllProducts(ctx context.Context, maxProducts int) ([]upstream.Product, error) {
	res, err := cached(ctx, s, pageKey("products-all", maxProducts), func(ctx context.Context) ([]upstream.Product, error) {
		return fetchAll(ctx, maxProducts, s.upstream.ListProducts)
	})
	return res, upstream.Translate(err, "load products")
}

// fetchAll loads page 1, then the remaining pages concurrently, capped so
// that no more than maxItems are returned.
func fetchAll[T any](ctx context.Context, maxItems int, list func(ctx context.Context, page, limit int) (upstream.Page[T], error)) ([]T, error) {
	if maxItems <= 0 {
		return nil, nil
	}
	first, err := list(ctx, 1, fetchAllPageSize)
	if err != nil {
		return nil, err
	}
	pages := min(first.Metadata.NumberOfPages, (maxItems+fetchAllPageSize-1)/fetchAllPageSize)
	rest := make([][]T, max(pages-1, 0))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPages)
	for i := range rest {
		page := i + 2
		g.Go(func() error {
			res, err := list(gctx, page, fetchAllPageSize)
			if err != nil {
				return err
			}
			rest[i] = res.Data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := append([]T{}, first.Data...)
	for _, data := range rest {
		all = append(all, data...)
	}
	if len(all) > maxItems {
		all = all[:maxItems]
	}
	return all, nil
}

// BrandBySlug resolves a brand from its slug by scanning the brand list.
func (s *Service) BrandBySlug(ctx context.Context, slug string) (*upstream.Brand, error) {
	brands, err := s.AllBrands(ctx, brandLookupMax)
	if err != nil {
		return nil, err
	}
	for _, b := range brands {
		if b.Slug == slug {
			return &b, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "brand "+strconv.Quote(slug)+" not found")
}

func (s *Service) BrandProducts(ctx context.Context, brandID string, page, limit int) (upstream.Page[upstream.Product], error) {
	page, limit = clampPage(page, limit)
	res, err := cached(ctx, s, pageKey("brand-products", brandID, page, limit), func(ctx context.Context) (upstream.Page[upstream.Product], error) {
		return s.upstream.ListProductsByBrand(ctx, brandID, page, limit)
	})
	return res, upstream.Translate(err, "load brand products")
}

func (s *Service) Categories(ctx context.Context) ([]upstream.Category, error) {
	res, err := cached(ctx, s, "categories", s.upstream.ListCategories)
	return res, upstream.Translate(err, "load categories")
}

// CategoryPage is a category with its products, most expensive first.
type CategoryPage struct {
	Category *upstream.Category
	Products upstream.Page[upstream.Product]
}

func (s *Service) Category(ctx context.Context, id string, page, limit int) (*CategoryPage, error) {
	page, limit = clampPage(page, limit)
	var out CategoryPage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := cached(gctx, s, pageKey("category", id), func(ctx context.Context) (*upstream.Category, error) {
			return s.upstream.GetCategory(ctx, id)
		})
		out.Category = c
		return upstream.Translate(err, "load category")
	})
	g.Go(func() error {
		p, err := cached(gctx, s, pageKey("category-products", id, page, limit), func(ctx context.Context) (upstream.Page[upstream.Product], error) {
			return s.upstream.ListProductsByCategory(ctx, id, page, limit)
		})
		out.Products = p
		return upstream.Translate(err, "load category products")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > fetchAllPageSize {
		limit = DefaultLimit
	}
	return page, limit
}
