package upstream

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) listProducts(ctx context.Context, op string, q url.Values) (Page[Product], error) {
	body, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/products", query: q})
	if err != nil {
		return Page[Product]{}, err
	}
	page, err := decodePage[Product](body)
	if err != nil {
		return Page[Product]{}, decodeFailure(op, err)
	}
	return page, nil
}

func (c *Client) ListProducts(ctx context.Context, page, limit int) (Page[Product], error) {
	return c.listProducts(ctx, "products.list", pageQuery(page, limit))
}

func (c *Client) SearchProducts(ctx context.Context, keyword string, page, limit int) (Page[Product], error) {
	q := pageQuery(page, limit)
	q.Set("keyword", keyword)
	return c.listProducts(ctx, "products.search", q)
}

func (c *Client) ListProductsByBrand(ctx context.Context, brandID string, page, limit int) (Page[Product], error) {
	q := pageQuery(page, limit)
	q.Set("brand", brandID)
	return c.listProducts(ctx, "products.by_brand", q)
}

// ListProductsByCategory lists a category's products, most expensive first.
func (c *Client) ListProductsByCategory(ctx context.Context, categoryID string, page, limit int) (Page[Product], error) {
	q := pageQuery(page, limit)
	q.Set("category[in]", categoryID)
	q.Set("sort", "-price")
	return c.listProducts(ctx, "products.by_category", q)
}

func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	return getOne[Product](ctx, c, "products.get", "/products/"+url.PathEscape(id))
}

func (c *Client) ListBrands(ctx context.Context, page, limit int) (Page[Brand], error) {
	const op = "brands.list"
	body, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/brands", query: pageQuery(page, limit)})
	if err != nil {
		return Page[Brand]{}, err
	}
	p, err := decodePage[Brand](body)
	if err != nil {
		return Page[Brand]{}, decodeFailure(op, err)
	}
	return p, nil
}

func (c *Client) GetBrand(ctx context.Context, id string) (*Brand, error) {
	return getOne[Brand](ctx, c, "brands.get", "/brands/"+url.PathEscape(id))
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	const op = "categories.list"
	body, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/categories"})
	if err != nil {
		return nil, err
	}
	cats, err := decodeList[Category](body)
	if err != nil {
		return nil, decodeFailure(op, err)
	}
	return cats, nil
}

func (c *Client) GetCategory(ctx context.Context, id string) (*Category, error) {
	return getOne[Category](ctx, c, "categories.get", "/categories/"+url.PathEscape(id))
}

func getOne[T any](ctx context.Context, c *Client, op, path string) (*T, error) {
	body, err := c.do(ctx, call{op: op, method: http.MethodGet, path: path})
	if err != nil {
		return nil, err
	}
	v, err := decodeData[T](body)
	if err != nil {
		return nil, decodeFailure(op, err)
	}
	return &v, nil
}
