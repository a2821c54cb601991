package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mohandalborai/ShopSphere/internal/models"
	"github.com/mohandalborai/ShopSphere/internal/util"
)

// APIError is a non-2xx response from the catalog API.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s", e.Status)
}

// Client is a read-through cached client for the external catalog API.
// GET responses are memoized by full request URL; cache hits skip the
// network entirely. Cancelled fetches never populate the cache.
type Client struct {
	baseURL string
	httpc   *http.Client
	cache   Cache
	logger  *zap.Logger
}

// NewClient creates a catalog client against baseURL.
func NewClient(baseURL string, cache Cache) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		cache:   cache,
		logger:  util.NamedLogger("catalog"),
	}
}

// Products lists the catalog with limit/skip pagination.
func (c *Client) Products(ctx context.Context, limit, skip int) (*models.ProductPage, error) {
	var page models.ProductPage
	path := fmt.Sprintf("/products?limit=%d&skip=%d", limit, skip)
	if err := c.getJSON(ctx, "products", path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Categories lists all catalog categories.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.getJSON(ctx, "categories", "/products/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ProductsByCategory lists products in one category slug.
func (c *Client) ProductsByCategory(ctx context.Context, slug string, limit, skip int) (*models.ProductPage, error) {
	var page models.ProductPage
	path := fmt.Sprintf("/products/category/%s?limit=%d&skip=%d", url.PathEscape(slug), limit, skip)
	if err := c.getJSON(ctx, "products_by_category", path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ProductByID fetches a single product.
func (c *Client) ProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	path := fmt.Sprintf("/products/%d", id)
	if err := c.getJSON(ctx, "product_by_id", path, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Search runs a free-text product search.
func (c *Client) Search(ctx context.Context, query string, limit, skip int) (*models.ProductPage, error) {
	var page models.ProductPage
	path := fmt.Sprintf("/products/search?q=%s&limit=%d&skip=%d", url.QueryEscape(query), limit, skip)
	if err := c.getJSON(ctx, "search", path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// getJSON fetches path through the cache and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, out interface{}) error {
	ctx, span := util.StartSpan(ctx, "catalog.fetch")
	defer span.End()

	reqURL := c.baseURL + path

	if body, ok := c.cache.Get(ctx, reqURL); ok {
		util.CatalogCacheHitsTotal.Inc()
		return json.Unmarshal(body, out)
	}
	util.CatalogCacheMissesTotal.Inc()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Cancellation is not an application-level catalog error.
		if ctxErr := ctx.Err(); ctxErr != nil {
			util.CatalogRequestsTotal.WithLabelValues(endpoint, "cancelled").Inc()
			return ctxErr
		}
		util.CatalogRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()
	util.CatalogFetchLatency.Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		util.CatalogRequestsTotal.WithLabelValues(endpoint, "api_error").Inc()
		return &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("failed to read catalog response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}

	util.CatalogRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	c.cache.Set(ctx, reqURL, body)
	return nil
}
