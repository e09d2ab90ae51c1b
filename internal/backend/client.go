package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"maison/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// HTTPClient implements Client over the backend's JSON API.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewHTTPClient creates a backend client for the given base URL. The API key
// is optional; when set it is sent on every request.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "backend").Logger(),
	}
}

// idResponse is the payload returned by creation endpoints.
type idResponse struct {
	ID int64 `json:"id,string"`
}

// couponRequest is the payload for coupon application.
type couponRequest struct {
	Total      decimal.Decimal `json:"total"`
	CouponCode string          `json:"couponCode"`
}

// couponResponse is the payload returned by coupon application.
type couponResponse struct {
	Total decimal.Decimal `json:"total"`
}

// GetProducts retrieves the full product catalogue.
func (c *HTTPClient) GetProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, nil, &products); err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetProductsByCategory retrieves the products of one category.
func (c *HTTPClient) GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	query := url.Values{"category": {category}}

	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", query, nil, &products); err != nil {
		return nil, fmt.Errorf("failed to get products for category %q: %w", category, err)
	}
	return products, nil
}

// ApplyCouponCode submits a coupon code against a pre-discount total and
// returns the total the backend computed.
func (c *HTTPClient) ApplyCouponCode(ctx context.Context, total decimal.Decimal, code string) (decimal.Decimal, error) {
	req := couponRequest{Total: total, CouponCode: code}

	var resp couponResponse
	if err := c.do(ctx, http.MethodPost, "/api/coupons/apply", nil, req, &resp); err != nil {
		return decimal.Zero, fmt.Errorf("failed to apply coupon: %w", err)
	}
	return resp.Total, nil
}

// PlaceOrder creates a guest order and returns its identifier.
func (c *HTTPClient) PlaceOrder(ctx context.Context, req OrderRequest) (int64, error) {
	var resp idResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", nil, req, &resp); err != nil {
		return 0, fmt.Errorf("failed to place order: %w", err)
	}
	return resp.ID, nil
}

// SubmitContact records a contact-form message and returns its identifier.
func (c *HTTPClient) SubmitContact(ctx context.Context, req ContactRequest) (int64, error) {
	var resp idResponse
	if err := c.do(ctx, http.MethodPost, "/api/contact", nil, req, &resp); err != nil {
		return 0, fmt.Errorf("failed to submit contact message: %w", err)
	}
	return resp.ID, nil
}

// GetBlogPosts retrieves all published blog posts.
func (c *HTTPClient) GetBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	if err := c.do(ctx, http.MethodGet, "/api/blog-posts", nil, nil, &posts); err != nil {
		return nil, fmt.Errorf("failed to get blog posts: %w", err)
	}
	return posts, nil
}

// GetBlogPostsByCategory retrieves the blog posts of one category.
func (c *HTTPClient) GetBlogPostsByCategory(ctx context.Context, category string) ([]model.BlogPost, error) {
	query := url.Values{"category": {category}}

	var posts []model.BlogPost
	if err := c.do(ctx, http.MethodGet, "/api/blog-posts", query, nil, &posts); err != nil {
		return nil, fmt.Errorf("failed to get blog posts for category %q: %w", category, err)
	}
	return posts, nil
}

// GetOrders retrieves all orders.
func (c *HTTPClient) GetOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// GetOrderByID retrieves a single order, or nil when it does not exist.
func (c *HTTPClient) GetOrderByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := c.do(ctx, http.MethodGet, "/api/orders/"+strconv.FormatInt(id, 10), nil, nil, &order)
	if err != nil {
		var berr *Error
		if errors.As(err, &berr) && berr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return &order, nil
}

// AddProduct creates a catalogue item and returns its identifier.
func (c *HTTPClient) AddProduct(ctx context.Context, req ProductRequest) (int64, error) {
	var resp idResponse
	if err := c.do(ctx, http.MethodPost, "/api/products", nil, req, &resp); err != nil {
		return 0, fmt.Errorf("failed to add product: %w", err)
	}
	return resp.ID, nil
}

// AddBlogPost publishes a blog post and returns its identifier.
func (c *HTTPClient) AddBlogPost(ctx context.Context, req BlogPostRequest) (int64, error) {
	var resp idResponse
	if err := c.do(ctx, http.MethodPost, "/api/blog-posts", nil, req, &resp); err != nil {
		return 0, fmt.Errorf("failed to add blog post: %w", err)
	}
	return resp.ID, nil
}

// do performs one backend call: marshals body (if any), attaches the API key
// and a fresh correlation id, and decodes the response into out (if non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	correlationID := uuid.NewString()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Correlation-ID", correlationID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("method", method).
			Str("path", path).
			Str("correlation_id", correlationID).
			Msg("backend call failed")
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("correlation_id", correlationID).
		Msg("backend call")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.decodeError(resp, correlationID)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// decodeError maps a non-2xx response to an *Error, tolerating bodies that
// are not the standard error shape.
func (c *HTTPClient) decodeError(resp *http.Response, correlationID string) error {
	berr := &Error{
		StatusCode:    resp.StatusCode,
		Message:       http.StatusText(resp.StatusCode),
		CorrelationID: correlationID,
	}

	var payload model.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if payload.Error != "" {
			berr.Code = payload.Error
		}
		if payload.Message != "" {
			berr.Message = payload.Message
		}
		if payload.CorrelationID != "" {
			berr.CorrelationID = payload.CorrelationID
		}
	}

	return berr
}
