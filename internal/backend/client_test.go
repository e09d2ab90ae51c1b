package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewHTTPClient(server.URL, "test-key", 5*time.Second, zerolog.Nop())
}

func TestHTTPClient_GetProducts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		assert.NotEmpty(t, r.Header.Get("X-Correlation-ID"))

		w.Header().Set("Content-Type", "application/json")
		// ID above 2^53: must survive the decimal-string encoding.
		w.Write([]byte(`[{"id":"1152921504606846979","name":"Velvet Cushion","description":"Plush","imageUrl":"/img/1.jpg","category":"Textiles","price":"49.99"}]`))
	})

	products, err := client.GetProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(1152921504606846979), products[0].ID)
	assert.Equal(t, "Velvet Cushion", products[0].Name)
	assert.True(t, decimal.RequireFromString("49.99").Equal(products[0].Price))
}

func TestHTTPClient_GetProductsByCategory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Lighting", r.URL.Query().Get("category"))
		w.Write([]byte(`[]`))
	})

	products, err := client.GetProductsByCategory(context.Background(), "Lighting")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestHTTPClient_ApplyCouponCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/coupons/apply", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req couponRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "SAVE20", req.CouponCode)
		assert.True(t, decimal.RequireFromString("100").Equal(req.Total))

		w.Write([]byte(`{"total":"80.00"}`))
	})

	total, err := client.ApplyCouponCode(context.Background(), decimal.NewFromInt(100), "SAVE20")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("80.00").Equal(total))
}

func TestHTTPClient_PlaceOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)

		var req OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Jane Doe", req.GuestName)
		assert.Equal(t, int64(1152921504606846979), req.ProductID)
		assert.Equal(t, int64(2), req.Quantity)

		w.Write([]byte(`{"id":"9007199254740995"}`))
	})

	id, err := client.PlaceOrder(context.Background(), OrderRequest{
		GuestName:       "Jane Doe",
		GuestEmail:      "jane@example.com",
		ShippingAddress: "1 Main St",
		ProductID:       1152921504606846979,
		Quantity:        2,
		TotalPrice:      decimal.RequireFromString("114.98"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9007199254740995), id)
}

func TestHTTPClient_SubmitContact(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/contact", r.URL.Path)
		w.Write([]byte(`{"id":"42"}`))
	})

	id, err := client.SubmitContact(context.Background(), ContactRequest{
		Name:    "Jane",
		Email:   "jane@example.com",
		Subject: "Hello",
		Message: "Lovely shop",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestHTTPClient_GetBlogPostsByCategory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/blog-posts", r.URL.Path)
		assert.Equal(t, "Styling", r.URL.Query().Get("category"))
		w.Write([]byte(`[{"id":"3","title":"Autumn Palettes","author":"M. Laurent","category":"Styling","date":"2026-08-01T00:00:00Z"}]`))
	})

	posts, err := client.GetBlogPostsByCategory(context.Background(), "Styling")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Autumn Palettes", posts[0].Title)
}

func TestHTTPClient_GetOrderByID_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/5", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"NOT_FOUND","message":"order not found"}`))
	})

	order, err := client.GetOrderByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestHTTPClient_ErrorResponseMapping(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"VALIDATION_FAILED","message":"quantity must be positive","correlationId":"abc-123"}`))
	})

	_, err := client.PlaceOrder(context.Background(), OrderRequest{})
	require.Error(t, err)

	var berr *Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, http.StatusBadRequest, berr.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", berr.Code)
	assert.Equal(t, "quantity must be positive", berr.Message)
	assert.Equal(t, "abc-123", berr.CorrelationID)
}

func TestHTTPClient_ErrorResponseWithUnexpectedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.GetProducts(context.Background())
	require.Error(t, err)

	var berr *Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, http.StatusBadGateway, berr.StatusCode)
	assert.Equal(t, "Bad Gateway", berr.Message)
}

func TestHTTPClient_Unreachable(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1", "", time.Second, zerolog.Nop())

	_, err := client.GetProducts(context.Background())
	require.Error(t, err)

	var berr *Error
	assert.False(t, errors.As(err, &berr), "transport failures should not map to backend errors")
}
