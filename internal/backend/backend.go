// Package backend is the client for the remote storefront backend, the sole
// owner of product, order, blog and contact records. The rest of the module
// treats it as a black-box service boundary.
package backend

import (
	"context"
	"fmt"

	"maison/internal/model"

	"github.com/shopspring/decimal"
)

// OrderRequest is the payload for placing a guest order. The backend accepts
// a single product per order.
type OrderRequest struct {
	GuestName       string          `json:"guestName"`
	GuestEmail      string          `json:"guestEmail"`
	ShippingAddress string          `json:"shippingAddress"`
	ProductID       int64           `json:"productId,string"`
	Quantity        int64           `json:"quantity"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
}

// ContactRequest is the payload for a contact-form submission.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ProductRequest is the payload for creating a catalogue item.
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
}

// BlogPostRequest is the payload for publishing a blog post.
type BlogPostRequest struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Body     string `json:"body"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

// Client defines the remote operations exposed by the storefront backend.
type Client interface {
	// GetProducts retrieves the full product catalogue.
	GetProducts(ctx context.Context) ([]model.Product, error)

	// GetProductsByCategory retrieves the products of one category.
	GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error)

	// ApplyCouponCode submits a pre-discount total and a coupon code and
	// returns the (possibly unchanged) total. Callers must treat a
	// non-improved total as an invalid code.
	ApplyCouponCode(ctx context.Context, total decimal.Decimal, code string) (decimal.Decimal, error)

	// PlaceOrder creates a guest order and returns its identifier.
	PlaceOrder(ctx context.Context, req OrderRequest) (int64, error)

	// SubmitContact records a contact-form message and returns its identifier.
	SubmitContact(ctx context.Context, req ContactRequest) (int64, error)

	// GetBlogPosts retrieves all published blog posts.
	GetBlogPosts(ctx context.Context) ([]model.BlogPost, error)

	// GetBlogPostsByCategory retrieves the blog posts of one category.
	GetBlogPostsByCategory(ctx context.Context, category string) ([]model.BlogPost, error)

	// GetOrders retrieves all orders.
	GetOrders(ctx context.Context) ([]model.Order, error)

	// GetOrderByID retrieves a single order, or nil when it does not exist.
	GetOrderByID(ctx context.Context, id int64) (*model.Order, error)

	// AddProduct creates a catalogue item and returns its identifier.
	AddProduct(ctx context.Context, req ProductRequest) (int64, error)

	// AddBlogPost publishes a blog post and returns its identifier.
	AddBlogPost(ctx context.Context, req BlogPostRequest) (int64, error)
}

// Error represents a failed backend call.
type Error struct {
	StatusCode    int
	Code          string
	Message       string
	CorrelationID string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend returned %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}
