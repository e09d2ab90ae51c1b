// Package cart implements the shopping-cart engine. The cart is local state:
// it lives in memory, is mirrored to the durable store after every mutation,
// and never talks to the backend.
package cart

import (
	"sync"

	"maison/internal/model"
	"maison/internal/storage"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Line is a (product, quantity) pairing inside the cart. At most one line
// exists per product identifier, and a persisted quantity is always >= 1.
type Line struct {
	Product  model.Product `json:"product"`
	Quantity int           `json:"quantity"`
}

// Cart accumulates product selections across page loads. Construct it once
// at application start and pass the handle to every consumer.
type Cart struct {
	mu     sync.Mutex
	lines  []Line
	col    *storage.Collection[Line]
	logger zerolog.Logger
}

// New creates a cart seeded from whatever the collection has persisted.
func New(col *storage.Collection[Line], logger zerolog.Logger) *Cart {
	return &Cart{
		lines:  col.Load(),
		col:    col,
		logger: logger.With().Str("component", "cart").Logger(),
	}
}

// Add merges quantity into the existing line for the product, or appends a
// new line preserving encounter order. Quantities below one count as one.
func (c *Cart) Add(p model.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity += quantity
			c.persist()
			return
		}
	}

	c.lines = append(c.lines, Line{Product: p, Quantity: quantity})
	c.persist()
}

// Remove deletes the line for the product if present.
func (c *Cart) Remove(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.persist()
			return
		}
	}
}

// SetQuantity sets the line's quantity exactly. A quantity of zero or less
// removes the line.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity = quantity
			c.persist()
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.persist()
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Subtotal recomputes the sum of price x quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	subtotal := decimal.Zero
	for _, line := range c.lines {
		subtotal = subtotal.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return subtotal
}

// ItemCount recomputes the total quantity across all lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// persist mirrors the current lines to the durable store. Write failures are
// logged, not escalated: the in-memory cart stays authoritative for the
// session. Callers must hold c.mu.
func (c *Cart) persist() {
	if err := c.col.Save(c.lines); err != nil {
		c.logger.Error().Err(err).Msg("failed to persist cart")
	}
}
