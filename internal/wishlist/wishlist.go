// Package wishlist implements the saved-products engine: a deduplicated,
// insertion-ordered product set persisted alongside the cart.
package wishlist

import (
	"sync"

	"maison/internal/cart"
	"maison/internal/model"
	"maison/internal/storage"

	"github.com/rs/zerolog"
)

// Wishlist holds products a shopper saved for later. Like the cart it is a
// single shared handle constructed at application start.
type Wishlist struct {
	mu     sync.Mutex
	items  []model.Product
	col    *storage.Collection[model.Product]
	cart   *cart.Cart
	logger zerolog.Logger
}

// New creates a wishlist seeded from persisted state. The cart handle is
// used by MoveToCart.
func New(col *storage.Collection[model.Product], c *cart.Cart, logger zerolog.Logger) *Wishlist {
	return &Wishlist{
		items:  col.Load(),
		col:    col,
		cart:   c,
		logger: logger.With().Str("component", "wishlist").Logger(),
	}
}

// Add inserts the product unless an entry with the same id already exists.
func (w *Wishlist) Add(p model.Product) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, item := range w.items {
		if item.ID == p.ID {
			return
		}
	}

	w.items = append(w.items, p)
	w.persist()
}

// Remove deletes the product if present.
func (w *Wishlist) Remove(productID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.removeLocked(productID)
}

// MoveToCart adds one unit of the product to the cart, then removes it from
// the wishlist. The cart add is a pure local state update with no failure
// mode, so the two steps cannot leave partial state behind.
func (w *Wishlist) MoveToCart(p model.Product) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.cart.Add(p, 1)
	w.removeLocked(p.ID)
}

// Contains reports whether the product is on the wishlist.
func (w *Wishlist) Contains(productID int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, item := range w.items {
		if item.ID == productID {
			return true
		}
	}
	return false
}

// Items returns a copy of the wishlist in insertion order.
func (w *Wishlist) Items() []model.Product {
	w.mu.Lock()
	defer w.mu.Unlock()

	items := make([]model.Product, len(w.items))
	copy(items, w.items)
	return items
}

// removeLocked deletes by id. Callers must hold w.mu.
func (w *Wishlist) removeLocked(productID int64) {
	for i := range w.items {
		if w.items[i].ID == productID {
			w.items = append(w.items[:i], w.items[i+1:]...)
			w.persist()
			return
		}
	}
}

// persist mirrors the current items to the durable store. Callers must hold
// w.mu.
func (w *Wishlist) persist() {
	if err := w.col.Save(w.items); err != nil {
		w.logger.Error().Err(err).Msg("failed to persist wishlist")
	}
}
