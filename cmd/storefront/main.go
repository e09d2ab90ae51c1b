// Command storefront boots the client core against the configured backend
// and reports what it finds: persisted cart/wishlist state and the reachable
// catalogue. Useful as a smoke check for a deployment's configuration.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"maison/internal/app"
	"maison/internal/catalog"
	"maison/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("backend", cfg.Backend.BaseURL).Msg("starting maison storefront")

	a, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	logger.Info().
		Int("cart_items", a.Cart.ItemCount()).
		Int("wishlist_items", len(a.Wishlist.Items())).
		Str("cart_subtotal", a.Cart.Subtotal().String()).
		Msg("restored persisted state")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Backend.Timeout)*time.Second)
	defer cancel()

	products, err := a.Catalog.Browse(ctx, catalog.Query{})
	if err != nil {
		return fmt.Errorf("backend check failed: %w", err)
	}

	logger.Info().Int("products", len(products)).Msg("backend reachable, catalogue fetched")
	return nil
}
