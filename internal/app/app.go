// Package app wires the storefront together. Everything the UI needs is
// constructed exactly once here and passed around by handle; there is no
// global lookup.
package app

import (
	"fmt"
	"time"

	"maison/internal/backend"
	"maison/internal/blog"
	"maison/internal/cart"
	"maison/internal/catalog"
	"maison/internal/checkout"
	"maison/internal/config"
	"maison/internal/contact"
	"maison/internal/model"
	"maison/internal/storage"
	"maison/internal/wishlist"

	"github.com/rs/zerolog"
)

// Durable-store keys for the session-owned collections.
const (
	cartKey     = "cart"
	wishlistKey = "wishlist"
)

// App is the assembled storefront core.
type App struct {
	Logger   zerolog.Logger
	Backend  backend.Client
	Cart     *cart.Cart
	Wishlist *wishlist.Wishlist
	Catalog  *catalog.Service
	Blog     *blog.Service
	Contact  *contact.Service

	checkoutCfg checkout.Config
}

// New builds the application from configuration: durable store, engines,
// backend client and query services.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	store, err := storage.NewStore(cfg.Storage.Dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	client := backend.NewHTTPClient(
		cfg.Backend.BaseURL,
		cfg.Backend.APIKey,
		time.Duration(cfg.Backend.Timeout)*time.Second,
		logger,
	)

	c := cart.New(storage.NewCollection[cart.Line](store, cartKey, logger), logger)
	w := wishlist.New(storage.NewCollection[model.Product](store, wishlistKey, logger), c, logger)

	return &App{
		Logger:   logger,
		Backend:  client,
		Cart:     c,
		Wishlist: w,
		Catalog:  catalog.NewService(client, logger),
		Blog:     blog.NewService(client, logger),
		Contact:  contact.NewService(client, logger),
		checkoutCfg: checkout.Config{
			FreeShippingThreshold: cfg.Checkout.FreeShippingThreshold,
			ShippingFee:           cfg.Checkout.ShippingFee,
		},
	}, nil
}

// NewCheckout mints a fresh checkout session over the shared cart. One
// session per checkout visit.
func (a *App) NewCheckout() *checkout.Session {
	return checkout.NewSession(a.Cart, a.Backend, a.checkoutCfg, a.Logger)
}
