// Package catalog fetches products from the backend and refines them
// client-side by search text, price bounds and sort order.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"maison/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllCategories selects the full catalogue instead of one category.
const AllCategories = "All"

// SortOrder selects how refined results are ordered.
type SortOrder string

const (
	// SortNewest keeps the backend's order.
	SortNewest SortOrder = "newest"

	// SortPriceAsc orders by ascending price.
	SortPriceAsc SortOrder = "price-asc"

	// SortPriceDesc orders by descending price.
	SortPriceDesc SortOrder = "price-desc"

	// SortNameAsc orders by name using a locale-aware compare.
	SortNameAsc SortOrder = "name-asc"
)

// Query captures the shopper's current refinement inputs. Price bounds are
// raw input strings; a bound that does not parse as a number is skipped.
type Query struct {
	Category string
	Search   string
	MinPrice string
	MaxPrice string
	Sort     SortOrder
}

// ProductSource is the subset of the backend the catalogue needs.
type ProductSource interface {
	GetProducts(ctx context.Context) ([]model.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
}

// Service answers catalogue queries.
type Service struct {
	source ProductSource
	logger zerolog.Logger
}

// NewService creates a catalogue service.
func NewService(source ProductSource, logger zerolog.Logger) *Service {
	return &Service{
		source: source,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Browse fetches the product list for the query's category and applies the
// refinement pipeline. A specific category fetches only that subset to avoid
// over-fetching.
func (s *Service) Browse(ctx context.Context, q Query) ([]model.Product, error) {
	var (
		products []model.Product
		err      error
	)

	if q.Category == "" || q.Category == AllCategories {
		products, err = s.source.GetProducts(ctx)
	} else {
		products, err = s.source.GetProductsByCategory(ctx, q.Category)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("category", q.Category).Msg("failed to fetch products")
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	refined := Refine(products, q)

	s.logger.Debug().
		Str("category", q.Category).
		Int("fetched", len(products)).
		Int("refined", len(refined)).
		Msg("browsed catalogue")

	return refined, nil
}

// Refine applies the fixed pipeline (search, then minimum price, then
// maximum price, then sort) and returns a fresh slice. The input is never
// mutated.
func Refine(products []model.Product, q Query) []model.Product {
	result := make([]model.Product, len(products))
	copy(result, products)

	if search := strings.TrimSpace(q.Search); search != "" {
		needle := strings.ToLower(search)
		result = filter(result, func(p model.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle)
		})
	}

	if min, err := decimal.NewFromString(strings.TrimSpace(q.MinPrice)); err == nil {
		result = filter(result, func(p model.Product) bool {
			return p.Price.GreaterThanOrEqual(min)
		})
	}

	if max, err := decimal.NewFromString(strings.TrimSpace(q.MaxPrice)); err == nil {
		result = filter(result, func(p model.Product) bool {
			return p.Price.LessThanOrEqual(max)
		})
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.LessThan(result[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.GreaterThan(result[j].Price)
		})
	case SortNameAsc:
		// Collators are stateful, so build one per call.
		coll := collate.New(language.English)
		sort.SliceStable(result, func(i, j int) bool {
			return coll.CompareString(result[i].Name, result[j].Name) < 0
		})
	default:
		// SortNewest: the backend's order stands.
	}

	return result
}

func filter(products []model.Product, keep func(model.Product) bool) []model.Product {
	kept := products[:0]
	for _, p := range products {
		if keep(p) {
			kept = append(kept, p)
		}
	}
	return kept
}
