package model

import "github.com/shopspring/decimal"

// Product represents a catalogue item owned by the remote storefront backend.
// Identifiers are 64-bit and encode as decimal strings everywhere (wire and
// durable state) so values above 2^53 round-trip exactly.
type Product struct {
	ID          int64           `json:"id,string"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
}
