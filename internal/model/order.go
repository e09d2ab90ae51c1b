package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a guest order as recorded by the remote backend. The
// backend is the sole writer of the identifier, status and timestamp; the
// client never mutates an order after creation.
type Order struct {
	ID              int64           `json:"id,string"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	GuestName       string          `json:"guestName"`
	GuestEmail      string          `json:"guestEmail"`
	ShippingAddress string          `json:"shippingAddress"`
	ProductID       int64           `json:"productId,string"`
	Quantity        int64           `json:"quantity"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
}
