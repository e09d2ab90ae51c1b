// Package checkout orchestrates the guest checkout: field validation, coupon
// application, order totals with the shipping surcharge, and one-shot order
// submission.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"maison/internal/backend"
	"maison/internal/cart"
	"maison/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// State is the checkout session's position in its lifecycle.
type State int

const (
	// StateEditing accepts form input, coupon codes and a submit attempt.
	StateEditing State = iota

	// StateCouponPending means a coupon call is in flight.
	StateCouponPending

	// StateSubmitting means an order submission is in flight.
	StateSubmitting

	// StateConfirmed means the order was placed; the session is finished.
	StateConfirmed
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateCouponPending:
		return "coupon-pending"
	case StateSubmitting:
		return "submitting"
	case StateConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy is returned when a remote call is already in flight for this
	// session. The same control must not fire twice.
	ErrBusy = errors.New("checkout operation already in flight")

	// ErrCompleted is returned for any mutation after the order confirmed.
	ErrCompleted = errors.New("checkout already completed")

	// ErrInvalidForm is returned when submission is blocked by field errors.
	ErrInvalidForm = errors.New("form validation failed")
)

// User-visible messages, surfaced next to the triggering control.
const (
	MsgInvalidCoupon = "Invalid coupon code. Try DISCOUNT10 or SAVE20."
	MsgCouponFailed  = "Failed to apply coupon. Please try again."
	MsgOrderFailed   = "Failed to place order. Please try again."
)

// Form holds the guest identity fields.
type Form struct {
	Name    string
	Email   string
	Address string
}

// Summary is the priced breakdown of the current checkout.
type Summary struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Config holds the shipping pricing rules.
type Config struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
}

// Gateway is the subset of the backend the checkout needs.
type Gateway interface {
	ApplyCouponCode(ctx context.Context, total decimal.Decimal, code string) (decimal.Decimal, error)
	PlaceOrder(ctx context.Context, req backend.OrderRequest) (int64, error)
}

// Session is one guest checkout over the shared cart. Create a fresh session
// per checkout visit; the cart handle is shared, everything else is session
// state.
type Session struct {
	mu      sync.Mutex
	cart    *cart.Cart
	gateway Gateway
	cfg     Config
	logger  zerolog.Logger

	state       State
	form        Form
	fieldErrors map[string]string

	couponCode    string
	discounted    *decimal.Decimal
	couponMessage string

	submitMessage string
	orderID       int64
}

// NewSession creates a checkout session in the editing state.
func NewSession(c *cart.Cart, gateway Gateway, cfg Config, logger zerolog.Logger) *Session {
	return &Session{
		cart:        c,
		gateway:     gateway,
		cfg:         cfg,
		logger:      logger.With().Str("component", "checkout").Logger(),
		state:       StateEditing,
		fieldErrors: map[string]string{},
	}
}

// State returns the session's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetForm replaces the guest identity fields.
func (s *Session) SetForm(form Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = form
}

// FieldErrors returns a copy of the per-field validation errors from the
// last submit attempt.
func (s *Session) FieldErrors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	errs := make(map[string]string, len(s.fieldErrors))
	for field, msg := range s.fieldErrors {
		errs[field] = msg
	}
	return errs
}

// SetCouponCode records the code the shopper is editing. Any previously
// applied discount is dropped immediately so a stale discounted total never
// shows against a changed code.
func (s *Session) SetCouponCode(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.couponCode = code
	s.discounted = nil
	s.couponMessage = ""
}

// CouponMessage returns the rejection message from the last coupon attempt,
// or "" when there is none.
func (s *Session) CouponMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.couponMessage
}

// SubmitMessage returns the banner message from the last failed submission,
// or "" when there is none.
func (s *Session) SubmitMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitMessage
}

// OrderID returns the identifier of the confirmed order, or 0 before
// confirmation.
func (s *Session) OrderID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderID
}

// ApplyCoupon sends the trimmed coupon code and the pre-discount subtotal to
// the backend. The discount counts only when the returned total is strictly
// less than the subtotal; an unchanged or increased total is an invalid code
// even though the call succeeded. A blank code is a no-op. Rejections set
// CouponMessage and leave the session editable; only a transport failure is
// returned as an error (with the message also set).
func (s *Session) ApplyCoupon(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateCouponPending, StateSubmitting:
		s.mu.Unlock()
		return ErrBusy
	case StateConfirmed:
		s.mu.Unlock()
		return ErrCompleted
	}

	code := strings.TrimSpace(s.couponCode)
	s.couponMessage = ""
	s.discounted = nil
	if code == "" {
		s.mu.Unlock()
		return nil
	}

	subtotal := s.cart.Subtotal()
	s.state = StateCouponPending
	s.mu.Unlock()

	result, err := s.gateway.ApplyCouponCode(ctx, subtotal, code)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateEditing

	if err != nil {
		s.logger.Warn().Err(err).Str("code", code).Msg("coupon call failed")
		s.couponMessage = MsgCouponFailed
		return fmt.Errorf("failed to apply coupon: %w", err)
	}

	if result.GreaterThanOrEqual(subtotal) {
		s.logger.Debug().
			Str("code", code).
			Str("subtotal", subtotal.String()).
			Str("returned", result.String()).
			Msg("coupon did not improve total, rejecting")
		s.couponMessage = MsgInvalidCoupon
		return nil
	}

	s.discounted = &result
	s.logger.Info().
		Str("code", code).
		Str("discount", subtotal.Sub(result).String()).
		Msg("coupon applied")
	return nil
}

// DiscountApplied reports whether a coupon discount is currently in effect.
func (s *Session) DiscountApplied() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discounted != nil
}

// Summary prices the current checkout. The flat shipping fee applies
// whenever the pre-discount subtotal is under the free-shipping threshold;
// it is added after the discount and is never discounted itself.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

func (s *Session) summaryLocked() Summary {
	subtotal := s.cart.Subtotal()

	discount := decimal.Zero
	if s.discounted != nil {
		discount = subtotal.Sub(*s.discounted)
	}

	shipping := decimal.Zero
	if subtotal.LessThan(s.cfg.FreeShippingThreshold) {
		shipping = s.cfg.ShippingFee
	}

	return Summary{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    subtotal.Sub(discount).Add(shipping),
	}
}

// Validate checks the guest fields and records per-field errors. It returns
// true when the form is submittable.
func (s *Session) Validate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateLocked()
}

func (s *Session) validateLocked() bool {
	errs := map[string]string{}

	if strings.TrimSpace(s.form.Name) == "" {
		errs["name"] = "Name is required"
	}

	email := strings.TrimSpace(s.form.Email)
	if email == "" {
		errs["email"] = "Email is required"
	} else if !model.ValidEmail(email) {
		errs["email"] = "Invalid email address"
	}

	if strings.TrimSpace(s.form.Address) == "" {
		errs["address"] = "Shipping address is required"
	}

	s.fieldErrors = errs
	return len(errs) == 0
}

// Submit validates the form and places the order. Only the first cart line
// is sent: the backend accepts a single product per order, a known contract
// limit this client preserves rather than papers over. On success the cart
// is cleared and the session confirms with the returned order id; on remote
// failure the session returns to editing with the cart intact.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateCouponPending, StateSubmitting:
		s.mu.Unlock()
		return ErrBusy
	case StateConfirmed:
		s.mu.Unlock()
		return ErrCompleted
	}

	s.submitMessage = ""

	if !s.validateLocked() {
		s.mu.Unlock()
		return ErrInvalidForm
	}

	lines := s.cart.Lines()
	if len(lines) == 0 {
		s.mu.Unlock()
		return model.ErrEmptyCart
	}

	first := lines[0]
	summary := s.summaryLocked()
	req := backend.OrderRequest{
		GuestName:       s.form.Name,
		GuestEmail:      s.form.Email,
		ShippingAddress: s.form.Address,
		ProductID:       first.Product.ID,
		Quantity:        int64(first.Quantity),
		TotalPrice:      summary.Total,
	}

	s.state = StateSubmitting
	s.mu.Unlock()

	orderID, err := s.gateway.PlaceOrder(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateEditing
		s.submitMessage = MsgOrderFailed
		s.logger.Error().Err(err).Msg("order submission failed")
		return fmt.Errorf("failed to place order: %w", err)
	}

	s.state = StateConfirmed
	s.orderID = orderID
	s.cart.Clear()

	s.logger.Info().
		Int64("order_id", orderID).
		Str("total", summary.Total.String()).
		Msg("order confirmed")
	return nil
}
