package model

// ErrorResponse represents the standardised error payload returned by the
// remote backend on failed calls.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes shared with the backend API
const (
	ErrCodeValidation    = "VALIDATION_FAILED"
	ErrCodeInvalidCoupon = "INVALID_COUPON"
	ErrCodeEmptyCart     = "EMPTY_CART"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// DomainError carries a machine-readable code alongside a human-readable
// message for business-rule rejections.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyCart = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
)
