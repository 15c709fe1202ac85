package model

import "errors"

// BackendMessage is the store backend's standard failure body.
type BackendMessage struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Standard error codes for failures surfaced by the storefront.
const (
	ErrCodeUnauthenticated = "UNAUTHENTICATED"
	ErrCodeDuplicateItem   = "DUPLICATE_ITEM"
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeConnectivity    = "CONNECTIVITY"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInvalidInput    = "INVALID_INPUT"
)

// Domain errors for business logic
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

// CodeOf classifies an error into a domain error code. Errors that are
// not domain errors (transport failures, unexpected backend responses)
// fall into the connectivity class.
func CodeOf(err error) string {
	var derr *DomainError
	if errors.As(err, &derr) {
		return derr.Code
	}
	return ErrCodeConnectivity
}

// Common domain errors
var (
	ErrUnauthenticated = NewDomainError(ErrCodeUnauthenticated, "Login to add an item to the Cart")
	ErrDuplicateItem   = NewDomainError(ErrCodeDuplicateItem, "Item already in cart. Use the cart sidebar to update quantity or remove item.")
	ErrNoMatches       = NewDomainError(ErrCodeNotFound, "No products found")
	ErrConnectivity    = NewDomainError(ErrCodeConnectivity, "Something went wrong. Check that the backend is running, reachable and returns valid JSON.")
)
