package service

import (
	"errors"
	"strings"

	"github.com/shopstack/shopstack/internal/transport"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrUserExists      = errors.New("user already exists")
	ErrBadCredentials  = errors.New("invalid email or password")
	ErrProductInCarts  = errors.New("product is referenced by carts")
)

// ValidationError carries the list of violated fields so handlers can
// return them in the error body.
type ValidationError struct {
	Fields []transport.FieldError
}

func (e *ValidationError) Error() string {
	reasons := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		reasons[i] = f.Field + ": " + f.Reason
	}
	return "validation: " + strings.Join(reasons, "; ")
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
