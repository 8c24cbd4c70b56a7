package cart

import (
	"errors"
)

var (
	// ErrUnknownDriver is returned when settings name a driver other than session, database or both.
	ErrUnknownDriver = errors.New("cart: unknown driver")

	// ErrMissingBackend is returned when the driver needs a store that was not provided.
	ErrMissingBackend = errors.New("cart: missing backend")
)

// InvalidInput is returned before any backend is touched when an
// operation gets values the cart cannot hold.
type InvalidInput struct {
	Field  string
	Reason string
}

func (e *InvalidInput) Error() string {
	return "cart: invalid " + e.Field + ": " + e.Reason
}

// IsInvalidInput reports whether err (or anything it wraps) is an *InvalidInput.
func IsInvalidInput(err error) bool {
	var target *InvalidInput
	return errors.As(err, &target)
}
