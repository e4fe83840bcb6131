package order

import "errors"

var (
	ErrNoAddress      = errors.New("address required")
	ErrMissingContact = errors.New("name and contact required")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrUnauthorized   = errors.New("unauthorized")
)
