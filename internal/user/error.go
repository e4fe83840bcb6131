package user

import "errors"

var (
	ErrMobileRequired = errors.New("mobile required")
	ErrNotFound       = errors.New("user not found")
	ErrCodeMismatch   = errors.New("invalid OTP")
	ErrCodeExpired    = errors.New("OTP expired")
	ErrDispatchFailed = errors.New("failed to send WhatsApp message")
)
