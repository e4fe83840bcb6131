package notify

import (
	"context"

	"foodcourt-be/internal/cart"
)

// OrderAlert carries everything the admin summary message needs. Delivery is
// single-attempt; callers decide whether a failure matters.
type OrderAlert struct {
	OrderID      uint
	CustomerName string
	Contact      string
	Mobile       string
	AddressText  string
	Total        int
	Items        []cart.Line
}

type Notifier interface {
	SendOTP(ctx context.Context, mobile, code string) error
	SendOrderAlert(ctx context.Context, alert OrderAlert) error
}
