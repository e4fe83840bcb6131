package order

import (
	"time"

	"foodcourt-be/internal/cart"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

type Order struct {
	ID        uint
	UserID    uint
	AddressID uint
	Total     int
	Status    Status
	CreatedAt time.Time
}

// AddressData is the delivery selection confirmed at checkout: a catalog
// address reference plus the contact details typed by the user.
type AddressData struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// PlaceInput is the POST /api/orders payload. The line shape is the cart's
// own snapshot type, so totals are recomputed from exactly what the client
// held.
type PlaceInput struct {
	UserID  uint        `json:"userId"`
	Address AddressData `json:"addressData"`
	Items   []cart.Line `json:"cartItems"`
	Total   int         `json:"total"`
}

// Summary is one row of the order history listing.
type Summary struct {
	ID        uint      `json:"id"`
	Total     int       `json:"total_amount"`
	CreatedAt time.Time `json:"created_at"`
	Status    Status    `json:"status"`
}
