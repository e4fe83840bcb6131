package address

// SavedAddress is a delivery record retained for a user: a reference to a
// catalog address plus the contact details used with it.
type SavedAddress struct {
	ID            uint   `json:"id"`
	AddressID     uint   `json:"address_id"`
	ContactName   string `json:"contact_name"`
	ContactNumber string `json:"contact_number"`
}

// CatalogAddress is a pre-seeded, user-independent address entry.
type CatalogAddress struct {
	ID   uint   `json:"id"`
	Text string `json:"address_text"`
}

// Book is the address listing for the checkout screen.
type Book struct {
	Saved []SavedAddress   `json:"saved"`
	Dummy []CatalogAddress `json:"dummy"`
}
