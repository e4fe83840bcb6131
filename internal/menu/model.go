package menu

import "foodcourt-be/internal/cart"

type Category struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Item is a catalog entry. Addons reuse the cart addon shape so add-time
// snapshots carry the exact catalog values.
type Item struct {
	ID         int          `json:"id"`
	CategoryID uint         `json:"categoryId"`
	Name       string       `json:"name"`
	Price      int          `json:"price"`
	Image      string       `json:"image"`
	Addons     []cart.Addon `json:"addons"`
}

// Snapshot returns the cart-side view of the item for a new line.
func (i Item) Snapshot() cart.Item {
	return cart.Item{ID: i.ID, Name: i.Name, Price: i.Price}
}

// Menu is the read-only catalog served to a session.
type Menu struct {
	Categories []Category `json:"categories"`
	Items      []Item     `json:"items"`
}
