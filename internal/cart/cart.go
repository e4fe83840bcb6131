package cart

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

var ErrLineNotFound = errors.New("cart line not found")

// Addon is a priced modifier attached to a cart line. The same shape is
// served by the menu catalog, so snapshots taken at add-time stay
// bit-compatible with what the order endpoint receives.
type Addon struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Item is the snapshot source for a new line: the identity and price of a
// catalog item at the moment it is added.
type Item struct {
	ID    int
	Name  string
	Price int
}

// Line is one cart entry. Name and Price are captured when the line is
// created and never re-read from the catalog.
type Line struct {
	ItemID int     `json:"id"`
	Name   string  `json:"name"`
	Price  int     `json:"price"`
	Qty    int     `json:"qty"`
	Addons []Addon `json:"addons"`
}

// UnitPrice is the base price plus all addon prices.
func (l Line) UnitPrice() int {
	p := l.Price
	for _, a := range l.Addons {
		p += a.Price
	}
	return p
}

func (l Line) Subtotal() int {
	return l.UnitPrice() * l.Qty
}

// Sum totals a set of lines. Both the cart and the order service go through
// this function so the figure sent at checkout and the figure persisted with
// the order come from the same computation.
func Sum(lines []Line) int {
	total := 0
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// Key is the canonical identity of a line: item id plus the sorted addon id
// set. Two selections of the same addons in different order produce the same
// key.
func Key(itemID int, addons []Addon) string {
	ids := make([]int, 0, len(addons))
	for _, a := range addons {
		ids = append(ids, a.ID)
	}
	sort.Ints(ids)

	var b strings.Builder
	b.WriteString(strconv.Itoa(itemID))
	for _, id := range ids {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

func (l Line) key() string {
	return Key(l.ItemID, l.Addons)
}

// Store persists the full cart state as one blob.
type Store interface {
	Load() ([]Line, error)
	Save(lines []Line) error
}

// Cart is the client-held cart aggregate. It is safe for concurrent use:
// the checkout grace timer reads and clears it from its own goroutine while
// the browsing session keeps mutating.
type Cart struct {
	mu       sync.Mutex
	store    Store
	lines    []Line
	onChange func()
}

// New loads any previously saved state from the store.
func New(store Store) (*Cart, error) {
	lines, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return &Cart{store: store, lines: lines}, nil
}

// OnChange registers a hook invoked after every persisted mutation. The hook
// runs with the cart lock held and must not call back into the cart.
func (c *Cart) OnChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// AddLine merges the item into an existing line with the same canonical key,
// or appends a new line with quantity 1 and a price/name snapshot.
func (c *Cart) AddLine(item Item, addons []Addon) error {
	normalized := normalizeAddons(addons)
	key := Key(item.ID, normalized)

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].key() == key {
			c.lines[i].Qty++
			return c.persist()
		}
	}

	c.lines = append(c.lines, Line{
		ItemID: item.ID,
		Name:   item.Name,
		Price:  item.Price,
		Qty:    1,
		Addons: normalized,
	})
	return c.persist()
}

// AdjustQuantity applies delta to the line matching (itemID, addons). A
// resulting quantity of zero or less removes the line. Removal is expressed
// as delta = -currentQty.
func (c *Cart) AdjustQuantity(itemID int, addons []Addon, delta int) error {
	key := Key(itemID, addons)

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].key() != key {
			continue
		}
		c.lines[i].Qty += delta
		if c.lines[i].Qty <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return c.persist()
	}

	return ErrLineNotFound
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Total computes the current cart total from the line snapshots.
func (c *Cart) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Sum(c.lines)
}

func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	return c.persist()
}

// persist is called with c.mu held.
func (c *Cart) persist() error {
	if err := c.store.Save(c.lines); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	if c.onChange != nil {
		c.onChange()
	}
	return nil
}

func normalizeAddons(addons []Addon) []Addon {
	out := make([]Addon, len(addons))
	copy(out, addons)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
