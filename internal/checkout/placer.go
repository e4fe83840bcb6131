package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"foodcourt-be/internal/address"
	"foodcourt-be/internal/cart"
	"foodcourt-be/internal/logger"
	"foodcourt-be/internal/order"

	"go.uber.org/zap"
)

// DefaultGraceWindow is how long a confirmed placement stays cancellable
// before the order is actually submitted.
const DefaultGraceWindow = 3 * time.Second

// Selection is the delivery choice the checkout screen holds. Exactly one
// address is selected at a time; picking a saved address pre-fills the
// contact fields, picking a catalog address leaves them for the user.
type Selection struct {
	AddressID   uint
	AddressText string
	Name        string
	Contact     string
}

// SelectCatalog replaces the current selection with a catalog address,
// keeping whatever contact details are already filled in.
func (s *Selection) SelectCatalog(a address.CatalogAddress) {
	s.AddressID = a.ID
	s.AddressText = a.Text
}

// SelectSaved replaces the current selection with a previously used
// delivery record, contact details included.
func (s *Selection) SelectSaved(a address.SavedAddress, text string) {
	s.AddressID = a.AddressID
	s.AddressText = text
	s.Name = a.ContactName
	s.Contact = a.ContactNumber
}

// PlaceFunc submits a finished order. In the app this is the order
// service's Place behind an HTTP call.
type PlaceFunc func(ctx context.Context, input order.PlaceInput) (*order.Order, error)

// Placer drives the two-state place button. The first press arms a grace
// timer, a second press within the window cancels with no side effects,
// and once the window lapses the order fires exactly once.
type Placer struct {
	mu      sync.Mutex
	cart    *cart.Cart
	place   PlaceFunc
	window  time.Duration
	timer   *time.Timer
	pending bool

	// onResult, when set, receives the outcome of a fired placement.
	onResult func(*order.Order, error)
}

func NewPlacer(c *cart.Cart, place PlaceFunc, window time.Duration) *Placer {
	if window <= 0 {
		window = DefaultGraceWindow
	}
	return &Placer{
		cart:   c,
		place:  place,
		window: window,
	}
}

// OnResult registers a hook invoked after a fired placement settles.
func (p *Placer) OnResult(fn func(*order.Order, error)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onResult = fn
}

// Pending reports whether a placement is armed and still cancellable.
func (p *Placer) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// Toggle is the place button. It returns the new pending state: true means
// the order is armed, false means an armed order was just cancelled.
func (p *Placer) Toggle(ctx context.Context, userID uint, sel Selection) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending {
		p.timer.Stop()
		p.timer = nil
		p.pending = false
		return false, nil
	}

	if userID == 0 {
		return false, order.ErrUnauthorized
	}
	if sel.AddressID == 0 {
		return false, order.ErrNoAddress
	}
	if strings.TrimSpace(sel.Name) == "" || strings.TrimSpace(sel.Contact) == "" {
		return false, order.ErrMissingContact
	}
	if p.cart.Len() == 0 {
		return false, order.ErrEmptyCart
	}

	p.pending = true
	p.timer = time.AfterFunc(p.window, func() {
		p.fire(ctx, userID, sel)
	})
	return true, nil
}

// fire submits the order built from the cart as it stands at expiry. A
// cancellation that won the race on the mutex makes this a no-op.
func (p *Placer) fire(ctx context.Context, userID uint, sel Selection) {
	p.mu.Lock()
	if !p.pending {
		p.mu.Unlock()
		return
	}
	p.pending = false
	p.timer = nil

	// One snapshot covers both the lines and the total, so a quantity bump
	// racing the timer cannot split the payload.
	items := p.cart.Lines()
	input := order.PlaceInput{
		UserID: userID,
		Address: order.AddressData{
			ID:      sel.AddressID,
			Name:    sel.Name,
			Contact: sel.Contact,
		},
		Items: items,
		Total: cart.Sum(items),
	}
	onResult := p.onResult
	p.mu.Unlock()

	placed, err := p.place(ctx, input)
	if err != nil {
		logger.FromCtx(ctx).Error("order placement failed", zap.Error(err))
	} else if clearErr := p.cart.Clear(); clearErr != nil {
		logger.FromCtx(ctx).Warn("cart not cleared after order", zap.Error(clearErr))
	}

	if onResult != nil {
		onResult(placed, err)
	}
}
