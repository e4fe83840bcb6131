package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"foodcourt-be/internal/address"
	"foodcourt-be/internal/cart"
	"foodcourt-be/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedPlace struct {
	mu     sync.Mutex
	inputs []order.PlaceInput
	err    error
}

func (c *capturedPlace) fn(ctx context.Context, input order.PlaceInput) (*order.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inputs = append(c.inputs, input)
	if c.err != nil {
		return nil, c.err
	}
	return &order.Order{ID: 42, Total: input.Total}, nil
}

func (c *capturedPlace) calls() []order.PlaceInput {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]order.PlaceInput(nil), c.inputs...)
}

func newTestCart(t *testing.T) *cart.Cart {
	t.Helper()
	c, err := cart.New(cart.NewMemoryStore())
	require.NoError(t, err)
	require.NoError(t, c.AddLine(cart.Item{ID: 1, Name: "Margherita", Price: 250}, nil))
	return c
}

func validSelection() Selection {
	return Selection{
		AddressID:   2,
		AddressText: "MG Road, Bengaluru",
		Name:        "Asha",
		Contact:     "919876543210",
	}
}

func TestPlacer_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("FiresOnceAfterWindow", func(t *testing.T) {
		c := newTestCart(t)
		place := &capturedPlace{}
		p := NewPlacer(c, place.fn, 10*time.Millisecond)

		done := make(chan struct{})
		p.OnResult(func(o *order.Order, err error) {
			assert.NoError(t, err)
			assert.Equal(t, uint(42), o.ID)
			close(done)
		})

		pending, err := p.Toggle(ctx, 7, validSelection())
		require.NoError(t, err)
		assert.True(t, pending)
		assert.True(t, p.Pending())

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("order never fired")
		}

		calls := place.calls()
		require.Len(t, calls, 1)
		assert.Equal(t, uint(7), calls[0].UserID)
		assert.Equal(t, uint(2), calls[0].Address.ID)
		assert.Equal(t, 250, calls[0].Total)
		require.Len(t, calls[0].Items, 1)

		// Placement emptied the cart and disarmed the button.
		assert.Equal(t, 0, c.Len())
		assert.False(t, p.Pending())
	})

	t.Run("CancelWithinWindowHasNoSideEffects", func(t *testing.T) {
		c := newTestCart(t)
		place := &capturedPlace{}
		p := NewPlacer(c, place.fn, 50*time.Millisecond)

		pending, err := p.Toggle(ctx, 7, validSelection())
		require.NoError(t, err)
		require.True(t, pending)

		pending, err = p.Toggle(ctx, 7, validSelection())
		require.NoError(t, err)
		assert.False(t, pending)
		assert.False(t, p.Pending())

		time.Sleep(100 * time.Millisecond)
		assert.Empty(t, place.calls())
		assert.Equal(t, 1, c.Len())
	})

	t.Run("RearmAfterCancel", func(t *testing.T) {
		c := newTestCart(t)
		place := &capturedPlace{}
		p := NewPlacer(c, place.fn, 10*time.Millisecond)

		done := make(chan struct{})
		p.OnResult(func(*order.Order, error) { close(done) })

		_, err := p.Toggle(ctx, 7, validSelection())
		require.NoError(t, err)
		_, err = p.Toggle(ctx, 7, validSelection())
		require.NoError(t, err)

		pending, err := p.Toggle(ctx, 7, validSelection())
		require.NoError(t, err)
		assert.True(t, pending)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("order never fired")
		}
		assert.Len(t, place.calls(), 1)
	})

	t.Run("ValidationBeforeArming", func(t *testing.T) {
		cases := []struct {
			name   string
			userID uint
			mutate func(*Selection)
			empty  bool
			want   error
		}{
			{"NoUser", 0, func(*Selection) {}, false, order.ErrUnauthorized},
			{"NoAddress", 7, func(s *Selection) { s.AddressID = 0 }, false, order.ErrNoAddress},
			{"BlankName", 7, func(s *Selection) { s.Name = " " }, false, order.ErrMissingContact},
			{"BlankContact", 7, func(s *Selection) { s.Contact = "" }, false, order.ErrMissingContact},
			{"EmptyCart", 7, func(*Selection) {}, true, order.ErrEmptyCart},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				var c *cart.Cart
				var err error
				if tc.empty {
					c, err = cart.New(cart.NewMemoryStore())
					require.NoError(t, err)
				} else {
					c = newTestCart(t)
				}

				place := &capturedPlace{}
				p := NewPlacer(c, place.fn, time.Millisecond)

				sel := validSelection()
				tc.mutate(&sel)

				pending, err := p.Toggle(ctx, tc.userID, sel)
				assert.ErrorIs(t, err, tc.want)
				assert.False(t, pending)
				assert.False(t, p.Pending())

				time.Sleep(20 * time.Millisecond)
				assert.Empty(t, place.calls())
			})
		}
	})

	t.Run("CartKeptOnPlacementFailure", func(t *testing.T) {
		c := newTestCart(t)
		place := &capturedPlace{err: errors.New("server unreachable")}
		p := NewPlacer(c, place.fn, time.Millisecond)

		done := make(chan struct{})
		p.OnResult(func(o *order.Order, err error) {
			assert.Error(t, err)
			assert.Nil(t, o)
			close(done)
		})

		_, err := p.Toggle(ctx, 7, validSelection())
		require.NoError(t, err)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("placement never settled")
		}
		assert.Equal(t, 1, c.Len())
	})

	t.Run("MutationsRacingTheTimerStayConsistent", func(t *testing.T) {
		c := newTestCart(t)
		place := &capturedPlace{}
		p := NewPlacer(c, place.fn, time.Millisecond)

		done := make(chan struct{})
		p.OnResult(func(o *order.Order, err error) {
			assert.NoError(t, err)
			close(done)
		})

		_, err := p.Toggle(ctx, 7, validSelection())
		require.NoError(t, err)

		// Keep bumping the quantity from the shopping side while the timer
		// fires. Once the fired placement clears the cart the line is gone
		// and the bump loop stops.
		for i := 0; i < 10000; i++ {
			if err := c.AdjustQuantity(1, nil, 1); errors.Is(err, cart.ErrLineNotFound) {
				break
			}
		}

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("order never fired")
		}

		calls := place.calls()
		require.Len(t, calls, 1)
		// Whatever interleaving won, the submitted total belongs to the
		// submitted lines.
		assert.Equal(t, cart.Sum(calls[0].Items), calls[0].Total)
		require.NotEmpty(t, calls[0].Items)
		assert.Positive(t, calls[0].Items[0].Qty)
	})

	t.Run("SnapshotTakenAtExpiryNotArming", func(t *testing.T) {
		c := newTestCart(t)
		place := &capturedPlace{}
		p := NewPlacer(c, place.fn, 30*time.Millisecond)

		done := make(chan struct{})
		p.OnResult(func(*order.Order, error) { close(done) })

		_, err := p.Toggle(ctx, 7, validSelection())
		require.NoError(t, err)

		// A quantity bump during the grace window rides along.
		require.NoError(t, c.AdjustQuantity(1, nil, 1))

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("order never fired")
		}

		calls := place.calls()
		require.Len(t, calls, 1)
		assert.Equal(t, 500, calls[0].Total)
	})
}

func TestSelection(t *testing.T) {
	t.Run("SelectSavedPrefillsContact", func(t *testing.T) {
		var sel Selection
		sel.SelectSaved(address.SavedAddress{
			ID:            12,
			AddressID:     2,
			ContactName:   "Asha",
			ContactNumber: "919876543210",
		}, "MG Road, Bengaluru")

		assert.Equal(t, uint(2), sel.AddressID)
		assert.Equal(t, "Asha", sel.Name)
		assert.Equal(t, "919876543210", sel.Contact)
	})

	t.Run("SelectCatalogKeepsTypedContact", func(t *testing.T) {
		sel := Selection{Name: "Asha", Contact: "919876543210"}
		sel.SelectCatalog(address.CatalogAddress{ID: 3, Text: "Indiranagar"})

		assert.Equal(t, uint(3), sel.AddressID)
		assert.Equal(t, "Indiranagar", sel.AddressText)
		assert.Equal(t, "Asha", sel.Name)
	})

	t.Run("SelectionIsExclusive", func(t *testing.T) {
		var sel Selection
		sel.SelectCatalog(address.CatalogAddress{ID: 3, Text: "Indiranagar"})
		sel.SelectSaved(address.SavedAddress{AddressID: 2, ContactName: "Asha", ContactNumber: "1"}, "MG Road")

		assert.Equal(t, uint(2), sel.AddressID)
		assert.Equal(t, "MG Road", sel.AddressText)
	})
}
