package order

import (
	"context"
	"strings"

	"foodcourt-be/internal/address"
	"foodcourt-be/internal/cart"
	"foodcourt-be/internal/logger"
	"foodcourt-be/internal/notify"

	"go.uber.org/zap"
)

// DefaultHistoryLimit caps the history listing when the client sends none.
const DefaultHistoryLimit = 7

type Service interface {
	// Place validates the payload, persists the order and fires the admin
	// notification. The notification is best-effort: its failure never fails
	// an already-placed order.
	Place(ctx context.Context, input PlaceInput) (*Order, error)

	History(ctx context.Context, userID uint, limit int) ([]Summary, error)
}

type service struct {
	repo        Repository
	addressRepo address.Repository
	notifier    notify.Notifier
}

func NewService(repo Repository, addressRepo address.Repository, notifier notify.Notifier) Service {
	return &service{
		repo:        repo,
		addressRepo: addressRepo,
		notifier:    notifier,
	}
}

func (s *service) Place(ctx context.Context, input PlaceInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Order"),
		zap.String("method", "Place"),
		zap.Uint("user_id", input.UserID),
	)

	if input.UserID == 0 {
		return nil, ErrUnauthorized
	}
	if input.Address.ID == 0 {
		return nil, ErrNoAddress
	}
	if strings.TrimSpace(input.Address.Name) == "" ||
		strings.TrimSpace(input.Address.Contact) == "" {
		return nil, ErrMissingContact
	}
	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// The server figure comes from the same computation the cart uses over
	// the submitted snapshots, never from live catalog prices.
	total := cart.Sum(input.Items)
	if input.Total != total {
		log.Warn("client total differs from snapshot total",
			zap.Int("client_total", input.Total),
			zap.Int("computed_total", total),
		)
	}

	order, err := s.repo.CreateOrderTx(ctx, input, total)
	if err != nil {
		return nil, err
	}

	// The header is committed; a failed line insert is an acknowledged gap,
	// not a rollback.
	if err := s.repo.InsertLines(ctx, order.ID, input.Items); err != nil {
		log.Error("order lines incomplete",
			zap.Uint("order_id", order.ID),
			zap.Error(err),
		)
	}

	s.notifyAdmin(ctx, order, input)

	return order, nil
}

// notifyAdmin swallows delivery failures: the order stands either way.
func (s *service) notifyAdmin(ctx context.Context, order *Order, input PlaceInput) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Order"),
		zap.Uint("order_id", order.ID),
	)

	addressText, err := s.addressRepo.GetCatalogText(ctx, input.Address.ID)
	if err != nil {
		addressText = ""
	}

	err = s.notifier.SendOrderAlert(ctx, notify.OrderAlert{
		OrderID:      order.ID,
		CustomerName: input.Address.Name,
		Contact:      input.Address.Contact,
		Mobile:       input.Address.Contact,
		AddressText:  addressText,
		Total:        order.Total,
		Items:        input.Items,
	})
	if err != nil {
		log.Error("order notification failed", zap.Error(err))
		return
	}

	log.Info("order notification sent")
}

func (s *service) History(ctx context.Context, userID uint, limit int) ([]Summary, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	summaries, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []Summary{}
	}

	return summaries, nil
}
