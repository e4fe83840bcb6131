package address

import (
	"context"

	"foodcourt-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	// List returns both address lists for the checkout screen. Either fetch
	// failing fails the whole call; no partial book is returned.
	List(ctx context.Context, userID uint) (*Book, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID uint) (*Book, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "List"),
		zap.Uint("user_id", userID),
	)

	saved, err := s.repo.ListSavedByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list saved addresses", zap.Error(err))
		return nil, err
	}

	dummy, err := s.repo.ListCatalog(ctx)
	if err != nil {
		log.Error("failed to list catalog addresses", zap.Error(err))
		return nil, err
	}

	if saved == nil {
		saved = []SavedAddress{}
	}
	if dummy == nil {
		dummy = []CatalogAddress{}
	}

	return &Book{Saved: saved, Dummy: dummy}, nil
}
