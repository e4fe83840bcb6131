package menu

import (
	"context"

	"foodcourt-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	// GetMenu returns the full catalog snapshot. Any fetch error fails the
	// call; no partial menu is served.
	GetMenu(ctx context.Context) (*Menu, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetMenu(ctx context.Context) (*Menu, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Menu"),
		zap.String("method", "GetMenu"),
	)

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		log.Error("failed to fetch categories", zap.Error(err))
		return nil, err
	}

	items, err := s.repo.ListItems(ctx)
	if err != nil {
		log.Error("failed to fetch items", zap.Error(err))
		return nil, err
	}

	if categories == nil {
		categories = []Category{}
	}
	if items == nil {
		items = []Item{}
	}

	return &Menu{Categories: categories, Items: items}, nil
}
