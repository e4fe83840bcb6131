package menu

import (
	"context"
	"database/sql"
	"encoding/json"

	"foodcourt-be/internal/cart"
	"foodcourt-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListItems(ctx context.Context) ([]Item, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListCategories(ctx context.Context) ([]Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Menu"),
		zap.String("method", "ListCategories"),
	)

	const q = `
		SELECT id, name, image
		FROM categories
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Image); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, c)
	}

	return res, rows.Err()
}

func (r *repository) ListItems(ctx context.Context) ([]Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Menu"),
		zap.String("method", "ListItems"),
	)

	const q = `
		SELECT id, category_id, name, price, image, addons_details
		FROM items
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []Item
	for rows.Next() {
		var (
			it  Item
			raw []byte
		)
		if err := rows.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Price, &it.Image, &raw); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}

		addons, err := decodeAddons(raw)
		if err != nil {
			log.Error("bad addons column",
				zap.Int("item_id", it.ID),
				zap.Error(err),
			)
			return nil, err
		}
		it.Addons = addons

		res = append(res, it)
	}

	return res, rows.Err()
}

// decodeAddons normalizes the JSON addon column: NULL or empty means no
// addons, and a double-encoded string payload is unwrapped once.
func decodeAddons(raw []byte) ([]cart.Addon, error) {
	if len(raw) == 0 {
		return []cart.Addon{}, nil
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, err
		}
		raw = []byte(inner)
	}

	var addons []cart.Addon
	if err := json.Unmarshal(raw, &addons); err != nil {
		return nil, err
	}
	if addons == nil {
		addons = []cart.Addon{}
	}
	return addons, nil
}
