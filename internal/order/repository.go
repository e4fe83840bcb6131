package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"foodcourt-be/internal/cart"
	"foodcourt-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrderTx runs the consistent part of placement in one
	// transaction: delivery record insert, depth-2 history rotation on the
	// user row, order header insert.
	CreateOrderTx(ctx context.Context, input PlaceInput, total int) (*Order, error)

	// InsertLines persists the order lines after the header is committed.
	InsertLines(ctx context.Context, orderID uint, items []cart.Line) error

	ListByUser(ctx context.Context, userID uint, limit int) ([]Summary, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrderTx(
	ctx context.Context,
	input PlaceInput,
	total int,
) (*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "CreateOrderTx"),
		zap.Uint("user_id", input.UserID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// 1. Record the delivery address used for this order.
	var deliveryID uint
	err = tx.QueryRowContext(ctx, `
		INSERT INTO user_addresses (address_id, contact_name, contact_number)
		VALUES ($1, $2, $3)
		RETURNING id
	`,
		input.Address.ID,
		input.Address.Name,
		input.Address.Contact,
	).Scan(&deliveryID)
	if err != nil {
		log.Error("address insert failed", zap.Error(err))
		return nil, err
	}

	// 2. Rotate the two retained slots: previous newest becomes old,
	// anything older falls off.
	_, err = tx.ExecContext(ctx, `
		UPDATE users
		SET user_address_old = user_address_new,
		    user_address_new = $1
		WHERE id = $2
	`, deliveryID, input.UserID)
	if err != nil {
		log.Error("address rotation failed", zap.Error(err))
		return nil, err
	}

	// 3. Create the order header.
	order := &Order{
		UserID:    input.UserID,
		AddressID: deliveryID,
		Total:     total,
		Status:    StatusPending,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, delivery_address, total_amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`,
		order.UserID,
		order.AddressID,
		order.Total,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		log.Error("order insert failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("order created", zap.Uint("order_id", order.ID))
	return order, nil
}

func (r *repository) InsertLines(
	ctx context.Context,
	orderID uint,
	items []cart.Line,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "InsertLines"),
		zap.Uint("order_id", orderID),
	)

	const q = `
		INSERT INTO order_items (order_id, item_id, base_price, quantity, selected_addons)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, item := range items {
		selected := item.Addons
		if selected == nil {
			selected = []cart.Addon{}
		}
		addons, err := json.Marshal(selected)
		if err != nil {
			return err
		}

		if _, err := r.db.ExecContext(ctx, q,
			orderID,
			item.ItemID,
			item.Price,
			item.Qty,
			addons,
		); err != nil {
			log.Error("line insert failed",
				zap.Int("item_id", item.ItemID),
				zap.Error(err),
			)
			return err
		}
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID uint,
	limit int,
) ([]Summary, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "ListByUser"),
		zap.Uint("user_id", userID),
		zap.Int("limit", limit),
	)

	const q = `
		SELECT id, total_amount, created_at, status
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []Summary
	for rows.Next() {
		var (
			s       Summary
			created time.Time
		)
		if err := rows.Scan(&s.ID, &s.Total, &created, &s.Status); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		s.CreatedAt = created
		res = append(res, s)
	}

	return res, rows.Err()
}
