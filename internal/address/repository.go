package address

import (
	"context"
	"database/sql"

	"foodcourt-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListCatalog(ctx context.Context) ([]CatalogAddress, error)
	ListSavedByUser(ctx context.Context, userID uint) ([]SavedAddress, error)
	GetCatalogText(ctx context.Context, id uint) (string, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListCatalog(ctx context.Context) ([]CatalogAddress, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "ListCatalog"),
	)

	const q = `
		SELECT id, address_text
		FROM addresses
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []CatalogAddress
	for rows.Next() {
		var a CatalogAddress
		if err := rows.Scan(&a.ID, &a.Text); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, a)
	}

	return res, rows.Err()
}

// ListSavedByUser returns the user's retained addresses, most recent first.
// The depth-2 history lives in the two slot columns on users.
func (r *repository) ListSavedByUser(
	ctx context.Context,
	userID uint,
) ([]SavedAddress, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "ListSavedByUser"),
		zap.Uint("user_id", userID),
	)

	const q = `
		SELECT ua.id, ua.address_id, ua.contact_name, ua.contact_number
		FROM user_addresses ua
		JOIN users u ON (u.user_address_new = ua.id OR u.user_address_old = ua.id)
		WHERE u.id = $1
		ORDER BY ua.id DESC
	`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []SavedAddress
	for rows.Next() {
		var a SavedAddress
		if err := rows.Scan(&a.ID, &a.AddressID, &a.ContactName, &a.ContactNumber); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, a)
	}

	return res, rows.Err()
}

func (r *repository) GetCatalogText(ctx context.Context, id uint) (string, error) {
	const q = `
		SELECT address_text
		FROM addresses
		WHERE id = $1
	`

	var text string
	err := r.db.QueryRowContext(ctx, q, id).Scan(&text)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("catalog text lookup failed", zap.Error(err))
		return "", err
	}

	return text, nil
}
