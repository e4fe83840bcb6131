package user

import (
	"context"
	"database/sql"
	"time"

	"foodcourt-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	FindByMobile(ctx context.Context, mobile string) (*User, error)
	UpsertChallenge(ctx context.Context, mobile, codeHash string, expiry time.Time) error
	ClearChallenge(ctx context.Context, userID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByMobile(
	ctx context.Context,
	mobile string,
) (*User, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "User"),
		zap.String("method", "FindByMobile"),
	)

	const q = `
		SELECT id, mobile, otp_code, otp_expiry, user_address_new, user_address_old
		FROM users
		WHERE mobile = $1
	`

	var u User
	err := r.db.QueryRowContext(ctx, q, mobile).Scan(
		&u.ID, &u.Mobile,
		&u.OTPHash, &u.OTPExpiry,
		&u.AddressNew, &u.AddressOld,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	return &u, nil
}

// UpsertChallenge stores one active challenge per mobile, registering the
// mobile on its first OTP request.
func (r *repository) UpsertChallenge(
	ctx context.Context,
	mobile, codeHash string,
	expiry time.Time,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "User"),
		zap.String("method", "UpsertChallenge"),
	)

	const q = `
		INSERT INTO users (mobile, otp_code, otp_expiry)
		VALUES ($1, $2, $3)
		ON CONFLICT (mobile)
		DO UPDATE SET otp_code = $2, otp_expiry = $3
	`

	if _, err := r.db.ExecContext(ctx, q, mobile, codeHash, expiry); err != nil {
		log.Error("upsert failed", zap.Error(err))
		return err
	}

	return nil
}

// ClearChallenge makes a verified code unusable for replay.
func (r *repository) ClearChallenge(ctx context.Context, userID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "User"),
		zap.String("method", "ClearChallenge"),
		zap.Uint("user_id", userID),
	)

	const q = `
		UPDATE users
		SET otp_code = NULL, otp_expiry = NULL
		WHERE id = $1
	`

	if _, err := r.db.ExecContext(ctx, q, userID); err != nil {
		log.Error("update failed", zap.Error(err))
		return err
	}

	return nil
}
