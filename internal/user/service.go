package user

import (
	"context"
	"fmt"
	"time"

	"foodcourt-be/internal/logger"
	"foodcourt-be/internal/notify"

	"go.uber.org/zap"
)

type Service interface {
	// RequestOTP creates or refreshes the challenge for mobile and dispatches
	// the code. A dispatch failure is reported as ErrDispatchFailed but the
	// challenge stays valid.
	RequestOTP(ctx context.Context, mobile string) error

	// Verify checks the submitted code. The three failure modes are distinct:
	// ErrNotFound, ErrCodeMismatch and ErrCodeExpired. On success the
	// challenge is cleared and a signed token is issued.
	Verify(ctx context.Context, mobile, code string) (*User, string, error)
}

type service struct {
	repo     Repository
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier notify.Notifier) Service {
	return &service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *service) RequestOTP(ctx context.Context, mobile string) error {
	if mobile == "" {
		return ErrMobileRequired
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "User"),
		zap.String("method", "RequestOTP"),
	)

	code := GenerateOTP()
	hash, err := HashOTP(code)
	if err != nil {
		log.Error("failed to hash code", zap.Error(err))
		return err
	}

	expiry := s.now().Add(OTPWindow)
	if err := s.repo.UpsertChallenge(ctx, mobile, hash, expiry); err != nil {
		return err
	}

	log.Info("challenge stored", zap.Time("expiry", expiry))

	if err := s.notifier.SendOTP(ctx, mobile, code); err != nil {
		log.Error("OTP dispatch failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	return nil
}

func (s *service) Verify(ctx context.Context, mobile, code string) (*User, string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "User"),
		zap.String("method", "Verify"),
	)

	u, err := s.repo.FindByMobile(ctx, mobile)
	if err != nil {
		return nil, "", err
	}

	// Mismatch takes priority over expiry: a wrong code is never reported as
	// expired, and a cleared challenge counts as a mismatch.
	if !u.OTPHash.Valid || !CheckOTPHash(code, u.OTPHash.String) {
		log.Warn("code mismatch", zap.Uint("user_id", u.ID))
		return nil, "", ErrCodeMismatch
	}

	if !u.OTPExpiry.Valid || !s.now().Before(u.OTPExpiry.Time) {
		log.Warn("code expired", zap.Uint("user_id", u.ID))
		return nil, "", ErrCodeExpired
	}

	// Single-use: clear before handing out the session.
	if err := s.repo.ClearChallenge(ctx, u.ID); err != nil {
		return nil, "", err
	}

	token, err := GenerateJWT(u.ID, u.Mobile)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return nil, "", err
	}

	log.Info("login successful", zap.Uint("user_id", u.ID))
	return u, token, nil
}
