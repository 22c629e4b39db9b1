package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/JudoNutritionBack/internal/metrics"
	"github.com/saeid-a/JudoNutritionBack/internal/models"
	"github.com/saeid-a/JudoNutritionBack/internal/queue"
	"github.com/saeid-a/JudoNutritionBack/pkg/utils"
	"go.uber.org/zap"
)

type resetTokenStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetResetToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	ResetPassword(ctx context.Context, tokenHash, passwordHash string) (int64, error)
}

// ResetNotifier delivers the reset link to the account owner.
type ResetNotifier interface {
	PublishPasswordReset(ctx context.Context, event queue.PasswordResetEvent) error
}

type PasswordResetService struct {
	users      resetTokenStore
	notifier   ResetNotifier
	tokenTTL   time.Duration
	linkBase   string
	bcryptCost int
	log        *zap.Logger
	now        func() time.Time
}

func NewPasswordResetService(
	users resetTokenStore,
	notifier ResetNotifier,
	tokenTTL time.Duration,
	linkBase string,
	bcryptCost int,
	log *zap.Logger,
) *PasswordResetService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PasswordResetService{
		users:      users,
		notifier:   notifier,
		tokenTTL:   tokenTTL,
		linkBase:   linkBase,
		bcryptCost: bcryptCost,
		log:        log,
		now:        time.Now,
	}
}

// Request stores a hashed single-use token for the account and hands the raw
// token to the notifier. The token never appears in the return value.
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		return storeError(err)
	}

	raw, hash, err := utils.NewResetToken()
	if err != nil {
		return err
	}
	now := s.now().UTC()
	expiresAt := now.Add(s.tokenTTL)

	if err := s.users.SetResetToken(ctx, user.ID, hash, expiresAt); err != nil {
		return storeError(err)
	}

	event := queue.PasswordResetEvent{
		UserID:      user.ID,
		Email:       user.Email,
		ResetLink:   s.resetLink(raw),
		Token:       raw,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
		RequestedAt: now.Format(time.RFC3339),
	}
	if err := s.notifier.PublishPasswordReset(ctx, event); err != nil {
		metrics.PasswordResets.WithLabelValues("failed").Inc()
		s.log.Error("password reset notification failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return fmt.Errorf("publish password reset: %w", err)
	}

	metrics.PasswordResets.WithLabelValues("queued").Inc()
	return nil
}

func (s *PasswordResetService) Reset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return invalidf("reset token is required")
	}
	if len(newPassword) < minPasswordLength {
		return invalidf("password must be at least %d characters", minPasswordLength)
	}

	hashed, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	if _, err := s.users.ResetPassword(ctx, utils.HashResetToken(token), hashed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidResetToken
		}
		return err
	}
	return nil
}

func (s *PasswordResetService) resetLink(token string) string {
	u, err := url.Parse(s.linkBase)
	if err != nil || s.linkBase == "" {
		return "/reset_password?token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}
