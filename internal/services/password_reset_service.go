package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/activity-tracker-api/internal/auth"
	"github.com/yukikurage/activity-tracker-api/internal/constants"
	"github.com/yukikurage/activity-tracker-api/internal/mail"
	"github.com/yukikurage/activity-tracker-api/internal/models"
	"github.com/yukikurage/activity-tracker-api/internal/repository"
	"github.com/yukikurage/activity-tracker-api/internal/utils"
	"gorm.io/gorm"
)

// PasswordResetService issues single-use reset tokens and redeems them.
type PasswordResetService struct {
	userRepo    repository.UserRepository
	tokenRepo   repository.PasswordResetTokenRepository
	mailer      mail.Mailer
	frontendURL string
	expiry      time.Duration
	now         func() time.Time
}

// NewPasswordResetService creates a new PasswordResetService
func NewPasswordResetService(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	mailer mail.Mailer,
	frontendURL string,
	expiry time.Duration,
) *PasswordResetService {
	return &PasswordResetService{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		mailer:      mailer,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		expiry:      expiry,
		now:         time.Now,
	}
}

// WithClock replaces the clock used for token expiry.
func (s *PasswordResetService) WithClock(now func() time.Time) *PasswordResetService {
	s.now = now
	return s
}

// RequestReset emails a reset link to the matching account. An unknown
// identifier is not an error so callers cannot probe for accounts.
// Any earlier outstanding token of the user stops working.
func (s *PasswordResetService) RequestReset(ctx context.Context, identifier string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return ErrEmailRequired
	}

	user, err := s.userRepo.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.tokenRepo.MarkAllUsedForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to invalidate reset tokens: %w", err)
	}

	token := &models.PasswordResetToken{
		Token:     utils.GenerateResetToken(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.expiry),
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	msg := mail.PasswordReset{
		To:       user.Email,
		Username: user.Username,
		ResetURL: s.frontendURL + "/reset-password?token=" + token.Token,
		Expiry:   s.expiry,
	}
	if err := s.mailer.SendPasswordReset(ctx, msg); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// ResetPassword sets a new password using a reset token. It reports false
// when the token is unknown, used or expired.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, ErrTokenRequired
	}
	if len(newPassword) < constants.MinPasswordLength {
		return false, ErrPasswordTooShort
	}

	resetToken, ok, err := s.usableToken(ctx, token)
	if err != nil || !ok {
		return false, err
	}

	user := resetToken.User
	if user == nil {
		user, err = s.userRepo.FindByID(ctx, resetToken.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, fmt.Errorf("failed to find user: %w", err)
		}
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return false, ErrFailedToHashPassword
	}
	user.PasswordHash = hashed
	if err := s.userRepo.ResetPassword(ctx, user, resetToken.ID); err != nil {
		if errors.Is(err, repository.ErrResetTokenUsed) {
			return false, nil
		}
		return false, fmt.Errorf("failed to reset password: %w", err)
	}

	return true, nil
}

// ValidateToken reports whether token can still be redeemed.
func (s *PasswordResetService) ValidateToken(ctx context.Context, token string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, nil
	}
	_, ok, err := s.usableToken(ctx, token)
	return ok, err
}

// PurgeExpired deletes tokens past their expiry.
func (s *PasswordResetService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.tokenRepo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge reset tokens: %w", err)
	}
	return n, nil
}

func (s *PasswordResetService) usableToken(ctx context.Context, token string) (*models.PasswordResetToken, bool, error) {
	resetToken, err := s.tokenRepo.FindUnused(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find reset token: %w", err)
	}
	if !resetToken.IsUsable(s.now()) {
		return nil, false, nil
	}
	return resetToken, true, nil
}
