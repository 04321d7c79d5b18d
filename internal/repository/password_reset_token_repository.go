package repository

import (
	"context"
	"time"

	"github.com/yukikurage/activity-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPasswordResetTokenRepository is a GORM implementation of PasswordResetTokenRepository
type GormPasswordResetTokenRepository struct {
	db *gorm.DB
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(db *gorm.DB) PasswordResetTokenRepository {
	return &GormPasswordResetTokenRepository{db: db}
}

func (r *GormPasswordResetTokenRepository) Create(ctx context.Context, token *models.PasswordResetToken) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(token).Error
}

// FindUnused finds a token that has not been used yet, with its user preloaded
func (r *GormPasswordResetTokenRepository) FindUnused(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	var resetToken models.PasswordResetToken
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("token = ? AND used = ?", token, false).
		First(&resetToken).Error
	if err != nil {
		return nil, err
	}
	return &resetToken, nil
}

// MarkAllUsedForUser invalidates every outstanding token of a user
func (r *GormPasswordResetTokenRepository) MarkAllUsedForUser(ctx context.Context, userID uint64) error {
	return r.db.WithContext(ctx).
		Model(&models.PasswordResetToken{}).
		Where("user_id = ? AND used = ?", userID, false).
		Update("used", true).Error
}

// DeleteExpired removes tokens that expired before now and returns how many
func (r *GormPasswordResetTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&models.PasswordResetToken{})
	return result.RowsAffected, result.Error
}
