package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/activity-tracker-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUpdateUser     = errors.New("failed to update user")
	ErrRenameAssignee = errors.New("failed to rename assignee on activities")
	ErrMarkTokenUsed  = errors.New("failed to mark reset token used")
	ErrResetTokenUsed = errors.New("reset token already used")
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update saves an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// UpdateProfile saves user and, when renamed, rewrites the cached assignee
// name on the user's activities in the same transaction.
func (r *GormUserRepository) UpdateProfile(ctx context.Context, user *models.User, renamed bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUpdateUser, err)
		}
		if !renamed {
			return nil
		}
		if err := NewActivityRepository(tx).RenameAssignee(ctx, user.ID, user.Username); err != nil {
			return fmt.Errorf("%w: %v", ErrRenameAssignee, err)
		}
		return nil
	})
}

// ResetPassword marks the reset token used and saves user in one transaction.
// A token that is already used fails with ErrResetTokenUsed and nothing is saved.
func (r *GormUserRepository) ResetPassword(ctx context.Context, user *models.User, tokenID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PasswordResetToken{}).
			Where("id = ? AND used = ?", tokenID, false).
			Update("used", true)
		if result.Error != nil {
			return fmt.Errorf("%w: %v", ErrMarkTokenUsed, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrResetTokenUsed
		}

		if err := tx.Save(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUpdateUser, err)
		}
		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail prefers a username match over an email match
func (r *GormUserRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	user, err := r.FindByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return r.FindByEmail(ctx, identifier)
}

// List returns all users ordered by username
func (r *GormUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Count counts all users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}
