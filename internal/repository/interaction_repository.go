package repository

import (
	"context"

	"github.com/yukikurage/activity-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormInteractionRepository is a GORM implementation of InteractionRepository
type GormInteractionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new InteractionRepository
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &GormInteractionRepository{db: db}
}

func (r *GormInteractionRepository) Create(ctx context.Context, interaction *models.Interaction) error {
	return r.db.WithContext(ctx).Create(interaction).Error
}

func (r *GormInteractionRepository) ListRecent(ctx context.Context, limit int) ([]models.Interaction, error) {
	var interactions []models.Interaction
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&interactions).Error
	return interactions, err
}

func (r *GormInteractionRepository) ListByType(ctx context.Context, interactionType string) ([]models.Interaction, error) {
	var interactions []models.Interaction
	err := r.db.WithContext(ctx).
		Where("type = ?", interactionType).
		Order("timestamp DESC").
		Order("id DESC").
		Find(&interactions).Error
	return interactions, err
}

func (r *GormInteractionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Interaction{}).Count(&count).Error
	return count, err
}

func (r *GormInteractionRepository) CountByType(ctx context.Context, interactionType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Interaction{}).Where("type = ?", interactionType).Count(&count).Error
	return count, err
}

func (r *GormInteractionRepository) Latest(ctx context.Context) (*models.Interaction, error) {
	var interaction models.Interaction
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Order("id DESC").First(&interaction).Error; err != nil {
		return nil, err
	}
	return &interaction, nil
}
