package repository

import (
	"context"

	"github.com/yukikurage/activity-tracker-api/internal/database"
	"github.com/yukikurage/activity-tracker-api/internal/models"
	"github.com/yukikurage/activity-tracker-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create inserts the activity without touching its user relations
func (r *GormActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(activity).Error
}

// Update saves the activity without touching its user relations
func (r *GormActivityRepository) Update(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(activity).Error
}

// UpdateStatus writes only the status column of one activity
func (r *GormActivityRepository) UpdateStatus(ctx context.Context, id uint64, status models.ActivityStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Activity{ID: id}).
		Update("status", status).Error
}

// RenameAssignee rewrites the cached assignee name on every activity of a user
func (r *GormActivityRepository) RenameAssignee(ctx context.Context, userID uint64, username string) error {
	return r.db.WithContext(ctx).
		Model(&models.Activity{}).
		Where("assigned_user_id = ?", userID).
		Update("assigned_user_name", username).Error
}

// FindByID finds an activity by ID with optional preloading
func (r *GormActivityRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Activity, error) {
	var activity models.Activity
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&activity, id).Error; err != nil {
		return nil, err
	}

	return &activity, nil
}

// ExistsByID reports whether an activity with the ID exists
func (r *GormActivityRepository) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Activity{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// DeleteByID removes an activity row
func (r *GormActivityRepository) DeleteByID(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Activity{}, id).Error
}

// Find returns every activity matching the filter
func (r *GormActivityRepository) Find(ctx context.Context, filter ActivityFilter) ([]models.Activity, error) {
	var activities []models.Activity
	query := applyActivityOrder(r.filtered(ctx, filter), filter.Order)
	if err := query.Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// FindPage runs one count query and one windowed query over the same filter.
// The two are not read in a single snapshot.
func (r *GormActivityRepository) FindPage(ctx context.Context, filter ActivityFilter, page utils.PageRequest) (Page[models.Activity], error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return Page[models.Activity]{}, err
	}

	var activities []models.Activity
	if !page.PastEnd(total) {
		query := applyActivityOrder(r.filtered(ctx, filter), filter.Order).
			Scopes(database.Paginate(page))
		if err := query.Find(&activities).Error; err != nil {
			return Page[models.Activity]{}, err
		}
	}

	return NewPage(activities, page, total), nil
}

// FindOverdue returns activities due before today whose status is not excluded
func (r *GormActivityRepository) FindOverdue(ctx context.Context, today models.Date, excluded models.ActivityStatus) ([]models.Activity, error) {
	return r.Find(ctx, ActivityFilter{
		DateBefore:    &today,
		ExcludeStatus: &excluded,
		Order:         OrderByDueDateOnly,
	})
}

// Count counts all activities
func (r *GormActivityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Activity{}).Count(&count).Error
	return count, err
}

// CountByStatus counts activities in one status
func (r *GormActivityRepository) CountByStatus(ctx context.Context, status models.ActivityStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Activity{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// filtered returns a fresh query with the filter's WHERE clauses applied
func (r *GormActivityRepository) filtered(ctx context.Context, filter ActivityFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Activity{})

	if filter.AssigneeName != nil {
		query = query.Where("activities.assigned_user_name = ?", *filter.AssigneeName)
	}
	if filter.ExcludeAssigneeName != nil {
		query = query.Where("activities.assigned_user_name <> ?", *filter.ExcludeAssigneeName)
	}
	if filter.Status != nil {
		query = query.Where("activities.status = ?", *filter.Status)
	}
	if filter.ExcludeStatus != nil {
		query = query.Where("activities.status <> ?", *filter.ExcludeStatus)
	}
	if filter.Date != nil {
		query = query.Where("activities.date = ?", *filter.Date)
	}
	if filter.DateFrom != nil {
		query = query.Where("activities.date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("activities.date <= ?", *filter.DateTo)
	}
	if filter.DateBefore != nil {
		query = query.Where("activities.date < ?", *filter.DateBefore)
	}

	return query
}

func applyActivityOrder(query *gorm.DB, order ActivityOrder) *gorm.DB {
	switch order {
	case OrderByDueDateOnly:
		return query.Order("activities.date ASC").Order("activities.id ASC")
	case OrderByNewest:
		return query.Order("activities.created_at DESC").Order("activities.id DESC")
	case OrderByMostRecentlyDue:
		return query.Order("activities.date DESC").Order("activities.created_at DESC").Order("activities.id DESC")
	default:
		return query.Order("activities.date ASC").Order("activities.created_at DESC").Order("activities.id DESC")
	}
}
