package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/activity-tracker-api/internal/models"
	"github.com/yukikurage/activity-tracker-api/internal/repository"
	"github.com/yukikurage/activity-tracker-api/internal/utils"
)

// ActivityPage is one page of activities with its totals.
type ActivityPage = repository.Page[models.Activity]

// ListAll returns every activity, earliest due first
func (s *ActivityService) ListAll(ctx context.Context) ([]models.Activity, error) {
	return s.find(ctx, repository.ActivityFilter{Order: repository.OrderByDueDate})
}

// ListByAssignee returns one user's activities, earliest due first
func (s *ActivityService) ListByAssignee(ctx context.Context, username string) ([]models.Activity, error) {
	return s.find(ctx, repository.ActivityFilter{
		AssigneeName: &username,
		Order:        repository.OrderByDueDate,
	})
}

// ListByAssigneePaged returns one page of a user's activities
func (s *ActivityService) ListByAssigneePaged(ctx context.Context, username string, page utils.PageRequest) (ActivityPage, error) {
	return s.findPage(ctx, repository.ActivityFilter{
		AssigneeName: &username,
		Order:        repository.OrderByDueDate,
	}, page)
}

// ListByStatus returns activities in one status, earliest due first
func (s *ActivityService) ListByStatus(ctx context.Context, status models.ActivityStatus) ([]models.Activity, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return s.find(ctx, repository.ActivityFilter{
		Status: &status,
		Order:  repository.OrderByDueDate,
	})
}

// ListByStatusPaged returns one page of activities in one status
func (s *ActivityService) ListByStatusPaged(ctx context.Context, status models.ActivityStatus, page utils.PageRequest) (ActivityPage, error) {
	if !status.IsValid() {
		return ActivityPage{}, ErrInvalidStatus
	}
	return s.findPage(ctx, repository.ActivityFilter{
		Status: &status,
		Order:  repository.OrderByDueDate,
	}, page)
}

// ListByAssigneeAndStatus returns one page of a user's activities in one status
func (s *ActivityService) ListByAssigneeAndStatus(ctx context.Context, username string, status models.ActivityStatus, page utils.PageRequest) (ActivityPage, error) {
	if !status.IsValid() {
		return ActivityPage{}, ErrInvalidStatus
	}
	return s.findPage(ctx, repository.ActivityFilter{
		AssigneeName: &username,
		Status:       &status,
		Order:        repository.OrderByDueDate,
	}, page)
}

// ListByDateRange returns activities due within [start, end].
// A reversed range is passed through and matches nothing.
func (s *ActivityService) ListByDateRange(ctx context.Context, start, end models.Date) ([]models.Activity, error) {
	return s.find(ctx, repository.ActivityFilter{
		DateFrom: &start,
		DateTo:   &end,
		Order:    repository.OrderByDueDateOnly,
	})
}

// ListByAssigneeAndDateRange returns a user's activities due within [start, end]
func (s *ActivityService) ListByAssigneeAndDateRange(ctx context.Context, username string, start, end models.Date) ([]models.Activity, error) {
	return s.find(ctx, repository.ActivityFilter{
		AssigneeName: &username,
		DateFrom:     &start,
		DateTo:       &end,
		Order:        repository.OrderByDueDateOnly,
	})
}

// ListByDate returns the activities due on one day, newest created first
func (s *ActivityService) ListByDate(ctx context.Context, date models.Date) ([]models.Activity, error) {
	return s.find(ctx, repository.ActivityFilter{
		Date:  &date,
		Order: repository.OrderByNewest,
	})
}

// ListByAssigneeAndDate returns a user's activities due on one day
func (s *ActivityService) ListByAssigneeAndDate(ctx context.Context, username string, date models.Date) ([]models.Activity, error) {
	return s.find(ctx, repository.ActivityFilter{
		AssigneeName: &username,
		Date:         &date,
		Order:        repository.OrderByNewest,
	})
}

// ListByAssigneeAndDatePaged returns one page of a user's activities due on one day
func (s *ActivityService) ListByAssigneeAndDatePaged(ctx context.Context, username string, date models.Date, page utils.PageRequest) (ActivityPage, error) {
	return s.findPage(ctx, repository.ActivityFilter{
		AssigneeName: &username,
		Date:         &date,
		Order:        repository.OrderByNewest,
	}, page)
}

// ListOthersByDatePaged returns one page of other users' activities due on one day
func (s *ActivityService) ListOthersByDatePaged(ctx context.Context, username string, date models.Date, page utils.PageRequest) (ActivityPage, error) {
	return s.findPage(ctx, repository.ActivityFilter{
		ExcludeAssigneeName: &username,
		Date:                &date,
		Order:               repository.OrderByNewest,
	}, page)
}

// ListHistory returns a user's activities due strictly before today,
// most recently due first. Today is evaluated at call time.
func (s *ActivityService) ListHistory(ctx context.Context, username string, page utils.PageRequest) (ActivityPage, error) {
	today := models.Today(s.now())
	return s.findPage(ctx, repository.ActivityFilter{
		AssigneeName: &username,
		DateBefore:   &today,
		Order:        repository.OrderByMostRecentlyDue,
	}, page)
}

// ListOthersIncoming returns activities of every other user due on or after fromDate
func (s *ActivityService) ListOthersIncoming(ctx context.Context, currentUsername string, fromDate models.Date, page utils.PageRequest) (ActivityPage, error) {
	return s.findPage(ctx, repository.ActivityFilter{
		ExcludeAssigneeName: &currentUsername,
		DateFrom:            &fromDate,
		Order:               repository.OrderByDueDate,
	}, page)
}

// Count counts all activities
func (s *ActivityService) Count(ctx context.Context) (int64, error) {
	count, err := s.activityRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return count, nil
}

// CountByStatus counts activities in one status
func (s *ActivityService) CountByStatus(ctx context.Context, status models.ActivityStatus) (int64, error) {
	if !status.IsValid() {
		return 0, ErrInvalidStatus
	}
	count, err := s.activityRepo.CountByStatus(ctx, status)
	if err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return count, nil
}

func (s *ActivityService) find(ctx context.Context, filter repository.ActivityFilter) ([]models.Activity, error) {
	activities, err := s.activityRepo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	return activities, nil
}

func (s *ActivityService) findPage(ctx context.Context, filter repository.ActivityFilter, page utils.PageRequest) (ActivityPage, error) {
	if err := page.Validate(); err != nil {
		return ActivityPage{}, ErrInvalidPage
	}
	result, err := s.activityRepo.FindPage(ctx, filter, page)
	if err != nil {
		return ActivityPage{}, fmt.Errorf("failed to list activities: %w", err)
	}
	return result, nil
}
