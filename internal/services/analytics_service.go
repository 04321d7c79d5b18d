package services

import (
	"context"
	"time"

	"github.com/yukikurage/activity-tracker-api/internal/models"
)

// Analytics is a snapshot of usage totals
type Analytics struct {
	TotalInteractions    int64      `json:"totalInteractions"`
	ClickInteractions    int64      `json:"clickInteractions"`
	HoverInteractions    int64      `json:"hoverInteractions"`
	TotalEvents          int64      `json:"totalEvents"`
	TotalUsers           int64      `json:"totalUsers"`
	TotalActivities      int64      `json:"totalActivities"`
	PendingActivities    int64      `json:"pendingActivities"`
	CompletedActivities  int64      `json:"completedActivities"`
	InProgressActivities int64      `json:"inProgressActivities"`
	LastActivity         *time.Time `json:"lastActivity"`
}

// AnalyticsService aggregates counts from the other services
type AnalyticsService struct {
	interactions *InteractionService
	events       *EventService
	users        *UserService
	activities   *ActivityService
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(interactions *InteractionService, events *EventService, users *UserService, activities *ActivityService) *AnalyticsService {
	return &AnalyticsService{
		interactions: interactions,
		events:       events,
		users:        users,
		activities:   activities,
	}
}

// Snapshot collects every total. The first failing count aborts the snapshot.
func (s *AnalyticsService) Snapshot(ctx context.Context) (*Analytics, error) {
	var (
		a   Analytics
		err error
	)

	counts := []struct {
		dst *int64
		fn  func() (int64, error)
	}{
		{&a.TotalInteractions, func() (int64, error) { return s.interactions.Count(ctx) }},
		{&a.ClickInteractions, func() (int64, error) { return s.interactions.CountByType(ctx, models.InteractionTypeClick) }},
		{&a.HoverInteractions, func() (int64, error) { return s.interactions.CountByType(ctx, models.InteractionTypeHover) }},
		{&a.TotalEvents, func() (int64, error) { return s.events.Count(ctx) }},
		{&a.TotalUsers, func() (int64, error) { return s.users.Count(ctx) }},
		{&a.TotalActivities, func() (int64, error) { return s.activities.Count(ctx) }},
		{&a.PendingActivities, func() (int64, error) { return s.activities.CountByStatus(ctx, models.ActivityStatusPending) }},
		{&a.CompletedActivities, func() (int64, error) { return s.activities.CountByStatus(ctx, models.ActivityStatusCompleted) }},
		{&a.InProgressActivities, func() (int64, error) { return s.activities.CountByStatus(ctx, models.ActivityStatusInProgress) }},
	}
	for _, c := range counts {
		if *c.dst, err = c.fn(); err != nil {
			return nil, err
		}
	}

	if a.LastActivity, err = s.interactions.LastInteractionAt(ctx); err != nil {
		return nil, err
	}

	return &a, nil
}
