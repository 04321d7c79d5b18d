package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yukikurage/activity-tracker-api/internal/models"
)

// OverdueStore is the part of the activity store the overdue job touches.
type OverdueStore interface {
	FindOverdue(ctx context.Context, today models.Date, excluded models.ActivityStatus) ([]models.Activity, error)
	UpdateStatus(ctx context.Context, id uint64, status models.ActivityStatus) error
}

// RunResult summarizes one pass of the overdue job.
// Err holds the failure that stopped the pass, already logged.
type RunResult struct {
	Today   models.Date
	Matched int
	Updated int
	Err     error
}

// OverdueJob force-completes every activity whose due date has passed.
//
// PENDING, IN_PROGRESS and SCHEDULED rows are all completed. Each row is
// written separately, so a failure keeps the rows already saved and the next
// pass picks up the rest.
type OverdueJob struct {
	store  OverdueStore
	logger *slog.Logger
	now    func() time.Time
}

func NewOverdueJob(store OverdueStore, logger *slog.Logger) *OverdueJob {
	return &OverdueJob{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the clock used to compute today.
func (j *OverdueJob) WithClock(now func() time.Time) *OverdueJob {
	j.now = now
	return j
}

// Run performs one pass. It never fails; problems are logged and reported
// in the result.
func (j *OverdueJob) Run(ctx context.Context) (result RunResult) {
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("overdue job panicked: %v", r)
			j.logger.Error("overdue job panicked", "panic", r, "updated", result.Updated)
		}
	}()

	result.Today = models.Today(j.now())

	activities, err := j.store.FindOverdue(ctx, result.Today, models.ActivityStatusCompleted)
	if err != nil {
		result.Err = fmt.Errorf("failed to find overdue activities: %w", err)
		j.logger.Error("failed to find overdue activities", "today", result.Today.String(), "error", err)
		return result
	}

	result.Matched = len(activities)
	if result.Matched == 0 {
		j.logger.Info("no overdue activities found", "today", result.Today.String())
		return result
	}

	j.logger.Info("found overdue activities", "count", result.Matched, "today", result.Today.String())

	for _, activity := range activities {
		if err := j.store.UpdateStatus(ctx, activity.ID, models.ActivityStatusCompleted); err != nil {
			result.Err = fmt.Errorf("failed to complete activity %d: %w", activity.ID, err)
			j.logger.Error("failed to complete overdue activity",
				"activity_id", activity.ID,
				"matched", result.Matched,
				"updated", result.Updated,
				"error", err,
			)
			return result
		}
		result.Updated++
		j.logger.Debug("completed overdue activity",
			"activity_id", activity.ID,
			"date", activity.Date.String(),
			"previous_status", string(activity.Status),
		)
	}

	j.logger.Info("marked overdue activities as completed", "matched", result.Matched, "updated", result.Updated)
	return result
}

// RunNow is the on-demand trigger. Same semantics as a scheduled pass.
func (j *OverdueJob) RunNow(ctx context.Context) RunResult {
	j.logger.Info("manual overdue run requested")
	return j.Run(ctx)
}
