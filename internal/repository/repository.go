package repository

import (
	"context"
	"time"

	"github.com/yukikurage/activity-tracker-api/internal/models"
	"github.com/yukikurage/activity-tracker-api/internal/utils"
)

// Page is one window of a larger ordered result.
type Page[T any] struct {
	Items         []T
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// NewPage builds a Page from a window of items and the total row count.
func NewPage[T any](items []T, req utils.PageRequest, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:         items,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    utils.TotalPages(total, req.Size),
	}
}

// HasMore reports whether another page follows this one.
func (p Page[T]) HasMore() bool {
	return p.Page < p.TotalPages-1
}

// ActivityOrder selects the sort applied to an activity query
type ActivityOrder int

const (
	// OrderByDueDate sorts earliest due first, newest created first within a day.
	OrderByDueDate ActivityOrder = iota
	// OrderByDueDateOnly sorts earliest due first.
	OrderByDueDateOnly
	// OrderByNewest sorts most recently created first.
	OrderByNewest
	// OrderByMostRecentlyDue sorts latest due first, newest created first within a day.
	OrderByMostRecentlyDue
)

// ActivityFilter holds filtering options for listing activities.
// Date bounds are independent and combine with AND.
type ActivityFilter struct {
	AssigneeName        *string
	ExcludeAssigneeName *string
	Status              *models.ActivityStatus
	ExcludeStatus       *models.ActivityStatus
	Date                *models.Date
	DateFrom            *models.Date // inclusive
	DateTo              *models.Date // inclusive
	DateBefore          *models.Date // exclusive
	Order               ActivityOrder
}

// ActivityRepository defines the interface for activity data access
type ActivityRepository interface {
	// Create inserts a new activity
	Create(ctx context.Context, activity *models.Activity) error

	// Update saves every column of an existing activity
	Update(ctx context.Context, activity *models.Activity) error

	// UpdateStatus writes only the status column of one activity
	UpdateStatus(ctx context.Context, id uint64, status models.ActivityStatus) error

	// RenameAssignee rewrites the cached assignee name on every activity of a user
	RenameAssignee(ctx context.Context, userID uint64, username string) error

	// FindByID finds an activity by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Activity, error)

	// ExistsByID reports whether an activity with the ID exists
	ExistsByID(ctx context.Context, id uint64) (bool, error)

	// DeleteByID removes an activity row
	DeleteByID(ctx context.Context, id uint64) error

	// Find returns every activity matching the filter
	Find(ctx context.Context, filter ActivityFilter) ([]models.Activity, error)

	// FindPage returns one page of matching activities and the total match count
	FindPage(ctx context.Context, filter ActivityFilter, page utils.PageRequest) (Page[models.Activity], error)

	// FindOverdue returns activities due before today whose status is not excluded
	FindOverdue(ctx context.Context, today models.Date, excluded models.ActivityStatus) ([]models.Activity, error)

	// Count counts all activities
	Count(ctx context.Context) (int64, error)

	// CountByStatus counts activities in one status
	CountByStatus(ctx context.Context, status models.ActivityStatus) (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// Update saves an existing user
	Update(ctx context.Context, user *models.User) error

	// UpdateProfile saves a user and, when renamed, re-syncs the cached
	// assignee name on their activities atomically
	UpdateProfile(ctx context.Context, user *models.User, renamed bool) error

	// ResetPassword marks a reset token used and saves the user atomically
	ResetPassword(ctx context.Context, user *models.User, tokenID uint64) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByUsernameOrEmail finds a user whose username or email equals identifier
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error)

	// List returns all users ordered by username
	List(ctx context.Context) ([]models.User, error)

	// Count counts all users
	Count(ctx context.Context) (int64, error)
}

// EventRepository defines the interface for calendar event data access
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint64) (*models.Event, error)
	ExistsByID(ctx context.Context, id uint64) (bool, error)
	DeleteByID(ctx context.Context, id uint64) error

	// List returns events by date ascending, newest created first within a day
	List(ctx context.Context) ([]models.Event, error)

	// ListByDate returns the events of one day, newest created first
	ListByDate(ctx context.Context, date models.Date) ([]models.Event, error)

	// Search matches title or description case-insensitively
	Search(ctx context.Context, term string) ([]models.Event, error)

	Count(ctx context.Context) (int64, error)
}

// InteractionRepository defines the interface for UI interaction data access
type InteractionRepository interface {
	Create(ctx context.Context, interaction *models.Interaction) error

	// ListRecent returns the latest interactions, newest first
	ListRecent(ctx context.Context, limit int) ([]models.Interaction, error)

	// ListByType returns interactions of one type, newest first
	ListByType(ctx context.Context, interactionType string) ([]models.Interaction, error)

	Count(ctx context.Context) (int64, error)
	CountByType(ctx context.Context, interactionType string) (int64, error)

	// Latest returns the most recent interaction
	Latest(ctx context.Context) (*models.Interaction, error)
}

// PasswordResetTokenRepository defines the interface for reset token data access
type PasswordResetTokenRepository interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error

	// FindUnused finds a token that has not been used yet, with its user preloaded
	FindUnused(ctx context.Context, token string) (*models.PasswordResetToken, error)

	// MarkAllUsedForUser invalidates every outstanding token of a user
	MarkAllUsedForUser(ctx context.Context, userID uint64) error

	// DeleteExpired removes tokens that expired before now and returns how many
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
