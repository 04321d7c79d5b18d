package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/activity-tracker-api/internal/constants"
	"github.com/yukikurage/activity-tracker-api/internal/models"
	"github.com/yukikurage/activity-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// ActivityService handles activity business logic. Role checks happen in the
// HTTP layer before any mutating method is called.
type ActivityService struct {
	activityRepo repository.ActivityRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

// NewActivityService creates a new ActivityService
func NewActivityService(activityRepo repository.ActivityRepository, userRepo repository.UserRepository) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

// WithClock replaces the clock used to evaluate "today".
func (s *ActivityService) WithClock(now func() time.Time) *ActivityService {
	s.now = now
	return s
}

// CreateActivityInput represents input for creating an activity
type CreateActivityInput struct {
	AssignedUser string
	AssignedBy   string
	Title        string
	Date         models.Date
	Time         string
	Description  string
	Status       models.ActivityStatus
	Priority     models.ActivityPriority
}

// AssignTaskInput represents a manager handing a task to a user.
// Status and Priority are raw client strings.
type AssignTaskInput struct {
	ManagerUsername string
	AssignedUser    string
	Title           string
	Date            models.Date
	Time            string
	Description     string
	Status          string
	Priority        string
}

// UpdateActivityInput replaces the editable fields of an activity.
// Title and Time are left unchanged when nil.
type UpdateActivityInput struct {
	AssignedUser string
	Date         models.Date
	Description  string
	Status       models.ActivityStatus
	Priority     models.ActivityPriority
	Title        *string
	Time         *string
}

// CreateActivity validates the input, resolves the assignee and stores the activity.
// An unknown assignee fails with ErrAssigneeNotFound before anything is written.
func (s *ActivityService) CreateActivity(ctx context.Context, input CreateActivityInput) (*models.Activity, error) {
	if err := validateActivityFields(input.AssignedUser, input.Date, input.Description); err != nil {
		return nil, err
	}

	status, priority, err := defaultStatusAndPriority(input.Status, input.Priority)
	if err != nil {
		return nil, err
	}

	assignee, err := s.resolveAssignee(ctx, input.AssignedUser)
	if err != nil {
		return nil, err
	}

	var assigner *models.User
	if name := strings.TrimSpace(input.AssignedBy); name != "" {
		assigner, err = s.userRepo.FindByUsername(ctx, name)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to find assigner: %w", err)
			}
			assigner = nil
		}
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = constants.DefaultActivityTitle
	}

	activity := &models.Activity{
		Title:       title,
		Date:        input.Date,
		TimeOfDay:   strings.TrimSpace(input.Time),
		Description: strings.TrimSpace(input.Description),
		Status:      status,
		Priority:    priority,
	}
	activity.AssignTo(assignee)
	activity.SetAssigner(assigner)

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return activity, nil
}

// AssignTask parses the raw status and priority, then creates the activity
// with the manager recorded as assigner.
func (s *ActivityService) AssignTask(ctx context.Context, input AssignTaskInput) (*models.Activity, error) {
	status, err := ParseStatus(input.Status, true)
	if err != nil {
		return nil, err
	}
	priority, err := ParsePriority(input.Priority, true)
	if err != nil {
		return nil, err
	}

	return s.CreateActivity(ctx, CreateActivityInput{
		AssignedUser: input.AssignedUser,
		AssignedBy:   input.ManagerUsername,
		Title:        input.Title,
		Date:         input.Date,
		Time:         input.Time,
		Description:  input.Description,
		Status:       status,
		Priority:     priority,
	})
}

// GetActivity returns an activity with both user relations loaded
func (s *ActivityService) GetActivity(ctx context.Context, id uint64) (*models.Activity, error) {
	activity, err := s.activityRepo.FindByID(ctx, id, "AssignedUser", "AssignedBy")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}
	return activity, nil
}

// UpdateActivity re-resolves the assignee and rewrites the activity.
// The cached assignee name is re-derived in the same write.
func (s *ActivityService) UpdateActivity(ctx context.Context, id uint64, input UpdateActivityInput) (*models.Activity, error) {
	if err := validateActivityFields(input.AssignedUser, input.Date, input.Description); err != nil {
		return nil, err
	}

	status, priority, err := defaultStatusAndPriority(input.Status, input.Priority)
	if err != nil {
		return nil, err
	}

	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, ErrTitleRequired
	}

	activity, err := s.activityRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}

	assignee, err := s.resolveAssignee(ctx, input.AssignedUser)
	if err != nil {
		return nil, err
	}

	activity.AssignTo(assignee)
	activity.Date = input.Date
	activity.Description = strings.TrimSpace(input.Description)
	activity.Status = status
	activity.Priority = priority
	if input.Title != nil {
		activity.Title = strings.TrimSpace(*input.Title)
	}
	if input.Time != nil {
		activity.TimeOfDay = strings.TrimSpace(*input.Time)
	}

	if err := s.activityRepo.Update(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	return s.GetActivity(ctx, activity.ID)
}

// DeleteActivity removes an activity and reports whether a row existed.
// A missing ID is a false result, not an error.
func (s *ActivityService) DeleteActivity(ctx context.Context, id uint64) (bool, error) {
	exists, err := s.activityRepo.ExistsByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check activity: %w", err)
	}
	if !exists {
		return false, nil
	}

	if err := s.activityRepo.DeleteByID(ctx, id); err != nil {
		return false, fmt.Errorf("failed to delete activity: %w", err)
	}

	return true, nil
}

// ParseStatus converts a client status string. An empty string yields
// PENDING when allowEmpty is set.
func ParseStatus(raw string, allowEmpty bool) (models.ActivityStatus, error) {
	if strings.TrimSpace(raw) == "" && allowEmpty {
		return models.ActivityStatusPending, nil
	}
	status, ok := models.ParseActivityStatus(raw)
	if !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ParsePriority converts a client priority string. An empty string yields
// MEDIUM when allowEmpty is set.
func ParsePriority(raw string, allowEmpty bool) (models.ActivityPriority, error) {
	if strings.TrimSpace(raw) == "" && allowEmpty {
		return models.ActivityPriorityMedium, nil
	}
	priority, ok := models.ParseActivityPriority(raw)
	if !ok {
		return "", ErrInvalidPriority
	}
	return priority, nil
}

// ParseDate converts a YYYY-MM-DD string.
func ParseDate(raw string) (models.Date, error) {
	date, err := models.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return models.Date{}, ErrInvalidDate
	}
	return date, nil
}

// resolveAssignee maps an unknown username to ErrAssigneeNotFound
func (s *ActivityService) resolveAssignee(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to find assigned user: %w", err)
	}
	return user, nil
}

func validateActivityFields(assignee string, date models.Date, description string) error {
	if strings.TrimSpace(assignee) == "" {
		return ErrAssigneeRequired
	}
	if date.IsZero() {
		return ErrDateRequired
	}
	if strings.TrimSpace(description) == "" {
		return ErrDescriptionRequired
	}
	return nil
}

func defaultStatusAndPriority(status models.ActivityStatus, priority models.ActivityPriority) (models.ActivityStatus, models.ActivityPriority, error) {
	if status == "" {
		status = models.ActivityStatusPending
	}
	if !status.IsValid() {
		return "", "", ErrInvalidStatus
	}
	if priority == "" {
		priority = models.ActivityPriorityMedium
	}
	if !priority.IsValid() {
		return "", "", ErrInvalidPriority
	}
	return status, priority, nil
}
