package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/activity-tracker-api/internal/models"
	"github.com/yukikurage/activity-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// EventService handles calendar event business logic
type EventService struct {
	eventRepo repository.EventRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// CreateEventInput represents input for creating an event
type CreateEventInput struct {
	Title       string
	Date        models.Date
	Time        string
	Description string
}

// UpdateEventInput changes only the fields that are set
type UpdateEventInput struct {
	Title       *string
	Date        *models.Date
	Time        *string
	Description *string
}

// ListEvents returns every event by date, newest created first within a day
func (s *EventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return nonNilEvents(events), nil
}

// ListEventsByDate returns the events of one day
func (s *EventService) ListEventsByDate(ctx context.Context, date models.Date) ([]models.Event, error) {
	events, err := s.eventRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list events by date: %w", err)
	}
	return nonNilEvents(events), nil
}

// CreateEvent stores a new event. Title and date are required.
func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (*models.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if input.Date.IsZero() {
		return nil, ErrDateRequired
	}

	event := &models.Event{
		Title:       title,
		Date:        input.Date,
		TimeOfDay:   strings.TrimSpace(input.Time),
		Description: input.Description,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// UpdateEvent applies a partial update to an existing event
func (s *EventService) UpdateEvent(ctx context.Context, id uint64, input UpdateEventInput) (*models.Event, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.Date != nil && input.Date.IsZero() {
		return nil, ErrDateRequired
	}

	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	if input.Title != nil {
		event.Title = strings.TrimSpace(*input.Title)
	}
	if input.Date != nil {
		event.Date = *input.Date
	}
	if input.Time != nil {
		event.TimeOfDay = strings.TrimSpace(*input.Time)
	}
	if input.Description != nil {
		event.Description = *input.Description
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

// DeleteEvent removes an event and reports whether it existed
func (s *EventService) DeleteEvent(ctx context.Context, id uint64) (bool, error) {
	exists, err := s.eventRepo.ExistsByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check event: %w", err)
	}
	if !exists {
		return false, nil
	}
	if err := s.eventRepo.DeleteByID(ctx, id); err != nil {
		return false, fmt.Errorf("failed to delete event: %w", err)
	}
	return true, nil
}

// SearchEvents matches query against title and description, ignoring case
func (s *EventService) SearchEvents(ctx context.Context, query string) ([]models.Event, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrQueryRequired
	}
	events, err := s.eventRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	return nonNilEvents(events), nil
}

// Count counts all events
func (s *EventService) Count(ctx context.Context) (int64, error) {
	count, err := s.eventRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

func nonNilEvents(events []models.Event) []models.Event {
	if events == nil {
		return []models.Event{}
	}
	return events
}
