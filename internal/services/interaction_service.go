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

// InteractionService records and reads UI interactions
type InteractionService struct {
	interactionRepo repository.InteractionRepository
}

// NewInteractionService creates a new InteractionService
func NewInteractionService(interactionRepo repository.InteractionRepository) *InteractionService {
	return &InteractionService{interactionRepo: interactionRepo}
}

// CreateInteractionInput represents a reported UI interaction
type CreateInteractionInput struct {
	Type     string
	Element  string
	Position string
}

// RecordInteraction stores an interaction stamped with the current time
func (s *InteractionService) RecordInteraction(ctx context.Context, input CreateInteractionInput) (*models.Interaction, error) {
	interactionType := strings.TrimSpace(input.Type)
	if interactionType == "" {
		return nil, ErrTypeRequired
	}

	interaction := &models.Interaction{
		Type:     interactionType,
		Element:  input.Element,
		Position: input.Position,
	}
	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		return nil, fmt.Errorf("failed to record interaction: %w", err)
	}
	return interaction, nil
}

// ListRecent returns the latest interactions. A non-positive limit uses the default.
func (s *InteractionService) ListRecent(ctx context.Context, limit int) ([]models.Interaction, error) {
	if limit <= 0 {
		limit = constants.DefaultInteractionLimit
	}
	interactions, err := s.interactionRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	if interactions == nil {
		interactions = []models.Interaction{}
	}
	return interactions, nil
}

// ListByType returns all interactions of one type, newest first
func (s *InteractionService) ListByType(ctx context.Context, interactionType string) ([]models.Interaction, error) {
	interactions, err := s.interactionRepo.ListByType(ctx, strings.TrimSpace(interactionType))
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions by type: %w", err)
	}
	if interactions == nil {
		interactions = []models.Interaction{}
	}
	return interactions, nil
}

func (s *InteractionService) Count(ctx context.Context) (int64, error) {
	count, err := s.interactionRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count interactions: %w", err)
	}
	return count, nil
}

func (s *InteractionService) CountByType(ctx context.Context, interactionType string) (int64, error) {
	count, err := s.interactionRepo.CountByType(ctx, interactionType)
	if err != nil {
		return 0, fmt.Errorf("failed to count interactions by type: %w", err)
	}
	return count, nil
}

// LastInteractionAt returns the time of the latest interaction, or nil when none exist
func (s *InteractionService) LastInteractionAt(ctx context.Context) (*time.Time, error) {
	latest, err := s.interactionRepo.Latest(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest interaction: %w", err)
	}
	ts := latest.Timestamp
	return &ts, nil
}
