package dto

import (
	"time"

	"github.com/yukikurage/activity-tracker-api/internal/models"
)

type EventDTO struct {
	ID          uint64      `json:"id"`
	Date        models.Date `json:"date"`
	Title       string      `json:"title"`
	Time        string      `json:"time,omitempty"`
	Description string      `json:"description"`
}

type InteractionDTO struct {
	ID        uint64    `json:"id"`
	Type      string    `json:"type"`
	Element   string    `json:"element"`
	Position  string    `json:"position"`
	Timestamp time.Time `json:"timestamp"`
}

func ToEventDTO(event models.Event) EventDTO {
	return EventDTO{
		ID:          event.ID,
		Date:        event.Date,
		Title:       event.Title,
		Time:        event.TimeOfDay,
		Description: event.Description,
	}
}

func ToEventDTOs(events []models.Event) []EventDTO {
	dtos := make([]EventDTO, len(events))
	for i, event := range events {
		dtos[i] = ToEventDTO(event)
	}
	return dtos
}

func ToInteractionDTO(interaction models.Interaction) InteractionDTO {
	return InteractionDTO{
		ID:        interaction.ID,
		Type:      interaction.Type,
		Element:   interaction.Element,
		Position:  interaction.Position,
		Timestamp: interaction.Timestamp,
	}
}

func ToInteractionDTOs(interactions []models.Interaction) []InteractionDTO {
	dtos := make([]InteractionDTO, len(interactions))
	for i, interaction := range interactions {
		dtos[i] = ToInteractionDTO(interaction)
	}
	return dtos
}
