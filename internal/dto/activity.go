package dto

import (
	"time"

	"github.com/yukikurage/activity-tracker-api/internal/models"
	"github.com/yukikurage/activity-tracker-api/internal/repository"
)

// ActivityDTO represents an activity in API responses
type ActivityDTO struct {
	ID           uint64                  `json:"id"`
	AssignedUser string                  `json:"assignedUser"`
	AssignedBy   string                  `json:"assignedBy,omitempty"`
	Title        string                  `json:"title"`
	Date         models.Date             `json:"date"`
	Time         string                  `json:"time,omitempty"`
	Description  string                  `json:"description"`
	Status       models.ActivityStatus   `json:"status"`
	Priority     models.ActivityPriority `json:"priority"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
}

// CalendarTaskDTO is the compact activity shape used by the calendar view
type CalendarTaskDTO struct {
	ID           uint64                  `json:"id"`
	AssignedUser string                  `json:"assignedUser"`
	Description  string                  `json:"description"`
	Status       models.ActivityStatus   `json:"status"`
	Priority     models.ActivityPriority `json:"priority"`
	Date         models.Date             `json:"date"`
}

// PageResponse is a page of items with its totals
type PageResponse[T any] struct {
	Items         []T   `json:"items"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

// DetailedPageResponse adds a hasMore flag to a page
type DetailedPageResponse[T any] struct {
	PageResponse[T]
	HasMore bool `json:"hasMore"`
}

func ToActivityDTO(activity models.Activity) ActivityDTO {
	return ActivityDTO{
		ID:           activity.ID,
		AssignedUser: activity.AssigneeName(),
		AssignedBy:   activity.AssignerName(),
		Title:        activity.Title,
		Date:         activity.Date,
		Time:         activity.TimeOfDay,
		Description:  activity.Description,
		Status:       activity.Status,
		Priority:     activity.Priority,
		CreatedAt:    activity.CreatedAt,
		UpdatedAt:    activity.UpdatedAt,
	}
}

func ToActivityDTOs(activities []models.Activity) []ActivityDTO {
	dtos := make([]ActivityDTO, len(activities))
	for i, activity := range activities {
		dtos[i] = ToActivityDTO(activity)
	}
	return dtos
}

func ToCalendarTaskDTOs(activities []models.Activity) []CalendarTaskDTO {
	dtos := make([]CalendarTaskDTO, len(activities))
	for i, activity := range activities {
		dtos[i] = CalendarTaskDTO{
			ID:           activity.ID,
			AssignedUser: activity.AssigneeName(),
			Description:  activity.Description,
			Status:       activity.Status,
			Priority:     activity.Priority,
			Date:         activity.Date,
		}
	}
	return dtos
}

// ToActivityPageResponse converts a repository page to its response envelope
func ToActivityPageResponse(page repository.Page[models.Activity]) PageResponse[ActivityDTO] {
	return PageResponse[ActivityDTO]{
		Items:         ToActivityDTOs(page.Items),
		Page:          page.Page,
		Size:          page.Size,
		TotalPages:    page.TotalPages,
		TotalElements: page.TotalElements,
	}
}

func ToDetailedActivityPageResponse(page repository.Page[models.Activity]) DetailedPageResponse[ActivityDTO] {
	return DetailedPageResponse[ActivityDTO]{
		PageResponse: ToActivityPageResponse(page),
		HasMore:      page.HasMore(),
	}
}
