package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/activity-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/activity-tracker-api/internal/errors"
	"github.com/yukikurage/activity-tracker-api/internal/models"
	"github.com/yukikurage/activity-tracker-api/internal/services"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListEvents returns all events, or one day's events when ?date is set
func (h *EventHandler) ListEvents(c *gin.Context) {
	var (
		events []models.Event
		err    error
	)
	if raw := c.Query("date"); raw != "" {
		date, perr := services.ParseDate(raw)
		if perr != nil {
			respondServiceError(c, perr)
			return
		}
		events, err = h.eventService.ListEventsByDate(c.Request.Context(), date)
	} else {
		events, err = h.eventService.ListEvents(c.Request.Context())
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEventDTOs(events))
}

// SearchEvents matches ?q against title and description
func (h *EventHandler) SearchEvents(c *gin.Context) {
	events, err := h.eventService.SearchEvents(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEventDTOs(events))
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	type CreateEventRequest struct {
		Title       string      `json:"title"`
		Date        models.Date `json:"date"`
		Time        string      `json:"time"`
		Description string      `json:"description"`
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), services.CreateEventInput{
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEventDTO(*event))
}

// UpdateEvent changes only the fields present in the body
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateEventRequest struct {
		Title       *string      `json:"title"`
		Date        *models.Date `json:"date"`
		Time        *string      `json:"time"`
		Description *string      `json:"description"`
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), id, services.UpdateEventInput{
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEventDTO(*event))
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.eventService.DeleteEvent(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !deleted {
		apierrors.NotFound(c, services.ErrEventNotFound.Error())
		return
	}
	c.Status(http.StatusOK)
}
