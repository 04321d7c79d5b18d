package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/activity-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/activity-tracker-api/internal/errors"
	"github.com/yukikurage/activity-tracker-api/internal/middleware"
	"github.com/yukikurage/activity-tracker-api/internal/models"
	"github.com/yukikurage/activity-tracker-api/internal/services"
)

// activityRequest is the body of activity create and update calls.
// Title and Time are optional.
type activityRequest struct {
	AssignedUser string      `json:"assignedUser" binding:"required"`
	Title        *string     `json:"title"`
	Date         models.Date `json:"date"`
	Time         *string     `json:"time"`
	Description  string      `json:"description"`
	Status       string      `json:"status"`
	Priority     string      `json:"priority"`
}

func (r activityRequest) parsed() (models.ActivityStatus, models.ActivityPriority, error) {
	status, err := services.ParseStatus(r.Status, true)
	if err != nil {
		return "", "", err
	}
	priority, err := services.ParsePriority(r.Priority, true)
	if err != nil {
		return "", "", err
	}
	return status, priority, nil
}

func (r activityRequest) updateInput() (services.UpdateActivityInput, error) {
	status, priority, err := r.parsed()
	if err != nil {
		return services.UpdateActivityInput{}, err
	}
	return services.UpdateActivityInput{
		AssignedUser: r.AssignedUser,
		Date:         r.Date,
		Description:  r.Description,
		Status:       status,
		Priority:     priority,
		Title:        r.Title,
		Time:         r.Time,
	}, nil
}

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// ListActivities returns every activity, earliest due first
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	activities, err := h.activityService.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityDTOs(activities))
}

// CreateActivity stores an activity with the caller recorded as assigner
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	status, priority, err := req.parsed()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	input := services.CreateActivityInput{
		AssignedUser: req.AssignedUser,
		AssignedBy:   middleware.GetUsername(c),
		Date:         req.Date,
		Description:  req.Description,
		Status:       status,
		Priority:     priority,
	}
	if req.Title != nil {
		input.Title = *req.Title
	}
	if req.Time != nil {
		input.Time = *req.Time
	}

	activity, err := h.activityService.CreateActivity(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Activity created successfully",
		"activity": dto.ToActivityDTO(*activity),
	})
}

// UpdateActivity rewrites an activity and re-syncs its assignee
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := req.updateInput()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	activity, err := h.activityService.UpdateActivity(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Activity updated successfully",
		"activity": dto.ToActivityDTO(*activity),
	})
}

// DeleteActivity removes an activity; a missing ID is a 404
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.activityService.DeleteActivity(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !deleted {
		apierrors.NotFound(c, services.ErrActivityNotFound.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Activity deleted successfully",
	})
}

// ListByStatus returns activities in the status named by :status
func (h *ActivityHandler) ListByStatus(c *gin.Context) {
	status, err := services.ParseStatus(c.Param("status"), false)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	activities, err := h.activityService.ListByStatus(c.Request.Context(), status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityDTOs(activities))
}
