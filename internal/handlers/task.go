package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/activity-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/activity-tracker-api/internal/errors"
	"github.com/yukikurage/activity-tracker-api/internal/middleware"
	"github.com/yukikurage/activity-tracker-api/internal/models"
	"github.com/yukikurage/activity-tracker-api/internal/scheduler"
	"github.com/yukikurage/activity-tracker-api/internal/services"
	"github.com/yukikurage/activity-tracker-api/internal/utils"
)

// OverdueRunner triggers an on-demand overdue pass
type OverdueRunner interface {
	RunNow(ctx context.Context) scheduler.RunResult
}

// TaskHandler serves the task views of the front end. Every list is
// scoped to the caller unless noted.
type TaskHandler struct {
	activityService *services.ActivityService
	userService     *services.UserService
	aiService       *services.AIService
	overdue         OverdueRunner
}

func NewTaskHandler(
	activityService *services.ActivityService,
	userService *services.UserService,
	aiService *services.AIService,
	overdue OverdueRunner,
) *TaskHandler {
	return &TaskHandler{
		activityService: activityService,
		userService:     userService,
		aiService:       aiService,
		overdue:         overdue,
	}
}

// AssignTask creates an activity for another user with the manager as assigner
func (h *TaskHandler) AssignTask(c *gin.Context) {
	type AssignTaskRequest struct {
		AssignedUser string      `json:"assignedUser" binding:"required"`
		Title        string      `json:"title"`
		Date         models.Date `json:"date"`
		Time         string      `json:"time"`
		Description  string      `json:"description"`
		Status       string      `json:"status"`
		Priority     string      `json:"priority"`
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	activity, err := h.activityService.AssignTask(c.Request.Context(), services.AssignTaskInput{
		ManagerUsername: middleware.GetUsername(c),
		AssignedUser:    req.AssignedUser,
		Title:           req.Title,
		Date:            req.Date,
		Time:            req.Time,
		Description:     req.Description,
		Status:          req.Status,
		Priority:        req.Priority,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Task assigned successfully",
		"taskId":     activity.ID,
		"assignedTo": activity.AssigneeName(),
	})
}

// GetCalendarTasks returns every user's activities due in [startDate, endDate]
func (h *TaskHandler) GetCalendarTasks(c *gin.Context) {
	start, ok := requireDateQuery(c, "startDate")
	if !ok {
		return
	}
	end, ok := requireDateQuery(c, "endDate")
	if !ok {
		return
	}

	activities, err := h.activityService.ListByDateRange(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCalendarTaskDTOs(activities))
}

// GetInProgress pages IN_PROGRESS activities; staff only see their own
func (h *TaskHandler) GetInProgress(c *gin.Context) {
	page, ok := requirePage(c, "page")
	if !ok {
		return
	}

	var (
		result services.ActivityPage
		err    error
	)
	if middleware.IsManager(c) {
		result, err = h.activityService.ListByStatusPaged(c.Request.Context(), models.ActivityStatusInProgress, page)
	} else {
		result, err = h.activityService.ListByAssigneeAndStatus(c.Request.Context(), middleware.GetUsername(c), models.ActivityStatusInProgress, page)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityPageResponse(result))
}

// GetByDate lists one day's activities; staff only see their own
func (h *TaskHandler) GetByDate(c *gin.Context) {
	date, ok := requireDateQuery(c, "date")
	if !ok {
		return
	}

	var (
		activities []models.Activity
		err        error
	)
	if middleware.IsManager(c) {
		activities, err = h.activityService.ListByDate(c.Request.Context(), date)
	} else {
		activities, err = h.activityService.ListByAssigneeAndDate(c.Request.Context(), middleware.GetUsername(c), date)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityDTOs(activities))
}

// GetByDateDetailed pages the caller's and everyone else's activities for one day
func (h *TaskHandler) GetByDateDetailed(c *gin.Context) {
	date, ok := requireDateQuery(c, "date")
	if !ok {
		return
	}
	userPage, ok := requirePage(c, "userTasksPage")
	if !ok {
		return
	}
	otherPage, ok := requirePage(c, "otherTasksPage")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	username := middleware.GetUsername(c)

	userTasks, err := h.activityService.ListByAssigneeAndDatePaged(ctx, username, date, userPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	otherTasks, err := h.activityService.ListOthersByDatePaged(ctx, username, date, otherPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userTasks":  dto.ToDetailedActivityPageResponse(userTasks),
		"otherTasks": dto.ToDetailedActivityPageResponse(otherTasks),
	})
}

// GetUserTasks pages the caller's activities
func (h *TaskHandler) GetUserTasks(c *gin.Context) {
	page, ok := requirePage(c, "page")
	if !ok {
		return
	}

	result, err := h.activityService.ListByAssigneePaged(c.Request.Context(), middleware.GetUsername(c), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityPageResponse(result))
}

// GetUserTasksByDate pages the caller's activities for one day
func (h *TaskHandler) GetUserTasksByDate(c *gin.Context) {
	date, ok := requireDateQuery(c, "date")
	if !ok {
		return
	}
	page, ok := requirePage(c, "page")
	if !ok {
		return
	}

	result, err := h.activityService.ListByAssigneeAndDatePaged(c.Request.Context(), middleware.GetUsername(c), date, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityPageResponse(result))
}

// GetHistory pages the caller's activities due before today
func (h *TaskHandler) GetHistory(c *gin.Context) {
	page, ok := requirePage(c, "page")
	if !ok {
		return
	}

	result, err := h.activityService.ListHistory(c.Request.Context(), middleware.GetUsername(c), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityPageResponse(result))
}

// GetOthersIncoming pages other users' activities due on or after date
func (h *TaskHandler) GetOthersIncoming(c *gin.Context) {
	date, ok := requireDateQuery(c, "date")
	if !ok {
		return
	}
	page, ok := requirePage(c, "page")
	if !ok {
		return
	}

	result, err := h.activityService.ListOthersIncoming(c.Request.Context(), middleware.GetUsername(c), date, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityPageResponse(result))
}

// GetStaff lists every user a manager can assign to, managers included
func (h *TaskHandler) GetStaff(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToStaffDTOs(users))
}

// RunOverdue performs an overdue pass now and reports its counts
func (h *TaskHandler) RunOverdue(c *gin.Context) {
	result := h.overdue.RunNow(c.Request.Context())

	body := gin.H{
		"today":   result.Today,
		"matched": result.Matched,
		"updated": result.Updated,
	}
	if result.Err != nil {
		body["error"] = result.Err.Error()
	}
	c.JSON(http.StatusOK, body)
}

// GenerateTasks drafts activities from free text. Nothing is stored.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	type GenerateTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if h.aiService == nil {
		respondServiceError(c, services.ErrAIServiceNotConfigured)
		return
	}

	drafts, err := h.aiService.DraftActivities(c.Request.Context(), req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"drafts": drafts,
		"count":  len(drafts),
	})
}

// GetTask returns the activity loaded by RequireActivityAccess
func (h *TaskHandler) GetTask(c *gin.Context) {
	activity, ok := middleware.GetActivity(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityDTO(*activity))
}

// UpdateTask rewrites a task and re-syncs its assignee
func (h *TaskHandler) UpdateTask(c *gin.Context) {
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
	c.JSON(http.StatusOK, dto.ToActivityDTO(*activity))
}

// DeleteTask removes a task; a missing ID is a 404
func (h *TaskHandler) DeleteTask(c *gin.Context) {
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
		apierrors.NotFound(c, "Task not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"taskId":  id,
	})
}

func requireDateQuery(c *gin.Context, key string) (models.Date, bool) {
	raw := c.Query(key)
	if raw == "" {
		apierrors.BadRequest(c, key+" is required")
		return models.Date{}, false
	}
	date, err := services.ParseDate(raw)
	if err != nil {
		respondServiceError(c, err)
		return models.Date{}, false
	}
	return date, true
}

func requirePage(c *gin.Context, pageKey string) (utils.PageRequest, bool) {
	page, err := utils.GetPageRequestFor(c, pageKey)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return utils.PageRequest{}, false
	}
	return page, true
}
