package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/activity-tracker-api/internal/errors"
	"github.com/yukikurage/activity-tracker-api/internal/models"
	"github.com/yukikurage/activity-tracker-api/internal/services"
)

// ContextKeyActivity holds the *models.Activity loaded by RequireActivityAccess
const ContextKeyActivity = "activity"

// RequireActivityAccess loads the activity named by :id and lets through
// managers and the activity's assignee.
func RequireActivityAccess(activityService *services.ActivityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		activity, err := activityService.GetActivity(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				apierrors.NotFound(c, "Task not found")
			} else {
				apierrors.InternalError(c, "Failed to load task")
			}
			c.Abort()
			return
		}

		if !IsManager(c) && activity.AssigneeName() != GetUsername(c) {
			apierrors.Forbidden(c, "You do not have access to this task")
			c.Abort()
			return
		}

		c.Set(ContextKeyActivity, activity)
		c.Next()
	}
}

// GetActivity retrieves the activity stored by RequireActivityAccess
func GetActivity(c *gin.Context) (*models.Activity, bool) {
	v, exists := c.Get(ContextKeyActivity)
	if !exists {
		return nil, false
	}
	activity, ok := v.(*models.Activity)
	return activity, ok
}
