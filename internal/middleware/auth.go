package middleware

import (
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/activity-tracker-api/internal/auth"
	"github.com/yukikurage/activity-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/activity-tracker-api/internal/errors"
	"github.com/yukikurage/activity-tracker-api/internal/models"
	"github.com/yukikurage/activity-tracker-api/internal/repository"
)

// RequireAuth accepts a bearer token, then falls back to the session cookie.
// On success user_id, username and role are set on the context.
func RequireAuth(jwtService *auth.JWTService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				if errors.Is(err, auth.ErrExpiredToken) {
					apierrors.UnauthorizedWithCode(c, apierrors.ErrCodeTokenExpired, "Token has expired")
				} else {
					apierrors.Unauthorized(c, "Invalid token")
				}
				c.Abort()
				return
			}

			setIdentity(c, claims.UserID, claims.Username, models.UserRole(claims.Role))
			c.Next()
			return
		}

		session := sessions.Default(c)
		userID, ok := toUint64(session.Get(constants.ContextKeyUserID))
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		setIdentity(c, user.ID, user.Username, user.Role)
		c.Next()
	}
}

// RequireManager rejects callers whose role is not MANAGER.
// Must run after RequireAuth.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != models.RoleManager {
			apierrors.Forbidden(c, "Manager role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

// GetUsername retrieves the current username from context
func GetUsername(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUsername)
}

// GetRole retrieves the current role from context
func GetRole(c *gin.Context) models.UserRole {
	role, _ := c.Get(constants.ContextKeyRole)
	r, _ := role.(models.UserRole)
	return r
}

// IsManager reports whether the caller has the MANAGER role
func IsManager(c *gin.Context) bool {
	return GetRole(c) == models.RoleManager
}

func setIdentity(c *gin.Context, userID uint64, username string, role models.UserRole) {
	c.Set(constants.ContextKeyUserID, userID)
	c.Set(constants.ContextKeyUsername, username)
	c.Set(constants.ContextKeyRole, role)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func toUint64(v interface{}) (uint64, bool) {
	switch v := v.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
