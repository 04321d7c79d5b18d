package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/activity-tracker-api/internal/constants"
	"github.com/yukikurage/activity-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/activity-tracker-api/internal/errors"
	"github.com/yukikurage/activity-tracker-api/internal/middleware"
	"github.com/yukikurage/activity-tracker-api/internal/services"
)

const forgotPasswordMessage = "If an account with that email/username exists, password reset instructions have been sent to your email."

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService  *services.AuthService
	resetService *services.PasswordResetService
	files        *ProfileFiles
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, resetService *services.PasswordResetService, files *ProfileFiles) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		resetService: resetService,
		files:        files,
	}
}

// Register creates a new staff account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"userId":  user.ID,
		"user":    dto.ToUserDTO(*user),
	})
}

// Login authenticates by username or email, issues a bearer token and
// initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Identifier: req.Username,
		Password:   req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, result.User.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   result.Token,
		"user":    dto.ToUserDTO(*result.User),
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ForgotPassword always answers with the same message.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	type ForgotPasswordRequest struct {
		EmailOrUsername string `json:"emailOrUsername"`
	}

	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.EmailOrUsername) == "" {
		apierrors.BadRequest(c, "Email or username is required")
		return
	}

	if err := h.resetService.RequestReset(c.Request.Context(), req.EmailOrUsername); err != nil {
		logRequestError(c, "password reset request failed", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": forgotPasswordMessage,
	})
}

// ResetPassword redeems a reset token.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	type ResetPasswordRequest struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ok, err := h.resetService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !ok {
		apierrors.BadRequest(c, "Invalid or expired reset token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password has been reset successfully. You can now sign in with your new password.",
	})
}

// ValidateResetToken reports whether a reset token can still be used.
func (h *AuthHandler) ValidateResetToken(c *gin.Context) {
	valid, err := h.resetService.ValidateToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

// UpdateProfile changes the current user's name, email and avatar.
// Accepts multipart form fields username, email, avatar and removeProfilePicture.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	input := services.UpdateProfileInput{
		UserID:       userID,
		Username:     c.PostForm("username"),
		Email:        c.PostForm("email"),
		RemoveAvatar: c.PostForm("removeProfilePicture") == "true",
	}

	if !input.RemoveAvatar {
		if file, err := c.FormFile("avatar"); err == nil && file.Size > 0 {
			name, err := h.files.Save(c, file)
			if err != nil {
				respondUploadError(c, err)
				return
			}
			input.Avatar = &name
		}
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    dto.ToUserDTO(*user),
	})
}
