package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/activity-tracker-api/internal/auth"
	"github.com/yukikurage/activity-tracker-api/internal/constants"
	"github.com/yukikurage/activity-tracker-api/internal/models"
	"github.com/yukikurage/activity-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new staff account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if err := s.ensureUsernameFree(ctx, username, 0); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Avatar:       constants.DefaultAvatar,
		Role:         models.RoleStaffGeneral,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
// Identifier may be a username or an email address.
type LoginInput struct {
	Identifier string
	Password   string
}

// LoginResult is an authenticated user with a freshly signed bearer token.
type LoginResult struct {
	User  *models.User
	Token string
}

// Login verifies credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsernameOrEmail(ctx, strings.TrimSpace(input.Identifier))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &LoginResult{User: user, Token: token}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfileInput carries the editable profile fields.
// Avatar, when set, is the stored file name of a new upload.
type UpdateProfileInput struct {
	UserID       uint64
	Username     string
	Email        string
	Avatar       *string
	RemoveAvatar bool
}

// UpdateProfile changes the current user's name, email and avatar.
// A rename re-derives the cached assignee name on the user's activities.
func (s *AuthService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, ErrEmailRequired
	}

	user, err := s.GetUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if username != user.Username {
		if err := s.ensureUsernameFree(ctx, username, user.ID); err != nil {
			return nil, err
		}
	}
	if email != user.Email {
		if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
			return nil, err
		}
	}

	renamed := username != user.Username
	user.Username = username
	user.Email = email

	switch {
	case input.RemoveAvatar:
		user.Avatar = ""
	case input.Avatar != nil:
		user.Avatar = *input.Avatar
	}

	if err := s.userRepo.UpdateProfile(ctx, user, renamed); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

func (s *AuthService) ensureUsernameFree(ctx context.Context, username string, selfID uint64) error {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		if existing.ID != selfID {
			return ErrUsernameTaken
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	return nil
}

func (s *AuthService) ensureEmailFree(ctx context.Context, email string, selfID uint64) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		if existing.ID != selfID {
			return ErrEmailTaken
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}

func validateUsername(username string) error {
	n := len([]rune(username))
	if n < constants.MinUsernameLength || n > constants.MaxUsernameLength {
		return ErrUsernameInvalid
	}
	return nil
}
