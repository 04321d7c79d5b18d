package dto

import (
	"github.com/yukikurage/activity-tracker-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID              uint64          `json:"id"`
	Username        string          `json:"username"`
	Email           string          `json:"email"`
	Avatar          string          `json:"avatar"`
	Projects        int             `json:"projects"`
	Tasks           int             `json:"tasks"`
	Completed       int             `json:"completed"`
	Role            models.UserRole `json:"role"`
	RoleDisplayName string          `json:"roleDisplayName"`
	IsManager       bool            `json:"isManager"`
}

// StaffDTO is the compact user entry offered when assigning tasks
type StaffDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ToUserDTO converts a user model to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:              user.ID,
		Username:        user.Username,
		Email:           user.Email,
		Avatar:          user.Avatar,
		Projects:        user.Projects,
		Tasks:           user.Tasks,
		Completed:       user.Completed,
		Role:            user.Role,
		RoleDisplayName: user.Role.DisplayName(),
		IsManager:       user.IsManager(),
	}
}

func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}

// ToStaffDTOs converts users to staff entries with display role names
func ToStaffDTOs(users []models.User) []StaffDTO {
	dtos := make([]StaffDTO, len(users))
	for i, user := range users {
		dtos[i] = StaffDTO{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role.DisplayName(),
		}
	}
	return dtos
}
