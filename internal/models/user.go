package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleManager          UserRole = "MANAGER"
	RoleStaffGeneral     UserRole = "STAFF_GENERAL"
	RoleStaffDesigner    UserRole = "STAFF_DESIGNER"
	RoleStaffDeveloper   UserRole = "STAFF_DEVELOPER"
	RoleStaffAnalyst     UserRole = "STAFF_ANALYST"
	RoleStaffCoordinator UserRole = "STAFF_COORDINATOR"
)

var roleDisplayNames = map[UserRole]string{
	RoleManager:          "Manager",
	RoleStaffGeneral:     "Staff - General",
	RoleStaffDesigner:    "Staff - Designer",
	RoleStaffDeveloper:   "Staff - Developer",
	RoleStaffAnalyst:     "Staff - Analyst",
	RoleStaffCoordinator: "Staff - Coordinator",
}

// Roles lists every role in declaration order.
func Roles() []UserRole {
	return []UserRole{
		RoleManager,
		RoleStaffGeneral,
		RoleStaffDesigner,
		RoleStaffDeveloper,
		RoleStaffAnalyst,
		RoleStaffCoordinator,
	}
}

// DisplayName returns the human readable role label.
func (r UserRole) DisplayName() string {
	if name, ok := roleDisplayNames[r]; ok {
		return name
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, ok := roleDisplayNames[r]
	return ok
}

// ParseUserRole accepts a role name in any case, with '-' or ' ' in place of '_'.
func ParseUserRole(s string) (UserRole, bool) {
	role := UserRole(normalizeEnum(s))
	return role, role.IsValid()
}

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Avatar       string         `gorm:"type:varchar(255)" json:"avatar"`
	Projects     int            `gorm:"not null;default:0" json:"projects"`
	Tasks        int            `gorm:"not null;default:0" json:"tasks"`
	Completed    int            `gorm:"not null;default:0" json:"completed"`
	Role         UserRole       `gorm:"type:varchar(30);not null;default:'STAFF_GENERAL'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func (u *User) IsStaff() bool {
	return u.Role != RoleManager && u.Role.IsValid()
}

// CanAssignTasks reports whether the user may create, edit or delete other users' activities.
func (u *User) CanAssignTasks() bool {
	return u.IsManager()
}

func normalizeEnum(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}
