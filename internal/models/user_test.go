package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseUserRole(t *testing.T) {
	role, ok := ParseUserRole("staff-developer")
	assert.True(t, ok)
	assert.Equal(t, RoleStaffDeveloper, role)

	role, ok = ParseUserRole("Manager")
	assert.True(t, ok)
	assert.Equal(t, RoleManager, role)

	_, ok = ParseUserRole("ADMIN")
	assert.False(t, ok)
}

func TestUserRole_DisplayName(t *testing.T) {
	assert.Equal(t, "Manager", RoleManager.DisplayName())
	assert.Equal(t, "Staff - Coordinator", RoleStaffCoordinator.DisplayName())
	assert.Equal(t, "UNKNOWN", UserRole("UNKNOWN").DisplayName())
	assert.Len(t, Roles(), 6)
}

func TestUser_RoleChecks(t *testing.T) {
	manager := User{Role: RoleManager}
	assert.True(t, manager.IsManager())
	assert.False(t, manager.IsStaff())
	assert.True(t, manager.CanAssignTasks())

	for _, role := range Roles()[1:] {
		staff := User{Role: role}
		assert.False(t, staff.IsManager(), role)
		assert.True(t, staff.IsStaff(), role)
		assert.False(t, staff.CanAssignTasks(), role)
	}
}

func TestPasswordResetToken_IsUsable(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	token := PasswordResetToken{ExpiresAt: now.Add(30 * time.Minute)}
	assert.True(t, token.IsUsable(now))
	assert.False(t, token.IsExpired(now))

	token.Used = true
	assert.False(t, token.IsUsable(now))

	expired := PasswordResetToken{ExpiresAt: now}
	assert.True(t, expired.IsExpired(now))
	assert.False(t, expired.IsUsable(now))
}
