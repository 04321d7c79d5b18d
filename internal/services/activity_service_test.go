package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/activity-tracker-api/internal/constants"
	"github.com/yukikurage/activity-tracker-api/internal/models"
)

func TestCreateActivity_Defaults(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", models.RoleStaffGeneral)
	env.createUser(t, "boss", models.RoleManager)

	activity, err := env.activityService.CreateActivity(env.ctx, CreateActivityInput{
		AssignedUser: "alice",
		AssignedBy:   "boss",
		Date:         models.NewDate(2024, time.June, 1),
		Description:  "  Write report  ",
	})
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultActivityTitle, activity.Title)
	assert.Equal(t, "Write report", activity.Description)
	assert.Equal(t, models.ActivityStatusPending, activity.Status)
	assert.Equal(t, models.ActivityPriorityMedium, activity.Priority)
	assert.Equal(t, "alice", activity.AssignedUserName)
	assert.Equal(t, "boss", activity.AssignerName())
}

func TestCreateActivity_UnknownAssigneeWritesNothing(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.activityService.CreateActivity(env.ctx, CreateActivityInput{
		AssignedUser: "ghost",
		Date:         models.NewDate(2024, time.June, 1),
		Description:  "Nobody home",
	})
	assert.ErrorIs(t, err, ErrAssigneeNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := env.activityService.Count(env.ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateActivity_Validation(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", models.RoleStaffGeneral)
	date := models.NewDate(2024, time.June, 1)

	tests := []struct {
		name  string
		input CreateActivityInput
		want  error
	}{
		{"missing assignee", CreateActivityInput{Date: date, Description: "x"}, ErrAssigneeRequired},
		{"missing date", CreateActivityInput{AssignedUser: "alice", Description: "x"}, ErrDateRequired},
		{"blank description", CreateActivityInput{AssignedUser: "alice", Date: date, Description: "   "}, ErrDescriptionRequired},
		{"bad status", CreateActivityInput{AssignedUser: "alice", Date: date, Description: "x", Status: "DONE"}, ErrInvalidStatus},
		{"bad priority", CreateActivityInput{AssignedUser: "alice", Date: date, Description: "x", Priority: "URGENT"}, ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.activityService.CreateActivity(env.ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestAssignTask_ParsesRawStrings(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", models.RoleStaffGeneral)
	env.createUser(t, "boss", models.RoleManager)

	activity, err := env.activityService.AssignTask(env.ctx, AssignTaskInput{
		ManagerUsername: "boss",
		AssignedUser:    "alice",
		Title:           "Deploy",
		Date:            models.NewDate(2024, time.June, 1),
		Time:            "10:00",
		Description:     "Ship it",
		Status:          "in-progress",
		Priority:        "high",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActivityStatusInProgress, activity.Status)
	assert.Equal(t, models.ActivityPriorityHigh, activity.Priority)
	assert.Equal(t, "10:00", activity.TimeOfDay)

	_, err = env.activityService.AssignTask(env.ctx, AssignTaskInput{
		ManagerUsername: "boss",
		AssignedUser:    "alice",
		Date:            models.NewDate(2024, time.June, 1),
		Description:     "Ship it",
		Status:          "finished",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateActivity_UnknownAssigneeWritesNothing(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", models.RoleStaffGeneral)
	created := env.createActivity(t, "alice", models.NewDate(2024, time.June, 1), models.ActivityStatusPending)

	title := "Renamed"
	_, err := env.activityService.UpdateActivity(env.ctx, created.ID, UpdateActivityInput{
		AssignedUser: "ghost",
		Date:         models.NewDate(2024, time.June, 9),
		Description:  "Changed",
		Status:       models.ActivityStatusCompleted,
		Title:        &title,
	})
	assert.ErrorIs(t, err, ErrAssigneeNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	stored, err := env.activities.FindByID(env.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.AssignedUserName)
	assert.Equal(t, created.AssignedUserID, stored.AssignedUserID)
	assert.Equal(t, created.Title, stored.Title)
	assert.Equal(t, created.Description, stored.Description)
	assert.Equal(t, "2024-06-01", stored.Date.String())
	assert.Equal(t, models.ActivityStatusPending, stored.Status)
}

func TestUpdateActivity_ReassignsAndKeepsTitle(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", models.RoleStaffGeneral)
	env.createUser(t, "bob", models.RoleStaffDeveloper)
	created := env.createActivity(t, "alice", models.NewDate(2024, time.June, 1), models.ActivityStatusPending)

	updated, err := env.activityService.UpdateActivity(env.ctx, created.ID, UpdateActivityInput{
		AssignedUser: "bob",
		Date:         models.NewDate(2024, time.June, 2),
		Description:  "Handed over",
		Status:       models.ActivityStatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", updated.AssignedUserName)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, "2024-06-02", updated.Date.String())
	require.NotNil(t, updated.AssignedUser)
	assert.Equal(t, "bob", updated.AssignedUser.Username)

	blank := " "
	_, err = env.activityService.UpdateActivity(env.ctx, created.ID, UpdateActivityInput{
		AssignedUser: "bob",
		Date:         models.NewDate(2024, time.June, 2),
		Description:  "x",
		Title:        &blank,
	})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = env.activityService.UpdateActivity(env.ctx, 999, UpdateActivityInput{
		AssignedUser: "bob",
		Date:         models.NewDate(2024, time.June, 2),
		Description:  "x",
	})
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestDeleteActivity(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", models.RoleStaffGeneral)
	created := env.createActivity(t, "alice", models.NewDate(2024, time.June, 1), models.ActivityStatusPending)

	deleted, err := env.activityService.DeleteActivity(env.ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = env.activityService.DeleteActivity(env.ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = env.activityService.GetActivity(env.ctx, created.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestParseHelpers(t *testing.T) {
	status, err := ParseStatus("", true)
	require.NoError(t, err)
	assert.Equal(t, models.ActivityStatusPending, status)

	_, err = ParseStatus("", false)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	priority, err := ParsePriority("", true)
	require.NoError(t, err)
	assert.Equal(t, models.ActivityPriorityMedium, priority)

	date, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", date.String())

	_, err = ParseDate("2023-02-29")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
