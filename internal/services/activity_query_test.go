package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/activity-tracker-api/internal/models"
	"github.com/yukikurage/activity-tracker-api/internal/utils"
)

func TestListHistory_PagesPastActivities(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", models.RoleStaffGeneral)
	env.activityService.WithClock(fixedClock(time.Date(2024, time.June, 1, 12, 0, 0, 0, time.Local)))

	for i := 1; i <= 15; i++ {
		env.createActivity(t, "alice", models.NewDate(2024, time.May, i), models.ActivityStatusCompleted)
	}
	env.createActivity(t, "alice", models.NewDate(2024, time.June, 1), models.ActivityStatusPending)

	page, err := env.activityService.ListHistory(env.ctx, "alice", utils.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, int64(15), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "2024-05-15", page.Items[0].Date.String())

	page, err = env.activityService.ListHistory(env.ctx, "alice", utils.PageRequest{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, "2024-05-01", page.Items[4].Date.String())
}

func TestListOthersIncoming(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", models.RoleStaffGeneral)
	env.createUser(t, "bob", models.RoleStaffGeneral)

	env.createActivity(t, "alice", models.NewDate(2024, time.June, 5), models.ActivityStatusPending)
	env.createActivity(t, "bob", models.NewDate(2024, time.May, 31), models.ActivityStatusPending)
	env.createActivity(t, "bob", models.NewDate(2024, time.June, 1), models.ActivityStatusPending)
	env.createActivity(t, "bob", models.NewDate(2024, time.June, 3), models.ActivityStatusPending)

	page, err := env.activityService.ListOthersIncoming(env.ctx, "alice", models.NewDate(2024, time.June, 1), utils.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "2024-06-01", page.Items[0].Date.String())
	assert.Equal(t, "2024-06-03", page.Items[1].Date.String())
	for _, a := range page.Items {
		assert.Equal(t, "bob", a.AssignedUserName)
	}
}

func TestListByDateRange(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", models.RoleStaffGeneral)
	env.createUser(t, "bob", models.RoleStaffGeneral)

	env.createActivity(t, "alice", models.NewDate(2024, time.June, 1), models.ActivityStatusPending)
	env.createActivity(t, "bob", models.NewDate(2024, time.June, 10), models.ActivityStatusPending)
	env.createActivity(t, "alice", models.NewDate(2024, time.July, 1), models.ActivityStatusPending)

	start := models.NewDate(2024, time.June, 1)
	end := models.NewDate(2024, time.June, 30)

	all, err := env.activityService.ListByDateRange(env.ctx, start, end)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := env.activityService.ListByAssigneeAndDateRange(env.ctx, "alice", start, end)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	reversed, err := env.activityService.ListByDateRange(env.ctx, end, start)
	require.NoError(t, err)
	assert.NotNil(t, reversed)
	assert.Empty(t, reversed)
}

func TestListByStatusAndDate(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", models.RoleStaffGeneral)
	env.createUser(t, "bob", models.RoleStaffGeneral)
	day := models.NewDate(2024, time.June, 1)

	env.createActivity(t, "alice", day, models.ActivityStatusInProgress)
	env.createActivity(t, "bob", day, models.ActivityStatusInProgress)
	env.createActivity(t, "bob", day.AddDays(1), models.ActivityStatusPending)

	inProgress, err := env.activityService.ListByStatus(env.ctx, models.ActivityStatusInProgress)
	require.NoError(t, err)
	assert.Len(t, inProgress, 2)

	page, err := env.activityService.ListByAssigneeAndStatus(env.ctx, "bob", models.ActivityStatusInProgress, utils.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)

	_, err = env.activityService.ListByStatus(env.ctx, "DONE")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	onDay, err := env.activityService.ListByDate(env.ctx, day)
	require.NoError(t, err)
	assert.Len(t, onDay, 2)

	others, err := env.activityService.ListOthersByDatePaged(env.ctx, "alice", day, utils.PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, others.Items, 1)
	assert.Equal(t, "bob", others.Items[0].AssignedUserName)

	count, err := env.activityService.CountByStatus(env.ctx, models.ActivityStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestFindPage_InvalidPage(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.activityService.ListByAssigneePaged(env.ctx, "alice", utils.PageRequest{Page: -1, Size: 10})
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, err = env.activityService.ListByAssigneePaged(env.ctx, "alice", utils.PageRequest{Page: 0, Size: 0})
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestListByAssigneePaged_HugePageIndexIsEmpty(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice", models.RoleStaffGeneral)
	for i := 1; i <= 3; i++ {
		env.createActivity(t, "alice", models.NewDate(2024, time.June, i), models.ActivityStatusPending)
	}

	page, err := env.activityService.ListByAssigneePaged(env.ctx, "alice", utils.PageRequest{Page: math.MaxInt / 2, Size: 4})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListByAssignee_EmptyIsNonNil(t *testing.T) {
	env := setupTestEnv(t)

	activities, err := env.activityService.ListByAssignee(env.ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, activities)
	assert.Empty(t, activities)
}
