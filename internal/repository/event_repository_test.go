package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/activity-tracker-api/internal/models"
)

func TestEventRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	june1 := models.NewDate(2024, time.June, 1)
	june2 := models.NewDate(2024, time.June, 2)

	events := []*models.Event{
		{Title: "Team Lunch", Date: june2, Description: "Pizza"},
		{Title: "Standup", Date: june1, Description: "Daily sync"},
		{Title: "Retro", Date: june1, Description: "Sprint lunch review"},
	}
	for _, e := range events {
		require.NoError(t, repo.Create(ctx, e))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Retro", all[0].Title)
	assert.Equal(t, "Standup", all[1].Title)
	assert.Equal(t, "Team Lunch", all[2].Title)

	byDate, err := repo.ListByDate(ctx, june1)
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	found, err := repo.Search(ctx, "LUNCH")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Retro", found[0].Title)

	exists, err := repo.ExistsByID(ctx, events[0].ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.DeleteByID(ctx, events[0].ID))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
