package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The view-edge methods live on PostgreSQL only, so they can be tested
// without a Mongo connection behind them.
func TestMarkViewedIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := &storyRepository{pgDB: db}

	require.NoError(t, repo.MarkViewed("story1", 1))
	// Viewing the same story again is a no-op
	require.NoError(t, repo.MarkViewed("story1", 1))
	require.NoError(t, repo.MarkViewed("story1", 2))

	viewers, err := repo.GetViewerIDs([]string{"story1"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 2}, viewers["story1"])
}

func TestGetViewedStoryIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := &storyRepository{pgDB: db}

	require.NoError(t, repo.MarkViewed("story1", 1))
	require.NoError(t, repo.MarkViewed("story2", 2))

	viewed, err := repo.GetViewedStoryIDs(1, []string{"story1", "story2"})
	require.NoError(t, err)
	assert.True(t, viewed["story1"])
	assert.False(t, viewed["story2"])
}

func TestGetViewerIDsBatched(t *testing.T) {
	db := setupTestDB(t)
	repo := &storyRepository{pgDB: db}

	require.NoError(t, repo.MarkViewed("story1", 1))
	require.NoError(t, repo.MarkViewed("story1", 2))
	require.NoError(t, repo.MarkViewed("story2", 3))

	viewers, err := repo.GetViewerIDs([]string{"story1", "story2", "story3"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 2}, viewers["story1"])
	assert.ElementsMatch(t, []uint{3}, viewers["story2"])
	assert.Empty(t, viewers["story3"])
}
