package repositories

import (
	"testing"
	"time"

	"github.com/lucymaru126/montage/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCommentsByPostIDChronological(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresCommentRepository(db)

	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	// Inserted out of order on purpose
	for _, c := range []models.Comment{
		{PostID: "post1", UserID: 2, Content: "second", CreatedAt: base.Add(time.Minute)},
		{PostID: "post1", UserID: 1, Content: "first", CreatedAt: base},
		{PostID: "post1", UserID: 3, Content: "third", CreatedAt: base.Add(2 * time.Minute)},
	} {
		comment := c
		require.NoError(t, repo.CreateComment(&comment))
	}

	comments, err := repo.GetCommentsByPostID("post1")
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
	assert.Equal(t, "third", comments[2].Content)
}

func TestGetCommentsByPostIDsBatched(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresCommentRepository(db)

	now := time.Now()
	require.NoError(t, repo.CreateComment(&models.Comment{PostID: "post1", UserID: 1, Content: "a", CreatedAt: now}))
	require.NoError(t, repo.CreateComment(&models.Comment{PostID: "post2", UserID: 2, Content: "b", CreatedAt: now}))
	require.NoError(t, repo.CreateComment(&models.Comment{PostID: "post1", UserID: 3, Content: "c", CreatedAt: now.Add(time.Second)}))

	grouped, err := repo.GetCommentsByPostIDs([]string{"post1", "post2", "post3"})
	require.NoError(t, err)
	assert.Len(t, grouped["post1"], 2)
	assert.Len(t, grouped["post2"], 1)
	assert.Empty(t, grouped["post3"])
	assert.Equal(t, "a", grouped["post1"][0].Content)

	empty, err := repo.GetCommentsByPostIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
