package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPostLikeIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresLikeRepository(db)

	inserted, err := repo.AddPostLike("post1", 1)
	require.NoError(t, err)
	assert.True(t, inserted)

	// The duplicate insert is swallowed, not surfaced as an error
	inserted, err = repo.AddPostLike("post1", 1)
	require.NoError(t, err)
	assert.False(t, inserted)

	count, err := repo.CountPostLikes("post1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRemovePostLike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresLikeRepository(db)

	// Removing an absent edge is a no-op
	require.NoError(t, repo.RemovePostLike("post1", 1))

	_, err := repo.AddPostLike("post1", 1)
	require.NoError(t, err)

	has, err := repo.HasPostLike("post1", 1)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, repo.RemovePostLike("post1", 1))

	has, err = repo.HasPostLike("post1", 1)
	require.NoError(t, err)
	assert.False(t, has)

	count, err := repo.CountPostLikes("post1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGetPostLikerIDsBatched(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresLikeRepository(db)

	for _, userID := range []uint{1, 2, 3} {
		_, err := repo.AddPostLike("post1", userID)
		require.NoError(t, err)
	}
	_, err := repo.AddPostLike("post2", 2)
	require.NoError(t, err)

	likers, err := repo.GetPostLikerIDs([]string{"post1", "post2", "post3"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 2, 3}, likers["post1"])
	assert.ElementsMatch(t, []uint{2}, likers["post2"])
	assert.Empty(t, likers["post3"])

	empty, err := repo.GetPostLikerIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStoryLikeEdges(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresLikeRepository(db)

	inserted, err := repo.AddStoryLike("story1", 7)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.AddStoryLike("story1", 7)
	require.NoError(t, err)
	assert.False(t, inserted)

	has, err := repo.HasStoryLike("story1", 7)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, repo.RemoveStoryLike("story1", 7))
	has, err = repo.HasStoryLike("story1", 7)
	require.NoError(t, err)
	assert.False(t, has)
}
