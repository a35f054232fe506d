package handlers

import (
	"testing"

	"github.com/lucymaru126/montage/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAssembleFeed(t *testing.T) {
	post1 := models.Post{ID: primitive.NewObjectID(), AuthorID: 1, Content: "first"}
	post2 := models.Post{ID: primitive.NewObjectID(), AuthorID: 2, Content: "second"}
	posts := []models.Post{post1, post2}

	profiles := map[uint]models.Profile{
		1: {ID: 1, Username: "alice"},
		2: {ID: 2, Username: "bob"},
		3: {ID: 3, Username: "carol"},
	}
	likerIDs := map[string][]uint{
		post1.ID.Hex(): {2, 3},
	}
	comments := map[string][]models.Comment{
		post1.ID.Hex(): {
			{ID: 1, PostID: post1.ID.Hex(), UserID: 3, Content: "nice"},
		},
	}

	feed := assembleFeed(posts, profiles, likerIDs, comments, 3)

	require.Len(t, feed, 2)

	// Input order is preserved
	assert.Equal(t, "first", feed[0].Content)
	assert.Equal(t, "second", feed[1].Content)

	assert.Equal(t, "alice", feed[0].Author.Username)
	assert.Equal(t, 2, feed[0].LikeCount)
	assert.True(t, feed[0].IsLiked)
	require.Len(t, feed[0].Comments, 1)
	assert.Equal(t, "carol", feed[0].Comments[0].Author.Username)

	assert.Equal(t, "bob", feed[1].Author.Username)
	assert.Equal(t, 0, feed[1].LikeCount)
	assert.False(t, feed[1].IsLiked)
	assert.Empty(t, feed[1].Comments)
}

func TestAssembleFeedViewerNotAmongLikers(t *testing.T) {
	post := models.Post{ID: primitive.NewObjectID(), AuthorID: 1}
	likerIDs := map[string][]uint{post.ID.Hex(): {2}}

	feed := assembleFeed([]models.Post{post}, nil, likerIDs, nil, 5)

	require.Len(t, feed, 1)
	assert.Equal(t, 1, feed[0].LikeCount)
	assert.False(t, feed[0].IsLiked)
}

func TestAssembleFeedEmpty(t *testing.T) {
	feed := assembleFeed(nil, nil, nil, nil, 1)
	assert.Empty(t, feed)
}
