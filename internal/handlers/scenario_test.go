package handlers

import (
	"testing"

	"github.com/lucymaru126/montage/internal/models"
	"github.com/lucymaru126/montage/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Walks the core interaction loop across the relational repositories and
// the feed composition: alice posts, bob follows, likes and comments,
// and alice's feed view and notifications reflect all of it.
func TestAliceAndBobScenario(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Comment{},
		&models.PostLike{},
		&models.Follow{},
		&models.Notification{},
	))

	profileRepo := repositories.NewPostgresProfileRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	notifRepo := repositories.NewPostgresNotificationRepository(db)

	alice := models.Profile{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, db.Create(&alice).Error)
	bob := models.Profile{Username: "bob", Email: "bob@example.com"}
	require.NoError(t, db.Create(&bob).Error)

	// Alice publishes a post (document lives in Mongo; here only its id
	// and author matter to the relational edges)
	post := models.Post{ID: primitive.NewObjectID(), AuthorID: alice.ID, Content: "hello world"}
	postID := post.ID.Hex()

	// Bob follows alice
	inserted, err := followRepo.CreateFollow(bob.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, inserted)
	require.NoError(t, notifRepo.CreateNotification(&models.Notification{
		Kind: models.NotificationFollow, ActorID: bob.ID, RecipientID: alice.ID,
		TargetID: "2", TargetType: "user", Message: "bob started following you",
	}))

	// Bob likes and comments on the post
	inserted, err = likeRepo.AddPostLike(postID, bob.ID)
	require.NoError(t, err)
	require.True(t, inserted)
	require.NoError(t, notifRepo.CreateNotification(&models.Notification{
		Kind: models.NotificationLike, ActorID: bob.ID, RecipientID: alice.ID,
		TargetID: postID, TargetType: "post", Message: "bob liked your post",
	}))

	require.NoError(t, commentRepo.CreateComment(&models.Comment{
		PostID: postID, UserID: bob.ID, Content: "great post",
	}))
	require.NoError(t, notifRepo.CreateNotification(&models.Notification{
		Kind: models.NotificationComment, ActorID: bob.ID, RecipientID: alice.ID,
		TargetID: postID, TargetType: "post", Message: "bob commented on your post",
	}))

	// Alice's composed feed view of her own post
	likerIDs, err := likeRepo.GetPostLikerIDs([]string{postID})
	require.NoError(t, err)
	comments, err := commentRepo.GetCommentsByPostIDs([]string{postID})
	require.NoError(t, err)
	profiles, err := profileRepo.GetProfilesByIDs([]uint{alice.ID, bob.ID})
	require.NoError(t, err)

	feed := assembleFeed([]models.Post{post}, profiles, likerIDs, comments, alice.ID)
	require.Len(t, feed, 1)
	assert.Equal(t, "alice", feed[0].Author.Username)
	assert.Equal(t, 1, feed[0].LikeCount)
	assert.False(t, feed[0].IsLiked)
	require.Len(t, feed[0].Comments, 1)
	assert.Equal(t, "great post", feed[0].Comments[0].Content)
	assert.Equal(t, "bob", feed[0].Comments[0].Author.Username)

	// Bob's view of the same post shows his like
	feed = assembleFeed([]models.Post{post}, profiles, likerIDs, comments, bob.ID)
	assert.True(t, feed[0].IsLiked)

	// Alice has three unread notifications, all from bob
	count, err := notifRepo.GetUnreadCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	notifications, total, err := notifRepo.GetByRecipientID(alice.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	for _, n := range notifications {
		assert.Equal(t, bob.ID, n.ActorID)
	}

	// Follow status both ways
	following, err := followRepo.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, following)
	followers, err := followRepo.GetFollowersCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followers)
	followingCount, err := followRepo.GetFollowingCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), followingCount)
}
