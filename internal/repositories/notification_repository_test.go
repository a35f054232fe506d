package repositories

import (
	"testing"
	"time"

	"github.com/lucymaru126/montage/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestNotification(t *testing.T, repo NotificationRepository, actorID, recipientID uint, kind string) *models.Notification {
	t.Helper()
	notif := &models.Notification{
		Kind:        kind,
		ActorID:     actorID,
		RecipientID: recipientID,
		TargetID:    "target1",
		TargetType:  "post",
		Message:     "someone did something",
	}
	require.NoError(t, repo.CreateNotification(notif))
	return notif
}

func TestGetByRecipientIDPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	for i := 0; i < 5; i++ {
		createTestNotification(t, repo, 1, 10, models.NotificationLike)
	}
	// Another recipient's notification stays out of the page
	createTestNotification(t, repo, 1, 20, models.NotificationLike)

	notifications, total, err := repo.GetByRecipientID(10, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, notifications, 3)

	notifications, _, err = repo.GetByRecipientID(10, 2, 3)
	require.NoError(t, err)
	assert.Len(t, notifications, 2)
}

func TestUnreadCountAndMarkAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	createTestNotification(t, repo, 1, 10, models.NotificationFollow)
	createTestNotification(t, repo, 2, 10, models.NotificationComment)

	count, err := repo.GetUnreadCount(10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.MarkAllAsRead(10))

	count, err = repo.GetUnreadCount(10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMarkAsReadScopedToRecipient(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	notif := createTestNotification(t, repo, 1, 10, models.NotificationLike)

	// A different recipient cannot mark it
	err := repo.MarkAsRead(notif.ID, 20)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.MarkAsRead(notif.ID, 10))

	count, err := repo.GetUnreadCount(10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGetGroupedBuckets(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	now := time.Now()
	stamp := func(n *models.Notification, at time.Time) {
		require.NoError(t, db.Model(n).Update("created_at", at).Error)
	}

	todayNotif := createTestNotification(t, repo, 1, 10, models.NotificationLike)
	yesterdayNotif := createTestNotification(t, repo, 1, 10, models.NotificationComment)
	stamp(yesterdayNotif, now.AddDate(0, 0, -1))
	weekNotif := createTestNotification(t, repo, 1, 10, models.NotificationFollow)
	stamp(weekNotif, now.AddDate(0, 0, -4))
	oldNotif := createTestNotification(t, repo, 1, 10, models.NotificationStoryLike)
	stamp(oldNotif, now.AddDate(0, 0, -30))

	today, yesterday, thisWeek, older, err := repo.GetGrouped(10)
	require.NoError(t, err)

	require.Len(t, today, 1)
	assert.Equal(t, todayNotif.ID, today[0].ID)
	require.Len(t, yesterday, 1)
	assert.Equal(t, yesterdayNotif.ID, yesterday[0].ID)
	require.Len(t, thisWeek, 1)
	assert.Equal(t, weekNotif.ID, thisWeek[0].ID)
	require.Len(t, older, 1)
	assert.Equal(t, oldNotif.ID, older[0].ID)
}
