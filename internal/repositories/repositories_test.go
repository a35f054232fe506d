package repositories

import (
	"testing"

	"github.com/lucymaru126/montage/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory SQLite database migrated with
// every relational model
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Comment{},
		&models.PostLike{},
		&models.StoryLike{},
		&models.Follow{},
		&models.StoryView{},
		&models.StoryReply{},
		&models.Conversation{},
		&models.ConversationParticipant{},
		&models.Message{},
		&models.Notification{},
	))
	return db
}

func createTestProfile(t *testing.T, db *gorm.DB, username string) models.Profile {
	t.Helper()
	profile := models.Profile{
		Username: username,
		Email:    username + "@example.com",
		FullName: "Test " + username,
	}
	require.NoError(t, db.Create(&profile).Error)
	return profile
}
