package handlers

import (
	"net/http"
	"testing"

	"github.com/lucymaru126/montage/internal/models"
	"github.com/lucymaru126/montage/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAdminFixture(t *testing.T) (*AdminHandler, *gorm.DB, models.Profile, models.Profile) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Profile{}))

	admin := models.Profile{Username: "admin", Email: "admin@example.com", IsAdmin: true}
	require.NoError(t, db.Create(&admin).Error)
	user := models.Profile{Username: "user", Email: "user@example.com"}
	require.NoError(t, db.Create(&user).Error)

	return NewAdminHandler(repositories.NewPostgresProfileRepository(db)), db, admin, user
}

func TestBanUserAsAdmin(t *testing.T) {
	h, db, admin, user := setupAdminFixture(t)

	c, rec, e := authedRequest(http.MethodPost, "/admin/users/2/ban", admin.ID, "admin", "id", "2")
	if err := h.BanUser(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	require.Equal(t, http.StatusOK, rec.Code)

	var banned models.Profile
	require.NoError(t, db.First(&banned, user.ID).Error)
	assert.True(t, banned.IsBanned)

	// Lifting the ban restores the account
	c, rec, e = authedRequest(http.MethodDelete, "/admin/users/2/ban", admin.ID, "admin", "id", "2")
	if err := h.UnbanUser(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, db.First(&banned, user.ID).Error)
	assert.False(t, banned.IsBanned)
}

func TestBanUserForbiddenForNonAdmin(t *testing.T) {
	h, _, _, user := setupAdminFixture(t)

	c, rec, e := authedRequest(http.MethodPost, "/admin/users/1/ban", user.ID, "user", "id", "1")
	if err := h.BanUser(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestVerifyUser(t *testing.T) {
	h, db, admin, user := setupAdminFixture(t)

	c, rec, e := authedRequest(http.MethodPost, "/admin/users/2/verify", admin.ID, "admin", "id", "2")
	if err := h.VerifyUser(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	require.Equal(t, http.StatusOK, rec.Code)

	var verified models.Profile
	require.NoError(t, db.First(&verified, user.ID).Error)
	assert.True(t, verified.IsVerified)
}

func TestBanUserMissingTarget(t *testing.T) {
	h, _, admin, _ := setupAdminFixture(t)

	c, rec, e := authedRequest(http.MethodPost, "/admin/users/99/ban", admin.ID, "admin", "id", "99")
	if err := h.BanUser(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
