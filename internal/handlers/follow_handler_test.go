package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/lucymaru126/montage/internal/models"
	"github.com/lucymaru126/montage/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type followFixture struct {
	handler   *FollowHandler
	db        *gorm.DB
	notifRepo repositories.NotificationRepository
	alice     models.Profile
	bob       models.Profile
}

func setupFollowFixture(t *testing.T) *followFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Profile{}, &models.Follow{}, &models.Notification{}))

	profileRepo := repositories.NewPostgresProfileRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	notifRepo := repositories.NewPostgresNotificationRepository(db)

	alice := models.Profile{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, db.Create(&alice).Error)
	bob := models.Profile{Username: "bob", Email: "bob@example.com"}
	require.NoError(t, db.Create(&bob).Error)

	return &followFixture{
		handler:   NewFollowHandler(followRepo, profileRepo, notifRepo),
		db:        db,
		notifRepo: notifRepo,
		alice:     alice,
		bob:       bob,
	}
}

// authedRequest builds an Echo context carrying the given user's claims,
// as the JWT middleware would
func authedRequest(method, path string, userID uint, username string, paramName, paramValue string) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{
			UserID:           userID,
			Username:         username,
			RegisteredClaims: jwt.RegisteredClaims{},
		})
	}
	if paramName != "" {
		c.SetParamNames(paramName)
		c.SetParamValues(paramValue)
	}
	return c, rec, e
}

func TestFollowUserEmitsNotificationOnce(t *testing.T) {
	f := setupFollowFixture(t)

	c, rec, e := authedRequest(http.MethodPost, "/users/2/follow", f.alice.ID, "alice", "id", "2")
	if err := f.handler.FollowUser(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	require.Equal(t, http.StatusOK, rec.Code)

	notifications, total, err := f.notifRepo.GetByRecipientID(f.bob.ID, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, models.NotificationFollow, notifications[0].Kind)
	assert.Equal(t, f.alice.ID, notifications[0].ActorID)

	// Re-following succeeds but does not notify again
	c, rec, e = authedRequest(http.MethodPost, "/users/2/follow", f.alice.ID, "alice", "id", "2")
	if err := f.handler.FollowUser(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	require.Equal(t, http.StatusOK, rec.Code)

	_, total, err = f.notifRepo.GetByRecipientID(f.bob.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestFollowUserSelfRejected(t *testing.T) {
	f := setupFollowFixture(t)

	c, rec, e := authedRequest(http.MethodPost, "/users/1/follow", f.alice.ID, "alice", "id", "1")
	if err := f.handler.FollowUser(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFollowUserTargetMissing(t *testing.T) {
	f := setupFollowFixture(t)

	c, rec, e := authedRequest(http.MethodPost, "/users/99/follow", f.alice.ID, "alice", "id", "99")
	if err := f.handler.FollowUser(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFollowUserUnauthenticated(t *testing.T) {
	f := setupFollowFixture(t)

	c, rec, e := authedRequest(http.MethodPost, "/users/2/follow", 0, "", "id", "2")
	if err := f.handler.FollowUser(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnfollowIdempotent(t *testing.T) {
	f := setupFollowFixture(t)

	// Unfollowing someone never followed still succeeds
	c, rec, e := authedRequest(http.MethodDelete, "/users/2/follow", f.alice.ID, "alice", "id", "2")
	if err := f.handler.UnfollowUser(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	assert.Equal(t, http.StatusOK, rec.Code)
}
