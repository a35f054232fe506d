package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lucymaru126/montage/internal/models"
	"github.com/lucymaru126/montage/internal/repositories"
)

// LikeHandler handles toggle-like requests for posts and stories. A like
// is a membership edge, not a counter: the toggle flips edge presence,
// and racing duplicate inserts collapse into one edge with no error.
type LikeHandler struct {
	likeRepository         repositories.LikeRepository
	postRepository         repositories.PostRepository
	storyRepository        repositories.StoryRepository
	profileRepository      repositories.ProfileRepository
	notificationRepository repositories.NotificationRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(
	likeRepo repositories.LikeRepository,
	postRepo repositories.PostRepository,
	storyRepo repositories.StoryRepository,
	profileRepo repositories.ProfileRepository,
	notifRepo repositories.NotificationRepository,
) *LikeHandler {
	return &LikeHandler{
		likeRepository:         likeRepo,
		postRepository:         postRepo,
		storyRepository:        storyRepo,
		profileRepository:      profileRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/like", h.TogglePostLike)
	g.POST("/stories/:id/like", h.ToggleStoryLike)
}

func (h *LikeHandler) notify(kind string, actorID, recipientID uint, targetID, targetType, verb string) {
	// Only on edge insertion, never on removal, and never to oneself
	if actorID == recipientID {
		return
	}
	actor, err := h.profileRepository.GetProfileByID(actorID)
	if err != nil {
		return
	}
	notif := &models.Notification{
		Kind:        kind,
		ActorID:     actorID,
		RecipientID: recipientID,
		TargetID:    targetID,
		TargetType:  targetType,
		Message:     actor.Username + " " + verb,
	}
	h.notificationRepository.CreateNotification(notif)
}

// TogglePostLike flips the like edge for (current user, post)
func (h *LikeHandler) TogglePostLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("post_id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	hasLiked, err := h.likeRepository.HasPostLike(postID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	liked := false
	if hasLiked {
		if err := h.likeRepository.RemovePostLike(postID, currentUserID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	} else {
		inserted, err := h.likeRepository.AddPostLike(postID, currentUserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		liked = true
		if inserted {
			h.notify(models.NotificationLike, currentUserID, post.AuthorID, postID, "post", "liked your post")
		}
	}

	count, err := h.likeRepository.CountPostLikes(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"liked": liked, "like_count": count},
	})
}

// ToggleStoryLike flips the like edge for (current user, story)
func (h *LikeHandler) ToggleStoryLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	storyID := c.Param("id")

	story, err := h.storyRepository.GetStoryByID(c.Request().Context(), storyID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Story not found")
	}

	hasLiked, err := h.likeRepository.HasStoryLike(storyID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	liked := false
	if hasLiked {
		if err := h.likeRepository.RemoveStoryLike(storyID, currentUserID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	} else {
		inserted, err := h.likeRepository.AddStoryLike(storyID, currentUserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		liked = true
		if inserted {
			h.notify(models.NotificationStoryLike, currentUserID, story.AuthorID, storyID, "story", "liked your story")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"liked": liked},
	})
}
