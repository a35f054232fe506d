package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/lucymaru126/montage/internal/models"
	"github.com/lucymaru126/montage/internal/repositories"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	storyRepository        repositories.StoryRepository
	profileRepository      repositories.ProfileRepository
	likeRepository         repositories.LikeRepository
	conversationRepository repositories.ConversationRepository
	notificationRepository repositories.NotificationRepository
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(
	storyRepo repositories.StoryRepository,
	profileRepo repositories.ProfileRepository,
	likeRepo repositories.LikeRepository,
	conversationRepo repositories.ConversationRepository,
	notifRepo repositories.NotificationRepository,
) *StoryHandler {
	return &StoryHandler{
		storyRepository:        storyRepo,
		profileRepository:      profileRepo,
		likeRepository:         likeRepo,
		conversationRepository: conversationRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.GET("/stories", h.GetStories)
	g.POST("/stories", h.CreateStory)
	g.POST("/stories/:id/view", h.ViewStory)
	g.POST("/stories/:id/replies", h.ReplyToStory)
}

// StoryItem is a story joined with its viewer and liker edge sets
type StoryItem struct {
	models.Story
	ViewerIDs []uint `json:"viewer_ids"`
	LikerIDs  []uint `json:"liker_ids"`
	Viewed    bool   `json:"viewed"`
}

// StoryGroup is one author's active stories for the tray. HasUnseen is
// true when at least one of the author's active stories lacks the
// requesting viewer in its viewer set; it drives the unseen-ring
// indicator.
type StoryGroup struct {
	Author    models.ProfileCompact `json:"author"`
	Stories   []StoryItem           `json:"stories"`
	HasUnseen bool                  `json:"has_unseen"`
}

// groupStoriesByAuthor folds an already-filtered active story list into
// per-author tray groups, preserving the newest-first order of first
// appearance. All joins come from pre-fetched maps.
func groupStoriesByAuthor(
	stories []models.Story,
	profiles map[uint]models.Profile,
	viewerIDs map[string][]uint,
	likerIDs map[string][]uint,
	viewed map[string]bool,
) []StoryGroup {
	groups := make([]StoryGroup, 0)
	indexByAuthor := make(map[uint]int)

	for _, s := range stories {
		storyID := s.ID.Hex()
		item := StoryItem{
			Story:     s,
			ViewerIDs: viewerIDs[storyID],
			LikerIDs:  likerIDs[storyID],
			Viewed:    viewed[storyID],
		}

		idx, ok := indexByAuthor[s.AuthorID]
		if !ok {
			group := StoryGroup{}
			if author, found := profiles[s.AuthorID]; found {
				group.Author = author.ToCompact()
			}
			groups = append(groups, group)
			idx = len(groups) - 1
			indexByAuthor[s.AuthorID] = idx
		}
		groups[idx].Stories = append(groups[idx].Stories, item)
		if !item.Viewed {
			groups[idx].HasUnseen = true
		}
	}
	return groups
}

// GetStories returns the active-story tray grouped by author
func (h *StoryHandler) GetStories(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	stories, err := h.storyRepository.GetActiveStories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	storyIDs := make([]string, len(stories))
	authorIDSet := make(map[uint]bool)
	for i, s := range stories {
		storyIDs[i] = s.ID.Hex()
		authorIDSet[s.AuthorID] = true
	}
	authorIDs := make([]uint, 0, len(authorIDSet))
	for id := range authorIDSet {
		authorIDs = append(authorIDs, id)
	}

	profiles, err := h.profileRepository.GetProfilesByIDs(authorIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	viewerIDs, err := h.storyRepository.GetViewerIDs(storyIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	likerIDs, err := h.likeRepository.GetStoryLikerIDs(storyIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	viewed := make(map[string]bool)
	if currentUserID > 0 {
		viewed, err = h.storyRepository.GetViewedStoryIDs(currentUserID, storyIDs)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	groups := groupStoriesByAuthor(stories, profiles, viewerIDs, likerIDs, viewed)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"stories": groups}})
}

// CreateStory creates a new story with the fixed 24h TTL
func (h *StoryHandler) CreateStory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	content := strings.TrimSpace(req.Content)
	kind, ok := models.ClassifyStory(content, req.ImageURL, req.VideoURL)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "A story needs text, an image or a video")
	}

	story := &models.Story{
		AuthorID:    currentUserID,
		Kind:        kind,
		Content:     content,
		ImageURL:    req.ImageURL,
		VideoURL:    req.VideoURL,
		TextOverlay: req.TextOverlay,
		TextColor:   req.TextColor,
	}
	if err := h.storyRepository.CreateStory(c.Request().Context(), story); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, story)
}

// ViewStory records the current user in the story's viewer set;
// repeated views are no-ops
func (h *StoryHandler) ViewStory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	storyID := c.Param("id")

	if _, err := h.storyRepository.GetStoryByID(c.Request().Context(), storyID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Story not found")
	}

	if err := h.storyRepository.MarkViewed(storyID, currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ReplyToStory appends a reply and delivers it as a direct message to
// the story's author in one transaction, then notifies the author
func (h *StoryHandler) ReplyToStory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	storyID := c.Param("id")

	var req models.ReplyToStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	story, err := h.storyRepository.GetStoryByID(c.Request().Context(), storyID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Story not found")
	}
	if !story.ActiveAt(time.Now()) {
		return echo.NewHTTPError(http.StatusNotFound, "Story has expired")
	}
	if story.AuthorID == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot reply to your own story")
	}

	reply := &models.StoryReply{
		StoryID: storyID,
		UserID:  currentUserID,
		Content: req.Content,
	}
	if err := h.conversationRepository.AppendStoryReply(reply, story.AuthorID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	actor, err := h.profileRepository.GetProfileByID(currentUserID)
	if err == nil {
		notif := &models.Notification{
			Kind:        models.NotificationStoryReply,
			ActorID:     currentUserID,
			RecipientID: story.AuthorID,
			TargetID:    storyID,
			TargetType:  "story",
			Message:     actor.Username + " replied to your story",
		}
		h.notificationRepository.CreateNotification(notif)
	}

	return c.JSON(http.StatusCreated, reply)
}
