package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/lucymaru126/montage/internal/models"
	"github.com/lucymaru126/montage/internal/repositories"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	postRepository    repositories.PostRepository
	profileRepository repositories.ProfileRepository
	likeRepository    repositories.LikeRepository
	commentRepository repositories.CommentRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	profileRepo repositories.ProfileRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
) *FeedHandler {
	return &FeedHandler{
		postRepository:    postRepo,
		profileRepository: profileRepo,
		likeRepository:    likeRepo,
		commentRepository: commentRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// CommentView is a comment joined with its author's profile
type CommentView struct {
	models.Comment
	Author models.ProfileCompact `json:"author"`
}

// FeedPost is a post joined with author profile, like state and comments
type FeedPost struct {
	models.Post
	Author    models.ProfileCompact `json:"author"`
	LikeCount int                   `json:"like_count"`
	IsLiked   bool                  `json:"is_liked"`
	Comments  []CommentView         `json:"comments"`
}

// assembleFeed joins posts with pre-fetched profiles, like edges and
// comments. All inputs are batched maps keyed by id, so composition adds
// no further round trips regardless of feed size. Post order is
// preserved; comment order within a post is the chronological order the
// comment repository returns.
func assembleFeed(
	posts []models.Post,
	profiles map[uint]models.Profile,
	likerIDs map[string][]uint,
	comments map[string][]models.Comment,
	viewerID uint,
) []FeedPost {
	feed := make([]FeedPost, len(posts))
	for i, p := range posts {
		postID := p.ID.Hex()

		isLiked := false
		for _, likerID := range likerIDs[postID] {
			if likerID == viewerID {
				isLiked = true
				break
			}
		}

		postComments := comments[postID]
		commentViews := make([]CommentView, len(postComments))
		for j, cm := range postComments {
			view := CommentView{Comment: cm}
			if author, ok := profiles[cm.UserID]; ok {
				view.Author = author.ToCompact()
			}
			commentViews[j] = view
		}

		item := FeedPost{
			Post:      p,
			LikeCount: len(likerIDs[postID]),
			IsLiked:   isLiked,
			Comments:  commentViews,
		}
		if author, ok := profiles[p.AuthorID]; ok {
			item.Author = author.ToCompact()
		}
		feed[i] = item
	}
	return feed
}

// composeFeed fetches everything the given posts reference in three
// batched queries (likes, comments, then one profile query covering
// authors and commenters) and assembles the view models.
func (h *FeedHandler) composeFeed(posts []models.Post, viewerID uint) ([]FeedPost, error) {
	postIDs := make([]string, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID.Hex()
	}

	likerIDs, err := h.likeRepository.GetPostLikerIDs(postIDs)
	if err != nil {
		return nil, err
	}
	comments, err := h.commentRepository.GetCommentsByPostIDs(postIDs)
	if err != nil {
		return nil, err
	}

	profileIDSet := make(map[uint]bool)
	for _, p := range posts {
		profileIDSet[p.AuthorID] = true
	}
	for _, postComments := range comments {
		for _, cm := range postComments {
			profileIDSet[cm.UserID] = true
		}
	}
	profileIDs := make([]uint, 0, len(profileIDSet))
	for id := range profileIDSet {
		profileIDs = append(profileIDs, id)
	}
	profiles, err := h.profileRepository.GetProfilesByIDs(profileIDs)
	if err != nil {
		return nil, err
	}

	return assembleFeed(posts, profiles, likerIDs, comments, viewerID), nil
}

// GetFeed returns the global feed, newest first, with each post joined
// to its author, like state and comments
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	skip := int64((page - 1) * limit)
	posts, err := h.postRepository.GetAllPosts(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalItems, err := h.postRepository.CountPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	feed, err := h.composeFeed(posts, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(limit)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"posts": feed,
		},
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      totalItems,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}
