package repositories

import (
	"time"

	"github.com/lucymaru126/montage/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for post and story like edges.
// Adds are idempotent: inserting an edge that already exists reports
// inserted=false and no error, so a double-click can never surface a
// duplicate-key failure or create two edges.
type LikeRepository interface {
	AddPostLike(postID string, userID uint) (inserted bool, err error)
	RemovePostLike(postID string, userID uint) error
	HasPostLike(postID string, userID uint) (bool, error)
	CountPostLikes(postID string) (int64, error)
	GetPostLikerIDs(postIDs []string) (map[string][]uint, error)

	AddStoryLike(storyID string, userID uint) (inserted bool, err error)
	RemoveStoryLike(storyID string, userID uint) error
	HasStoryLike(storyID string, userID uint) (bool, error)
	GetStoryLikerIDs(storyIDs []string) (map[string][]uint, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// AddPostLike inserts a like edge, tolerating duplicates
func (r *PostgresLikeRepository) AddPostLike(postID string, userID uint) (bool, error) {
	like := models.PostLike{PostID: postID, UserID: userID, CreatedAt: time.Now()}
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RemovePostLike deletes a like edge; removing an absent edge is a no-op
func (r *PostgresLikeRepository) RemovePostLike(postID string, userID uint) error {
	return r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{}).Error
}

// HasPostLike checks whether a user has liked a post
func (r *PostgresLikeRepository) HasPostLike(postID string, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.PostLike{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountPostLikes returns the like count for a post
func (r *PostgresLikeRepository) CountPostLikes(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetPostLikerIDs returns liker ids for a set of posts in one query,
// grouped by post id
func (r *PostgresLikeRepository) GetPostLikerIDs(postIDs []string) (map[string][]uint, error) {
	result := make(map[string][]uint)
	if len(postIDs) == 0 {
		return result, nil
	}
	var likes []models.PostLike
	if err := r.db.Where("post_id IN ?", postIDs).Find(&likes).Error; err != nil {
		return nil, err
	}
	for _, l := range likes {
		result[l.PostID] = append(result[l.PostID], l.UserID)
	}
	return result, nil
}

// AddStoryLike inserts a story like edge, tolerating duplicates
func (r *PostgresLikeRepository) AddStoryLike(storyID string, userID uint) (bool, error) {
	like := models.StoryLike{StoryID: storyID, UserID: userID, CreatedAt: time.Now()}
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RemoveStoryLike deletes a story like edge; absent edge is a no-op
func (r *PostgresLikeRepository) RemoveStoryLike(storyID string, userID uint) error {
	return r.db.Where("story_id = ? AND user_id = ?", storyID, userID).Delete(&models.StoryLike{}).Error
}

// HasStoryLike checks whether a user has liked a story
func (r *PostgresLikeRepository) HasStoryLike(storyID string, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.StoryLike{}).Where("story_id = ? AND user_id = ?", storyID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetStoryLikerIDs returns liker ids for a set of stories, grouped by story id
func (r *PostgresLikeRepository) GetStoryLikerIDs(storyIDs []string) (map[string][]uint, error) {
	result := make(map[string][]uint)
	if len(storyIDs) == 0 {
		return result, nil
	}
	var likes []models.StoryLike
	if err := r.db.Where("story_id IN ?", storyIDs).Find(&likes).Error; err != nil {
		return nil, err
	}
	for _, l := range likes {
		result[l.StoryID] = append(result[l.StoryID], l.UserID)
	}
	return result, nil
}
