package repositories

import (
	"github.com/lucymaru126/montage/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentsByPostID(postID string) ([]models.Comment, error)
	GetCommentsByPostIDs(postIDs []string) (map[string][]models.Comment, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentsByPostID retrieves all comments for a post in chronological order
func (r *PostgresCommentRepository) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("post_id = ?", postID).Order("created_at ASC, id ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentsByPostIDs retrieves comments for a set of posts in one query,
// grouped by post id, each group in chronological order. The feed read
// uses this instead of one round trip per post.
func (r *PostgresCommentRepository) GetCommentsByPostIDs(postIDs []string) (map[string][]models.Comment, error) {
	result := make(map[string][]models.Comment)
	if len(postIDs) == 0 {
		return result, nil
	}
	var comments []models.Comment
	if err := r.db.Where("post_id IN ?", postIDs).Order("created_at ASC, id ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	for _, c := range comments {
		result[c.PostID] = append(result[c.PostID], c)
	}
	return result, nil
}
