package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/lucymaru126/montage/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStoryNotFound is returned when a referenced story does not exist.
var ErrStoryNotFound = fmt.Errorf("story not found")

// StoryRepository defines the interface for story operations. Story
// documents live in MongoDB; view edges live in PostgreSQL.
type StoryRepository interface {
	CreateStory(ctx context.Context, story *models.Story) error
	GetStoryByID(ctx context.Context, id string) (*models.Story, error)
	GetActiveStories(ctx context.Context) ([]models.Story, error)
	MarkViewed(storyID string, userID uint) error
	GetViewedStoryIDs(userID uint, storyIDs []string) (map[string]bool, error)
	GetViewerIDs(storyIDs []string) (map[string][]uint, error)
}

type storyRepository struct {
	mongoCollection *mongo.Collection
	pgDB            *gorm.DB
}

// NewStoryRepository creates a StoryRepository over both stores
func NewStoryRepository(mongoDB *mongo.Database, pgDB *gorm.DB) StoryRepository {
	return &storyRepository{
		mongoCollection: mongoDB.Collection("stories"),
		pgDB:            pgDB,
	}
}

// CreateStory inserts a story with the fixed 24h TTL stamped at creation
func (r *storyRepository) CreateStory(ctx context.Context, story *models.Story) error {
	story.ID = primitive.NewObjectID()
	story.CreatedAt = time.Now()
	story.ExpiresAt = story.CreatedAt.Add(models.StoryTTL)
	_, err := r.mongoCollection.InsertOne(ctx, story)
	return err
}

// GetStoryByID retrieves a story by ID, expired or not; callers that only
// want visible stories check ActiveAt themselves.
func (r *storyRepository) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid story ID format: %w", err)
	}
	var story models.Story
	err = r.mongoCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&story)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	return &story, nil
}

// GetActiveStories retrieves stories with expires_at strictly greater
// than now, newest first. Expired stories are never deleted here; expiry
// is purely a read-time filter.
func (r *storyRepository) GetActiveStories(ctx context.Context) ([]models.Story, error) {
	filter := bson.M{"expires_at": bson.M{"$gt": time.Now()}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.mongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stories []models.Story
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// MarkViewed records a view edge; recording the same viewer twice is a no-op
func (r *storyRepository) MarkViewed(storyID string, userID uint) error {
	view := models.StoryView{StoryID: storyID, UserID: userID, ViewedAt: time.Now()}
	return r.pgDB.Clauses(clause.OnConflict{DoNothing: true}).Create(&view).Error
}

// GetViewedStoryIDs reports which of the given stories the user has seen
func (r *storyRepository) GetViewedStoryIDs(userID uint, storyIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(storyIDs) == 0 {
		return result, nil
	}
	var views []models.StoryView
	if err := r.pgDB.Where("user_id = ? AND story_id IN ?", userID, storyIDs).Find(&views).Error; err != nil {
		return nil, err
	}
	for _, v := range views {
		result[v.StoryID] = true
	}
	return result, nil
}

// GetViewerIDs returns viewer ids for a set of stories, grouped by story id
func (r *storyRepository) GetViewerIDs(storyIDs []string) (map[string][]uint, error) {
	result := make(map[string][]uint)
	if len(storyIDs) == 0 {
		return result, nil
	}
	var views []models.StoryView
	if err := r.pgDB.Where("story_id IN ?", storyIDs).Find(&views).Error; err != nil {
		return nil, err
	}
	for _, v := range views {
		result[v.StoryID] = append(result[v.StoryID], v.UserID)
	}
	return result, nil
}
