package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxPostImages caps the image gallery attached to a single post.
const MaxPostImages = 10

// Post represents a feed post stored in MongoDB
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  uint               `json:"author_id" bson:"author_id"`
	Content   string             `json:"content" bson:"content"`
	Images    []string           `json:"images,omitempty" bson:"images,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// HasContent reports whether the post carries anything to display.
// A post with neither text nor images is rejected at creation.
func (p *Post) HasContent() bool {
	return p.Content != "" || len(p.Images) > 0
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string   `json:"content" validate:"max=2200"`
	Images  []string `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
}
