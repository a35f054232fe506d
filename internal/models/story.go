package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoryTTL is the fixed lifetime of a story after creation.
const StoryTTL = 24 * time.Hour

// StoryKind tags what a story is made of, instead of leaving callers to
// guess from which optional fields happen to be set.
type StoryKind string

const (
	StoryKindText  StoryKind = "text"
	StoryKindImage StoryKind = "image"
	StoryKindVideo StoryKind = "video"
	StoryKindMixed StoryKind = "mixed"
)

// ClassifyStory derives the story kind from its content fields. ok is
// false when every field is empty, in which case the story is rejected.
func ClassifyStory(content, imageURL, videoURL string) (StoryKind, bool) {
	set := 0
	if content != "" {
		set++
	}
	if imageURL != "" {
		set++
	}
	if videoURL != "" {
		set++
	}
	switch {
	case set == 0:
		return "", false
	case set > 1:
		return StoryKindMixed, true
	case imageURL != "":
		return StoryKindImage, true
	case videoURL != "":
		return StoryKindVideo, true
	default:
		return StoryKindText, true
	}
}

// Story represents an ephemeral story stored in MongoDB. A story is part
// of any active-stories read only while expires_at > now, strictly; expiry
// is a read-time filter, not a deletion.
type Story struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID    uint               `json:"author_id" bson:"author_id"`
	Kind        StoryKind          `json:"kind" bson:"kind"`
	Content     string             `json:"content,omitempty" bson:"content,omitempty"`
	ImageURL    string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	VideoURL    string             `json:"video_url,omitempty" bson:"video_url,omitempty"`
	TextOverlay string             `json:"text_overlay,omitempty" bson:"text_overlay,omitempty"`
	TextColor   string             `json:"text_color,omitempty" bson:"text_color,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	ExpiresAt   time.Time          `json:"expires_at" bson:"expires_at"`
}

// ActiveAt reports whether the story is still visible at the given time.
func (s *Story) ActiveAt(now time.Time) bool {
	return s.ExpiresAt.After(now)
}

// StoryView records that a user has seen a story (PostgreSQL). Recording
// the same viewer twice is a no-op via the composite unique index.
type StoryView struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	StoryID  string    `json:"story_id" gorm:"index;uniqueIndex:idx_story_user_view"`
	UserID   uint      `json:"user_id" gorm:"index;uniqueIndex:idx_story_user_view"`
	ViewedAt time.Time `json:"viewed_at"`
}

// StoryReply is a text reply to a story (PostgreSQL). Creating one also
// appends a direct message to the conversation between replier and story
// author as part of the same transaction.
type StoryReply struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StoryID   string    `json:"story_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateStoryRequest defines the request body for creating a story.
// At least one of content, image_url and video_url must be set.
type CreateStoryRequest struct {
	Content     string `json:"content,omitempty" validate:"omitempty,max=2200"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
	VideoURL    string `json:"video_url,omitempty" validate:"omitempty,url"`
	TextOverlay string `json:"text_overlay,omitempty" validate:"omitempty,max=200"`
	TextColor   string `json:"text_color,omitempty" validate:"omitempty,max=20"`
}

// ReplyToStoryRequest defines the request body for replying to a story
type ReplyToStoryRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
