package models

import "time"

// PostLike is a (user, post) membership edge. The composite unique index
// is what makes like insertion idempotent: re-inserting an existing edge
// conflicts and is treated as a no-op, never as an error.
type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"` // MongoDB ObjectID as string
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

// StoryLike is a (user, story) membership edge with the same toggle
// semantics as PostLike.
type StoryLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StoryID   string    `json:"story_id" gorm:"index;uniqueIndex:idx_story_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_story_user_like"`
	CreatedAt time.Time `json:"created_at"`
}
