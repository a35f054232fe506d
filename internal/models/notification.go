package models

import "time"

// Notification kinds. Emitted as side effects of like/comment/follow/
// story-like/story-reply writes, and never when the actor is also the
// recipient.
const (
	NotificationLike       = "like"
	NotificationComment    = "comment"
	NotificationFollow     = "follow"
	NotificationStoryLike  = "story_like"
	NotificationStoryReply = "story_reply"
)

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Kind        string    `json:"kind" gorm:"size:30;index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	TargetID    string    `json:"target_id"`                  // post, story or comment ID
	TargetType  string    `json:"target_type" gorm:"size:20"` // post, story, user
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
