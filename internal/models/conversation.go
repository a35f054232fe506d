package models

import "time"

// Conversation is a direct-message thread (PostgreSQL). UpdatedAt is the
// inbox sort key and is bumped whenever a message is appended. For 1:1
// messaging at most one conversation exists per participant pair; the
// find-or-create lookup matches the exact participant set before
// creating a new row.
type Conversation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"index"`
}

// ConversationParticipant links a user into a conversation
type ConversationParticipant struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	ConversationID uint `json:"conversation_id" gorm:"index;uniqueIndex:idx_conversation_user"`
	UserID         uint `json:"user_id" gorm:"index;uniqueIndex:idx_conversation_user"`
}

// Message is an append-only direct message. Only the read flag ever
// mutates after creation.
type Message struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ConversationID uint      `json:"conversation_id" gorm:"index"`
	SenderID       uint      `json:"sender_id" gorm:"index"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateConversationRequest defines the request body for opening (or
// finding) a conversation; the caller is implicitly a participant.
type CreateConversationRequest struct {
	ParticipantIDs []uint `json:"participant_ids" validate:"required,min=1,dive,gt=0"`
}

// SendMessageRequest defines the request body for sending a message
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}
