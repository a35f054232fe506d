package repositories

import (
	"fmt"
	"time"

	"github.com/lucymaru126/montage/internal/models"
	"gorm.io/gorm"
)

// ConversationRepository defines the interface for direct-message
// conversations and their messages. For 1:1 messaging at most one
// conversation exists per unordered participant pair: FindOrCreate
// matches the exact participant set before creating a new thread.
type ConversationRepository interface {
	FindByParticipants(userIDs []uint) (*models.Conversation, error)
	FindOrCreate(userIDs []uint) (conv *models.Conversation, created bool, err error)
	GetConversationsByUserID(userID uint) ([]models.Conversation, error)
	GetParticipantIDs(conversationIDs []uint) (map[uint][]uint, error)
	IsParticipant(conversationID, userID uint) (bool, error)

	CreateMessage(message *models.Message) error
	GetMessages(conversationID uint) ([]models.Message, error)
	GetMessagesByConversationIDs(conversationIDs []uint) (map[uint][]models.Message, error)
	MarkMessagesRead(conversationID, readerID uint) error

	AppendStoryReply(reply *models.StoryReply, storyAuthorID uint) error
}

// PostgresConversationRepository implements ConversationRepository
type PostgresConversationRepository struct {
	db *gorm.DB
}

// NewPostgresConversationRepository creates a new PostgresConversationRepository
func NewPostgresConversationRepository(db *gorm.DB) *PostgresConversationRepository {
	return &PostgresConversationRepository{db: db}
}

// dedupeIDs drops duplicate user ids while preserving order
func dedupeIDs(userIDs []uint) []uint {
	seen := make(map[uint]bool, len(userIDs))
	out := make([]uint, 0, len(userIDs))
	for _, id := range userIDs {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// findByParticipants looks for a conversation whose participant set is
// exactly the given user set. Candidate threads are the first user's
// conversations; each candidate's full participant list is then compared
// set-wise in memory.
func findByParticipants(db *gorm.DB, userIDs []uint) (*models.Conversation, error) {
	userIDs = dedupeIDs(userIDs)
	if len(userIDs) < 2 {
		return nil, fmt.Errorf("a conversation needs at least two participants")
	}

	var candidateIDs []uint
	if err := db.Model(&models.ConversationParticipant{}).
		Where("user_id = ?", userIDs[0]).
		Pluck("conversation_id", &candidateIDs).Error; err != nil {
		return nil, err
	}
	if len(candidateIDs) == 0 {
		return nil, nil
	}

	var participants []models.ConversationParticipant
	if err := db.Where("conversation_id IN ?", candidateIDs).Find(&participants).Error; err != nil {
		return nil, err
	}
	byConversation := make(map[uint]map[uint]bool)
	for _, p := range participants {
		if byConversation[p.ConversationID] == nil {
			byConversation[p.ConversationID] = make(map[uint]bool)
		}
		byConversation[p.ConversationID][p.UserID] = true
	}

	want := make(map[uint]bool, len(userIDs))
	for _, id := range userIDs {
		want[id] = true
	}
	for convID, members := range byConversation {
		if len(members) != len(want) {
			continue
		}
		match := true
		for id := range want {
			if !members[id] {
				match = false
				break
			}
		}
		if match {
			var conv models.Conversation
			if err := db.First(&conv, convID).Error; err != nil {
				return nil, err
			}
			return &conv, nil
		}
	}
	return nil, nil
}

// findOrCreate returns the existing conversation for the participant set
// or creates one, inside the caller's transaction.
func findOrCreate(db *gorm.DB, userIDs []uint) (*models.Conversation, bool, error) {
	userIDs = dedupeIDs(userIDs)
	conv, err := findByParticipants(db, userIDs)
	if err != nil {
		return nil, false, err
	}
	if conv != nil {
		return conv, false, nil
	}

	now := time.Now()
	conv = &models.Conversation{CreatedAt: now, UpdatedAt: now}
	if err := db.Create(conv).Error; err != nil {
		return nil, false, err
	}
	for _, id := range userIDs {
		participant := models.ConversationParticipant{ConversationID: conv.ID, UserID: id}
		if err := db.Create(&participant).Error; err != nil {
			return nil, false, err
		}
	}
	return conv, true, nil
}

// createMessage appends a message and bumps the conversation's inbox
// sort timestamp, inside the caller's transaction.
func createMessage(db *gorm.DB, message *models.Message) error {
	message.CreatedAt = time.Now()
	if err := db.Create(message).Error; err != nil {
		return err
	}
	return db.Model(&models.Conversation{}).
		Where("id = ?", message.ConversationID).
		Update("updated_at", message.CreatedAt).Error
}

// FindByParticipants returns the conversation matching the exact user
// set, or nil when none exists
func (r *PostgresConversationRepository) FindByParticipants(userIDs []uint) (*models.Conversation, error) {
	return findByParticipants(r.db, userIDs)
}

// FindOrCreate returns the conversation for the participant set,
// creating it when absent. Both steps run in one transaction so two
// racing creates cannot leave a half-populated thread.
func (r *PostgresConversationRepository) FindOrCreate(userIDs []uint) (*models.Conversation, bool, error) {
	var conv *models.Conversation
	var created bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		conv, created, err = findOrCreate(tx, userIDs)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return conv, created, nil
}

// GetConversationsByUserID returns the user's conversations, most
// recently active first
func (r *PostgresConversationRepository) GetConversationsByUserID(userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.ConversationParticipant{}).Select("conversation_id").Where("user_id = ?", userID),
	).Order("updated_at DESC").Find(&conversations).Error
	return conversations, err
}

// GetParticipantIDs returns participant ids for a set of conversations
// in one query, grouped by conversation id
func (r *PostgresConversationRepository) GetParticipantIDs(conversationIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint)
	if len(conversationIDs) == 0 {
		return result, nil
	}
	var participants []models.ConversationParticipant
	if err := r.db.Where("conversation_id IN ?", conversationIDs).Find(&participants).Error; err != nil {
		return nil, err
	}
	for _, p := range participants {
		result[p.ConversationID] = append(result[p.ConversationID], p.UserID)
	}
	return result, nil
}

// IsParticipant checks conversation membership
func (r *PostgresConversationRepository) IsParticipant(conversationID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

// CreateMessage appends a message and bumps the conversation timestamp
func (r *PostgresConversationRepository) CreateMessage(message *models.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return createMessage(tx, message)
	})
}

// GetMessages returns a conversation's messages in chronological order
func (r *PostgresConversationRepository) GetMessages(conversationID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").Find(&messages).Error
	return messages, err
}

// GetMessagesByConversationIDs returns messages for a set of
// conversations in one query, grouped and chronologically ordered
func (r *PostgresConversationRepository) GetMessagesByConversationIDs(conversationIDs []uint) (map[uint][]models.Message, error) {
	result := make(map[uint][]models.Message)
	if len(conversationIDs) == 0 {
		return result, nil
	}
	var messages []models.Message
	if err := r.db.Where("conversation_id IN ?", conversationIDs).
		Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	for _, m := range messages {
		result[m.ConversationID] = append(result[m.ConversationID], m)
	}
	return result, nil
}

// MarkMessagesRead marks every message in the conversation not sent by
// the reader as read
func (r *PostgresConversationRepository) MarkMessagesRead(conversationID, readerID uint) error {
	return r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error
}

// AppendStoryReply persists a story reply together with its messaging
// side effect: the reply row, the find-or-create of the replier/author
// conversation and the message append all commit or roll back as one
// transaction, so a reply can never exist without its message.
func (r *PostgresConversationRepository) AppendStoryReply(reply *models.StoryReply, storyAuthorID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		reply.CreatedAt = time.Now()
		if err := tx.Create(reply).Error; err != nil {
			return err
		}
		conv, _, err := findOrCreate(tx, []uint{reply.UserID, storyAuthorID})
		if err != nil {
			return err
		}
		message := &models.Message{
			ConversationID: conv.ID,
			SenderID:       reply.UserID,
			Content:        reply.Content,
		}
		return createMessage(tx, message)
	})
}
