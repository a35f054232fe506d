package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/lucymaru126/montage/internal/models"
	"github.com/lucymaru126/montage/internal/repositories"
)

// MessageHandler handles direct-messaging HTTP requests
type MessageHandler struct {
	conversationRepository repositories.ConversationRepository
	profileRepository      repositories.ProfileRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(
	conversationRepo repositories.ConversationRepository,
	profileRepo repositories.ProfileRepository,
) *MessageHandler {
	return &MessageHandler{
		conversationRepository: conversationRepo,
		profileRepository:      profileRepo,
	}
}

// RegisterMessageRoutes registers messaging routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/conversations", h.GetConversations)
	g.POST("/conversations", h.CreateConversation)
	g.POST("/conversations/:id/messages", h.SendMessage)
	g.PUT("/conversations/:id/read", h.MarkConversationRead)
}

// ConversationView is a conversation joined with the other participants'
// profiles and the full ordered message list
type ConversationView struct {
	models.Conversation
	Participants []models.ProfileCompact `json:"participants"`
	Messages     []models.Message        `json:"messages"`
	UnreadCount  int                     `json:"unread_count"`
}

// GetConversations returns the inbox: the user's conversations, most
// recently active first, each joined with the other participants and
// messages. Participants, messages and profiles each come from one
// batched query.
func (h *MessageHandler) GetConversations(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	conversations, err := h.conversationRepository.GetConversationsByUserID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	conversationIDs := make([]uint, len(conversations))
	for i, conv := range conversations {
		conversationIDs[i] = conv.ID
	}

	participantIDs, err := h.conversationRepository.GetParticipantIDs(conversationIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	messages, err := h.conversationRepository.GetMessagesByConversationIDs(conversationIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profileIDSet := make(map[uint]bool)
	for _, ids := range participantIDs {
		for _, id := range ids {
			if id != currentUserID {
				profileIDSet[id] = true
			}
		}
	}
	profileIDs := make([]uint, 0, len(profileIDSet))
	for id := range profileIDSet {
		profileIDs = append(profileIDs, id)
	}
	profiles, err := h.profileRepository.GetProfilesByIDs(profileIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views := make([]ConversationView, len(conversations))
	for i, conv := range conversations {
		view := ConversationView{Conversation: conv, Messages: messages[conv.ID]}
		for _, id := range participantIDs[conv.ID] {
			if id == currentUserID {
				continue
			}
			if p, ok := profiles[id]; ok {
				view.Participants = append(view.Participants, p.ToCompact())
			}
		}
		for _, m := range view.Messages {
			if !m.IsRead && m.SenderID != currentUserID {
				view.UnreadCount++
			}
		}
		views[i] = view
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"conversations": views}})
}

// CreateConversation finds or creates the conversation for the given
// participant set; the caller is implicitly included. Calling it twice
// with the same set returns the same conversation.
func (h *MessageHandler) CreateConversation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	participantIDs := append([]uint{currentUserID}, req.ParticipantIDs...)
	for _, id := range req.ParticipantIDs {
		if _, err := h.profileRepository.GetProfileByID(id); err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Participant profile not found")
		}
	}

	conv, created, err := h.conversationRepository.FindOrCreate(participantIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{"success": true, "data": echo.Map{"conversation": conv}})
}

// SendMessage appends a message to a conversation the sender belongs to
func (h *MessageHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid conversation ID")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	isParticipant, err := h.conversationRepository.IsParticipant(uint(conversationID), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !isParticipant {
		return echo.NewHTTPError(http.StatusNotFound, "Conversation not found")
	}

	message := &models.Message{
		ConversationID: uint(conversationID),
		SenderID:       currentUserID,
		Content:        req.Content,
	}
	if err := h.conversationRepository.CreateMessage(message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, message)
}

// MarkConversationRead marks every incoming message in the conversation
// as read
func (h *MessageHandler) MarkConversationRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid conversation ID")
	}

	isParticipant, err := h.conversationRepository.IsParticipant(uint(conversationID), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !isParticipant {
		return echo.NewHTTPError(http.StatusNotFound, "Conversation not found")
	}

	if err := h.conversationRepository.MarkMessagesRead(uint(conversationID), currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
