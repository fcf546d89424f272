package services

import (
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/bookloop/config"
	"github.com/techagentng/bookloop/db"
	apiError "github.com/techagentng/bookloop/errors"
	"github.com/techagentng/bookloop/models"
	"gorm.io/gorm"
)

// MessageService appends to and reads the message log of accepted
// conversations
type MessageService interface {
	SendMessage(senderID uint, conversationID uuid.UUID, text string) (*models.MessageResponse, *apiError.Error)
	GetMessages(requesterID uint, conversationID uuid.UUID) ([]models.MessageResponse, *apiError.Error)
}

type messageService struct {
	Config           *config.Config
	messageRepo      db.MessageRepository
	conversationRepo db.ConversationRepository
}

// NewMessageService creates a new instance of MessageService
func NewMessageService(messageRepo db.MessageRepository, conversationRepo db.ConversationRepository, conf *config.Config) MessageService {
	return &messageService{
		Config:           conf,
		messageRepo:      messageRepo,
		conversationRepo: conversationRepo,
	}
}

func (s *messageService) SendMessage(senderID uint, conversationID uuid.UUID, text string) (*models.MessageResponse, *apiError.Error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apiError.New("Message text cannot be empty", http.StatusBadRequest)
	}

	conversation, apiErr := s.findConversation(conversationID)
	if apiErr != nil {
		return nil, apiErr
	}

	if !conversation.IsParticipant(senderID) {
		return nil, apiError.New("You are not a participant in this conversation", http.StatusForbidden)
	}

	if conversation.Status != models.ConversationAccepted {
		return nil, apiError.New("This conversation is not accepted yet", http.StatusBadRequest)
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
	}

	saved, err := s.messageRepo.SaveMessage(message)
	if err != nil {
		log.Printf("SendMessage error: %v", err)
		return nil, apiError.New("Failed to save message", http.StatusInternalServerError)
	}

	return saved.Response(), nil
}

func (s *messageService) GetMessages(requesterID uint, conversationID uuid.UUID) ([]models.MessageResponse, *apiError.Error) {
	conversation, apiErr := s.findConversation(conversationID)
	if apiErr != nil {
		return nil, apiErr
	}

	if !conversation.IsParticipant(requesterID) {
		return nil, apiError.New("You are not a participant in this conversation", http.StatusForbidden)
	}

	messages, err := s.messageRepo.GetMessagesByConversation(conversationID)
	if err != nil {
		log.Printf("GetMessages error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	responses := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, *messages[i].Response())
	}
	return responses, nil
}

func (s *messageService) findConversation(conversationID uuid.UUID) (*models.Conversation, *apiError.Error) {
	conversation, err := s.conversationRepo.FindConversationByID(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("Conversation not found", http.StatusNotFound)
		}
		log.Printf("findConversation error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return conversation, nil
}
