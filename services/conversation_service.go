package services

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/bookloop/config"
	"github.com/techagentng/bookloop/db"
	apiError "github.com/techagentng/bookloop/errors"
	"github.com/techagentng/bookloop/models"
	"gorm.io/gorm"
)

// ConversationService gates buyer-seller contact per (book, buyer) pair:
// interest creates a pending request, the seller accepts or rejects it, and
// only accepted conversations may carry messages.
type ConversationService interface {
	ShowInterest(buyerID uint, bookID uuid.UUID) (*models.ConversationResponse, *apiError.Error)
	GetPendingForSeller(sellerID uint) ([]models.ConversationResponse, *apiError.Error)
	GetConversationsForUser(userID uint) ([]models.ConversationResponse, *apiError.Error)
	ApproveConversation(actingUserID uint, conversationID uuid.UUID, status string) (*models.ConversationResponse, *apiError.Error)
}

type conversationService struct {
	Config           *config.Config
	conversationRepo db.ConversationRepository
	bookRepo         db.BookRepository
}

// NewConversationService creates a new instance of ConversationService
func NewConversationService(conversationRepo db.ConversationRepository, bookRepo db.BookRepository, conf *config.Config) ConversationService {
	return &conversationService{
		Config:           conf,
		conversationRepo: conversationRepo,
		bookRepo:         bookRepo,
	}
}

func (s *conversationService) ShowInterest(buyerID uint, bookID uuid.UUID) (*models.ConversationResponse, *apiError.Error) {
	book, err := s.bookRepo.FindBookByID(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("Book not found", http.StatusNotFound)
		}
		log.Printf("ShowInterest error finding book: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if book.SellerID == buyerID {
		return nil, apiError.New("You cannot show interest in your own book", http.StatusBadRequest)
	}

	conversation := &models.Conversation{
		BookID:   bookID,
		BuyerID:  buyerID,
		SellerID: book.SellerID,
		Status:   models.ConversationPending,
	}

	created, err := s.conversationRepo.CreateConversation(conversation)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateConversation) {
			return nil, apiError.New("You have already shown interest in this book", http.StatusBadRequest)
		}
		log.Printf("ShowInterest error creating conversation: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return created.Response(), nil
}

func (s *conversationService) GetPendingForSeller(sellerID uint) ([]models.ConversationResponse, *apiError.Error) {
	conversations, err := s.conversationRepo.GetPendingForSeller(sellerID)
	if err != nil {
		log.Printf("GetPendingForSeller error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return toConversationResponses(conversations), nil
}

func (s *conversationService) GetConversationsForUser(userID uint) ([]models.ConversationResponse, *apiError.Error) {
	conversations, err := s.conversationRepo.GetAcceptedForUser(userID)
	if err != nil {
		log.Printf("GetConversationsForUser error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return toConversationResponses(conversations), nil
}

func (s *conversationService) ApproveConversation(actingUserID uint, conversationID uuid.UUID, status string) (*models.ConversationResponse, *apiError.Error) {
	if status != models.ConversationAccepted && status != models.ConversationRejected {
		return nil, apiError.New(`Status must be either "accepted" or "rejected"`, http.StatusBadRequest)
	}

	conversation, err := s.conversationRepo.FindConversationByID(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("Conversation not found", http.StatusNotFound)
		}
		log.Printf("ApproveConversation error finding conversation: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	// only the seller the request was addressed to may settle it
	if conversation.SellerID != actingUserID {
		return nil, apiError.New("Only the seller can approve or reject this request", http.StatusForbidden)
	}

	if conversation.Status != models.ConversationPending {
		return nil, apiError.New("This request has already been "+conversation.Status, http.StatusBadRequest)
	}

	updated, err := s.conversationRepo.UpdateStatus(conversationID, status)
	if err != nil {
		log.Printf("ApproveConversation error updating status: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return updated.Response(), nil
}

func toConversationResponses(conversations []models.Conversation) []models.ConversationResponse {
	responses := make([]models.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		responses = append(responses, *conversations[i].Response())
	}
	return responses
}
