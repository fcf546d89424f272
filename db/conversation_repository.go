package db

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/bookloop/models"
	"gorm.io/gorm"
)

// ErrDuplicateConversation is returned when the (book, buyer) pair already
// has a conversation. The unique index raises it, not an application-level
// pre-read, so two concurrent interest requests cannot both land.
var ErrDuplicateConversation = errors.New("conversation already exists for this book and buyer")

type ConversationRepository interface {
	CreateConversation(conversation *models.Conversation) (*models.Conversation, error)
	FindConversationByID(id uuid.UUID) (*models.Conversation, error)
	GetPendingForSeller(sellerID uint) ([]models.Conversation, error)
	GetAcceptedForUser(userID uint) ([]models.Conversation, error)
	UpdateStatus(id uuid.UUID, status string) (*models.Conversation, error)
}

type conversationRepo struct {
	DB *gorm.DB
}

func NewConversationRepo(db *GormDB) ConversationRepository {
	return &conversationRepo{db.DB}
}

func (r *conversationRepo) CreateConversation(conversation *models.Conversation) (*models.Conversation, error) {
	if conversation.ID == uuid.Nil {
		conversation.ID = uuid.New()
	}
	conversation.LastMessageAt = time.Now()

	if err := r.DB.Create(conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateConversation
		}
		log.Printf("CreateConversation error: %v", err)
		return nil, err
	}

	return r.FindConversationByID(conversation.ID)
}

func (r *conversationRepo) FindConversationByID(id uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.DB.
		Preload("Buyer").
		Preload("Seller").
		Preload("Book").
		Where("id = ?", id).
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepo) GetPendingForSeller(sellerID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.DB.
		Preload("Buyer").
		Preload("Seller").
		Preload("Book").
		Where("seller_id = ? AND status = ?", sellerID, models.ConversationPending).
		Order("created_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch pending conversations")
	}
	return conversations, nil
}

func (r *conversationRepo) GetAcceptedForUser(userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.DB.
		Preload("Buyer").
		Preload("Seller").
		Preload("Book").
		Where("(buyer_id = ? OR seller_id = ?) AND status = ?", userID, userID, models.ConversationAccepted).
		Order("last_message_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch conversations")
	}
	return conversations, nil
}

func (r *conversationRepo) UpdateStatus(id uuid.UUID, status string) (*models.Conversation, error) {
	err := r.DB.Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          status,
			"last_message_at": time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return r.FindConversationByID(id)
}
