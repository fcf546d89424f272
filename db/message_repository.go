package db

import (
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/bookloop/models"
	"gorm.io/gorm"
)

type MessageRepository interface {
	SaveMessage(message *models.Message) (*models.Message, error)
	GetMessagesByConversation(conversationID uuid.UUID) ([]models.Message, error)
}

type messageRepo struct {
	DB *gorm.DB
}

func NewMessageRepo(db *GormDB) MessageRepository {
	return &messageRepo{db.DB}
}

// SaveMessage appends the message and refreshes the parent conversation's
// last-message summary in one transaction, so the summary can never lag the
// log.
func (r *messageRepo) SaveMessage(message *models.Message) (*models.Message, error) {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Updates(map[string]interface{}{
				"last_message":    message.Text,
				"last_message_at": message.CreatedAt,
			}).Error
	})
	if err != nil {
		log.Printf("SaveMessage error: %v", err)
		return nil, err
	}

	var saved models.Message
	if err := r.DB.Preload("Sender").Where("id = ?", message.ID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *messageRepo) GetMessagesByConversation(conversationID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.DB.
		Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch messages")
	}
	return messages, nil
}
