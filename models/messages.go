package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single piece of text appended to an accepted conversation's
// log. Append-only: no edit or delete path exists.
type Message struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID    `gorm:"type:uuid;not null;index" json:"conversation_id"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
	SenderID       uint         `gorm:"not null" json:"sender_id"`
	Sender         User         `gorm:"foreignKey:SenderID" json:"-"`
	Text           string       `gorm:"not null" json:"text"`
	CreatedAt      time.Time    `json:"created_at"`
}

type SendMessageRequest struct {
	Text string `json:"text" binding:"required" conform:"trim"`
}

type MessageResponse struct {
	Message
	Sender UserSummary `json:"sender"`
}

func (m *Message) Response() *MessageResponse {
	return &MessageResponse{
		Message: *m,
		Sender:  m.Sender.Summary(),
	}
}
