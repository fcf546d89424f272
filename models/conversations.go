package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation statuses; pending transitions once to accepted or rejected
const (
	ConversationPending  = "pending"
	ConversationAccepted = "accepted"
	ConversationRejected = "rejected"
)

// Conversation is the interest/approval record between one buyer and one
// seller about one book. The composite unique index keeps a buyer from
// showing interest in the same book twice, including under concurrent
// requests.
type Conversation struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookID        uuid.UUID `gorm:"type:uuid;not null;index:idx_book_buyer,unique" json:"book_id"`
	Book          Book      `gorm:"foreignKey:BookID" json:"-"`
	BuyerID       uint      `gorm:"not null;index:idx_book_buyer,unique" json:"buyer_id"`
	Buyer         User      `gorm:"foreignKey:BuyerID" json:"-"`
	SellerID      uint      `gorm:"not null;index" json:"seller_id"`
	Seller        User      `gorm:"foreignKey:SellerID" json:"-"`
	Status        string    `gorm:"not null;default:pending" json:"status"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateConversationRequest struct {
	BookID string `json:"bookId" binding:"required"`
}

type ApproveConversationRequest struct {
	Status string `json:"status" binding:"required"`
}

// ConversationResponse carries the related summaries the listing views need
type ConversationResponse struct {
	Conversation
	Buyer  UserSummary `json:"buyer"`
	Seller UserSummary `json:"seller"`
	Book   BookSummary `json:"book"`
}

// IsParticipant reports whether userID is the conversation's buyer or seller
func (c *Conversation) IsParticipant(userID uint) bool {
	return c.BuyerID == userID || c.SellerID == userID
}

func (c *Conversation) Response() *ConversationResponse {
	return &ConversationResponse{
		Conversation: *c,
		Buyer:        c.Buyer.Summary(),
		Seller:       c.Seller.Summary(),
		Book:         c.Book.Summary(),
	}
}
