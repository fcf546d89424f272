package models

import (
	"time"

	"github.com/google/uuid"
)

const MaxBookImages = 5

// Book genres accepted by the listing form
const (
	GenreFiction    = "fiction"
	GenreNonFiction = "non-fiction"
	GenreTextbook   = "textbook"
	GenreChildren   = "children"
	GenreComics     = "comics"
	GenreOther      = "other"
)

// Book conditions accepted by the listing form
const (
	ConditionNew     = "new"
	ConditionLikeNew = "like-new"
	ConditionGood    = "good"
	ConditionFair    = "fair"
	ConditionPoor    = "poor"
)

// Book represents a listing offered for sale by one user
type Book struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string      `json:"title" gorm:"not null" conform:"trim"`
	Author      string      `json:"author" gorm:"not null" conform:"trim"`
	Genre       string      `json:"genre"`
	Condition   string      `json:"condition"`
	Price       float64     `json:"price"`
	Area        string      `json:"area" conform:"trim"`
	City        string      `json:"city" conform:"trim"`
	State       string      `json:"state" conform:"trim"`
	Country     string      `json:"country" conform:"trim"`
	Description string      `json:"description" conform:"trim"`
	SellerID    uint        `gorm:"not null;index" json:"seller_id"`
	Seller      User        `gorm:"foreignKey:SellerID" json:"-"`
	Images      []BookImage `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// BookImage is one stored image of a listing, capped at MaxBookImages per book
type BookImage struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookID       uuid.UUID `gorm:"type:uuid;not null;index" json:"book_id"`
	Position     int       `json:"position"`
	FileType     string    `json:"file_type"`
	FileSize     int64     `json:"file_size"`
	ThumbnailURL string    `json:"thumbnail_url"`
	FullSizeURL  string    `json:"full_size_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// BookSummary is the trimmed-down shape attached to conversations
type BookSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Price     float64   `json:"price"`
	Condition string    `json:"condition"`
}

type BookResponse struct {
	Book
	Seller UserSummary `json:"seller"`
}

func IsValidGenre(genre string) bool {
	switch genre {
	case GenreFiction, GenreNonFiction, GenreTextbook, GenreChildren, GenreComics, GenreOther:
		return true
	}
	return false
}

func IsValidCondition(condition string) bool {
	switch condition {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

func (b *Book) Summary() BookSummary {
	return BookSummary{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Price:     b.Price,
		Condition: b.Condition,
	}
}

func (b *Book) Response() *BookResponse {
	return &BookResponse{
		Book:   *b,
		Seller: b.Seller.Summary(),
	}
}
