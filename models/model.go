package models

import (
	"time"

	"gorm.io/gorm"
)

// Model is the base for all gorm models
type Model struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Blacklist struct {
	Model
	Token string `json:"token"`
}
