package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessage struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ChatID     string    `gorm:"size:100;not null;index" json:"chat_id"`
	SenderID   uuid.UUID `gorm:"not null" json:"sender_id"`
	ReceiverID uuid.UUID `gorm:"not null" json:"receiver_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	Read       bool      `gorm:"not null;default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
