package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Role           string         `gorm:"type:varchar(50);not null"`
	OriginalText   string         `gorm:"type:text;not null"`
	TranslatedText *string        `gorm:"type:text"`
	AudioUrl       *string        `gorm:"type:text"`
	TargetLang     string         `gorm:"type:varchar(50);not null"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`

	Conversation *Conversation `gorm:"foreignKey:ConversationId"`
}

func (Message) TableName() string {
	return "messages"
}
