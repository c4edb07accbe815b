package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable once persisted: there is no update or delete path.
type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           string // doctor | patient
	OriginalText   string
	TranslatedText *string
	AudioUrl       *string
	TargetLang     string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
