package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByConversationID filters messages belonging to one conversation
type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

// OriginalTextContains matches a substring of original_text.
// Uses ILIKE so the match is case-insensitive on Postgres.
type OriginalTextContains struct {
	Query string
}

func (s OriginalTextContains) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("original_text ILIKE ?", pattern)
}
