package dto

import (
	"time"

	"github.com/google/uuid"
)

type SearchConversationMeta struct {
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type SearchResultResponse struct {
	Id             uuid.UUID              `json:"id"`
	ConversationId uuid.UUID              `json:"conversation_id"`
	Role           string                 `json:"role"`
	OriginalText   string                 `json:"original_text"`
	TranslatedText *string                `json:"translated_text"`
	AudioUrl       *string                `json:"audio_url"`
	CreatedAt      time.Time              `json:"created_at"`
	Conversation   SearchConversationMeta `json:"conversations"`
}
