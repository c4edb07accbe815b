package dto

import (
	"time"

	"github.com/google/uuid"
)

type MessageResponse struct {
	Id             uuid.UUID `json:"id"`
	ConversationId uuid.UUID `json:"conversation_id"`
	Role           string    `json:"role"`
	OriginalText   string    `json:"original_text"`
	TranslatedText *string   `json:"translated_text"`
	AudioUrl       *string   `json:"audio_url"`
	TargetLang     string    `json:"target_lang"`
	CreatedAt      time.Time `json:"created_at"`
}

// ResolveSessionRequest resolves (or creates) the active conversation for a
// device. ConversationId is the optional explicit selection, e.g. when
// jumping to a search result.
type ResolveSessionRequest struct {
	DeviceId       string     `json:"device_id" validate:"required"`
	ConversationId *uuid.UUID `json:"conversation_id,omitempty"`
}

type ResolveSessionResponse struct {
	ConversationId uuid.UUID          `json:"conversation_id"`
	Title          string             `json:"title"`
	CreatedAt      time.Time          `json:"created_at"`
	Created        bool               `json:"created"` // true when a new conversation was made
	Messages       []*MessageResponse `json:"messages"`
}

type SendMessageRequest struct {
	ConversationId uuid.UUID `json:"conversation_id" validate:"required"`
	Role           string    `json:"role" validate:"required,oneof=doctor patient"`
	Text           string    `json:"text" validate:"required"`
	TargetLang     string    `json:"target_lang" validate:"required"`
}

type SendMessageResponse struct {
	TempId  string           `json:"temp_id"`
	Message *MessageResponse `json:"message"`
}

// SendAudioRequest is built from the multipart form of /api/process-audio.
type SendAudioRequest struct {
	ConversationId uuid.UUID
	Role           string
	TargetLang     string
	MimeType       string
	Audio          []byte
}

type SendAudioResponse struct {
	Text        string           `json:"text"`
	Translation string           `json:"translation"`
	AudioUrl    string           `json:"audio_url"`
	Message     *MessageResponse `json:"message"`
}
