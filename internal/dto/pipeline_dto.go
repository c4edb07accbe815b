package dto

import (
	"meditranslate-be/pkg/timeline"

	"github.com/google/uuid"
)

// Pipeline event types carried over the in-process bus and pushed to
// websocket subscribers of a conversation.
const (
	PipelineEventOptimistic = "optimistic"
	PipelineEventSettled    = "settled"
	PipelineEventFailed     = "failed"
)

type PipelineEventMessage struct {
	Type           string         `json:"type"`
	ConversationId uuid.UUID      `json:"conversation_id"`
	TempId         string         `json:"temp_id,omitempty"`
	Entry          timeline.Entry `json:"entry"`
}
