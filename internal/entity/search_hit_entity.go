package entity

import "time"

// SearchHit is a message joined with the metadata of its conversation,
// used by the cross-conversation search view.
type SearchHit struct {
	Message               Message
	ConversationTitle     string
	ConversationCreatedAt time.Time
}
