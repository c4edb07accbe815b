package timeline

import (
	"sync"
	"time"

	"meditranslate-be/internal/constant"

	"github.com/google/uuid"
)

// Record is the message view carried by a timeline entry. Id holds the
// temporary identifier until the entry is settled with the persisted row.
type Record struct {
	Id             string     `json:"id"`
	ConversationId uuid.UUID  `json:"conversation_id"`
	Role           string     `json:"role"`
	OriginalText   string     `json:"original_text"`
	TranslatedText *string    `json:"translated_text"`
	AudioUrl       *string    `json:"audio_url"`
	TargetLang     string     `json:"target_lang"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Entry is one element of a conversation's visible sequence together with
// its pipeline state.
type Entry struct {
	TempId string `json:"temp_id,omitempty"`
	State  string `json:"state"`
	Record Record `json:"record"`
}

// Timeline is the ordered visible sequence of one conversation. Entries are
// replaced in place by temp id, never re-sorted: a message settled late keeps
// its optimistic position until the next full history reload.
type Timeline struct {
	mu      sync.Mutex
	entries []Entry
}

func New() *Timeline {
	return &Timeline{}
}

// NewTempId generates a locally unique identifier for an optimistic entry.
func NewTempId() string {
	return "temp-" + uuid.NewString()
}

// AppendOptimistic adds a placeholder entry at the end of the sequence and
// returns its temp id. This happens before any network call.
func (t *Timeline) AppendOptimistic(rec Record) string {
	tempId := NewTempId()
	rec.Id = tempId

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, Entry{
		TempId: tempId,
		State:  constant.TimelineStateOptimistic,
		Record: rec,
	})
	return tempId
}

// MarkReconciling transitions an optimistic entry once its network phase
// starts. Returns false when no entry carries the temp id.
func (t *Timeline) MarkReconciling(tempId string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.entries {
		if t.entries[i].TempId == tempId && t.entries[i].State == constant.TimelineStateOptimistic {
			t.entries[i].State = constant.TimelineStateReconciling
			return true
		}
	}
	return false
}

// Settle replaces the entry matched by temp id with the authoritative
// persisted record. The position is preserved and the temp id is cleared, so
// no entry with the temp id remains afterwards.
func (t *Timeline) Settle(tempId string, rec Record) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.entries {
		if t.entries[i].TempId == tempId {
			t.entries[i] = Entry{
				State:  constant.TimelineStateSettled,
				Record: rec,
			}
			return true
		}
	}
	return false
}

// MarkFailed leaves the placeholder in the sequence un-reconciled. There is
// no rollback or removal path.
func (t *Timeline) MarkFailed(tempId string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.entries {
		if t.entries[i].TempId == tempId {
			t.entries[i].State = constant.TimelineStateFailed
			return true
		}
	}
	return false
}

// AppendSettled adds an already-persisted record (the audio path, which has
// no optimistic echo).
func (t *Timeline) AppendSettled(rec Record) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, Entry{
		State:  constant.TimelineStateSettled,
		Record: rec,
	})
}

// Snapshot returns a copy of the current sequence in display order.
func (t *Timeline) Snapshot() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// CountTemp reports how many entries still carry a temp id. After every
// successful settle this excludes the settled entry.
func (t *Timeline) CountTemp() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for i := range t.entries {
		if t.entries[i].TempId != "" {
			n++
		}
	}
	return n
}
