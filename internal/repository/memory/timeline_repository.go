package memory

import (
	"sync"
	"time"

	"meditranslate-be/pkg/timeline"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// TimelineRepository holds the optimistic timeline of each active
// conversation in memory.
type TimelineRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewTimelineRepository() *TimelineRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &TimelineRepository{
		cache: c,
	}
}

// GetOrCreate returns the timeline for a conversation, creating it on first
// use. Access on the hot path touches the cache under a lock so two
// concurrent submissions never race on creation.
func (r *TimelineRepository) GetOrCreate(conversationId uuid.UUID) *timeline.Timeline {
	key := conversationId.String()

	r.mu.Lock()
	defer r.mu.Unlock()
	if x, found := r.cache.Get(key); found {
		// Refresh the sliding expiration for active conversations.
		r.cache.Set(key, x, cache.DefaultExpiration)
		return x.(*timeline.Timeline)
	}
	t := timeline.New()
	r.cache.Set(key, t, cache.DefaultExpiration)
	return t
}

func (r *TimelineRepository) Delete(conversationId uuid.UUID) {
	r.cache.Delete(conversationId.String())
}
