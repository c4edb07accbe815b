package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DeviceSessionRepository remembers the active conversation per device,
// replacing the localStorage pointer a browser client would keep. It is not
// authoritative: the session service revalidates the id on every resolve.
type DeviceSessionRepository struct {
	cache *cache.Cache
}

func NewDeviceSessionRepository() *DeviceSessionRepository {
	// Pointers live for a day; expired ones just force a revalidation that
	// falls through to conversation creation.
	c := cache.New(24*time.Hour, 1*time.Hour)
	return &DeviceSessionRepository{
		cache: c,
	}
}

func (r *DeviceSessionRepository) Save(deviceId string, conversationId uuid.UUID) {
	r.cache.Set(deviceId, conversationId, cache.DefaultExpiration)
}

func (r *DeviceSessionRepository) Get(deviceId string) (uuid.UUID, bool) {
	if x, found := r.cache.Get(deviceId); found {
		return x.(uuid.UUID), true
	}
	return uuid.Nil, false
}

func (r *DeviceSessionRepository) Delete(deviceId string) {
	r.cache.Delete(deviceId)
}
