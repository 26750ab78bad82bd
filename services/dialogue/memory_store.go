package dialogue

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"slotbook/models"
)

// MemoryStore keeps conversations for the process lifetime. Idle
// conversations expire after ttl; a ttl of zero keeps them forever.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	expiration := ttl
	cleanup := ttl
	if ttl <= 0 {
		expiration = cache.NoExpiration
		cleanup = 0
	}
	return &MemoryStore{cache: cache.New(expiration, cleanup)}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (models.Conversation, error) {
	v, ok := s.cache.Get(userID)
	if !ok {
		return models.Conversation{}, nil
	}
	return v.(models.Conversation), nil
}

func (s *MemoryStore) Put(_ context.Context, userID string, conv models.Conversation) error {
	s.cache.Set(userID, conv, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Reset(_ context.Context, userID string) error {
	s.cache.Delete(userID)
	return nil
}
