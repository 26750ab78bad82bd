// File: services/dialogue/redis_store.go
package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"slotbook/models"
)

const conversationPrefix = "slotbook:conv:"

// RedisStore lets several replicas share conversation state.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (models.Conversation, error) {
	data, err := s.client.Get(ctx, conversationPrefix+userID).Bytes()
	if err == redis.Nil {
		return models.Conversation{}, nil
	}
	if err != nil {
		return models.Conversation{}, fmt.Errorf("load conversation: %w", err)
	}
	return decodeConversation(data)
}

func (s *RedisStore) Put(ctx context.Context, userID string, conv models.Conversation) error {
	b, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("encode conversation: %w", err)
	}
	// A zero ttl means no expiry in go-redis.
	return s.client.Set(ctx, conversationPrefix+userID, b, s.ttl).Err()
}

func (s *RedisStore) Reset(ctx context.Context, userID string) error {
	return s.client.Del(ctx, conversationPrefix+userID).Err()
}

func decodeConversation(data []byte) (models.Conversation, error) {
	var conv models.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return models.Conversation{}, fmt.Errorf("decode conversation: %w", err)
	}
	return conv, nil
}
