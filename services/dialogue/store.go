package dialogue

import (
	"context"

	"slotbook/models"
)

// Store keeps one conversation per user. Get on an unknown user returns a
// fresh conversation, not an error.
type Store interface {
	Get(ctx context.Context, userID string) (models.Conversation, error)
	Put(ctx context.Context, userID string, conv models.Conversation) error
	Reset(ctx context.Context, userID string) error
}
