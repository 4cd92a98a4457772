package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// minConsumeTTL keeps a marker alive even for tokens that are about to expire.
const minConsumeTTL = time.Minute

// ConfirmationStore records consumed email-confirmation tokens so each link
// works once. Key format: confirmation:<token id>
type ConfirmationStore struct {
	client *redis.Client
}

func NewConfirmationStore(client *redis.Client) *ConfirmationStore {
	return &ConfirmationStore{client: client}
}

// Consume atomically marks id as used for ttl. It reports false when id was
// already marked.
func (s *ConfirmationStore) Consume(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	if ttl < minConsumeTTL {
		ttl = minConsumeTTL
	}
	fresh, err := s.client.SetNX(ctx, s.key(id), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("consume confirmation: %w", err)
	}
	return fresh, nil
}

// Release deletes the marker for id.
func (s *ConfirmationStore) Release(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("release confirmation: %w", err)
	}
	return nil
}

func (s *ConfirmationStore) key(id string) string {
	return "confirmation:" + id
}
