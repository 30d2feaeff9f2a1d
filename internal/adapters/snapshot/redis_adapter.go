package snapshot

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/reviewhub/backend/internal/domain/providers"
	redisclient "github.com/reviewhub/backend/internal/infrastructure/clients/redis"
)

// RedisAdapter implements the SnapshotProvider interface on a single Redis
// key. The document never expires; it is the system of record.
type RedisAdapter struct {
	client *redisclient.Client
	key    string
}

// NewRedisAdapter creates a new Redis snapshot adapter.
func NewRedisAdapter(client *redisclient.Client, key string) providers.SnapshotProvider {
	return &RedisAdapter{
		client: client,
		key:    key,
	}
}

// Load retrieves the snapshot document.
func (a *RedisAdapter) Load(ctx context.Context) ([]byte, bool, error) {
	data, err := a.client.Client().Get(ctx, a.key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return data, true, nil
}

// Save overwrites the snapshot document.
func (a *RedisAdapter) Save(ctx context.Context, data []byte) error {
	if err := a.client.Client().Set(ctx, a.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
