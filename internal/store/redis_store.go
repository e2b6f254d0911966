package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	carterrors "github.com/abgdnv/gocart/internal/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps snapshots as plain string values, optionally expiring after ttl.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisStore creates a SnapshotStore backed by Redis. A zero ttl keeps snapshots forever.
func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, carterrors.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("%w: %v", carterrors.ErrLoadSnapshot, err)
	}
	return data, nil
}

func (r *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", carterrors.ErrSaveSnapshot, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", carterrors.ErrDeleteSnapshot, err)
	}
	return nil
}
