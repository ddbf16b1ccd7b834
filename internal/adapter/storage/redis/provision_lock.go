package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ProvisionLock implements ports.ProvisionLock using Redis SET NX. It bounds
// concurrent provisioning attempts for the same uid so only one keypair is
// ever generated per user.
type ProvisionLock struct {
	client *goredis.Client
	prefix string
}

// NewProvisionLock creates a new Redis-backed provisioning lock.
func NewProvisionLock(client *goredis.Client) *ProvisionLock {
	return &ProvisionLock{
		client: client,
		prefix: "provision:",
	}
}

// Acquire atomically takes the per-uid lock. Returns true if this caller owns
// it, false if a concurrent provisioning attempt does.
func (l *ProvisionLock) Acquire(ctx context.Context, uid string, ttl time.Duration) (bool, error) {
	key := l.prefix + uid
	result, err := l.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists, lock held by another attempt
			return false, nil
		}
		return false, fmt.Errorf("redis provision lock: %w", err)
	}
	return result == "OK", nil
}

// Release drops the per-uid lock.
func (l *ProvisionLock) Release(ctx context.Context, uid string) error {
	return l.client.Del(ctx, l.prefix+uid).Err()
}
