// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taibuivan/maktaba/internal/platform/constants"
)

// # Redis Creation Lock

// RedisCreationLock implements [CreationLock] using SET NX with a TTL.
// The TTL bounds how long a crashed flow can hold the lock.
type RedisCreationLock struct {
	client *redis.Client
}

// NewRedisCreationLock constructs a Redis-backed creation lock.
func NewRedisCreationLock(client *redis.Client) *RedisCreationLock {
	return &RedisCreationLock{client: client}
}

// Acquire attempts to take the per-account lock atomically.
func (lock *RedisCreationLock) Acquire(context context.Context, userID string, ttl time.Duration) (bool, error) {
	key := constants.RedisPrefixAuthorCreateLock + userID

	acquired, err := lock.client.SetNX(context, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("author_lock_acquire_failed: %w", err)
	}

	return acquired, nil
}

// Release drops the lock early once the flow completes.
func (lock *RedisCreationLock) Release(context context.Context, userID string) error {
	key := constants.RedisPrefixAuthorCreateLock + userID

	if err := lock.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("author_lock_release_failed: %w", err)
	}

	return nil
}
