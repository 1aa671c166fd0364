// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/maktaba/internal/platform/apperr"
	"github.com/taibuivan/maktaba/internal/platform/constants"
	"github.com/taibuivan/maktaba/internal/platform/sec"
)

// RedisSessionRepository implements SessionRepository using Redis.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

/*
Save persists a session payload under its SID with a TTL.

Parameters:
  - context: context.Context
  - session: *sec.Session
  - ttl: time.Duration

Returns:
  - error: Encoding or persistence failures
*/
func (repository *RedisSessionRepository) Save(context context.Context, session *sec.Session, ttl time.Duration) error {

	// Serialize the payload for volatile storage
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	// Use constants for key prefix
	key := constants.RedisPrefixSession + session.SID

	// Set the session with TTL
	if err := repository.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_save_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Find retrieves the session stored under the given SID.

Description: Returns apperr.Unauthorized if the session is absent or expired,
so stale cookies surface as an ordinary re-login prompt.

Parameters:
  - context: context.Context
  - sid: string

Returns:
  - *sec.Session: Hydrated payload
  - error: apperr.Unauthorized or connectivity errors
*/
func (repository *RedisSessionRepository) Find(context context.Context, sid string) (*sec.Session, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixSession + sid

	// Get the session from Redis
	payload, err := repository.client.Get(context, key).Bytes()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.Unauthorized("Session is invalid or expired")
		}
		return nil, fmt.Errorf("redis_session_find_failed: %w", err)
	}

	// Deserialize the payload
	var session sec.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	// Return the session
	return &session, nil
}

/*
Delete removes the session from Redis.

Parameters:
  - context: context.Context
  - sid: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Delete(context context.Context, sid string) error {

	// Use constants for key prefix
	key := constants.RedisPrefixSession + sid

	// Delete the session from Redis
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
