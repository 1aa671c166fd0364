// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/maktaba/internal/platform/sec"
)

// # Volatile Session Access

// SessionRepository defines the contract for storing dashboard sessions.
type SessionRepository interface {

	/*
		Save persists a session payload under its SID for the given TTL.

		Parameters:
		  - context: context.Context
		  - session: *sec.Session
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Save(context context.Context, session *sec.Session, ttl time.Duration) error

	/*
		Find returns the session stored under the given SID.

		Description: Returns apperr.Unauthorized if the session is absent
		or expired.

		Parameters:
		  - context: context.Context
		  - sid: string

		Returns:
		  - *sec.Session: Hydrated payload
		  - error: apperr.Unauthorized or connectivity errors
	*/
	Find(context context.Context, sid string) (*sec.Session, error)

	/*
		Delete removes the session, ending it immediately.

		Parameters:
		  - context: context.Context
		  - sid: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, sid string) error
}
