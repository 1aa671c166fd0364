// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"
	"time"
)

// # Repository Contracts

/*
Repository defines the persistence contract for author profiles.

Implementations query the remote catalogue service; errors surface as
[apperr.AppError] values so the HTTP layer can map them directly.
*/
type Repository interface {
	// ListAuthors returns a filtered, paginated page of authors plus the
	// total count before pagination.
	ListAuthors(context context.Context, filter Filter, limit, offset int) ([]*Author, int, error)

	// GetAuthor fetches a single author by primary key.
	// Returns apperr.NotFound when the profile does not exist.
	GetAuthor(context context.Context, id string) (*Author, error)

	// FindByUserID fetches the author profile linked to a platform account.
	// Returns apperr.NotFound when no profile is linked.
	FindByUserID(context context.Context, userID string) (*Author, error)

	// CountBooks returns the number of catalogue books credited to the author.
	CountBooks(context context.Context, authorID string) (int, error)

	// CreateAuthor persists a new profile.
	CreateAuthor(context context.Context, author *Author) error

	// UpdateAuthor applies a full update to an existing profile.
	UpdateAuthor(context context.Context, author *Author) error

	// DeleteAuthor removes a profile from the catalogue.
	DeleteAuthor(context context.Context, id string) error
}

/*
CreationLock serialises profile creation per account.

The login-time find-or-create flow runs on every author login; without a
lock two concurrent logins could both miss the lookup and insert twice.
*/
type CreationLock interface {
	// Acquire attempts to take the per-account lock. The boolean reports
	// whether the caller won the lock.
	Acquire(context context.Context, userID string, ttl time.Duration) (bool, error)

	// Release drops the lock early once the flow completes.
	Release(context context.Context, userID string) error
}
