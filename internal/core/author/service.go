// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/maktaba/internal/platform/apperr"
	"github.com/taibuivan/maktaba/internal/platform/constants"
	"github.com/taibuivan/maktaba/internal/platform/validate"
	"github.com/taibuivan/maktaba/pkg/pointer"
	"github.com/taibuivan/maktaba/pkg/uuid"
)

// # Service Layer

// Service implements author profile use cases for both the admin console
// and the author self-service dashboard.
type Service struct {
	repository Repository
	lock       CreationLock
}

// NewService constructs a new author [Service] with its dependencies.
func NewService(repository Repository, lock CreationLock) *Service {
	return &Service{repository: repository, lock: lock}
}

// # Catalogue Management

// ListAuthors retrieves a paginated page of author profiles.
func (service *Service) ListAuthors(context context.Context, filter Filter, limit, offset int) ([]*Author, int, error) {
	return service.repository.ListAuthors(context, filter, limit, offset)
}

// GetAuthor retrieves a single profile by its UUID.
func (service *Service) GetAuthor(context context.Context, id string) (*Author, error) {
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return nil, err
	}
	return service.repository.GetAuthor(context, id)
}

// Input holds the mutable profile fields.
type Input struct {
	Name       string
	Bio        *string
	ImageURL   *string
	CategoryID *string
	UserID     *string
}

// validateInput enforces the shared profile field rules.
func validateInput(input Input) error {
	validator := validate.New().
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200)

	if input.Bio != nil {
		validator.MaxLen(FieldBio, *input.Bio, 4000)
	}
	if input.ImageURL != nil && *input.ImageURL != "" {
		validator.URL(FieldImageURL, *input.ImageURL)
	}
	if input.UserID != nil && *input.UserID != "" {
		validator.UUID(FieldUserID, *input.UserID)
	}

	return validator.Err()
}

// CreateAuthor validates and persists a new profile.
func (service *Service) CreateAuthor(context context.Context, input Input) (*Author, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Linking a profile to an account that already has one is a conflict
	if input.UserID != nil && *input.UserID != "" {
		if _, err := service.repository.FindByUserID(context, *input.UserID); err == nil {
			return nil, apperr.Conflict("Account already has an author profile")
		}
	}

	author := &Author{
		ID:         uuid.New(),
		Name:       input.Name,
		Bio:        input.Bio,
		ImageURL:   input.ImageURL,
		CategoryID: input.CategoryID,
		UserID:     input.UserID,
	}

	if err := service.repository.CreateAuthor(context, author); err != nil {
		return nil, fmt.Errorf("author_service_create_failed: %w", err)
	}

	return author, nil
}

// UpdateAuthor applies a full update to an existing profile.
func (service *Service) UpdateAuthor(context context.Context, id string, input Input) (*Author, error) {
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	author, err := service.repository.GetAuthor(context, id)
	if err != nil {
		return nil, err
	}

	// Re-linking to an account that already owns another profile is the
	// same conflict CreateAuthor rejects
	if input.UserID != nil && *input.UserID != "" {
		if existing, err := service.repository.FindByUserID(context, *input.UserID); err == nil && existing.ID != author.ID {
			return nil, apperr.Conflict("Account already has an author profile")
		}
	}

	author.Name = input.Name
	author.Bio = input.Bio
	author.ImageURL = input.ImageURL
	author.CategoryID = input.CategoryID
	author.UserID = input.UserID

	if err := service.repository.UpdateAuthor(context, author); err != nil {
		return nil, err
	}

	return author, nil
}

// DeleteAuthor removes a profile from the catalogue.
func (service *Service) DeleteAuthor(context context.Context, id string) error {
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return err
	}
	return service.repository.DeleteAuthor(context, id)
}

// # Ownership Resolution

/*
FindByUserID resolves the author profile owned by a platform account.

The stored book_num counter can drift when books are edited directly
upstream, so the count is recomputed on every resolution and written
back when stale. The row's user_id is re-checked against the input
before the profile is trusted; a mismatch is treated as missing.

Returns:
  - *Author: The linked profile with a fresh book count
  - error: apperr.NotFound when no profile is linked
*/
func (service *Service) FindByUserID(context context.Context, userID string) (*Author, error) {
	if err := validate.New().UUID(FieldUserID, userID).Err(); err != nil {
		return nil, err
	}

	author, err := service.repository.FindByUserID(context, userID)
	if err != nil {
		return nil, err
	}

	// Never trust a row whose link does not match the requested account
	if author.UserID == nil || *author.UserID != userID {
		return nil, apperr.NotFound("Author")
	}

	// Recompute the credited book count; repair drift in place
	bookCount, err := service.repository.CountBooks(context, author.ID)
	if err != nil {
		return nil, err
	}
	if bookCount != author.BookNum {
		author.BookNum = bookCount
		if err := service.repository.UpdateAuthor(context, author); err != nil {
			return nil, err
		}
	}

	return author, nil
}

/*
EnsureForUser returns the author profile for an account, creating one if
none exists yet.

The flow is idempotent and serialised per account: a short-lived Redis
lock guards the lookup-then-insert window so concurrent logins cannot
create duplicate profiles. When the lock is contended the call waits
briefly and re-reads, since the winner is expected to have created the
profile by then.

Parameters:
  - userID: The platform account UUID
  - displayName: Seed value for the profile name on first creation
*/
func (service *Service) EnsureForUser(context context.Context, userID, displayName string) (*Author, error) {

	// Fast path: the profile already exists
	author, err := service.FindByUserID(context, userID)
	if err == nil {
		return author, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	// Serialise the lookup-then-insert window per account
	acquired, err := service.lock.Acquire(context, userID, constants.AuthorCreateLockTTL)
	if err != nil {
		return nil, err
	}

	if !acquired {
		// Another login is creating the profile; wait for it and re-read
		time.Sleep(constants.AuthorCreateLockRetryDelay)

		author, err := service.FindByUserID(context, userID)
		if err != nil {
			return nil, apperr.Conflict("Author profile creation is in progress")
		}
		return author, nil
	}
	defer func() { _ = service.lock.Release(context, userID) }()

	// Re-check under the lock before inserting
	author, err = service.FindByUserID(context, userID)
	if err == nil {
		return author, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	created := &Author{
		ID:     uuid.New(),
		Name:   displayName,
		Bio:    pointer.To(DefaultBio),
		UserID: pointer.To(userID),
	}

	if err := service.repository.CreateAuthor(context, created); err != nil {
		return nil, fmt.Errorf("author_service_ensure_failed: %w", err)
	}

	return created, nil
}

// # Self-Service Profile

// ProfileInput holds the fields an author may edit on their own profile.
type ProfileInput struct {
	Name     string
	Bio      *string
	ImageURL *string
}

/*
UpdateProfile lets an authenticated author edit their own profile.

The profile is resolved through the account link, never through a
client-supplied author ID, so an author can only ever touch their own
record.
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input ProfileInput) (*Author, error) {
	if err := validateInput(Input{Name: input.Name, Bio: input.Bio, ImageURL: input.ImageURL}); err != nil {
		return nil, err
	}

	author, err := service.FindByUserID(context, userID)
	if err != nil {
		return nil, err
	}

	author.Name = input.Name
	author.Bio = input.Bio
	author.ImageURL = input.ImageURL

	if err := service.repository.UpdateAuthor(context, author); err != nil {
		return nil, err
	}

	return author, nil
}
