// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"fmt"

	"github.com/taibuivan/maktaba/internal/platform/apperr"
	"github.com/taibuivan/maktaba/internal/platform/sec"
	"github.com/taibuivan/maktaba/internal/platform/validate"
	"github.com/taibuivan/maktaba/pkg/uuid"
)

// # Service Layer

// Service implements account directory use cases for the admin console.
type Service struct {
	repository Repository
}

// NewService constructs a new user [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
ListUsers retrieves a paginated page of accounts matching the filter.

Parameters:
  - context: context.Context
  - filter: Filter (free-text query over email and display name)
  - limit, offset: page window

Returns:
  - []*User: Matching accounts
  - int: Total count before pagination
  - error: Upstream errors
*/
func (service *Service) ListUsers(context context.Context, filter Filter, limit, offset int) ([]*User, int, error) {
	return service.repository.ListUsers(context, filter, limit, offset)
}

// GetUser retrieves a single account by its UUID.
func (service *Service) GetUser(context context.Context, id string) (*User, error) {

	// Enforce UUID shape before touching the upstream
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return nil, err
	}

	return service.repository.GetUser(context, id)
}

// CreateInput holds the data required to provision a new account.
type CreateInput struct {
	Email       string
	DisplayName string
	Password    string
	Role        sec.UserRole
	Disabled    bool
}

/*
CreateUser validates, hashes, and persists a brand new account.

Roles are assigned explicitly by the operator; nothing is inferred
from the email address.

Returns:
  - *User: Created entity
  - error: Validation, Conflict (email taken) or upstream errors
*/
func (service *Service) CreateUser(context context.Context, input CreateInput) (*User, error) {

	// Input validation
	err := validate.New().
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldDisplayName, input.DisplayName).
		MaxLen(FieldDisplayName, input.DisplayName, 120).
		MinLen(FieldPassword, input.Password, 8).
		OneOf(FieldRole, string(input.Role), string(sec.RoleAdmin), string(sec.RoleMe), string(sec.RoleAuthor), string(sec.RoleUser)).
		Err()
	if err != nil {
		return nil, err
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	if _, err := service.repository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("user_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID.
	account := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		DisplayName:  input.DisplayName,
		PasswordHash: hashedPassword,
		Role:         input.Role,
		Disabled:     input.Disabled,
	}

	if err := service.repository.CreateUser(context, account); err != nil {
		return nil, fmt.Errorf("user_service_create_failed: %w", err)
	}

	return account, nil
}

// UpdateInput holds the mutable account fields.
type UpdateInput struct {
	Email         string
	DisplayName   string
	Role          sec.UserRole
	Disabled      bool
	EmailVerified bool
}

/*
UpdateUser applies a full update to an existing account record.

Passwords are never modified here; see [Service.ChangePassword].
*/
func (service *Service) UpdateUser(context context.Context, id string, input UpdateInput) (*User, error) {

	// Input validation
	err := validate.New().
		UUID(FieldID, id).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldDisplayName, input.DisplayName).
		MaxLen(FieldDisplayName, input.DisplayName, 120).
		OneOf(FieldRole, string(input.Role), string(sec.RoleAdmin), string(sec.RoleMe), string(sec.RoleAuthor), string(sec.RoleUser)).
		Err()
	if err != nil {
		return nil, err
	}

	// Fetch the current state first so the response carries timestamps
	account, err := service.repository.GetUser(context, id)
	if err != nil {
		return nil, err
	}

	account.Email = input.Email
	account.DisplayName = input.DisplayName
	account.Role = input.Role
	account.Disabled = input.Disabled
	account.EmailVerified = input.EmailVerified

	if err := service.repository.UpdateUser(context, account); err != nil {
		return nil, err
	}

	return account, nil
}

/*
ChangePassword replaces the stored password hash for an account.

The operator supplies the new secret directly; no knowledge of the
previous password is required from the admin console.
*/
func (service *Service) ChangePassword(context context.Context, id, newPassword string) error {

	// Input validation
	err := validate.New().
		UUID(FieldID, id).
		MinLen(FieldPassword, newPassword, 8).
		Err()
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("user_service_hash_failed: %w", err)
	}

	return service.repository.UpdatePassword(context, id, hashedPassword)
}

// DeleteUser removes an account from the directory.
func (service *Service) DeleteUser(context context.Context, id string) error {
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return err
	}
	return service.repository.DeleteUser(context, id)
}
