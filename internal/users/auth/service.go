// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/maktaba/internal/core/author"
	"github.com/taibuivan/maktaba/internal/core/user"
	"github.com/taibuivan/maktaba/internal/platform/apperr"
	"github.com/taibuivan/maktaba/internal/platform/sec"
	"github.com/taibuivan/maktaba/internal/platform/validate"
	"github.com/taibuivan/maktaba/pkg/uuid"
)

// # Contracts & Types

// UserDirectory resolves platform accounts during login. The user
// package provides the production implementation.
type UserDirectory interface {
	// FindByEmail returns the account with the given email, including
	// its password hash. Returns apperr.NotFound when absent.
	FindByEmail(context context.Context, email string) (*user.User, error)
}

// AuthorResolver handles author ownership resolution for author-dashboard
// sessions. The author package provides the production implementation.
type AuthorResolver interface {
	// EnsureForUser returns the author profile linked to the account,
	// creating one if none exists.
	EnsureForUser(context context.Context, userID, displayName string) (*author.Author, error)

	// FindByUserID returns the linked profile with a fresh book count.
	FindByUserID(context context.Context, userID string) (*author.Author, error)

	// UpdateProfile edits the caller's own profile.
	UpdateProfile(context context.Context, userID string, input author.ProfileInput) (*author.Author, error)
}

// TokenProvider signs and verifies session cookie tokens.
type TokenProvider interface {
	SignSessionToken(sid, userID string, timeToLive time.Duration) (string, error)
	VerifySessionToken(tokenString string) (sid, userID string, err error)
}

// Service implements dashboard authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to the dashboard
// gate or credential checks must be reviewed carefully.
type Service struct {
	users             UserDirectory
	authors           AuthorResolver
	sessionRepository SessionRepository
	tokenProvider     TokenProvider

	// devMasterPassword, when non-empty, is accepted for any account.
	// Only ever set in development environments.
	devMasterPassword string
}

// NewService constructs a new auth [Service] with its dependencies.
func NewService(
	users UserDirectory,
	authors AuthorResolver,
	sessionRepo SessionRepository,
	tokenProv TokenProvider,
	devMasterPassword string,
) *Service {
	return &Service{
		users:             users,
		authors:           authors,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
		devMasterPassword: devMasterPassword,
	}
}

// # Login Flow

// LoginInput holds the submitted credentials.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the established session and its signed cookie token.
type LoginResult struct {
	Session *sec.Session
	Token   string
}

/*
Login authenticates a user and establishes a dashboard session.

The flow is: resolve the account by email, verify the password, decide
the dashboard from the role, and — for author-dashboard sessions — run
ownership resolution so the session carries the author profile ID.
Accounts whose role maps to no dashboard are rejected with Forbidden
even when the credentials are correct.

Credential failures and unknown emails both surface as the same
Unauthorized message so the endpoint does not reveal which emails exist.

Returns:
  - *LoginResult: The session payload and signed token
  - error: Unauthorized, Forbidden, or upstream errors
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {

	// Input validation
	err := validate.New().
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		Err()
	if err != nil {
		return nil, err
	}

	// Resolve the account. Unknown emails look identical to bad passwords.
	account, err := service.users.FindByEmail(context, input.Email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if account.Disabled {
		return nil, apperr.Forbidden("Account is disabled")
	}

	// Verify credentials. The development master password bypasses the
	// hash check; it is empty outside development.
	if !service.passwordMatches(account.PasswordHash, input.Password) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// Dashboard gate: the role alone decides the landing surface
	dashboard := sec.DashboardFor(account.Role)
	if dashboard == sec.DashboardNone {
		return nil, apperr.Forbidden("Account has no dashboard access")
	}

	session := &sec.Session{
		SID:       uuid.New(),
		UserID:    account.ID,
		Email:     account.Email,
		Role:      account.Role,
		Dashboard: dashboard,
	}

	// Author-dashboard sessions carry their resolved profile ID
	if dashboard == sec.DashboardAuthor {
		profile, err := service.authors.EnsureForUser(context, account.ID, account.DisplayName)
		if err != nil {
			return nil, fmt.Errorf("auth_service_ownership_failed: %w", err)
		}
		session.AuthorID = profile.ID
	}

	// Persist the payload, then sign the cookie token
	if err := service.sessionRepository.Save(context, session, SessionTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_save_failed: %w", err)
	}

	token, err := service.tokenProvider.SignSessionToken(session.SID, session.UserID, SessionTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_sign_failed: %w", err)
	}

	return &LoginResult{Session: session, Token: token}, nil
}

// passwordMatches verifies the submitted password against the stored
// hash, honouring the development master password when configured.
func (service *Service) passwordMatches(hash, password string) bool {
	if service.devMasterPassword != "" && password == service.devMasterPassword {
		return true
	}
	return sec.CheckPasswordHash(password, hash)
}

// # Session Lifecycle

/*
ResolveSessionToken validates a cookie token and loads its session.

The token signature binds the SID to the user ID; the stored payload is
cross-checked against the claim so a payload overwritten under the same
SID cannot be replayed for a different account.

Returns:
  - *sec.Session: The live session payload
  - error: apperr.Unauthorized for invalid, expired, or mismatched tokens
*/
func (service *Service) ResolveSessionToken(context context.Context, token string) (*sec.Session, error) {
	sid, userID, err := service.tokenProvider.VerifySessionToken(token)
	if err != nil {
		return nil, apperr.Unauthorized("Session is invalid or expired")
	}

	session, err := service.sessionRepository.Find(context, sid)
	if err != nil {
		return nil, err
	}

	if session.UserID != userID {
		return nil, apperr.Unauthorized("Session is invalid or expired")
	}

	return session, nil
}

// Logout ends the session stored under the token's SID. Invalid tokens
// are treated as already logged out.
func (service *Service) Logout(context context.Context, token string) error {
	sid, _, err := service.tokenProvider.VerifySessionToken(token)
	if err != nil {
		return nil
	}
	return service.sessionRepository.Delete(context, sid)
}

// # Author Self-Service

// AuthorProfile returns the caller's own author profile with a fresh
// book count.
func (service *Service) AuthorProfile(context context.Context, session *sec.Session) (*author.Author, error) {
	if session.Dashboard != sec.DashboardAuthor && session.Dashboard != sec.DashboardAdmin {
		return nil, apperr.Forbidden("No author profile linked to this account")
	}
	return service.authors.FindByUserID(context, session.UserID)
}

// UpdateAuthorProfile edits the caller's own author profile.
func (service *Service) UpdateAuthorProfile(context context.Context, session *sec.Session, input author.ProfileInput) (*author.Author, error) {
	if session.Dashboard != sec.DashboardAuthor && session.Dashboard != sec.DashboardAdmin {
		return nil, apperr.Forbidden("No author profile linked to this account")
	}
	return service.authors.UpdateProfile(context, session.UserID, input)
}
