// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/maktaba/internal/core/author"
	"github.com/taibuivan/maktaba/internal/core/user"
	"github.com/taibuivan/maktaba/internal/platform/apperr"
	"github.com/taibuivan/maktaba/internal/platform/sec"
	"github.com/taibuivan/maktaba/internal/users/auth"
)

const (
	adminUserID  = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	authorUserID = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	readerUserID = "cccccccc-cccc-cccc-cccc-cccccccccccc"
	profileID    = "dddddddd-dddd-dddd-dddd-dddddddddddd"
	testPassword = "correct horse battery"
)

// fakeUsers resolves accounts by email.
type fakeUsers struct {
	accounts map[string]*user.User
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*user.User, error) {
	account, ok := f.accounts[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return account, nil
}

// fakeAuthors records ownership resolution calls.
type fakeAuthors struct {
	ensureCalls int
	profiles    map[string]*author.Author
}

func (f *fakeAuthors) EnsureForUser(_ context.Context, userID, displayName string) (*author.Author, error) {
	f.ensureCalls++
	if profile, ok := f.profiles[userID]; ok {
		return profile, nil
	}
	uid := userID
	profile := &author.Author{ID: profileID, Name: displayName, UserID: &uid}
	f.profiles[userID] = profile
	return profile, nil
}

func (f *fakeAuthors) FindByUserID(_ context.Context, userID string) (*author.Author, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, apperr.NotFound("Author")
	}
	return profile, nil
}

func (f *fakeAuthors) UpdateProfile(_ context.Context, userID string, input author.ProfileInput) (*author.Author, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, apperr.NotFound("Author")
	}
	profile.Name = input.Name
	return profile, nil
}

// fakeSessions is an in-memory session store.
type fakeSessions struct {
	sessions map[string]*sec.Session
}

func (f *fakeSessions) Save(_ context.Context, session *sec.Session, _ time.Duration) error {
	f.sessions[session.SID] = session
	return nil
}

func (f *fakeSessions) Find(_ context.Context, sid string) (*sec.Session, error) {
	session, ok := f.sessions[sid]
	if !ok {
		return nil, apperr.Unauthorized("Session is invalid or expired")
	}
	return session, nil
}

func (f *fakeSessions) Delete(_ context.Context, sid string) error {
	delete(f.sessions, sid)
	return nil
}

// fakeTokens signs tokens as "sid|userID" so the tests can decompose them.
type fakeTokens struct{}

func (fakeTokens) SignSessionToken(sid, userID string, _ time.Duration) (string, error) {
	return sid + "|" + userID, nil
}

func (fakeTokens) VerifySessionToken(token string) (string, string, error) {
	for i := range token {
		if token[i] == '|' {
			return token[:i], token[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("malformed token")
}

// harness bundles the fakes around a ready-to-use service.
type harness struct {
	service  *auth.Service
	users    *fakeUsers
	authors  *fakeAuthors
	sessions *fakeSessions
}

func newHarness(t *testing.T, masterPassword string) *harness {
	t.Helper()

	hash, err := sec.HashPassword(testPassword)
	require.NoError(t, err)

	users := &fakeUsers{accounts: map[string]*user.User{
		"admin@maktaba.io":  {ID: adminUserID, Email: "admin@maktaba.io", DisplayName: "Admin", Role: sec.RoleAdmin, PasswordHash: hash},
		"author@maktaba.io": {ID: authorUserID, Email: "author@maktaba.io", DisplayName: "Laila", Role: sec.RoleAuthor, PasswordHash: hash},
		"reader@maktaba.io": {ID: readerUserID, Email: "reader@maktaba.io", DisplayName: "Reader", Role: sec.RoleUser, PasswordHash: hash},
		"locked@maktaba.io": {ID: readerUserID, Email: "locked@maktaba.io", DisplayName: "Locked", Role: sec.RoleAdmin, PasswordHash: hash, Disabled: true},
	}}
	authors := &fakeAuthors{profiles: map[string]*author.Author{}}
	sessions := &fakeSessions{sessions: map[string]*sec.Session{}}

	return &harness{
		service:  auth.NewService(users, authors, sessions, fakeTokens{}, masterPassword),
		users:    users,
		authors:  authors,
		sessions: sessions,
	}
}

/*
TestLogin_Admin verifies an admin login produces an admin-dashboard
session without touching author resolution.
*/
func TestLogin_Admin(t *testing.T) {
	h := newHarness(t, "")

	result, err := h.service.Login(context.Background(), auth.LoginInput{
		Email:    "admin@maktaba.io",
		Password: testPassword,
	})

	require.NoError(t, err)
	assert.Equal(t, sec.DashboardAdmin, result.Session.Dashboard)
	assert.Equal(t, adminUserID, result.Session.UserID)
	assert.Empty(t, result.Session.AuthorID)
	assert.Zero(t, h.authors.ensureCalls)
	assert.Contains(t, h.sessions.sessions, result.Session.SID)
	assert.NotEmpty(t, result.Token)
}

/*
TestLogin_Author verifies ownership resolution runs during author login
and the session carries the resolved profile ID.
*/
func TestLogin_Author(t *testing.T) {
	h := newHarness(t, "")

	result, err := h.service.Login(context.Background(), auth.LoginInput{
		Email:    "author@maktaba.io",
		Password: testPassword,
	})

	require.NoError(t, err)
	assert.Equal(t, sec.DashboardAuthor, result.Session.Dashboard)
	assert.Equal(t, profileID, result.Session.AuthorID)
	assert.Equal(t, 1, h.authors.ensureCalls)
}

/*
TestLogin_Failures covers the credential and gate failure modes. Unknown
emails and wrong passwords must be indistinguishable.
*/
func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		code     string
		message  string
	}{
		{"unknown_email", "ghost@maktaba.io", testPassword, "UNAUTHORIZED", "Invalid email or password"},
		{"wrong_password", "admin@maktaba.io", "nope", "UNAUTHORIZED", "Invalid email or password"},
		{"disabled_account", "locked@maktaba.io", testPassword, "FORBIDDEN", "Account is disabled"},
		{"no_dashboard_role", "reader@maktaba.io", testPassword, "FORBIDDEN", "Account has no dashboard access"},
		{"malformed_email", "not-an-email", testPassword, "VALIDATION_ERROR", ""},
		{"empty_password", "admin@maktaba.io", "", "VALIDATION_ERROR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "")

			_, err := h.service.Login(context.Background(), auth.LoginInput{Email: tt.email, Password: tt.password})

			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tt.code, appError.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, appError.Message)
			}
		})
	}
}

/*
TestLogin_MasterPassword verifies the development master password is
honoured only when configured.
*/
func TestLogin_MasterPassword(t *testing.T) {
	withMaster := newHarness(t, "letmein-dev")
	result, err := withMaster.service.Login(context.Background(), auth.LoginInput{
		Email:    "admin@maktaba.io",
		Password: "letmein-dev",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.DashboardAdmin, result.Session.Dashboard)

	withoutMaster := newHarness(t, "")
	_, err = withoutMaster.service.Login(context.Background(), auth.LoginInput{
		Email:    "admin@maktaba.io",
		Password: "letmein-dev",
	})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestResolveSessionToken covers payload cross-checking against the token
claim.
*/
func TestResolveSessionToken(t *testing.T) {
	h := newHarness(t, "")

	result, err := h.service.Login(context.Background(), auth.LoginInput{
		Email:    "admin@maktaba.io",
		Password: testPassword,
	})
	require.NoError(t, err)

	// Happy path
	session, err := h.service.ResolveSessionToken(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, adminUserID, session.UserID)

	// A payload overwritten under the same SID must not resolve for the
	// original token
	h.sessions.sessions[result.Session.SID].UserID = readerUserID
	_, err = h.service.ResolveSessionToken(context.Background(), result.Token)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// Garbage tokens
	_, err = h.service.ResolveSessionToken(context.Background(), "garbage")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestLogout verifies session teardown and tolerance of invalid tokens.
*/
func TestLogout(t *testing.T) {
	h := newHarness(t, "")

	result, err := h.service.Login(context.Background(), auth.LoginInput{
		Email:    "admin@maktaba.io",
		Password: testPassword,
	})
	require.NoError(t, err)

	require.NoError(t, h.service.Logout(context.Background(), result.Token))
	assert.NotContains(t, h.sessions.sessions, result.Session.SID)

	assert.NoError(t, h.service.Logout(context.Background(), "garbage"))
}

/*
TestAuthorProfile verifies the self-service surface is gated to author
and admin dashboards.
*/
func TestAuthorProfile(t *testing.T) {
	h := newHarness(t, "")

	_, err := h.service.Login(context.Background(), auth.LoginInput{
		Email:    "author@maktaba.io",
		Password: testPassword,
	})
	require.NoError(t, err)

	authorSession := &sec.Session{UserID: authorUserID, Dashboard: sec.DashboardAuthor}
	profile, err := h.service.AuthorProfile(context.Background(), authorSession)
	require.NoError(t, err)
	assert.Equal(t, profileID, profile.ID)

	noDashboard := &sec.Session{UserID: authorUserID, Dashboard: sec.DashboardNone}
	_, err = h.service.AuthorProfile(context.Background(), noDashboard)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}
