// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/maktaba/internal/core/author"
	"github.com/taibuivan/maktaba/internal/platform/apperr"
)

const (
	testUserID  = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	otherUserID = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
)

// fakeRepository is an in-memory author store with controllable book counts.
type fakeRepository struct {
	mu          sync.Mutex
	authors     map[string]*author.Author
	bookCounts  map[string]int
	findResult  *author.Author // when set, FindByUserID returns this row verbatim
	createCalls int
	updateCalls int
}

func newFakeRepository(authors ...*author.Author) *fakeRepository {
	repository := &fakeRepository{
		authors:    map[string]*author.Author{},
		bookCounts: map[string]int{},
	}
	for _, a := range authors {
		repository.authors[a.ID] = a
	}
	return repository
}

func (f *fakeRepository) ListAuthors(_ context.Context, _ author.Filter, _, _ int) ([]*author.Author, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*author.Author, 0, len(f.authors))
	for _, a := range f.authors {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetAuthor(_ context.Context, id string) (*author.Author, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.authors[id]
	if !ok {
		return nil, apperr.NotFound("Author")
	}
	copied := *a
	return &copied, nil
}

func (f *fakeRepository) FindByUserID(_ context.Context, userID string) (*author.Author, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findResult != nil {
		copied := *f.findResult
		return &copied, nil
	}
	for _, a := range f.authors {
		if a.UserID != nil && *a.UserID == userID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Author")
}

func (f *fakeRepository) CountBooks(_ context.Context, authorID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bookCounts[authorID], nil
}

func (f *fakeRepository) CreateAuthor(_ context.Context, a *author.Author) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.authors[a.ID] = a
	return nil
}

func (f *fakeRepository) UpdateAuthor(_ context.Context, a *author.Author) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if _, ok := f.authors[a.ID]; !ok {
		return apperr.NotFound("Author")
	}
	copied := *a
	f.authors[a.ID] = &copied
	return nil
}

func (f *fakeRepository) DeleteAuthor(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.authors[id]; !ok {
		return apperr.NotFound("Author")
	}
	delete(f.authors, id)
	return nil
}

// fakeLock is an in-process creation lock.
type fakeLock struct {
	held         bool
	acquireCalls int
}

func (f *fakeLock) Acquire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	f.acquireCalls++
	if f.held {
		return false, nil
	}
	f.held = true
	return true, nil
}

func (f *fakeLock) Release(_ context.Context, _ string) error {
	f.held = false
	return nil
}

func linkedAuthor(userID string, bookNum int) *author.Author {
	uid := userID
	return &author.Author{
		ID:      "11111111-1111-1111-1111-111111111111",
		Name:    "Naguib Mahfouz",
		BookNum: bookNum,
		UserID:  &uid,
	}
}

/*
TestFindByUserID_RepairsBookCount verifies a stale book_num counter is
recomputed and written back during resolution.
*/
func TestFindByUserID_RepairsBookCount(t *testing.T) {
	repository := newFakeRepository(linkedAuthor(testUserID, 3))
	repository.bookCounts["11111111-1111-1111-1111-111111111111"] = 7
	service := author.NewService(repository, &fakeLock{})

	found, err := service.FindByUserID(context.Background(), testUserID)

	require.NoError(t, err)
	assert.Equal(t, 7, found.BookNum)
	assert.Equal(t, 1, repository.updateCalls, "stale counter should be repaired upstream")

	stored, _ := repository.GetAuthor(context.Background(), found.ID)
	assert.Equal(t, 7, stored.BookNum)
}

/*
TestFindByUserID_FreshCount verifies no write happens when the counter is
already accurate.
*/
func TestFindByUserID_FreshCount(t *testing.T) {
	repository := newFakeRepository(linkedAuthor(testUserID, 2))
	repository.bookCounts["11111111-1111-1111-1111-111111111111"] = 2
	service := author.NewService(repository, &fakeLock{})

	_, err := service.FindByUserID(context.Background(), testUserID)

	require.NoError(t, err)
	assert.Zero(t, repository.updateCalls)
}

/*
TestFindByUserID_LinkMismatch verifies a row whose user link does not
match the requested account is treated as missing.
*/
func TestFindByUserID_LinkMismatch(t *testing.T) {
	// Force the store to hand back a row linked to a different account
	repository := newFakeRepository()
	repository.findResult = linkedAuthor(otherUserID, 0)
	service := author.NewService(repository, &fakeLock{})

	_, err := service.FindByUserID(context.Background(), testUserID)

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestEnsureForUser_Existing verifies the fast path returns the linked
profile without acquiring the lock or inserting.
*/
func TestEnsureForUser_Existing(t *testing.T) {
	repository := newFakeRepository(linkedAuthor(testUserID, 0))
	lock := &fakeLock{}
	service := author.NewService(repository, lock)

	found, err := service.EnsureForUser(context.Background(), testUserID, "Ignored Seed")

	require.NoError(t, err)
	assert.Equal(t, "Naguib Mahfouz", found.Name)
	assert.Zero(t, lock.acquireCalls)
	assert.Zero(t, repository.createCalls)
}

/*
TestEnsureForUser_CreatesOnce verifies first-login creation seeds the
profile from the display name and links it to the account.
*/
func TestEnsureForUser_CreatesOnce(t *testing.T) {
	repository := newFakeRepository()
	lock := &fakeLock{}
	service := author.NewService(repository, lock)

	created, err := service.EnsureForUser(context.Background(), testUserID, "Tayeb Salih")

	require.NoError(t, err)
	assert.Equal(t, "Tayeb Salih", created.Name)
	require.NotNil(t, created.UserID)
	assert.Equal(t, testUserID, *created.UserID)
	require.NotNil(t, created.Bio, "first creation must seed a bio")
	assert.Equal(t, author.DefaultBio, *created.Bio)
	assert.Equal(t, 1, repository.createCalls)
	assert.False(t, lock.held, "lock must be released after creation")

	// Second call is idempotent
	again, err := service.EnsureForUser(context.Background(), testUserID, "Different Seed")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, 1, repository.createCalls)
}

/*
TestEnsureForUser_Contended verifies the loser of the creation race waits
and re-reads the winner's row instead of inserting a duplicate.
*/
func TestEnsureForUser_Contended(t *testing.T) {
	repository := newFakeRepository()
	lock := &fakeLock{held: true}
	service := author.NewService(repository, lock)

	// Simulate the winner finishing while the loser sleeps
	go func() {
		time.Sleep(50 * time.Millisecond)
		uid := testUserID
		_ = repository.CreateAuthor(context.Background(), &author.Author{
			ID:     "22222222-2222-2222-2222-222222222222",
			Name:   "Winner",
			UserID: &uid,
		})
	}()

	found, err := service.EnsureForUser(context.Background(), testUserID, "Loser Seed")

	require.NoError(t, err)
	assert.Equal(t, "Winner", found.Name)
	assert.Equal(t, 1, repository.createCalls, "the loser must not insert a duplicate")
}

/*
TestEnsureForUser_ContendedNoWinner verifies a conflict surfaces when the
lock holder never materialises a profile.
*/
func TestEnsureForUser_ContendedNoWinner(t *testing.T) {
	repository := newFakeRepository()
	lock := &fakeLock{held: true}
	service := author.NewService(repository, lock)

	_, err := service.EnsureForUser(context.Background(), otherUserID, "Seed")

	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestCreateAuthor_DuplicateLink verifies linking a second profile to an
already-linked account is rejected.
*/
func TestCreateAuthor_DuplicateLink(t *testing.T) {
	repository := newFakeRepository(linkedAuthor(testUserID, 0))
	service := author.NewService(repository, &fakeLock{})

	uid := testUserID
	_, err := service.CreateAuthor(context.Background(), author.Input{Name: "Second Profile", UserID: &uid})

	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestUpdateAuthor_RelinkConflict verifies the admin update path cannot
re-link a profile to an account that already owns a different one, while
keeping an unchanged link editable.
*/
func TestUpdateAuthor_RelinkConflict(t *testing.T) {
	linked := linkedAuthor(testUserID, 0)
	unlinked := &author.Author{
		ID:   "33333333-3333-3333-3333-333333333333",
		Name: "Ghassan Kanafani",
	}
	repository := newFakeRepository(linked, unlinked)
	service := author.NewService(repository, &fakeLock{})

	// Stealing an already-linked account is rejected
	uid := testUserID
	_, err := service.UpdateAuthor(context.Background(), unlinked.ID, author.Input{
		Name:   "Ghassan Kanafani",
		UserID: &uid,
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// Updating the linked profile while keeping its own link is fine
	updated, err := service.UpdateAuthor(context.Background(), linked.ID, author.Input{
		Name:   "N. Mahfouz",
		UserID: &uid,
	})
	require.NoError(t, err)
	assert.Equal(t, "N. Mahfouz", updated.Name)
}

/*
TestUpdateProfile verifies self-service edits resolve through the account
link and never touch another author's row.
*/
func TestUpdateProfile(t *testing.T) {
	repository := newFakeRepository(linkedAuthor(testUserID, 0))
	service := author.NewService(repository, &fakeLock{})

	bio := "Cairo Trilogy."
	updated, err := service.UpdateProfile(context.Background(), testUserID, author.ProfileInput{
		Name: "N. Mahfouz",
		Bio:  &bio,
	})

	require.NoError(t, err)
	assert.Equal(t, "N. Mahfouz", updated.Name)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "Cairo Trilogy.", *updated.Bio)

	_, err = service.UpdateProfile(context.Background(), otherUserID, author.ProfileInput{Name: "Hijack"})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
