// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/maktaba/internal/core/chapter"
	"github.com/taibuivan/maktaba/internal/platform/apperr"
)

const (
	testAuthorID  = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	ownedBookID   = "11111111-1111-1111-1111-111111111111"
	foreignBookID = "99999999-9999-9999-9999-999999999999"
)

// fakeRepository is an in-memory chapter store recording the filters it
// was queried with.
type fakeRepository struct {
	chapters   map[string]*chapter.Chapter
	lastFilter chapter.Filter
	listCalls  int
}

func newFakeRepository(chapters ...*chapter.Chapter) *fakeRepository {
	repository := &fakeRepository{chapters: map[string]*chapter.Chapter{}}
	for _, c := range chapters {
		repository.chapters[c.ID] = c
	}
	return repository
}

func (f *fakeRepository) ListChapters(_ context.Context, filter chapter.Filter, limit, offset int) ([]*chapter.Chapter, int, error) {
	f.listCalls++
	f.lastFilter = filter

	if filter.BookIDs != nil && len(*filter.BookIDs) == 0 {
		return []*chapter.Chapter{}, 0, nil
	}

	out := make([]*chapter.Chapter, 0, len(f.chapters))
	for _, c := range f.chapters {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetChapter(_ context.Context, id string) (*chapter.Chapter, error) {
	c, ok := f.chapters[id]
	if !ok {
		return nil, apperr.NotFound("Chapter")
	}
	copied := *c
	return &copied, nil
}

func (f *fakeRepository) CreateChapter(_ context.Context, c *chapter.Chapter) error {
	f.chapters[c.ID] = c
	return nil
}

func (f *fakeRepository) UpdateChapter(_ context.Context, c *chapter.Chapter) error {
	if _, ok := f.chapters[c.ID]; !ok {
		return apperr.NotFound("Chapter")
	}
	f.chapters[c.ID] = c
	return nil
}

func (f *fakeRepository) DeleteChapter(_ context.Context, id string) error {
	if _, ok := f.chapters[id]; !ok {
		return apperr.NotFound("Chapter")
	}
	delete(f.chapters, id)
	return nil
}

// fakeBookDirectory maps author IDs to the book IDs credited to them.
type fakeBookDirectory struct {
	owned map[string][]string
}

func (f *fakeBookDirectory) ListIDsByAuthor(_ context.Context, authorID string) ([]string, error) {
	return f.owned[authorID], nil
}

func ownedChapter() *chapter.Chapter {
	return &chapter.Chapter{
		ID:         "cccccccc-cccc-cccc-cccc-cccccccccccc",
		Title:      "The First Dawn",
		Content:    json.RawMessage(`{"blocks": []}`),
		ChapterNum: 1,
		BookID:     ownedBookID,
	}
}

func foreignChapter() *chapter.Chapter {
	return &chapter.Chapter{
		ID:         "dddddddd-dddd-dddd-dddd-dddddddddddd",
		Title:      "Someone Else's Work",
		Content:    json.RawMessage(`{"blocks": []}`),
		ChapterNum: 1,
		BookID:     foreignBookID,
	}
}

func validInput(bookID string) chapter.Input {
	return chapter.Input{
		Title:      "New Chapter",
		Content:    json.RawMessage(`{"blocks": []}`),
		ChapterNum: 2,
		BookID:     bookID,
	}
}

/*
TestListChaptersForAuthor_ZeroBooks verifies an author with no credited
books gets an empty page through a present restriction, never an
unrestricted query.
*/
func TestListChaptersForAuthor_ZeroBooks(t *testing.T) {
	repository := newFakeRepository(ownedChapter())
	books := &fakeBookDirectory{owned: map[string][]string{}}
	service := chapter.NewService(repository, books)

	chapters, total, err := service.ListChaptersForAuthor(context.Background(), testAuthorID, "", 20, 0)

	require.NoError(t, err)
	assert.Empty(t, chapters)
	assert.Zero(t, total)

	require.NotNil(t, repository.lastFilter.BookIDs, "restriction must be present, not nil")
	assert.Empty(t, *repository.lastFilter.BookIDs)
}

/*
TestListChaptersForAuthor_Restricted verifies the owned book set is
forced into the repository filter.
*/
func TestListChaptersForAuthor_Restricted(t *testing.T) {
	repository := newFakeRepository(ownedChapter())
	books := &fakeBookDirectory{owned: map[string][]string{testAuthorID: {ownedBookID}}}
	service := chapter.NewService(repository, books)

	_, _, err := service.ListChaptersForAuthor(context.Background(), testAuthorID, "dawn", 20, 0)

	require.NoError(t, err)
	require.NotNil(t, repository.lastFilter.BookIDs)
	assert.Equal(t, []string{ownedBookID}, *repository.lastFilter.BookIDs)
	assert.Equal(t, "dawn", repository.lastFilter.Search)
}

/*
TestCreateChapterForAuthor covers ownership enforcement on creation.
*/
func TestCreateChapterForAuthor(t *testing.T) {
	tests := []struct {
		name      string
		bookID    string
		wantErr   bool
		errStatus int
	}{
		{"owned_book", ownedBookID, false, 0},
		{"foreign_book", foreignBookID, true, 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := newFakeRepository()
			books := &fakeBookDirectory{owned: map[string][]string{testAuthorID: {ownedBookID}}}
			service := chapter.NewService(repository, books)

			created, err := service.CreateChapterForAuthor(context.Background(), testAuthorID, validInput(tt.bookID))

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.errStatus, apperr.As(err).HTTPStatus)
				assert.Empty(t, repository.chapters)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
			assert.Len(t, repository.chapters, 1)
		})
	}
}

/*
TestUpdateChapterForAuthor_Rehoming verifies moving a chapter into a book
the author does not own is rejected.
*/
func TestUpdateChapterForAuthor_Rehoming(t *testing.T) {
	repository := newFakeRepository(ownedChapter())
	books := &fakeBookDirectory{owned: map[string][]string{testAuthorID: {ownedBookID}}}
	service := chapter.NewService(repository, books)

	_, err := service.UpdateChapterForAuthor(context.Background(), testAuthorID, ownedChapter().ID, validInput(foreignBookID))

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestUpdateChapterForAuthor_ForeignChapter verifies a foreign chapter
surfaces as NOT_FOUND rather than FORBIDDEN.
*/
func TestUpdateChapterForAuthor_ForeignChapter(t *testing.T) {
	repository := newFakeRepository(foreignChapter())
	books := &fakeBookDirectory{owned: map[string][]string{testAuthorID: {ownedBookID}}}
	service := chapter.NewService(repository, books)

	_, err := service.UpdateChapterForAuthor(context.Background(), testAuthorID, foreignChapter().ID, validInput(ownedBookID))

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

/*
TestDeleteChapterForAuthor verifies ownership enforcement on deletion.
*/
func TestDeleteChapterForAuthor(t *testing.T) {
	owned := ownedChapter()
	foreign := foreignChapter()
	repository := newFakeRepository(owned, foreign)
	books := &fakeBookDirectory{owned: map[string][]string{testAuthorID: {ownedBookID}}}
	service := chapter.NewService(repository, books)

	require.NoError(t, service.DeleteChapterForAuthor(context.Background(), testAuthorID, owned.ID))
	assert.NotContains(t, repository.chapters, owned.ID)

	err := service.DeleteChapterForAuthor(context.Background(), testAuthorID, foreign.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Contains(t, repository.chapters, foreign.ID)
}

/*
TestCreateChapter_Validation covers the shared input rules.
*/
func TestCreateChapter_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input chapter.Input
	}{
		{"missing_title", chapter.Input{ChapterNum: 1, BookID: ownedBookID}},
		{"zero_ordinal", chapter.Input{Title: "T", ChapterNum: 0, BookID: ownedBookID}},
		{"bad_book_id", chapter.Input{Title: "T", ChapterNum: 1, BookID: "not-a-uuid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := chapter.NewService(newFakeRepository(), &fakeBookDirectory{})

			_, err := service.CreateChapter(context.Background(), tt.input)

			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}
