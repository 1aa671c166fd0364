// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/maktaba/internal/core/chapter"
	"github.com/taibuivan/maktaba/internal/platform/apperr"
	"github.com/taibuivan/maktaba/internal/platform/hasura"
)

// upstreamStub fakes the GraphQL service and records every document it sees.
type upstreamStub struct {
	server   *httptest.Server
	requests atomic.Int64
	lastVars map[string]any
	respond  func(query string) string
}

func newUpstreamStub(t *testing.T) *upstreamStub {
	t.Helper()

	stub := &upstreamStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.requests.Add(1)

		var body struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		stub.lastVars = body.Variables

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(stub.respond(body.Query)))
	}))
	t.Cleanup(stub.server.Close)

	return stub
}

func (stub *upstreamStub) client() *hasura.Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return hasura.NewClient(stub.server.URL, "test-secret", logger)
}

// chapterPayload renders a chapters list response with n rows and the
// given aggregate total.
func chapterPayload(n, total int) string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = fmt.Sprintf(`{
			"id": "00000000-0000-0000-0000-0000000000%02d",
			"title": "Chapter %d",
			"content": {"blocks": []},
			"chapter_num": %d,
			"book_id": "11111111-1111-1111-1111-111111111111",
			"created_at": "2026-01-01T00:00:00Z",
			"updated_at": "2026-01-01T00:00:00Z"
		}`, i+1, i+1, i+1)
	}

	out := `{"data": {"chapters": [`
	for i, row := range rows {
		if i > 0 {
			out += ","
		}
		out += row
	}
	out += fmt.Sprintf(`], "chapters_aggregate": {"aggregate": {"count": %d}}}}`, total)
	return out
}

/*
TestListChapters_EmptyRestriction verifies that a present-but-empty book
restriction returns an empty page without issuing any upstream request.
*/
func TestListChapters_EmptyRestriction(t *testing.T) {
	stub := newUpstreamStub(t)
	stub.respond = func(string) string { return chapterPayload(0, 0) }
	repository := chapter.NewRepository(stub.client())

	empty := []string{}
	chapters, total, err := repository.ListChapters(context.Background(), chapter.Filter{BookIDs: &empty}, 20, 0)

	require.NoError(t, err)
	assert.Empty(t, chapters)
	assert.Zero(t, total)
	assert.Zero(t, stub.requests.Load(), "no upstream call expected for an empty restriction")
}

/*
TestListChapters_Restricted verifies the book restriction travels as an
_in expression in the document variables.
*/
func TestListChapters_Restricted(t *testing.T) {
	stub := newUpstreamStub(t)
	stub.respond = func(string) string { return chapterPayload(2, 2) }
	repository := chapter.NewRepository(stub.client())

	bookIDs := []string{"11111111-1111-1111-1111-111111111111", "22222222-2222-2222-2222-222222222222"}
	chapters, total, err := repository.ListChapters(context.Background(), chapter.Filter{BookIDs: &bookIDs}, 20, 0)

	require.NoError(t, err)
	assert.Len(t, chapters, 2)
	assert.Equal(t, 2, total)

	where, ok := stub.lastVars["where"].(map[string]any)
	require.True(t, ok)
	bookExp, ok := where["book_id"].(map[string]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{bookIDs[0], bookIDs[1]}, bookExp["_in"])
}

/*
TestListChapters_Unrestricted verifies a nil restriction sends no book_id
expression at all.
*/
func TestListChapters_Unrestricted(t *testing.T) {
	stub := newUpstreamStub(t)
	stub.respond = func(string) string { return chapterPayload(1, 1) }
	repository := chapter.NewRepository(stub.client())

	_, _, err := repository.ListChapters(context.Background(), chapter.Filter{}, 20, 0)
	require.NoError(t, err)

	where, ok := stub.lastVars["where"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, where, "book_id")
}

/*
TestListChapters_Search verifies the case-insensitive title match is sent
as a wrapped _ilike pattern. Non-Latin terms must arrive byte-for-byte
intact so a partial Arabic word still matches its full title upstream.
*/
func TestListChapters_Search(t *testing.T) {
	tests := []struct {
		name    string
		search  string
		pattern string
	}{
		{"ascii", "Dawn", "%Dawn%"},
		{"arabic_substring", "قدم", "%قدم%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newUpstreamStub(t)
			stub.respond = func(string) string { return chapterPayload(1, 1) }
			repository := chapter.NewRepository(stub.client())

			_, _, err := repository.ListChapters(context.Background(), chapter.Filter{Search: tt.search}, 20, 0)
			require.NoError(t, err)

			where := stub.lastVars["where"].(map[string]any)
			titleExp, ok := where["title"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.pattern, titleExp["_ilike"])
		})
	}
}

/*
TestListChapters_Pagination verifies the page slice and the aggregate
total are reported independently.
*/
func TestListChapters_Pagination(t *testing.T) {
	stub := newUpstreamStub(t)
	stub.respond = func(string) string { return chapterPayload(5, 15) }
	repository := chapter.NewRepository(stub.client())

	chapters, total, err := repository.ListChapters(context.Background(), chapter.Filter{}, 10, 10)

	require.NoError(t, err)
	assert.Len(t, chapters, 5)
	assert.Equal(t, 15, total)
	assert.Equal(t, float64(10), stub.lastVars["limit"])
	assert.Equal(t, float64(10), stub.lastVars["offset"])
}

/*
TestGetChapter_NotFound verifies a null by-pk result maps to NOT_FOUND
instead of a nil entity.
*/
func TestGetChapter_NotFound(t *testing.T) {
	stub := newUpstreamStub(t)
	stub.respond = func(string) string { return `{"data": {"chapters_by_pk": null}}` }
	repository := chapter.NewRepository(stub.client())

	_, err := repository.GetChapter(context.Background(), "33333333-3333-3333-3333-333333333333")

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
