// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/maktaba/pkg/pagination"
)

/*
TestFromRequest covers parsing and clamping of the page window.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/api/books", 1, 10},
		{"explicit", "/api/books?page=3&limit=25", 3, 25},
		{"zero_page", "/api/books?page=0", 1, 10},
		{"negative_page", "/api/books?page=-5", 1, 10},
		{"zero_limit", "/api/books?limit=0", 1, 10},
		{"excessive_limit", "/api/books?limit=5000", 1, 10},
		{"max_limit", "/api/books?limit=100", 1, 100},
		{"garbage", "/api/books?page=abc&limit=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)

			params := pagination.FromRequest(request)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestOffset verifies the row offset derivation.
*/
func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, pagination.Params{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 50, pagination.Params{Page: 3, Limit: 25}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 10}.Offset())
}

/*
TestNewMeta verifies total page rounding.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		limit      int
		totalPages int
	}{
		{"exact_fit", 100, 10, 10},
		{"partial_last_page", 101, 10, 11},
		{"single_row", 1, 10, 1},
		{"empty", 0, 10, 0},
		{"zero_limit", 50, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(1, tt.limit, tt.total)

			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.total, meta.Total)
		})
	}
}
