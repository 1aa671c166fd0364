// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/maktaba/pkg/query"
)

/*
TestStringSlice verifies comma splitting, trimming, and empty handling.
*/
func TestStringSlice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "a", []string{"a"}},
		{"multiple", "a,b,c", []string{"a", "b", "c"}},
		{"whitespace_trimmed", " a , b ", []string{"a", "b"}},
		{"blank_segments_dropped", "a,,b,", []string{"a", "b"}},
		{"only_commas", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.StringSlice(tt.input))
		})
	}
}

/*
TestBool verifies boolean parsing with defaults.
*/
func TestBool(t *testing.T) {
	assert.True(t, query.Bool("true", false))
	assert.True(t, query.Bool("1", false))
	assert.False(t, query.Bool("false", true))
	assert.True(t, query.Bool("", true))
	assert.False(t, query.Bool("", false))
	assert.True(t, query.Bool("banana", true))
}
