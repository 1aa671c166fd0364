// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/maktaba/pkg/slug"
)

/*
TestFrom covers the normalization pipeline, including accent folding and
the documented empty-slug case for fully non-Latin input.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello world", "hello-world"},
		{"filename_noise", "Cover Photo (1)", "cover-photo-1"},
		{"accents", "Café au Lait", "cafe-au-lait"},
		{"diacritics", "Antoine de Saint-Exupéry", "antoine-de-saint-exupery"},
		{"multi_hyphen_collapse", "a -- b --- c", "a-b-c"},
		{"leading_trailing_noise", "  !!hello!!  ", "hello"},
		{"digits_kept", "volume 12 part 3", "volume-12-part-3"},
		{"arabic_empty", "مكتبة", ""},
		{"empty_input", "", ""},
		{"only_symbols", "!@#$%", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
