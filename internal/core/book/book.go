// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book manages the library catalogue's book records.

Books optionally reference an author profile and a category. The chapter
count carried on each record is derived from the chapters table at read
time; it is never stored.
*/
package book

import "time"

// # Entity Definition

// Book represents a catalogue entry.
type Book struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	ISBN          *string    `json:"isbn"`
	CoverURL      *string    `json:"cover_url"`
	PublishedDate *time.Time `json:"published_date"`
	AuthorID      *string    `json:"author_id"`
	CategoryID    *string    `json:"category_id"`
	TotalPages    *int       `json:"total_pages"`
	ChapterCount  int        `json:"chapter_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Filter holds the parameters for a paginated book search.
type Filter struct {
	Query      string // Case-insensitive substring match on title
	CategoryID string
	AuthorID   string
}

// Global field names for validation
const (
	FieldID         = "id"
	FieldTitle      = "title"
	FieldISBN       = "isbn"
	FieldCoverURL   = "cover_url"
	FieldAuthorID   = "author_id"
	FieldCategoryID = "category_id"
	FieldTotalPages = "total_pages"
)
