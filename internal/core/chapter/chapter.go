// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter manages the per-book chapter records of the catalogue.

Listing is the load-bearing operation: the same query serves the admin
console (unrestricted) and the author dashboard (restricted to the
caller's books). The restriction is expressed through [Filter.BookIDs],
whose nil / empty / populated states carry distinct meanings — see the
field documentation.
*/
package chapter

import (
	"encoding/json"
	"time"
)

// # Entity Definition

// Chapter represents one chapter of a book.
//
// Content is stored upstream as JSON and treated as opaque here: clients
// send either a plain string or an ordered list of text segments, and
// the record is returned exactly as stored.
type Chapter struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Content    json.RawMessage `json:"content"`
	ChapterNum int             `json:"chapter_num"`
	BookID     string          `json:"book_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Filter holds the parameters for a paginated chapter search.
type Filter struct {
	// BookIDs restricts the query to a fixed set of books.
	//
	//   - nil: no restriction (admin callers)
	//   - pointer to empty slice: match nothing; the repository returns
	//     an empty page without querying upstream (author with zero books)
	//   - pointer to populated slice: restrict to exactly these IDs
	//
	// Collapsing the first two cases would either show every chapter to
	// an author with no books or hide everything from admins.
	BookIDs *[]string

	// Search is a case-insensitive substring match on title.
	Search string
}

// Global field names for validation
const (
	FieldID         = "id"
	FieldTitle      = "title"
	FieldChapterNum = "chapter_num"
	FieldBookID     = "book_id"
)
