// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package author manages the writer profiles of the library catalogue.

An author record may optionally be linked to a platform account through
its user_id; linked profiles power the author self-service dashboard.
The package also owns the find-or-create flow used at login time to
guarantee that every account with the author role has exactly one
profile.
*/
package author

import "time"

// # Entity Definition

// Author represents a writer profile in the catalogue.
type Author struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Bio        *string    `json:"bio"`
	ImageURL   *string    `json:"image_url"`
	BookNum    int        `json:"book_num"`
	CategoryID *string    `json:"category_id"`
	UserID     *string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DefaultBio seeds auto-provisioned profiles until the author edits
// their own bio from the dashboard.
const DefaultBio = "This author has not added a bio yet."

// Filter holds the parameters for a paginated author search.
type Filter struct {
	Query      string // Case-insensitive substring match on name
	CategoryID string
}

// Global field names for validation
const (
	FieldID       = "id"
	FieldName     = "name"
	FieldBio      = "bio"
	FieldImageURL = "image_url"
	FieldUserID   = "user_id"
)
