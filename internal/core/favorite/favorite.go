// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package favorite manages the user-to-book bookmark rows.
package favorite

import (
	"context"
	"time"
)

// Favorite links a platform account to a bookmarked book.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter holds the parameters for a paginated favorite listing.
type Filter struct {
	UserID string
	BookID string
}

// Global field names for validation
const (
	FieldID     = "id"
	FieldUserID = "user_id"
	FieldBookID = "book_id"
)

// Repository defines the persistence contract for favorites.
type Repository interface {
	ListFavorites(context context.Context, filter Filter, limit, offset int) ([]*Favorite, int, error)

	// FindByUserAndBook returns the favorite for a user/book pair.
	// Returns apperr.NotFound when the pair is not bookmarked.
	FindByUserAndBook(context context.Context, userID, bookID string) (*Favorite, error)

	CreateFavorite(context context.Context, favorite *Favorite) error
	DeleteFavorite(context context.Context, id string) error
}
