// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// # Repository Contract

/*
Repository defines the persistence contract for the book catalogue.

Implementations query the remote catalogue service; errors surface as
[apperr.AppError] values so the HTTP layer can map them directly.
*/
type Repository interface {
	// ListBooks returns a filtered, paginated page of books plus the
	// total count before pagination.
	ListBooks(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error)

	// GetBook fetches a single book by primary key.
	// Returns apperr.NotFound when the record does not exist.
	GetBook(context context.Context, id string) (*Book, error)

	// ListIDsByAuthor returns the IDs of every book credited to the
	// author. Used to scope chapter queries for the author dashboard.
	ListIDsByAuthor(context context.Context, authorID string) ([]string, error)

	// CreateBook persists a new record.
	CreateBook(context context.Context, book *Book) error

	// UpdateBook applies a full update to an existing record.
	UpdateBook(context context.Context, book *Book) error

	// DeleteBook removes a record from the catalogue.
	DeleteBook(context context.Context, id string) error
}
