// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import "context"

// # Repository Contract

/*
Repository defines the persistence contract for chapters.

Implementations query the remote catalogue service; errors surface as
[apperr.AppError] values so the HTTP layer can map them directly.
*/
type Repository interface {
	// ListChapters returns a page of chapters ordered by chapter_num
	// ascending, plus the total count of matching rows across all pages.
	// The nil / empty / populated states of filter.BookIDs are honoured
	// per the [Filter] documentation.
	ListChapters(context context.Context, filter Filter, limit, offset int) ([]*Chapter, int, error)

	// GetChapter fetches a single chapter by primary key.
	// Returns apperr.NotFound when the record does not exist.
	GetChapter(context context.Context, id string) (*Chapter, error)

	// CreateChapter persists a new record.
	CreateChapter(context context.Context, chapter *Chapter) error

	// UpdateChapter applies a full update to an existing record.
	UpdateChapter(context context.Context, chapter *Chapter) error

	// DeleteChapter removes a record.
	DeleteChapter(context context.Context, id string) error
}
