// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/taibuivan/maktaba/internal/platform/apperr"
	"github.com/taibuivan/maktaba/internal/platform/validate"
	"github.com/taibuivan/maktaba/pkg/uuid"
)

// # Contracts & Types

// BookDirectory resolves which books an author is credited with. The
// book package provides the production implementation.
type BookDirectory interface {
	// ListIDsByAuthor returns the IDs of every book credited to the author.
	ListIDsByAuthor(context context.Context, authorID string) ([]string, error)
}

// Service implements chapter use cases for the admin console and the
// author dashboard.
type Service struct {
	repository Repository
	books      BookDirectory
}

// NewService constructs a new chapter [Service] with its dependencies.
func NewService(repository Repository, books BookDirectory) *Service {
	return &Service{repository: repository, books: books}
}

// Input holds the mutable chapter fields.
type Input struct {
	Title      string
	Content    json.RawMessage
	ChapterNum int
	BookID     string
}

// validateInput enforces the shared chapter field rules.
func validateInput(input Input) error {
	return validate.New().
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 300).
		Range(FieldChapterNum, input.ChapterNum, 1, 100000).
		UUID(FieldBookID, input.BookID).
		Err()
}

// # Listing

/*
ListChapters returns one page of chapters plus the total matching count.

Ordering is by chapter_num ascending; duplicate ordinals within a book
sort arbitrarily relative to each other. The filter's BookIDs contract
(nil vs empty vs populated) is handled by the repository.
*/
func (service *Service) ListChapters(context context.Context, filter Filter, limit, offset int) ([]*Chapter, int, error) {
	return service.repository.ListChapters(context, filter, limit, offset)
}

/*
ListChaptersForAuthor returns a page of chapters restricted to the
author's own books.

The owned book set is resolved first and always passed as a present
restriction: an author with zero books gets an empty page, never an
unrestricted query.
*/
func (service *Service) ListChaptersForAuthor(context context.Context, authorID, search string, limit, offset int) ([]*Chapter, int, error) {
	if err := validate.New().UUID("author_id", authorID).Err(); err != nil {
		return nil, 0, err
	}

	bookIDs, err := service.books.ListIDsByAuthor(context, authorID)
	if err != nil {
		return nil, 0, err
	}

	filter := Filter{BookIDs: &bookIDs, Search: search}
	return service.repository.ListChapters(context, filter, limit, offset)
}

// # Record Management

// GetChapter retrieves a single chapter by its UUID.
func (service *Service) GetChapter(context context.Context, id string) (*Chapter, error) {
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return nil, err
	}
	return service.repository.GetChapter(context, id)
}

// CreateChapter validates and persists a new chapter.
func (service *Service) CreateChapter(context context.Context, input Input) (*Chapter, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	chapter := &Chapter{
		ID:         uuid.New(),
		Title:      input.Title,
		Content:    input.Content,
		ChapterNum: input.ChapterNum,
		BookID:     input.BookID,
	}

	if err := service.repository.CreateChapter(context, chapter); err != nil {
		return nil, fmt.Errorf("chapter_service_create_failed: %w", err)
	}

	return chapter, nil
}

// UpdateChapter applies a full update to an existing chapter.
func (service *Service) UpdateChapter(context context.Context, id string, input Input) (*Chapter, error) {
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	chapter, err := service.repository.GetChapter(context, id)
	if err != nil {
		return nil, err
	}

	chapter.Title = input.Title
	chapter.Content = input.Content
	chapter.ChapterNum = input.ChapterNum
	chapter.BookID = input.BookID

	if err := service.repository.UpdateChapter(context, chapter); err != nil {
		return nil, err
	}

	return chapter, nil
}

// DeleteChapter removes a chapter.
func (service *Service) DeleteChapter(context context.Context, id string) error {
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return err
	}
	return service.repository.DeleteChapter(context, id)
}

// # Author-Scoped Operations

// CreateChapterForAuthor persists a new chapter only when its book is
// credited to the caller.
func (service *Service) CreateChapterForAuthor(context context.Context, authorID string, input Input) (*Chapter, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := service.requireBookOwnership(context, authorID, input.BookID); err != nil {
		return nil, err
	}
	return service.CreateChapter(context, input)
}

// UpdateChapterForAuthor updates a chapter only when both its current
// book and its target book are credited to the caller.
func (service *Service) UpdateChapterForAuthor(context context.Context, authorID, chapterID string, input Input) (*Chapter, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	chapter, err := service.requireChapterOwnership(context, authorID, chapterID)
	if err != nil {
		return nil, err
	}

	// Re-homing a chapter into someone else's book is also forbidden
	if input.BookID != chapter.BookID {
		if err := service.requireBookOwnership(context, authorID, input.BookID); err != nil {
			return nil, err
		}
	}

	return service.UpdateChapter(context, chapterID, input)
}

// DeleteChapterForAuthor removes a chapter only when its book is
// credited to the caller.
func (service *Service) DeleteChapterForAuthor(context context.Context, authorID, chapterID string) error {
	if _, err := service.requireChapterOwnership(context, authorID, chapterID); err != nil {
		return err
	}
	return service.repository.DeleteChapter(context, chapterID)
}

// requireBookOwnership verifies the book is credited to the author.
// Foreign books surface as NotFound so the endpoint does not leak
// catalogue structure.
func (service *Service) requireBookOwnership(context context.Context, authorID, bookID string) error {
	bookIDs, err := service.books.ListIDsByAuthor(context, authorID)
	if err != nil {
		return err
	}

	if !slices.Contains(bookIDs, bookID) {
		return apperr.NotFound("Book")
	}

	return nil
}

// requireChapterOwnership fetches the chapter and verifies its book is
// credited to the author.
func (service *Service) requireChapterOwnership(context context.Context, authorID, chapterID string) (*Chapter, error) {
	if err := validate.New().UUID(FieldID, chapterID).Err(); err != nil {
		return nil, err
	}

	chapter, err := service.repository.GetChapter(context, chapterID)
	if err != nil {
		return nil, err
	}

	if err := service.requireBookOwnership(context, authorID, chapter.BookID); err != nil {
		return nil, apperr.NotFound("Chapter")
	}

	return chapter, nil
}
