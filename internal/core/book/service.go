// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/maktaba/internal/platform/apperr"
	"github.com/taibuivan/maktaba/internal/platform/validate"
	"github.com/taibuivan/maktaba/pkg/pointer"
	"github.com/taibuivan/maktaba/pkg/uuid"
)

// # Service Layer

// Service implements book catalogue use cases for the admin console and
// the author dashboard.
type Service struct {
	repository Repository
}

// NewService constructs a new book [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// Input holds the mutable book fields.
type Input struct {
	Title         string
	Description   *string
	ISBN          *string
	CoverURL      *string
	PublishedDate *time.Time
	AuthorID      *string
	CategoryID    *string
	TotalPages    *int
}

// validateInput enforces the shared book field rules.
func validateInput(input Input) error {
	validator := validate.New().
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 300)

	if input.ISBN != nil && *input.ISBN != "" {
		validator.MaxLen(FieldISBN, *input.ISBN, 17)
	}
	if input.CoverURL != nil && *input.CoverURL != "" {
		validator.URL(FieldCoverURL, *input.CoverURL)
	}
	if input.AuthorID != nil && *input.AuthorID != "" {
		validator.UUID(FieldAuthorID, *input.AuthorID)
	}
	if input.CategoryID != nil && *input.CategoryID != "" {
		validator.UUID(FieldCategoryID, *input.CategoryID)
	}
	if input.TotalPages != nil {
		validator.Range(FieldTotalPages, *input.TotalPages, 1, 100000)
	}

	return validator.Err()
}

// apply copies the input fields onto the entity.
func (book *Book) apply(input Input) {
	book.Title = input.Title
	book.Description = input.Description
	book.ISBN = input.ISBN
	book.CoverURL = input.CoverURL
	book.PublishedDate = input.PublishedDate
	book.AuthorID = input.AuthorID
	book.CategoryID = input.CategoryID
	book.TotalPages = input.TotalPages
}

// # Catalogue Management

// ListBooks retrieves a paginated page of books matching the filter.
func (service *Service) ListBooks(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	return service.repository.ListBooks(context, filter, limit, offset)
}

// GetBook retrieves a single book by its UUID.
func (service *Service) GetBook(context context.Context, id string) (*Book, error) {
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return nil, err
	}
	return service.repository.GetBook(context, id)
}

// ListIDsByAuthor returns the IDs of every book credited to the author.
func (service *Service) ListIDsByAuthor(context context.Context, authorID string) ([]string, error) {
	if err := validate.New().UUID(FieldAuthorID, authorID).Err(); err != nil {
		return nil, err
	}
	return service.repository.ListIDsByAuthor(context, authorID)
}

// CreateBook validates and persists a new catalogue entry.
func (service *Service) CreateBook(context context.Context, input Input) (*Book, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	book := &Book{ID: uuid.New()}
	book.apply(input)

	if err := service.repository.CreateBook(context, book); err != nil {
		return nil, fmt.Errorf("book_service_create_failed: %w", err)
	}

	return book, nil
}

// UpdateBook applies a full update to an existing catalogue entry.
func (service *Service) UpdateBook(context context.Context, id string, input Input) (*Book, error) {
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	book, err := service.repository.GetBook(context, id)
	if err != nil {
		return nil, err
	}

	book.apply(input)

	if err := service.repository.UpdateBook(context, book); err != nil {
		return nil, err
	}

	return book, nil
}

// DeleteBook removes a catalogue entry.
func (service *Service) DeleteBook(context context.Context, id string) error {
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return err
	}
	return service.repository.DeleteBook(context, id)
}

// # Author-Scoped Operations

// ListBooksForAuthor retrieves a paginated page of the author's own books.
// The author restriction is forced server-side and cannot be widened by
// the caller's filter.
func (service *Service) ListBooksForAuthor(context context.Context, authorID string, filter Filter, limit, offset int) ([]*Book, int, error) {
	if err := validate.New().UUID(FieldAuthorID, authorID).Err(); err != nil {
		return nil, 0, err
	}

	filter.AuthorID = authorID
	return service.repository.ListBooks(context, filter, limit, offset)
}

// CreateBookForAuthor persists a new book credited to the author. Any
// author ID in the input is overwritten with the caller's own.
func (service *Service) CreateBookForAuthor(context context.Context, authorID string, input Input) (*Book, error) {
	if err := validate.New().UUID(FieldAuthorID, authorID).Err(); err != nil {
		return nil, err
	}

	input.AuthorID = pointer.To(authorID)
	return service.CreateBook(context, input)
}

// UpdateBookForAuthor updates a book only if it is credited to the
// caller. Books owned by other authors surface as NotFound rather than
// Forbidden, so the endpoint does not leak catalogue structure.
func (service *Service) UpdateBookForAuthor(context context.Context, authorID, bookID string, input Input) (*Book, error) {
	if err := service.requireOwnership(context, authorID, bookID); err != nil {
		return nil, err
	}

	input.AuthorID = pointer.To(authorID)
	return service.UpdateBook(context, bookID, input)
}

// DeleteBookForAuthor removes a book only if it is credited to the caller.
func (service *Service) DeleteBookForAuthor(context context.Context, authorID, bookID string) error {
	if err := service.requireOwnership(context, authorID, bookID); err != nil {
		return err
	}
	return service.repository.DeleteBook(context, bookID)
}

// requireOwnership verifies that the book is credited to the author.
func (service *Service) requireOwnership(context context.Context, authorID, bookID string) error {
	err := validate.New().
		UUID(FieldAuthorID, authorID).
		UUID(FieldID, bookID).
		Err()
	if err != nil {
		return err
	}

	book, err := service.repository.GetBook(context, bookID)
	if err != nil {
		return err
	}

	if book.AuthorID == nil || *book.AuthorID != authorID {
		return apperr.NotFound("Book")
	}

	return nil
}
