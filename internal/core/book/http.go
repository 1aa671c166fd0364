// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book provides the HTTP interface for the catalogue.

Two surfaces are exposed: the admin CRUD routes mounted under
/api/books, and the author-scoped routes mounted under
/api/author/books, where every operation is restricted to the books
credited to the authenticated author's profile.
*/
package book

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/maktaba/internal/platform/apperr"
	requestutil "github.com/taibuivan/maktaba/internal/platform/request"
	"github.com/taibuivan/maktaba/internal/platform/respond"
	"github.com/taibuivan/maktaba/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for catalogue management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the admin catalogue endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listBooks)
	router.Post("/", handler.createBook)
	router.Get("/{id}", handler.getBook)
	router.Put("/{id}", handler.updateBook)
	router.Delete("/{id}", handler.deleteBook)

	return router
}

// AuthorRoutes returns a [chi.Router] with the author-scoped endpoints.
// The mounting router applies the author dashboard gate.
func (handler *Handler) AuthorRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listOwnBooks)
	router.Post("/", handler.createOwnBook)
	router.Put("/{id}", handler.updateOwnBook)
	router.Delete("/{id}", handler.deleteOwnBook)

	return router
}

// # Request Payloads

// bookRequest defines the inbound JSON schema for catalogue writes.
type bookRequest struct {
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	ISBN          *string    `json:"isbn"`
	CoverURL      *string    `json:"cover_url"`
	PublishedDate *time.Time `json:"published_date"`
	AuthorID      *string    `json:"author_id"`
	CategoryID    *string    `json:"category_id"`
	TotalPages    *int       `json:"total_pages"`
}

// toInput maps the DTO onto the service input.
func (request bookRequest) toInput() Input {
	return Input{
		Title:         request.Title,
		Description:   request.Description,
		ISBN:          request.ISBN,
		CoverURL:      request.CoverURL,
		PublishedDate: request.PublishedDate,
		AuthorID:      request.AuthorID,
		CategoryID:    request.CategoryID,
		TotalPages:    request.TotalPages,
	}
}

// # Admin Endpoints

/*
GET /api/books.

Description: Retrieves a paginated list of books, optionally filtered by
title substring, category, and author.

Request:
  - q: string (Substring search on title)
  - category_id: string (UUID)
  - author_id: string (UUID)
  - limit: int
  - page: int

Response:
  - 200: []Book: Paginated list
*/
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	// Pagination extraction using pkg/pagination
	paginationParams := pagination.FromRequest(request)

	// Filter
	filter := Filter{
		Query:      request.URL.Query().Get("q"),
		CategoryID: request.URL.Query().Get("category_id"),
		AuthorID:   request.URL.Query().Get("author_id"),
	}

	// Domain Logic Execution
	books, total, err := handler.service.ListBooks(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/books/{id}.

Description: Retrieves a single book with its derived chapter count.

Response:
  - 200: Book: Success
  - 404: 404: ErrNotFound: Book not found
*/
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	bookID := requestutil.Param(request, "id")

	// Domain Logic Execution
	book, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, book)
}

/*
POST /api/books.

Description: Creates a new catalogue entry.

Request (Body):
  - bookRequest: JSON object

Response:
  - 201: Book: Created entry
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
*/
func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input bookRequest

	// Strict JSON decoding
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	book, err := handler.service.CreateBook(request.Context(), input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Created(writer, book)
}

/*
PUT /api/books/{id}.

Description: Applies a full update to a catalogue entry.

Response:
  - 200: Book: Updated entry
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: 404: ErrNotFound: Book not found
*/
func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	bookID := requestutil.Param(request, "id")

	// Strict JSON decoding
	var input bookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	book, err := handler.service.UpdateBook(request.Context(), bookID, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, book)
}

/*
DELETE /api/books/{id}.

Description: Removes a catalogue entry.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Book not found
*/
func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	bookID := requestutil.Param(request, "id")

	// Domain Logic Execution
	if err := handler.service.DeleteBook(request.Context(), bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.NoContent(writer)
}

// # Author Endpoints

// authorID resolves the caller's author profile ID from the session.
func authorID(request *http.Request) (string, error) {
	session, err := requestutil.RequiredSession(request)
	if err != nil {
		return "", err
	}
	if session.AuthorID == "" {
		return "", apperr.Forbidden("No author profile linked to this account")
	}
	return session.AuthorID, nil
}

/*
GET /api/author/books.

Description: Retrieves a paginated list of the caller's own books. The
author restriction is applied server-side from the session.

Request:
  - q: string (Substring search on title)
  - limit: int
  - page: int

Response:
  - 200: []Book: Paginated list
  - 403: 403: ErrForbidden: No author profile linked
*/
func (handler *Handler) listOwnBooks(writer http.ResponseWriter, request *http.Request) {
	// Resolve the caller's author profile
	ownerID, err := authorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Pagination extraction using pkg/pagination
	paginationParams := pagination.FromRequest(request)

	// Filter
	filter := Filter{
		Query: request.URL.Query().Get("q"),
	}

	// Domain Logic Execution
	books, total, err := handler.service.ListBooksForAuthor(request.Context(), ownerID, filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/author/books.

Description: Creates a new book credited to the caller. Any author ID in
the payload is ignored.

Response:
  - 201: Book: Created entry
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: 403: ErrForbidden: No author profile linked
*/
func (handler *Handler) createOwnBook(writer http.ResponseWriter, request *http.Request) {
	// Resolve the caller's author profile
	ownerID, err := authorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Strict JSON decoding
	var input bookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	book, err := handler.service.CreateBookForAuthor(request.Context(), ownerID, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Created(writer, book)
}

/*
PUT /api/author/books/{id}.

Description: Updates one of the caller's own books. Books credited to
other authors respond 404.

Response:
  - 200: Book: Updated entry
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: 403: ErrForbidden: No author profile linked
  - 404: 404: ErrNotFound: Book not found or not owned
*/
func (handler *Handler) updateOwnBook(writer http.ResponseWriter, request *http.Request) {
	// Resolve the caller's author profile
	ownerID, err := authorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Extract ID from URL
	bookID := requestutil.Param(request, "id")

	// Strict JSON decoding
	var input bookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	book, err := handler.service.UpdateBookForAuthor(request.Context(), ownerID, bookID, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, book)
}

/*
DELETE /api/author/books/{id}.

Description: Removes one of the caller's own books.

Response:
  - 204: No Content: Success
  - 403: 403: ErrForbidden: No author profile linked
  - 404: 404: ErrNotFound: Book not found or not owned
*/
func (handler *Handler) deleteOwnBook(writer http.ResponseWriter, request *http.Request) {
	// Resolve the caller's author profile
	ownerID, err := authorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Extract ID from URL
	bookID := requestutil.Param(request, "id")

	// Domain Logic Execution
	if err := handler.service.DeleteBookForAuthor(request.Context(), ownerID, bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.NoContent(writer)
}
