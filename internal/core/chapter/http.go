// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter provides the HTTP interface for chapter management.

The admin routes under /api/chapters serve unrestricted queries; the
author routes under /api/author/chapters restrict every operation to
chapters belonging to the caller's own books.
*/
package chapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/maktaba/internal/platform/apperr"
	requestutil "github.com/taibuivan/maktaba/internal/platform/request"
	"github.com/taibuivan/maktaba/internal/platform/respond"
	"github.com/taibuivan/maktaba/pkg/pagination"
	"github.com/taibuivan/maktaba/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapter management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the admin chapter endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listChapters)
	router.Post("/", handler.createChapter)
	router.Get("/{id}", handler.getChapter)
	router.Put("/{id}", handler.updateChapter)
	router.Delete("/{id}", handler.deleteChapter)

	return router
}

// AuthorRoutes returns a [chi.Router] with the author-scoped endpoints.
// The mounting router applies the author dashboard gate.
func (handler *Handler) AuthorRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listOwnChapters)
	router.Post("/", handler.createOwnChapter)
	router.Put("/{id}", handler.updateOwnChapter)
	router.Delete("/{id}", handler.deleteOwnChapter)

	return router
}

// # Request Payloads

// chapterRequest defines the inbound JSON schema for chapter writes.
// Content passes through opaque; clients send either a string or an
// ordered list of text segments.
type chapterRequest struct {
	Title      string          `json:"title"`
	Content    json.RawMessage `json:"content"`
	ChapterNum int             `json:"chapter_num"`
	BookID     string          `json:"book_id"`
}

// toInput maps the DTO onto the service input.
func (request chapterRequest) toInput() Input {
	return Input{
		Title:      request.Title,
		Content:    request.Content,
		ChapterNum: request.ChapterNum,
		BookID:     request.BookID,
	}
}

// # Admin Endpoints

/*
GET /api/chapters.

Description: Retrieves a paginated page of chapters ordered by ordinal,
optionally scoped to a set of books and filtered by a case-insensitive
title substring.

Request:
  - q: string (Substring search on title)
  - book_ids: string (Comma-separated book UUIDs; omit for no restriction)
  - limit: int
  - page: int

Response:
  - 200: []Chapter: Paginated list with total
*/
func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	// Pagination extraction using pkg/pagination
	paginationParams := pagination.FromRequest(request)

	// Filter: an absent book_ids parameter means unrestricted
	filter := Filter{
		Search: request.URL.Query().Get("q"),
	}
	if request.URL.Query().Has("book_ids") {
		bookIDs := query.StringSlice(request.URL.Query().Get("book_ids"))
		filter.BookIDs = &bookIDs
	}

	// Domain Logic Execution
	chapters, total, err := handler.service.ListChapters(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Paginated(writer, chapters, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/chapters/{id}.

Description: Retrieves a single chapter including its content payload.

Response:
  - 200: Chapter: Success
  - 404: 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	chapterID := requestutil.Param(request, "id")

	// Domain Logic Execution
	chapter, err := handler.service.GetChapter(request.Context(), chapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, chapter)
}

/*
POST /api/chapters.

Description: Creates a new chapter under a book.

Request (Body):
  - chapterRequest: JSON object

Response:
  - 201: Chapter: Created record
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
*/
func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	var input chapterRequest

	// Strict JSON decoding
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	chapter, err := handler.service.CreateChapter(request.Context(), input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Created(writer, chapter)
}

/*
PUT /api/chapters/{id}.

Description: Applies a full update to a chapter.

Response:
  - 200: Chapter: Updated record
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) updateChapter(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	chapterID := requestutil.Param(request, "id")

	// Strict JSON decoding
	var input chapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	chapter, err := handler.service.UpdateChapter(request.Context(), chapterID, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, chapter)
}

/*
DELETE /api/chapters/{id}.

Description: Removes a chapter.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	chapterID := requestutil.Param(request, "id")

	// Domain Logic Execution
	if err := handler.service.DeleteChapter(request.Context(), chapterID); err != nil {
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
GET /api/author/chapters.

Description: Retrieves a paginated page of chapters restricted to the
caller's own books. An author with zero books receives an empty page.

Request:
  - q: string (Substring search on title)
  - limit: int
  - page: int

Response:
  - 200: []Chapter: Paginated list with total
  - 403: 403: ErrForbidden: No author profile linked
*/
func (handler *Handler) listOwnChapters(writer http.ResponseWriter, request *http.Request) {
	// Resolve the caller's author profile
	ownerID, err := authorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Pagination extraction using pkg/pagination
	paginationParams := pagination.FromRequest(request)

	// Domain Logic Execution
	chapters, total, err := handler.service.ListChaptersForAuthor(request.Context(), ownerID, request.URL.Query().Get("q"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Paginated(writer, chapters, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/author/chapters.

Description: Creates a chapter under one of the caller's own books.

Response:
  - 201: Chapter: Created record
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: 403: ErrForbidden: No author profile linked
  - 404: 404: ErrNotFound: Book not found or not owned
*/
func (handler *Handler) createOwnChapter(writer http.ResponseWriter, request *http.Request) {
	// Resolve the caller's author profile
	ownerID, err := authorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Strict JSON decoding
	var input chapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	chapter, err := handler.service.CreateChapterForAuthor(request.Context(), ownerID, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Created(writer, chapter)
}

/*
PUT /api/author/chapters/{id}.

Description: Updates a chapter belonging to one of the caller's books.

Response:
  - 200: Chapter: Updated record
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: 403: ErrForbidden: No author profile linked
  - 404: 404: ErrNotFound: Chapter not found or not owned
*/
func (handler *Handler) updateOwnChapter(writer http.ResponseWriter, request *http.Request) {
	// Resolve the caller's author profile
	ownerID, err := authorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Extract ID from URL
	chapterID := requestutil.Param(request, "id")

	// Strict JSON decoding
	var input chapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	chapter, err := handler.service.UpdateChapterForAuthor(request.Context(), ownerID, chapterID, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, chapter)
}

/*
DELETE /api/author/chapters/{id}.

Description: Removes a chapter belonging to one of the caller's books.

Response:
  - 204: No Content: Success
  - 403: 403: ErrForbidden: No author profile linked
  - 404: 404: ErrNotFound: Chapter not found or not owned
*/
func (handler *Handler) deleteOwnChapter(writer http.ResponseWriter, request *http.Request) {
	// Resolve the caller's author profile
	ownerID, err := authorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Extract ID from URL
	chapterID := requestutil.Param(request, "id")

	// Domain Logic Execution
	if err := handler.service.DeleteChapterForAuthor(request.Context(), ownerID, chapterID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.NoContent(writer)
}
