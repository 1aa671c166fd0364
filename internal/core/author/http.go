// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/taibuivan/maktaba/internal/platform/request"
	"github.com/taibuivan/maktaba/internal/platform/respond"
	"github.com/taibuivan/maktaba/pkg/pagination"
)

// # Handler Implementation

// Handler implements the admin HTTP layer for author profiles.
type Handler struct {
	service *Service
}

// NewHandler constructs a new author [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the author endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listAuthors)
	router.Post("/", handler.createAuthor)
	router.Get("/{id}", handler.getAuthor)
	router.Put("/{id}", handler.updateAuthor)
	router.Delete("/{id}", handler.deleteAuthor)

	return router
}

// # Request Payloads

// authorRequest defines the inbound JSON schema for profile writes.
type authorRequest struct {
	Name       string  `json:"name"`
	Bio        *string `json:"bio"`
	ImageURL   *string `json:"image_url"`
	CategoryID *string `json:"category_id"`
	UserID     *string `json:"user_id"`
}

// # Endpoints

/*
GET /api/authors.

Description: Retrieves a paginated list of author profiles, optionally
filtered by name substring and category.

Request:
  - q: string (Substring search on name)
  - category_id: string (UUID)
  - limit: int
  - page: int

Response:
  - 200: []Author: Paginated list
*/
func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	// Pagination extraction using pkg/pagination
	paginationParams := pagination.FromRequest(request)

	// Filter
	filter := Filter{
		Query:      request.URL.Query().Get("q"),
		CategoryID: request.URL.Query().Get("category_id"),
	}

	// Domain Logic Execution
	authors, total, err := handler.service.ListAuthors(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Paginated(writer, authors, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/authors/{id}.

Description: Retrieves a single author profile by its UUID.

Response:
  - 200: Author: Success
  - 404: 404: ErrNotFound: Author not found
*/
func (handler *Handler) getAuthor(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	authorID := requestutil.Param(request, "id")

	// Domain Logic Execution
	author, err := handler.service.GetAuthor(request.Context(), authorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, author)
}

/*
POST /api/authors.

Description: Creates a new author profile, optionally linked to a
platform account.

Request (Body):
  - authorRequest: JSON object

Response:
  - 201: Author: Created profile
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 409: 409: ErrConflict: Account already has a profile
*/
func (handler *Handler) createAuthor(writer http.ResponseWriter, request *http.Request) {
	var input authorRequest

	// Strict JSON decoding
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	author, err := handler.service.CreateAuthor(request.Context(), Input{
		Name:       input.Name,
		Bio:        input.Bio,
		ImageURL:   input.ImageURL,
		CategoryID: input.CategoryID,
		UserID:     input.UserID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Created(writer, author)
}

/*
PUT /api/authors/{id}.

Description: Applies a full update to an author profile.

Response:
  - 200: Author: Updated profile
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: 404: ErrNotFound: Author not found
*/
func (handler *Handler) updateAuthor(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	authorID := requestutil.Param(request, "id")

	// Strict JSON decoding
	var input authorRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	author, err := handler.service.UpdateAuthor(request.Context(), authorID, Input{
		Name:       input.Name,
		Bio:        input.Bio,
		ImageURL:   input.ImageURL,
		CategoryID: input.CategoryID,
		UserID:     input.UserID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, author)
}

/*
DELETE /api/authors/{id}.

Description: Removes an author profile from the catalogue.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Author not found
*/
func (handler *Handler) deleteAuthor(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	authorID := requestutil.Param(request, "id")

	// Domain Logic Execution
	if err := handler.service.DeleteAuthor(request.Context(), authorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.NoContent(writer)
}
