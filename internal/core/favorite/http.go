// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/taibuivan/maktaba/internal/platform/request"
	"github.com/taibuivan/maktaba/internal/platform/respond"
	"github.com/taibuivan/maktaba/pkg/pagination"
)

// Handler implements the HTTP layer for bookmark management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new favorite [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the bookmark endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listFavorites)
	router.Post("/", handler.createFavorite)
	router.Delete("/{id}", handler.deleteFavorite)

	return router
}

/*
GET /api/favorites.

Description: Retrieves a paginated list of bookmarks, optionally
filtered by user and book.

Request:
  - user_id: string (UUID)
  - book_id: string (UUID)
  - limit: int
  - page: int

Response:
  - 200: []Favorite: Paginated list
*/
func (handler *Handler) listFavorites(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		UserID: request.URL.Query().Get("user_id"),
		BookID: request.URL.Query().Get("book_id"),
	}

	favorites, total, err := handler.service.ListFavorites(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, favorites, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/favorites.

Description: Bookmarks a book for a user.

Request (Body):
  - user_id: string (UUID)
  - book_id: string (UUID)

Response:
  - 201: Favorite: Created bookmark
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 409: 409: ErrConflict: Pair already bookmarked
*/
func (handler *Handler) createFavorite(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		UserID string `json:"user_id"`
		BookID string `json:"book_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	favorite, err := handler.service.CreateFavorite(request.Context(), input.UserID, input.BookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, favorite)
}

/*
DELETE /api/favorites/{id}.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Favorite not found
*/
func (handler *Handler) deleteFavorite(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteFavorite(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
