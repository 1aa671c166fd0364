// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/taibuivan/maktaba/internal/platform/request"
	"github.com/taibuivan/maktaba/internal/platform/respond"
	"github.com/taibuivan/maktaba/pkg/pagination"
)

// Handler implements the HTTP layer for review management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the review endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listReviews)
	router.Post("/", handler.createReview)
	router.Get("/{id}", handler.getReview)
	router.Put("/{id}", handler.updateReview)
	router.Delete("/{id}", handler.deleteReview)

	return router
}

// reviewRequest defines the inbound JSON schema for review writes.
type reviewRequest struct {
	UserID  string  `json:"user_id"`
	BookID  string  `json:"book_id"`
	Rating  int     `json:"rating"`
	Answer1 *string `json:"answer1"`
	Answer2 *string `json:"answer2"`
	Answer3 *string `json:"answer3"`
}

// toInput maps the DTO onto the service input.
func (request reviewRequest) toInput() Input {
	return Input{
		UserID:  request.UserID,
		BookID:  request.BookID,
		Rating:  request.Rating,
		Answer1: request.Answer1,
		Answer2: request.Answer2,
		Answer3: request.Answer3,
	}
}

/*
GET /api/reviews.

Description: Retrieves a paginated list of reviews, optionally filtered
by user and book.

Request:
  - user_id: string (UUID)
  - book_id: string (UUID)
  - limit: int
  - page: int

Response:
  - 200: []Review: Paginated list
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		UserID: request.URL.Query().Get("user_id"),
		BookID: request.URL.Query().Get("book_id"),
	}

	reviews, total, err := handler.service.ListReviews(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/reviews/{id}.

Response:
  - 200: Review: Success
  - 404: 404: ErrNotFound: Review not found
*/
func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	review, err := handler.service.GetReview(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
POST /api/reviews.

Description: Records a reader's rating of a book with up to three
questionnaire answers.

Response:
  - 201: Review: Created record
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	var input reviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.CreateReview(request.Context(), input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

/*
PUT /api/reviews/{id}.

Description: Updates the rating and answers of an existing review. The
user and book links are immutable.

Response:
  - 200: Review: Updated record
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: 404: ErrNotFound: Review not found
*/
func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	var input reviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.UpdateReview(request.Context(), requestutil.Param(request, "id"), input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
DELETE /api/reviews/{id}.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Review not found
*/
func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteReview(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
