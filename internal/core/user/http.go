// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package user provides the HTTP interface for the account directory.

All endpoints are restricted to the admin dashboard; the router mounting
this handler applies the session and dashboard gates.
*/
package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/taibuivan/maktaba/internal/platform/request"
	"github.com/taibuivan/maktaba/internal/platform/respond"
	"github.com/taibuivan/maktaba/internal/platform/sec"
	"github.com/taibuivan/maktaba/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for account management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new user [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the account endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listUsers)
	router.Post("/", handler.createUser)
	router.Get("/{id}", handler.getUser)
	router.Put("/{id}", handler.updateUser)
	router.Put("/{id}/password", handler.changePassword)
	router.Delete("/{id}", handler.deleteUser)

	return router
}

// # Directory Endpoints

/*
GET /api/users.

Description: Retrieves a paginated list of accounts, optionally filtered
by a free-text query over email and display name.

Request:
  - q: string (Substring search)
  - limit: int
  - page: int

Response:
  - 200: []User: Paginated list of accounts
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	// Pagination extraction using pkg/pagination
	paginationParams := pagination.FromRequest(request)

	// Filter
	filter := Filter{
		Query: request.URL.Query().Get("q"),
	}

	// Domain Logic Execution
	users, total, err := handler.service.ListUsers(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Paginated(writer, users, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/users/{id}.

Description: Retrieves a single account by its UUID.

Response:
  - 200: User: Success
  - 404: 404: ErrNotFound: User not found
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	userID := requestutil.Param(request, "id")

	// Domain Logic Execution
	account, err := handler.service.GetUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, account)
}

// # Request Payloads

// createUserRequest defines the inbound JSON schema for account creation.
type createUserRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	Disabled    bool   `json:"disabled"`
}

// updateUserRequest defines the inbound JSON schema for account updates.
type updateUserRequest struct {
	Email         string `json:"email"`
	DisplayName   string `json:"display_name"`
	Role          string `json:"role"`
	Disabled      bool   `json:"disabled"`
	EmailVerified bool   `json:"email_verified"`
}

// # Mutation Endpoints

/*
POST /api/users.

Description: Provisions a new account with an explicitly assigned role.

Request (Body):
  - createUserRequest: JSON object

Response:
  - 201: User: Created account
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 409: 409: ErrConflict: Email already registered
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest

	// Strict JSON decoding
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	account, err := handler.service.CreateUser(request.Context(), CreateInput{
		Email:       input.Email,
		DisplayName: input.DisplayName,
		Password:    input.Password,
		Role:        sec.UserRole(input.Role),
		Disabled:    input.Disabled,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Created(writer, account)
}

/*
PUT /api/users/{id}.

Description: Applies a full update to an account record. Passwords are
changed through the dedicated password endpoint.

Response:
  - 200: User: Updated account
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: 404: ErrNotFound: User not found
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	userID := requestutil.Param(request, "id")

	// Strict JSON decoding
	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	account, err := handler.service.UpdateUser(request.Context(), userID, UpdateInput{
		Email:         input.Email,
		DisplayName:   input.DisplayName,
		Role:          sec.UserRole(input.Role),
		Disabled:      input.Disabled,
		EmailVerified: input.EmailVerified,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, account)
}

/*
PUT /api/users/{id}/password.

Description: Replaces the stored password for an account.

Request (Body):
  - password: string (min 8 characters)

Response:
  - 200: Message: Success
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: 404: ErrNotFound: User not found
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	userID := requestutil.Param(request, "id")

	// Strict JSON decoding
	var input struct {
		Password string `json:"password"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	if err := handler.service.ChangePassword(request.Context(), userID, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, map[string]string{"message": "Password updated"})
}

/*
DELETE /api/users/{id}.

Description: Removes an account from the directory.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: User not found
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	userID := requestutil.Param(request, "id")

	// Domain Logic Execution
	if err := handler.service.DeleteUser(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.NoContent(writer)
}
