// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/maktaba/internal/core/author"
	"github.com/taibuivan/maktaba/internal/platform/constants"
	requestutil "github.com/taibuivan/maktaba/internal/platform/request"
	"github.com/taibuivan/maktaba/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for login, logout, session
// introspection, and the author self-service profile.
type Handler struct {
	service *Service

	// secureCookies toggles the Secure flag; disabled only for local
	// plain-HTTP development.
	secureCookies bool
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{service: service, secureCookies: secureCookies}
}

// PublicRoutes returns the endpoints reachable without a session.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	return router
}

// SessionRoutes returns the endpoints requiring an authenticated
// session. The mounting router applies the session gate.
func (handler *Handler) SessionRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/session", handler.currentSession)
	router.Get("/auth/author-profile", handler.getAuthorProfile)
	router.Put("/auth/author-profile", handler.updateAuthorProfile)

	return router
}

// # Login & Logout

// loginRequest defines the inbound JSON schema for credential submission.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /api/login.

Description: Authenticates a user and establishes a dashboard session.
The session token is delivered as an HttpOnly cookie; the response body
carries the session payload so the frontend can route to the right
dashboard.

Request (Body):
  - loginRequest: JSON object

Response:
  - 200: Session: {id, email, role, dashboard, author_id?}
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: Invalid email or password
  - 403: 403: ErrForbidden: Disabled account or no dashboard access
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	// Strict JSON decoding
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	result, err := handler.service.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Session cookie delivery
	handler.setSessionCookie(writer, result.Token, SessionTokenTTL)

	// Structured API Response
	respond.OK(writer, result.Session)
}

/*
POST /api/logout.

Description: Ends the current session and clears the cookie. Responds
200 even without a valid session so logout is always safe to call.

Response:
  - 200: Message: Success
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {

	// End the stored session when a cookie is present
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
		if err := handler.service.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	// Expire the cookie regardless
	handler.setSessionCookie(writer, "", -time.Hour)

	respond.OK(writer, map[string]string{"message": "Logged out"})
}

// setSessionCookie writes the session cookie with the shared attributes.
func (handler *Handler) setSessionCookie(writer http.ResponseWriter, value string, timeToLive time.Duration) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(timeToLive.Seconds()),
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// # Session Introspection

/*
GET /api/session.

Description: Returns the current session payload. The frontend calls
this on boot to restore its routing state.

Response:
  - 200: Session: {id, email, role, dashboard, author_id?}
  - 401: 401: ErrUnauthorized: No valid session
*/
func (handler *Handler) currentSession(writer http.ResponseWriter, request *http.Request) {
	session, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

// # Author Self-Service Profile

// profileRequest defines the inbound schema for profile edits.
type profileRequest struct {
	Name     string  `json:"name"`
	Bio      *string `json:"bio"`
	ImageURL *string `json:"image_url"`
}

/*
GET /api/auth/author-profile.

Description: Returns the caller's own author profile with a freshly
recomputed book count.

Response:
  - 200: Author: The linked profile
  - 401: 401: ErrUnauthorized: No valid session
  - 403: 403: ErrForbidden: Session has no author access
  - 404: 404: ErrNotFound: No profile linked
*/
func (handler *Handler) getAuthorProfile(writer http.ResponseWriter, request *http.Request) {
	session, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.AuthorProfile(request.Context(), session)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
PUT /api/auth/author-profile.

Description: Edits the caller's own author profile. The profile is
resolved through the session's account link; no author ID is accepted
from the client.

Request (Body):
  - profileRequest: JSON object

Response:
  - 200: Author: Updated profile
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: No valid session
  - 403: 403: ErrForbidden: Session has no author access
  - 404: 404: ErrNotFound: No profile linked
*/
func (handler *Handler) updateAuthorProfile(writer http.ResponseWriter, request *http.Request) {
	session, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input profileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.UpdateAuthorProfile(request.Context(), session, author.ProfileInput{
		Name:     input.Name,
		Bio:      input.Bio,
		ImageURL: input.ImageURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
