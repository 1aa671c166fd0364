// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uploads

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/maktaba/internal/platform/constants"
	requestutil "github.com/taibuivan/maktaba/internal/platform/request"
	"github.com/taibuivan/maktaba/internal/platform/respond"
	"github.com/taibuivan/maktaba/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for image uploads and the read proxy.
type Handler struct {
	service *Service
}

// NewHandler constructs a new uploads [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// UploadRoutes returns the authenticated upload endpoint. The mounting
// router applies the session gate.
func (handler *Handler) UploadRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.upload)
	return router
}

// ProxyRoutes returns the public read-proxy endpoints.
func (handler *Handler) ProxyRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{kind}/{filename}", handler.read)
	return router
}

// # Endpoints

/*
POST /api/upload.

Description: Accepts one multipart image and stores it in the object
store. The kind field selects between book covers and author portraits.

Request (multipart/form-data):
  - file: The image (jpg, jpeg, png, gif, webp; max 10 MiB)
  - kind: string (books or authors)

Response:
  - 201: Stored: {key, filename, url}
  - 400: 400: Validation: Missing file, bad kind, or oversize payload
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {

	// Bound the in-memory parse and the total payload
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadBytes)
	if err := request.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		respond.Error(writer, request, validate.RequiredError("file", "Upload must be multipart and at most 10 MiB"))
		return
	}

	kind, err := ParseKind(request.FormValue("kind"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, validate.RequiredError("file", "A file field is required"))
		return
	}
	defer file.Close()

	// Domain Logic Execution
	stored, err := handler.service.Store(
		request.Context(),
		kind,
		header.Filename,
		file,
		header.Size,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Created(writer, stored)
}

/*
GET /api/uploads/{kind}/{filename}.

Description: Streams a previously uploaded image back through the
server, so the object store bucket stays private.

Response:
  - 200: Binary image body with its stored content type
  - 404: 404: ErrNotFound: Unknown kind or file
*/
func (handler *Handler) read(writer http.ResponseWriter, request *http.Request) {
	kind, err := ParseKind(requestutil.Param(request, "kind"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reader, contentType, err := handler.service.Open(request.Context(), kind, requestutil.Param(request, "filename"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer reader.Close()

	if contentType != "" {
		writer.Header().Set("Content-Type", contentType)
	}
	writer.Header().Set("Cache-Control", "public, max-age=86400")

	// Stream without buffering the whole object
	if _, err := io.Copy(writer, reader); err != nil {
		// Headers are already sent; nothing useful can be written now
		return
	}
}
