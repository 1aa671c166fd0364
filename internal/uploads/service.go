// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uploads handles cover and portrait image storage.

Files land in the object store under two fixed prefixes — books/ for
cover art and authors/ for portraits — and are streamed back through
the read proxy so the bucket never needs to be publicly reachable.
*/
package uploads

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taibuivan/maktaba/internal/platform/apperr"
	"github.com/taibuivan/maktaba/internal/platform/objstore"
	"github.com/taibuivan/maktaba/pkg/slug"
	"github.com/taibuivan/maktaba/pkg/uuid"
)

// # Upload Kinds

// Kind partitions the bucket namespace.
type Kind string

const (
	KindBooks   Kind = "books"
	KindAuthors Kind = "authors"
)

// ParseKind validates a client-supplied kind segment.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindBooks, KindAuthors:
		return Kind(raw), nil
	default:
		return "", apperr.ValidationError("Upload kind must be books or authors")
	}
}

// allowedExtensions caps uploads to common web image formats.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// # Service Layer

// ObjectStore is the slice of the object store client this package
// needs. The objstore package provides the production implementation.
type ObjectStore interface {
	Put(context context.Context, key string, reader io.Reader, size int64, contentType string) error
	Get(context context.Context, key string) (io.ReadCloser, string, error)
}

// Service implements image upload and read-proxy use cases.
type Service struct {
	store ObjectStore
}

// NewService constructs a new uploads [Service].
func NewService(store ObjectStore) *Service {
	return &Service{store: store}
}

// Stored describes a completed upload.
type Stored struct {
	Key      string `json:"key"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

/*
Store saves an uploaded image under the kind's prefix.

The object key is derived from a fresh UUID plus a slug of the original
filename. Fully non-Latin filenames can slug to nothing; the UUID alone
keeps the key unique and non-empty in that case.

Parameters:
  - kind: Bucket namespace (books or authors)
  - filename: Original client filename, used for the extension and slug
  - reader: File content
  - size: Content length in bytes
  - contentType: Client-declared MIME type

Returns:
  - *Stored: The object key and proxy URL
  - error: Validation or storage errors
*/
func (service *Service) Store(context context.Context, kind Kind, filename string, reader io.Reader, size int64, contentType string) (*Stored, error) {

	extension := strings.ToLower(path.Ext(filename))
	if !allowedExtensions[extension] {
		return nil, apperr.ValidationError("File type is not an accepted image format")
	}

	base := slug.From(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))

	name := uuid.New()
	if base != "" {
		name = name + "-" + base
	}
	name += extension

	key := fmt.Sprintf("%s/%s", kind, name)

	if err := service.store.Put(context, key, reader, size, contentType); err != nil {
		return nil, fmt.Errorf("uploads_store_failed: %w", err)
	}

	return &Stored{
		Key:      key,
		Filename: name,
		URL:      fmt.Sprintf("/api/uploads/%s", key),
	}, nil
}

/*
Open streams a previously uploaded image back out of the object store.

Returns:
  - io.ReadCloser: The object content; the caller must close it
  - string: The stored content type
  - error: apperr.NotFound for unknown keys
*/
func (service *Service) Open(context context.Context, kind Kind, filename string) (io.ReadCloser, string, error) {

	// Reject traversal attempts before touching the store
	if filename == "" || filename != path.Base(filename) {
		return nil, "", apperr.NotFound("File")
	}

	key := fmt.Sprintf("%s/%s", kind, filename)

	reader, contentType, err := service.store.Get(context, key)
	if err != nil {
		if objstore.IsNotFound(err) {
			return nil, "", apperr.NotFound("File")
		}
		return nil, "", fmt.Errorf("uploads_open_failed: %w", err)
	}

	return reader, contentType, nil
}
