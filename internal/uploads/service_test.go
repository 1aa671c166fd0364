// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uploads_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/maktaba/internal/platform/apperr"
	"github.com/taibuivan/maktaba/internal/uploads"
)

// fakeObjectStore is an in-memory bucket.
type fakeObjectStore struct {
	objects      map[string][]byte
	contentTypes map[string]string
	getCalls     int
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{
		objects:      map[string][]byte{},
		contentTypes: map[string]string{},
	}
}

func (f *fakeObjectStore) Put(_ context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	content, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[key] = content
	f.contentTypes[key] = contentType
	return nil
}

func (f *fakeObjectStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	f.getCalls++
	content, ok := f.objects[key]
	if !ok {
		return nil, "", minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}
	}
	return io.NopCloser(bytes.NewReader(content)), f.contentTypes[key], nil
}

/*
TestStore_KeyShape verifies keys land under the kind prefix as
uuid-slug.ext.
*/
func TestStore_KeyShape(t *testing.T) {
	store := newFakeObjectStore()
	service := uploads.NewService(store)

	stored, err := service.Store(context.Background(), uploads.KindBooks, "Cover Photo (1).PNG",
		strings.NewReader("fake-png"), 8, "image/png")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Key, "books/"), "key: %s", stored.Key)
	assert.True(t, strings.HasSuffix(stored.Key, "-cover-photo-1.png"), "key: %s", stored.Key)
	assert.Equal(t, "/api/uploads/"+stored.Key, stored.URL)
	assert.Contains(t, store.objects, stored.Key)
	assert.Equal(t, "image/png", store.contentTypes[stored.Key])
}

/*
TestStore_NonLatinFilename verifies a filename that slugs to nothing
still produces a usable uuid.ext key.
*/
func TestStore_NonLatinFilename(t *testing.T) {
	store := newFakeObjectStore()
	service := uploads.NewService(store)

	stored, err := service.Store(context.Background(), uploads.KindAuthors, "صورة.jpg",
		strings.NewReader("fake-jpg"), 8, "image/jpeg")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Key, "authors/"))
	assert.True(t, strings.HasSuffix(stored.Key, ".jpg"))
	assert.NotEqual(t, "authors/.jpg", stored.Key)

	// uuid.ext with no slug segment: 36-char id plus extension
	assert.Len(t, stored.Filename, 36+len(".jpg"), "pure uuid expected when the slug is empty")
}

/*
TestStore_RejectedExtensions verifies only web image formats are
accepted.
*/
func TestStore_RejectedExtensions(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"executable", "payload.exe"},
		{"svg", "vector.svg"},
		{"no_extension", "README"},
		{"double_extension_trick", "photo.png.sh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeObjectStore()
			service := uploads.NewService(store)

			_, err := service.Store(context.Background(), uploads.KindBooks, tt.filename,
				strings.NewReader("x"), 1, "application/octet-stream")

			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
			assert.Empty(t, store.objects)
		})
	}
}

/*
TestParseKind verifies the kind whitelist.
*/
func TestParseKind(t *testing.T) {
	kind, err := uploads.ParseKind("books")
	require.NoError(t, err)
	assert.Equal(t, uploads.KindBooks, kind)

	kind, err = uploads.ParseKind("authors")
	require.NoError(t, err)
	assert.Equal(t, uploads.KindAuthors, kind)

	_, err = uploads.ParseKind("secrets")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestOpen verifies round-tripping through the read proxy.
*/
func TestOpen(t *testing.T) {
	store := newFakeObjectStore()
	service := uploads.NewService(store)

	stored, err := service.Store(context.Background(), uploads.KindBooks, "cover.webp",
		strings.NewReader("webp-bytes"), 10, "image/webp")
	require.NoError(t, err)

	reader, contentType, err := service.Open(context.Background(), uploads.KindBooks, stored.Filename)
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "webp-bytes", string(content))
	assert.Equal(t, "image/webp", contentType)
}

/*
TestOpen_Traversal verifies path traversal never reaches the store.
*/
func TestOpen_Traversal(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"dotdot", "../secrets.png"},
		{"nested", "a/b.png"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeObjectStore()
			service := uploads.NewService(store)

			_, _, err := service.Open(context.Background(), uploads.KindBooks, tt.filename)

			require.Error(t, err)
			assert.True(t, apperr.IsNotFound(err))
			assert.Zero(t, store.getCalls, "traversal must be rejected before the store is hit")
		})
	}
}

/*
TestOpen_Missing verifies unknown keys map to NOT_FOUND.
*/
func TestOpen_Missing(t *testing.T) {
	service := uploads.NewService(newFakeObjectStore())

	_, _, err := service.Open(context.Background(), uploads.KindBooks, "nope.png")

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
