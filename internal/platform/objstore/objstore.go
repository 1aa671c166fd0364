// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package objstore wraps an S3-compatible object store used for cover and
avatar images.

The server treats it as an opaque blob store: uploads are written with a
put-object call, and proxy reads stream the object straight back through the
HTTP response. No versioning or lifecycle logic lives here.
*/
package objstore

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store provides access to the upload bucket.
type Store struct {
	client *minio.Client
	bucket string
}

// Options holds connection settings for the object store.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// New connects to the object store and ensures the bucket exists.
func New(options Options) (*Store, error) {
	client, err := minio.New(options.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(options.AccessKey, options.SecretKey, ""),
		Secure: options.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("objstore: init client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, options.Bucket)
	if err != nil {
		return nil, fmt.Errorf("objstore: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, options.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("objstore: create bucket: %w", err)
		}
	}

	return &Store{client: client, bucket: options.Bucket}, nil
}

// Put uploads an object under the given key.
func (store *Store) Put(context context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := store.client.PutObject(context, store.bucket, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("objstore: put object: %w", err)
	}
	return nil
}

// Get opens an object for streaming along with its content type.
//
// The returned ReadCloser must be closed by the caller. A nil error does not
// guarantee the object exists: the object store defers the existence check
// until the first read, which [Stat] inside this method forces eagerly.
func (store *Store) Get(context context.Context, key string) (io.ReadCloser, string, error) {
	object, err := store.client.GetObject(context, store.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("objstore: get object: %w", err)
	}

	info, err := object.Stat()
	if err != nil {
		_ = object.Close()
		return nil, "", fmt.Errorf("objstore: stat object: %w", err)
	}

	return object, info.ContentType, nil
}

// Delete removes an object.
func (store *Store) Delete(context context.Context, key string) error {
	if err := store.client.RemoveObject(context, store.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("objstore: delete object: %w", err)
	}
	return nil
}

// Ping verifies bucket reachability for readiness probes.
func (store *Store) Ping(context context.Context) error {
	if _, err := store.client.BucketExists(context, store.bucket); err != nil {
		return fmt.Errorf("objstore: ping failed: %w", err)
	}
	return nil
}

// IsNotFound reports whether err represents a missing object.
func IsNotFound(err error) bool {
	response := minio.ToErrorResponse(unwrapAll(err))
	return response.Code == "NoSuchKey" || response.StatusCode == 404
}

// unwrapAll walks to the innermost error for minio response inspection.
func unwrapAll(err error) error {
	type unwrapper interface{ Unwrap() error }
	for {
		u, ok := err.(unwrapper)
		if !ok || u.Unwrap() == nil {
			return err
		}
		err = u.Unwrap()
	}
}
