// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/maktaba/internal/platform/apperr"
)

/*
TestConstructors checks the code and HTTP status of each error family.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		code   string
		status int
	}{
		{"not_found", apperr.NotFound("Book"), "NOT_FOUND", http.StatusNotFound},
		{"unauthorized", apperr.Unauthorized("nope"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("nope"), "FORBIDDEN", http.StatusForbidden},
		{"conflict", apperr.Conflict("taken"), "CONFLICT", http.StatusConflict},
		{"validation", apperr.ValidationError("bad"), "VALIDATION_ERROR", http.StatusBadRequest},
		{"upstream", apperr.UpstreamUnavailable(errors.New("boom")), "UPSTREAM_UNAVAILABLE", http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

/*
TestAs extracts an AppError through a wrapping chain.
*/
func TestAs(t *testing.T) {
	inner := apperr.NotFound("Author")
	wrapped := fmt.Errorf("service_failed: %w", inner)

	extracted := apperr.As(wrapped)
	require.NotNil(t, extracted)
	assert.Equal(t, "NOT_FOUND", extracted.Code)

	assert.Nil(t, apperr.As(errors.New("plain")))
}

/*
TestIsNotFound distinguishes 404 errors from the rest of the taxonomy.
*/
func TestIsNotFound(t *testing.T) {
	assert.True(t, apperr.IsNotFound(apperr.NotFound("Book")))
	assert.True(t, apperr.IsNotFound(fmt.Errorf("wrap: %w", apperr.NotFound("Book"))))
	assert.False(t, apperr.IsNotFound(apperr.Forbidden("no")))
	assert.False(t, apperr.IsNotFound(errors.New("plain")))
	assert.False(t, apperr.IsNotFound(nil))
}

/*
TestUpstreamUnavailable_Cause verifies the cause is preserved for logging
while the client-facing message stays generic.
*/
func TestUpstreamUnavailable_Cause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.UpstreamUnavailable(cause)

	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Message, "connection refused")
}
