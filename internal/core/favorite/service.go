// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"context"
	"fmt"

	"github.com/taibuivan/maktaba/internal/platform/apperr"
	"github.com/taibuivan/maktaba/internal/platform/validate"
	"github.com/taibuivan/maktaba/pkg/uuid"
)

// Service implements bookmark use cases for the admin console.
type Service struct {
	repository Repository
}

// NewService constructs a new favorite [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// ListFavorites retrieves a paginated page of bookmarks.
func (service *Service) ListFavorites(context context.Context, filter Filter, limit, offset int) ([]*Favorite, int, error) {
	return service.repository.ListFavorites(context, filter, limit, offset)
}

// CreateFavorite bookmarks a book for a user. Duplicate pairs conflict.
func (service *Service) CreateFavorite(context context.Context, userID, bookID string) (*Favorite, error) {
	err := validate.New().
		UUID(FieldUserID, userID).
		UUID(FieldBookID, bookID).
		Err()
	if err != nil {
		return nil, err
	}

	// One bookmark per user/book pair
	if _, err := service.repository.FindByUserAndBook(context, userID, bookID); err == nil {
		return nil, apperr.Conflict("Book is already bookmarked")
	}

	favorite := &Favorite{ID: uuid.New(), UserID: userID, BookID: bookID}

	if err := service.repository.CreateFavorite(context, favorite); err != nil {
		return nil, fmt.Errorf("favorite_service_create_failed: %w", err)
	}

	return favorite, nil
}

// DeleteFavorite removes a bookmark.
func (service *Service) DeleteFavorite(context context.Context, id string) error {
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return err
	}
	return service.repository.DeleteFavorite(context, id)
}
