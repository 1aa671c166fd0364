// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"

	"github.com/taibuivan/maktaba/internal/platform/validate"
	"github.com/taibuivan/maktaba/pkg/uuid"
)

// Service implements category taxonomy use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new category [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// ListCategories retrieves a paginated page of categories.
func (service *Service) ListCategories(context context.Context, filter Filter, limit, offset int) ([]*Category, int, error) {
	return service.repository.ListCategories(context, filter, limit, offset)
}

// GetCategory retrieves a single category by its UUID.
func (service *Service) GetCategory(context context.Context, id string) (*Category, error) {
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return nil, err
	}
	return service.repository.GetCategory(context, id)
}

// CreateCategory validates and persists a new taxonomy entry.
func (service *Service) CreateCategory(context context.Context, name string) (*Category, error) {
	err := validate.New().
		Required(FieldName, name).
		MaxLen(FieldName, name, 120).
		Err()
	if err != nil {
		return nil, err
	}

	category := &Category{ID: uuid.New(), Name: name}

	if err := service.repository.CreateCategory(context, category); err != nil {
		return nil, fmt.Errorf("category_service_create_failed: %w", err)
	}

	return category, nil
}

// UpdateCategory renames an existing taxonomy entry.
func (service *Service) UpdateCategory(context context.Context, id, name string) (*Category, error) {
	err := validate.New().
		UUID(FieldID, id).
		Required(FieldName, name).
		MaxLen(FieldName, name, 120).
		Err()
	if err != nil {
		return nil, err
	}

	category, err := service.repository.GetCategory(context, id)
	if err != nil {
		return nil, err
	}

	category.Name = name

	if err := service.repository.UpdateCategory(context, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a taxonomy entry.
func (service *Service) DeleteCategory(context context.Context, id string) error {
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return err
	}
	return service.repository.DeleteCategory(context, id)
}
