// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package category manages the flat category taxonomy used by books and
// author profiles.
package category

import (
	"context"
	"time"
)

// Category represents one taxonomy entry.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated category search.
type Filter struct {
	Query string // Case-insensitive substring match on name
}

// Global field names for validation
const (
	FieldID   = "id"
	FieldName = "name"
)

// Repository defines the persistence contract for categories.
type Repository interface {
	ListCategories(context context.Context, filter Filter, limit, offset int) ([]*Category, int, error)
	GetCategory(context context.Context, id string) (*Category, error)
	CreateCategory(context context.Context, category *Category) error
	UpdateCategory(context context.Context, category *Category) error
	DeleteCategory(context context.Context, id string) error
}
