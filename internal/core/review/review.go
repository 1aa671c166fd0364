// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package review manages reader ratings and questionnaire answers.
package review

import (
	"context"
	"time"
)

// Review holds one reader's rating of a book plus up to three free-text
// questionnaire answers.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	Rating    int       `json:"rating"`
	Answer1   *string   `json:"answer1"`
	Answer2   *string   `json:"answer2"`
	Answer3   *string   `json:"answer3"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated review listing.
type Filter struct {
	UserID string
	BookID string
}

// Global field names for validation
const (
	FieldID     = "id"
	FieldUserID = "user_id"
	FieldBookID = "book_id"
	FieldRating = "rating"
	FieldAnswer = "answer"
)

// Repository defines the persistence contract for reviews.
type Repository interface {
	ListReviews(context context.Context, filter Filter, limit, offset int) ([]*Review, int, error)
	GetReview(context context.Context, id string) (*Review, error)
	CreateReview(context context.Context, review *Review) error
	UpdateReview(context context.Context, review *Review) error
	DeleteReview(context context.Context, id string) error
}
