// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/taibuivan/maktaba/internal/platform/validate"
	"github.com/taibuivan/maktaba/pkg/uuid"
)

// Service implements review use cases for the admin console.
type Service struct {
	repository Repository
}

// NewService constructs a new review [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// Input holds the mutable review fields.
type Input struct {
	UserID  string
	BookID  string
	Rating  int
	Answer1 *string
	Answer2 *string
	Answer3 *string
}

// validateInput enforces the review field rules: a 1-5 rating and up to
// three bounded free-text answers.
func validateInput(input Input) error {
	validator := validate.New().
		UUID(FieldUserID, input.UserID).
		UUID(FieldBookID, input.BookID).
		Range(FieldRating, input.Rating, 1, 5)

	for index, answer := range []*string{input.Answer1, input.Answer2, input.Answer3} {
		if answer != nil {
			validator.MaxLen(fmt.Sprintf("%s%d", FieldAnswer, index+1), *answer, 2000)
		}
	}

	return validator.Err()
}

// ListReviews retrieves a paginated page of reviews.
func (service *Service) ListReviews(context context.Context, filter Filter, limit, offset int) ([]*Review, int, error) {
	return service.repository.ListReviews(context, filter, limit, offset)
}

// GetReview retrieves a single review by its UUID.
func (service *Service) GetReview(context context.Context, id string) (*Review, error) {
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return nil, err
	}
	return service.repository.GetReview(context, id)
}

// CreateReview validates and persists a new review.
func (service *Service) CreateReview(context context.Context, input Input) (*Review, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	review := &Review{
		ID:      uuid.New(),
		UserID:  input.UserID,
		BookID:  input.BookID,
		Rating:  input.Rating,
		Answer1: input.Answer1,
		Answer2: input.Answer2,
		Answer3: input.Answer3,
	}

	if err := service.repository.CreateReview(context, review); err != nil {
		return nil, fmt.Errorf("review_service_create_failed: %w", err)
	}

	return review, nil
}

// UpdateReview applies a full update to an existing review. The account
// and book links are immutable; only the rating and answers change.
func (service *Service) UpdateReview(context context.Context, id string, input Input) (*Review, error) {
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return nil, err
	}

	review, err := service.repository.GetReview(context, id)
	if err != nil {
		return nil, err
	}

	// Validate against the stored links so callers need only send the
	// mutable fields
	input.UserID = review.UserID
	input.BookID = review.BookID
	if err := validateInput(input); err != nil {
		return nil, err
	}

	review.Rating = input.Rating
	review.Answer1 = input.Answer1
	review.Answer2 = input.Answer2
	review.Answer3 = input.Answer3

	if err := service.repository.UpdateReview(context, review); err != nil {
		return nil, err
	}

	return review, nil
}

// DeleteReview removes a review.
func (service *Service) DeleteReview(context context.Context, id string) error {
	if err := validate.New().UUID(FieldID, id).Err(); err != nil {
		return err
	}
	return service.repository.DeleteReview(context, id)
}
