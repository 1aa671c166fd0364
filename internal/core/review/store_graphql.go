// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"time"

	"github.com/taibuivan/maktaba/internal/platform/apperr"
	"github.com/taibuivan/maktaba/internal/platform/hasura"
)

// graphqlRepository implements the [Repository] interface against Hasura.
type graphqlRepository struct {
	client *hasura.Client
}

// NewRepository constructs a Hasura-backed review store.
func NewRepository(client *hasura.Client) Repository {
	return &graphqlRepository{client: client}
}

// reviewRow mirrors the remote reviews table shape.
type reviewRow struct {
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

func (row reviewRow) toDomain() *Review {
	return &Review{
		ID:        row.ID,
		UserID:    row.UserID,
		BookID:    row.BookID,
		Rating:    row.Rating,
		Answer1:   row.Answer1,
		Answer2:   row.Answer2,
		Answer3:   row.Answer3,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// # Documents

const reviewFields = `
    id
    user_id
    book_id
    rating
    answer1
    answer2
    answer3
    created_at
    updated_at
`

const listReviewsQuery = `
query ListReviews($where: reviews_bool_exp!, $limit: Int!, $offset: Int!) {
  reviews(where: $where, order_by: {created_at: desc}, limit: $limit, offset: $offset) {` + reviewFields + `}
  reviews_aggregate(where: $where) {
    aggregate {
      count
    }
  }
}
`

const getReviewQuery = `
query GetReview($id: uuid!) {
  reviews_by_pk(id: $id) {` + reviewFields + `}
}
`

const insertReviewMutation = `
mutation InsertReview($object: reviews_insert_input!) {
  insert_reviews_one(object: $object) {
    id
  }
}
`

const updateReviewMutation = `
mutation UpdateReview($id: uuid!, $set: reviews_set_input!) {
  update_reviews_by_pk(pk_columns: {id: $id}, _set: $set) {
    id
  }
}
`

const deleteReviewMutation = `
mutation DeleteReview($id: uuid!) {
  delete_reviews_by_pk(id: $id) {
    id
  }
}
`

// # Repository Implementation

func (repository *graphqlRepository) ListReviews(context context.Context, filter Filter, limit, offset int) ([]*Review, int, error) {
	where := map[string]any{}
	if filter.UserID != "" {
		where["user_id"] = map[string]any{"_eq": filter.UserID}
	}
	if filter.BookID != "" {
		where["book_id"] = map[string]any{"_eq": filter.BookID}
	}

	var result struct {
		Reviews          []reviewRow `json:"reviews"`
		ReviewsAggregate struct {
			Aggregate struct {
				Count int `json:"count"`
			} `json:"aggregate"`
		} `json:"reviews_aggregate"`
	}

	variables := map[string]any{"where": where, "limit": limit, "offset": offset}
	if err := repository.client.Run(context, listReviewsQuery, variables, &result); err != nil {
		return nil, 0, err
	}

	reviews := make([]*Review, 0, len(result.Reviews))
	for _, row := range result.Reviews {
		reviews = append(reviews, row.toDomain())
	}

	return reviews, result.ReviewsAggregate.Aggregate.Count, nil
}

func (repository *graphqlRepository) GetReview(context context.Context, id string) (*Review, error) {
	var result struct {
		Review *reviewRow `json:"reviews_by_pk"`
	}

	if err := repository.client.Run(context, getReviewQuery, map[string]any{"id": id}, &result); err != nil {
		return nil, err
	}

	if result.Review == nil {
		return nil, apperr.NotFound("Review")
	}

	return result.Review.toDomain(), nil
}

func (repository *graphqlRepository) CreateReview(context context.Context, review *Review) error {
	object := map[string]any{
		"id":      review.ID,
		"user_id": review.UserID,
		"book_id": review.BookID,
		"rating":  review.Rating,
		"answer1": review.Answer1,
		"answer2": review.Answer2,
		"answer3": review.Answer3,
	}

	var result struct {
		Inserted *struct {
			ID string `json:"id"`
		} `json:"insert_reviews_one"`
	}

	return repository.client.Run(context, insertReviewMutation, map[string]any{"object": object}, &result)
}

func (repository *graphqlRepository) UpdateReview(context context.Context, review *Review) error {
	set := map[string]any{
		"rating":  review.Rating,
		"answer1": review.Answer1,
		"answer2": review.Answer2,
		"answer3": review.Answer3,
	}

	var result struct {
		Updated *struct {
			ID string `json:"id"`
		} `json:"update_reviews_by_pk"`
	}

	if err := repository.client.Run(context, updateReviewMutation, map[string]any{"id": review.ID, "set": set}, &result); err != nil {
		return err
	}

	if result.Updated == nil {
		return apperr.NotFound("Review")
	}

	return nil
}

func (repository *graphqlRepository) DeleteReview(context context.Context, id string) error {
	var result struct {
		Deleted *struct {
			ID string `json:"id"`
		} `json:"delete_reviews_by_pk"`
	}

	if err := repository.client.Run(context, deleteReviewMutation, map[string]any{"id": id}, &result); err != nil {
		return err
	}

	if result.Deleted == nil {
		return apperr.NotFound("Review")
	}

	return nil
}
