// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"
	"time"

	"github.com/taibuivan/maktaba/internal/platform/apperr"
	"github.com/taibuivan/maktaba/internal/platform/hasura"
)

// # GraphQL Repository

// graphqlRepository implements the [Repository] interface against Hasura.
type graphqlRepository struct {
	client *hasura.Client
}

// NewRepository constructs a Hasura-backed author store.
func NewRepository(client *hasura.Client) Repository {
	return &graphqlRepository{client: client}
}

// authorRow mirrors the remote authors table shape.
type authorRow struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Bio        *string   `json:"bio"`
	ImageURL   *string   `json:"image_url"`
	BookNum    int       `json:"book_num"`
	CategoryID *string   `json:"category_id"`
	UserID     *string   `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// toDomain maps a remote row onto the domain entity.
func (row authorRow) toDomain() *Author {
	return &Author{
		ID:         row.ID,
		Name:       row.Name,
		Bio:        row.Bio,
		ImageURL:   row.ImageURL,
		BookNum:    row.BookNum,
		CategoryID: row.CategoryID,
		UserID:     row.UserID,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

// # Documents

const authorFields = `
    id
    name
    bio
    image_url
    book_num
    category_id
    user_id
    created_at
    updated_at
`

const listAuthorsQuery = `
query ListAuthors($where: authors_bool_exp!, $limit: Int!, $offset: Int!) {
  authors(where: $where, order_by: {name: asc}, limit: $limit, offset: $offset) {` + authorFields + `}
  authors_aggregate(where: $where) {
    aggregate {
      count
    }
  }
}
`

const getAuthorQuery = `
query GetAuthor($id: uuid!) {
  authors_by_pk(id: $id) {` + authorFields + `}
}
`

const findAuthorByUserQuery = `
query FindAuthorByUser($userID: uuid!) {
  authors(where: {user_id: {_eq: $userID}}, limit: 1) {` + authorFields + `}
}
`

const countAuthorBooksQuery = `
query CountAuthorBooks($authorID: uuid!) {
  books_aggregate(where: {author_id: {_eq: $authorID}}) {
    aggregate {
      count
    }
  }
}
`

const insertAuthorMutation = `
mutation InsertAuthor($object: authors_insert_input!) {
  insert_authors_one(object: $object) {
    id
  }
}
`

const updateAuthorMutation = `
mutation UpdateAuthor($id: uuid!, $set: authors_set_input!) {
  update_authors_by_pk(pk_columns: {id: $id}, _set: $set) {
    id
  }
}
`

const deleteAuthorMutation = `
mutation DeleteAuthor($id: uuid!) {
  delete_authors_by_pk(id: $id) {
    id
  }
}
`

// # Repository Implementation

func (repository *graphqlRepository) ListAuthors(context context.Context, filter Filter, limit, offset int) ([]*Author, int, error) {

	// Where-expression built as a document variable
	where := map[string]any{}
	if filter.Query != "" {
		where["name"] = map[string]any{"_ilike": "%" + filter.Query + "%"}
	}
	if filter.CategoryID != "" {
		where["category_id"] = map[string]any{"_eq": filter.CategoryID}
	}

	var result struct {
		Authors          []authorRow `json:"authors"`
		AuthorsAggregate struct {
			Aggregate struct {
				Count int `json:"count"`
			} `json:"aggregate"`
		} `json:"authors_aggregate"`
	}

	variables := map[string]any{"where": where, "limit": limit, "offset": offset}
	if err := repository.client.Run(context, listAuthorsQuery, variables, &result); err != nil {
		return nil, 0, err
	}

	authors := make([]*Author, 0, len(result.Authors))
	for _, row := range result.Authors {
		authors = append(authors, row.toDomain())
	}

	return authors, result.AuthorsAggregate.Aggregate.Count, nil
}

func (repository *graphqlRepository) GetAuthor(context context.Context, id string) (*Author, error) {
	var result struct {
		Author *authorRow `json:"authors_by_pk"`
	}

	if err := repository.client.Run(context, getAuthorQuery, map[string]any{"id": id}, &result); err != nil {
		return nil, err
	}

	if result.Author == nil {
		return nil, apperr.NotFound("Author")
	}

	return result.Author.toDomain(), nil
}

func (repository *graphqlRepository) FindByUserID(context context.Context, userID string) (*Author, error) {
	var result struct {
		Authors []authorRow `json:"authors"`
	}

	if err := repository.client.Run(context, findAuthorByUserQuery, map[string]any{"userID": userID}, &result); err != nil {
		return nil, err
	}

	if len(result.Authors) == 0 {
		return nil, apperr.NotFound("Author")
	}

	return result.Authors[0].toDomain(), nil
}

func (repository *graphqlRepository) CountBooks(context context.Context, authorID string) (int, error) {
	var result struct {
		BooksAggregate struct {
			Aggregate struct {
				Count int `json:"count"`
			} `json:"aggregate"`
		} `json:"books_aggregate"`
	}

	if err := repository.client.Run(context, countAuthorBooksQuery, map[string]any{"authorID": authorID}, &result); err != nil {
		return 0, err
	}

	return result.BooksAggregate.Aggregate.Count, nil
}

func (repository *graphqlRepository) CreateAuthor(context context.Context, author *Author) error {
	object := map[string]any{
		"id":          author.ID,
		"name":        author.Name,
		"bio":         author.Bio,
		"image_url":   author.ImageURL,
		"book_num":    author.BookNum,
		"category_id": author.CategoryID,
		"user_id":     author.UserID,
	}

	var result struct {
		Inserted *struct {
			ID string `json:"id"`
		} `json:"insert_authors_one"`
	}

	return repository.client.Run(context, insertAuthorMutation, map[string]any{"object": object}, &result)
}

func (repository *graphqlRepository) UpdateAuthor(context context.Context, author *Author) error {
	set := map[string]any{
		"name":        author.Name,
		"bio":         author.Bio,
		"image_url":   author.ImageURL,
		"book_num":    author.BookNum,
		"category_id": author.CategoryID,
		"user_id":     author.UserID,
	}

	var result struct {
		Updated *struct {
			ID string `json:"id"`
		} `json:"update_authors_by_pk"`
	}

	if err := repository.client.Run(context, updateAuthorMutation, map[string]any{"id": author.ID, "set": set}, &result); err != nil {
		return err
	}

	if result.Updated == nil {
		return apperr.NotFound("Author")
	}

	return nil
}

func (repository *graphqlRepository) DeleteAuthor(context context.Context, id string) error {
	var result struct {
		Deleted *struct {
			ID string `json:"id"`
		} `json:"delete_authors_by_pk"`
	}

	if err := repository.client.Run(context, deleteAuthorMutation, map[string]any{"id": id}, &result); err != nil {
		return err
	}

	if result.Deleted == nil {
		return apperr.NotFound("Author")
	}

	return nil
}
