// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

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

// NewRepository constructs a Hasura-backed book store.
func NewRepository(client *hasura.Client) Repository {
	return &graphqlRepository{client: client}
}

// bookRow mirrors the remote books table shape. The chapter count is a
// derived aggregate, selected alongside the scalar columns.
type bookRow struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       *string    `json:"description"`
	ISBN              *string    `json:"isbn"`
	CoverURL          *string    `json:"cover_url"`
	PublishedDate     *time.Time `json:"published_date"`
	AuthorID          *string    `json:"author_id"`
	CategoryID        *string    `json:"category_id"`
	TotalPages        *int       `json:"total_pages"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	ChaptersAggregate struct {
		Aggregate struct {
			Count int `json:"count"`
		} `json:"aggregate"`
	} `json:"chapters_aggregate"`
}

// toDomain maps a remote row onto the domain entity.
func (row bookRow) toDomain() *Book {
	return &Book{
		ID:            row.ID,
		Title:         row.Title,
		Description:   row.Description,
		ISBN:          row.ISBN,
		CoverURL:      row.CoverURL,
		PublishedDate: row.PublishedDate,
		AuthorID:      row.AuthorID,
		CategoryID:    row.CategoryID,
		TotalPages:    row.TotalPages,
		ChapterCount:  row.ChaptersAggregate.Aggregate.Count,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

// # Documents

const bookFields = `
    id
    title
    description
    isbn
    cover_url
    published_date
    author_id
    category_id
    total_pages
    created_at
    updated_at
    chapters_aggregate {
      aggregate {
        count
      }
    }
`

const listBooksQuery = `
query ListBooks($where: books_bool_exp!, $limit: Int!, $offset: Int!) {
  books(where: $where, order_by: {created_at: desc}, limit: $limit, offset: $offset) {` + bookFields + `}
  books_aggregate(where: $where) {
    aggregate {
      count
    }
  }
}
`

const getBookQuery = `
query GetBook($id: uuid!) {
  books_by_pk(id: $id) {` + bookFields + `}
}
`

const listBookIDsByAuthorQuery = `
query ListBookIDsByAuthor($authorID: uuid!) {
  books(where: {author_id: {_eq: $authorID}}) {
    id
  }
}
`

const insertBookMutation = `
mutation InsertBook($object: books_insert_input!) {
  insert_books_one(object: $object) {
    id
  }
}
`

const updateBookMutation = `
mutation UpdateBook($id: uuid!, $set: books_set_input!) {
  update_books_by_pk(pk_columns: {id: $id}, _set: $set) {
    id
  }
}
`

const deleteBookMutation = `
mutation DeleteBook($id: uuid!) {
  delete_books_by_pk(id: $id) {
    id
  }
}
`

// # Repository Implementation

func (repository *graphqlRepository) ListBooks(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {

	// Where-expression built as a document variable
	where := map[string]any{}
	if filter.Query != "" {
		where["title"] = map[string]any{"_ilike": "%" + filter.Query + "%"}
	}
	if filter.CategoryID != "" {
		where["category_id"] = map[string]any{"_eq": filter.CategoryID}
	}
	if filter.AuthorID != "" {
		where["author_id"] = map[string]any{"_eq": filter.AuthorID}
	}

	var result struct {
		Books          []bookRow `json:"books"`
		BooksAggregate struct {
			Aggregate struct {
				Count int `json:"count"`
			} `json:"aggregate"`
		} `json:"books_aggregate"`
	}

	variables := map[string]any{"where": where, "limit": limit, "offset": offset}
	if err := repository.client.Run(context, listBooksQuery, variables, &result); err != nil {
		return nil, 0, err
	}

	books := make([]*Book, 0, len(result.Books))
	for _, row := range result.Books {
		books = append(books, row.toDomain())
	}

	return books, result.BooksAggregate.Aggregate.Count, nil
}

func (repository *graphqlRepository) GetBook(context context.Context, id string) (*Book, error) {
	var result struct {
		Book *bookRow `json:"books_by_pk"`
	}

	if err := repository.client.Run(context, getBookQuery, map[string]any{"id": id}, &result); err != nil {
		return nil, err
	}

	if result.Book == nil {
		return nil, apperr.NotFound("Book")
	}

	return result.Book.toDomain(), nil
}

func (repository *graphqlRepository) ListIDsByAuthor(context context.Context, authorID string) ([]string, error) {
	var result struct {
		Books []struct {
			ID string `json:"id"`
		} `json:"books"`
	}

	if err := repository.client.Run(context, listBookIDsByAuthorQuery, map[string]any{"authorID": authorID}, &result); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(result.Books))
	for _, row := range result.Books {
		ids = append(ids, row.ID)
	}

	return ids, nil
}

func (repository *graphqlRepository) CreateBook(context context.Context, book *Book) error {
	object := map[string]any{
		"id":             book.ID,
		"title":          book.Title,
		"description":    book.Description,
		"isbn":           book.ISBN,
		"cover_url":      book.CoverURL,
		"published_date": book.PublishedDate,
		"author_id":      book.AuthorID,
		"category_id":    book.CategoryID,
		"total_pages":    book.TotalPages,
	}

	var result struct {
		Inserted *struct {
			ID string `json:"id"`
		} `json:"insert_books_one"`
	}

	return repository.client.Run(context, insertBookMutation, map[string]any{"object": object}, &result)
}

func (repository *graphqlRepository) UpdateBook(context context.Context, book *Book) error {
	set := map[string]any{
		"title":          book.Title,
		"description":    book.Description,
		"isbn":           book.ISBN,
		"cover_url":      book.CoverURL,
		"published_date": book.PublishedDate,
		"author_id":      book.AuthorID,
		"category_id":    book.CategoryID,
		"total_pages":    book.TotalPages,
	}

	var result struct {
		Updated *struct {
			ID string `json:"id"`
		} `json:"update_books_by_pk"`
	}

	if err := repository.client.Run(context, updateBookMutation, map[string]any{"id": book.ID, "set": set}, &result); err != nil {
		return err
	}

	if result.Updated == nil {
		return apperr.NotFound("Book")
	}

	return nil
}

func (repository *graphqlRepository) DeleteBook(context context.Context, id string) error {
	var result struct {
		Deleted *struct {
			ID string `json:"id"`
		} `json:"delete_books_by_pk"`
	}

	if err := repository.client.Run(context, deleteBookMutation, map[string]any{"id": id}, &result); err != nil {
		return err
	}

	if result.Deleted == nil {
		return apperr.NotFound("Book")
	}

	return nil
}
