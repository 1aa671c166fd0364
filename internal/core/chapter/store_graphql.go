// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/taibuivan/maktaba/internal/platform/apperr"
	"github.com/taibuivan/maktaba/internal/platform/hasura"
)

// # GraphQL Repository

// graphqlRepository implements the [Repository] interface against Hasura.
type graphqlRepository struct {
	client *hasura.Client
}

// NewRepository constructs a Hasura-backed chapter store.
func NewRepository(client *hasura.Client) Repository {
	return &graphqlRepository{client: client}
}

// chapterRow mirrors the remote chapters table shape.
type chapterRow struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Content    json.RawMessage `json:"content"`
	ChapterNum int             `json:"chapter_num"`
	BookID     string          `json:"book_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// toDomain maps a remote row onto the domain entity.
func (row chapterRow) toDomain() *Chapter {
	return &Chapter{
		ID:         row.ID,
		Title:      row.Title,
		Content:    row.Content,
		ChapterNum: row.ChapterNum,
		BookID:     row.BookID,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

// # Documents

const chapterFields = `
    id
    title
    content
    chapter_num
    book_id
    created_at
    updated_at
`

const listChaptersQuery = `
query ListChapters($where: chapters_bool_exp!, $limit: Int!, $offset: Int!) {
  chapters(where: $where, order_by: {chapter_num: asc}, limit: $limit, offset: $offset) {` + chapterFields + `}
  chapters_aggregate(where: $where) {
    aggregate {
      count
    }
  }
}
`

const getChapterQuery = `
query GetChapter($id: uuid!) {
  chapters_by_pk(id: $id) {` + chapterFields + `}
}
`

const insertChapterMutation = `
mutation InsertChapter($object: chapters_insert_input!) {
  insert_chapters_one(object: $object) {
    id
  }
}
`

const updateChapterMutation = `
mutation UpdateChapter($id: uuid!, $set: chapters_set_input!) {
  update_chapters_by_pk(pk_columns: {id: $id}, _set: $set) {
    id
  }
}
`

const deleteChapterMutation = `
mutation DeleteChapter($id: uuid!) {
  delete_chapters_by_pk(id: $id) {
    id
  }
}
`

// # Repository Implementation

func (repository *graphqlRepository) ListChapters(context context.Context, filter Filter, limit, offset int) ([]*Chapter, int, error) {

	// A present-but-empty restriction matches nothing. Short-circuit
	// before touching the upstream so "author with zero books" stays
	// distinct from "admin, unrestricted".
	if filter.BookIDs != nil && len(*filter.BookIDs) == 0 {
		return []*Chapter{}, 0, nil
	}

	// Where-expression built as a document variable
	where := map[string]any{}
	if filter.BookIDs != nil {
		where["book_id"] = map[string]any{"_in": *filter.BookIDs}
	}
	if filter.Search != "" {
		where["title"] = map[string]any{"_ilike": "%" + filter.Search + "%"}
	}

	var result struct {
		Chapters          []chapterRow `json:"chapters"`
		ChaptersAggregate struct {
			Aggregate struct {
				Count int `json:"count"`
			} `json:"aggregate"`
		} `json:"chapters_aggregate"`
	}

	variables := map[string]any{"where": where, "limit": limit, "offset": offset}
	if err := repository.client.Run(context, listChaptersQuery, variables, &result); err != nil {
		return nil, 0, err
	}

	chapters := make([]*Chapter, 0, len(result.Chapters))
	for _, row := range result.Chapters {
		chapters = append(chapters, row.toDomain())
	}

	return chapters, result.ChaptersAggregate.Aggregate.Count, nil
}

func (repository *graphqlRepository) GetChapter(context context.Context, id string) (*Chapter, error) {
	var result struct {
		Chapter *chapterRow `json:"chapters_by_pk"`
	}

	if err := repository.client.Run(context, getChapterQuery, map[string]any{"id": id}, &result); err != nil {
		return nil, err
	}

	if result.Chapter == nil {
		return nil, apperr.NotFound("Chapter")
	}

	return result.Chapter.toDomain(), nil
}

func (repository *graphqlRepository) CreateChapter(context context.Context, chapter *Chapter) error {
	object := map[string]any{
		"id":          chapter.ID,
		"title":       chapter.Title,
		"content":     chapter.Content,
		"chapter_num": chapter.ChapterNum,
		"book_id":     chapter.BookID,
	}

	var result struct {
		Inserted *struct {
			ID string `json:"id"`
		} `json:"insert_chapters_one"`
	}

	return repository.client.Run(context, insertChapterMutation, map[string]any{"object": object}, &result)
}

func (repository *graphqlRepository) UpdateChapter(context context.Context, chapter *Chapter) error {
	set := map[string]any{
		"title":       chapter.Title,
		"content":     chapter.Content,
		"chapter_num": chapter.ChapterNum,
		"book_id":     chapter.BookID,
	}

	var result struct {
		Updated *struct {
			ID string `json:"id"`
		} `json:"update_chapters_by_pk"`
	}

	if err := repository.client.Run(context, updateChapterMutation, map[string]any{"id": chapter.ID, "set": set}, &result); err != nil {
		return err
	}

	if result.Updated == nil {
		return apperr.NotFound("Chapter")
	}

	return nil
}

func (repository *graphqlRepository) DeleteChapter(context context.Context, id string) error {
	var result struct {
		Deleted *struct {
			ID string `json:"id"`
		} `json:"delete_chapters_by_pk"`
	}

	if err := repository.client.Run(context, deleteChapterMutation, map[string]any{"id": id}, &result); err != nil {
		return err
	}

	if result.Deleted == nil {
		return apperr.NotFound("Chapter")
	}

	return nil
}
