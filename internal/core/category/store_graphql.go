// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

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

// NewRepository constructs a Hasura-backed category store.
func NewRepository(client *hasura.Client) Repository {
	return &graphqlRepository{client: client}
}

// categoryRow mirrors the remote categories table shape.
type categoryRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (row categoryRow) toDomain() *Category {
	return &Category{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt}
}

// # Documents

const listCategoriesQuery = `
query ListCategories($where: categories_bool_exp!, $limit: Int!, $offset: Int!) {
  categories(where: $where, order_by: {name: asc}, limit: $limit, offset: $offset) {
    id
    name
    created_at
    updated_at
  }
  categories_aggregate(where: $where) {
    aggregate {
      count
    }
  }
}
`

const getCategoryQuery = `
query GetCategory($id: uuid!) {
  categories_by_pk(id: $id) {
    id
    name
    created_at
    updated_at
  }
}
`

const insertCategoryMutation = `
mutation InsertCategory($object: categories_insert_input!) {
  insert_categories_one(object: $object) {
    id
  }
}
`

const updateCategoryMutation = `
mutation UpdateCategory($id: uuid!, $set: categories_set_input!) {
  update_categories_by_pk(pk_columns: {id: $id}, _set: $set) {
    id
  }
}
`

const deleteCategoryMutation = `
mutation DeleteCategory($id: uuid!) {
  delete_categories_by_pk(id: $id) {
    id
  }
}
`

// # Repository Implementation

func (repository *graphqlRepository) ListCategories(context context.Context, filter Filter, limit, offset int) ([]*Category, int, error) {
	where := map[string]any{}
	if filter.Query != "" {
		where["name"] = map[string]any{"_ilike": "%" + filter.Query + "%"}
	}

	var result struct {
		Categories          []categoryRow `json:"categories"`
		CategoriesAggregate struct {
			Aggregate struct {
				Count int `json:"count"`
			} `json:"aggregate"`
		} `json:"categories_aggregate"`
	}

	variables := map[string]any{"where": where, "limit": limit, "offset": offset}
	if err := repository.client.Run(context, listCategoriesQuery, variables, &result); err != nil {
		return nil, 0, err
	}

	categories := make([]*Category, 0, len(result.Categories))
	for _, row := range result.Categories {
		categories = append(categories, row.toDomain())
	}

	return categories, result.CategoriesAggregate.Aggregate.Count, nil
}

func (repository *graphqlRepository) GetCategory(context context.Context, id string) (*Category, error) {
	var result struct {
		Category *categoryRow `json:"categories_by_pk"`
	}

	if err := repository.client.Run(context, getCategoryQuery, map[string]any{"id": id}, &result); err != nil {
		return nil, err
	}

	if result.Category == nil {
		return nil, apperr.NotFound("Category")
	}

	return result.Category.toDomain(), nil
}

func (repository *graphqlRepository) CreateCategory(context context.Context, category *Category) error {
	object := map[string]any{"id": category.ID, "name": category.Name}

	var result struct {
		Inserted *struct {
			ID string `json:"id"`
		} `json:"insert_categories_one"`
	}

	return repository.client.Run(context, insertCategoryMutation, map[string]any{"object": object}, &result)
}

func (repository *graphqlRepository) UpdateCategory(context context.Context, category *Category) error {
	var result struct {
		Updated *struct {
			ID string `json:"id"`
		} `json:"update_categories_by_pk"`
	}

	variables := map[string]any{"id": category.ID, "set": map[string]any{"name": category.Name}}
	if err := repository.client.Run(context, updateCategoryMutation, variables, &result); err != nil {
		return err
	}

	if result.Updated == nil {
		return apperr.NotFound("Category")
	}

	return nil
}

func (repository *graphqlRepository) DeleteCategory(context context.Context, id string) error {
	var result struct {
		Deleted *struct {
			ID string `json:"id"`
		} `json:"delete_categories_by_pk"`
	}

	if err := repository.client.Run(context, deleteCategoryMutation, map[string]any{"id": id}, &result); err != nil {
		return err
	}

	if result.Deleted == nil {
		return apperr.NotFound("Category")
	}

	return nil
}
