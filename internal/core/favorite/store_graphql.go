// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

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

// NewRepository constructs a Hasura-backed favorite store.
func NewRepository(client *hasura.Client) Repository {
	return &graphqlRepository{client: client}
}

// favoriteRow mirrors the remote favorites table shape.
type favoriteRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (row favoriteRow) toDomain() *Favorite {
	return &Favorite{ID: row.ID, UserID: row.UserID, BookID: row.BookID, CreatedAt: row.CreatedAt}
}

// # Documents

const favoriteFields = `
    id
    user_id
    book_id
    created_at
`

const listFavoritesQuery = `
query ListFavorites($where: favorites_bool_exp!, $limit: Int!, $offset: Int!) {
  favorites(where: $where, order_by: {created_at: desc}, limit: $limit, offset: $offset) {` + favoriteFields + `}
  favorites_aggregate(where: $where) {
    aggregate {
      count
    }
  }
}
`

const findFavoriteQuery = `
query FindFavorite($userID: uuid!, $bookID: uuid!) {
  favorites(where: {user_id: {_eq: $userID}, book_id: {_eq: $bookID}}, limit: 1) {` + favoriteFields + `}
}
`

const insertFavoriteMutation = `
mutation InsertFavorite($object: favorites_insert_input!) {
  insert_favorites_one(object: $object) {
    id
  }
}
`

const deleteFavoriteMutation = `
mutation DeleteFavorite($id: uuid!) {
  delete_favorites_by_pk(id: $id) {
    id
  }
}
`

// # Repository Implementation

func (repository *graphqlRepository) ListFavorites(context context.Context, filter Filter, limit, offset int) ([]*Favorite, int, error) {
	where := map[string]any{}
	if filter.UserID != "" {
		where["user_id"] = map[string]any{"_eq": filter.UserID}
	}
	if filter.BookID != "" {
		where["book_id"] = map[string]any{"_eq": filter.BookID}
	}

	var result struct {
		Favorites          []favoriteRow `json:"favorites"`
		FavoritesAggregate struct {
			Aggregate struct {
				Count int `json:"count"`
			} `json:"aggregate"`
		} `json:"favorites_aggregate"`
	}

	variables := map[string]any{"where": where, "limit": limit, "offset": offset}
	if err := repository.client.Run(context, listFavoritesQuery, variables, &result); err != nil {
		return nil, 0, err
	}

	favorites := make([]*Favorite, 0, len(result.Favorites))
	for _, row := range result.Favorites {
		favorites = append(favorites, row.toDomain())
	}

	return favorites, result.FavoritesAggregate.Aggregate.Count, nil
}

func (repository *graphqlRepository) FindByUserAndBook(context context.Context, userID, bookID string) (*Favorite, error) {
	var result struct {
		Favorites []favoriteRow `json:"favorites"`
	}

	variables := map[string]any{"userID": userID, "bookID": bookID}
	if err := repository.client.Run(context, findFavoriteQuery, variables, &result); err != nil {
		return nil, err
	}

	if len(result.Favorites) == 0 {
		return nil, apperr.NotFound("Favorite")
	}

	return result.Favorites[0].toDomain(), nil
}

func (repository *graphqlRepository) CreateFavorite(context context.Context, favorite *Favorite) error {
	object := map[string]any{
		"id":      favorite.ID,
		"user_id": favorite.UserID,
		"book_id": favorite.BookID,
	}

	var result struct {
		Inserted *struct {
			ID string `json:"id"`
		} `json:"insert_favorites_one"`
	}

	return repository.client.Run(context, insertFavoriteMutation, map[string]any{"object": object}, &result)
}

func (repository *graphqlRepository) DeleteFavorite(context context.Context, id string) error {
	var result struct {
		Deleted *struct {
			ID string `json:"id"`
		} `json:"delete_favorites_by_pk"`
	}

	if err := repository.client.Run(context, deleteFavoriteMutation, map[string]any{"id": id}, &result); err != nil {
		return err
	}

	if result.Deleted == nil {
		return apperr.NotFound("Favorite")
	}

	return nil
}
