/*
Package user provides the remote-GraphQL implementation of the account
directory.

Accounts live in the hosted service's users table; this repository issues
GraphQL documents through the shared [hasura.Client] and maps the remote
camelCase rows onto domain entities. Where-expressions are passed as
document variables so the documents themselves stay static.
*/
package user

import (
	"context"
	"time"

	"github.com/taibuivan/maktaba/internal/platform/apperr"
	"github.com/taibuivan/maktaba/internal/platform/hasura"
	"github.com/taibuivan/maktaba/internal/platform/sec"
)

// # GraphQL Repositories

// graphqlRepository implements the [Repository] interface against Hasura.
type graphqlRepository struct {
	client *hasura.Client
}

// NewRepository constructs a Hasura-backed user store.
func NewRepository(client *hasura.Client) Repository {
	return &graphqlRepository{client: client}
}

// userRow mirrors the remote users table shape.
type userRow struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"displayName"`
	DefaultRole   string    `json:"defaultRole"`
	Disabled      bool      `json:"disabled"`
	EmailVerified bool      `json:"emailVerified"`
	PasswordHash  string    `json:"passwordHash"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// toDomain maps a remote row onto the domain entity.
func (row userRow) toDomain() *User {
	return &User{
		ID:            row.ID,
		Email:         row.Email,
		DisplayName:   row.DisplayName,
		Role:          sec.ParseRole(row.DefaultRole),
		Disabled:      row.Disabled,
		EmailVerified: row.EmailVerified,
		PasswordHash:  row.PasswordHash,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

// # Documents

const listUsersQuery = `
query ListUsers($where: users_bool_exp!, $limit: Int!, $offset: Int!) {
  users(where: $where, order_by: {createdAt: desc}, limit: $limit, offset: $offset) {
    id
    email
    displayName
    defaultRole
    disabled
    emailVerified
    createdAt
    updatedAt
  }
  users_aggregate(where: $where) {
    aggregate {
      count
    }
  }
}
`

const getUserQuery = `
query GetUser($id: uuid!) {
  users_by_pk(id: $id) {
    id
    email
    displayName
    defaultRole
    disabled
    emailVerified
    createdAt
    updatedAt
  }
}
`

const findUserByEmailQuery = `
query FindUserByEmail($email: citext!) {
  users(where: {email: {_eq: $email}}, limit: 1) {
    id
    email
    displayName
    defaultRole
    disabled
    emailVerified
    passwordHash
    createdAt
    updatedAt
  }
}
`

const insertUserMutation = `
mutation InsertUser($object: users_insert_input!) {
  insert_users_one(object: $object) {
    id
  }
}
`

const updateUserMutation = `
mutation UpdateUser($id: uuid!, $set: users_set_input!) {
  update_users_by_pk(pk_columns: {id: $id}, _set: $set) {
    id
  }
}
`

const deleteUserMutation = `
mutation DeleteUser($id: uuid!) {
  delete_users_by_pk(id: $id) {
    id
  }
}
`

// # Repository Implementation

func (repository *graphqlRepository) ListUsers(context context.Context, filter Filter, limit, offset int) ([]*User, int, error) {

	// Where-expression built as a document variable
	where := map[string]any{}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		where["_or"] = []map[string]any{
			{"email": map[string]any{"_ilike": pattern}},
			{"displayName": map[string]any{"_ilike": pattern}},
		}
	}

	var result struct {
		Users          []userRow `json:"users"`
		UsersAggregate struct {
			Aggregate struct {
				Count int `json:"count"`
			} `json:"aggregate"`
		} `json:"users_aggregate"`
	}

	variables := map[string]any{"where": where, "limit": limit, "offset": offset}
	if err := repository.client.Run(context, listUsersQuery, variables, &result); err != nil {
		return nil, 0, err
	}

	users := make([]*User, 0, len(result.Users))
	for _, row := range result.Users {
		users = append(users, row.toDomain())
	}

	return users, result.UsersAggregate.Aggregate.Count, nil
}

func (repository *graphqlRepository) GetUser(context context.Context, id string) (*User, error) {
	var result struct {
		User *userRow `json:"users_by_pk"`
	}

	if err := repository.client.Run(context, getUserQuery, map[string]any{"id": id}, &result); err != nil {
		return nil, err
	}

	if result.User == nil {
		return nil, apperr.NotFound("User")
	}

	return result.User.toDomain(), nil
}

func (repository *graphqlRepository) FindByEmail(context context.Context, email string) (*User, error) {
	var result struct {
		Users []userRow `json:"users"`
	}

	if err := repository.client.Run(context, findUserByEmailQuery, map[string]any{"email": email}, &result); err != nil {
		return nil, err
	}

	if len(result.Users) == 0 {
		return nil, apperr.NotFound("User")
	}

	return result.Users[0].toDomain(), nil
}

func (repository *graphqlRepository) CreateUser(context context.Context, user *User) error {
	object := map[string]any{
		"id":            user.ID,
		"email":         user.Email,
		"displayName":   user.DisplayName,
		"defaultRole":   string(user.Role),
		"disabled":      user.Disabled,
		"emailVerified": user.EmailVerified,
		"passwordHash":  user.PasswordHash,
	}

	var result struct {
		Inserted *struct {
			ID string `json:"id"`
		} `json:"insert_users_one"`
	}

	return repository.client.Run(context, insertUserMutation, map[string]any{"object": object}, &result)
}

func (repository *graphqlRepository) UpdateUser(context context.Context, user *User) error {
	set := map[string]any{
		"email":         user.Email,
		"displayName":   user.DisplayName,
		"defaultRole":   string(user.Role),
		"disabled":      user.Disabled,
		"emailVerified": user.EmailVerified,
	}

	var result struct {
		Updated *struct {
			ID string `json:"id"`
		} `json:"update_users_by_pk"`
	}

	if err := repository.client.Run(context, updateUserMutation, map[string]any{"id": user.ID, "set": set}, &result); err != nil {
		return err
	}

	if result.Updated == nil {
		return apperr.NotFound("User")
	}

	return nil
}

func (repository *graphqlRepository) UpdatePassword(context context.Context, id, newHash string) error {
	set := map[string]any{"passwordHash": newHash}

	var result struct {
		Updated *struct {
			ID string `json:"id"`
		} `json:"update_users_by_pk"`
	}

	if err := repository.client.Run(context, updateUserMutation, map[string]any{"id": id, "set": set}, &result); err != nil {
		return err
	}

	if result.Updated == nil {
		return apperr.NotFound("User")
	}

	return nil
}

func (repository *graphqlRepository) DeleteUser(context context.Context, id string) error {
	var result struct {
		Deleted *struct {
			ID string `json:"id"`
		} `json:"delete_users_by_pk"`
	}

	if err := repository.client.Run(context, deleteUserMutation, map[string]any{"id": id}, &result); err != nil {
		return err
	}

	if result.Deleted == nil {
		return apperr.NotFound("User")
	}

	return nil
}
