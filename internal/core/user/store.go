package user

import "context"

type Repository interface {
	ListUsers(context context.Context, f Filter, limit, offset int) ([]*User, int, error)
	GetUser(context context.Context, id string) (*User, error)

	// FindByEmail hydrates PasswordHash; it exists for the login path only.
	FindByEmail(context context.Context, email string) (*User, error)

	CreateUser(context context.Context, u *User) error
	UpdateUser(context context.Context, u *User) error
	UpdatePassword(context context.Context, id, newHash string) error
	DeleteUser(context context.Context, id string) error
}
