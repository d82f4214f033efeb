package storage

import (
	"context"
	"errors"

	"todocore/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrTodoNotFound      = errors.New("todo not found")
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)

	// Create inserts the user, assigning user.ID. It returns
	// ErrUserAlreadyExists when the email is taken.
	Create(ctx context.Context, user *models.User) error
}

type TodoStore interface {
	// Insert stores the todo and assigns todo.ID.
	Insert(ctx context.Context, todo *models.Todo) error

	Get(ctx context.Context, id string) (*models.Todo, error)

	// Update rewrites the whole record by todo.ID. It returns
	// ErrTodoNotFound if the record is gone, including a concurrent
	// delete; the single-statement write is the atomicity boundary.
	Update(ctx context.Context, todo *models.Todo) error

	// Delete returns ErrTodoNotFound for an unknown or already
	// deleted id, never a silent success.
	Delete(ctx context.Context, id string) error

	// ListByOwner returns the owner's todos in (created_at, id)
	// order. Callers rely on that order as the stable-sort tie-break.
	ListByOwner(ctx context.Context, userID string) ([]models.Todo, error)
}
