package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"todocore/internal/models"
)

// MemoryUserStore is an in-memory UserStore used by tests.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users []models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{}
}

func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryUserStore) List(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, len(s.users))
	copy(users, s.users)
	return users, nil
}

func (s *MemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrUserAlreadyExists
		}
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		return err
	}
	user.ID = userUUID.String()

	s.users = append(s.users, *user)
	return nil
}

// MemoryTodoStore is an in-memory TodoStore used by tests. Insertion
// order doubles as the (created_at, id) iteration order because ids
// are time-ordered UUIDv7s assigned at insert.
type MemoryTodoStore struct {
	mu    sync.RWMutex
	todos []models.Todo
}

func NewMemoryTodoStore() *MemoryTodoStore {
	return &MemoryTodoStore{}
}

func (s *MemoryTodoStore) Insert(_ context.Context, todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	todoUUID, err := uuid.NewV7()
	if err != nil {
		return err
	}
	todo.ID = todoUUID.String()

	s.todos = append(s.todos, *todo)
	return nil
}

func (s *MemoryTodoStore) Get(_ context.Context, id string) (*models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.todos {
		if t.ID == id {
			todo := t
			return &todo, nil
		}
	}
	return nil, ErrTodoNotFound
}

func (s *MemoryTodoStore) Update(_ context.Context, todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.todos {
		if t.ID == todo.ID {
			s.todos[i] = *todo
			return nil
		}
	}
	return ErrTodoNotFound
}

func (s *MemoryTodoStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.todos {
		if t.ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return nil
		}
	}
	return ErrTodoNotFound
}

func (s *MemoryTodoStore) ListByOwner(_ context.Context, userID string) ([]models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var todos []models.Todo
	for _, t := range s.todos {
		if t.UserID == userID {
			todos = append(todos, t)
		}
	}
	return todos, nil
}
