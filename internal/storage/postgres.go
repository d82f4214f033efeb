package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"todocore/internal/models"
)

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	const createTablesQuery = `
CREATE TABLE IF NOT EXISTS users (
    id            UUID PRIMARY KEY,
    email         VARCHAR(255) UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    full_name     VARCHAR(255) NOT NULL DEFAULT '',
    role          VARCHAR(16) NOT NULL DEFAULT 'user'
);

CREATE TABLE IF NOT EXISTS todos (
    id          UUID PRIMARY KEY,
    user_id     UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    title       VARCHAR(255) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status      VARCHAR(16) NOT NULL,
    duration    VARCHAR(64) NOT NULL DEFAULT '',
    due_date    TIMESTAMPTZ,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS todos_user_id_idx ON todos (user_id)
`
	_, err := pool.Exec(ctx, createTablesQuery)
	return err
}

type PostgresUserStore struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewPostgresUserStore(logger zerolog.Logger, pgPool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{Email: email}

	const selectUserByEmailQuery = `
SELECT id,
       password_hash,
       full_name,
       role
FROM users
WHERE email = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectUserByEmailQuery,
		user.Email,
	).Scan(
		&user.ID,
		&user.PasswordHash,
		&user.FullName,
		&user.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("email", user.Email).
			Msg("failed to select user by email")
		return nil, err
	}
	return user, nil
}

func (s *PostgresUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{ID: id}

	const selectUserByIDQuery = `
SELECT email,
       password_hash,
       full_name,
       role
FROM users
WHERE id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectUserByIDQuery,
		user.ID,
	).Scan(
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to select user by id")
		return nil, err
	}
	return user, nil
}

func (s *PostgresUserStore) List(ctx context.Context) ([]models.User, error) {
	const selectUsersQuery = `
SELECT id,
       email,
       password_hash,
       full_name,
       role
FROM users
ORDER BY email
`
	rows, err := s.pgPool.Query(ctx, selectUsersQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select users")
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err = rows.Scan(
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.FullName,
			&user.Role,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan user")
			return nil, err
		}
		users = append(users, user)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	return users, nil
}

func (s *PostgresUserStore) Create(ctx context.Context, user *models.User) error {
	userUUID, err := uuid.NewV7()
	if err != nil {
		return err
	}
	user.ID = userUUID.String()

	const insertUserQuery = `
INSERT INTO users (id,
                   email,
                   password_hash,
                   full_name,
                   role)
VALUES ($1, $2, $3, $4, $5)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertUserQuery,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Role,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Str("email", user.Email).
			Msg("failed to insert user")
		return err
	}

	s.logger.Debug().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("inserted user")
	return nil
}

type PostgresTodoStore struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewPostgresTodoStore(logger zerolog.Logger, pgPool *pgxpool.Pool) *PostgresTodoStore {
	return &PostgresTodoStore{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *PostgresTodoStore) Insert(ctx context.Context, todo *models.Todo) error {
	todoUUID, err := uuid.NewV7()
	if err != nil {
		return err
	}
	todo.ID = todoUUID.String()

	const insertTodoQuery = `
INSERT INTO todos (id,
                   user_id,
                   title,
                   description,
                   status,
                   duration,
                   due_date,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertTodoQuery,
		todo.ID,
		todo.UserID,
		todo.Title,
		todo.Description,
		todo.Status,
		todo.Duration,
		todo.DueDate,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert todo")
		return err
	}

	s.logger.Debug().
		Str("todo_id", todo.ID).
		Msg("inserted todo")
	return nil
}

func (s *PostgresTodoStore) Get(ctx context.Context, id string) (*models.Todo, error) {
	todo := &models.Todo{ID: id}

	const selectTodoByIDQuery = `
SELECT user_id,
       title,
       description,
       status,
       duration,
       due_date,
       created_at,
       updated_at
FROM todos
WHERE id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectTodoByIDQuery,
		todo.ID,
	).Scan(
		&todo.UserID,
		&todo.Title,
		&todo.Description,
		&todo.Status,
		&todo.Duration,
		&todo.DueDate,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTodoNotFound
		}

		s.logger.Error().
			Err(err).
			Str("todo_id", todo.ID).
			Msg("failed to select todo by id")
		return nil, err
	}
	return todo, nil
}

func (s *PostgresTodoStore) Update(ctx context.Context, todo *models.Todo) error {
	const updateTodoQuery = `
UPDATE todos
SET title = $1,
    description = $2,
    status = $3,
    duration = $4,
    due_date = $5,
    updated_at = $6
WHERE id = $7
`
	tag, err := s.pgPool.Exec(
		ctx,
		updateTodoQuery,
		todo.Title,
		todo.Description,
		todo.Status,
		todo.Duration,
		todo.DueDate,
		todo.UpdatedAt,
		todo.ID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("todo_id", todo.ID).
			Msg("failed to update todo")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTodoNotFound
	}

	s.logger.Debug().
		Str("todo_id", todo.ID).
		Msg("updated todo")
	return nil
}

func (s *PostgresTodoStore) Delete(ctx context.Context, id string) error {
	const deleteTodoQuery = `
DELETE FROM todos
WHERE id = $1
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTodoQuery,
		id,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("todo_id", id).
			Msg("failed to delete todo")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTodoNotFound
	}

	s.logger.Debug().
		Str("todo_id", id).
		Msg("deleted todo")
	return nil
}

func (s *PostgresTodoStore) ListByOwner(ctx context.Context, userID string) ([]models.Todo, error) {
	const selectTodosByUserIDQuery = `
SELECT id,
       title,
       description,
       status,
       duration,
       due_date,
       created_at,
       updated_at
FROM todos
WHERE user_id = $1
ORDER BY created_at, id
`
	rows, err := s.pgPool.Query(
		ctx,
		selectTodosByUserIDQuery,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select todos by user id")
		return nil, err
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		todo := models.Todo{UserID: userID}
		err = rows.Scan(
			&todo.ID,
			&todo.Title,
			&todo.Description,
			&todo.Status,
			&todo.Duration,
			&todo.DueDate,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan todo")
			return nil, err
		}
		todos = append(todos, todo)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	return todos, nil
}
