package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"todocore/internal/duedate"
	"todocore/internal/models"
	"todocore/internal/query"
	"todocore/internal/storage"
)

type todoServiceImpl struct {
	logger zerolog.Logger
	todos  storage.TodoStore
}

func NewTodoService(
	logger zerolog.Logger,
	todos storage.TodoStore,
) TodoService {
	return &todoServiceImpl{
		logger: logger,
		todos:  todos,
	}
}

func (s *todoServiceImpl) Create(ctx context.Context, identity Identity, params CreateTodoParams) (*models.Todo, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}

	status := params.Status
	if status == "" {
		status = models.StatusBacklog
	}

	now := time.Now().UTC()
	todo := &models.Todo{
		UserID:      identity.UserID,
		Title:       params.Title,
		Description: params.Description,
		Status:      status,
		Duration:    params.Duration,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if params.DueDate != nil {
		due := duedate.Normalize(*params.DueDate)
		todo.DueDate = &due
	}

	err := s.todos.Insert(ctx, todo)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert todo")
		return nil, err
	}

	s.logger.Info().
		Str("todo_id", todo.ID).
		Str("user_id", todo.UserID).
		Msg("created todo")
	return todo, nil
}

func (s *todoServiceImpl) Get(ctx context.Context, identity Identity, id string) (*models.Todo, error) {
	return s.fetchAuthorized(ctx, identity, id)
}

func (s *todoServiceImpl) Update(ctx context.Context, identity Identity, id string, patch TodoPatch) (*models.Todo, error) {
	todo, err := s.fetchAuthorized(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		todo.Title = *patch.Title
	}
	if patch.Description != nil {
		todo.Description = *patch.Description
	}
	if patch.Status != nil {
		todo.Status = *patch.Status
	}
	if patch.Duration != nil {
		todo.Duration = *patch.Duration
	}
	if patch.DueDate != nil {
		due := duedate.Normalize(*patch.DueDate)
		todo.DueDate = &due
	}
	todo.UpdatedAt = time.Now().UTC()

	err = s.todos.Update(ctx, todo)
	if err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			// Deleted between fetch and write.
			return nil, ErrTodoNotFound
		}

		s.logger.Error().
			Err(err).
			Str("todo_id", todo.ID).
			Msg("failed to update todo")
		return nil, err
	}

	s.logger.Info().
		Str("todo_id", todo.ID).
		Str("user_id", todo.UserID).
		Msg("updated todo")
	return todo, nil
}

func (s *todoServiceImpl) Delete(ctx context.Context, identity Identity, id string) error {
	_, err := s.fetchAuthorized(ctx, identity, id)
	if err != nil {
		return err
	}

	err = s.todos.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			return ErrTodoNotFound
		}

		s.logger.Error().
			Err(err).
			Str("todo_id", id).
			Msg("failed to delete todo")
		return err
	}

	s.logger.Info().
		Str("todo_id", id).
		Str("user_id", identity.UserID).
		Msg("deleted todo")
	return nil
}

func (s *todoServiceImpl) Query(ctx context.Context, identity Identity, params QueryParams) (*query.Result, error) {
	owner := identity.UserID
	if params.ActingAs != "" && params.ActingAs != identity.UserID {
		if !identity.IsAdmin() {
			return nil, ErrForbidden
		}
		owner = params.ActingAs
	}

	todos, err := s.todos.ListByOwner(ctx, owner)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", owner).
			Msg("failed to list todos by owner")
		return nil, err
	}

	result := query.Run(todos, params.Params)
	s.logger.Debug().
		Str("user_id", owner).
		Int("total", result.Total).
		Int("page_len", len(result.Items)).
		Msg("ran todo query")
	return &result, nil
}

func (s *todoServiceImpl) fetchAuthorized(ctx context.Context, identity Identity, id string) (*models.Todo, error) {
	todo, err := s.todos.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}

		s.logger.Error().
			Err(err).
			Str("todo_id", id).
			Msg("failed to select todo")
		return nil, err
	}

	if todo.UserID != identity.UserID && !identity.IsAdmin() {
		s.logger.Warn().
			Str("todo_id", id).
			Str("user_id", identity.UserID).
			Msg("access to foreign todo denied")
		return nil, ErrForbidden
	}
	return todo, nil
}
