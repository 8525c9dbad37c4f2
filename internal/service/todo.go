package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/todo-api/internal/apperror"
	"github.com/sakif/todo-api/internal/model"
	"github.com/sakif/todo-api/internal/repository"
)

// TodoService handles business logic for to-do items.
//
// Every method takes the acting user's ID (extracted from the bearer token
// by the auth middleware) as an explicit parameter — no ambient per-request
// identity, no hidden globals. The repository scopes every query by it.
type TodoService struct {
	repo   repository.TodoRepository
	logger *slog.Logger
}

// NewTodoService creates a TodoService.
func NewTodoService(repo repository.TodoRepository, logger *slog.Logger) *TodoService {
	return &TodoService{
		repo:   repo,
		logger: logger,
	}
}

// List returns all items owned by userID. No pagination.
func (s *TodoService) List(ctx context.Context, userID int64) ([]model.Todo, error) {
	todos, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	return todos, nil
}

// Get returns a single item owned by userID, or not-found.
// An item owned by someone else IS not-found from this user's perspective.
func (s *TodoService) Get(ctx context.Context, id, userID int64) (*model.Todo, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// Create validates and stores a new item owned by userID.
func (s *TodoService) Create(ctx context.Context, userID int64, req model.TodoRequest) (*model.Todo, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, apperror.ValidationFailed(errs)
	}

	todo := &model.Todo{
		Title:  req.Title,
		IsDone: req.IsDone,
		UserID: userID,
	}

	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}

	s.logger.Info("todo created",
		slog.Int64("id", todo.ID),
		slog.Int64("userID", userID),
	)

	return todo, nil
}

// Update replaces the title and done flag of an item owned by userID.
// Only those two fields change — the owner can never be reassigned.
func (s *TodoService) Update(ctx context.Context, id, userID int64, req model.TodoRequest) error {
	if errs := req.Validate(); len(errs) > 0 {
		return apperror.ValidationFailed(errs)
	}

	todo := &model.Todo{
		ID:     id,
		Title:  req.Title,
		IsDone: req.IsDone,
		UserID: userID,
	}

	if err := s.repo.Update(ctx, todo); err != nil {
		// not-found passes through untouched; it's a normal outcome
		return err
	}

	s.logger.Info("todo updated",
		slog.Int64("id", id),
		slog.Int64("userID", userID),
	)

	return nil
}

// Delete removes an item owned by userID.
func (s *TodoService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("todo deleted",
		slog.Int64("id", id),
		slog.Int64("userID", userID),
	)

	return nil
}
