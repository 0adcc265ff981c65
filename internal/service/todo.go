package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/todo-backend/internal/apperror"
	"github.com/sakif/todo-backend/internal/model"
	"github.com/sakif/todo-backend/internal/repository"
)

// TodoService handles business logic for todo items.
//
// Validation is deliberately thin — a presence check on the text is the
// only rule. The one real invariant enforced here is ownership: a user may
// only toggle completion on todos they created.
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

// Create saves a new todo owned by creatorID. Completed always starts
// false; the text is immutable after this point.
func (s *TodoService) Create(ctx context.Context, creatorID, text string) (*model.Todo, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperror.ValidationFailed("text", "todo text is required")
	}

	todo := &model.Todo{
		Text:      text,
		CreatorID: creatorID,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}

	s.logger.Info("todo created",
		slog.String("todoID", todo.ID),
		slog.String("creatorID", creatorID),
	)

	return todo, nil
}

// ListForUser returns all todos created by userID, newest first.
func (s *TodoService) ListForUser(ctx context.Context, userID string) ([]model.Todo, error) {
	todos, err := s.repo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing todos for user %s: %w", userID, err)
	}
	return todos, nil
}

// ToggleCompleted flips the completion state of the todo with the given id,
// on behalf of userID.
//
// Returns apperror.ErrNotFound when no such todo exists (the handler turns
// this into {"todo": null}, not an error status) and apperror.ErrForbidden
// when the todo belongs to someone else.
//
// The read-then-write here is not atomic: two concurrent toggles on the
// same todo can collapse into one. Accepted for this domain.
func (s *TodoService) ToggleCompleted(ctx context.Context, userID, id string) (*model.Todo, error) {
	todo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading todo %s: %w", id, err)
	}

	if todo.CreatorID != userID {
		s.logger.Warn("toggle rejected: not the creator",
			slog.String("todoID", id),
			slog.String("userID", userID),
			slog.String("creatorID", todo.CreatorID),
		)
		return nil, apperror.Forbidden("only the creator may toggle a todo")
	}

	todo.Completed = !todo.Completed
	if err := s.repo.SetCompleted(ctx, todo.ID, todo.Completed); err != nil {
		return nil, fmt.Errorf("toggling todo %s: %w", id, err)
	}

	return todo, nil
}
