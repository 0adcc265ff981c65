// Package repository defines the storage interfaces the service layer
// depends on. The concrete SQLite implementation lives in the sqlite
// subpackage; tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/sakif/todo-backend/internal/model"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Upsert creates the user on first login (keyed by GitHubID) or
	// updates the name on subsequent logins. The user's ID, CreatedAt,
	// and UpdatedAt are filled in on the passed struct.
	Upsert(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// TodoRepository persists todo items.
type TodoRepository interface {
	// Create inserts a new todo, filling in ID and timestamps.
	Create(ctx context.Context, todo *model.Todo) error
	GetByID(ctx context.Context, id string) (*model.Todo, error)
	// ListByCreator returns all todos owned by creatorID, newest first
	// (id descending).
	ListByCreator(ctx context.Context, creatorID string) ([]model.Todo, error)
	// SetCompleted persists a new completion state for a todo.
	SetCompleted(ctx context.Context, id string, completed bool) error
}
