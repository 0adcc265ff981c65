package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/todo-backend/internal/apperror"
	"github.com/sakif/todo-backend/internal/model"
	"github.com/sakif/todo-backend/internal/repository"
)

// compile-time check that *TodoDB implements repository.TodoRepository
var _ repository.TodoRepository = (*TodoDB)(nil)

// TodoDB implements repository.TodoRepository on the shared pool.
type TodoDB struct {
	conn *sql.DB
}

// Create inserts a new todo. The generated xid and timestamps are written
// back onto the passed struct, so the caller can return the full record.
func (db *TodoDB) Create(ctx context.Context, todo *model.Todo) error {
	todo.ID = xid.New().String()

	now := time.Now()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO todos (id, text, completed, creator_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		todo.ID,
		todo.Text,
		todo.Completed,
		todo.CreatorID,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating todo: %w", err)
	}

	return nil
}

// GetByID retrieves a single todo by its ID.
// Returns apperror.ErrNotFound if no todo exists with that ID.
func (db *TodoDB) GetByID(ctx context.Context, id string) (*model.Todo, error) {
	var todo model.Todo

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, text, completed, creator_id, created_at, updated_at
		 FROM todos
		 WHERE id = ?`,
		id,
	).Scan(
		&todo.ID,
		&todo.Text,
		&todo.Completed,
		&todo.CreatorID,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("todo", id)
		}
		return nil, fmt.Errorf("sqlite: getting todo %s: %w", id, err)
	}

	return &todo, nil
}

// ListByCreator returns every todo owned by creatorID, id descending.
// xids are time-ordered, so this is newest first.
func (db *TodoDB) ListByCreator(ctx context.Context, creatorID string) ([]model.Todo, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, text, completed, creator_id, created_at, updated_at
		 FROM todos
		 WHERE creator_id = ?
		 ORDER BY id DESC`,
		creatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing todos for %s: %w", creatorID, err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		var todo model.Todo
		if err := rows.Scan(
			&todo.ID,
			&todo.Text,
			&todo.Completed,
			&todo.CreatorID,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning todo row: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating todo rows: %w", err)
	}

	return todos, nil
}

// SetCompleted persists a new completion state for a todo.
// Returns apperror.ErrNotFound if no todo exists with that ID.
func (db *TodoDB) SetCompleted(ctx context.Context, id string, completed bool) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE todos SET completed = ?, updated_at = ? WHERE id = ?`,
		completed,
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating todo %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking todo update %s: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("todo", id)
	}

	return nil
}
