package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"testing"

	"github.com/sakif/todo-backend/internal/apperror"
	"github.com/sakif/todo-backend/internal/model"
)

// mockTodoRepo implements repository.TodoRepository in memory. The service
// doesn't know or care which implementation it gets — that's the point of
// the interface.
type mockTodoRepo struct {
	todos  map[string]*model.Todo
	nextID int
	// failWith, when set, is returned by every method — simulates a
	// database outage.
	failWith error
}

func newMockTodoRepo() *mockTodoRepo {
	return &mockTodoRepo{todos: make(map[string]*model.Todo)}
}

func (m *mockTodoRepo) Create(_ context.Context, todo *model.Todo) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	todo.ID = fmt.Sprintf("mock-%04d", m.nextID)
	stored := *todo
	m.todos[todo.ID] = &stored
	return nil
}

func (m *mockTodoRepo) GetByID(_ context.Context, id string) (*model.Todo, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	todo, ok := m.todos[id]
	if !ok {
		return nil, apperror.NotFound("todo", id)
	}
	result := *todo
	return &result, nil
}

func (m *mockTodoRepo) ListByCreator(_ context.Context, creatorID string) ([]model.Todo, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	result := []model.Todo{}
	for _, todo := range m.todos {
		if todo.CreatorID == creatorID {
			result = append(result, *todo)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *mockTodoRepo) SetCompleted(_ context.Context, id string, completed bool) error {
	if m.failWith != nil {
		return m.failWith
	}
	todo, ok := m.todos[id]
	if !ok {
		return apperror.NotFound("todo", id)
	}
	todo.Completed = completed
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestTodoCreate(t *testing.T) {
	repo := newMockTodoRepo()
	svc := NewTodoService(repo, testLogger())

	todo, err := svc.Create(context.Background(), "user-1", "buy milk")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if todo.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if todo.Text != "buy milk" {
		t.Errorf("Text = %q, want %q", todo.Text, "buy milk")
	}
	if todo.CreatorID != "user-1" {
		t.Errorf("CreatorID = %q, want %q", todo.CreatorID, "user-1")
	}
	if todo.Completed {
		t.Error("Completed = true, want false on creation")
	}
}

func TestTodoCreate_EmptyText(t *testing.T) {
	svc := NewTodoService(newMockTodoRepo(), testLogger())

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(context.Background(), "user-1", text)
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("Create(%q) error = %v, want ErrValidation", text, err)
		}
	}
}

func TestTodoCreate_RepoFailure(t *testing.T) {
	repo := newMockTodoRepo()
	repo.failWith = errors.New("database is down")
	svc := NewTodoService(repo, testLogger())

	_, err := svc.Create(context.Background(), "user-1", "text")
	if err == nil {
		t.Fatal("Create() should propagate repository errors")
	}
}

func TestTodoListForUser_OnlyOwnTodos(t *testing.T) {
	repo := newMockTodoRepo()
	svc := NewTodoService(repo, testLogger())

	svc.Create(context.Background(), "alice", "a1")
	svc.Create(context.Background(), "alice", "a2")
	svc.Create(context.Background(), "bob", "b1")

	todos, err := svc.ListForUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}

	if len(todos) != 2 {
		t.Fatalf("ListForUser() returned %d todos, want 2", len(todos))
	}
	// newest first
	if todos[0].Text != "a2" || todos[1].Text != "a1" {
		t.Errorf("ListForUser() order = [%s %s], want [a2 a1]", todos[0].Text, todos[1].Text)
	}
	for _, todo := range todos {
		if todo.CreatorID != "alice" {
			t.Errorf("todo %s belongs to %q, want alice", todo.ID, todo.CreatorID)
		}
	}
}

func TestToggleCompleted(t *testing.T) {
	repo := newMockTodoRepo()
	svc := NewTodoService(repo, testLogger())

	created, _ := svc.Create(context.Background(), "user-1", "toggle me")

	toggled, err := svc.ToggleCompleted(context.Background(), "user-1", created.ID)
	if err != nil {
		t.Fatalf("ToggleCompleted() error = %v", err)
	}
	if !toggled.Completed {
		t.Error("first toggle: Completed = false, want true")
	}

	toggled, err = svc.ToggleCompleted(context.Background(), "user-1", created.ID)
	if err != nil {
		t.Fatalf("ToggleCompleted() error = %v", err)
	}
	if toggled.Completed {
		t.Error("second toggle: Completed = true, want false (back to original)")
	}
}

func TestToggleCompleted_NotFound(t *testing.T) {
	svc := NewTodoService(newMockTodoRepo(), testLogger())

	_, err := svc.ToggleCompleted(context.Background(), "user-1", "nope")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("ToggleCompleted() error = %v, want ErrNotFound", err)
	}
}

func TestToggleCompleted_NotTheCreator(t *testing.T) {
	repo := newMockTodoRepo()
	svc := NewTodoService(repo, testLogger())

	created, _ := svc.Create(context.Background(), "alice", "alices todo")

	_, err := svc.ToggleCompleted(context.Background(), "bob", created.ID)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("ToggleCompleted() error = %v, want ErrForbidden", err)
	}

	// The todo must be untouched after a rejected toggle
	stored, _ := repo.GetByID(context.Background(), created.ID)
	if stored.Completed {
		t.Error("rejected toggle still mutated the todo")
	}
}
