package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sakif/todo-backend/internal/apperror"
	"github.com/sakif/todo-backend/internal/auth"
	"github.com/sakif/todo-backend/internal/model"
)

// mockUserRepo implements repository.UserRepository in memory with the
// same keyed-by-github-id upsert semantics as the SQLite store.
type mockUserRepo struct {
	byID     map[string]*model.User
	byGitHub map[int64]*model.User
	nextID   int
	failWith error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:     make(map[string]*model.User),
		byGitHub: make(map[int64]*model.User),
	}
}

func (m *mockUserRepo) Upsert(_ context.Context, user *model.User) error {
	if m.failWith != nil {
		return m.failWith
	}
	if existing, ok := m.byGitHub[user.GitHubID]; ok {
		existing.Name = user.Name
		user.ID = existing.ID
		return nil
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%04d", m.nextID)
	stored := *user
	m.byID[user.ID] = &stored
	m.byGitHub[user.GitHubID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	user, ok := m.byID[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *user
	return &result, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *mockUserRepo) {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	repo := newMockUserRepo()
	return NewAuthService(repo, tokens, testLogger()), repo
}

func TestLoginWithGitHub_FirstLoginCreatesUser(t *testing.T) {
	svc, repo := newTestAuthService(t)

	result, err := svc.LoginWithGitHub(context.Background(), &auth.GitHubUser{
		ID:    777,
		Login: "octocat",
		Name:  "The Octocat",
	})
	if err != nil {
		t.Fatalf("LoginWithGitHub() error = %v", err)
	}

	if result.User.ID == "" {
		t.Error("LoginWithGitHub() did not assign a user ID")
	}
	if result.User.Name != "The Octocat" {
		t.Errorf("Name = %q, want %q", result.User.Name, "The Octocat")
	}
	if result.Token == "" {
		t.Error("LoginWithGitHub() did not issue a token")
	}
	if len(repo.byID) != 1 {
		t.Errorf("user count = %d, want exactly 1", len(repo.byID))
	}
}

func TestLoginWithGitHub_SecondLoginUpdatesName(t *testing.T) {
	svc, repo := newTestAuthService(t)

	first, err := svc.LoginWithGitHub(context.Background(), &auth.GitHubUser{
		ID: 777, Login: "octocat", Name: "Old Name",
	})
	if err != nil {
		t.Fatalf("first LoginWithGitHub() error = %v", err)
	}

	second, err := svc.LoginWithGitHub(context.Background(), &auth.GitHubUser{
		ID: 777, Login: "octocat", Name: "New Name",
	})
	if err != nil {
		t.Fatalf("second LoginWithGitHub() error = %v", err)
	}

	if second.User.ID != first.User.ID {
		t.Errorf("second login created a new user: %q, want %q", second.User.ID, first.User.ID)
	}
	if len(repo.byID) != 1 {
		t.Errorf("user count = %d, want 1 (no duplicate for same github id)", len(repo.byID))
	}
	if repo.byGitHub[777].Name != "New Name" {
		t.Errorf("stored name = %q, want %q", repo.byGitHub[777].Name, "New Name")
	}
}

func TestLoginWithGitHub_FallsBackToLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)

	// GitHub profiles without a display name fall back to the login
	result, err := svc.LoginWithGitHub(context.Background(), &auth.GitHubUser{
		ID: 888, Login: "nameless",
	})
	if err != nil {
		t.Fatalf("LoginWithGitHub() error = %v", err)
	}
	if result.User.Name != "nameless" {
		t.Errorf("Name = %q, want login fallback %q", result.User.Name, "nameless")
	}
}

func TestLoginWithGitHub_UpsertFailure(t *testing.T) {
	svc, repo := newTestAuthService(t)
	repo.failWith = errors.New("database is down")

	_, err := svc.LoginWithGitHub(context.Background(), &auth.GitHubUser{ID: 1, Login: "x"})
	if err == nil {
		t.Fatal("LoginWithGitHub() should propagate repository errors")
	}
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newTestAuthService(t)

	result, err := svc.LoginWithGitHub(context.Background(), &auth.GitHubUser{
		ID: 999, Login: "me",
	})
	if err != nil {
		t.Fatalf("LoginWithGitHub() error = %v", err)
	}

	user, err := svc.CurrentUser(context.Background(), result.User.ID)
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if user.GitHubID != 999 {
		t.Errorf("GitHubID = %d, want 999", user.GitHubID)
	}
}

func TestCurrentUser_UnknownID(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.CurrentUser(context.Background(), "ghost")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("CurrentUser() error = %v, want ErrNotFound", err)
	}
}
