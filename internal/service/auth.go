// Package service contains the business logic layer.
//
// The layering mirrors the rest of the app:
//
//	Handler (HTTP) → Service (business rules) → Repository (DB)
//	               ↘ TokenService (JWT)
//
// Services accept primitives and models, not HTTP types, and return
// apperror values instead of status codes. Handlers translate both ways.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/todo-backend/internal/auth"
	"github.com/sakif/todo-backend/internal/model"
	"github.com/sakif/todo-backend/internal/repository"
)

// AuthService orchestrates the GitHub login flow: resolve the GitHub
// profile to a local user (create on first login, update the name on
// subsequent logins) and issue a JWT for that user.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// AuthResult bundles the resolved user and the issued token so the handler
// can redirect in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// LoginWithGitHub handles a completed OAuth exchange.
//
// GitHub guarantees the numeric account ID is stable and unique, so the
// upsert keys on it: first login inserts, later logins refresh the stored
// display name. The issued token embeds our internal user ID, never the
// GitHub one.
func (s *AuthService) LoginWithGitHub(ctx context.Context, ghUser *auth.GitHubUser) (*AuthResult, error) {
	user := &model.User{
		GitHubID: ghUser.ID,
		Name:     ghUser.DisplayName(),
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("logging in github user %d: %w", ghUser.ID, err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issuing token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user authenticated",
		slog.String("userID", user.ID),
		slog.Int64("githubID", user.GitHubID),
	)

	return &AuthResult{User: user, Token: token}, nil
}

// CurrentUser resolves a user ID (from a validated token) to the stored
// user record. Propagates apperror.ErrNotFound when the ID doesn't resolve,
// which GET /me treats as an anonymous caller.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolving current user %s: %w", userID, err)
	}
	return user, nil
}
