package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/sakif/todo-backend/internal/apperror"
	"github.com/sakif/todo-backend/internal/auth"
	"github.com/sakif/todo-backend/internal/model"
	"github.com/sakif/todo-backend/internal/service"
)

// AuthHandler manages the GitHub OAuth login flow and the /me endpoint.
//
//   - HandleGitHubLogin    → redirect the browser to GitHub's consent page
//   - HandleGitHubCallback → exchange the code, log the user in, redirect
//     back to the client with the token in the URL
//   - HandleMe             → return the current user, or {"user": null}
//
// The GitHub exchange sits behind the auth.GitHubVerifier interface so the
// callback flow is testable without a live provider.
type AuthHandler struct {
	github           auth.GitHubVerifier
	authService      *service.AuthService
	tokenRedirectURL string
	logger           *slog.Logger
}

// NewAuthHandler creates an AuthHandler. tokenRedirectURL is the client
// URL the callback appends the issued token to.
func NewAuthHandler(
	github auth.GitHubVerifier,
	authService *service.AuthService,
	tokenRedirectURL string,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		github:           github,
		authService:      authService,
		tokenRedirectURL: tokenRedirectURL,
		logger:           logger,
	}
}

// HandleGitHubLogin redirects the user to GitHub's authorization page.
//
// HTTP: GET /auth/github
//
// A random state value goes into a short-lived HttpOnly cookie; the
// callback verifies GitHub echoed the same value back, which stops a
// forged callback from completing someone else's login.
func (h *AuthHandler) HandleGitHubLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.github.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGitHubCallback completes the OAuth login flow.
//
// HTTP: GET /auth/github/callback?code=xxx&state=yyy
//
// Flow:
//  1. Verify the state parameter against the cookie
//  2. Exchange the code for the GitHub profile
//  3. Create-or-update the local user, issue a JWT
//  4. Redirect to <tokenRedirectURL><token>
//
// Exchange, upsert, and signing failures are logged and answered with an
// explicit error status instead of leaking through as an unhandled 500.
func (h *AuthHandler) HandleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" {
		h.logger.Warn("auth callback: missing state cookie")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("auth callback: state mismatch")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	// The state cookie is single-use
	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing OAuth code", http.StatusBadRequest)
		return
	}

	ghUser, err := h.github.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("auth callback: GitHub exchange failed", slog.String("error", err.Error()))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	result, err := h.authService.LoginWithGitHub(r.Context(), ghUser)
	if err != nil {
		h.logger.Error("auth callback: login failed",
			slog.Int64("githubID", ghUser.ID),
			slog.String("error", err.Error()),
		)
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	// The token rides back to the client as a path segment; the editor
	// extension's local listener picks it up from the URL.
	http.Redirect(w, r, h.tokenRedirectURL+result.Token, http.StatusSeeOther)
}

type userResponse struct {
	User *model.User `json:"user"`
}

// HandleMe returns the currently authenticated user's profile.
//
// HTTP: GET /me
// Auth: optional — a missing, malformed, or invalid token yields
// {"user": null} with a 200, never an error. The same applies when the
// token's user id no longer resolves to a stored user.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, userResponse{User: nil})
		return
	}

	user, err := h.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			writeJSON(w, http.StatusOK, userResponse{User: nil})
			return
		}
		h.logger.Error("me: resolving user failed",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user})
}
