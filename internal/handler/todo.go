package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/todo-backend/internal/apperror"
	"github.com/sakif/todo-backend/internal/auth"
	"github.com/sakif/todo-backend/internal/model"
	"github.com/sakif/todo-backend/internal/service"
)

// TodoHandler serves the three /todo endpoints. All of them sit behind
// RequireAuth, so the userID is always in the request context here.
//
// Successful responses wrap the resource in a single named field, matching
// what the frontend expects:
//
//	GET  /todo → {"todos": [...]}
//	POST /todo → {"todo": {...}}
//	PUT  /todo → {"todo": {...}} or {"todo": null}
type TodoHandler struct {
	todos  *service.TodoService
	logger *slog.Logger
}

// NewTodoHandler creates a TodoHandler.
func NewTodoHandler(todos *service.TodoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todos: todos, logger: logger}
}

type todosResponse struct {
	Todos []model.Todo `json:"todos"`
}

type todoResponse struct {
	Todo *model.Todo `json:"todo"`
}

// HandleList returns the authenticated user's todos, newest first.
//
// HTTP: GET /todo
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// RequireAuth guarantees a userID on this route; reaching here
		// means the route was wired without it.
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	todos, err := h.todos.ListForUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("listing todos failed",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todosResponse{Todos: todos})
}

// HandleCreate creates a todo owned by the authenticated user.
//
// HTTP: POST /todo
// Body: {"text": "buy milk"}
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	todo, err := h.todos.Create(r.Context(), userID, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todoResponse{Todo: todo})
}

// HandleToggle toggles the completion state of a todo.
//
// HTTP: PUT /todo
// Body: {"id": "..."}
//
// A nonexistent id is not an error: the response is a 200 with
// {"todo": null}. A todo owned by someone else is a 403.
func (h *TodoHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	todo, err := h.todos.ToggleCompleted(r.Context(), userID, req.ID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			writeJSON(w, http.StatusOK, todoResponse{Todo: nil})
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todoResponse{Todo: todo})
}
