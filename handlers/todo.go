package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"todo-api/models"
	"todo-api/store"
	"todo-api/utils"
)

const maxBodyBytes = 1 << 20

type TodoHandler struct {
	store store.TodoStore
}

func NewTodoHandler(s store.TodoStore) *TodoHandler {
	return &TodoHandler{store: s}
}

type CreateTodoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// UpdateTodoRequest lists the only keys a PATCH may change. Anything else in
// the body is ignored.
type UpdateTodoRequest struct {
	Title       models.OptionalString `json:"title" swaggertype:"string"`
	Description models.OptionalString `json:"description" swaggertype:"string"`
	IsDone      *bool                 `json:"isDone"`
}

// ListTodos godoc
// @Summary      List todos
// @Tags         todos
// @Produce      json
// @Success      200  {array}   models.Todo
// @Failure      500  {string}  string  "Internal error"
// @Router       /todos [get]
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.store.List(r.Context())
	if err != nil {
		writeStoreError(w, "list todos", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, todos)
}

// GetTodo godoc
// @Summary      Get a todo
// @Tags         todos
// @Produce      json
// @Param        id   path      string  true  "Todo ID"
// @Success      200  {object}  models.Todo
// @Failure      400  {string}  string  "Invalid todo ID"
// @Failure      404  {string}  string  "Todo not found"
// @Router       /todos/{id} [get]
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, "get todo", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, todo)
}

// CreateTodo godoc
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        todo  body      CreateTodoRequest  true  "Todo to create"
// @Success      201   {object}  models.Todo
// @Failure      400   {string}  string  "Bad request"
// @Failure      413   {string}  string  "Request body too large"
// @Failure      500   {string}  string  "Internal error"
// @Router       /todos [post]
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if !decodeBody(w, r, &req) {
		return
	}

	todo, err := h.store.Create(r.Context(), req.Title, req.Description)
	if err != nil {
		writeStoreError(w, "create todo", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, todo)
}

// UpdateTodo godoc
// @Summary      Partially update a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Todo ID"
// @Param        todo  body      UpdateTodoRequest  true  "Fields to change"
// @Success      200   {object}  models.Todo
// @Failure      400   {string}  string  "Bad request"
// @Failure      404   {string}  string  "Todo not found"
// @Failure      413   {string}  string  "Request body too large"
// @Router       /todos/{id} [patch]
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	var req UpdateTodoRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := models.TodoPatch{
		Description: req.Description,
		IsDone:      req.IsDone,
	}
	if req.Title.Set {
		if req.Title.Value == nil {
			http.Error(w, "Title cannot be null", http.StatusBadRequest)
			return
		}
		patch.Title = req.Title.Value
	}

	todo, err := h.store.Update(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, "update todo", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, todo)
}

// DeleteTodo godoc
// @Summary      Delete a todo
// @Description  Deleting an id that does not exist still succeeds.
// @Tags         todos
// @Produce      plain
// @Param        id   path      string  true  "Todo ID"
// @Success      200  {string}  string  "deleted"
// @Failure      400  {string}  string  "Invalid todo ID"
// @Router       /todos/{id} [delete]
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		writeStoreError(w, "delete todo", err)
		return
	}
	utils.WriteText(w, http.StatusOK, "deleted")
}

// decodeBody reads exactly one JSON value of at most maxBodyBytes into v and
// writes the error response itself when that fails.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(v)
	if err == nil {
		if err = dec.Decode(&struct{}{}); errors.Is(err, io.EOF) {
			return true
		}
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
		return false
	}
	http.Error(w, "Invalid JSON body", http.StatusBadRequest)
	return false
}

func todoID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid todo ID", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeStoreError(w http.ResponseWriter, op string, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrValidation):
		slog.Warn(op, "err", err)
		http.Error(w, "Invalid todo fields", http.StatusBadRequest)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Todo not found", http.StatusNotFound)
	default:
		slog.Error(op, "err", err)
		http.Error(w, "Failed to "+op, http.StatusInternalServerError)
	}
}
