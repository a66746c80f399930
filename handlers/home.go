package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"todo-api/models"
	"todo-api/store"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type homePage struct {
	Message string
	Todos   []models.Todo
}

// Home renders the todo list as a server-side page.
func Home(s store.TodoStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		todos, err := s.List(r.Context())
		if err != nil {
			slog.Error("render home", "err", err)
			http.Error(w, "Failed to load todos", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page := homePage{Message: "Yep, I am from server", Todos: todos}
		if err := indexTemplate.Execute(w, page); err != nil {
			slog.Error("render home", "err", err)
		}
	}
}
