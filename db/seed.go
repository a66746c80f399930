package db

import (
	"context"
	"fmt"
	"log/slog"

	"todo-api/store"
)

type seedTodo struct {
	Title       string
	Description string
}

var demoTodos = []seedTodo{
	{Title: "John Doe", Description: "Something"},
}

// Seed inserts the demo todos through the store so ids are generated the
// same way as for API-created records.
func Seed(ctx context.Context, todos store.TodoStore) error {
	for _, demo := range demoTodos {
		description := demo.Description
		todo, err := todos.Create(ctx, demo.Title, &description)
		if err != nil {
			return fmt.Errorf("seed %q: %w", demo.Title, err)
		}
		slog.Info("seeded todo", "id", todo.ID, "title", todo.Title)
	}
	return nil
}

// Unseed removes every todo.
func Unseed(ctx context.Context, conn store.DB) error {
	tag, err := conn.Exec(ctx, `DELETE FROM "Todos"`)
	if err != nil {
		return fmt.Errorf("delete todos: %w", err)
	}
	slog.Info("removed todos", "rows", tag.RowsAffected())
	return nil
}
