package db

import (
	"context"
	"fmt"

	"todo-api/store"
)

const createTodos = `
CREATE TABLE IF NOT EXISTS "Todos" (
	id          uuid PRIMARY KEY,
	title       varchar(255) NOT NULL,
	description varchar(255),
	"isDone"    boolean NOT NULL DEFAULT false
)`

// schemaTimeout bounds the schema sync so an unreachable host cannot hold
// up server start.
var schemaTimeout = pingTimeout

// Migrate creates the Todos table when it does not exist yet.
func Migrate(ctx context.Context, conn store.DB) error {
	ctx, cancel := context.WithTimeout(ctx, schemaTimeout)
	defer cancel()

	if _, err := conn.Exec(ctx, createTodos); err != nil {
		return fmt.Errorf("create Todos table: %w", err)
	}
	return nil
}
