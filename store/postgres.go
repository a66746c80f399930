package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"todo-api/models"
)

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const todoColumns = `id, title, description, "isDone"`

type Postgres struct {
	db DB
}

func NewPostgres(db DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) List(ctx context.Context) ([]models.Todo, error) {
	rows, err := s.db.Query(ctx, `SELECT `+todoColumns+` FROM "Todos"`)
	if err != nil {
		return nil, storageError("list todos", err)
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		var todo models.Todo
		if err := rows.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.IsDone); err != nil {
			return nil, storageError("scan todo", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list todos", err)
	}
	return todos, nil
}

func (s *Postgres) Get(ctx context.Context, id uuid.UUID) (models.Todo, error) {
	row := s.db.QueryRow(ctx, `SELECT `+todoColumns+` FROM "Todos" WHERE id=$1`, id)
	return scanTodo("get todo", row)
}

func (s *Postgres) Create(ctx context.Context, title string, description *string) (models.Todo, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return models.Todo{}, err
	}
	if err := checkDescription(description); err != nil {
		return models.Todo{}, err
	}

	todo := models.Todo{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		IsDone:      false,
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO "Todos" (id, title, description, "isDone") VALUES ($1, $2, $3, $4)`,
		todo.ID, todo.Title, todo.Description, todo.IsDone,
	)
	if err != nil {
		return models.Todo{}, storageError("create todo", err)
	}
	return todo, nil
}

// Update writes only the supplied columns in one statement. When no row
// matches, RETURNING yields nothing and the todo is reported missing.
func (s *Postgres) Update(ctx context.Context, id uuid.UUID, patch models.TodoPatch) (models.Todo, error) {
	patch, err := normalizePatch(patch)
	if err != nil {
		return models.Todo{}, err
	}
	if patch.Empty() {
		return s.Get(ctx, id)
	}

	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description.Set {
		add("description", patch.Description.Value)
	}
	if patch.IsDone != nil {
		add(`"isDone"`, *patch.IsDone)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE "Todos" SET %s WHERE id=$%d RETURNING `+todoColumns,
		strings.Join(sets, ", "), len(args))
	return scanTodo("update todo", s.db.QueryRow(ctx, query, args...))
}

// Delete is idempotent: removing a missing id is not an error.
func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM "Todos" WHERE id=$1`, id); err != nil {
		return storageError("delete todo", err)
	}
	return nil
}

func scanTodo(op string, row pgx.Row) (models.Todo, error) {
	var todo models.Todo
	err := row.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.IsDone)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Todo{}, ErrNotFound
	}
	if err != nil {
		return models.Todo{}, storageError(op, err)
	}
	return todo, nil
}
