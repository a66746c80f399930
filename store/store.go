// Package store persists Todo records behind the TodoStore interface.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"todo-api/models"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("todo not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError names the field that was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// TodoStore is the persistence contract the API layer depends on.
type TodoStore interface {
	List(ctx context.Context) ([]models.Todo, error)
	Get(ctx context.Context, id uuid.UUID) (models.Todo, error)
	Create(ctx context.Context, title string, description *string) (models.Todo, error)
	Update(ctx context.Context, id uuid.UUID, patch models.TodoPatch) (models.Todo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MaxFieldLength matches the varchar(255) columns of the Todos table.
const MaxFieldLength = 255

// normalizeTitle trims the title and rejects it when nothing is left.
func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &ValidationError{Field: "title", Reason: "is required"}
	}
	if err := checkLength("title", title); err != nil {
		return "", err
	}
	return title, nil
}

func checkDescription(description *string) error {
	if description == nil {
		return nil
	}
	return checkLength("description", *description)
}

func checkLength(field, value string) error {
	if utf8.RuneCountInString(value) > MaxFieldLength {
		return &ValidationError{Field: field, Reason: "is too long"}
	}
	return nil
}

// normalizePatch validates the supplied fields and returns the patch with a
// trimmed title.
func normalizePatch(patch models.TodoPatch) (models.TodoPatch, error) {
	if patch.Title != nil {
		title, err := normalizeTitle(*patch.Title)
		if err != nil {
			return patch, err
		}
		patch.Title = &title
	}
	if patch.Description.Set {
		if err := checkDescription(patch.Description.Value); err != nil {
			return patch, err
		}
	}
	return patch, nil
}

// storageError classifies a driver error. Postgres data exceptions (SQLSTATE
// class 22) come from the request's values; any other error means the
// database is unavailable.
func storageError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "22") {
		return fmt.Errorf("%s: %w: %w", op, ErrValidation, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}

var (
	_ TodoStore = (*Postgres)(nil)
	_ TodoStore = (*Memory)(nil)
)
