package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"todo-api/models"
)

// Memory keeps todos in process memory, in insertion order.
type Memory struct {
	mu    sync.RWMutex
	order []uuid.UUID
	todos map[uuid.UUID]models.Todo
}

func NewMemory() *Memory {
	return &Memory{todos: make(map[uuid.UUID]models.Todo)}
}

func (m *Memory) List(ctx context.Context) ([]models.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	todos := make([]models.Todo, 0, len(m.order))
	for _, id := range m.order {
		todos = append(todos, copyTodo(m.todos[id]))
	}
	return todos, nil
}

func (m *Memory) Get(ctx context.Context, id uuid.UUID) (models.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	todo, ok := m.todos[id]
	if !ok {
		return models.Todo{}, ErrNotFound
	}
	return copyTodo(todo), nil
}

func (m *Memory) Create(ctx context.Context, title string, description *string) (models.Todo, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return models.Todo{}, err
	}
	if err := checkDescription(description); err != nil {
		return models.Todo{}, err
	}

	todo := copyTodo(models.Todo{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	m.todos[todo.ID] = todo
	m.order = append(m.order, todo.ID)
	return copyTodo(todo), nil
}

func (m *Memory) Update(ctx context.Context, id uuid.UUID, patch models.TodoPatch) (models.Todo, error) {
	patch, err := normalizePatch(patch)
	if err != nil {
		return models.Todo{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	todo, ok := m.todos[id]
	if !ok {
		return models.Todo{}, ErrNotFound
	}
	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Description.Set {
		todo.Description = patch.Description.Value
	}
	if patch.IsDone != nil {
		todo.IsDone = *patch.IsDone
	}
	todo = copyTodo(todo)
	m.todos[id] = todo
	return copyTodo(todo), nil
}

func (m *Memory) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.todos[id]; !ok {
		return nil
	}
	delete(m.todos, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// copyTodo detaches the description pointer so callers never share memory
// with the stored record.
func copyTodo(todo models.Todo) models.Todo {
	if todo.Description != nil {
		d := *todo.Description
		todo.Description = &d
	}
	return todo
}
