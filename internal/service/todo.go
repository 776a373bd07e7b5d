package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskvault/taskvault/internal/metrics"
	"github.com/taskvault/taskvault/internal/model"
	"github.com/taskvault/taskvault/internal/repository"
)

// Todo service errors.
var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrMissingTask  = errors.New("task text is required")
)

// Pagination defaults. Out-of-range values are clamped, not rejected.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 5
)

// TodoStore is the persistence contract the todo service depends on.
// Mutations report affected-row counts; not-found decisions live here, in
// the service, not in the store.
type TodoStore interface {
	ListTodos(ctx context.Context, assignedTo, limit, offset int) ([]model.Todo, error)
	CountTodos(ctx context.Context, assignedTo int) (int, error)
	GetTodo(ctx context.Context, assignedTo, todoID int) (*model.Todo, error)
	CreateTodo(ctx context.Context, assignedTo int, task string, isCompleted bool) (*model.Todo, error)
	UpdateTodoTask(ctx context.Context, assignedTo, todoID int, task string) (int64, error)
	CompleteTodo(ctx context.Context, assignedTo, todoID int) (int64, error)
	DeleteTodo(ctx context.Context, assignedTo, todoID int) (int64, error)
}

// TodoService handles owner-scoped todo operations. Every call takes the
// caller's derived owner id; a todo owned by someone else behaves exactly
// like a missing one.
type TodoService struct {
	todos   TodoStore
	metrics metrics.Recorder
}

// NewTodoService creates a new TodoService.
func NewTodoService(todos TodoStore, recorder metrics.Recorder) *TodoService {
	return &TodoService{todos: todos, metrics: recorder}
}

// TodoPage is one page of a caller's todos.
type TodoPage struct {
	Todos      []model.Todo
	TotalPages int
}

// List returns a page of the caller's todos. Invalid pagination inputs fall
// back to the defaults: pageNumber < 1 becomes 1, pageSize < 1 becomes 5.
func (s *TodoService) List(ctx context.Context, ownerID, pageNumber, pageSize int) (*TodoPage, error) {
	if pageNumber < 1 {
		pageNumber = DefaultPageNumber
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total, err := s.todos.CountTodos(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count todos: %w", err)
	}

	todos, err := s.todos.ListTodos(ctx, ownerID, pageSize, (pageNumber-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return &TodoPage{
		Todos:      todos,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// Get returns the caller's todo with the given id.
func (s *TodoService) Get(ctx context.Context, ownerID, todoID int) (*model.Todo, error) {
	todo, err := s.todos.GetTodo(ctx, ownerID, todoID)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return todo, nil
}

// Create inserts a new todo owned by the caller and returns it with the
// generated id.
func (s *TodoService) Create(ctx context.Context, ownerID int, task string, isCompleted bool) (*model.Todo, error) {
	if task == "" {
		return nil, ErrMissingTask
	}

	todo, err := s.todos.CreateTodo(ctx, ownerID, task, isCompleted)
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	s.metrics.IncTodoCreated()
	return todo, nil
}

// UpdateTask updates the task text of an owned todo. The returned count is
// zero when no matching owned row exists; that is an outcome, not an error.
func (s *TodoService) UpdateTask(ctx context.Context, ownerID, todoID int, task string) (int64, error) {
	if task == "" {
		return 0, ErrMissingTask
	}

	affected, err := s.todos.UpdateTodoTask(ctx, ownerID, todoID, task)
	if err != nil {
		return 0, fmt.Errorf("update todo task: %w", err)
	}
	return affected, nil
}

// Complete marks an owned todo completed. Zero rows means the todo is
// missing, foreign, or already completed.
func (s *TodoService) Complete(ctx context.Context, ownerID, todoID int) (int64, error) {
	affected, err := s.todos.CompleteTodo(ctx, ownerID, todoID)
	if err != nil {
		return 0, fmt.Errorf("complete todo: %w", err)
	}
	if affected > 0 {
		s.metrics.IncTodoCompleted()
	}
	return affected, nil
}

// Delete removes an owned todo and reports the affected-row count.
func (s *TodoService) Delete(ctx context.Context, ownerID, todoID int) (int64, error) {
	affected, err := s.todos.DeleteTodo(ctx, ownerID, todoID)
	if err != nil {
		return 0, fmt.Errorf("delete todo: %w", err)
	}
	if affected > 0 {
		s.metrics.IncTodoDeleted()
	}
	return affected, nil
}
