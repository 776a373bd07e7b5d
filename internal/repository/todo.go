package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskvault/taskvault/internal/model"
)

// ErrTodoNotFound is returned when a single-row lookup matches nothing for
// the given (owner, id) pair.
var ErrTodoNotFound = errors.New("todo not found")

// ListTodos retrieves a page of todos assigned to the owner, ordered by id.
func (r *Repository) ListTodos(ctx context.Context, assignedTo, limit, offset int) ([]model.Todo, error) {
	query := `
		SELECT id, task, assigned_to, is_completed
		FROM sp_todos_get_all_assigned($1, $2, $3)
	`

	rows, err := r.pool.Query(ctx, query, assignedTo, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]model.Todo, 0)
	for rows.Next() {
		var todo model.Todo
		if err := rows.Scan(&todo.ID, &todo.Task, &todo.AssignedTo, &todo.IsCompleted); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read todos: %w", err)
	}

	return todos, nil
}

// CountTodos returns the total number of todos assigned to the owner.
func (r *Repository) CountTodos(ctx context.Context, assignedTo int) (int, error) {
	query := `SELECT sp_todos_count_assigned($1)`

	var count int
	if err := r.pool.QueryRow(ctx, query, assignedTo).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count todos: %w", err)
	}

	return count, nil
}

// GetTodo retrieves a single todo by (owner, id).
func (r *Repository) GetTodo(ctx context.Context, assignedTo, todoID int) (*model.Todo, error) {
	query := `
		SELECT id, task, assigned_to, is_completed
		FROM sp_todos_get_one_assigned($1, $2)
	`

	var todo model.Todo
	err := r.pool.QueryRow(ctx, query, assignedTo, todoID).Scan(
		&todo.ID,
		&todo.Task,
		&todo.AssignedTo,
		&todo.IsCompleted,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return &todo, nil
}

// CreateTodo inserts a new todo for the owner and returns the created row.
func (r *Repository) CreateTodo(ctx context.Context, assignedTo int, task string, isCompleted bool) (*model.Todo, error) {
	query := `
		SELECT id, task, assigned_to, is_completed
		FROM sp_todos_create($1, $2, $3)
	`

	var todo model.Todo
	err := r.pool.QueryRow(ctx, query, assignedTo, task, isCompleted).Scan(
		&todo.ID,
		&todo.Task,
		&todo.AssignedTo,
		&todo.IsCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return &todo, nil
}

// UpdateTodoTask updates the task text of an owned todo and returns the
// affected-row count. Zero rows means no matching owned row existed.
func (r *Repository) UpdateTodoTask(ctx context.Context, assignedTo, todoID int, task string) (int64, error) {
	query := `SELECT sp_todos_update_task($1, $2, $3)`

	var affected int64
	if err := r.pool.QueryRow(ctx, query, assignedTo, todoID, task).Scan(&affected); err != nil {
		return 0, fmt.Errorf("failed to update todo task: %w", err)
	}

	return affected, nil
}

// CompleteTodo marks an owned todo completed. Already-completed rows are not
// touched, so the affected count distinguishes them from fresh completions.
func (r *Repository) CompleteTodo(ctx context.Context, assignedTo, todoID int) (int64, error) {
	query := `SELECT sp_todos_complete($1, $2)`

	var affected int64
	if err := r.pool.QueryRow(ctx, query, assignedTo, todoID).Scan(&affected); err != nil {
		return 0, fmt.Errorf("failed to complete todo: %w", err)
	}

	return affected, nil
}

// DeleteTodo removes an owned todo and returns the affected-row count.
func (r *Repository) DeleteTodo(ctx context.Context, assignedTo, todoID int) (int64, error) {
	query := `SELECT sp_todos_delete($1, $2)`

	var affected int64
	if err := r.pool.QueryRow(ctx, query, assignedTo, todoID).Scan(&affected); err != nil {
		return 0, fmt.Errorf("failed to delete todo: %w", err)
	}

	return affected, nil
}
