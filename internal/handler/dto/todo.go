package dto

import "github.com/taskvault/taskvault/internal/model"

// CreateTodoRequest is the input for creating a todo.
type CreateTodoRequest struct {
	Task        string `json:"task"`
	IsCompleted bool   `json:"isCompleted"`
}

// UpdateTodoRequest is the input for updating a todo's task text.
type UpdateTodoRequest struct {
	Task string `json:"task"`
}

// TodoResponse is the serialized form of a todo.
type TodoResponse struct {
	ID          int    `json:"id"`
	Task        string `json:"task"`
	AssignedTo  int    `json:"assignedTo"`
	IsCompleted bool   `json:"isCompleted"`
}

// ListTodosResponse is one page of the caller's todos.
type ListTodosResponse struct {
	Todos      []TodoResponse `json:"todos"`
	TotalPages int            `json:"totalPages"`
}

// UpdateTodoResponse reports the outcome of a task-text update.
type UpdateTodoResponse struct {
	Message      string `json:"message"`
	AffectedRows int64  `json:"affectedRows"`
}

// CompleteTodoResponse reports the outcome of marking a todo complete.
type CompleteTodoResponse struct {
	Message      string `json:"message"`
	RowsAffected int64  `json:"rowsAffected"`
}

// DeleteTodoResponse reports the outcome of a deletion.
type DeleteTodoResponse struct {
	Message      string `json:"message"`
	RowsAffected int64  `json:"rowsAffected"`
}

// ToTodoResponse converts a domain todo to its response shape.
func ToTodoResponse(todo *model.Todo) TodoResponse {
	return TodoResponse{
		ID:          todo.ID,
		Task:        todo.Task,
		AssignedTo:  todo.AssignedTo,
		IsCompleted: todo.IsCompleted,
	}
}

// ToListTodosResponse converts a page of todos to its response shape.
func ToListTodosResponse(todos []model.Todo, totalPages int) ListTodosResponse {
	out := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		out = append(out, ToTodoResponse(&todos[i]))
	}
	return ListTodosResponse{Todos: out, TotalPages: totalPages}
}
