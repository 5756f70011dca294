package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourname/daybook/internal"
	"github.com/yourname/daybook/internal/storage"
)

type TodoRequest struct {
	Title string `json:"title" validate:"required,max=256"`
	Done  bool   `json:"done"`
}

func ValidateTodoRequest(req *TodoRequest) error {
	return validate.Struct(req)
}

func CreateTodo(ctx context.Context, todoRepo storage.TodoRepository, user *internal.User, req *TodoRequest) (*internal.Todo, error) {
	now := time.Now()
	todo := &internal.Todo{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Title:     req.Title,
		Done:      req.Done,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := todoRepo.SaveTodo(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func UpdateTodo(ctx context.Context, todoRepo storage.TodoRepository, user *internal.User, id string, req *TodoRequest) (*internal.Todo, error) {
	todo, err := todoRepo.GetTodo(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	todo.Title = req.Title
	todo.Done = req.Done
	todo.UpdatedAt = time.Now()
	if err := todoRepo.UpdateTodo(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}
