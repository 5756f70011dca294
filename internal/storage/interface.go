package storage

import (
	"context"

	"github.com/yourname/daybook/internal"
)

type JournalRepository interface {
	SaveEntry(ctx context.Context, entry *internal.JournalEntry) error
	GetEntry(ctx context.Context, userID, id string) (*internal.JournalEntry, error)
	ListEntries(ctx context.Context, userID string) ([]internal.JournalEntry, error)
	UpdateEntry(ctx context.Context, entry *internal.JournalEntry) error
	DeleteEntry(ctx context.Context, userID, id string) error
	CountEntries(ctx context.Context, userID string) (int, error)
}

type TodoRepository interface {
	SaveTodo(ctx context.Context, todo *internal.Todo) error
	GetTodo(ctx context.Context, userID, id string) (*internal.Todo, error)
	ListTodos(ctx context.Context, userID string) ([]internal.Todo, error)
	UpdateTodo(ctx context.Context, todo *internal.Todo) error
	DeleteTodo(ctx context.Context, userID, id string) error
}
