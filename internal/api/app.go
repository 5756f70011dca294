package api

import (
	"github.com/yourname/daybook/internal"
	"github.com/yourname/daybook/internal/storage"
)

type App interface {
	Logger() internal.Logger
	JournalRepo() storage.JournalRepository
	TodoRepo() storage.TodoRepository
}
