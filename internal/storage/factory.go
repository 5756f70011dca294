package storage

import "github.com/yourname/daybook/internal"

func NewFileRepositories(entriesFile, todosFile string, logger internal.Logger) (JournalRepository, TodoRepository, error) {
	storage, err := NewFileStorage(entriesFile, todosFile, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage, storage, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (JournalRepository, TodoRepository, error) {
	storage, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage, storage, nil
}
