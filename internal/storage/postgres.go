package storage

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourname/daybook/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

// --- JournalRepository ---

func (p *PostgresStorage) SaveEntry(ctx context.Context, entry *internal.JournalEntry) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO journal_entries (id, user_id, date, text, tag, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.UserID, entry.Date, entry.Text, entry.Tag, entry.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert journal entry: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetEntry(ctx context.Context, userID, id string) (*internal.JournalEntry, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, user_id, date, text, tag, created_at FROM journal_entries WHERE id = $1 AND user_id = $2`, id, userID)
	var e internal.JournalEntry
	if err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.Text, &e.Tag, &e.CreatedAt); err != nil {
		p.logger.Errorf("journal entry not found: %v", err)
		return nil, err
	}
	return &e, nil
}

func (p *PostgresStorage) ListEntries(ctx context.Context, userID string) ([]internal.JournalEntry, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, user_id, date, text, tag, created_at FROM journal_entries WHERE user_id = $1 ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		p.logger.Errorf("failed to query journal entries: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []internal.JournalEntry
	for rows.Next() {
		var e internal.JournalEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Text, &e.Tag, &e.CreatedAt)
		if err != nil {
			p.logger.Errorf("failed to scan journal entry: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (p *PostgresStorage) UpdateEntry(ctx context.Context, entry *internal.JournalEntry) error {
	tag, err := p.pool.Exec(ctx, `UPDATE journal_entries SET date = $1, text = $2, tag = $3 WHERE id = $4 AND user_id = $5`,
		entry.Date, entry.Text, entry.Tag, entry.ID, entry.UserID)
	if err != nil {
		p.logger.Errorf("failed to update journal entry: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (p *PostgresStorage) DeleteEntry(ctx context.Context, userID, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		p.logger.Errorf("failed to delete journal entry: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (p *PostgresStorage) CountEntries(ctx context.Context, userID string) (int, error) {
	row := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries WHERE user_id = $1`, userID)
	var count int
	if err := row.Scan(&count); err != nil {
		p.logger.Errorf("failed to count journal entries: %v", err)
		return 0, err
	}
	return count, nil
}

// --- TodoRepository ---

func (p *PostgresStorage) SaveTodo(ctx context.Context, todo *internal.Todo) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO todos (id, user_id, title, done, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		todo.ID, todo.UserID, todo.Title, todo.Done, todo.CreatedAt, todo.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert todo: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetTodo(ctx context.Context, userID, id string) (*internal.Todo, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, user_id, title, done, created_at, updated_at FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	var t internal.Todo
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Done, &t.CreatedAt, &t.UpdatedAt); err != nil {
		p.logger.Errorf("todo not found: %v", err)
		return nil, err
	}
	return &t, nil
}

func (p *PostgresStorage) ListTodos(ctx context.Context, userID string) ([]internal.Todo, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, user_id, title, done, created_at, updated_at FROM todos WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		p.logger.Errorf("failed to query todos: %v", err)
		return nil, err
	}
	defer rows.Close()

	var todos []internal.Todo
	for rows.Next() {
		var t internal.Todo
		err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Done, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			p.logger.Errorf("failed to scan todo: %v", err)
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (p *PostgresStorage) UpdateTodo(ctx context.Context, todo *internal.Todo) error {
	tag, err := p.pool.Exec(ctx, `UPDATE todos SET title = $1, done = $2, updated_at = $3 WHERE id = $4 AND user_id = $5`,
		todo.Title, todo.Done, todo.UpdatedAt, todo.ID, todo.UserID)
	if err != nil {
		p.logger.Errorf("failed to update todo: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (p *PostgresStorage) DeleteTodo(ctx context.Context, userID, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		p.logger.Errorf("failed to delete todo: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// --- Compile-time assertions ---
var _ JournalRepository = (*PostgresStorage)(nil)
var _ TodoRepository = (*PostgresStorage)(nil)
