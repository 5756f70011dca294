package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/yourname/daybook/internal"
)

type FileStorage struct {
	entries         map[string]*internal.JournalEntry // id -> entry
	userEntryIndex  map[string][]*internal.JournalEntry
	todos           map[string]*internal.Todo // id -> todo
	userTodoIndex   map[string][]*internal.Todo
	mu              sync.RWMutex
	entriesFile     string
	todosFile       string
	saveEntriesChan chan struct{}
	saveTodosChan   chan struct{}
	shutdownChan    chan struct{}
	saveDelay       time.Duration
	logger          internal.Logger
}

func NewFileStorage(entriesFile, todosFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		entries:         make(map[string]*internal.JournalEntry),
		userEntryIndex:  make(map[string][]*internal.JournalEntry),
		todos:           make(map[string]*internal.Todo),
		userTodoIndex:   make(map[string][]*internal.Todo),
		entriesFile:     entriesFile,
		todosFile:       todosFile,
		saveEntriesChan: make(chan struct{}, 1),
		saveTodosChan:   make(chan struct{}, 1),
		shutdownChan:    make(chan struct{}),
		saveDelay:       500 * time.Millisecond,
		logger:          logger,
	}

	if err := s.loadEntries(); err != nil {
		logger.Errorf("storage: failed to load journal entries: %v", err)
		return nil, err
	}
	if err := s.loadTodos(); err != nil {
		logger.Errorf("storage: failed to load todos: %v", err)
		return nil, err
	}

	go s.saveWorker(s.saveEntriesChan, s.saveEntries, "journal entries")
	go s.saveWorker(s.saveTodosChan, s.saveTodos, "todos")

	return s, nil
}

// entryLess orders a user's entries most recent first. Date strings sort
// lexicographically in chronological order; CreatedAt breaks same-day ties.
func entryLess(a, b *internal.JournalEntry) bool {
	if a.Date != b.Date {
		return a.Date > b.Date
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (s *FileStorage) loadEntries() error {
	file, err := os.Open(s.entriesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var entries []*internal.JournalEntry
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.entries[e.ID] = e
		s.userEntryIndex[e.UserID] = append(s.userEntryIndex[e.UserID], e)
	}
	for userID := range s.userEntryIndex {
		idx := s.userEntryIndex[userID]
		sort.Slice(idx, func(i, j int) bool { return entryLess(idx[i], idx[j]) })
	}
	return nil
}

func (s *FileStorage) loadTodos() error {
	file, err := os.Open(s.todosFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var todos []*internal.Todo
	if err := json.NewDecoder(file).Decode(&todos); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range todos {
		s.todos[t.ID] = t
		s.userTodoIndex[t.UserID] = append(s.userTodoIndex[t.UserID], t)
	}
	for userID := range s.userTodoIndex {
		idx := s.userTodoIndex[userID]
		sort.Slice(idx, func(i, j int) bool { return idx[i].CreatedAt.After(idx[j].CreatedAt) })
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveEntries() error {
	s.mu.RLock()
	entries := make([]*internal.JournalEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.entriesFile, entries)
}

func (s *FileStorage) saveTodos() error {
	s.mu.RLock()
	todos := make([]*internal.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		todos = append(todos, t)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.todosFile, todos)
}

// saveWorker batches save signals to avoid a disk write per mutation.
func (s *FileStorage) saveWorker(signal chan struct{}, save func() error, what string) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-signal:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", what, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	// Flush pending data synchronously on shutdown
	if err := s.saveEntries(); err != nil {
		return err
	}
	if err := s.saveTodos(); err != nil {
		return err
	}
	return nil
}

func signalSave(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// --- JournalRepository ---

func (s *FileStorage) SaveEntry(ctx context.Context, entry *internal.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.ID] = entry
	idx := s.userEntryIndex[entry.UserID]
	inserted := false
	for i, existing := range idx {
		if entryLess(entry, existing) {
			idx = append(idx[:i], append([]*internal.JournalEntry{entry}, idx[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		idx = append(idx, entry)
	}
	s.userEntryIndex[entry.UserID] = idx
	signalSave(s.saveEntriesChan)
	return nil
}

func (s *FileStorage) GetEntry(ctx context.Context, userID, id string) (*internal.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok || e.UserID != userID {
		return nil, errors.New("storage: entry not found")
	}
	copied := *e
	return &copied, nil
}

func (s *FileStorage) ListEntries(ctx context.Context, userID string) ([]internal.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.userEntryIndex[userID]
	if !ok {
		return []internal.JournalEntry{}, nil
	}
	entries := make([]internal.JournalEntry, len(idx))
	for i, e := range idx {
		entries[i] = *e
	}
	return entries, nil
}

func (s *FileStorage) UpdateEntry(ctx context.Context, entry *internal.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.entries[entry.ID]
	if !ok || existing.UserID != entry.UserID {
		return errors.New("storage: entry not found")
	}
	*existing = *entry
	idx := s.userEntryIndex[entry.UserID]
	sort.Slice(idx, func(i, j int) bool { return entryLess(idx[i], idx[j]) })
	signalSave(s.saveEntriesChan)
	return nil
}

func (s *FileStorage) DeleteEntry(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || e.UserID != userID {
		return errors.New("storage: entry not found")
	}
	delete(s.entries, id)
	idx := s.userEntryIndex[userID]
	for i, existing := range idx {
		if existing.ID == id {
			s.userEntryIndex[userID] = append(idx[:i], idx[i+1:]...)
			break
		}
	}
	signalSave(s.saveEntriesChan)
	return nil
}

func (s *FileStorage) CountEntries(ctx context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.userEntryIndex[userID]), nil
}

// --- TodoRepository ---

func (s *FileStorage) SaveTodo(ctx context.Context, todo *internal.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos[todo.ID] = todo
	s.userTodoIndex[todo.UserID] = append([]*internal.Todo{todo}, s.userTodoIndex[todo.UserID]...)
	signalSave(s.saveTodosChan)
	return nil
}

func (s *FileStorage) GetTodo(ctx context.Context, userID, id string) (*internal.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return nil, errors.New("storage: todo not found")
	}
	copied := *t
	return &copied, nil
}

func (s *FileStorage) ListTodos(ctx context.Context, userID string) ([]internal.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.userTodoIndex[userID]
	if !ok {
		return []internal.Todo{}, nil
	}
	todos := make([]internal.Todo, len(idx))
	for i, t := range idx {
		todos[i] = *t
	}
	return todos, nil
}

func (s *FileStorage) UpdateTodo(ctx context.Context, todo *internal.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.todos[todo.ID]
	if !ok || existing.UserID != todo.UserID {
		return errors.New("storage: todo not found")
	}
	*existing = *todo
	signalSave(s.saveTodosChan)
	return nil
}

func (s *FileStorage) DeleteTodo(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return errors.New("storage: todo not found")
	}
	delete(s.todos, id)
	idx := s.userTodoIndex[userID]
	for i, existing := range idx {
		if existing.ID == id {
			s.userTodoIndex[userID] = append(idx[:i], idx[i+1:]...)
			break
		}
	}
	signalSave(s.saveTodosChan)
	return nil
}

// --- Compile-time assertions ---
var _ JournalRepository = (*FileStorage)(nil)
var _ TodoRepository = (*FileStorage)(nil)
