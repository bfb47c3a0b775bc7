// Package itemstore owns the ordered task list and keeps one persistent
// slot in lockstep with it. Every successful mutation writes the full list
// (or deletes the slot for ClearAll) before returning; a failed write
// leaves the in-memory list untouched.
package itemstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"go.uber.org/zap"
)

const (
	DefaultKey    = "todo-local-cache"
	maxIDAttempts = 10_000
)

type Store struct {
	mu     sync.Mutex
	slots  storage.SlotStore
	key    string
	ids    IDGenerator
	logger *zap.Logger
	items  []model.Item
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		if k := strings.TrimSpace(key); k != "" {
			s.key = k
		}
	}
}

func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(slots storage.SlotStore, opts ...Option) *Store {
	s := &Store{
		slots:  slots,
		key:    DefaultKey,
		ids:    NumericIDs{},
		logger: zap.NewNop(),
		items:  []model.Item{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("slot", s.key))
	return s
}

func (s *Store) Key() string { return s.key }

// Items returns a copy of the current list.
func (s *Store) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.items)
}

func (s *Store) Find(id string) (model.Item, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexOf(s.items, id)
	if idx < 0 {
		return model.Item{}, -1, false
	}
	return s.items[idx], idx, true
}

// Load replaces the in-memory list with the slot's contents. A missing or
// unreadable blob yields an empty list; only storage failures are errors.
func (s *Store) Load(ctx context.Context) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.slots.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.items = []model.Item{}
			return clone(s.items), nil
		}
		return nil, fmt.Errorf("load slot: %w", err)
	}

	var decoded []model.Item
	if err := json.Unmarshal(raw, &decoded); err != nil {
		s.logger.Warn("discarding unparseable list", zap.Error(err))
		s.items = []model.Item{}
		return clone(s.items), nil
	}

	items := make([]model.Item, 0, len(decoded))
	seen := make(map[string]bool, len(decoded))
	for _, item := range decoded {
		item.Task = strings.TrimSpace(item.Task)
		if err := item.Validate(); err != nil {
			s.logger.Warn("dropping invalid item", zap.String("id", item.ID), zap.Error(err))
			continue
		}
		if seen[item.ID] {
			s.logger.Warn("dropping duplicate item id", zap.String("id", item.ID))
			continue
		}
		seen[item.ID] = true
		items = append(items, item)
	}
	s.items = items
	s.logger.Debug("list loaded", zap.Int("count", len(items)))
	return clone(s.items), nil
}

// HasSlot reports whether the backing slot exists at all.
func (s *Store) HasSlot(ctx context.Context) (bool, error) {
	return s.slots.Has(ctx, s.key)
}

func (s *Store) Add(ctx context.Context, text string) ([]model.Item, error) {
	task := strings.TrimSpace(text)
	if task == "" {
		return nil, &ValidationError{Field: "task", Err: model.ErrEmptyTask}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.uniqueID()
	if err != nil {
		return nil, err
	}
	next := append(clone(s.items), model.Item{ID: id, Task: task, Status: model.StatusTodo})
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	s.logger.Info("item added", zap.String("id", id))
	return clone(s.items), nil
}

func (s *Store) Toggle(ctx context.Context, id string) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.items, id)
	if idx < 0 {
		return clone(s.items), nil
	}
	next := clone(s.items)
	next[idx].Status = next[idx].Status.Toggled()
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	s.logger.Info("item toggled", zap.String("id", id), zap.String("status", string(next[idx].Status)))
	return clone(s.items), nil
}

func (s *Store) EditTask(ctx context.Context, id, text string) ([]model.Item, error) {
	task := strings.TrimSpace(text)
	if task == "" {
		return nil, &ValidationError{Field: "task", Err: model.ErrEmptyTask}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.items, id)
	if idx < 0 {
		return clone(s.items), nil
	}
	next := clone(s.items)
	next[idx].Task = task
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	s.logger.Info("item edited", zap.String("id", id))
	return clone(s.items), nil
}

func (s *Store) Remove(ctx context.Context, id string) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.items, id) < 0 {
		return clone(s.items), nil
	}
	next := make([]model.Item, 0, len(s.items)-1)
	for _, item := range s.items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	s.logger.Info("item removed", zap.String("id", id))
	return clone(s.items), nil
}

// Reorder moves the item at from so that it ends up at index to.
func (s *Store) Reorder(ctx context.Context, from, to int) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.items)
	if from < 0 || from >= n {
		return nil, &ValidationError{Field: "fromIndex", Err: fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, from, n)}
	}
	if to < 0 || to >= n {
		return nil, &ValidationError{Field: "toIndex", Err: fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, to, n)}
	}

	next := clone(s.items)
	moved := next[from]
	next = append(next[:from], next[from+1:]...)
	next = append(next[:to], append([]model.Item{moved}, next[to:]...)...)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	s.logger.Info("item moved", zap.String("id", moved.ID), zap.Int("from", from), zap.Int("to", to))
	return clone(s.items), nil
}

// ClearAll empties the list and erases the slot key.
func (s *Store) ClearAll(ctx context.Context) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slots.Delete(ctx, s.key); err != nil {
		return nil, fmt.Errorf("clear slot: %w", err)
	}
	s.items = []model.Item{}
	s.logger.Info("list cleared")
	return clone(s.items), nil
}

// commit persists next and only then adopts it as the current list.
func (s *Store) commit(ctx context.Context, next []model.Item) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode list: %w", err)
	}
	if err := s.slots.Set(ctx, s.key, raw); err != nil {
		s.logger.Error("persist list failed", zap.Error(err))
		return fmt.Errorf("persist list: %w", err)
	}
	s.items = next
	return nil
}

func (s *Store) uniqueID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.ids.Next()
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		if strings.TrimSpace(id) != "" && indexOf(s.items, id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

func indexOf(items []model.Item, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func clone(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	copy(out, items)
	return out
}
