package store

import (
	"context"
	"sort"
	"sync"

	"github.com/croppilot/croppilot/internal/domain"
)

// MemoryStore keeps everything in maps behind a mutex. It backs tests and
// development runs without a database file.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[string]domain.User
	byPhone map[string]string
	logs    map[string]domain.FarmLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]domain.User),
		byPhone: make(map[string]string),
		logs:    make(map[string]domain.FarmLog),
	}
}

func (s *MemoryStore) Create(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byPhone[user.Phone]; exists {
		return ErrDuplicatePhone
	}
	s.users[user.ID] = user
	s.byPhone[user.Phone] = user.ID
	return nil
}

func (s *MemoryStore) FindByPhone(_ context.Context, phone string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.byPhone[phone]; ok {
		return s.users[id], nil
	}
	return domain.User{}, ErrNotFound
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return domain.User{}, ErrNotFound
}

func (s *MemoryStore) Append(_ context.Context, entry domain.FarmLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[entry.ID] = entry
	return nil
}

// ListByUser returns the user's entries newest first, matching the SQLite
// ordering.
func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]domain.FarmLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.FarmLog, 0)
	for _, entry := range s.logs {
		if entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}

func (s *MemoryStore) Delete(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.logs[id]
	if !ok || entry.UserID != userID {
		return ErrNotFound
	}
	delete(s.logs, id)
	return nil
}
