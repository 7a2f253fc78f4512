// Package storetest provides an in-memory store.UserStore for tests that
// exercise services and handlers without a database.
package storetest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jwhitfield/baseline-api/internal/domain"
	"github.com/jwhitfield/baseline-api/internal/store"
)

// MemoryUserStore is a map-backed store.UserStore. Setting ForcedError makes
// every operation fail with it, which is how tests simulate storage faults.
type MemoryUserStore struct {
	mu          sync.Mutex
	usersByID   map[uuid.UUID]*domain.User
	idsByEmail  map[string]uuid.UUID
	ForcedError error
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		usersByID:  make(map[uuid.UUID]*domain.User),
		idsByEmail: make(map[string]uuid.UUID),
	}
}

var _ store.UserStore = (*MemoryUserStore)(nil)

// Create implements store.UserStore.Create.
func (s *MemoryUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ForcedError != nil {
		return s.ForcedError
	}
	if _, exists := s.idsByEmail[user.Email]; exists {
		return store.ErrEmailExists
	}

	clone := *user
	s.usersByID[user.ID] = &clone
	s.idsByEmail[user.Email] = user.ID
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *MemoryUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ForcedError != nil {
		return nil, s.ForcedError
	}
	user, ok := s.usersByID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ForcedError != nil {
		return nil, s.ForcedError
	}
	id, ok := s.idsByEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	clone := *s.usersByID[id]
	return &clone, nil
}

// List implements store.UserStore.List.
func (s *MemoryUserStore) List(ctx context.Context, offset, limit int) ([]*domain.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ForcedError != nil {
		return nil, 0, s.ForcedError
	}

	all := make([]*domain.User, 0, len(s.usersByID))
	for _, user := range s.usersByID {
		clone := *user
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// Update implements store.UserStore.Update.
func (s *MemoryUserStore) Update(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ForcedError != nil {
		return s.ForcedError
	}
	existing, ok := s.usersByID[user.ID]
	if !ok {
		return store.ErrUserNotFound
	}
	if other, taken := s.idsByEmail[user.Email]; taken && other != user.ID {
		return store.ErrEmailExists
	}

	delete(s.idsByEmail, existing.Email)
	clone := *user
	s.usersByID[user.ID] = &clone
	s.idsByEmail[user.Email] = user.ID
	return nil
}

// Delete implements store.UserStore.Delete.
func (s *MemoryUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ForcedError != nil {
		return s.ForcedError
	}
	user, ok := s.usersByID[id]
	if !ok {
		return store.ErrUserNotFound
	}
	delete(s.idsByEmail, user.Email)
	delete(s.usersByID, id)
	return nil
}
