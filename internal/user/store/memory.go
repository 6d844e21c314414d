package store

import (
	"context"
	"sync"

	"github.com/shandysiswandi/gomdc/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gomdc/internal/user/entity"
)

type InMemoryStore struct {
	mu    sync.RWMutex
	users map[int64]entity.User
	order []int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users: make(map[int64]entity.User),
	}
}

func (s *InMemoryStore) Save(ctx context.Context, user entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return pkgerror.NewBusiness("user already exists", pkgerror.CodeConflict)
	}

	s.users[user.ID] = user
	s.order = append(s.order, user.ID)

	return nil
}

func (s *InMemoryStore) Get(ctx context.Context, id int64) (entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return entity.User{}, pkgerror.ErrNotFound
	}

	return user, nil
}

// List returns users in insertion order.
func (s *InMemoryStore) List(ctx context.Context) ([]entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]entity.User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, s.users[id])
	}

	return users, nil
}
