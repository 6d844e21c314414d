package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shandysiswandi/gomdc/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gomdc/internal/user/entity"
)

func TestInMemoryStoreSaveGet(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	user := entity.User{ID: 1, Name: "alice", Email: "alice@example.com"}
	if err := s.Save(ctx, user); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != user {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestInMemoryStoreGetMissing(t *testing.T) {
	_, err := NewInMemoryStore().Get(context.Background(), 42)
	if !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInMemoryStoreSaveConflict(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	if err := s.Save(ctx, entity.User{ID: 1}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	err := s.Save(ctx, entity.User{ID: 1})
	var gerr *pkgerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != pkgerror.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestInMemoryStoreListOrder(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	for _, id := range []int64{3, 1, 2} {
		if err := s.Save(ctx, entity.User{ID: id}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	users, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 3 || users[0].ID != 3 || users[1].ID != 1 || users[2].ID != 2 {
		t.Fatalf("unexpected order: %+v", users)
	}
}

func TestInMemoryStoreConcurrentSave(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := int64(1); i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if err := s.Save(ctx, entity.User{ID: id}); err != nil {
				t.Errorf("Save %d: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	users, _ := s.List(ctx)
	if len(users) != 50 {
		t.Fatalf("expected 50 users, got %d", len(users))
	}
}
