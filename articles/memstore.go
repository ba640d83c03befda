package articles

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mirinai/goblog/apperror"
)

// MemStore is an in-memory Store. It backs the tests and the database-free
// STORAGE_DRIVER=memory mode, and enforces the same storage-boundary
// invariants as the PostgreSQL store.
type MemStore struct {
	mu       sync.RWMutex
	articles map[int64]Article
	nextID   int64
}

// NewMemStore creates an empty in-memory article store.
func NewMemStore() *MemStore {
	return &MemStore{
		articles: make(map[int64]Article),
		nextID:   1,
	}
}

// Insert assigns the next id and both timestamps and stores a copy of the
// article. Empty title or content violates the storage constraint.
func (s *MemStore) Insert(_ context.Context, title, content string) (*Article, error) {
	if title == "" || content == "" {
		return nil, apperror.NewValidationError("title and content must not be empty", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	a := Article{
		ID:        s.nextID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.articles[a.ID] = a

	out := a
	return &out, nil
}

// List returns copies of every stored article. Ordering is whatever the map
// iteration yields; callers that need an order must sort.
func (s *MemStore) List(_ context.Context) ([]Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Article, 0, len(s.articles))
	for _, a := range s.articles {
		out = append(out, a)
	}
	return out, nil
}

// Get returns a copy of the article with the given id.
func (s *MemStore) Get(_ context.Context, id int64) (*Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("article not found: %d", id), nil)
	}
	out := a
	return &out, nil
}

// Update mutates title and content under the write lock, so the read and the
// write are one atomic unit, and refreshes the updated timestamp. The id and
// created timestamp never change.
func (s *MemStore) Update(_ context.Context, id int64, title, content string) (*Article, error) {
	if title == "" || content == "" {
		return nil, apperror.NewValidationError("title and content must not be empty", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("article not found: %d", id), nil)
	}

	a.Title = title
	a.Content = content
	a.UpdatedAt = time.Now()
	s.articles[id] = a

	out := a
	return &out, nil
}

// Delete removes the article if present; deleting an absent id is a no-op.
func (s *MemStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.articles, id)
	return nil
}
