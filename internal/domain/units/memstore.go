package units

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemStore is an in-memory Store used by tests and by callers that run
// without a database. All methods are safe for concurrent use.
type MemStore struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]Unit
}

func NewMemStore() *MemStore {
	return &MemStore{nextID: 1, byID: make(map[int64]Unit)}
}

func (s *MemStore) Insert(_ context.Context, u Unit) (*Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextID
	s.nextID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.byID[u.ID] = u
	out := u
	return &out, nil
}

func (s *MemStore) Update(_ context.Context, u Unit) (*Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.byID[u.ID]
	if !ok {
		return nil, nil
	}
	u.CreatedAt = cur.CreatedAt
	s.byID[u.ID] = u
	out := u
	return &out, nil
}

func (s *MemStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
	return nil
}

func (s *MemStore) GetByID(_ context.Context, id int64) (*Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	out := u
	return &out, nil
}

func (s *MemStore) List(_ context.Context) ([]Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Unit, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) ListByCategory(_ context.Context, c Category) ([]Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Unit
	for _, u := range s.byID {
		if u.Category == c {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) ClearBase(_ context.Context, c Category, keepID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.byID {
		if u.Category == c && u.IsBase && id != keepID {
			u.IsBase = false
			s.byID[id] = u
		}
	}
	return nil
}
