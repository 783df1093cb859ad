package cart

import (
	"context"
	"sync"
	"time"
)

type MemStore struct {
	mu    sync.Mutex
	carts map[string][]Line
}

func NewMemStore() *MemStore {
	return &MemStore{carts: make(map[string][]Line)}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Lines(ctx context.Context, userID string) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.carts[userID]; !ok {
		s.carts[userID] = []Line{}
	}
	return cloneLines(s.carts[userID]), nil
}

func (s *MemStore) Add(ctx context.Context, userID string, productID int64, qty int, at time.Time) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += qty
			s.carts[userID] = lines
			return cloneLines(lines), nil
		}
	}

	lines = append(lines, Line{ProductID: productID, Quantity: qty, AddedAt: at})
	s.carts[userID] = lines
	return cloneLines(lines), nil
}

func (s *MemStore) Remove(ctx context.Context, userID string, productID int64) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, ok := s.carts[userID]
	if !ok {
		return nil, ErrCartNotFound
	}

	s.carts[userID] = deleteLine(lines, productID)
	return cloneLines(s.carts[userID]), nil
}

func (s *MemStore) SetQuantity(ctx context.Context, userID string, productID int64, qty int) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, ok := s.carts[userID]
	if !ok {
		return nil, ErrCartNotFound
	}

	idx := -1
	for i := range lines {
		if lines[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	if qty <= 0 {
		s.carts[userID] = deleteLine(lines, productID)
	} else {
		lines[idx].Quantity = qty
		s.carts[userID] = lines
	}
	return cloneLines(s.carts[userID]), nil
}

func (s *MemStore) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.carts[userID]; ok {
		s.carts[userID] = []Line{}
	}
	return nil
}

func (s *MemStore) ActiveCarts(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts), nil
}

func deleteLine(lines []Line, productID int64) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.ProductID != productID {
			out = append(out, l)
		}
	}
	return out
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
