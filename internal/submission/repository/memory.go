package repository

import (
	"context"
	"sync"
	"time"

	"github.com/modgate/modgate/internal/submission"
)

// MemoryRepo is a simple in-memory repository used for local development and
// unit tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*submission.Submission
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*submission.Submission)}
}

func (m *MemoryRepo) Create(_ context.Context, s *submission.Submission) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		s.ID = "sub_" + time.Now().Format("20060102T150405.000000000")
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	m.store[s.ID] = s
	return s.ID, nil
}

func (m *MemoryRepo) Get(_ context.Context, id string) (*submission.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.store[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) GetBySignature(_ context.Context, signature string) (*submission.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.store {
		if s.Signature == signature {
			return s, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) List(_ context.Context) ([]*submission.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*submission.Submission, 0, len(m.store))
	for _, s := range m.store {
		out = append(out, s)
	}
	return out, nil
}

func (m *MemoryRepo) SetAllow(_ context.Context, id string, allow bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	s.Allow = allow
	s.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
