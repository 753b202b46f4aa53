package message

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = fmt.Errorf("message not found")

type Repository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*Message, error)
	Update(ctx context.Context, m *Message) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByThread(ctx context.Context, threadID uuid.UUID) ([]*Message, error)
}

type MemoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Message
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[uuid.UUID]*Message)}
}

func (r *MemoryRepository) Create(_ context.Context, m *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.items[m.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *MemoryRepository) Update(_ context.Context, m *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[m.ID]; !ok {
		return ErrNotFound
	}
	cp := *m
	r.items[m.ID] = &cp
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRepository) ListByThread(_ context.Context, threadID uuid.UUID) ([]*Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*Message
	for _, m := range r.items {
		if m.ThreadID == threadID {
			cp := *m
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SentAt.Before(result[j].SentAt) })
	return result, nil
}
