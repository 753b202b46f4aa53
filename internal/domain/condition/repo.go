package condition

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = fmt.Errorf("condition not found")

type Repository interface {
	Create(ctx context.Context, c *Condition) error
	GetByID(ctx context.Context, id uuid.UUID) (*Condition, error)
	Update(ctx context.Context, c *Condition) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Condition, int, error)
}

type MemoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Condition
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[uuid.UUID]*Condition)}
}

func (r *MemoryRepository) Create(_ context.Context, c *Condition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Condition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *MemoryRepository) Update(_ context.Context, c *Condition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return ErrNotFound
	}
	cp := *c
	r.items[c.ID] = &cp
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

func (r *MemoryRepository) List(_ context.Context, limit, offset int) ([]*Condition, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*Condition, 0, len(r.items))
	for _, c := range r.items {
		cp := *c
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.String() < all[j].ID.String() })
	total := len(all)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return all[offset:end], total, nil
}
