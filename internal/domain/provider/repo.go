package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no provider matches the given id.
var ErrNotFound = fmt.Errorf("provider not found")

type Repository interface {
	Create(ctx context.Context, p *Provider) error
	GetByID(ctx context.Context, id uuid.UUID) (*Provider, error)
	GetByNPI(ctx context.Context, npi string) (*Provider, error)
	Update(ctx context.Context, p *Provider) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Provider, int, error)
}

// MemoryRepository is a mutex-guarded in-memory Repository used when the
// server runs without a database.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Provider
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[uuid.UUID]*Provider)}
}

func (r *MemoryRepository) Create(_ context.Context, p *Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *MemoryRepository) GetByNPI(_ context.Context, npi string) (*Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.NPI == npi {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) Update(_ context.Context, p *Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	r.items[p.ID] = &cp
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

func (r *MemoryRepository) List(_ context.Context, limit, offset int) ([]*Provider, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*Provider, 0, len(r.items))
	for _, p := range r.items {
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
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
