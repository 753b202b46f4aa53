package recommendation

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no recommendation matches the given id.
var ErrNotFound = fmt.Errorf("recommendation not found")

type Repository interface {
	Create(ctx context.Context, r *Recommendation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Recommendation, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Recommendation, error)
	Update(ctx context.Context, r *Recommendation) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Recommendation, int, error)
}

// MemoryRepository is a mutex-guarded in-memory Repository used when the
// server runs without a database.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Recommendation
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[uuid.UUID]*Recommendation)}
}

func (r *MemoryRepository) Create(_ context.Context, rec *Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.items[rec.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Recommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *MemoryRepository) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Recommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*Recommendation
	for _, rec := range r.items {
		if rec.PatientID == patientID {
			cp := *rec
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *MemoryRepository) Update(_ context.Context, rec *Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[rec.ID]; !ok {
		return ErrNotFound
	}
	cp := *rec
	r.items[rec.ID] = &cp
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

func (r *MemoryRepository) List(_ context.Context, limit, offset int) ([]*Recommendation, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*Recommendation, 0, len(r.items))
	for _, rec := range r.items {
		cp := *rec
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
