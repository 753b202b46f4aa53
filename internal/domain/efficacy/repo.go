package efficacy

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no report matches the given id.
var ErrNotFound = fmt.Errorf("efficacy report not found")

type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Report, error)
	ListByRecommendation(ctx context.Context, recommendationID uuid.UUID) ([]*Report, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MemoryRepository is a mutex-guarded in-memory Repository used when the
// server runs without a database.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Report
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[uuid.UUID]*Report)}
}

func (r *MemoryRepository) Create(_ context.Context, report *Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *report
	r.items[report.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	report, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *report
	return &cp, nil
}

func (r *MemoryRepository) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(report *Report) bool { return report.PatientID == patientID }), nil
}

func (r *MemoryRepository) ListByRecommendation(_ context.Context, recommendationID uuid.UUID) ([]*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(report *Report) bool { return report.RecommendationID == recommendationID }), nil
}

// filter assumes the caller holds the read lock.
func (r *MemoryRepository) filter(keep func(*Report) bool) []*Report {
	var result []*Report
	for _, report := range r.items {
		if keep(report) {
			cp := *report
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ReportedAt.Before(result[j].ReportedAt) })
	return result
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
