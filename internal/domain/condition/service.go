package condition

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, c Condition) (*Condition, error) {
	created, err := New(c)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("create condition: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Condition, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, c Condition) (*Condition, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Condition, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// FHIRCondition loads a condition and converts it for the given patient.
func (s *Service) FHIRCondition(ctx context.Context, id, patientID uuid.UUID) (map[string]interface{}, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.ToFHIR(patientID)
}
