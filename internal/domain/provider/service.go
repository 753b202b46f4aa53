package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/internal/platform/fhir"
	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new provider. Validation failures surface
// as *cdesmodels.ValidationError.
func (s *Service) Create(ctx context.Context, p Provider) (*Provider, error) {
	created, err := New(p)
	if err != nil {
		return nil, err
	}
	if !fhir.ValidNPICheckDigit(created.NPI) {
		return nil, cdesmodels.NewValidationError("npi", "check digit does not satisfy the NPI Luhn rule")
	}
	if existing, err := s.repo.GetByNPI(ctx, created.NPI); err == nil && existing != nil {
		return nil, fmt.Errorf("provider with NPI %s already exists", created.NPI)
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Provider, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByNPI(ctx context.Context, npi string) (*Provider, error) {
	return s.repo.GetByNPI(ctx, npi)
}

// Update replaces the stored provider with a newly validated value; the
// entity itself is never mutated in place.
func (s *Service) Update(ctx context.Context, p Provider) (*Provider, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !fhir.ValidNPICheckDigit(p.NPI) {
		return nil, cdesmodels.NewValidationError("npi", "check digit does not satisfy the NPI Luhn rule")
	}
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Provider, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Practitioner loads a provider and converts it to a FHIR Practitioner.
func (s *Service) Practitioner(ctx context.Context, id uuid.UUID) (map[string]interface{}, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.ToFHIR()
}
