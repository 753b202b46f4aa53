package efficacy

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

// Create validates and stores a new efficacy report. Validation failures
// surface as *cdesmodels.ValidationError.
func (s *Service) Create(ctx context.Context, r Report) (*Report, error) {
	created, err := New(r)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("create efficacy report: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Report, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Report, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByRecommendation(ctx context.Context, recommendationID uuid.UUID) ([]*Report, error) {
	return s.repo.ListByRecommendation(ctx, recommendationID)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Observation loads a report and converts it to a FHIR Observation.
func (s *Service) Observation(ctx context.Context, id uuid.UUID) (map[string]interface{}, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.ToFHIR(r.PatientID)
}
