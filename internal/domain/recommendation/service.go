package recommendation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new recommendation. Validation failures
// surface as *cdesmodels.ValidationError.
func (s *Service) Create(ctx context.Context, rec Recommendation) (*Recommendation, error) {
	created, err := New(rec)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("create recommendation: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Recommendation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Recommendation, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) Update(ctx context.Context, rec Recommendation) (*Recommendation, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	rec.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Sign marks a draft recommendation active and stamps the signature time.
func (s *Service) Sign(ctx context.Context, id uuid.UUID) (*Recommendation, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status != cdesmodels.StatusDraft {
		return nil, cdesmodels.NewValidationError("status", "only draft recommendations can be signed")
	}
	now := time.Now().UTC()
	rec.Status = cdesmodels.StatusActive
	rec.SignedAt = &now
	rec.UpdatedAt = now
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Recommendation, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// MedicationRequest loads a recommendation and converts it to a FHIR
// MedicationRequest using the stored patient and provider ids.
func (s *Service) MedicationRequest(ctx context.Context, id uuid.UUID) (map[string]interface{}, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec.ToFHIR(rec.PatientID, rec.ProviderID)
}
