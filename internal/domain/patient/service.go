package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrExportNotConsented is returned when a FHIR export is requested for a
// patient whose consent does not allow it.
var ErrExportNotConsented = fmt.Errorf("patient has not consented to FHIR export")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new patient. Validation failures surface
// as *cdesmodels.ValidationError.
func (s *Service) Create(ctx context.Context, p Patient) (*Patient, error) {
	created, err := New(p)
	if err != nil {
		return nil, err
	}
	if created.MRN != "" {
		if existing, err := s.repo.GetByMRN(ctx, created.MRN); err == nil && existing != nil {
			return nil, fmt.Errorf("patient with MRN %s already exists", created.MRN)
		}
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p Patient) (*Patient, error) {
	if err := p.Validate(); err != nil {
		return nil, err
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

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// FHIRPatient loads a patient and converts it to a FHIR Patient resource.
// Export is gated on the fhir_export consent flag.
func (s *Service) FHIRPatient(ctx context.Context, id uuid.UUID) (map[string]interface{}, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Consent.FHIRExport {
		return nil, ErrExportNotConsented
	}
	return p.ToFHIR()
}
