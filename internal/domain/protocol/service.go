package protocol

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

// ErrNotFound is returned when no protocol matches the lookup.
var ErrNotFound = fmt.Errorf("treatment protocol not found")

// Service answers protocol lookups against the static registry.
type Service struct {
	registry *Registry
}

func NewService(registry *Registry) *Service {
	return &Service{registry: registry}
}

func (s *Service) All() []*TreatmentProtocol {
	return s.registry.All()
}

func (s *Service) Get(id uuid.UUID) (*TreatmentProtocol, error) {
	p := s.registry.ByID(id)
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// ForCategory returns the protocols curated for a condition category.
// Unknown categories fail validation; known categories without curated
// protocols return ErrNotFound.
func (s *Service) ForCategory(raw string) ([]*TreatmentProtocol, error) {
	category, err := cdesmodels.ParseConditionCategory(raw)
	if err != nil {
		return nil, err
	}
	protocols := s.registry.ByCategory(category)
	if len(protocols) == 0 {
		return nil, ErrNotFound
	}
	return protocols, nil
}
