package message

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

// Send validates and stores a new message. Validation failures surface as
// *cdesmodels.ValidationError.
func (s *Service) Send(ctx context.Context, m Message) (*Message, error) {
	created, err := New(m)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Message, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByThread(ctx context.Context, threadID uuid.UUID) ([]*Message, error) {
	return s.repo.ListByThread(ctx, threadID)
}

// MarkRead transitions a sent message to read, stamping the read time.
// Reading a message twice is not an error; the first read timestamp wins.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) (*Message, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Status == cdesmodels.MessageRead {
		return m, nil
	}
	now := time.Now().UTC()
	m.Status = cdesmodels.MessageRead
	m.ReadAt = &now
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Communication loads a message and converts it to a FHIR Communication.
func (s *Service) Communication(ctx context.Context, id uuid.UUID) (map[string]interface{}, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.ToFHIR()
}
