package efficacy

import (
	"context"
	"errors"
	"testing"

	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

func TestServiceCreateAndGet(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, validReport())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Effectiveness.OverallRating != 4 {
		t.Errorf("overall rating = %d, want 4", got.Effectiveness.OverallRating)
	}
}

func TestServiceCreateRejectsInvalid(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	r := validReport()
	r.Effectiveness.OverallRating = 0
	_, err := svc.Create(context.Background(), r)
	var ve *cdesmodels.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}

func TestServiceListByRecommendation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	first, err := svc.Create(ctx, validReport())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(ctx, validReport()); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	items, err := svc.ListByRecommendation(ctx, first.RecommendationID)
	if err != nil {
		t.Fatalf("ListByRecommendation returned error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d reports, want 2", len(items))
	}
}

func TestServiceObservation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, validReport())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	resource, err := svc.Observation(ctx, created.ID)
	if err != nil {
		t.Fatalf("Observation returned error: %v", err)
	}
	if resource["resourceType"] != "Observation" {
		t.Errorf("resourceType = %v", resource["resourceType"])
	}
}

func TestServiceDelete(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, validReport())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
