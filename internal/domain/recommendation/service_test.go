package recommendation

import (
	"context"
	"errors"
	"testing"

	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

func TestServiceCreateAndGet(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, validRecommendation())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.PatientID != created.PatientID {
		t.Errorf("PatientID = %s, want %s", got.PatientID, created.PatientID)
	}
}

func TestServiceCreateRejectsInvalid(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	rec := validRecommendation()
	rec.TargetProfile.TerpeneProfile["myrcene"] = 2.0
	_, err := svc.Create(context.Background(), rec)
	var ve *cdesmodels.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}

func TestServiceSign(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, validRecommendation())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	signed, err := svc.Sign(ctx, created.ID)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}
	if signed.Status != cdesmodels.StatusActive {
		t.Errorf("status = %q, want active", signed.Status)
	}
	if signed.SignedAt == nil {
		t.Error("expected SignedAt to be stamped")
	}

	// Signing twice fails; only drafts can be signed.
	if _, err := svc.Sign(ctx, created.ID); err == nil {
		t.Error("expected second Sign to fail")
	}
}

func TestServiceListByPatient(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	first, err := svc.Create(ctx, validRecommendation())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(ctx, validRecommendation()); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	items, err := svc.ListByPatient(ctx, first.PatientID)
	if err != nil {
		t.Fatalf("ListByPatient returned error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d recommendations, want 2", len(items))
	}
}

func TestServiceMedicationRequest(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, validRecommendation())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	resource, err := svc.MedicationRequest(ctx, created.ID)
	if err != nil {
		t.Fatalf("MedicationRequest returned error: %v", err)
	}
	if resource["resourceType"] != "MedicationRequest" {
		t.Errorf("resourceType = %v", resource["resourceType"])
	}
}
