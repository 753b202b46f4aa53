package patient

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

func TestServiceCreateAndGet(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, validPatient())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.MRN != created.MRN {
		t.Errorf("MRN = %q, want %q", got.MRN, created.MRN)
	}
}

func TestServiceCreateRejectsInvalid(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	p := validPatient()
	p.Gender = "robot"
	_, err := svc.Create(context.Background(), p)
	var ve *cdesmodels.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}

func TestServiceCreateRejectsDuplicateMRN(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Create(ctx, validPatient()); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}
	if _, err := svc.Create(ctx, validPatient()); err == nil {
		t.Fatal("expected duplicate MRN to be rejected")
	}
}

func TestServiceFHIRPatientHonorsConsent(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	withConsent, err := svc.Create(ctx, validPatient())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	resource, err := svc.FHIRPatient(ctx, withConsent.ID)
	if err != nil {
		t.Fatalf("FHIRPatient returned error: %v", err)
	}
	if resource["resourceType"] != "Patient" {
		t.Errorf("resourceType = %v", resource["resourceType"])
	}

	declined := validPatient()
	declined.MRN = "MR-1002"
	declined.Consent.FHIRExport = false
	created, err := svc.Create(ctx, declined)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.FHIRPatient(ctx, created.ID); !errors.Is(err, ErrExportNotConsented) {
		t.Errorf("expected ErrExportNotConsented, got %v", err)
	}
}

func TestServiceDeleteThenGetFails(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, validPatient())
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

func TestServiceListClampsNegativeOffset(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p := validPatient()
		p.MRN = fmt.Sprintf("MR-100%d", i)
		if _, err := svc.Create(ctx, p); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	items, total, err := svc.List(ctx, 10, -1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(items) != 3 {
		t.Errorf("len(items) = %d, want 3", len(items))
	}
}
