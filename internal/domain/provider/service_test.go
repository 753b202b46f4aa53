package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

func TestServiceCreateAndGet(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, validProvider())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.NPI != created.NPI {
		t.Errorf("NPI = %q, want %q", got.NPI, created.NPI)
	}

	byNPI, err := svc.GetByNPI(ctx, created.NPI)
	if err != nil {
		t.Fatalf("GetByNPI returned error: %v", err)
	}
	if byNPI.ID != created.ID {
		t.Errorf("GetByNPI id = %s, want %s", byNPI.ID, created.ID)
	}
}

func TestServiceCreateRejectsInvalid(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	p := validProvider()
	p.NPI = "12345"
	_, err := svc.Create(context.Background(), p)
	var ve *cdesmodels.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}

func TestServiceCreateRejectsDuplicateNPI(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Create(ctx, validProvider()); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}
	if _, err := svc.Create(ctx, validProvider()); err == nil {
		t.Fatal("expected duplicate NPI to be rejected")
	}
}

func TestServiceUpdateBuildsNewValue(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, validProvider())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	next := *created
	next.LicenseNumber = "ME999999"
	updated, err := svc.Update(ctx, next)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.LicenseNumber != "ME999999" {
		t.Errorf("LicenseNumber = %q", updated.LicenseNumber)
	}

	stored, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored.LicenseNumber != "ME999999" {
		t.Error("update was not persisted")
	}
}

func TestServicePractitioner(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, validProvider())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	resource, err := svc.Practitioner(ctx, created.ID)
	if err != nil {
		t.Fatalf("Practitioner returned error: %v", err)
	}
	if resource["resourceType"] != "Practitioner" {
		t.Errorf("resourceType = %v", resource["resourceType"])
	}
}

func TestServiceDeleteThenGetFails(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, validProvider())
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

func TestServiceCreateRejectsBadNPICheckDigit(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	p := validProvider()
	p.NPI = "1234567890"
	_, err := svc.Create(context.Background(), p)
	var ve *cdesmodels.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if ve.Field != "npi" {
		t.Errorf("Field = %q, want %q", ve.Field, "npi")
	}
}
