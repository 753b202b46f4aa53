package provider

import (
	"errors"
	"reflect"
	"testing"

	"github.com/acidni-llc/cdes-m/internal/platform/fhir"
	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

func mustProvider(t *testing.T, p Provider) *Provider {
	t.Helper()
	created, err := New(p)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return created
}

func TestToFHIRPractitionerShape(t *testing.T) {
	p := mustProvider(t, validProvider())

	resource, err := p.ToFHIR()
	if err != nil {
		t.Fatalf("ToFHIR returned error: %v", err)
	}

	if resource["resourceType"] != "Practitioner" {
		t.Errorf("resourceType = %v, want Practitioner", resource["resourceType"])
	}
	if resource["id"] != p.ID.String() {
		t.Errorf("id = %v, want %s", resource["id"], p.ID)
	}

	identifiers, ok := resource["identifier"].([]fhir.Identifier)
	if !ok {
		t.Fatalf("identifier has type %T", resource["identifier"])
	}
	var npiFound bool
	for _, ident := range identifiers {
		if ident.System == fhir.SystemNPI {
			npiFound = true
			if ident.Value != p.NPI {
				t.Errorf("NPI identifier value = %q, want %q", ident.Value, p.NPI)
			}
		}
	}
	if !npiFound {
		t.Error("expected an identifier with the NPI system")
	}
}

func TestToFHIRQualificationFromLicense(t *testing.T) {
	p := mustProvider(t, validProvider())

	resource, err := p.ToFHIR()
	if err != nil {
		t.Fatalf("ToFHIR returned error: %v", err)
	}

	quals, ok := resource["qualification"].([]map[string]interface{})
	if !ok || len(quals) != 1 {
		t.Fatalf("qualification = %#v", resource["qualification"])
	}
	code := quals[0]["code"].(fhir.CodeableConcept)
	if len(code.Coding) == 0 {
		t.Fatal("expected qualification codings")
	}
	if code.Coding[0].Code != "md" {
		t.Errorf("qualification code = %q, want md", code.Coding[0].Code)
	}
	// specialty carried as extra qualification codings
	if len(code.Coding) != 2 || code.Coding[1].Code != "pain_management" {
		t.Errorf("specialty coding missing: %#v", code.Coding)
	}
	period := quals[0]["period"].(fhir.Period)
	if period.End == nil || !period.End.Equal(p.LicenseExpiration) {
		t.Errorf("qualification period end = %v, want %v", period.End, p.LicenseExpiration)
	}
}

func TestToFHIROmitsDEAWhenAbsent(t *testing.T) {
	p := mustProvider(t, validProvider())
	resource, err := p.ToFHIR()
	if err != nil {
		t.Fatalf("ToFHIR returned error: %v", err)
	}
	for _, ident := range resource["identifier"].([]fhir.Identifier) {
		if ident.System == fhir.SystemDEA {
			t.Error("DEA identifier present without a DEA number")
		}
	}

	withDEA := validProvider()
	withDEA.DEANumber = ptrStr("FA1234563")
	p2 := mustProvider(t, withDEA)
	resource2, err := p2.ToFHIR()
	if err != nil {
		t.Fatalf("ToFHIR returned error: %v", err)
	}
	var found bool
	for _, ident := range resource2["identifier"].([]fhir.Identifier) {
		if ident.System == fhir.SystemDEA && ident.Value == "FA1234563" {
			found = true
		}
	}
	if !found {
		t.Error("expected DEA identifier when a DEA number is set")
	}
}

func TestToFHIRTelecom(t *testing.T) {
	p := validProvider()
	p.Contact = &Contact{Email: "doc@clinic.example", Phone: "555-0100"}
	created := mustProvider(t, p)

	resource, err := created.ToFHIR()
	if err != nil {
		t.Fatalf("ToFHIR returned error: %v", err)
	}
	telecom, ok := resource["telecom"].([]fhir.ContactPoint)
	if !ok || len(telecom) != 2 {
		t.Fatalf("telecom = %#v", resource["telecom"])
	}
	if telecom[0].System != "email" || telecom[0].Value != "doc@clinic.example" {
		t.Errorf("unexpected telecom[0]: %#v", telecom[0])
	}
}

func TestToFHIRIsDeterministic(t *testing.T) {
	p := mustProvider(t, validProvider())
	a, err := p.ToFHIR()
	if err != nil {
		t.Fatalf("ToFHIR returned error: %v", err)
	}
	b, err := p.ToFHIR()
	if err != nil {
		t.Fatalf("ToFHIR returned error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two conversions of the same provider differ")
	}
}

func TestToFHIRMissingFieldFails(t *testing.T) {
	p := mustProvider(t, validProvider())
	broken := *p
	broken.LicenseNumber = ""

	_, err := broken.ToFHIR()
	var ce *cdesmodels.ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConversionError, got %v", err)
	}
	if ce.EntityKind != "Provider" || ce.MissingField != "license_number" {
		t.Errorf("ConversionError = %+v", ce)
	}
}
