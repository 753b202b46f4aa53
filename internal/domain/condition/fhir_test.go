package condition

import (
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/internal/platform/fhir"
	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

func TestToFHIRDualCoding(t *testing.T) {
	c, err := New(Condition{
		ICD10Code:   "J44.9",
		SNOMEDCode:  "13645005",
		DisplayName: "COPD",
		Category:    cdesmodels.CategoryOther,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	patientID := uuid.New()

	resource, err := c.ToFHIR(patientID)
	if err != nil {
		t.Fatalf("ToFHIR returned error: %v", err)
	}

	if resource["resourceType"] != "Condition" {
		t.Errorf("resourceType = %v", resource["resourceType"])
	}

	code := resource["code"].(fhir.CodeableConcept)
	if len(code.Coding) != 2 {
		t.Fatalf("expected 2 codings, got %d", len(code.Coding))
	}
	// ICD-10-CM is always the primary coding, SNOMED CT second.
	if code.Coding[0].System != fhir.SystemICD10 || code.Coding[0].Code != "J44.9" {
		t.Errorf("primary coding = %+v", code.Coding[0])
	}
	if code.Coding[1].System != fhir.SystemSNOMED || code.Coding[1].Code != "13645005" {
		t.Errorf("secondary coding = %+v", code.Coding[1])
	}

	subject := resource["subject"].(fhir.Reference)
	if subject.Reference != "Patient/"+patientID.String() {
		t.Errorf("subject = %q", subject.Reference)
	}
}

func TestToFHIRSingleCode(t *testing.T) {
	c, err := New(Condition{
		SNOMEDCode:  "73211009",
		DisplayName: "Diabetes mellitus",
		Category:    cdesmodels.CategoryOther,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	resource, err := c.ToFHIR(uuid.New())
	if err != nil {
		t.Fatalf("ToFHIR returned error: %v", err)
	}
	code := resource["code"].(fhir.CodeableConcept)
	if len(code.Coding) != 1 || code.Coding[0].System != fhir.SystemSNOMED {
		t.Errorf("coding = %#v", code.Coding)
	}
}

func TestToFHIRSeverityMapsToSNOMED(t *testing.T) {
	sev := cdesmodels.SeveritySevere
	c, err := New(Condition{
		ICD10Code:   "G89.4",
		DisplayName: "Chronic pain syndrome",
		Category:    cdesmodels.CategoryChronicPain,
		Severity:    &sev,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	resource, err := c.ToFHIR(uuid.New())
	if err != nil {
		t.Fatalf("ToFHIR returned error: %v", err)
	}
	severity := resource["severity"].(fhir.CodeableConcept)
	if severity.Coding[0].Code != "24484000" {
		t.Errorf("severity coding = %+v", severity.Coding[0])
	}
}

func TestToFHIRIsDeterministic(t *testing.T) {
	c, err := New(validCondition())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	pid := uuid.New()
	a, _ := c.ToFHIR(pid)
	b, _ := c.ToFHIR(pid)
	if !reflect.DeepEqual(a, b) {
		t.Error("two conversions of the same condition differ")
	}
}

func TestToFHIRFailsWithoutCodes(t *testing.T) {
	c := Condition{ID: uuid.New(), DisplayName: "Unknown", Category: cdesmodels.CategoryOther}
	_, err := c.ToFHIR(uuid.New())
	if err == nil {
		t.Fatal("expected ConversionError when no codes are present")
	}
}
