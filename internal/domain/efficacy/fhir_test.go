package efficacy

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/internal/platform/fhir"
	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

func TestToFHIRObservationCore(t *testing.T) {
	r, err := New(validReport())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	resource, err := r.ToFHIR(r.PatientID)
	if err != nil {
		t.Fatalf("ToFHIR: %v", err)
	}
	if resource["resourceType"] != "Observation" {
		t.Fatalf("resourceType = %v", resource["resourceType"])
	}
	if resource["status"] != "final" {
		t.Errorf("status = %v", resource["status"])
	}
	cat := resource["category"].([]fhir.CodeableConcept)
	if cat[0].Coding[0].Code != "survey" {
		t.Errorf("category = %q", cat[0].Coding[0].Code)
	}
	code := resource["code"].(fhir.CodeableConcept)
	if code.Coding[0].System != fhir.SystemLOINC || code.Coding[0].Code != fhir.LOINCPatientReportedOutcome {
		t.Errorf("default LOINC coding = %+v", code.Coding[0])
	}
	if code.Coding[1].Code != "cannabis-efficacy-report" {
		t.Errorf("project coding = %+v", code.Coding[1])
	}
	if resource["valueString"] != r.ObservedEffect {
		t.Errorf("valueString = %v", resource["valueString"])
	}
	if resource["effectiveDateTime"] != "2025-03-05T21:30:00Z" {
		t.Errorf("effectiveDateTime = %v", resource["effectiveDateTime"])
	}
	basedOn := resource["basedOn"].([]fhir.Reference)
	if basedOn[0].Reference != "MedicationRequest/"+r.RecommendationID.String() {
		t.Errorf("basedOn = %+v", basedOn)
	}
	performers := resource["performer"].([]fhir.Reference)
	if performers[0].Reference != "Patient/"+r.PatientID.String() {
		t.Errorf("performer = %+v", performers)
	}
}

func TestToFHIRReportLOINCOverridesDefault(t *testing.T) {
	r, err := New(validReport())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.LOINCCode = "72514-3"
	resource, _ := r.ToFHIR(r.PatientID)
	code := resource["code"].(fhir.CodeableConcept)
	if code.Coding[0].Code != "72514-3" {
		t.Errorf("LOINC code = %q, want 72514-3", code.Coding[0].Code)
	}
}

func TestToFHIRComponents(t *testing.T) {
	r, err := New(validReport())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	resource, _ := r.ToFHIR(r.PatientID)
	components := resource["component"].([]map[string]interface{})
	if len(components) != 4 {
		t.Fatalf("component count = %d, want 4", len(components))
	}
	overall := components[0]
	if overall["valueInteger"] != 4 {
		t.Errorf("overall rating = %v", overall["valueInteger"])
	}
	relief := components[1]
	reliefCode := relief["code"].(fhir.CodeableConcept)
	if reliefCode.Coding[0].Code != "symptom-relief" {
		t.Errorf("relief code = %q", reliefCode.Coding[0].Code)
	}
	symptom := components[2]
	symptomCode := symptom["code"].(fhir.CodeableConcept)
	if symptomCode.Coding[0].Code != "back-pain" || symptomCode.Coding[0].Display != "Back Pain" {
		t.Errorf("symptom coding = %+v", symptomCode.Coding[0])
	}
	qty := symptom["valueQuantity"].(map[string]interface{})
	if qty["value"] != 5 || qty["unit"] != "points" {
		t.Errorf("symptom quantity = %+v", qty)
	}
	sideEffect := components[3]
	seCode := sideEffect["code"].(fhir.CodeableConcept)
	if seCode.Coding[0].System != fhir.SystemCDESMSideEffect || seCode.Coding[0].Code != "drowsiness" {
		t.Errorf("side effect coding = %+v", seCode.Coding[0])
	}
	severity := sideEffect["valueCodeableConcept"].(fhir.CodeableConcept)
	if severity.Coding[0].Code != "255604002" {
		t.Errorf("mild severity should map to SNOMED 255604002, got %q", severity.Coding[0].Code)
	}
}

func TestToFHIRMissingRecommendationFails(t *testing.T) {
	r, err := New(validReport())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.RecommendationID = uuid.Nil
	_, err = r.ToFHIR(r.PatientID)
	var ce *cdesmodels.ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if ce.EntityKind != "EfficacyReport" || ce.MissingField != "recommendation_id" {
		t.Errorf("conversion error = %+v", ce)
	}
}

func TestToFHIRDeterministic(t *testing.T) {
	r, err := New(validReport())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a, _ := r.ToFHIR(r.PatientID)
	b, _ := r.ToFHIR(r.PatientID)
	if !reflect.DeepEqual(a, b) {
		t.Error("ToFHIR should be deterministic for equal input")
	}
}
