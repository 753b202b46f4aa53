package efficacy

import (
	"strings"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/internal/platform/fhir"
	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

// ToFHIR converts the report to a FHIR R4 Observation carrying a
// patient-reported outcome. Ratings, symptom scores, and side effects
// travel as components. The patient is both subject and performer.
func (r *Report) ToFHIR(patientID uuid.UUID) (map[string]interface{}, error) {
	if r.PatientID == uuid.Nil && patientID == uuid.Nil {
		return nil, cdesmodels.NewConversionError("EfficacyReport", "patient_id")
	}
	if patientID == uuid.Nil {
		patientID = r.PatientID
	}
	if r.RecommendationID == uuid.Nil {
		return nil, cdesmodels.NewConversionError("EfficacyReport", "recommendation_id")
	}

	loinc := r.LOINCCode
	if loinc == "" {
		loinc = fhir.LOINCPatientReportedOutcome
	}
	patientRef := fhir.Reference{
		Reference: fhir.FormatReference("Patient", patientID.String()),
	}

	resource := map[string]interface{}{
		"resourceType": "Observation",
		"id":           r.ID.String(),
		"identifier": []fhir.Identifier{
			{System: fhir.SystemCDESM, Value: r.ID.String()},
		},
		"status": "final",
		"category": []fhir.CodeableConcept{{
			Coding: []fhir.Coding{{
				System:  fhir.SystemObservationCat,
				Code:    "survey",
				Display: "Survey",
			}},
		}},
		"code": fhir.CodeableConcept{
			Coding: []fhir.Coding{
				{System: fhir.SystemLOINC, Code: loinc, Display: "Patient reported outcome measure"},
				{System: fhir.SystemCDESM, Code: "cannabis-efficacy-report", Display: "Cannabis Efficacy Report"},
			},
		},
		"subject":           patientRef,
		"performer":         []fhir.Reference{patientRef},
		"effectiveDateTime": r.ReportedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		"basedOn": []fhir.Reference{{
			Reference: fhir.FormatReference("MedicationRequest", r.RecommendationID.String()),
		}},
		"component": r.components(),
	}
	if r.ObservedEffect != "" {
		resource["valueString"] = r.ObservedEffect
	}
	if r.Notes != "" {
		resource["note"] = []map[string]interface{}{{"text": r.Notes}}
	}
	return resource, nil
}

func (r *Report) components() []map[string]interface{} {
	components := []map[string]interface{}{
		{
			"code": fhir.CodeableConcept{
				Coding: []fhir.Coding{{
					System:  fhir.SystemCDESMEfficacy,
					Code:    "overall-rating",
					Display: "Overall Effectiveness Rating",
				}},
			},
			"valueInteger": r.Effectiveness.OverallRating,
		},
	}
	if sr := r.Effectiveness.SymptomRelief; sr != nil {
		components = append(components, map[string]interface{}{
			"code": fhir.CodeableConcept{
				Coding: []fhir.Coding{{
					System:  fhir.SystemCDESMEfficacy,
					Code:    "symptom-relief",
					Display: "Symptom Relief Rating",
				}},
			},
			"valueInteger": *sr,
		})
	}
	for _, score := range r.SymptomScores {
		components = append(components, map[string]interface{}{
			"code": fhir.CodeableConcept{
				Coding: []fhir.Coding{{
					System:  fhir.SystemCDESMSymptom,
					Code:    symptomCode(score.Symptom),
					Display: score.Symptom,
				}},
			},
			"valueQuantity": map[string]interface{}{
				"value":  score.Improvement,
				"unit":   "points",
				"system": fhir.SystemUCUM,
			},
		})
	}
	for _, se := range r.SideEffects {
		components = append(components, map[string]interface{}{
			"code": fhir.CodeableConcept{
				Coding: []fhir.Coding{{
					System:  fhir.SystemCDESMSideEffect,
					Code:    string(se.Effect),
					Display: fhir.TitleCase(string(se.Effect)),
				}},
			},
			"valueCodeableConcept": fhir.CodeableConcept{
				Coding: []fhir.Coding{fhir.SeverityCoding(string(se.Severity))},
			},
		})
	}
	return components
}

// symptomCode renders a free-text symptom name as a stable code,
// e.g. "Back Pain" becomes "back-pain".
func symptomCode(symptom string) string {
	return strings.ReplaceAll(strings.ToLower(symptom), " ", "-")
}
