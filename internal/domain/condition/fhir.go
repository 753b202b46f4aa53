package condition

import (
	"time"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/internal/platform/fhir"
	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

// ToFHIR converts the condition to a FHIR R4 Condition for the given
// patient. Both codes are emitted under a single CodeableConcept with a
// deterministic order: ICD-10-CM first, SNOMED CT second, so consumers that
// need a primary coding always get the diagnosis code system.
func (c *Condition) ToFHIR(patientID uuid.UUID) (map[string]interface{}, error) {
	if c.ICD10Code == "" && c.SNOMEDCode == "" {
		return nil, cdesmodels.NewConversionError("Condition", "icd10_code")
	}
	if c.DisplayName == "" {
		return nil, cdesmodels.NewConversionError("Condition", "display_name")
	}

	var coding []fhir.Coding
	if c.ICD10Code != "" {
		coding = append(coding, fhir.Coding{
			System:  fhir.SystemICD10,
			Code:    c.ICD10Code,
			Display: c.DisplayName,
		})
	}
	if c.SNOMEDCode != "" {
		coding = append(coding, fhir.Coding{
			System:  fhir.SystemSNOMED,
			Code:    c.SNOMEDCode,
			Display: c.DisplayName,
		})
	}

	result := map[string]interface{}{
		"resourceType": "Condition",
		"id":           c.ID.String(),
		"identifier": []fhir.Identifier{
			{System: fhir.SystemCDESM, Value: c.ID.String()},
		},
		"clinicalStatus": fhir.CodeableConcept{
			Coding: []fhir.Coding{{
				System: fhir.SystemConditionClinical,
				Code:   "active",
			}},
		},
		"category": []fhir.CodeableConcept{{
			Coding: []fhir.Coding{{
				System:  fhir.SystemCDESMConditionCategory,
				Code:    string(c.Category),
				Display: fhir.TitleCase(string(c.Category)),
			}},
		}},
		"code":    fhir.CodeableConcept{Coding: coding, Text: c.DisplayName},
		"subject": fhir.Reference{Reference: fhir.FormatReference("Patient", patientID.String())},
	}

	if c.Severity != nil {
		result["severity"] = fhir.CodeableConcept{
			Coding: []fhir.Coding{fhir.SeverityCoding(string(*c.Severity))},
		}
	}
	if c.OnsetDate != nil {
		result["onsetDateTime"] = c.OnsetDate.Format(time.RFC3339)
	}

	return result, nil
}
