package patient

import (
	"github.com/acidni-llc/cdes-m/internal/platform/fhir"
)

// ToFHIR converts the patient to a FHIR R4 Patient resource. The output is
// deterministic for equal inputs. Consent flags are deliberately not mapped;
// callers enforce them before export.
func (p *Patient) ToFHIR() (map[string]interface{}, error) {
	identifiers := []fhir.Identifier{
		{System: fhir.SystemCDESM, Value: p.ID.String()},
	}
	if p.MRN != "" {
		identifiers = append(identifiers, fhir.Identifier{
			System: fhir.SystemMRN,
			Type: &fhir.CodeableConcept{
				Coding: []fhir.Coding{{
					System:  fhir.SystemIdentifierType,
					Code:    "MR",
					Display: "Medical Record Number",
				}},
			},
			Value: p.MRN,
		})
	}
	if p.MMJCardNumber != "" && p.MMJCardState != "" {
		card := fhir.Identifier{
			System: fhir.MMJRegistrySystem(p.MMJCardState),
			Value:  p.MMJCardNumber,
			Type: &fhir.CodeableConcept{
				Coding: []fhir.Coding{{System: fhir.SystemCDESM, Code: "MMJ-CARD"}},
			},
		}
		if p.MMJCardExpiration != nil {
			card.Period = &fhir.Period{End: p.MMJCardExpiration}
		}
		identifiers = append(identifiers, card)
	}

	resource := map[string]interface{}{
		"resourceType": "Patient",
		"id":           p.ID.String(),
		"identifier":   identifiers,
		"active":       true,
	}
	if p.Gender != "" {
		resource["gender"] = p.Gender
	}
	if p.BirthDate != nil {
		resource["birthDate"] = p.BirthDate.Format("2006-01-02")
	}
	if p.ZipCode != "" {
		resource["address"] = []fhir.Address{{PostalCode: p.ZipCode}}
	}
	if p.PrimaryProviderID != nil {
		resource["generalPractitioner"] = []fhir.Reference{{
			Reference: fhir.FormatReference("Practitioner", p.PrimaryProviderID.String()),
		}}
	}
	return resource, nil
}
