package provider

import (
	"github.com/acidni-llc/cdes-m/internal/platform/fhir"
	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

// ToFHIR converts the provider to a FHIR R4 Practitioner. A missing DEA
// number never fails the conversion: the DEA identifier is simply omitted,
// uniformly for every license type. The transform is deterministic and
// returns nothing on error.
func (p *Provider) ToFHIR() (map[string]interface{}, error) {
	if p.NPI == "" {
		return nil, cdesmodels.NewConversionError("Provider", "npi")
	}
	if p.LicenseNumber == "" {
		return nil, cdesmodels.NewConversionError("Provider", "license_number")
	}
	if p.LicenseState == "" {
		return nil, cdesmodels.NewConversionError("Provider", "license_state")
	}

	identifiers := []fhir.Identifier{
		{
			System: fhir.SystemCDESM,
			Value:  p.ID.String(),
			Type: &fhir.CodeableConcept{
				Coding: []fhir.Coding{{System: fhir.SystemCDESM, Code: "CDES-M-ID"}},
			},
		},
		{
			System: fhir.SystemNPI,
			Value:  p.NPI,
			Type: &fhir.CodeableConcept{
				Coding: []fhir.Coding{{
					System:  fhir.SystemIdentifierType,
					Code:    "NPI",
					Display: "National Provider Identifier",
				}},
			},
		},
		{
			System: fhir.StateLicenseSystem(p.LicenseState),
			Value:  p.LicenseNumber,
			Type: &fhir.CodeableConcept{
				Coding: []fhir.Coding{{
					System:  fhir.SystemIdentifierType,
					Code:    "MD",
					Display: "Medical License number",
				}},
			},
		},
	}
	if p.DEANumber != nil && *p.DEANumber != "" {
		identifiers = append(identifiers, fhir.Identifier{
			System: fhir.SystemDEA,
			Value:  *p.DEANumber,
			Type: &fhir.CodeableConcept{
				Coding: []fhir.Coding{{
					System:  fhir.SystemIdentifierType,
					Code:    "DEA",
					Display: "DEA Registration Number",
				}},
			},
		})
	}

	qualCodings := []fhir.Coding{{
		System:  fhir.SystemProviderRole,
		Code:    string(p.LicenseType),
		Display: fhir.TitleCase(string(p.LicenseType)),
	}}
	for _, s := range p.Specialty {
		qualCodings = append(qualCodings, fhir.Coding{
			System:  fhir.SystemCDESM,
			Code:    s,
			Display: fhir.TitleCase(s),
		})
	}
	exp := p.LicenseExpiration
	qualification := []map[string]interface{}{{
		"identifier": []fhir.Identifier{{
			System: fhir.StateLicenseSystem(p.LicenseState),
			Value:  p.LicenseNumber,
		}},
		"code":   fhir.CodeableConcept{Coding: qualCodings},
		"period": fhir.Period{End: &exp},
	}}

	result := map[string]interface{}{
		"resourceType":  "Practitioner",
		"id":            p.ID.String(),
		"active":        true,
		"identifier":    identifiers,
		"qualification": qualification,
	}

	var telecom []fhir.ContactPoint
	if p.Contact != nil {
		if p.Contact.Email != "" {
			telecom = append(telecom, fhir.ContactPoint{System: "email", Value: p.Contact.Email})
		}
		if p.Contact.Phone != "" {
			telecom = append(telecom, fhir.ContactPoint{System: "phone", Value: p.Contact.Phone})
		}
		if p.Contact.Fax != "" {
			telecom = append(telecom, fhir.ContactPoint{System: "fax", Value: p.Contact.Fax})
		}
	}
	if len(telecom) > 0 {
		result["telecom"] = telecom
	}

	return result, nil
}
