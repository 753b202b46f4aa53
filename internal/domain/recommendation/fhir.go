package recommendation

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/internal/platform/fhir"
	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

// ToFHIR converts the recommendation to a FHIR R4 MedicationRequest.
// Cannabis recommendations are MedicationRequests with project coding
// rather than traditional prescriptions. The terpene and cannabinoid
// targets travel in project-defined extensions since FHIR has no native
// field for them. Output is deterministic for equal inputs; map-backed
// fields are emitted in sorted key order.
func (r *Recommendation) ToFHIR(patientID, providerID uuid.UUID) (map[string]interface{}, error) {
	if r.PatientID == uuid.Nil && patientID == uuid.Nil {
		return nil, cdesmodels.NewConversionError("Recommendation", "patient_id")
	}
	if patientID == uuid.Nil {
		patientID = r.PatientID
	}
	if providerID == uuid.Nil {
		providerID = r.ProviderID
	}
	if providerID == uuid.Nil {
		return nil, cdesmodels.NewConversionError("Recommendation", "provider_id")
	}

	resource := map[string]interface{}{
		"resourceType": "MedicationRequest",
		"id":           r.ID.String(),
		"identifier": []fhir.Identifier{
			{System: fhir.SystemCDESM, Value: r.ID.String()},
		},
		"status": fhirCode(string(r.Status)),
		"intent": fhirCode(string(r.Intent)),
		"category": []fhir.CodeableConcept{{
			Coding: []fhir.Coding{{
				System:  fhir.SystemCDESM,
				Code:    "cannabis-recommendation",
				Display: "Cannabis Recommendation",
			}},
		}},
		"medicationCodeableConcept": r.medicationConcept(),
		"subject": fhir.Reference{
			Reference: fhir.FormatReference("Patient", patientID.String()),
		},
		"requester": fhir.Reference{
			Reference: fhir.FormatReference("Practitioner", providerID.String()),
		},
	}

	if ext := r.extensions(); len(ext) > 0 {
		resource["extension"] = ext
	}
	if len(r.ConditionIDs) > 0 {
		reasons := make([]fhir.Reference, 0, len(r.ConditionIDs))
		for _, cid := range r.ConditionIDs {
			reasons = append(reasons, fhir.Reference{
				Reference: fhir.FormatReference("Condition", cid.String()),
			})
		}
		resource["reasonReference"] = reasons
	}
	if dosage := r.dosageInstruction(); dosage != nil {
		resource["dosageInstruction"] = dosage
	}
	if r.Rationale != "" {
		resource["note"] = []map[string]interface{}{{"text": r.Rationale}}
	}
	if r.ValidFrom != nil || r.ValidUntil != nil {
		resource["dispenseRequest"] = map[string]interface{}{
			"validityPeriod": fhir.Period{Start: r.ValidFrom, End: r.ValidUntil},
		}
	}
	return resource, nil
}

// fhirCode renders an enum value as a FHIR code, e.g. entered_in_error
// becomes entered-in-error.
func fhirCode(v string) string {
	return strings.ReplaceAll(v, "_", "-")
}

func (r *Recommendation) medicationConcept() fhir.CodeableConcept {
	text := "Custom cannabis profile"
	if terpenes := sortedKeys(r.TargetProfile.TerpeneProfile); len(terpenes) > 0 {
		text = "Cannabis profile with target terpenes: " + strings.Join(terpenes, ", ")
	}
	return fhir.CodeableConcept{
		Coding: []fhir.Coding{{
			System:  fhir.SystemCDESMTerpeneProfile,
			Code:    "custom-profile",
			Display: "Custom Cannabis Profile",
		}},
		Text: text,
	}
}

// extensions emits the terpene-profile extension (one sub-extension per
// terpene, valueDecimal carrying the exact proportion) and, when targets
// exist, the cannabinoid-targets extension.
func (r *Recommendation) extensions() []fhir.Extension {
	var out []fhir.Extension
	if tp := r.TargetProfile.TerpeneProfile; len(tp) > 0 {
		sub := make([]fhir.Extension, 0, len(tp))
		for _, name := range sortedKeys(tp) {
			v := tp[name]
			sub = append(sub, fhir.Extension{URL: name, ValueDecimal: &v})
		}
		out = append(out, fhir.Extension{
			URL:       fhir.ExtensionTerpeneProfile,
			Extension: sub,
		})
	}
	if ct := r.TargetProfile.CannabinoidTargets; ct != nil {
		var sub []fhir.Extension
		for _, entry := range []struct {
			url string
			val *float64
		}{
			{"thc-min", ct.ThcMin}, {"thc-max", ct.ThcMax},
			{"cbd-min", ct.CbdMin}, {"cbd-max", ct.CbdMax},
		} {
			if entry.val != nil {
				sub = append(sub, fhir.Extension{URL: entry.url, ValueDecimal: entry.val})
			}
		}
		if ct.RatioThcCbd != "" {
			sub = append(sub, fhir.Extension{URL: "ratio-thc-cbd", ValueString: ct.RatioThcCbd})
		}
		if len(sub) > 0 {
			out = append(out, fhir.Extension{
				URL:       fhir.ExtensionCannabinoidTargets,
				Extension: sub,
			})
		}
	}
	return out
}

// dosageInstruction folds DosingGuidance into a FHIR dosage block. Doses
// stay as the provider wrote them ("2.5mg", "one dropper"); they are
// display text, not quantities.
func (r *Recommendation) dosageInstruction() []map[string]interface{} {
	dg := r.DosingGuidance
	if dg == nil {
		return nil
	}
	dosage := map[string]interface{}{}
	if dg.Route != nil {
		dosage["route"] = fhir.CodeableConcept{
			Coding: []fhir.Coding{{
				System:  fhir.SystemCDESMConsumptionMethod,
				Code:    string(*dg.Route),
				Display: fhir.TitleCase(string(*dg.Route)),
			}},
		}
	}
	if dg.Frequency != "" {
		dosage["timing"] = map[string]interface{}{
			"code": map[string]interface{}{"text": dg.Frequency},
		}
	}
	var doseText []string
	if dg.DoseLow != "" && dg.DoseHigh != "" {
		doseText = append(doseText, dg.DoseLow+" to "+dg.DoseHigh)
	} else if dg.DoseLow != "" {
		doseText = append(doseText, dg.DoseLow)
	} else if dg.DoseHigh != "" {
		doseText = append(doseText, "up to "+dg.DoseHigh)
	}
	if dg.MaxDaily != "" {
		doseText = append(doseText, "maximum "+dg.MaxDaily+" daily")
	}
	if len(doseText) > 0 {
		dosage["text"] = strings.Join(doseText, "; ")
	}
	var instructions []string
	if dg.TitrationInstructions != "" {
		instructions = append(instructions, dg.TitrationInstructions)
	}
	if dg.SpecialInstructions != "" {
		instructions = append(instructions, dg.SpecialInstructions)
	}
	if len(instructions) > 0 {
		dosage["patientInstruction"] = strings.Join(instructions, " ")
	}
	if len(dosage) == 0 {
		return nil
	}
	return []map[string]interface{}{dosage}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
