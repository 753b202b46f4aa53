package fhir

import "strings"

// Standard code-system and identifier-system URIs used by the conversion layer.
const (
	SystemNPI    = "http://hl7.org/fhir/sid/us-npi"
	SystemICD10  = "http://hl7.org/fhir/sid/icd-10-cm"
	SystemSNOMED = "http://snomed.info/sct"
	SystemLOINC  = "http://loinc.org"
	SystemUCUM   = "http://unitsofmeasure.org"

	SystemIdentifierType    = "http://terminology.hl7.org/CodeSystem/v2-0203"
	SystemProviderRole      = "http://terminology.hl7.org/CodeSystem/v2-0360"
	SystemConditionClinical = "http://terminology.hl7.org/CodeSystem/condition-clinical"
	SystemObservationCat    = "http://terminology.hl7.org/CodeSystem/observation-category"
	SystemDEA               = "https://www.deadiversion.usdoj.gov"
	SystemMRN               = "http://hospital.example.org/mrn"
)

// CDES-M namespace and its sub-systems.
const (
	SystemCDESM                  = "https://cdes.acidni.net/fhir/cdes-m"
	SystemCDESMConditionCategory = SystemCDESM + "/condition-category"
	SystemCDESMConsumptionMethod = SystemCDESM + "/consumption-method"
	SystemCDESMEfficacy          = SystemCDESM + "/efficacy"
	SystemCDESMTerpeneProfile    = SystemCDESM + "/terpene-profile"
	SystemCDESMSymptom           = SystemCDESM + "/symptom"
	SystemCDESMSideEffect        = SystemCDESM + "/side-effect"
	SystemCDESMMessageCategory   = SystemCDESM + "/message-category"

	// ExtensionTerpeneProfile is the project-defined extension carrying a
	// recommendation's target terpene proportions, one sub-extension per
	// terpene with valueDecimal.
	ExtensionTerpeneProfile = "https://cdes.acidni.net/fhir/StructureDefinition/terpene-profile"

	// ExtensionCannabinoidTargets carries THC/CBD target ranges.
	ExtensionCannabinoidTargets = "https://cdes.acidni.net/fhir/StructureDefinition/cannabinoid-targets"
)

// LOINCPatientReportedOutcome is the default Observation.code for efficacy
// reports when the report carries no LOINC code of its own.
const LOINCPatientReportedOutcome = "77580-4"

// StateLicenseSystem builds the identifier system for a state medical
// license, e.g. "https://license.fl.gov" for Florida.
func StateLicenseSystem(state string) string {
	return "https://license." + strings.ToLower(state) + ".gov"
}

// MMJRegistrySystem builds the identifier system for a state MMJ card
// registry, e.g. "https://mmj.fl.gov".
func MMJRegistrySystem(state string) string {
	return "https://mmj." + strings.ToLower(state) + ".gov"
}

// severitySNOMED maps CDES-M severity codes to SNOMED CT severity concepts.
var severitySNOMED = map[string]Coding{
	"mild":     {System: SystemSNOMED, Code: "255604002", Display: "Mild"},
	"moderate": {System: SystemSNOMED, Code: "6736007", Display: "Moderate"},
	"severe":   {System: SystemSNOMED, Code: "24484000", Display: "Severe"},
}

// SeverityCoding returns the SNOMED CT coding for a CDES-M severity value.
// Unknown severities fall back to moderate, matching the reference data the
// registry ships with.
func SeverityCoding(severity string) Coding {
	if c, ok := severitySNOMED[strings.ToLower(severity)]; ok {
		return c
	}
	return severitySNOMED["moderate"]
}

// TitleCase renders an enum code such as "chronic_pain" as "Chronic Pain"
// for display fields.
func TitleCase(code string) string {
	words := strings.Split(code, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
