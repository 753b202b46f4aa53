// Package protocol holds curated treatment protocols: evidence-based
// mappings from qualifying condition categories to recommended cannabis
// profiles. Protocols are static reference data, not patient records.
package protocol

import (
	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/internal/domain/recommendation"
	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

// Reference is a literature citation backing a protocol.
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	Year  string `json:"year,omitempty"`
}

// TreatmentProtocol maps a condition category to a recommended profile.
type TreatmentProtocol struct {
	ID                 uuid.UUID                      `json:"id"`
	Name               string                         `json:"name"`
	Version            string                         `json:"version"`
	Status             string                         `json:"status"`
	ConditionCategory  cdesmodels.ConditionCategory   `json:"condition_category"`
	ICD10Codes         []string                       `json:"icd10_codes,omitempty"`
	Description        string                         `json:"description,omitempty"`
	EvidenceLevel      string                         `json:"evidence_level"`
	RecommendedProfile recommendation.TargetProfile   `json:"recommended_profile"`
	DosingGuidance     *recommendation.DosingGuidance `json:"dosing_guidance,omitempty"`
	Contraindications  []string                       `json:"contraindications,omitempty"`
	DrugInteractions   []string                       `json:"drug_interactions,omitempty"`
	References         []Reference                    `json:"references,omitempty"`
}
