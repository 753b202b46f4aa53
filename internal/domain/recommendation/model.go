// Package recommendation holds provider cannabis recommendations and their
// FHIR MedicationRequest conversion.
package recommendation

import (
	"time"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

// CannabinoidTargets is a target THC/CBD range for a recommendation.
type CannabinoidTargets struct {
	ThcMin      *float64 `json:"thc_min,omitempty"`
	ThcMax      *float64 `json:"thc_max,omitempty"`
	CbdMin      *float64 `json:"cbd_min,omitempty"`
	CbdMax      *float64 `json:"cbd_max,omitempty"`
	RatioThcCbd string   `json:"ratio_thc_cbd,omitempty"`
}

// TargetProfile describes the terpene and cannabinoid profile a provider is
// recommending. Terpene proportions are in [0,1] but are not required to
// sum to 1.
type TargetProfile struct {
	TerpeneProfile     map[string]float64             `json:"terpene_profile,omitempty"`
	CannabinoidTargets *CannabinoidTargets            `json:"cannabinoid_targets,omitempty"`
	ProductCategories  []string                       `json:"product_categories,omitempty"`
	ConsumptionMethods []cdesmodels.ConsumptionMethod `json:"consumption_methods,omitempty"`
}

// DosingGuidance holds dosing instructions. Dose fields are opaque display
// strings; no numeric parsing happens anywhere downstream.
type DosingGuidance struct {
	Route                 *cdesmodels.ConsumptionMethod `json:"route,omitempty"`
	Frequency             string                        `json:"frequency,omitempty"`
	DoseLow               string                        `json:"dose_low,omitempty"`
	DoseHigh              string                        `json:"dose_high,omitempty"`
	MaxDaily              string                        `json:"max_daily,omitempty"`
	TitrationInstructions string                        `json:"titration_instructions,omitempty"`
	SpecialInstructions   string                        `json:"special_instructions,omitempty"`
}

// Recommendation is a provider's recommendation of a cannabis profile for a
// patient. Whether the referenced conditions belong to the patient is the
// caller's responsibility.
type Recommendation struct {
	ID                        uuid.UUID                       `json:"id"`
	PatientID                 uuid.UUID                       `json:"patient_id"`
	ProviderID                uuid.UUID                       `json:"provider_id"`
	Status                    cdesmodels.RecommendationStatus `json:"status"`
	Intent                    cdesmodels.RecommendationIntent `json:"intent"`
	ConditionIDs              []uuid.UUID                     `json:"condition_ids,omitempty"`
	TargetProfile             TargetProfile                   `json:"target_profile"`
	DosingGuidance            *DosingGuidance                 `json:"dosing_guidance,omitempty"`
	Rationale                 string                          `json:"rationale,omitempty"`
	ContraindicationsReviewed bool                            `json:"contraindications_reviewed"`
	DrugInteractionsReviewed  bool                            `json:"drug_interactions_reviewed"`
	ValidFrom                 *time.Time                      `json:"valid_from,omitempty"`
	ValidUntil                *time.Time                      `json:"valid_until,omitempty"`
	SignedAt                  *time.Time                      `json:"signed_at,omitempty"`
	CreatedAt                 time.Time                       `json:"created_at"`
	UpdatedAt                 time.Time                       `json:"updated_at"`
}

// New validates r, applies defaults, and returns the constructed value.
func New(r Recommendation) (*Recommendation, error) {
	if r.Status == "" {
		r.Status = cdesmodels.StatusDraft
	}
	if r.Intent == "" {
		r.Intent = cdesmodels.IntentProposal
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
	return &r, nil
}

func (r *Recommendation) Validate() error {
	if r.PatientID == uuid.Nil {
		return cdesmodels.NewValidationError("patient_id", "is required")
	}
	if r.ProviderID == uuid.Nil {
		return cdesmodels.NewValidationError("provider_id", "is required")
	}
	if !r.Status.Valid() {
		return cdesmodels.NewValidationError("status", "unknown status: "+string(r.Status))
	}
	if !r.Intent.Valid() {
		return cdesmodels.NewValidationError("intent", "unknown intent: "+string(r.Intent))
	}
	for name, v := range r.TargetProfile.TerpeneProfile {
		if v < 0 || v > 1 {
			return cdesmodels.NewValidationError("target_profile.terpene_profile",
				"proportion for "+name+" must be between 0 and 1")
		}
	}
	for _, m := range r.TargetProfile.ConsumptionMethods {
		if !m.Valid() {
			return cdesmodels.NewValidationError("target_profile.consumption_methods",
				"unknown consumption method: "+string(m))
		}
	}
	if r.DosingGuidance != nil && r.DosingGuidance.Route != nil && !r.DosingGuidance.Route.Valid() {
		return cdesmodels.NewValidationError("dosing_guidance.route",
			"unknown consumption method: "+string(*r.DosingGuidance.Route))
	}
	if r.ValidFrom != nil && r.ValidUntil != nil && r.ValidUntil.Before(*r.ValidFrom) {
		return cdesmodels.NewValidationError("valid_until", "must not precede valid_from")
	}
	return nil
}
