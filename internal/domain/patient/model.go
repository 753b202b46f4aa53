// Package patient holds the patient domain model (PHI) and its FHIR Patient
// conversion.
package patient

import (
	"time"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/internal/platform/fhir"
	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

// CannabisHistory captures prior cannabis use.
type CannabisHistory struct {
	ExperienceLevel  cdesmodels.ExperienceLevel     `json:"experience_level"`
	PreferredMethods []cdesmodels.ConsumptionMethod `json:"preferred_methods,omitempty"`
	ThcTolerance     cdesmodels.ThcTolerance        `json:"thc_tolerance"`
	Sensitivities    []string                       `json:"sensitivities,omitempty"`
	PreviousStrains  []string                       `json:"previous_strains,omitempty"`
}

// TerpeneFingerprint is the patient's personalized terpene response profile:
// observed proportions per terpene plus categorized responses.
type TerpeneFingerprint struct {
	Proportions     map[string]float64 `json:"proportions,omitempty"`
	PositiveEffects []string           `json:"positive_effects,omitempty"`
	NegativeEffects []string           `json:"negative_effects,omitempty"`
	Neutral         []string           `json:"neutral,omitempty"`
}

// Consent holds the patient's consent preferences. The flags gate
// downstream use by policy; they are never mapped to a FHIR Consent
// resource.
type Consent struct {
	DataSharing           bool      `json:"data_sharing"`
	ResearchParticipation bool      `json:"research_participation"`
	EfficacyTracking      bool      `json:"efficacy_tracking"`
	FHIRExport            bool      `json:"fhir_export"`
	ConsentDate           time.Time `json:"consent_date"`
	ConsentVersion        string    `json:"consent_version"`
}

// Patient is a patient receiving cannabis recommendations. All fields are
// PHI; instances are immutable once constructed.
type Patient struct {
	ID                 uuid.UUID           `json:"id"`
	MRN                string              `json:"mrn,omitempty"`
	MMJCardNumber      string              `json:"mmj_card_number,omitempty"`
	MMJCardState       string              `json:"mmj_card_state,omitempty"`
	MMJCardExpiration  *time.Time          `json:"mmj_card_expiration,omitempty"`
	BirthDate          *time.Time          `json:"birth_date,omitempty"`
	Gender             string              `json:"gender,omitempty"`
	ZipCode            string              `json:"zip_code,omitempty"`
	ConditionIDs       []uuid.UUID         `json:"condition_ids,omitempty"`
	Allergies          []string            `json:"allergies,omitempty"`
	CannabisHistory    *CannabisHistory    `json:"cannabis_history,omitempty"`
	TerpeneFingerprint *TerpeneFingerprint `json:"terpene_fingerprint,omitempty"`
	Consent            Consent             `json:"consent"`
	PrimaryProviderID  *uuid.UUID          `json:"primary_provider_id,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// administrativeGenders is the FHIR R4 administrative-gender value set.
var administrativeGenders = map[string]bool{
	"male": true, "female": true, "other": true, "unknown": true,
}

// New validates p, assigns an id when absent, and returns the constructed value.
func New(p Patient) (*Patient, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Consent.ConsentVersion == "" {
		p.Consent.ConsentVersion = "1.0"
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	return &p, nil
}

func (p *Patient) Validate() error {
	if p.MMJCardState != "" && !fhir.ValidStateCode(p.MMJCardState) {
		return cdesmodels.NewValidationError("mmj_card_state", "must be a two-letter uppercase state code")
	}
	if p.Gender != "" && !administrativeGenders[p.Gender] {
		return cdesmodels.NewValidationError("gender", "must be one of male, female, other, unknown")
	}
	if p.Consent.ConsentDate.IsZero() {
		return cdesmodels.NewValidationError("consent.consent_date", "is required")
	}
	if h := p.CannabisHistory; h != nil {
		if !h.ExperienceLevel.Valid() {
			return cdesmodels.NewValidationError("cannabis_history.experience_level",
				"unknown experience level: "+string(h.ExperienceLevel))
		}
		if !h.ThcTolerance.Valid() {
			return cdesmodels.NewValidationError("cannabis_history.thc_tolerance",
				"unknown THC tolerance: "+string(h.ThcTolerance))
		}
		for _, m := range h.PreferredMethods {
			if !m.Valid() {
				return cdesmodels.NewValidationError("cannabis_history.preferred_methods",
					"unknown consumption method: "+string(m))
			}
		}
	}
	if f := p.TerpeneFingerprint; f != nil {
		for name, v := range f.Proportions {
			if v < 0 || v > 1 {
				return cdesmodels.NewValidationError("terpene_fingerprint.proportions",
					"proportion for "+name+" must be between 0 and 1")
			}
		}
	}
	return nil
}
