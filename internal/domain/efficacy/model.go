// Package efficacy holds patient-reported outcome reports and their FHIR
// Observation conversion.
package efficacy

import (
	"time"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

// Effectiveness carries the patient's ratings for a recommendation.
// OverallRating is required and bounded 1 to 5.
type Effectiveness struct {
	OverallRating  int      `json:"overall_rating"`
	SymptomRelief  *int     `json:"symptom_relief,omitempty"`
	DurationHours  *float64 `json:"duration_hours,omitempty"`
	OnsetMinutes   *float64 `json:"onset_minutes,omitempty"`
	WouldUseAgain  *bool    `json:"would_use_again,omitempty"`
	WouldRecommend *bool    `json:"would_recommend,omitempty"`
}

// SymptomScore tracks one symptom before and after treatment. Before and
// after are 0 to 10; improvement is -10 to 10.
type SymptomScore struct {
	ConditionID *uuid.UUID `json:"condition_id,omitempty"`
	Symptom     string     `json:"symptom"`
	ScoreBefore int        `json:"score_before"`
	ScoreAfter  int        `json:"score_after"`
	Improvement int        `json:"improvement"`
}

// SideEffectReport is one reported side effect with its severity.
type SideEffectReport struct {
	Effect        cdesmodels.SideEffect `json:"effect"`
	Severity      cdesmodels.Severity   `json:"severity"`
	DurationHours *float64              `json:"duration_hours,omitempty"`
	Notes         string                `json:"notes,omitempty"`
}

// Report is a patient-reported outcome for a recommendation.
type Report struct {
	ID               uuid.UUID          `json:"id"`
	PatientID        uuid.UUID          `json:"patient_id"`
	RecommendationID uuid.UUID          `json:"recommendation_id"`
	LOINCCode        string             `json:"loinc_code,omitempty"`
	ObservedEffect   string             `json:"observed_effect,omitempty"`
	Effectiveness    Effectiveness      `json:"effectiveness"`
	SymptomScores    []SymptomScore     `json:"symptom_scores,omitempty"`
	SideEffects      []SideEffectReport `json:"side_effects,omitempty"`
	Notes            string             `json:"notes,omitempty"`
	ReportedBy       string             `json:"reported_by"`
	ReportedAt       time.Time          `json:"reported_at"`
}

// New validates r, applies defaults, and returns the constructed value.
func New(r Report) (*Report, error) {
	if r.ReportedBy == "" {
		r.ReportedBy = "patient"
	}
	if r.ReportedAt.IsZero() {
		r.ReportedAt = time.Now().UTC()
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return &r, nil
}

func (r *Report) Validate() error {
	if r.PatientID == uuid.Nil {
		return cdesmodels.NewValidationError("patient_id", "is required")
	}
	if r.RecommendationID == uuid.Nil {
		return cdesmodels.NewValidationError("recommendation_id", "is required")
	}
	if r.Effectiveness.OverallRating < 1 || r.Effectiveness.OverallRating > 5 {
		return cdesmodels.NewValidationError("effectiveness.overall_rating", "must be between 1 and 5")
	}
	if sr := r.Effectiveness.SymptomRelief; sr != nil && (*sr < 1 || *sr > 5) {
		return cdesmodels.NewValidationError("effectiveness.symptom_relief", "must be between 1 and 5")
	}
	for _, s := range r.SymptomScores {
		if s.Symptom == "" {
			return cdesmodels.NewValidationError("symptom_scores.symptom", "is required")
		}
		if s.ScoreBefore < 0 || s.ScoreBefore > 10 {
			return cdesmodels.NewValidationError("symptom_scores.score_before", "must be between 0 and 10")
		}
		if s.ScoreAfter < 0 || s.ScoreAfter > 10 {
			return cdesmodels.NewValidationError("symptom_scores.score_after", "must be between 0 and 10")
		}
		if s.Improvement < -10 || s.Improvement > 10 {
			return cdesmodels.NewValidationError("symptom_scores.improvement", "must be between -10 and 10")
		}
	}
	for _, se := range r.SideEffects {
		if !se.Effect.Valid() {
			return cdesmodels.NewValidationError("side_effects.effect",
				"unknown side effect: "+string(se.Effect))
		}
		if !se.Severity.Valid() {
			return cdesmodels.NewValidationError("side_effects.severity",
				"unknown severity: "+string(se.Severity))
		}
	}
	return nil
}
