// Package condition holds the coded medical condition model and its FHIR
// Condition conversion.
package condition

import (
	"time"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/internal/platform/fhir"
	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

// Condition is a medical condition carrying ICD-10-CM and SNOMED CT codes.
// At least one of the two codes must be present.
type Condition struct {
	ID           uuid.UUID                    `json:"id"`
	ICD10Code    string                       `json:"icd10_code,omitempty"`
	SNOMEDCode   string                       `json:"snomed_code,omitempty"`
	DisplayName  string                       `json:"display_name"`
	Category     cdesmodels.ConditionCategory `json:"category"`
	Severity     *cdesmodels.Severity         `json:"severity,omitempty"`
	OnsetDate    *time.Time                   `json:"onset_date,omitempty"`
	IsQualifying bool                         `json:"is_qualifying"`
}

// New validates c, assigns an id when absent, and returns the constructed value.
func New(c Condition) (*Condition, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return &c, nil
}

func (c *Condition) Validate() error {
	if c.ICD10Code == "" && c.SNOMEDCode == "" {
		return cdesmodels.NewValidationError("icd10_code", "at least one of icd10_code or snomed_code is required")
	}
	if c.ICD10Code != "" && !fhir.ValidICD10(c.ICD10Code) {
		return cdesmodels.NewValidationError("icd10_code", "must match the ICD-10-CM pattern, e.g. J44.9")
	}
	if c.SNOMEDCode != "" && !fhir.ValidSNOMED(c.SNOMEDCode) {
		return cdesmodels.NewValidationError("snomed_code", "must be a numeric SNOMED CT concept id")
	}
	if c.DisplayName == "" {
		return cdesmodels.NewValidationError("display_name", "is required")
	}
	if !c.Category.Valid() {
		return cdesmodels.NewValidationError("category", "unknown condition category: "+string(c.Category))
	}
	if c.Severity != nil && !c.Severity.Valid() {
		return cdesmodels.NewValidationError("severity", "unknown severity: "+string(*c.Severity))
	}
	return nil
}
