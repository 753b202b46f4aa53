// Package provider holds the licensed-provider domain model and its FHIR
// Practitioner conversion.
package provider

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/internal/platform/fhir"
	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

// MMJCertification is a provider's state MMJ recommending certification.
type MMJCertification struct {
	State                 string    `json:"state"`
	CertificationNumber   string    `json:"certification_number"`
	Expiration            time.Time `json:"expiration"`
	AuthorizedToRecommend bool      `json:"authorized_to_recommend"`
}

// Contact holds optional provider contact points.
type Contact struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Fax   string `json:"fax,omitempty"`
}

// Provider is a licensed healthcare provider authorized to recommend cannabis.
// Instances are immutable once constructed; updates build a new value.
type Provider struct {
	ID                uuid.UUID              `json:"id"`
	NPI               string                 `json:"npi"`
	LicenseNumber     string                 `json:"license_number"`
	LicenseState      string                 `json:"license_state"`
	LicenseType       cdesmodels.LicenseType `json:"license_type"`
	LicenseExpiration time.Time              `json:"license_expiration"`
	DEANumber         *string                `json:"dea_number,omitempty"`
	MMJCertification  *MMJCertification      `json:"mmj_certification,omitempty"`
	Specialty         []string               `json:"specialty"`
	Organization      *string                `json:"organization,omitempty"`
	Contact           *Contact               `json:"contact,omitempty"`
	TOSAccepted       time.Time              `json:"tos_accepted"`
	BAASigned         time.Time              `json:"baa_signed"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// New validates p, assigns an id when absent, and returns the constructed
// value. The input is not retained.
func New(p Provider) (*Provider, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
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

// Validate checks every field-format rule. It reports the first violation
// as a *cdesmodels.ValidationError and never mutates p.
func (p *Provider) Validate() error {
	if !fhir.ValidNPIFormat(p.NPI) {
		return cdesmodels.NewValidationError("npi", "must be exactly 10 digits")
	}
	if p.LicenseNumber == "" {
		return cdesmodels.NewValidationError("license_number", "is required")
	}
	if !fhir.ValidStateCode(p.LicenseState) {
		return cdesmodels.NewValidationError("license_state", "must be a two-letter uppercase state code")
	}
	if !p.LicenseType.Valid() {
		return cdesmodels.NewValidationError("license_type", "unknown license type: "+string(p.LicenseType))
	}
	if p.LicenseExpiration.IsZero() {
		return cdesmodels.NewValidationError("license_expiration", "is required")
	}
	if p.TOSAccepted.IsZero() {
		return cdesmodels.NewValidationError("tos_accepted", "is required")
	}
	if p.BAASigned.IsZero() {
		return cdesmodels.NewValidationError("baa_signed", "is required")
	}
	if p.Contact != nil && p.Contact.Email != "" && !strings.Contains(p.Contact.Email, "@") {
		return cdesmodels.NewValidationError("contact.email", "must be an email address")
	}
	if p.MMJCertification != nil && !fhir.ValidStateCode(p.MMJCertification.State) {
		return cdesmodels.NewValidationError("mmj_certification.state", "must be a two-letter uppercase state code")
	}
	return nil
}
