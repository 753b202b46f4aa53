package patient

import (
	"errors"
	"testing"
	"time"

	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

func validPatient() Patient {
	birth := time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC)
	exp := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	return Patient{
		MRN:               "MR-1001",
		MMJCardNumber:     "P12345678",
		MMJCardState:      "FL",
		MMJCardExpiration: &exp,
		BirthDate:         &birth,
		Gender:            "female",
		ZipCode:           "33101",
		Allergies:         []string{"sulfa"},
		CannabisHistory: &CannabisHistory{
			ExperienceLevel: cdesmodels.ExperienceNovice,
			ThcTolerance:    cdesmodels.ToleranceLow,
			PreferredMethods: []cdesmodels.ConsumptionMethod{
				cdesmodels.MethodOralTincture,
			},
		},
		TerpeneFingerprint: &TerpeneFingerprint{
			Proportions:     map[string]float64{"myrcene": 0.8, "limonene": 0.2},
			PositiveEffects: []string{"myrcene"},
		},
		Consent: Consent{
			DataSharing:      true,
			EfficacyTracking: true,
			FHIRExport:       true,
			ConsentDate:      time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestNewAssignsIDAndConsentVersion(t *testing.T) {
	p, err := New(validPatient())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected generated id")
	}
	if p.Consent.ConsentVersion != "1.0" {
		t.Errorf("consent version = %q, want 1.0", p.Consent.ConsentVersion)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Patient)
		field  string
	}{
		{"lowercase card state", func(p *Patient) { p.MMJCardState = "fl" }, "mmj_card_state"},
		{"bad gender", func(p *Patient) { p.Gender = "nonbinary" }, "gender"},
		{"missing consent date", func(p *Patient) { p.Consent.ConsentDate = time.Time{} }, "consent.consent_date"},
		{"bad experience level", func(p *Patient) {
			p.CannabisHistory.ExperienceLevel = "expert"
		}, "cannabis_history.experience_level"},
		{"bad tolerance", func(p *Patient) {
			p.CannabisHistory.ThcTolerance = "extreme"
		}, "cannabis_history.thc_tolerance"},
		{"bad preferred method", func(p *Patient) {
			p.CannabisHistory.PreferredMethods = []cdesmodels.ConsumptionMethod{"snorting"}
		}, "cannabis_history.preferred_methods"},
		{"proportion above one", func(p *Patient) {
			p.TerpeneFingerprint.Proportions["myrcene"] = 1.5
		}, "terpene_fingerprint.proportions"},
		{"negative proportion", func(p *Patient) {
			p.TerpeneFingerprint.Proportions["limonene"] = -0.1
		}, "terpene_fingerprint.proportions"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPatient()
			tc.mutate(&p)
			_, err := New(p)
			var ve *cdesmodels.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tc.field {
				t.Errorf("field = %q, want %q", ve.Field, tc.field)
			}
		})
	}
}

func TestValidateOptionalFieldsMayBeEmpty(t *testing.T) {
	p := Patient{
		Consent: Consent{ConsentDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	if _, err := New(p); err != nil {
		t.Fatalf("minimal patient should validate, got %v", err)
	}
}
