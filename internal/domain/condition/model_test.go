package condition

import (
	"errors"
	"testing"

	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

func validCondition() Condition {
	return Condition{
		ICD10Code:    "J44.9",
		SNOMEDCode:   "13645005",
		DisplayName:  "COPD",
		Category:     cdesmodels.CategoryChronicPain,
		IsQualifying: true,
	}
}

func TestNewValidCondition(t *testing.T) {
	c, err := New(validCondition())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if c.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected a generated id")
	}
}

func TestICD10Pattern(t *testing.T) {
	good := []string{"J44.9", "G89.4", "F41.1", "C50"}
	for _, code := range good {
		c := validCondition()
		c.ICD10Code = code
		if _, err := New(c); err != nil {
			t.Errorf("icd10=%q: unexpected error: %v", code, err)
		}
	}

	bad := []string{"44.9", "J4", "j44.9", "J44."}
	for _, code := range bad {
		c := validCondition()
		c.ICD10Code = code
		_, err := New(c)
		var ve *cdesmodels.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("icd10=%q: expected *ValidationError, got %v", code, err)
			continue
		}
		if ve.Field != "icd10_code" {
			t.Errorf("Field = %q, want icd10_code", ve.Field)
		}
	}
}

func TestSNOMEDNumeric(t *testing.T) {
	c := validCondition()
	c.SNOMEDCode = "1364500a"
	_, err := New(c)
	var ve *cdesmodels.ValidationError
	if !errors.As(err, &ve) || ve.Field != "snomed_code" {
		t.Errorf("expected ValidationError on snomed_code, got %v", err)
	}
}

func TestAtLeastOneCodeRequired(t *testing.T) {
	c := validCondition()
	c.ICD10Code = ""
	c.SNOMEDCode = ""
	if _, err := New(c); err == nil {
		t.Error("expected error when both codes are missing")
	}

	// either code alone is fine
	icdOnly := validCondition()
	icdOnly.SNOMEDCode = ""
	if _, err := New(icdOnly); err != nil {
		t.Errorf("icd10 alone should be valid: %v", err)
	}
	snomedOnly := validCondition()
	snomedOnly.ICD10Code = ""
	if _, err := New(snomedOnly); err != nil {
		t.Errorf("snomed alone should be valid: %v", err)
	}
}

func TestCategoryClosure(t *testing.T) {
	c := validCondition()
	c.Category = "respiratory"
	_, err := New(c)
	var ve *cdesmodels.ValidationError
	if !errors.As(err, &ve) || ve.Field != "category" {
		t.Errorf("expected ValidationError on category, got %v", err)
	}
}

func TestDisplayNameRequired(t *testing.T) {
	c := validCondition()
	c.DisplayName = ""
	if _, err := New(c); err == nil {
		t.Error("expected error for missing display_name")
	}
}
