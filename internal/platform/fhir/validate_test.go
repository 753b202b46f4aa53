package fhir

import "testing"

func TestValidNPIFormat(t *testing.T) {
	valid := []string{"1234567890", "0000000000", "1497758544"}
	for _, s := range valid {
		if !ValidNPIFormat(s) {
			t.Errorf("ValidNPIFormat(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "123456789", "12345678901", "12345678a0", "1234-56789"}
	for _, s := range invalid {
		if ValidNPIFormat(s) {
			t.Errorf("ValidNPIFormat(%q) = true, want false", s)
		}
	}
}

func TestValidNPICheckDigit(t *testing.T) {
	// 1234567893 is the NPI check-digit worked example from the CMS spec.
	if !ValidNPICheckDigit("1234567893") {
		t.Error("ValidNPICheckDigit(1234567893) = false, want true")
	}
	if ValidNPICheckDigit("1234567890") {
		t.Error("ValidNPICheckDigit(1234567890) = true, want false")
	}
	if ValidNPICheckDigit("123456789") {
		t.Error("ValidNPICheckDigit should reject short input")
	}
}

func TestValidICD10(t *testing.T) {
	valid := []string{"J44.9", "G89.4", "F41.1", "C50", "M54.50", "T50.9X5"}
	for _, s := range valid {
		if !ValidICD10(s) {
			t.Errorf("ValidICD10(%q) = false, want true", s)
		}
	}
	invalid := []string{"44.9", "J4", "j44.9", "J44.", "J44.99999", ""}
	for _, s := range invalid {
		if ValidICD10(s) {
			t.Errorf("ValidICD10(%q) = true, want false", s)
		}
	}
}

func TestValidSNOMED(t *testing.T) {
	if !ValidSNOMED("13645005") {
		t.Error("ValidSNOMED(13645005) = false, want true")
	}
	for _, s := range []string{"", "1364500a", "13645-005"} {
		if ValidSNOMED(s) {
			t.Errorf("ValidSNOMED(%q) = true, want false", s)
		}
	}
}

func TestValidStateCode(t *testing.T) {
	if !ValidStateCode("FL") {
		t.Error("ValidStateCode(FL) = false, want true")
	}
	for _, s := range []string{"fl", "FLA", "F", ""} {
		if ValidStateCode(s) {
			t.Errorf("ValidStateCode(%q) = true, want false", s)
		}
	}
}

func TestSeverityCoding(t *testing.T) {
	if c := SeverityCoding("mild"); c.Code != "255604002" {
		t.Errorf("mild = %s, want 255604002", c.Code)
	}
	if c := SeverityCoding("severe"); c.Code != "24484000" {
		t.Errorf("severe = %s, want 24484000", c.Code)
	}
	// unknown falls back to moderate
	if c := SeverityCoding("extreme"); c.Code != "6736007" {
		t.Errorf("fallback = %s, want 6736007", c.Code)
	}
	if c := SeverityCoding("Moderate"); c.Code != "6736007" {
		t.Errorf("case-insensitive lookup failed: %s", c.Code)
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"chronic_pain":    "Chronic Pain",
		"inhalation_vape": "Inhalation Vape",
		"md":              "Md",
		"":                "",
		"appetite_loss":   "Appetite Loss",
	}
	for in, want := range cases {
		if got := TitleCase(in); got != want {
			t.Errorf("TitleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatReference(t *testing.T) {
	if got := FormatReference("Patient", "abc"); got != "Patient/abc" {
		t.Errorf("FormatReference = %q", got)
	}
}

func TestStateSystems(t *testing.T) {
	if got := StateLicenseSystem("FL"); got != "https://license.fl.gov" {
		t.Errorf("StateLicenseSystem = %q", got)
	}
	if got := MMJRegistrySystem("CO"); got != "https://mmj.co.gov" {
		t.Errorf("MMJRegistrySystem = %q", got)
	}
}
