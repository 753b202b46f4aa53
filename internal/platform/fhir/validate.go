package fhir

import "regexp"

var (
	npiPattern    = regexp.MustCompile(`^[0-9]{10}$`)
	icd10Pattern  = regexp.MustCompile(`^[A-Z][0-9]{2}(\.[0-9A-Z]{1,4})?$`)
	statePattern  = regexp.MustCompile(`^[A-Z]{2}$`)
	numericString = regexp.MustCompile(`^[0-9]+$`)
)

// ValidNPIFormat reports whether s has the NPI lexical form: exactly ten
// ASCII digits.
func ValidNPIFormat(s string) bool {
	return npiPattern.MatchString(s)
}

// ValidNPICheckDigit reports whether s is a ten-digit NPI whose final digit
// satisfies the Luhn check over the number prefixed with the 80840 card
// issuer constant. Callers that only need the registry's lexical form use
// ValidNPIFormat instead.
func ValidNPICheckDigit(s string) bool {
	if !npiPattern.MatchString(s) {
		return false
	}
	full := "80840" + s
	sum := 0
	double := false
	for i := len(full) - 1; i >= 0; i-- {
		d := int(full[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ValidICD10 reports whether s matches the ICD-10-CM lexical pattern:
// a letter, two digits, and an optional dot-separated subcategory.
func ValidICD10(s string) bool {
	return icd10Pattern.MatchString(s)
}

// ValidSNOMED reports whether s is a non-empty numeric SNOMED CT concept id.
func ValidSNOMED(s string) bool {
	return numericString.MatchString(s)
}

// ValidStateCode reports whether s is a two-letter uppercase US state code.
func ValidStateCode(s string) bool {
	return statePattern.MatchString(s)
}
