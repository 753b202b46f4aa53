package cdesmodels

import "fmt"

// ValidationError reports a field that failed its format, enumeration, or
// range rule at construction time. The entity is never partially built.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Rule)
}

// NewValidationError creates a ValidationError for the given field and rule.
func NewValidationError(field, rule string) *ValidationError {
	return &ValidationError{Field: field, Rule: rule}
}

// ConversionError reports that a FHIR resource could not be produced because
// a required source field is absent or unmappable. No partial resource is
// ever returned alongside it.
type ConversionError struct {
	EntityKind   string
	MissingField string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s to FHIR: missing %s", e.EntityKind, e.MissingField)
}

// NewConversionError creates a ConversionError for the given entity kind and field.
func NewConversionError(entityKind, missingField string) *ConversionError {
	return &ConversionError{EntityKind: entityKind, MissingField: missingField}
}
