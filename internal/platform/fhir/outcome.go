package fhir

// Issue severities per FHIR R4.
const (
	IssueSeverityFatal       = "fatal"
	IssueSeverityError       = "error"
	IssueSeverityWarning     = "warning"
	IssueSeverityInformation = "information"
)

// Issue type codes per FHIR R4 (subset used by this server).
const (
	IssueTypeInvalid     = "invalid"
	IssueTypeStructure   = "structure"
	IssueTypeRequired    = "required"
	IssueTypeValue       = "value"
	IssueTypeNotFound    = "not-found"
	IssueTypeProcessing  = "processing"
	IssueTypeException   = "exception"
	IssueTypeSecurity    = "security"
	IssueTypeCodeInvalid = "code-invalid"
)

// OperationOutcome represents a FHIR OperationOutcome for errors.
type OperationOutcome struct {
	ResourceType string                  `json:"resourceType"`
	Issue        []OperationOutcomeIssue `json:"issue"`
}

type OperationOutcomeIssue struct {
	Severity    string           `json:"severity"`
	Code        string           `json:"code"`
	Details     *CodeableConcept `json:"details,omitempty"`
	Diagnostics string           `json:"diagnostics,omitempty"`
	Expression  []string         `json:"expression,omitempty"`
}

func NewOperationOutcome(severity, code, diagnostics string) *OperationOutcome {
	return &OperationOutcome{
		ResourceType: "OperationOutcome",
		Issue: []OperationOutcomeIssue{
			{
				Severity:    severity,
				Code:        code,
				Diagnostics: diagnostics,
			},
		},
	}
}

func ErrorOutcome(diagnostics string) *OperationOutcome {
	return NewOperationOutcome(IssueSeverityError, IssueTypeProcessing, diagnostics)
}

func NotFoundOutcome(resourceType, id string) *OperationOutcome {
	return NewOperationOutcome(IssueSeverityError, IssueTypeNotFound, resourceType+"/"+id+" not found")
}

// ValidationOutcome renders a construction-time validation failure as an
// OperationOutcome pointing at the offending field.
func ValidationOutcome(field, rule string) *OperationOutcome {
	oo := NewOperationOutcome(IssueSeverityError, IssueTypeValue, rule)
	oo.Issue[0].Expression = []string{field}
	return oo
}
