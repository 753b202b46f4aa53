package message

import (
	"github.com/acidni-llc/cdes-m/internal/platform/fhir"
	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

// ToFHIR converts the message to a FHIR R4 Communication resource. The
// output is deterministic for equal inputs.
func (m *Message) ToFHIR() (map[string]interface{}, error) {
	status := "in-progress"
	if m.Status == cdesmodels.MessageRead {
		status = "completed"
	}

	resource := map[string]interface{}{
		"resourceType": "Communication",
		"id":           m.ID.String(),
		"identifier": []fhir.Identifier{
			{System: fhir.SystemCDESM, Value: m.ID.String()},
			{
				System: fhir.SystemCDESM + "/thread",
				Value:  m.ThreadID.String(),
			},
		},
		"status":   status,
		"priority": string(m.Priority),
		"category": []fhir.CodeableConcept{{
			Coding: []fhir.Coding{{
				System: fhir.SystemCDESMMessageCategory,
				Code:   "secure-message",
			}},
		}},
		"sender":    participantReference(m.SenderType, m.SenderID.String()),
		"recipient": []fhir.Reference{participantReference(m.RecipientType, m.RecipientID.String())},
		"sent":      m.SentAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}

	if subject, ok := patientParticipant(m); ok {
		resource["subject"] = subject
	}
	if m.ReadAt != nil {
		resource["received"] = m.ReadAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	if m.Subject != "" {
		resource["topic"] = fhir.CodeableConcept{Text: m.Subject}
	}
	if m.RelatedRecommendationID != nil {
		resource["basedOn"] = []fhir.Reference{{
			Reference: fhir.FormatReference("MedicationRequest", m.RelatedRecommendationID.String()),
		}}
	}

	payload := []map[string]interface{}{
		{"contentString": m.Body},
	}
	for _, a := range m.Attachments {
		payload = append(payload, map[string]interface{}{
			"contentAttachment": fhir.Attachment{
				ContentType: a.ContentType,
				URL:         a.URL,
				Title:       a.Title,
			},
		})
	}
	resource["payload"] = payload

	return resource, nil
}

func participantReference(t cdesmodels.ParticipantType, id string) fhir.Reference {
	resourceType := "Patient"
	if t == cdesmodels.ParticipantProvider {
		resourceType = "Practitioner"
	}
	return fhir.Reference{Reference: fhir.FormatReference(resourceType, id)}
}

// patientParticipant picks the patient side of the exchange as the
// Communication subject; the recipient wins when both sides are patients.
func patientParticipant(m *Message) (fhir.Reference, bool) {
	if m.RecipientType == cdesmodels.ParticipantPatient {
		return participantReference(m.RecipientType, m.RecipientID.String()), true
	}
	if m.SenderType == cdesmodels.ParticipantPatient {
		return participantReference(m.SenderType, m.SenderID.String()), true
	}
	return fhir.Reference{}, false
}
