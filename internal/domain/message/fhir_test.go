package message

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/internal/platform/fhir"
	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

func TestToFHIRCommunicationCore(t *testing.T) {
	m, err := New(validMessage())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	resource, err := m.ToFHIR()
	if err != nil {
		t.Fatalf("ToFHIR: %v", err)
	}

	if resource["resourceType"] != "Communication" {
		t.Fatalf("resourceType = %v", resource["resourceType"])
	}
	if resource["status"] != "in-progress" {
		t.Errorf("status = %v, want in-progress for a sent message", resource["status"])
	}
	if resource["priority"] != "routine" {
		t.Errorf("priority = %v", resource["priority"])
	}
	if resource["sent"] != "2025-04-10T14:30:00Z" {
		t.Errorf("sent = %v", resource["sent"])
	}

	sender := resource["sender"].(fhir.Reference)
	if sender.Reference != "Practitioner/"+m.SenderID.String() {
		t.Errorf("sender = %q", sender.Reference)
	}
	recipients := resource["recipient"].([]fhir.Reference)
	if len(recipients) != 1 || recipients[0].Reference != "Patient/"+m.RecipientID.String() {
		t.Errorf("recipient = %+v", recipients)
	}
	subject := resource["subject"].(fhir.Reference)
	if subject.Reference != "Patient/"+m.RecipientID.String() {
		t.Errorf("subject = %q, want the patient side", subject.Reference)
	}
	topic := resource["topic"].(fhir.CodeableConcept)
	if topic.Text != "Titration check-in" {
		t.Errorf("topic = %+v", topic)
	}

	payload := resource["payload"].([]map[string]interface{})
	if len(payload) != 1 || payload[0]["contentString"] != m.Body {
		t.Errorf("payload = %+v", payload)
	}
	if _, present := resource["received"]; present {
		t.Error("unread message should not carry received")
	}
}

func TestToFHIRReadMessageCompletes(t *testing.T) {
	v := validMessage()
	m, err := New(v)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	readAt := time.Date(2025, 4, 11, 9, 0, 0, 0, time.UTC)
	m.Status = cdesmodels.MessageRead
	m.ReadAt = &readAt

	resource, err := m.ToFHIR()
	if err != nil {
		t.Fatalf("ToFHIR: %v", err)
	}
	if resource["status"] != "completed" {
		t.Errorf("status = %v, want completed", resource["status"])
	}
	if resource["received"] != "2025-04-11T09:00:00Z" {
		t.Errorf("received = %v", resource["received"])
	}
}

func TestToFHIRAttachmentsAndBasedOn(t *testing.T) {
	v := validMessage()
	recID := uuid.New()
	v.RelatedRecommendationID = &recID
	v.Attachments = []Attachment{{
		ContentType: "application/pdf",
		URL:         "https://files.cdes.acidni.net/lab-results.pdf",
		Title:       "Lab results",
	}}
	m, err := New(v)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	resource, err := m.ToFHIR()
	if err != nil {
		t.Fatalf("ToFHIR: %v", err)
	}

	basedOn := resource["basedOn"].([]fhir.Reference)
	if len(basedOn) != 1 || basedOn[0].Reference != "MedicationRequest/"+recID.String() {
		t.Errorf("basedOn = %+v", basedOn)
	}
	payload := resource["payload"].([]map[string]interface{})
	if len(payload) != 2 {
		t.Fatalf("payload count = %d, want 2", len(payload))
	}
	att := payload[1]["contentAttachment"].(fhir.Attachment)
	if att.URL != "https://files.cdes.acidni.net/lab-results.pdf" || att.ContentType != "application/pdf" {
		t.Errorf("attachment = %+v", att)
	}
}

func TestToFHIRDeterministic(t *testing.T) {
	m, err := New(validMessage())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first, err := m.ToFHIR()
	if err != nil {
		t.Fatalf("first ToFHIR: %v", err)
	}
	second, err := m.ToFHIR()
	if err != nil {
		t.Fatalf("second ToFHIR: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("conversion output differs between runs")
	}
}
