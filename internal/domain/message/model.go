// Package message holds the secure provider-patient message model and its
// FHIR Communication conversion.
package message

import (
	"time"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

// Attachment is a document linked from a message, carried by reference.
type Attachment struct {
	ContentType string `json:"content_type,omitempty"`
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
}

// Message is one secure message within a thread. Sender and recipient each
// name a provider or patient record.
type Message struct {
	ID                      uuid.UUID                  `json:"id"`
	ThreadID                uuid.UUID                  `json:"thread_id"`
	SenderType              cdesmodels.ParticipantType `json:"sender_type"`
	SenderID                uuid.UUID                  `json:"sender_id"`
	RecipientType           cdesmodels.ParticipantType `json:"recipient_type"`
	RecipientID             uuid.UUID                  `json:"recipient_id"`
	Subject                 string                     `json:"subject,omitempty"`
	Body                    string                     `json:"body"`
	Attachments             []Attachment               `json:"attachments,omitempty"`
	RelatedRecommendationID *uuid.UUID                 `json:"related_recommendation_id,omitempty"`
	Priority                cdesmodels.MessagePriority `json:"priority"`
	Status                  cdesmodels.MessageStatus   `json:"status"`
	ReadAt                  *time.Time                 `json:"read_at,omitempty"`
	SentAt                  time.Time                  `json:"sent_at"`
	ExpiresAt               *time.Time                 `json:"expires_at,omitempty"`
}

// New validates m, assigns an id and the sent/routine defaults, and returns
// the constructed value.
func New(m Message) (*Message, error) {
	if m.Priority == "" {
		m.Priority = cdesmodels.PriorityRoutine
	}
	if m.Status == "" {
		m.Status = cdesmodels.MessageSent
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.SentAt.IsZero() {
		m.SentAt = time.Now().UTC()
	}
	return &m, nil
}

func (m *Message) Validate() error {
	if m.ThreadID == uuid.Nil {
		return cdesmodels.NewValidationError("thread_id", "is required")
	}
	if m.SenderID == uuid.Nil {
		return cdesmodels.NewValidationError("sender_id", "is required")
	}
	if m.RecipientID == uuid.Nil {
		return cdesmodels.NewValidationError("recipient_id", "is required")
	}
	if !m.SenderType.Valid() {
		return cdesmodels.NewValidationError("sender_type", "unknown participant type: "+string(m.SenderType))
	}
	if !m.RecipientType.Valid() {
		return cdesmodels.NewValidationError("recipient_type", "unknown participant type: "+string(m.RecipientType))
	}
	if m.Body == "" {
		return cdesmodels.NewValidationError("body", "is required")
	}
	if !m.Priority.Valid() {
		return cdesmodels.NewValidationError("priority", "unknown message priority: "+string(m.Priority))
	}
	if !m.Status.Valid() {
		return cdesmodels.NewValidationError("status", "unknown message status: "+string(m.Status))
	}
	for _, a := range m.Attachments {
		if a.URL == "" {
			return cdesmodels.NewValidationError("attachments", "attachment url is required")
		}
	}
	if m.ExpiresAt != nil && m.ExpiresAt.Before(m.SentAt) && !m.SentAt.IsZero() {
		return cdesmodels.NewValidationError("expires_at", "must not be before sent_at")
	}
	return nil
}
