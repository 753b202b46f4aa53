package message

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

func validMessage() Message {
	return Message{
		ThreadID:      uuid.New(),
		SenderType:    cdesmodels.ParticipantProvider,
		SenderID:      uuid.New(),
		RecipientType: cdesmodels.ParticipantPatient,
		RecipientID:   uuid.New(),
		Subject:       "Titration check-in",
		Body:          "How are you tolerating the evening dose?",
		SentAt:        time.Date(2025, 4, 10, 14, 30, 0, 0, time.UTC),
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	m, err := New(validMessage())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if m.ID == uuid.Nil {
		t.Error("expected an id to be assigned")
	}
	if m.Priority != cdesmodels.PriorityRoutine {
		t.Errorf("priority = %q, want routine", m.Priority)
	}
	if m.Status != cdesmodels.MessageSent {
		t.Errorf("status = %q, want sent", m.Status)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Message)
		field  string
	}{
		{"missing thread", func(m *Message) { m.ThreadID = uuid.Nil }, "thread_id"},
		{"missing sender", func(m *Message) { m.SenderID = uuid.Nil }, "sender_id"},
		{"missing recipient", func(m *Message) { m.RecipientID = uuid.Nil }, "recipient_id"},
		{"bad sender type", func(m *Message) { m.SenderType = "robot" }, "sender_type"},
		{"bad recipient type", func(m *Message) { m.RecipientType = "org" }, "recipient_type"},
		{"empty body", func(m *Message) { m.Body = "" }, "body"},
		{"bad priority", func(m *Message) { m.Priority = "whenever" }, "priority"},
		{"attachment without url", func(m *Message) {
			m.Attachments = []Attachment{{Title: "lab results"}}
		}, "attachments"},
		{"expires before sent", func(m *Message) {
			early := m.SentAt.Add(-time.Hour)
			m.ExpiresAt = &early
		}, "expires_at"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := validMessage()
			tc.mutate(&m)
			_, err := New(m)
			var ve *cdesmodels.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if ve.Field != tc.field {
				t.Errorf("Field = %q, want %q", ve.Field, tc.field)
			}
		})
	}
}
