package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema holds the DDL for every CDES-M table. Nested value objects
// (target profiles, consent blocks, cannabis history) are stored as jsonb;
// the flat identifying and coded fields get their own columns.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS provider (
		id                  UUID PRIMARY KEY,
		npi                 TEXT NOT NULL,
		license_number      TEXT NOT NULL,
		license_state       TEXT NOT NULL,
		license_type        TEXT NOT NULL,
		license_expiration  DATE NOT NULL,
		dea_number          TEXT,
		mmj_certification   JSONB,
		specialty           JSONB NOT NULL DEFAULT '[]',
		organization        TEXT,
		contact             JSONB,
		tos_accepted        TIMESTAMPTZ NOT NULL,
		baa_signed          TIMESTAMPTZ NOT NULL,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_provider_npi ON provider (npi)`,

	`CREATE TABLE IF NOT EXISTS patient (
		id                  UUID PRIMARY KEY,
		mrn                 TEXT,
		mmj_card_number     TEXT,
		mmj_card_state      TEXT,
		mmj_card_expiration DATE,
		birth_date          DATE,
		gender              TEXT,
		zip_code            TEXT,
		condition_ids       JSONB NOT NULL DEFAULT '[]',
		allergies           JSONB NOT NULL DEFAULT '[]',
		cannabis_history    JSONB,
		terpene_fingerprint JSONB,
		consent             JSONB NOT NULL,
		primary_provider_id UUID,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS condition (
		id            UUID PRIMARY KEY,
		icd10_code    TEXT,
		snomed_code   TEXT,
		display_name  TEXT NOT NULL,
		category      TEXT NOT NULL,
		severity      TEXT,
		onset_date    DATE,
		is_qualifying BOOLEAN NOT NULL DEFAULT true
	)`,

	`CREATE TABLE IF NOT EXISTS recommendation (
		id                         UUID PRIMARY KEY,
		patient_id                 UUID NOT NULL,
		provider_id                UUID NOT NULL,
		status                     TEXT NOT NULL,
		intent                     TEXT NOT NULL,
		condition_ids              JSONB NOT NULL DEFAULT '[]',
		target_profile             JSONB NOT NULL,
		dosing_guidance            JSONB,
		rationale                  TEXT,
		contraindications_reviewed BOOLEAN NOT NULL DEFAULT false,
		drug_interactions_reviewed BOOLEAN NOT NULL DEFAULT false,
		valid_from                 DATE,
		valid_until                DATE,
		signed_at                  TIMESTAMPTZ,
		created_at                 TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at                 TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendation_patient ON recommendation (patient_id)`,

	`CREATE TABLE IF NOT EXISTS efficacy_report (
		id                UUID PRIMARY KEY,
		patient_id        UUID NOT NULL,
		recommendation_id UUID NOT NULL,
		loinc_code        TEXT,
		observed_effect   TEXT,
		effectiveness     JSONB NOT NULL,
		symptom_scores    JSONB NOT NULL DEFAULT '[]',
		side_effects      JSONB NOT NULL DEFAULT '[]',
		notes             TEXT,
		reported_by       TEXT NOT NULL DEFAULT 'patient',
		reported_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_efficacy_patient ON efficacy_report (patient_id)`,

	`CREATE TABLE IF NOT EXISTS secure_message (
		id                        UUID PRIMARY KEY,
		thread_id                 UUID NOT NULL,
		sender_type               TEXT NOT NULL,
		sender_id                 UUID NOT NULL,
		recipient_type            TEXT NOT NULL,
		recipient_id              UUID NOT NULL,
		subject                   TEXT,
		body                      TEXT NOT NULL,
		attachments               JSONB NOT NULL DEFAULT '[]',
		related_recommendation_id UUID,
		priority                  TEXT NOT NULL DEFAULT 'routine',
		status                    TEXT NOT NULL DEFAULT 'sent',
		read_at                   TIMESTAMPTZ,
		sent_at                   TIMESTAMPTZ NOT NULL,
		expires_at                TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_message_thread ON secure_message (thread_id)`,
}

// Migrate creates the CDES-M tables if they do not already exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
