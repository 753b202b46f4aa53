package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const messageCols = `id, thread_id, sender_type, sender_id, recipient_type, recipient_id,
	subject, body, attachments, related_recommendation_id, priority, status,
	read_at, sent_at, expires_at`

func scanMessage(row pgx.Row) (*Message, error) {
	var (
		m              Message
		subject        *string
		attachmentsRaw []byte
	)
	err := row.Scan(&m.ID, &m.ThreadID, &m.SenderType, &m.SenderID,
		&m.RecipientType, &m.RecipientID, &subject, &m.Body, &attachmentsRaw,
		&m.RelatedRecommendationID, &m.Priority, &m.Status,
		&m.ReadAt, &m.SentAt, &m.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if subject != nil {
		m.Subject = *subject
	}
	if len(attachmentsRaw) > 0 {
		if err := json.Unmarshal(attachmentsRaw, &m.Attachments); err != nil {
			return nil, fmt.Errorf("decode attachments: %w", err)
		}
	}
	return &m, nil
}

func messageArgs(m *Message) ([]interface{}, error) {
	attachments := m.Attachments
	if attachments == nil {
		attachments = []Attachment{}
	}
	attachmentsRaw, err := json.Marshal(attachments)
	if err != nil {
		return nil, fmt.Errorf("encode attachments: %w", err)
	}
	return []interface{}{
		m.ID, m.ThreadID, m.SenderType, m.SenderID, m.RecipientType,
		m.RecipientID, nullable(m.Subject), m.Body, attachmentsRaw,
		m.RelatedRecommendationID, m.Priority, m.Status,
		m.ReadAt, m.SentAt, m.ExpiresAt,
	}, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *repoPG) Create(ctx context.Context, m *Message) error {
	args, err := messageArgs(m)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO secure_message (`+messageCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`, args...)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Message, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+messageCols+` FROM secure_message WHERE id = $1`, id)
	return scanMessage(row)
}

func (r *repoPG) Update(ctx context.Context, m *Message) error {
	args, err := messageArgs(m)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE secure_message SET
			thread_id = $2, sender_type = $3, sender_id = $4,
			recipient_type = $5, recipient_id = $6, subject = $7, body = $8,
			attachments = $9, related_recommendation_id = $10, priority = $11,
			status = $12, read_at = $13, sent_at = $14, expires_at = $15
		WHERE id = $1`, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM secure_message WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ListByThread(ctx context.Context, threadID uuid.UUID) ([]*Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+messageCols+` FROM secure_message
		WHERE thread_id = $1 ORDER BY sent_at`, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
