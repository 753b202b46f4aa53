package patient

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

const patientCols = `id, mrn, mmj_card_number, mmj_card_state, mmj_card_expiration,
	birth_date, gender, zip_code, condition_ids, allergies, cannabis_history,
	terpene_fingerprint, consent, primary_provider_id, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var (
		p          Patient
		mrn        *string
		cardNumber *string
		cardState  *string
		gender     *string
		zip        *string
		condRaw    []byte
		allergyRaw []byte
		historyRaw []byte
		terpeneRaw []byte
		consentRaw []byte
	)
	err := row.Scan(&p.ID, &mrn, &cardNumber, &cardState, &p.MMJCardExpiration,
		&p.BirthDate, &gender, &zip, &condRaw, &allergyRaw, &historyRaw,
		&terpeneRaw, &consentRaw, &p.PrimaryProviderID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if mrn != nil {
		p.MRN = *mrn
	}
	if cardNumber != nil {
		p.MMJCardNumber = *cardNumber
	}
	if cardState != nil {
		p.MMJCardState = *cardState
	}
	if gender != nil {
		p.Gender = *gender
	}
	if zip != nil {
		p.ZipCode = *zip
	}
	if len(condRaw) > 0 {
		if err := json.Unmarshal(condRaw, &p.ConditionIDs); err != nil {
			return nil, fmt.Errorf("decode condition_ids: %w", err)
		}
	}
	if len(allergyRaw) > 0 {
		if err := json.Unmarshal(allergyRaw, &p.Allergies); err != nil {
			return nil, fmt.Errorf("decode allergies: %w", err)
		}
	}
	if len(historyRaw) > 0 {
		if err := json.Unmarshal(historyRaw, &p.CannabisHistory); err != nil {
			return nil, fmt.Errorf("decode cannabis_history: %w", err)
		}
	}
	if len(terpeneRaw) > 0 {
		if err := json.Unmarshal(terpeneRaw, &p.TerpeneFingerprint); err != nil {
			return nil, fmt.Errorf("decode terpene_fingerprint: %w", err)
		}
	}
	if err := json.Unmarshal(consentRaw, &p.Consent); err != nil {
		return nil, fmt.Errorf("decode consent: %w", err)
	}
	return &p, nil
}

func patientArgs(p *Patient) ([]interface{}, error) {
	conditionIDs := p.ConditionIDs
	if conditionIDs == nil {
		conditionIDs = []uuid.UUID{}
	}
	condRaw, err := json.Marshal(conditionIDs)
	if err != nil {
		return nil, fmt.Errorf("encode condition_ids: %w", err)
	}
	allergies := p.Allergies
	if allergies == nil {
		allergies = []string{}
	}
	allergyRaw, err := json.Marshal(allergies)
	if err != nil {
		return nil, fmt.Errorf("encode allergies: %w", err)
	}
	var historyRaw, terpeneRaw []byte
	if p.CannabisHistory != nil {
		if historyRaw, err = json.Marshal(p.CannabisHistory); err != nil {
			return nil, fmt.Errorf("encode cannabis_history: %w", err)
		}
	}
	if p.TerpeneFingerprint != nil {
		if terpeneRaw, err = json.Marshal(p.TerpeneFingerprint); err != nil {
			return nil, fmt.Errorf("encode terpene_fingerprint: %w", err)
		}
	}
	consentRaw, err := json.Marshal(p.Consent)
	if err != nil {
		return nil, fmt.Errorf("encode consent: %w", err)
	}
	return []interface{}{
		p.ID, nullable(p.MRN), nullable(p.MMJCardNumber), nullable(p.MMJCardState),
		p.MMJCardExpiration, p.BirthDate, nullable(p.Gender), nullable(p.ZipCode),
		condRaw, allergyRaw, historyRaw, terpeneRaw, consentRaw,
		p.PrimaryProviderID, p.CreatedAt, p.UpdatedAt,
	}, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	args, err := patientArgs(p)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO patient (`+patientCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`, args...)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id)
	return scanPatient(row)
}

func (r *repoPG) GetByMRN(ctx context.Context, mrn string) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE mrn = $1`, mrn)
	return scanPatient(row)
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	args, err := patientArgs(p)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE patient SET mrn=$2, mmj_card_number=$3, mmj_card_state=$4,
			mmj_card_expiration=$5, birth_date=$6, gender=$7, zip_code=$8,
			condition_ids=$9, allergies=$10, cannabis_history=$11,
			terpene_fingerprint=$12, consent=$13, primary_provider_id=$14,
			created_at=$15, updated_at=now()
		WHERE id = $1`, args[:15]...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+patientCols+` FROM patient
		ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	return result, total, rows.Err()
}
