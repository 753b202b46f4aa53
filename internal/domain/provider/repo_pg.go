package provider

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

const providerCols = `id, npi, license_number, license_state, license_type, license_expiration,
	dea_number, mmj_certification, specialty, organization, contact,
	tos_accepted, baa_signed, created_at, updated_at`

func scanProvider(row pgx.Row) (*Provider, error) {
	var (
		p       Provider
		mmjRaw  []byte
		specRaw []byte
		contRaw []byte
	)
	err := row.Scan(&p.ID, &p.NPI, &p.LicenseNumber, &p.LicenseState, &p.LicenseType,
		&p.LicenseExpiration, &p.DEANumber, &mmjRaw, &specRaw, &p.Organization,
		&contRaw, &p.TOSAccepted, &p.BAASigned, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(mmjRaw) > 0 {
		if err := json.Unmarshal(mmjRaw, &p.MMJCertification); err != nil {
			return nil, fmt.Errorf("decode mmj_certification: %w", err)
		}
	}
	if len(specRaw) > 0 {
		if err := json.Unmarshal(specRaw, &p.Specialty); err != nil {
			return nil, fmt.Errorf("decode specialty: %w", err)
		}
	}
	if len(contRaw) > 0 {
		if err := json.Unmarshal(contRaw, &p.Contact); err != nil {
			return nil, fmt.Errorf("decode contact: %w", err)
		}
	}
	return &p, nil
}

func providerArgs(p *Provider) ([]interface{}, error) {
	var mmjRaw, contRaw []byte
	var err error
	if p.MMJCertification != nil {
		if mmjRaw, err = json.Marshal(p.MMJCertification); err != nil {
			return nil, fmt.Errorf("encode mmj_certification: %w", err)
		}
	}
	specialty := p.Specialty
	if specialty == nil {
		specialty = []string{}
	}
	specRaw, err := json.Marshal(specialty)
	if err != nil {
		return nil, fmt.Errorf("encode specialty: %w", err)
	}
	if p.Contact != nil {
		if contRaw, err = json.Marshal(p.Contact); err != nil {
			return nil, fmt.Errorf("encode contact: %w", err)
		}
	}
	return []interface{}{
		p.ID, p.NPI, p.LicenseNumber, p.LicenseState, p.LicenseType,
		p.LicenseExpiration, p.DEANumber, mmjRaw, specRaw, p.Organization,
		contRaw, p.TOSAccepted, p.BAASigned, p.CreatedAt, p.UpdatedAt,
	}, nil
}

func (r *repoPG) Create(ctx context.Context, p *Provider) error {
	args, err := providerArgs(p)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO provider (`+providerCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`, args...)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Provider, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+providerCols+` FROM provider WHERE id = $1`, id)
	return scanProvider(row)
}

func (r *repoPG) GetByNPI(ctx context.Context, npi string) (*Provider, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+providerCols+` FROM provider WHERE npi = $1`, npi)
	return scanProvider(row)
}

func (r *repoPG) Update(ctx context.Context, p *Provider) error {
	args, err := providerArgs(p)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE provider SET npi=$2, license_number=$3, license_state=$4, license_type=$5,
			license_expiration=$6, dea_number=$7, mmj_certification=$8, specialty=$9,
			organization=$10, contact=$11, tos_accepted=$12, baa_signed=$13,
			created_at=$14, updated_at=now()
		WHERE id = $1`, args[:14]...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM provider WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Provider, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM provider`).Scan(&total); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+providerCols+` FROM provider
		ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	return result, total, rows.Err()
}
