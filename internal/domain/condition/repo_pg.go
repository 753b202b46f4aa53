package condition

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const conditionCols = `id, icd10_code, snomed_code, display_name, category, severity, onset_date, is_qualifying`

func scanCondition(row pgx.Row) (*Condition, error) {
	var (
		c        Condition
		icd10    *string
		snomed   *string
		severity *string
	)
	err := row.Scan(&c.ID, &icd10, &snomed, &c.DisplayName, &c.Category,
		&severity, &c.OnsetDate, &c.IsQualifying)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if icd10 != nil {
		c.ICD10Code = *icd10
	}
	if snomed != nil {
		c.SNOMEDCode = *snomed
	}
	if severity != nil {
		sv := cdesmodels.Severity(*severity)
		c.Severity = &sv
	}
	return &c, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *repoPG) Create(ctx context.Context, c *Condition) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO condition (`+conditionCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		c.ID, nullable(c.ICD10Code), nullable(c.SNOMEDCode), c.DisplayName,
		c.Category, c.Severity, c.OnsetDate, c.IsQualifying)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Condition, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+conditionCols+` FROM condition WHERE id = $1`, id)
	return scanCondition(row)
}

func (r *repoPG) Update(ctx context.Context, c *Condition) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE condition SET icd10_code=$2, snomed_code=$3, display_name=$4,
			category=$5, severity=$6, onset_date=$7, is_qualifying=$8
		WHERE id = $1`,
		c.ID, nullable(c.ICD10Code), nullable(c.SNOMEDCode), c.DisplayName,
		c.Category, c.Severity, c.OnsetDate, c.IsQualifying)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM condition WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Condition, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM condition`).Scan(&total); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+conditionCols+` FROM condition ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*Condition
	for rows.Next() {
		c, err := scanCondition(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, c)
	}
	return result, total, rows.Err()
}
