package efficacy

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

const reportCols = `id, patient_id, recommendation_id, loinc_code, observed_effect,
	effectiveness, symptom_scores, side_effects, notes, reported_by, reported_at`

func scanReport(row pgx.Row) (*Report, error) {
	var (
		r          Report
		loinc      *string
		observed   *string
		effRaw     []byte
		scoresRaw  []byte
		effectsRaw []byte
		notes      *string
	)
	err := row.Scan(&r.ID, &r.PatientID, &r.RecommendationID, &loinc, &observed,
		&effRaw, &scoresRaw, &effectsRaw, &notes, &r.ReportedBy, &r.ReportedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if loinc != nil {
		r.LOINCCode = *loinc
	}
	if observed != nil {
		r.ObservedEffect = *observed
	}
	if notes != nil {
		r.Notes = *notes
	}
	if err := json.Unmarshal(effRaw, &r.Effectiveness); err != nil {
		return nil, fmt.Errorf("decode effectiveness: %w", err)
	}
	if len(scoresRaw) > 0 {
		if err := json.Unmarshal(scoresRaw, &r.SymptomScores); err != nil {
			return nil, fmt.Errorf("decode symptom_scores: %w", err)
		}
	}
	if len(effectsRaw) > 0 {
		if err := json.Unmarshal(effectsRaw, &r.SideEffects); err != nil {
			return nil, fmt.Errorf("decode side_effects: %w", err)
		}
	}
	return &r, nil
}

func reportArgs(r *Report) ([]interface{}, error) {
	effRaw, err := json.Marshal(r.Effectiveness)
	if err != nil {
		return nil, fmt.Errorf("encode effectiveness: %w", err)
	}
	scores := r.SymptomScores
	if scores == nil {
		scores = []SymptomScore{}
	}
	scoresRaw, err := json.Marshal(scores)
	if err != nil {
		return nil, fmt.Errorf("encode symptom_scores: %w", err)
	}
	effects := r.SideEffects
	if effects == nil {
		effects = []SideEffectReport{}
	}
	effectsRaw, err := json.Marshal(effects)
	if err != nil {
		return nil, fmt.Errorf("encode side_effects: %w", err)
	}
	return []interface{}{
		r.ID, r.PatientID, r.RecommendationID, nullable(r.LOINCCode),
		nullable(r.ObservedEffect), effRaw, scoresRaw, effectsRaw,
		nullable(r.Notes), r.ReportedBy, r.ReportedAt,
	}, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *repoPG) Create(ctx context.Context, report *Report) error {
	args, err := reportArgs(report)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO efficacy_report (`+reportCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`, args...)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+reportCols+` FROM efficacy_report WHERE id = $1`, id)
	return scanReport(row)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Report, error) {
	return r.list(ctx, `patient_id`, patientID)
}

func (r *repoPG) ListByRecommendation(ctx context.Context, recommendationID uuid.UUID) ([]*Report, error) {
	return r.list(ctx, `recommendation_id`, recommendationID)
}

func (r *repoPG) list(ctx context.Context, column string, id uuid.UUID) ([]*Report, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reportCols+` FROM efficacy_report
		WHERE `+column+` = $1 ORDER BY reported_at`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, report)
	}
	return result, rows.Err()
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM efficacy_report WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
