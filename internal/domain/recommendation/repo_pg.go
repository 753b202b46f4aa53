package recommendation

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

const recommendationCols = `id, patient_id, provider_id, status, intent, condition_ids,
	target_profile, dosing_guidance, rationale, contraindications_reviewed,
	drug_interactions_reviewed, valid_from, valid_until, signed_at, created_at, updated_at`

func scanRecommendation(row pgx.Row) (*Recommendation, error) {
	var (
		rec       Recommendation
		condRaw   []byte
		targetRaw []byte
		dosingRaw []byte
		rationale *string
	)
	err := row.Scan(&rec.ID, &rec.PatientID, &rec.ProviderID, &rec.Status, &rec.Intent,
		&condRaw, &targetRaw, &dosingRaw, &rationale, &rec.ContraindicationsReviewed,
		&rec.DrugInteractionsReviewed, &rec.ValidFrom, &rec.ValidUntil, &rec.SignedAt,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(condRaw) > 0 {
		if err := json.Unmarshal(condRaw, &rec.ConditionIDs); err != nil {
			return nil, fmt.Errorf("decode condition_ids: %w", err)
		}
	}
	if err := json.Unmarshal(targetRaw, &rec.TargetProfile); err != nil {
		return nil, fmt.Errorf("decode target_profile: %w", err)
	}
	if len(dosingRaw) > 0 {
		if err := json.Unmarshal(dosingRaw, &rec.DosingGuidance); err != nil {
			return nil, fmt.Errorf("decode dosing_guidance: %w", err)
		}
	}
	if rationale != nil {
		rec.Rationale = *rationale
	}
	return &rec, nil
}

func recommendationArgs(rec *Recommendation) ([]interface{}, error) {
	conditionIDs := rec.ConditionIDs
	if conditionIDs == nil {
		conditionIDs = []uuid.UUID{}
	}
	condRaw, err := json.Marshal(conditionIDs)
	if err != nil {
		return nil, fmt.Errorf("encode condition_ids: %w", err)
	}
	targetRaw, err := json.Marshal(rec.TargetProfile)
	if err != nil {
		return nil, fmt.Errorf("encode target_profile: %w", err)
	}
	var dosingRaw []byte
	if rec.DosingGuidance != nil {
		if dosingRaw, err = json.Marshal(rec.DosingGuidance); err != nil {
			return nil, fmt.Errorf("encode dosing_guidance: %w", err)
		}
	}
	var rationale *string
	if rec.Rationale != "" {
		rationale = &rec.Rationale
	}
	return []interface{}{
		rec.ID, rec.PatientID, rec.ProviderID, rec.Status, rec.Intent, condRaw,
		targetRaw, dosingRaw, rationale, rec.ContraindicationsReviewed,
		rec.DrugInteractionsReviewed, rec.ValidFrom, rec.ValidUntil, rec.SignedAt,
		rec.CreatedAt, rec.UpdatedAt,
	}, nil
}

func (r *repoPG) Create(ctx context.Context, rec *Recommendation) error {
	args, err := recommendationArgs(rec)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO recommendation (`+recommendationCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`, args...)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Recommendation, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+recommendationCols+` FROM recommendation WHERE id = $1`, id)
	return scanRecommendation(row)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Recommendation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recommendationCols+` FROM recommendation
		WHERE patient_id = $1 ORDER BY created_at`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, rec *Recommendation) error {
	args, err := recommendationArgs(rec)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE recommendation SET patient_id=$2, provider_id=$3, status=$4, intent=$5,
			condition_ids=$6, target_profile=$7, dosing_guidance=$8, rationale=$9,
			contraindications_reviewed=$10, drug_interactions_reviewed=$11,
			valid_from=$12, valid_until=$13, signed_at=$14, created_at=$15,
			updated_at=now()
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM recommendation WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Recommendation, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM recommendation`).Scan(&total); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+recommendationCols+` FROM recommendation
		ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []*Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, rec)
	}
	return result, total, rows.Err()
}
