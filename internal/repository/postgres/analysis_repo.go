package postgres

import (
	"context"
	"errors"

	"github.com/and161185/tonefit/internal/errs"
	"github.com/and161185/tonefit/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// AnalysisRepo implements AnalysisRepository using PostgreSQL.
type AnalysisRepo struct{ db *DB }

// NewAnalysisRepo constructs an analysis repository.
func NewAnalysisRepo(db *DB) *AnalysisRepo { return &AnalysisRepo{db: db} }

// Save inserts an analysis row.
func (r *AnalysisRepo) Save(ctx context.Context, a *model.SkinToneAnalysis) error {
	const q = `
INSERT INTO skin_tone_analyses (id, user_id, detected_color, tone, recommended_colors)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at`
	return r.db.Pool.QueryRow(ctx, q, a.ID, a.UserID, a.DetectedColor, a.Tone, a.RecommendedColors).Scan(&a.CreatedAt)
}

// Latest returns the newest analysis recorded for userID.
func (r *AnalysisRepo) Latest(ctx context.Context, userID uuid.UUID) (*model.SkinToneAnalysis, error) {
	const q = `
SELECT id, detected_color, tone, recommended_colors, created_at
FROM skin_tone_analyses
WHERE user_id=$1
ORDER BY created_at DESC
LIMIT 1`
	a := model.SkinToneAnalysis{UserID: uuid.NullUUID{UUID: userID, Valid: true}}
	err := r.db.Pool.QueryRow(ctx, q, userID).Scan(&a.ID, &a.DetectedColor, &a.Tone, &a.RecommendedColors, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
