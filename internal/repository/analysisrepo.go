package repository

import (
	"context"

	"github.com/and161185/tonefit/internal/model"
	"github.com/gofrs/uuid/v5"
)

// AnalysisRepository records skin-tone analyses.
type AnalysisRepository interface {
	// Save persists a finished analysis.
	Save(ctx context.Context, a *model.SkinToneAnalysis) error
	// Latest returns the most recent analysis of a user.
	Latest(ctx context.Context, userID uuid.UUID) (*model.SkinToneAnalysis, error)
}
