package service

import (
	"context"
	"fmt"
	"io"

	"github.com/and161185/tonefit/internal/model"
	"github.com/and161185/tonefit/internal/repository"
	"github.com/and161185/tonefit/internal/skintone"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

// AnalysisService turns uploaded photos into a skin tone and palette.
type AnalysisService interface {
	// Analyze estimates the skin tone in img and records the result; userID may be null.
	Analyze(ctx context.Context, userID uuid.NullUUID, img io.Reader) (*model.SkinToneAnalysis, error)
	// Latest returns the user's most recent analysis.
	Latest(ctx context.Context, userID uuid.UUID) (*model.SkinToneAnalysis, error)
}

// Detector is the image analysis step; *skintone.Analyzer implements it.
type Detector interface {
	Analyze(r io.Reader) (skintone.Result, error)
}

type AnalysisServiceImpl struct {
	detector Detector
	repo     repository.AnalysisRepository
	log      *zap.Logger
}

// NewAnalysisService constructs AnalysisService.
func NewAnalysisService(detector Detector, repo repository.AnalysisRepository, log *zap.Logger) *AnalysisServiceImpl {
	return &AnalysisServiceImpl{detector: detector, repo: repo, log: log}
}

// Analyze runs detection and persists the outcome.
func (s *AnalysisServiceImpl) Analyze(ctx context.Context, userID uuid.NullUUID, img io.Reader) (*model.SkinToneAnalysis, error) {
	res, err := s.detector.Analyze(img)
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	a := &model.SkinToneAnalysis{
		ID:                id,
		UserID:            userID,
		DetectedColor:     res.Hex(),
		Tone:              string(res.Tone),
		RecommendedColors: res.Palette,
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("save analysis: %w", err)
	}
	s.log.Info("skin tone detected",
		zap.String("analysis_id", a.ID.String()),
		zap.String("tone", a.Tone),
		zap.String("hex", a.DetectedColor),
		zap.Bool("anonymous", !userID.Valid),
	)
	return a, nil
}

// Latest delegates to the repository.
func (s *AnalysisServiceImpl) Latest(ctx context.Context, userID uuid.UUID) (*model.SkinToneAnalysis, error) {
	return s.repo.Latest(ctx, userID)
}
