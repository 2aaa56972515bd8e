package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/and161185/tonefit/internal/catalog"
	"github.com/and161185/tonefit/internal/model"
	"github.com/and161185/tonefit/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// Recommendation query defaults.
const (
	DefaultGender = "Men"
	DefaultLimit  = 5
	MaxLimit      = 50
)

// DefaultColors is used when a query carries no palette.
var DefaultColors = []string{"Black", "White", "Blue"}

// RecommendationService selects catalog items for a palette.
type RecommendationService interface {
	// Recommend returns up to q.Limit items; an empty result is not an error.
	Recommend(ctx context.Context, q model.RecommendationQuery) ([]model.Recommendation, error)
	// Categories lists catalog category counts.
	Categories(ctx context.Context) ([]model.CategoryCount, error)
}

type RecommendationServiceImpl struct {
	catalog repository.CatalogRepository
}

// NewRecommendationService constructs RecommendationService.
func NewRecommendationService(catalog repository.CatalogRepository) *RecommendationServiceImpl {
	return &RecommendationServiceImpl{catalog: catalog}
}

// ParseColors splits a comma-joined palette, dropping blanks.
func ParseColors(joined string) []string {
	var out []string
	for _, c := range strings.Split(joined, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// Normalize applies defaults and clamps the limit.
func Normalize(q model.RecommendationQuery) model.RecommendationQuery {
	q.Gender = strings.TrimSpace(q.Gender)
	if q.Gender == "" {
		q.Gender = DefaultGender
	}
	colors := make([]string, 0, len(q.Colors))
	for _, c := range q.Colors {
		if c = strings.TrimSpace(c); c != "" {
			colors = append(colors, c)
		}
	}
	if len(colors) == 0 {
		colors = append(colors, DefaultColors...)
	}
	q.Colors = colors
	switch {
	case q.Limit <= 0:
		q.Limit = DefaultLimit
	case q.Limit > MaxLimit:
		q.Limit = MaxLimit
	}
	return q
}

// Recommend samples items matching gender and palette, falling back to any colour of that gender.
func (s *RecommendationServiceImpl) Recommend(ctx context.Context, q model.RecommendationQuery) ([]model.Recommendation, error) {
	q = Normalize(q)

	items, err := s.catalog.Sample(ctx, q.Gender, q.Colors, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("sample catalog: %w", err)
	}
	if len(items) == 0 {
		items, err = s.catalog.Sample(ctx, q.Gender, nil, q.Limit)
		if err != nil {
			return nil, fmt.Errorf("sample catalog (any colour): %w", err)
		}
	}

	out := make([]model.Recommendation, 0, len(items))
	for _, it := range items {
		id, err := uuid.NewV4()
		if err != nil {
			return nil, err
		}
		out = append(out, model.Recommendation{
			ID:          id,
			ItemID:      it.ItemID,
			ProductName: it.ProductName,
			Category:    it.Category,
			SubCategory: it.SubCategory,
			ArticleType: it.ArticleType,
			BaseColour:  it.BaseColour,
			Gender:      it.Gender,
			Season:      it.Season,
			Usage:       it.Usage,
			ImageURL:    catalog.ImageFor(it.ArticleType),
		})
	}
	return out, nil
}

// Categories delegates to the catalog.
func (s *RecommendationServiceImpl) Categories(ctx context.Context) ([]model.CategoryCount, error) {
	cats, err := s.catalog.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []model.CategoryCount{}
	}
	return cats, nil
}
