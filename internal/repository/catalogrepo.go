package repository

import (
	"context"

	"github.com/and161185/tonefit/internal/model"
)

// CatalogRepository reads and loads the fashion catalog.
type CatalogRepository interface {
	// Sample returns up to limit random items of gender whose base colour is in colors.
	// An empty colors slice matches every colour.
	Sample(ctx context.Context, gender string, colors []string, limit int) ([]model.CatalogItem, error)
	// Categories aggregates item counts per (master, sub) category.
	Categories(ctx context.Context) ([]model.CategoryCount, error)
	// Count reports the number of catalog items.
	Count(ctx context.Context) (int64, error)
	// UpsertBatch inserts or replaces items and returns how many rows were written.
	UpsertBatch(ctx context.Context, items []model.CatalogItem) (int64, error)
}
