package postgres

import (
	"context"
	"strings"

	"github.com/and161185/tonefit/internal/model"
	"github.com/jackc/pgx/v5"
)

// CatalogRepo implements CatalogRepository using PostgreSQL.
type CatalogRepo struct{ db *DB }

// NewCatalogRepo constructs a catalog repository.
func NewCatalogRepo(db *DB) *CatalogRepo { return &CatalogRepo{db: db} }

// Sample picks random items of a gender, optionally restricted to base colours (case-insensitive).
func (r *CatalogRepo) Sample(ctx context.Context, gender string, colors []string, limit int) ([]model.CatalogItem, error) {
	const q = `
SELECT item_id, gender, category, sub_category, article_type, base_colour, season, year, usage, product_name
FROM catalog_items
WHERE lower(gender) = lower($1)
  AND (cardinality($2::text[]) = 0 OR lower(base_colour) = ANY($2::text[]))
ORDER BY random()
LIMIT $3`
	lowered := make([]string, 0, len(colors))
	for _, c := range colors {
		lowered = append(lowered, strings.ToLower(c))
	}
	rows, err := r.db.Pool.Query(ctx, q, gender, lowered, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.CatalogItem, 0, limit)
	for rows.Next() {
		var it model.CatalogItem
		if err := rows.Scan(&it.ItemID, &it.Gender, &it.Category, &it.SubCategory, &it.ArticleType,
			&it.BaseColour, &it.Season, &it.Year, &it.Usage, &it.ProductName); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Categories aggregates counts per (category, sub_category).
func (r *CatalogRepo) Categories(ctx context.Context) ([]model.CategoryCount, error) {
	const q = `
SELECT category, sub_category, COUNT(*)
FROM catalog_items
GROUP BY category, sub_category
ORDER BY category, sub_category`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CategoryCount
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.MasterCategory, &c.SubCategory, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Count returns the number of catalog rows.
func (r *CatalogRepo) Count(ctx context.Context) (int64, error) {
	const q = `SELECT COUNT(*) FROM catalog_items`
	var n int64
	if err := r.db.Pool.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// UpsertBatch writes items in one transaction, replacing rows with the same item_id.
func (r *CatalogRepo) UpsertBatch(ctx context.Context, items []model.CatalogItem) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	const ins = `
INSERT INTO catalog_items (item_id, gender, category, sub_category, article_type, base_colour, season, year, usage, product_name)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (item_id) DO UPDATE SET
  gender=EXCLUDED.gender, category=EXCLUDED.category, sub_category=EXCLUDED.sub_category,
  article_type=EXCLUDED.article_type, base_colour=EXCLUDED.base_colour, season=EXCLUDED.season,
  year=EXCLUDED.year, usage=EXCLUDED.usage, product_name=EXCLUDED.product_name`

	var written int64
	err := r.db.inTx(ctx, func(tx pgx.Tx) error {
		for _, it := range items {
			tag, err := tx.Exec(ctx, ins, it.ItemID, it.Gender, it.Category, it.SubCategory, it.ArticleType,
				it.BaseColour, it.Season, it.Year, it.Usage, it.ProductName)
			if err != nil {
				return err
			}
			written += tag.RowsAffected()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}
