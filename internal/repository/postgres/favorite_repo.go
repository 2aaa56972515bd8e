package postgres

import (
	"context"

	"github.com/and161185/tonefit/internal/errs"
	"github.com/and161185/tonefit/internal/model"
	"github.com/gofrs/uuid/v5"
)

// FavoriteRepo implements FavoriteRepository using PostgreSQL.
type FavoriteRepo struct{ db *DB }

// NewFavoriteRepo constructs a favourites repository.
func NewFavoriteRepo(db *DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add inserts a favourite and fills CreatedAt from the database.
func (r *FavoriteRepo) Add(ctx context.Context, f *model.Favorite) error {
	const q = `
INSERT INTO favorites (id, user_id, item_id, product_name, base_colour)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at`
	err := r.db.Pool.QueryRow(ctx, q, f.ID, f.UserID, f.ItemID, f.ProductName, f.BaseColour).Scan(&f.CreatedAt)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// List returns favourites newest first.
func (r *FavoriteRepo) List(ctx context.Context, userID uuid.UUID, limit int) ([]model.Favorite, error) {
	const q = `
SELECT id, user_id, item_id, product_name, base_colour, created_at
FROM favorites
WHERE user_id=$1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := r.db.Pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Favorite{}
	for rows.Next() {
		var f model.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.ItemID, &f.ProductName, &f.BaseColour, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Remove deletes a favourite by item ID.
func (r *FavoriteRepo) Remove(ctx context.Context, userID uuid.UUID, itemID string) error {
	const q = `DELETE FROM favorites WHERE user_id=$1 AND item_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, userID, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
