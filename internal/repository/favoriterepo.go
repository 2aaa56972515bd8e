package repository

import (
	"context"

	"github.com/and161185/tonefit/internal/model"
	"github.com/gofrs/uuid/v5"
)

// FavoriteRepository stores per-user saved items.
type FavoriteRepository interface {
	// Add inserts a favourite; a duplicate (user, item) yields errs.ErrAlreadyExists.
	Add(ctx context.Context, f *model.Favorite) error
	// List returns the user's favourites, newest first, at most limit rows.
	List(ctx context.Context, userID uuid.UUID, limit int) ([]model.Favorite, error)
	// Remove deletes a favourite by item ID; a missing row yields errs.ErrNotFound.
	Remove(ctx context.Context, userID uuid.UUID, itemID string) error
}
