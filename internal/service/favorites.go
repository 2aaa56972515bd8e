package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/and161185/tonefit/internal/errs"
	"github.com/and161185/tonefit/internal/model"
	"github.com/and161185/tonefit/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// FavoritesListLimit caps how many favourites a listing returns.
const FavoritesListLimit = 100

// FavoriteService manages a user's saved items.
type FavoriteService interface {
	// Add saves an item; duplicates yield errs.ErrAlreadyExists.
	Add(ctx context.Context, userID uuid.UUID, itemID, productName, baseColour string) (*model.Favorite, error)
	// List returns saved items, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error)
	// Remove deletes a saved item; missing items yield errs.ErrNotFound.
	Remove(ctx context.Context, userID uuid.UUID, itemID string) error
}

type FavoriteServiceImpl struct {
	repo repository.FavoriteRepository
}

// NewFavoriteService constructs FavoriteService.
func NewFavoriteService(repo repository.FavoriteRepository) *FavoriteServiceImpl {
	return &FavoriteServiceImpl{repo: repo}
}

// Add validates input and inserts the favourite.
func (s *FavoriteServiceImpl) Add(ctx context.Context, userID uuid.UUID, itemID, productName, baseColour string) (*model.Favorite, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, fmt.Errorf("%w: empty item_id", errs.ErrValidation)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	f := &model.Favorite{
		ID:          id,
		UserID:      userID,
		ItemID:      itemID,
		ProductName: strings.TrimSpace(productName),
		BaseColour:  strings.TrimSpace(baseColour),
	}
	if err := s.repo.Add(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// List returns at most FavoritesListLimit favourites.
func (s *FavoriteServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	return s.repo.List(ctx, userID, FavoritesListLimit)
}

// Remove deletes by item ID.
func (s *FavoriteServiceImpl) Remove(ctx context.Context, userID uuid.UUID, itemID string) error {
	if userID == uuid.Nil || strings.TrimSpace(itemID) == "" {
		return fmt.Errorf("%w: empty userID/item_id", errs.ErrValidation)
	}
	return s.repo.Remove(ctx, userID, strings.TrimSpace(itemID))
}
