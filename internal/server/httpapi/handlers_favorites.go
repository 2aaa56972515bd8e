package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type favoriteRequest struct {
	ItemID      string `json:"item_id"`
	ProductName string `json:"product_name"`
	BaseColour  string `json:"base_colour"`
}

type favoriteJSON struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ItemID      string    `json:"item_id"`
	ProductName string    `json:"product_name"`
	BaseColour  string    `json:"base_colour"`
	CreatedAt   time.Time `json:"created_at"`
}

type favoritesResponse struct {
	Favorites []favoriteJSON `json:"favorites"`
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromCtx(r.Context())
	favs, err := s.favs.List(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err, "Failed to load favorites")
		return
	}
	out := favoritesResponse{Favorites: make([]favoriteJSON, 0, len(favs))}
	for _, f := range favs {
		out.Favorites = append(out.Favorites, favoriteJSON{
			ID:          f.ID.String(),
			UserID:      f.UserID.String(),
			ItemID:      f.ItemID,
			ProductName: f.ProductName,
			BaseColour:  f.BaseColour,
			CreatedAt:   f.CreatedAt.UTC(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// decodeFavorite reads a JSON body; with an empty body the query string is used instead.
func decodeFavorite(w http.ResponseWriter, r *http.Request) (favoriteRequest, error) {
	var req favoriteRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req)
	switch {
	case errors.Is(err, io.EOF):
		qs := r.URL.Query()
		return favoriteRequest{
			ItemID:      qs.Get("item_id"),
			ProductName: qs.Get("product_name"),
			BaseColour:  qs.Get("base_colour"),
		}, nil
	case err != nil:
		return req, err
	}
	return req, nil
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	req, err := decodeFavorite(w, r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	userID, _ := UserIDFromCtx(r.Context())
	if _, err := s.favs.Add(r.Context(), userID, req.ItemID, req.ProductName, req.BaseColour); err != nil {
		s.writeError(w, r, err, "Item already in favorites")
		return
	}
	writeMessage(w, "Added to favorites")
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromCtx(r.Context())
	itemID := mux.Vars(r)["item_id"]
	if err := s.favs.Remove(r.Context(), userID, itemID); err != nil {
		s.writeError(w, r, err, "Favorite not found")
		return
	}
	writeMessage(w, "Removed from favorites")
}
