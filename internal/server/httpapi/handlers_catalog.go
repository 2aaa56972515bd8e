package httpapi

import (
	"net/http"
	"strconv"

	"github.com/and161185/tonefit/internal/model"
	"github.com/and161185/tonefit/internal/service"
)

type recommendationJSON struct {
	ID          string `json:"id"`
	ItemID      string `json:"item_id"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	SubCategory string `json:"sub_category"`
	ArticleType string `json:"article_type"`
	BaseColour  string `json:"base_colour"`
	Gender      string `json:"gender"`
	Season      string `json:"season"`
	Usage       string `json:"usage"`
	ImageURL    string `json:"image_url"`
}

type recommendationsResponse struct {
	Recommendations []recommendationJSON `json:"recommendations"`
}

type categoryJSON struct {
	MasterCategory string `json:"master_category"`
	SubCategory    string `json:"sub_category"`
	Count          int64  `json:"count"`
}

type categoriesResponse struct {
	Categories []categoryJSON `json:"categories"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q := model.RecommendationQuery{
		Gender: qs.Get("gender"),
		Colors: service.ParseColors(qs.Get("recommended_colors")),
	}
	if v := qs.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		q.Limit = n
	}

	recs, err := s.recs.Recommend(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch recommendations")
		return
	}
	out := recommendationsResponse{Recommendations: make([]recommendationJSON, 0, len(recs))}
	for _, rec := range recs {
		out.Recommendations = append(out.Recommendations, recommendationJSON{
			ID:          rec.ID.String(),
			ItemID:      rec.ItemID,
			ProductName: rec.ProductName,
			Category:    rec.Category,
			SubCategory: rec.SubCategory,
			ArticleType: rec.ArticleType,
			BaseColour:  rec.BaseColour,
			Gender:      rec.Gender,
			Season:      rec.Season,
			Usage:       rec.Usage,
			ImageURL:    rec.ImageURL,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.recs.Categories(r.Context())
	if err != nil {
		s.writeError(w, r, err, "Failed to list categories")
		return
	}
	out := categoriesResponse{Categories: make([]categoryJSON, 0, len(cats))}
	for _, c := range cats {
		out.Categories = append(out.Categories, categoryJSON{
			MasterCategory: c.MasterCategory,
			SubCategory:    c.SubCategory,
			Count:          c.Count,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
