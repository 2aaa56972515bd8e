package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/tonefit/internal/model"
)

type analysisResponse struct {
	DetectedSkinTone  string   `json:"detected_skin_tone"`
	SkinTone          string   `json:"skin_tone"`
	RecommendedColors []string `json:"recommended_colors"`
	AnalysisID        string   `json:"analysis_id"`
	CreatedAt         string   `json:"created_at,omitempty"`
}

func toAnalysisResponse(a *model.SkinToneAnalysis) analysisResponse {
	resp := analysisResponse{
		DetectedSkinTone:  a.DetectedColor,
		SkinTone:          a.Tone,
		RecommendedColors: a.RecommendedColors,
		AnalysisID:        a.ID.String(),
	}
	if !a.CreatedAt.IsZero() {
		resp.CreatedAt = a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDetail(w, http.StatusRequestEntityTooLarge, "Image is too large")
			return
		}
		writeDetail(w, http.StatusBadRequest, "File must be an image")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "File must be an image")
		return
	}
	defer file.Close()
	if !strings.HasPrefix(hdr.Header.Get("Content-Type"), "image/") {
		writeDetail(w, http.StatusBadRequest, "File must be an image")
		return
	}

	var owner uuid.NullUUID
	if id, ok := UserIDFromCtx(r.Context()); ok {
		owner = uuid.NullUUID{UUID: id, Valid: true}
	}
	a, err := s.analysis.Analyze(r.Context(), owner, file)
	if err != nil {
		s.writeError(w, r, err, "Error processing image. Please try with a different photo.")
		return
	}
	writeJSON(w, http.StatusOK, toAnalysisResponse(a))
}

func (s *Server) handleLatestAnalysis(w http.ResponseWriter, r *http.Request) {
	id, _ := UserIDFromCtx(r.Context())
	a, err := s.analysis.Latest(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "No analysis yet")
		return
	}
	writeJSON(w, http.StatusOK, toAnalysisResponse(a))
}
