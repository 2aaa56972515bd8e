package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/and161185/tonefit/internal/errs"
)

type detailResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}

func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// writeError maps service errors to a status; fallback is the client-facing text for expected failures.
// Unexpected errors are logged and reported as a bare 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrUnauthorized):
		writeDetail(w, http.StatusUnauthorized, fallback)
	case errors.Is(err, errs.ErrRateLimited):
		writeDetail(w, http.StatusTooManyRequests, "Too many failed login attempts, try again later")
	case errors.Is(err, errs.ErrNotFound):
		writeDetail(w, http.StatusNotFound, fallback)
	case errors.Is(err, errs.ErrAlreadyExists):
		writeDetail(w, http.StatusConflict, fallback)
	case errors.Is(err, errs.ErrInvalidImage):
		writeDetail(w, http.StatusBadRequest, "Could not read the image. Please upload a JPEG, PNG or GIF photo.")
	case errors.Is(err, errs.ErrNoSkinDetected):
		writeDetail(w, http.StatusBadRequest, "No skin region detected in the image. Please use a clear photo with good lighting.")
	default:
		s.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}
