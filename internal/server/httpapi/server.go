// Package httpapi exposes the Tonefit HTTP/JSON API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/and161185/tonefit/internal/service"
)

// DefaultMaxUpload bounds analysis uploads when Config leaves it unset.
const DefaultMaxUpload int64 = 10 << 20

// Pinger reports backend readiness for /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config carries non-service dependencies of the API.
type Config struct {
	SignKey   []byte
	MaxUpload int64 // bytes; <=0 means DefaultMaxUpload
	Log       *zap.Logger
	DB        Pinger // optional
}

// Server wires services into HTTP handlers.
type Server struct {
	auth      service.AuthService
	analysis  service.AnalysisService
	recs      service.RecommendationService
	favs      service.FavoriteService
	signKey   []byte
	maxUpload int64
	log       *zap.Logger
	db        Pinger
}

// New constructs the API with injected services.
func New(auth service.AuthService, analysis service.AnalysisService, recs service.RecommendationService, favs service.FavoriteService, cfg Config) *Server {
	if cfg.MaxUpload <= 0 {
		cfg.MaxUpload = DefaultMaxUpload
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	return &Server{
		auth:      auth,
		analysis:  analysis,
		recs:      recs,
		favs:      favs,
		signKey:   cfg.SignKey,
		maxUpload: cfg.MaxUpload,
		log:       cfg.Log,
		db:        cfg.DB,
	}
}

// Handler returns the full middleware-wrapped router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)

	api.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.Handle("/auth/me", s.RequireAuth(http.HandlerFunc(s.handleMe))).Methods(http.MethodGet)

	api.Handle("/analyze-skin-tone", s.OptionalAuth(http.HandlerFunc(s.handleAnalyze))).Methods(http.MethodPost)
	api.Handle("/analyses/latest", s.RequireAuth(http.HandlerFunc(s.handleLatestAnalysis))).Methods(http.MethodGet)

	api.HandleFunc("/outfit-recommendations", s.handleRecommendations).Methods(http.MethodGet)
	api.HandleFunc("/fashion-categories", s.handleCategories).Methods(http.MethodGet)

	favs := api.PathPrefix("/favorites").Subrouter()
	favs.Use(s.RequireAuth)
	favs.HandleFunc("", s.handleListFavorites).Methods(http.MethodGet)
	favs.HandleFunc("", s.handleAddFavorite).Methods(http.MethodPost)
	favs.HandleFunc("/{item_id}", s.handleRemoveFavorite).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	var h http.Handler = r
	h = CORS(h)
	h = Logging(s.log)(h)
	h = Recover(s.log)(h)
	return h
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			s.log.Warn("health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, "Fashion Recommendation API")
}
