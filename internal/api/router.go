package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FoodBridge-Labs/Matchwise/internal/analyze"
	"github.com/FoodBridge-Labs/Matchwise/internal/events"
	"github.com/FoodBridge-Labs/Matchwise/internal/matching"
	"github.com/FoodBridge-Labs/Matchwise/internal/predict"
	"github.com/FoodBridge-Labs/Matchwise/internal/store"
)

type Config struct {
	DefaultLimit    int
	DefaultMinScore float64
	AdminToken      string
}

func NewRouter(
	ranker *matching.Ranker,
	scorer *matching.Scorer,
	predictor *predict.SurplusPredictor,
	analyzer *analyze.Analyzer,
	s store.Store,
	ev events.Client,
	cfg Config,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	matches := NewMatchHandler(ranker, scorer, s, ev, cfg, logger)
	predictions := NewPredictHandler(predictor, ev, logger)
	analysis := NewAnalyzeHandler(analyzer)
	admin := NewAdminHandler(s)

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "matchwise"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/match/food", matches.Match)
		r.Post("/match/explain", matches.Explain)

		r.Post("/predict/surplus", predictions.Surplus)
		r.Post("/batch/predict-demand", predictions.BatchDemand)

		r.Post("/analyze/sentiment", analysis.Analyze)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
