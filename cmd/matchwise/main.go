package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FoodBridge-Labs/Matchwise/internal/analyze"
	"github.com/FoodBridge-Labs/Matchwise/internal/api"
	"github.com/FoodBridge-Labs/Matchwise/internal/config"
	"github.com/FoodBridge-Labs/Matchwise/internal/events"
	"github.com/FoodBridge-Labs/Matchwise/internal/matching"
	"github.com/FoodBridge-Labs/Matchwise/internal/predict"
	"github.com/FoodBridge-Labs/Matchwise/internal/sentiment"
	"github.com/FoodBridge-Labs/Matchwise/internal/store"
	"github.com/FoodBridge-Labs/Matchwise/internal/weather"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Logging.Level != "info" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.Logging.Level)}))
		slog.SetDefault(logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	weights := matching.WeightSet{
		Distance:   cfg.Matching.Weights.Distance,
		Urgency:    cfg.Matching.Weights.Urgency,
		Capacity:   cfg.Matching.Weights.Capacity,
		Preference: cfg.Matching.Weights.Preference,
	}
	if err := weights.Validate(); err != nil {
		logger.Error("invalid matching weights", "error", err)
		os.Exit(1)
	}

	// Match history (optional)
	var matchStore store.Store
	if cfg.Database.URL != "" {
		db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		matchStore = db
		defer db.Close()
		logger.Info("connected to database")
	}

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to nats, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to nats")
		}
	}

	// Weather (optional), with a Redis cache in front when configured
	var weatherClient weather.Client
	if cfg.Weather.APIKey != "" {
		weatherClient = weather.NewHTTPClient(cfg.Weather.URL, cfg.Weather.APIKey)
		if cfg.Cache.RedisAddr != "" {
			rdb := redis.NewClient(&redis.Options{
				Addr:     cfg.Cache.RedisAddr,
				Password: cfg.Cache.RedisPassword,
				DB:       cfg.Cache.RedisDB,
			})
			defer rdb.Close()
			weatherClient = weather.NewCachedClient(weatherClient, rdb, cfg.CacheTTL(), logger)
			logger.Info("weather cache enabled", "ttl", cfg.CacheTTL())
		}
	}

	// Sentiment (optional)
	var sentimentClient sentiment.Client
	if cfg.Sentiment.APIKey != "" {
		sentimentClient = sentiment.NewHTTPClient(cfg.Sentiment.URL, cfg.Sentiment.APIKey)
	}

	scorer := matching.NewScorer(weights, logger)
	ranker := matching.NewRanker(scorer, logger)
	predictor := predict.NewSurplusPredictor(weatherClient, logger)
	analyzer := analyze.NewAnalyzer(sentimentClient, logger)

	router := api.NewRouter(ranker, scorer, predictor, analyzer, matchStore, eventsClient, api.Config{
		DefaultLimit:    cfg.Matching.Limit,
		DefaultMinScore: cfg.Matching.MinScore,
		AdminToken:      cfg.Server.AdminToken,
	}, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
