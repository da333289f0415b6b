package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/croppilot/croppilot/internal/adapter/httpapi"
	kafkaadapter "github.com/croppilot/croppilot/internal/adapter/kafka"
	"github.com/croppilot/croppilot/internal/adapter/nominatim"
	"github.com/croppilot/croppilot/internal/adapter/openweather"
	"github.com/croppilot/croppilot/internal/advisor"
	"github.com/croppilot/croppilot/internal/auth"
	"github.com/croppilot/croppilot/internal/catalog"
	"github.com/croppilot/croppilot/internal/config"
	"github.com/croppilot/croppilot/internal/domain"
	"github.com/croppilot/croppilot/internal/observability"
	"github.com/croppilot/croppilot/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	cat, err := catalog.Load(cfg.SchemesPath, cfg.CropsPath)
	if err != nil {
		logger.Error("failed to load catalogs", "error", err)
		os.Exit(1)
	}
	logger.Info("catalogs loaded", "schemes", len(cat.Schemes), "crops", len(cat.Crops))

	// Live weather (feature-flagged via OPENWEATHER_API_KEY / WEATHER_ENABLED).
	var weather domain.WeatherSource
	if cfg.WeatherEnabled {
		weather = openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.WeatherTimeout, logger)
		logger.Info("openweather enabled", "timeout", cfg.WeatherTimeout)
	} else {
		logger.Info("openweather disabled, all analyses will use estimates")
	}

	// Reverse geocoding (feature-flagged via GEOCODER_ENABLED).
	var geocoder domain.Geocoder
	if cfg.GeocoderEnabled {
		client := nominatim.NewClient(cfg.GeocoderTimeout, logger)
		geocoder = nominatim.NewCachedGeocoder(client, cfg.GeocodeCacheSize, metrics)
		logger.Info("nominatim geocoding enabled", "cache_size", cfg.GeocodeCacheSize, "timeout", cfg.GeocoderTimeout)
	} else {
		logger.Info("nominatim geocoding disabled, using region table")
	}

	// High-risk alert publishing (feature-flagged via KAFKA_BROKERS / ALERTS_ENABLED).
	var alerts advisor.AlertPublisher
	var alertWriter *kafkaadapter.AlertWriter
	if cfg.AlertsEnabled {
		alertWriter = kafkaadapter.NewAlertWriter(cfg, logger)
		alerts = alertWriter
		logger.Info("alert publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.AlertsTopic)
	} else {
		logger.Info("alert publishing disabled")
	}

	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}

	authSvc := auth.NewService(db, cfg.JWTSigningKey, cfg.SessionTTL, logger, metrics)
	adv := advisor.New(weather, geocoder, alerts, cat, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, adv, cat, authSvc, db, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if alertWriter != nil {
		if err := alertWriter.Close(); err != nil {
			logger.Error("alert writer close error", "error", err)
		}
	}
	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("shutdown complete")
}
