package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/metar-etl-service/internal/adapter/ground"
	httpadapter "github.com/couchcryptid/metar-etl-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/metar-etl-service/internal/adapter/kafka"
	"github.com/couchcryptid/metar-etl-service/internal/adapter/satellite"
	"github.com/couchcryptid/metar-etl-service/internal/config"
	"github.com/couchcryptid/metar-etl-service/internal/geo"
	"github.com/couchcryptid/metar-etl-service/internal/metar"
	"github.com/couchcryptid/metar-etl-service/internal/observability"
	"github.com/couchcryptid/metar-etl-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	props, advisories, err := metar.ParseProperties(cfg.Properties)
	if err != nil {
		logger.Error("invalid METAR_PROPERTIES", "error", err)
		os.Exit(1)
	}
	for _, adv := range advisories {
		logger.Warn("property requested without a unit, family default assigned",
			"property", adv.Property,
			"family", adv.Family,
			"unit", adv.Assigned)
	}

	// Tile enrichment is feature-flagged via SATELLITE_BASE_URL / SATELLITE_ENABLED.
	var locator geo.TileLocator
	if cfg.SatelliteEnabled {
		client := satellite.NewClient(cfg.SatelliteBaseURL, cfg.SatelliteTimeout, logger)
		locator = satellite.NewCachedLocator(client, cfg.SatelliteCacheSize)
		metrics.TileEnrichmentEnabled.Set(1)
		logger.Info("satellite tile enrichment enabled",
			"cache_size", cfg.SatelliteCacheSize, "timeout", cfg.SatelliteTimeout)
	} else {
		logger.Info("satellite tile enrichment disabled")
	}

	groundClient := ground.NewClient(cfg.GroundBaseURL, cfg.GroundTimeout, logger)
	extractor := ground.NewExtractor(groundClient, cfg.StationIDs(), props)
	transformer := pipeline.NewTransformer(props, locator, cfg.Stations, logger, metrics)
	writer := kafkaadapter.NewWriter(cfg, logger)

	p := pipeline.New(extractor, transformer, writer, logger, metrics, cfg.FetchInterval, cfg.FetchLookback)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
