package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/city-news-etl/internal/adapter/gazetteer"
	"github.com/couchcryptid/city-news-etl/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/city-news-etl/internal/adapter/kafka"
	"github.com/couchcryptid/city-news-etl/internal/config"
	"github.com/couchcryptid/city-news-etl/internal/domain"
	"github.com/couchcryptid/city-news-etl/internal/observability"
	"github.com/couchcryptid/city-news-etl/internal/pipeline"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Load the gazetteer up front so a bad dataset shows in the startup logs.
	g := gazetteer.NewStore(cfg.GazetteerPath, logger).Load()
	metrics.GazetteerEntries.WithLabelValues(gazetteer.IndexDistricts).Set(float64(g.DistrictCount()))
	metrics.GazetteerEntries.WithLabelValues(gazetteer.IndexLandmarks).Set(float64(g.LandmarkCount()))
	logger.Info("gazetteer ready",
		"path", cfg.GazetteerPath,
		"districts", g.DistrictCount(),
		"landmarks", g.LandmarkCount(),
		"landmark_word_boundary", cfg.LandmarkWordBoundary,
	)

	resolver := domain.NewResolver(g,
		domain.WithLandmarkWordBoundaries(cfg.LandmarkWordBoundary),
		domain.WithResolverLogger(logger),
	)
	enricher := domain.NewEnricher(resolver, domain.NewClassifier(domain.DefaultTaxonomy))

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(enricher, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, enricher, cfg.EnrichWorkers, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		return p.Run(gctx)
	})

	// Wait for a signal or for either component to fail.
	<-gctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := group.Wait(); err != nil {
		logger.Error("service error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
