// Command reportd serves the wildfire incident report: it loads the incident
// datasets, aggregates every section, and exposes the composed page and the
// per-section JSON API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	_ "gocloud.dev/blob/gcsblob" // gs:// dataset buckets
	_ "gocloud.dev/blob/s3blob"  // s3:// dataset buckets

	"github.com/firewatch-kr/wildfire-report-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/firewatch-kr/wildfire-report-service/internal/adapter/kafka"
	"github.com/firewatch-kr/wildfire-report-service/internal/aggregate"
	"github.com/firewatch-kr/wildfire-report-service/internal/config"
	"github.com/firewatch-kr/wildfire-report-service/internal/dataset"
	"github.com/firewatch-kr/wildfire-report-service/internal/observability"
	"github.com/firewatch-kr/wildfire-report-service/internal/report"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader, err := dataset.Open(ctx, cfg.DatasetBucketURL, cfg.DatasetRetryMax, logger)
	if err != nil {
		logger.Error("failed to open dataset bucket", "error", err)
		os.Exit(1)
	}
	defer loader.Close() //nolint:errcheck // process is exiting

	defaults := report.Params{
		TopCauses: cfg.TopCauses,
		Years:     aggregate.YearRange{From: cfg.YearFrom, To: cfg.YearTo},
	}
	builder := report.NewBuilder(loader, cfg.RegionalDatasetKey, cfg.NationalDatasetKey, defaults, metrics, logger)
	renderer := report.NewRenderer(cfg.TemplateDir, cfg.RenderCacheSize, metrics, logger)

	// Bundle publishing is feature-flagged via KAFKA_ENABLED.
	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, metrics, logger)
		logger.Info("bundle publishing enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("bundle publishing disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, builder, renderer, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// First build runs in the background; the page serves the loading overlay
	// until it completes.
	go func() {
		if err := builder.LoadDatasets(ctx); err != nil {
			logger.Error("dataset load failed", "error", err)
			return
		}
		bundle, err := builder.Build(ctx, defaults)
		if err != nil {
			logger.Error("report build failed", "error", err)
			return
		}
		if publisher != nil {
			if err := publisher.PublishBundle(ctx, bundle); err != nil {
				logger.Error("bundle publish failed", "error", err)
			}
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
