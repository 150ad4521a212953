package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Dataset source.
	DatasetBucketURL   string
	RegionalDatasetKey string
	NationalDatasetKey string // optional; region/year series falls back to the regional dataset
	DatasetRetryMax    int

	// Report shape.
	TemplateDir     string
	TopCauses       int
	YearFrom        int // 0 = unbounded
	YearTo          int // 0 = unbounded
	RenderCacheSize int

	// Kafka bundle publishing (feature-flagged).
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	topCauses, err := parseInt("TOP_CAUSES", 5)
	if err != nil {
		return nil, err
	}
	yearFrom, err := parseInt("YEAR_FROM", 0)
	if err != nil {
		return nil, err
	}
	yearTo, err := parseInt("YEAR_TO", 0)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parseInt("RENDER_CACHE_SIZE", 64)
	if err != nil {
		return nil, err
	}
	retryMax, err := parseInt("DATASET_RETRY_MAX", 3)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DatasetBucketURL:   os.Getenv("DATASET_BUCKET_URL"),
		RegionalDatasetKey: envOrDefault("REGIONAL_DATASET_KEY", "regional.csv"),
		NationalDatasetKey: os.Getenv("NATIONAL_DATASET_KEY"),
		DatasetRetryMax:    retryMax,

		TemplateDir:     envOrDefault("TEMPLATE_DIR", "web/templates"),
		TopCauses:       topCauses,
		YearFrom:        yearFrom,
		YearTo:          yearTo,
		RenderCacheSize: cacheSize,

		KafkaEnabled:   os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:   parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "wildfire-report-bundles"),
	}

	if cfg.DatasetBucketURL == "" {
		return nil, errors.New("DATASET_BUCKET_URL is required")
	}
	if cfg.RegionalDatasetKey == "" {
		return nil, errors.New("REGIONAL_DATASET_KEY is required")
	}
	if cfg.TopCauses < 0 {
		return nil, errors.New("TOP_CAUSES must not be negative")
	}
	if cfg.YearFrom < 0 || cfg.YearTo < 0 {
		return nil, errors.New("YEAR_FROM and YEAR_TO must not be negative")
	}
	if cfg.YearFrom != 0 && cfg.YearTo != 0 && cfg.YearFrom > cfg.YearTo {
		return nil, errors.New("YEAR_FROM must not exceed YEAR_TO")
	}
	if cfg.RenderCacheSize <= 0 {
		return nil, errors.New("RENDER_CACHE_SIZE must be positive")
	}
	if cfg.DatasetRetryMax < 0 {
		return nil, errors.New("DATASET_RETRY_MAX must not be negative")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is not set")
		}
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
