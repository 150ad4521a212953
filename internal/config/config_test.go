package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBucketURL = "file:///var/lib/wildfire/data"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATASET_BUCKET_URL", testBucketURL)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, testBucketURL, cfg.DatasetBucketURL)
	assert.Equal(t, "regional.csv", cfg.RegionalDatasetKey)
	assert.Empty(t, cfg.NationalDatasetKey)
	assert.Equal(t, 3, cfg.DatasetRetryMax)
	assert.Equal(t, "web/templates", cfg.TemplateDir)
	assert.Equal(t, 5, cfg.TopCauses)
	assert.Zero(t, cfg.YearFrom)
	assert.Zero(t, cfg.YearTo)
	assert.Equal(t, 64, cfg.RenderCacheSize)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "wildfire-report-bundles", cfg.KafkaSinkTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATASET_BUCKET_URL", "s3://wildfire-datasets?region=ap-northeast-2")
	t.Setenv("REGIONAL_DATASET_KEY", "kfs/regional.xlsx")
	t.Setenv("NATIONAL_DATASET_KEY", "kfs/national.csv")
	t.Setenv("DATASET_RETRY_MAX", "5")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("TEMPLATE_DIR", "/srv/templates")
	t.Setenv("TOP_CAUSES", "8")
	t.Setenv("YEAR_FROM", "2015")
	t.Setenv("YEAR_TO", "2022")
	t.Setenv("RENDER_CACHE_SIZE", "16")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "reports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3://wildfire-datasets?region=ap-northeast-2", cfg.DatasetBucketURL)
	assert.Equal(t, "kfs/regional.xlsx", cfg.RegionalDatasetKey)
	assert.Equal(t, "kfs/national.csv", cfg.NationalDatasetKey)
	assert.Equal(t, 5, cfg.DatasetRetryMax)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/srv/templates", cfg.TemplateDir)
	assert.Equal(t, 8, cfg.TopCauses)
	assert.Equal(t, 2015, cfg.YearFrom)
	assert.Equal(t, 2022, cfg.YearTo)
	assert.Equal(t, 16, cfg.RenderCacheSize)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "reports", cfg.KafkaSinkTopic)
}

func TestLoad_MissingBucketURL(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATASET_BUCKET_URL")
}

func TestLoad_InvalidYearRange(t *testing.T) {
	t.Setenv("DATASET_BUCKET_URL", testBucketURL)
	t.Setenv("YEAR_FROM", "2022")
	t.Setenv("YEAR_TO", "2015")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YEAR_FROM")
}

func TestLoad_OpenEndedYearRangeIsValid(t *testing.T) {
	t.Setenv("DATASET_BUCKET_URL", testBucketURL)
	t.Setenv("YEAR_FROM", "2015")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2015, cfg.YearFrom)
	assert.Zero(t, cfg.YearTo)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("DATASET_BUCKET_URL", testBucketURL)
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NonNumericTopCauses(t *testing.T) {
	t.Setenv("DATASET_BUCKET_URL", testBucketURL)
	t.Setenv("TOP_CAUSES", "many")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOP_CAUSES")
}

func TestLoad_ZeroRenderCacheSize(t *testing.T) {
	t.Setenv("DATASET_BUCKET_URL", testBucketURL)
	t.Setenv("RENDER_CACHE_SIZE", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RENDER_CACHE_SIZE")
}

func TestLoad_KafkaEnabledRequiresBrokers(t *testing.T) {
	t.Setenv("DATASET_BUCKET_URL", testBucketURL)
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
