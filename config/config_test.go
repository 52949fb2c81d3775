package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, ":8082", cfg.Server.GRPCPort)
	assert.Equal(t, ":8080", cfg.Server.HTTPPort)
	assert.Empty(t, cfg.Server.CORSOrigins)
	assert.Equal(t, 30, cfg.Planner.SalesWindowDays)
	assert.Equal(t, 5*time.Minute, cfg.Planner.CacheTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "inventory.reorder-alerts", cfg.Kafka.AlertsTopic)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", ":9000")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.sellergenix.io")
	t.Setenv("SALES_WINDOW_DAYS", "14")
	t.Setenv("PLAN_CACHE_TTL", "90s")
	t.Setenv("PLANNER_POLICY_FILE", "/etc/planner/policy.yaml")
	t.Setenv("LOGGER_DISABLE_CALLER", "true")

	cfg := LoadEnv()

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, ":9000", cfg.Server.HTTPPort)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"https://app.sellergenix.io"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 14, cfg.Planner.SalesWindowDays)
	assert.Equal(t, 90*time.Second, cfg.Planner.CacheTTL)
	assert.Equal(t, "/etc/planner/policy.yaml", cfg.Planner.PolicyFile)
	assert.True(t, cfg.Logger.DisableCaller)

	logOpts := cfg.LoggerOptions()
	assert.False(t, logOpts.IsDevelopment)
	assert.Equal(t, "json", logOpts.Encoding)
}

func TestDevelopmentLogger(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	logOpts := LoadEnv().LoggerOptions()
	assert.True(t, logOpts.IsDevelopment)
	assert.Equal(t, "console", logOpts.Encoding)
	assert.Equal(t, "debug", logOpts.Level)
}

func TestPostgresOptions(t *testing.T) {
	t.Setenv("POSTGRES_CONN_MAX_LIFETIME", "120")

	opts := LoadEnv().PostgresOptions()
	assert.Equal(t, 2*time.Minute, opts.ConnMaxLifetime)
	assert.Equal(t, time.Minute, opts.ConnMaxIdleTime)
	assert.Contains(t, opts.DSN(), "dbname=sellergenix_inventory")
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("SALES_WINDOW_DAYS", "thirty")
	t.Setenv("PLAN_CACHE_TTL", "5 minutes")
	t.Setenv("LOGGER_DISABLE_STACKTRACE", "maybe")

	cfg := LoadEnv()

	assert.Equal(t, 30, cfg.Planner.SalesWindowDays)
	assert.Equal(t, 5*time.Minute, cfg.Planner.CacheTTL)
	assert.True(t, cfg.Logger.DisableStacktrace)
}
