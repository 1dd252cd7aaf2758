package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.Equal(t, 2, cfg.Worker.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Worker.PollInterval)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_EXPIRATION_HOURS", "72")
	t.Setenv("WORKER_POLL_INTERVAL", "5s")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("GROQ_API_KEY", "gsk_test")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 72, cfg.JWT.ExpirationHours)
	assert.Equal(t, 5*time.Second, cfg.Worker.PollInterval)
	assert.Equal(t, int64(1024), cfg.Storage.MaxFileSize)
	assert.Equal(t, "gsk_test", cfg.AI.GroqAPIKey)
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_HOURS", "tomorrow")
	t.Setenv("WORKER_POLL_INTERVAL", "soonish")

	cfg := Load()

	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.Equal(t, 30*time.Second, cfg.Worker.PollInterval)
}

func TestGetDatabaseDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "recruit")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("DB_NAME", "recruitment")

	cfg := Load()

	assert.Equal(t,
		"host=db.internal port=5433 user=recruit password=hunter2 dbname=recruitment sslmode=disable",
		cfg.GetDatabaseDSN(),
	)
}
