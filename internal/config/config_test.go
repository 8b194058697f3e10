package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "kariera")
	t.Setenv("DB_NAME", "kariera")
	t.Setenv("EMBEDDING_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("COMPLETION_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-test")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "job_ingest_queue", cfg.Ingest.QueueName)
	assert.Equal(t, 2, cfg.Ingest.Workers)
	assert.Equal(t, 6*time.Hour, cfg.Ingest.Interval)
	assert.Equal(t, 30*24*time.Hour, cfg.Ingest.PostingMaxAge)
}

func TestLoadFailsWithoutDatabase(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
}

func TestLoadRequiresKeyForSelectedProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMBEDDING_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMBEDDING_PROVIDER", "cohere")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EMBEDDING_PROVIDER")
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "svc",
		Password: "secret",
		Name:     "kariera",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=svc password=secret dbname=kariera sslmode=require",
		d.DSN())
}

func TestLoadParsesOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("INGEST_INTERVAL", "90m")
	t.Setenv("INGEST_WORKERS", "5")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, cfg.Ingest.Interval)
	assert.Equal(t, 5, cfg.Ingest.Workers)
	assert.Equal(t, "9090", cfg.Port)
}
