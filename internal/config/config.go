// Package config loads the application configuration from the environment.
// Required settings fail startup when missing; there are no baked-in
// fallback credentials.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full application configuration.
type Config struct {
	Port string

	Database DatabaseConfig
	Redis    RedisConfig
	AI       AIConfig
	Ingest   IngestConfig
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AIConfig selects the embedding backend and carries provider credentials.
// Only the selected backend's key is required.
type AIConfig struct {
	EmbeddingProvider  string
	CompletionProvider string
	OpenAIAPIKey       string
	GeminiAPIKey       string
	EmbeddingModel     string
	CompletionModel    string
}

// IngestConfig tunes the indexing pipeline.
type IngestConfig struct {
	QueueName      string
	Workers        int
	Interval       time.Duration
	VectorTable    string
	SampleFeedSize int
	PostingMaxAge  time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASS"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		AI: AIConfig{
			EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "openai"),
			CompletionProvider: getEnv("COMPLETION_PROVIDER", "gemini"),
			OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
			GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
			EmbeddingModel:     os.Getenv("EMBEDDING_MODEL"),
			CompletionModel:    os.Getenv("COMPLETION_MODEL"),
		},
		Ingest: IngestConfig{
			QueueName:      getEnv("INGEST_QUEUE", "job_ingest_queue"),
			Workers:        getEnvInt("INGEST_WORKERS", 2),
			Interval:       getEnvDuration("INGEST_INTERVAL", 6*time.Hour),
			VectorTable:    getEnv("VECTOR_TABLE", "job_vectors"),
			SampleFeedSize: getEnvInt("SAMPLE_FEED_SIZE", 50),
			PostingMaxAge:  getEnvDuration("POSTING_MAX_AGE", 30*24*time.Hour),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
		return fmt.Errorf("config: DB_HOST, DB_USER and DB_NAME are required")
	}

	if err := c.validateProvider("EMBEDDING_PROVIDER", c.AI.EmbeddingProvider); err != nil {
		return err
	}
	return c.validateProvider("COMPLETION_PROVIDER", c.AI.CompletionProvider)
}

func (c *Config) validateProvider(envKey, provider string) error {
	switch provider {
	case "openai":
		if c.AI.OpenAIAPIKey == "" {
			return fmt.Errorf("config: OPENAI_API_KEY is required when %s=openai", envKey)
		}
	case "gemini":
		if c.AI.GeminiAPIKey == "" {
			return fmt.Errorf("config: GEMINI_API_KEY is required when %s=gemini", envKey)
		}
	default:
		return fmt.Errorf("config: unsupported %s %q (want openai or gemini)", envKey, provider)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
