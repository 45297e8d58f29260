package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// SQLite database file
	DBPath string

	// LLM question generation
	LLMURL     string // OpenAI-compatible endpoint, e.g. "http://localhost:1234/v1"
	LLMAPIKey  string // may be empty for local runtimes
	LLMModel   string // model name, e.g. "qwen3-8b"
	LLMTimeout time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout: mustGetDuration("SHUTDOWN_TIMEOUT"),
		DBPath:          getenvDefault("DB_PATH", "codecompanion.db"),
		LLMURL:          getenvDefault("LLM_URL", "http://localhost:1234/v1"),
		LLMAPIKey:       os.Getenv("LLM_API_KEY"),
		LLMModel:        getenvDefault("LLM_MODEL", "qwen3-8b"),
		LLMTimeout:      getDurationDefault("LLM_TIMEOUT", 90*time.Second),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return parseDuration(k, v)
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return parseDuration(k, v)
}

func parseDuration(k, v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
