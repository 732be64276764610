package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Addr              string
	LogLevel          string
	StoreBackend      string
	DBPath            string
	RedisURL          string
	RoundSize         int
	CatalogPath       string
	ImageBaseURL      string
	SpeechLocale      string
	TTSCommand        string
	SpeechWorkerCount int
	SpeechQueueSize   int
	CORSOrigins       []string
	RandomSeed        uint64
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		StoreBackend:      strings.ToLower(envOr("STORE_BACKEND", BackendSQLite)),
		DBPath:            envOr("DB_PATH", "file:bengalibuddy.db"),
		RedisURL:          envOr("REDIS_URL", ""),
		RoundSize:         envIntOr("ROUND_SIZE", 8),
		CatalogPath:       envOr("CATALOG_PATH", ""),
		ImageBaseURL:      envOr("IMAGE_BASE_URL", "https://source.unsplash.com"),
		SpeechLocale:      envOr("SPEECH_LOCALE", "bn-BD"),
		TTSCommand:        envOr("TTS_COMMAND", ""),
		SpeechWorkerCount: envIntOr("SPEECH_WORKER_COUNT", 1),
		SpeechQueueSize:   envIntOr("SPEECH_QUEUE_SIZE", 8),
		CORSOrigins:       envListOr("CORS_ORIGINS", []string{"*"}),
		RandomSeed:        envUintOr("RANDOM_SEED", 0),
	}
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	switch c.StoreBackend {
	case BackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH cannot be empty when STORE_BACKEND=sqlite")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL cannot be empty when STORE_BACKEND=redis")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be one of sqlite, redis, memory (got %q)", c.StoreBackend)
	}
	if c.RoundSize < 1 || c.RoundSize > 50 {
		return fmt.Errorf("ROUND_SIZE must be between 1 and 50 (got %d)", c.RoundSize)
	}
	if c.SpeechWorkerCount < 1 {
		return fmt.Errorf("SPEECH_WORKER_COUNT must be at least 1 (got %d)", c.SpeechWorkerCount)
	}
	if c.SpeechQueueSize < 1 {
		return fmt.Errorf("SPEECH_QUEUE_SIZE must be at least 1 (got %d)", c.SpeechQueueSize)
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR (got %q)", c.LogLevel)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envUintOr(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envListOr(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
