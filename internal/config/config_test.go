package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/bengalibuddy/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:              ":8080",
		LogLevel:          "INFO",
		StoreBackend:      config.BackendSQLite,
		DBPath:            "test.db",
		RoundSize:         8,
		SpeechWorkerCount: 1,
		SpeechQueueSize:   8,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		message string
	}{
		{"empty addr", func(c *config.Config) { c.Addr = "" }, "ADDR cannot be empty"},
		{"empty db path", func(c *config.Config) { c.DBPath = "" }, "DB_PATH cannot be empty"},
		{"redis without url", func(c *config.Config) { c.StoreBackend = config.BackendRedis }, "REDIS_URL cannot be empty"},
		{"unknown backend", func(c *config.Config) { c.StoreBackend = "mongo" }, "STORE_BACKEND must be one of"},
		{"round size zero", func(c *config.Config) { c.RoundSize = 0 }, "ROUND_SIZE must be between"},
		{"round size too big", func(c *config.Config) { c.RoundSize = 51 }, "ROUND_SIZE must be between"},
		{"no speech workers", func(c *config.Config) { c.SpeechWorkerCount = 0 }, "SPEECH_WORKER_COUNT"},
		{"no speech queue", func(c *config.Config) { c.SpeechQueueSize = 0 }, "SPEECH_QUEUE_SIZE"},
		{"bad log level", func(c *config.Config) { c.LogLevel = "TRACE" }, "LOG_LEVEL must be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidate_MemoryBackendNeedsNothing(t *testing.T) {
	cfg := validConfig()
	cfg.StoreBackend = config.BackendMemory
	cfg.DBPath = ""
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ADDR", "LOG_LEVEL", "STORE_BACKEND", "DB_PATH", "ROUND_SIZE", "CORS_ORIGINS", "RANDOM_SEED", "TTS_COMMAND"} {
		t.Setenv(k, "")
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, config.BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "file:bengalibuddy.db", cfg.DBPath)
	assert.Equal(t, 8, cfg.RoundSize)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, uint64(0), cfg.RandomSeed)
	assert.Equal(t, "bn-BD", cfg.SpeechLocale)
	assert.Empty(t, cfg.TTSCommand)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("ROUND_SIZE", "5")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("RANDOM_SEED", "42")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, config.BackendRedis, cfg.StoreBackend)
	assert.Equal(t, 5, cfg.RoundSize)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, uint64(42), cfg.RandomSeed)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("ROUND_SIZE", "lots")
	t.Setenv("RANDOM_SEED", "-1")

	cfg := config.Load()

	assert.Equal(t, 8, cfg.RoundSize)
	assert.Equal(t, uint64(0), cfg.RandomSeed)
}
