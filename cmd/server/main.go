package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/vytor/bengalibuddy/internal/api"
	"github.com/vytor/bengalibuddy/internal/catalog"
	"github.com/vytor/bengalibuddy/internal/config"
	"github.com/vytor/bengalibuddy/internal/db"
	"github.com/vytor/bengalibuddy/internal/images"
	"github.com/vytor/bengalibuddy/internal/lesson"
	"github.com/vytor/bengalibuddy/internal/logger"
	"github.com/vytor/bengalibuddy/internal/services"
	"github.com/vytor/bengalibuddy/internal/speech"
	"github.com/vytor/bengalibuddy/internal/store"
	"github.com/vytor/bengalibuddy/internal/store/redisstore"
	"github.com/vytor/bengalibuddy/internal/store/sqlite"
	"github.com/vytor/bengalibuddy/internal/worker"
	"github.com/vytor/bengalibuddy/web"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Bengali Buddy Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("store_backend=%s", cfg.StoreBackend)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("round_size=%d", cfg.RoundSize)
	log.Debug("catalog_path=%s", cfg.CatalogPath)
	log.Debug("image_base_url=%s", cfg.ImageBaseURL)
	log.Debug("speech_locale=%s", cfg.SpeechLocale)
	log.Debug("tts_command=%s", cfg.TTSCommand)
	log.Debug("speech_worker_count=%d", cfg.SpeechWorkerCount)
	log.Debug("speech_queue_size=%d", cfg.SpeechQueueSize)
	log.Debug("cors_origins=%v", cfg.CORSOrigins)
	log.Debug("log_level=%s", cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())

	kv, ready, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("failed to open %s store: %v", cfg.StoreBackend, err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing %s store", cfg.StoreBackend)
		closeStore()
	}()

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		if cat, err = catalog.Load(cfg.CatalogPath); err != nil {
			log.Error("failed to load catalog: %v", err)
			os.Exit(1)
		}
	}
	log.Info("catalog loaded: %d items in %d topics", len(cat.Items()), len(cat.Topics()))

	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates(web.FS)
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}

	var speaker *speech.Speaker
	var speechPool *worker.Pool
	if fields := strings.Fields(cfg.TTSCommand); len(fields) > 0 {
		speechPool = worker.NewPool(cfg.SpeechWorkerCount, cfg.SpeechQueueSize)
		speechPool.Start(ctx)
		speaker = speech.NewSpeaker(speech.CommandSynthesizer{Path: fields[0], Args: fields[1:]}, speechPool)
		log.Info("server-side speech enabled via %s", fields[0])
	}

	srv := &api.Server{
		Learner:      services.NewLearnerService(cat, kv, lesson.NewRand(cfg.RandomSeed), cfg.RoundSize),
		Templates:    tmpl,
		Images:       images.NewResolver(cfg.ImageBaseURL),
		ImageFetcher: images.NewClient(10 * time.Second),
		Speaker:      speaker,
		SpeechLocale: speech.ParseLocale(cfg.SpeechLocale),
		RoundSize:    cfg.RoundSize,
		CORSOrigins:  cfg.CORSOrigins,
		Ready:        ready,
		Static:       http.FS(web.Static()),
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	speaker.Cancel()
	cancel()
	if speechPool != nil {
		log.Debug("stopping speech pool")
		speechPool.Stop()
	}

	log.Info("===========================================")
	log.Info("Bengali Buddy Server Stopped")
	log.Info("===========================================")
}

// openStore builds the configured backend and its readiness check.
func openStore(ctx context.Context, cfg config.Config) (store.Store, api.HealthCheck, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		rs, err := redisstore.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		return rs, rs.HealthCheck, func() { rs.Close() }, nil
	case config.BackendMemory:
		return store.NewMemory(), nil, func() {}, nil
	case config.BackendSQLite:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, nil, err
		}
		return sqlite.NewStore(database.DB), database.Ping, func() { database.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
