package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/SBleeyouk/deepfake-daily/internal/ai"
	"github.com/SBleeyouk/deepfake-daily/internal/api"
	"github.com/SBleeyouk/deepfake-daily/internal/auth"
	"github.com/SBleeyouk/deepfake-daily/internal/correlation"
	"github.com/SBleeyouk/deepfake-daily/internal/notify"
	"github.com/SBleeyouk/deepfake-daily/internal/store"
	"github.com/SBleeyouk/deepfake-daily/internal/upload"
	"github.com/SBleeyouk/deepfake-daily/pkg/config"
	"github.com/SBleeyouk/deepfake-daily/pkg/logger"
)

func main() {
	// Initialize logger
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting deepfake-daily server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize record store
	var entryStore store.Store
	switch cfg.StoreBackend {
	case "neo4j":
		entryStore, err = store.NewNeo4jStore(context.Background(), cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	default:
		entryStore, err = store.NewSQLiteStore(cfg.SQLitePath)
	}
	if err != nil {
		log.Fatal("Failed to initialize record store",
			zap.String("backend", cfg.StoreBackend),
			zap.Error(err),
		)
	}
	defer entryStore.Close()

	// Initialize dependencies
	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.ModelID)
	graphSvc := correlation.NewService(entryStore, aiClient, cfg.CacheTTL, cfg.InferenceTimeout)
	authSvc := auth.NewService(cfg.JWTSecret, cfg.AllowedEmailDomain)

	saver, err := upload.NewSaver(cfg.UploadDir, cfg.MaxUploadSize)
	if err != nil {
		log.Fatal("Failed to initialize upload dir", zap.Error(err))
	}

	var announcer notify.Announcer = notify.NoopAnnouncer{}
	if cfg.DiscordBotToken != "" && cfg.DiscordChannelID != "" {
		discordAnnouncer, err := notify.NewDiscordAnnouncer(cfg.DiscordBotToken, cfg.DiscordChannelID)
		if err != nil {
			log.Warn("Discord announcements disabled", zap.Error(err))
		} else {
			announcer = discordAnnouncer
			defer discordAnnouncer.Close()
		}
	}

	router := api.New(entryStore, aiClient, graphSvc, authSvc, saver, announcer).Router(cfg.IsProduction())

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started",
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreBackend),
	)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
