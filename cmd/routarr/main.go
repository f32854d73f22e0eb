package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/timshannon/bolthold"

	"routarr/pkg/config"
	"routarr/pkg/dispatch"
	"routarr/pkg/handlers"
	"routarr/pkg/metadata"
	"routarr/pkg/repository"
	"routarr/pkg/services"
)

func main() {
	// Setup logging
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.JSONFormatter{})
	log.Info("Starting Routarr application")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	applyLogLevel(cfg.Logging.Level)

	// Initialize database
	dbPath := filepath.Join(cfg.DataDir, "data.db")
	store, err := bolthold.Open(dbPath, 0666, nil)
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}

	// Initialize repository
	repo := repository.NewBoltRepository(store)
	defer func() {
		if err := repo.Close(); err != nil {
			log.WithError(err).Error("Failed to close database")
		}
	}()

	// Initialize metadata provider
	provider, err := newMetadataProvider(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize metadata provider")
	}

	// Initialize services
	forwarder := dispatch.NewForwarder(cfg.Instances)
	routingService := services.NewRoutingService(repo, provider, forwarder, cfg.Filters)

	// Initialize HTTP handlers
	handler := handlers.NewHandler(routingService, cfg.APIKey)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithFields(log.Fields{
			"address":   server.Addr,
			"instances": len(cfg.Instances),
			"filters":   len(cfg.Filters),
			"provider":  cfg.Metadata.Provider,
		}).Info("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	waitForShutdown(server)
}

func newMetadataProvider(cfg *config.Config) (metadata.Provider, error) {
	switch cfg.Metadata.Provider {
	case config.ProviderOverseerr:
		return metadata.NewOverseerrProvider(&metadata.OverseerrConfig{
			URL:    cfg.Overseerr.URL,
			APIKey: cfg.Overseerr.APIKey,
		})
	case config.ProviderTrakt:
		return metadata.NewTraktProvider(cfg.Trakt.APIKey), nil
	default:
		return metadata.None{}, nil
	}
}

func applyLogLevel(level string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("Invalid log level, using info")
		return
	}
	log.SetLevel(parsed)
}

// waitForShutdown waits for shutdown signals and gracefully shuts down
func waitForShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	log.WithField("signal", sig).Info("Received shutdown signal, initiating graceful shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	} else {
		log.Info("HTTP server shut down successfully")
	}

	log.Info("Graceful shutdown completed")
}
