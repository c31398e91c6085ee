package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coursedesk/internal/api/v1/router"
	"coursedesk/internal/config"
	"coursedesk/internal/logger"

	"github.com/joho/godotenv"
)

// @title CourseDesk API
// @version 1.0
// @description Course catalog browsing and course form validation
// @host localhost:8080
// @BasePath /v1
// @Schemes http https

func main() {
	// 1. Load configuration
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", os.Getenv("ENV"))
		boot.Fatal().Msgf("Error loading config: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.Environment)
	if envErr != nil {
		log.Warn().Msg("Warning: no .env file found")
	}

	// 2. Build router and clients
	r, cleanup, err := router.New(context.Background(), cfg, log)
	defer cleanup()
	if err != nil {
		log.Error().Err(err).Msg("Failed to build router")
		return
	}

	// 3. Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 4. Start server in a goroutine
	go func() {
		log.Info().Msgf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Msgf("Listen: %s", err)
		}
	}()

	// 5. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutdown signal received, exiting...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}
	log.Info().Msg("Server shut down gracefully")
}
