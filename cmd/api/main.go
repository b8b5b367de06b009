package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/movepal/api/internal/config"
	"github.com/movepal/api/internal/connect"
	"github.com/movepal/api/internal/container"
	"github.com/movepal/api/internal/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg)
	logger.Info("Starting MovePal gateway", "environment", cfg.Environment)

	// Initialize the booking API client
	client, err := connect.InitUpstream(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize booking API client", "error", err)
		os.Exit(1)
	}
	logger.Info("Booking API client ready", "url", cfg.UpstreamBaseURL)

	// Initialize dependency container
	appContainer := container.NewContainer(logger, cfg, client)

	// Watch auth-state changes; subscribers replace the old poll-based
	// credential check the dashboards used.
	events, cancelWatch := appContainer.Sessions.Subscribe()
	go func() {
		for ev := range events {
			if ev.Cleared {
				logger.Info("session cleared", "session_id", ev.SessionID)
				continue
			}
			logger.Info("session established",
				"session_id", ev.SessionID,
				"email", ev.Session.Email,
				"user_type", ev.Session.UserType,
			)
		}
	}()

	// Setup routes
	router := routes.SetupRoutes(appContainer)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	cancelWatch()
	connect.Disconnect()

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}
