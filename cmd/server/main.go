package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Ashi3h/ChatRoom/internal/config"
	httpHandler "github.com/Ashi3h/ChatRoom/internal/delivery/http"
	"github.com/Ashi3h/ChatRoom/internal/delivery/ws"
	"github.com/Ashi3h/ChatRoom/internal/middleware"
	"github.com/Ashi3h/ChatRoom/internal/store"
)

func main() {
	// Load .env file (ignore error if not exists, e.g. in production)
	_ = godotenv.Load()

	// Reload config after loading .env
	cfg := config.LoadFromEnv()
	config.AppConfig = cfg

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(logLevel(cfg.LogLevel))

	// Durable room/message store
	gateway, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open store")
	}
	log.Info().Str("path", cfg.DBPath).Msg("store ready")

	// Initialize dependencies
	rooms := ws.NewRoomManager(gateway, cfg.MaxHistorySize)
	handler := httpHandler.NewHandler(rooms)

	apiLimiter := middleware.NewIPRateLimiter(cfg.RateLimitAPI, cfg.BurstAPI)
	wsLimiter := middleware.NewIPRateLimiter(cfg.RateLimitWS, cfg.BurstWS)

	// Setup routes
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handler.HandleHealth)
	mux.HandleFunc("/ws", middleware.RateLimitFunc(wsLimiter, handler.HandleWebSocket))
	mux.HandleFunc("/api/gif/search", middleware.RateLimitFunc(apiLimiter, handler.HandleGifSearch))

	// Apply security headers middleware to all requests
	securedHandler := middleware.SecurityHeaders(mux)

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     securedHandler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("chat coordinator running")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited gracefully")
}

func logLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "silent", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
