package config

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port string

	// Persistence
	DBPath string

	// Security
	AllowedOrigins []string

	// Rate limiting
	RateLimitAPI rate.Limit
	BurstAPI     int
	RateLimitWS  rate.Limit
	BurstWS      int

	// Logging
	LogLevel string

	// Rooms
	MaxHistorySize int

	// External APIs
	GiphyAPIKey string
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Port:           "8080",
		DBPath:         "chatroom.db",
		AllowedOrigins: []string{"http://localhost:8080", "http://localhost:3000"},
		RateLimitAPI:   10,
		BurstAPI:       20,
		RateLimitWS:    5,
		BurstWS:        10,
		LogLevel:       "info", // Options: debug, info, warn, error, silent
		MaxHistorySize: 200,
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	cfg := DefaultConfig()

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if path := os.Getenv("DB_PATH"); path != "" {
		cfg.DBPath = path
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = parseOrigins(origins)
	}

	if rl := os.Getenv("RATE_LIMIT_API"); rl != "" {
		if val, err := strconv.Atoi(rl); err == nil && val > 0 {
			cfg.RateLimitAPI = rate.Limit(val)
			cfg.BurstAPI = val * 2
		}
	}

	if rl := os.Getenv("RATE_LIMIT_WS"); rl != "" {
		if val, err := strconv.Atoi(rl); err == nil && val > 0 {
			cfg.RateLimitWS = rate.Limit(val)
			cfg.BurstWS = val * 2
		}
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	if size := os.Getenv("MAX_HISTORY_SIZE"); size != "" {
		if val, err := strconv.Atoi(size); err == nil && val > 0 {
			cfg.MaxHistorySize = val
		}
	}

	if key := os.Getenv("GIPHY_API_KEY"); key != "" {
		cfg.GiphyAPIKey = key
	}

	return cfg
}

// parseOrigins parses comma-separated origins
func parseOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// Global configuration instance
var AppConfig = LoadFromEnv()
