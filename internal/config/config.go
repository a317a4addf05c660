package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	MarketData MarketDataConfig
	CORS       CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// MarketDataConfig holds Finnhub market data configuration.
// APIToken is the bootstrap token; a token stored through the settings API
// takes precedence. FernetKey encrypts the stored token at rest.
type MarketDataConfig struct {
	APIToken    string
	StreamURL   string
	CacheTTL    time.Duration
	RefreshCron string
	FernetKey   string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/stocklens.db"),
		},
		MarketData: MarketDataConfig{
			APIToken:    getEnv("FINNHUB_API_TOKEN", ""),
			StreamURL:   getEnv("FINNHUB_WS_URL", "wss://ws.finnhub.io"),
			CacheTTL:    time.Duration(getEnvInt("QUOTE_CACHE_TTL_SEC", 300)) * time.Second,
			RefreshCron: getEnv("QUOTE_REFRESH_CRON", "*/15 9-17 * * 1-5"),
			FernetKey:   getEnv("FERNET_KEY", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(
				getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost"), ","),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
