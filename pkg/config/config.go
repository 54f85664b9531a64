package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Redis (optional read-through cache for provider responses)
	Redis RedisConfig

	// External data sources
	Yahoo YahooConfig
	News  NewsConfig

	// Scoring
	PresetID   string // built-in scoring preset id
	PresetFile string // optional YAML preset overriding the built-in one

	// Watchlist and refresh
	Watchlist       []string
	RefreshSchedule string // cron spec for periodic re-evaluation

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
	TTL      time.Duration
}

// YahooConfig holds Yahoo Finance endpoints.
type YahooConfig struct {
	ChartBaseURL string
	QuoteBaseURL string
	Range        string // history depth for daily bars, e.g. "2y"
}

// NewsConfig holds the headline feed configuration.
type NewsConfig struct {
	FeedBaseURL string
	Region      string
	Lang        string
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			TTL:      getEnvAsDuration("REDIS_TTL", "5m"),
		},

		Yahoo: YahooConfig{
			ChartBaseURL: getEnv("YAHOO_CHART_BASE_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
			QuoteBaseURL: getEnv("YAHOO_QUOTE_BASE_URL", "https://query1.finance.yahoo.com/v10/finance/quoteSummary"),
			Range:        getEnv("YAHOO_RANGE", "2y"),
		},

		News: NewsConfig{
			FeedBaseURL: getEnv("NEWS_FEED_BASE_URL", "https://feeds.finance.yahoo.com/rss/2.0/headline"),
			Region:      getEnv("NEWS_REGION", "US"),
			Lang:        getEnv("NEWS_LANG", "en-US"),
		},

		PresetID:   getEnv("SCORING_PRESET", "extended-v6"),
		PresetFile: getEnv("SCORING_PRESET_FILE", ""),

		Watchlist:       getEnvAsList("WATCHLIST", "TTE.PA,RMS.PA,DSY.PA,SOP.PA,AIR.PA"),
		RefreshSchedule: getEnv("REFRESH_SCHEDULE", "0 * * * * *"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}
	if len(c.Watchlist) == 0 {
		return fmt.Errorf("WATCHLIST must contain at least one symbol")
	}
	return nil
}

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key, defaultValue string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
