package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	RedisURL    string
	ServerPort  string
	Environment string

	JWTSecret     string
	JWTExpiry     time.Duration
	RefreshExpiry time.Duration

	TelegramBotToken    string
	TelegramBotUsername string
	CodeTTL             time.Duration

	BroadcastBatchSize  int
	BroadcastBatchDelay time.Duration
	JournalPath         string

	PostingCacheTTL time.Duration

	// Rate limiting
	RateLimitMaxRequests int
	RateLimitWindow      time.Duration
}

func Load() *Config {
	// Try to load .env file, but don't fail if it doesn't exist
	// (containers use environment variables directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment variables")
	}

	journalPath := os.Getenv("JOURNAL_PATH")
	if journalPath == "" {
		journalPath = "data/broadcast.journal"
	}

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		ServerPort:  os.Getenv("SERVER_PORT"),
		Environment: os.Getenv("ENVIRONMENT"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiry:     getEnvAsDuration("JWT_EXPIRY", "24h"),
		RefreshExpiry: getEnvAsDuration("REFRESH_EXPIRY", "168h"),

		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramBotUsername: os.Getenv("TELEGRAM_BOT_USERNAME"),
		CodeTTL:             getEnvAsDuration("CODE_TTL", "10m"),

		BroadcastBatchSize:  getEnvAsInt("BROADCAST_BATCH_SIZE", 20),
		BroadcastBatchDelay: getEnvAsDuration("BROADCAST_BATCH_DELAY", "200ms"),
		JournalPath:         journalPath,

		PostingCacheTTL: getEnvAsDuration("POSTING_CACHE_TTL", "1m"),

		RateLimitMaxRequests: getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitWindow:      getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),
	}

	return cfg
}

// IsProduction returns true if running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnvAsInt retrieves environment variable as int with default value
func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %d", key, defaultVal)
		return defaultVal
	}
	return val
}

// getEnvAsDuration retrieves environment variable as duration with default value
func getEnvAsDuration(key string, defaultVal string) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		valStr = defaultVal
	}
	duration, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %s", key, defaultVal)
		duration, _ = time.ParseDuration(defaultVal)
	}
	return duration
}
