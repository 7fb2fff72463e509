package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// Record store
	StoreBackend string // "sqlite" or "neo4j"
	SQLitePath   string

	// Neo4j (used when StoreBackend == "neo4j")
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	// AI
	AIBaseURL        string
	AIAPIKey         string
	ModelID          string
	InferenceTimeout time.Duration

	// Correlation
	CacheTTL time.Duration

	// Auth
	JWTSecret          string
	AllowedEmailDomain string

	// Uploads
	UploadDir     string
	MaxUploadSize int64

	// Discord announcements (optional)
	DiscordBotToken  string
	DiscordChannelID string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		StoreBackend:       getEnv("STORE_BACKEND", "sqlite"),
		SQLitePath:         getEnv("SQLITE_PATH", "deepfake-daily.db"),
		Neo4jURI:           getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:          getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:      getEnv("NEO4J_PASSWORD", "password"),
		AIBaseURL:          getEnv("AI_BASE_URL", "https://api.openai.com"),
		AIAPIKey:           getEnv("AI_API_KEY", ""),
		ModelID:            getEnv("MODEL_ID", "gpt-4o"),
		InferenceTimeout:   getEnvDuration("INFERENCE_TIMEOUT", 30*time.Second),
		CacheTTL:           getEnvDuration("CORRELATION_CACHE_TTL", 5*time.Minute),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		AllowedEmailDomain: getEnv("ALLOWED_EMAIL_DOMAIN", "mit.edu"),
		UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSize:      getEnvInt64("MAX_UPLOAD_SIZE", 50*1024*1024),
		DiscordBotToken:    getEnv("DISCORD_BOT_TOKEN", ""),
		DiscordChannelID:   getEnv("DISCORD_CHANNEL_ID", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	case "neo4j":
		if c.Neo4jURI == "" {
			return fmt.Errorf("NEO4J_URI is required")
		}
		if c.Neo4jUser == "" {
			return fmt.Errorf("NEO4J_USER is required")
		}
		if c.Neo4jPassword == "" {
			return fmt.Errorf("NEO4J_PASSWORD is required")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND: %s", c.StoreBackend)
	}
	if c.AIBaseURL == "" {
		return fmt.Errorf("AI_BASE_URL is required")
	}
	if c.ModelID == "" {
		return fmt.Errorf("MODEL_ID is required")
	}
	if c.AllowedEmailDomain == "" {
		return fmt.Errorf("ALLOWED_EMAIL_DOMAIN is required")
	}
	// AI API key and Discord token are optional for development
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		var result int64
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
