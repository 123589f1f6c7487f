package config

import (
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StorageBolt     = "bolt"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	LogLevel      slog.Level

	// Storage
	StorageDriver  string
	DatabaseURL    string
	SQLitePath     string
	BoltPath       string
	StorageTimeout time.Duration

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	CORSAllowedOrigins []string
	// Requests allowed per RateLimitWindow and client IP.
	RateLimit       int64
	AuthRateLimit   int64
	RateLimitWindow time.Duration

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "data/ledger.db")
	v.SetDefault("BOLT_PATH", "data/ledger.bolt")
	v.SetDefault("STORAGE_TIMEOUT", "5s")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", "24h")
	v.SetDefault("JWT_ISSUER", "general-ledger-app")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", 100)
	v.SetDefault("AUTH_RATE_LIMIT", 5)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("POSTHOG_API_KEY", "")

	v.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.LogLevel = parseLogLevel(v.GetString("LOG_LEVEL"))

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER")))
	switch cfg.StorageDriver {
	case StorageMemory, StorageBolt, StoragePostgres, StorageSQLite:
	default:
		log.Printf("Warning: unknown STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StorageMemory)
		cfg.StorageDriver = StorageMemory
	}
	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.SQLitePath = v.GetString("SQLITE_PATH")
	cfg.BoltPath = v.GetString("BOLT_PATH")
	cfg.StorageTimeout = parseDuration(v, "STORAGE_TIMEOUT", 5*time.Second)

	// Load JWT Secret
	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = parseDuration(v, "JWT_EXPIRY_DURATION", 24*time.Hour)
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")

	cfg.GoogleClientID = v.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = v.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = v.GetString("GOOGLE_REDIRECT_URL")
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set. Google sign-in will not function.")
	}

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = v.GetInt64("RATE_LIMIT")
	cfg.AuthRateLimit = v.GetInt64("AUTH_RATE_LIMIT")
	cfg.RateLimitWindow = parseDuration(v, "RATE_LIMIT_WINDOW", 15*time.Minute)

	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func parseLogLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", s)
		return slog.LevelInfo
	}
	return level
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
