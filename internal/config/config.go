package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

const (
	EnvSandbox    = "sandbox"
	EnvProduction = "production"
)

// Config holds application configuration.
type Config struct {
	AppName    string
	AppVersion string
	LogLevel   string
	HTTPAddr   string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	QuickBooks QuickBooksConfig
}

// QuickBooksConfig carries the OAuth app credentials and environment flag.
// WebhookToken is the shared secret used to verify inbound webhook
// signatures; QuickBooks signs with the client secret, so it falls back to
// ClientSecret when unset.
type QuickBooksConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Environment  string
	WebhookToken string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:    getenv("APP_SERVICE", "booksync"),
		AppVersion: getenv("APP_VERSION", "0.1.0"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		HTTPAddr:   getenv("HTTP_ADDR", ":8080"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "booksync"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 10),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),

		QuickBooks: QuickBooksConfig{
			ClientID:     strings.TrimSpace(getenv("QUICKBOOKS_CLIENT_ID", "")),
			ClientSecret: strings.TrimSpace(getenv("QUICKBOOKS_CLIENT_SECRET", "")),
			RedirectURI:  strings.TrimSpace(getenv("QUICKBOOKS_REDIRECT_URI", "")),
			Environment:  normalizeEnvironment(getenv("QUICKBOOKS_ENVIRONMENT", EnvSandbox)),
			WebhookToken: strings.TrimSpace(getenv("QUICKBOOKS_WEBHOOK_TOKEN", "")),
		},
	}

	if cfg.QuickBooks.WebhookToken == "" {
		cfg.QuickBooks.WebhookToken = cfg.QuickBooks.ClientSecret
	}

	return cfg
}

func normalizeEnvironment(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case EnvProduction:
		return EnvProduction
	default:
		return EnvSandbox
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

// Module wires application configuration.
var Module = fx.Module("config",
	fx.Provide(Load),
)
