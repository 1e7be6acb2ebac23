package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the insecure built-in signing key used when JWT_SECRET
// is unset. Load rejects it when ENV=prod.
const DefaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	Port string

	// DBPath is the SQLite database file. The directory is created if absent.
	DBPath string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 10).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 2).
	DBMaxIdleConns int

	JWTSecret string

	// TokenTTLDays is the token lifetime in days (default 7). Set via TOKEN_TTL_DAYS.
	TokenTTLDays int

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set and not the default.
	Env string

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the API listens with plain HTTP.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// CORSAllowedOrigins is a list of origins allowed for CORS.
	// Set via CORS_ALLOWED_ORIGINS (comma-separated). When empty, no CORS headers are sent (same-origin only).
	CORSAllowedOrigins []string

	// MaintenanceCron schedules the periodic SQLite WAL checkpoint.
	MaintenanceCron string
}

func Load() Config {
	if os.Getenv("ENV") != "prod" {
		godotenv.Load()
	}

	return Config{
		Port: getEnv("PORT", "8080"),

		DBPath: getEnv("DB_PATH", "data/hobbies.db"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 2),

		JWTSecret:    getEnv("JWT_SECRET", DefaultJWTSecret),
		TokenTTLDays: getEnvInt("TOKEN_TTL_DAYS", 7),
		Env:          getEnv("ENV", "dev"),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),

		MaintenanceCron: getEnv("MAINTENANCE_CRON", "17 3 * * *"),
	}
}

// Validate catches configuration that must not reach production.
func (c Config) Validate() error {
	if c.Env == "prod" && c.JWTSecret == DefaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set when ENV=prod")
	}
	if c.TokenTTLDays <= 0 {
		return fmt.Errorf("TOKEN_TTL_DAYS must be positive")
	}
	return nil
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
