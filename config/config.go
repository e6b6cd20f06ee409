package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config collects everything the service reads from the environment.
type Config struct {
	Port      string
	JWTSecret string
	LogLevel  string

	// UseLocalStore swaps the Postgres stores for in-memory ones. Handy for
	// frontend development without a database.
	UseLocalStore bool

	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	AllowedOrigins []string
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          envOr("PORT", "8080"),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		UseLocalStore: os.Getenv("USE_LOCAL_STORE") == "true",
		DBUser:        strings.TrimSpace(os.Getenv("DB_USER")),
		DBPass:        strings.TrimSpace(os.Getenv("DB_PASSWORD")),
		DBHost:        strings.TrimSpace(os.Getenv("DB_HOST")),
		DBPort:        envOr("DB_PORT", "5432"),
		DBName:        strings.TrimSpace(os.Getenv("DB_NAME")),
	}

	origins := envOr("ALLOWED_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if !c.UseLocalStore {
		if c.DBUser == "" || c.DBHost == "" || c.DBName == "" {
			return errors.New("DB_USER, DB_HOST and DB_NAME are required unless USE_LOCAL_STORE=true")
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
