package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures all runtime configuration for the service. It is built
// once at startup and passed explicitly to the components that need it.
type Config struct {
	HTTP      HTTPConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Admin     AdminConfig
	CORS      CORSConfig
	Store     StoreConfig
	RateLimit RateLimitConfig
	Server    ServerConfig
}

// HTTPConfig holds HTTP server related configuration.
type HTTPConfig struct {
	Port string
}

// PostgresConfig holds database connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the formatted connection string for pgx.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AdminConfig holds the shared secret gating the admin endpoints.
type AdminConfig struct {
	Secret string
}

// CORSConfig lists the origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// StoreConfig bounds how long a single store call may take.
type StoreConfig struct {
	Timeout time.Duration
}

// RateLimitConfig throttles receive attempts per client address.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// ServerConfig stores general server runtime configuration.
type ServerConfig struct {
	ShutdownTimeout time.Duration
}

// Load builds configuration by reading environment variables with sane defaults.
func Load() (*Config, error) {
	pgPort, err := getInt("POSTGRES_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT: %w", err)
	}

	redisDB, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	storeTimeout, err := getDuration("STORE_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_TIMEOUT: %w", err)
	}

	rateLimit, err := getInt("RECEIVE_RATE_LIMIT", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid RECEIVE_RATE_LIMIT: %w", err)
	}
	if rateLimit < 1 {
		rateLimit = 1
	}

	rateWindow, err := getDuration("RECEIVE_RATE_WINDOW", time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid RECEIVE_RATE_WINDOW: %w", err)
	}

	shutdownTimeout, err := getDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT: %w", err)
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Port: getString("HTTP_PORT", "8080"),
		},
		Postgres: PostgresConfig{
			Host:     getString("POSTGRES_HOST", "localhost"),
			Port:     pgPort,
			User:     getString("POSTGRES_USER", "appuser"),
			Password: getString("POSTGRES_PASSWORD", "appsecret"),
			DBName:   getString("POSTGRES_DB", "quickbackend"),
			SSLMode:  getString("POSTGRES_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getString("REDIS_ADDR", "localhost:6379"),
			Password: getString("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Admin: AdminConfig{
			Secret: getString("ADMIN_SECRET", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitOrigins(getString("ALLOWED_ORIGINS", "*")),
		},
		Store: StoreConfig{
			Timeout: storeTimeout,
		},
		RateLimit: RateLimitConfig{
			Limit:  rateLimit,
			Window: rateWindow,
		},
		Server: ServerConfig{
			ShutdownTimeout: shutdownTimeout,
		},
	}

	return cfg, nil
}

func splitOrigins(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func getString(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) (int, error) {
	if val := os.Getenv(key); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return 0, err
		}
		return parsed, nil
	}
	return def, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	if val := os.Getenv(key); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return 0, err
		}
		return parsed, nil
	}
	return def, nil
}
