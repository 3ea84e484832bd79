package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	HTTPPort             string
	LogLevel             string
	DBDriver             string
	DatabaseURL          string
	PostgresDriver       string
	SQLitePath           string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxIdle        time.Duration
	DBConnMaxLife        time.Duration
	RedisURL             string
	NATSURL              string
	NATSSubjectPrefix    string
	NATSConnTimeout      time.Duration
	RateLimitRequests    int
	RateLimitWindow      time.Duration
	ApplyRateLimitPerMin int
	RequestTimeout       time.Duration
	ShutdownTimeout      time.Duration
	CORSAllowedOrigins   []string
	TrustedProxies       []string
}

// Load reads the configuration from the environment, after merging a .env file when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DBDriver:             NormalizeDriver(getEnv("DB_DRIVER", DriverSQLite)),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		PostgresDriver:       strings.ToLower(getEnv("POSTGRES_DRIVER", "pgx")),
		SQLitePath:           getEnv("SQLITE_PATH", "jobboard.db"),
		DBMaxOpenConns:       getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxIdle:        getDuration("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:        getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		RedisURL:             getEnv("REDIS_URL", ""),
		NATSURL:              getEnv("NATS_URL", ""),
		NATSSubjectPrefix:    getEnv("NATS_SUBJECT_PREFIX", "jobboard"),
		NATSConnTimeout:      getDuration("NATS_CONN_TIMEOUT", 5*time.Second),
		RateLimitRequests:    getInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:      getDuration("RATE_LIMIT_WINDOW", time.Minute),
		ApplyRateLimitPerMin: getInt("APPLY_RATE_LIMIT_PER_MIN", 3),
		RequestTimeout:       getDuration("REQUEST_TIMEOUT", 10*time.Second),
		ShutdownTimeout:      getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		CORSAllowedOrigins:   getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies:       getList("TRUSTED_PROXIES", nil),
	}

	if cfg.PostgresDriver == "pq" || cfg.PostgresDriver == "postgresql" {
		cfg.PostgresDriver = "postgres"
	}

	switch cfg.DBDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for DB_DRIVER=postgres")
		}
		if cfg.PostgresDriver != "pgx" && cfg.PostgresDriver != "postgres" {
			return nil, fmt.Errorf("POSTGRES_DRIVER must be pgx or postgres, got %q", cfg.PostgresDriver)
		}
	default:
		return nil, fmt.Errorf("DB_DRIVER must be memory, sqlite or postgres, got %q", cfg.DBDriver)
	}
	if cfg.DBDriver == DriverSQLite && cfg.SQLitePath == "" {
		return nil, fmt.Errorf("SQLITE_PATH is required for DB_DRIVER=sqlite")
	}

	invalid := make([]string, 0, 3)
	if cfg.RateLimitRequests <= 0 {
		invalid = append(invalid, "RATE_LIMIT_REQUESTS")
	}
	if cfg.RateLimitWindow <= 0 {
		invalid = append(invalid, "RATE_LIMIT_WINDOW")
	}
	if cfg.ApplyRateLimitPerMin < 0 {
		invalid = append(invalid, "APPLY_RATE_LIMIT_PER_MIN")
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("rate limit values must be positive: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// NormalizeDriver maps accepted DB_DRIVER aliases onto the canonical driver names.
func NormalizeDriver(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "pg", "postgresql", "pgx":
		return DriverPostgres
	case "sqlite3":
		return DriverSQLite
	}
	return name
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		value = strings.TrimSpace(value)
		if value != "" {
			return value
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
