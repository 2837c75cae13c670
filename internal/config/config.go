package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Dataset sources accepted by DATASET_SOURCE.
const (
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// Itinerary cache backends accepted by CACHE_BACKEND.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheSQL    = "sql"
	CacheNone   = "none"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port          string
	DatasetSource string
	DatasetPath   string
	DBPath        string
	DatabaseURL   string

	DefaultMinConnection int
	MaxExpansions        int

	CacheBackend string
	RedisURL     string
	CacheSize    int
	CacheTTL     time.Duration

	RoutesPerSecond float64
	RoutesBurst     int

	LogLevel string
}

// LoadDotEnv loads .env into the environment if present.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Load reads and validates the configuration. It does not load .env itself.
func Load() (Config, error) {
	var err error
	cfg := Config{
		Port:          Get("PORT", "8080"),
		DatasetSource: strings.ToLower(Get("DATASET_SOURCE", SourceFile)),
		DatasetPath:   Get("DATASET_PATH", "data/flights.json"),
		DBPath:        Get("DB_PATH", "data/app.db"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		LogLevel:      Get("LOG_LEVEL", "info"),
	}

	if cfg.DefaultMinConnection, err = GetInt("DEFAULT_MIN_CONNECTION", 60); err != nil {
		return Config{}, err
	}
	if cfg.MaxExpansions, err = GetInt("MAX_EXPANSIONS", 10000); err != nil {
		return Config{}, err
	}
	if cfg.CacheSize, err = GetInt("CACHE_SIZE", 256); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = GetDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.RoutesPerSecond, err = GetFloat("ROUTES_RPS", 0); err != nil {
		return Config{}, err
	}
	if cfg.RoutesBurst, err = GetInt("ROUTES_BURST", 10); err != nil {
		return Config{}, err
	}

	defaultBackend := CacheMemory
	if cfg.RedisURL != "" {
		defaultBackend = CacheRedis
	}
	cfg.CacheBackend = strings.ToLower(Get("CACHE_BACKEND", defaultBackend))

	switch cfg.DatasetSource {
	case SourceFile, SourceSQLite:
	case SourcePostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return Config{}, fmt.Errorf("load config: DATABASE_URL is required for source %q", SourcePostgres)
		}
	default:
		return Config{}, fmt.Errorf("load config: unknown DATASET_SOURCE %q", cfg.DatasetSource)
	}
	switch cfg.CacheBackend {
	case CacheMemory, CacheNone:
	case CacheRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("load config: REDIS_URL is required for cache backend %q", CacheRedis)
		}
	case CacheSQL:
		if cfg.DatasetSource == SourceFile {
			return Config{}, fmt.Errorf("load config: cache backend %q needs DATASET_SOURCE sqlite or postgres", CacheSQL)
		}
	default:
		return Config{}, fmt.Errorf("load config: unknown CACHE_BACKEND %q", cfg.CacheBackend)
	}
	if cfg.DefaultMinConnection < 0 {
		return Config{}, fmt.Errorf("load config: DEFAULT_MIN_CONNECTION must be non-negative, got %d", cfg.DefaultMinConnection)
	}

	return cfg, nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("config %s: parse int %q: %w", key, v, err)
	}
	return n, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("config %s: parse duration %q: %w", key, v, err)
	}
	return d, nil
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("config %s: parse float %q: %w", key, v, err)
	}
	return f, nil
}
