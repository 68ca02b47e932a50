// Package config loads application settings from environment variables.
//
// # Environment Variables
//
// ## Server
//   - SERVER_PORT: HTTP port (default: 8080)
//   - GIN_MODE: gin mode, debug or release (default: release)
//
// ## Logging
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_FILE: optional file path; enables size-based rotation
//   - LOG_FILE_MAX_SIZE_MB: rotate after this size (default: 50)
//   - LOG_FILE_MAX_BACKUPS: rotated files to keep (default: 5)
//
// ## Catalog
//   - CATALOG_BACKEND: tmdb or typesense (default: tmdb)
//   - TMDB_API_KEY: TMDB v3 API key (required when backend is tmdb)
//   - TMDB_BASE_URL: API root (default: https://api.themoviedb.org/3)
//   - TMDB_LANGUAGE: response language (default: en-US)
//   - TMDB_TIMEOUT_SECONDS: per-request timeout (default: 10)
//   - TMDB_MAX_RETRIES: attempts per request (default: 3)
//   - TMDB_RATE_LIMIT: requests per second (default: 40)
//   - TYPESENSE_HOST, TYPESENSE_PORT, TYPESENSE_PROTOCOL, TYPESENSE_API_KEY: catalog mirror
//   - TYPESENSE_MOVIE_COLLECTION: (default: catalog_movies)
//   - TYPESENSE_SERIES_COLLECTION: (default: catalog_series)
//
// ## Recommendation cache
//   - CACHE_BACKEND: memory or redis (default: memory)
//   - CACHE_TTL_MINUTES: entry lifetime (default: 60)
//   - CACHE_MAX_ENTRIES: memory cache size bound (default: 2000)
//   - CACHE_SWEEP_MINUTES: background expiry sweep, 0 disables (default: 10)
//   - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB: redis backend
//
// ## Recommendations
//   - RECOMMEND_FETCH_PAGES: upstream pages fetched per request (default: 5)
//   - RECOMMEND_SHUFFLE_SEED: fixed shuffle seed, 0 means random (default: 0)
//
// ## Identity
//   - AUTH_JWT_SECRET: HS256 secret for bearer tokens; empty disables token parsing
//   - AUTH_JWT_ISSUER: expected issuer (optional)
//
// ## Gemini (mood resolution)
//   - GEMINI_API_KEY: enables free-text mood resolution
//   - GEMINI_CHAT_MODEL: (default: gemini-2.0-flash)
//
// ## Tracing
//   - TRACING_ENABLED: true/false (default: false)
//   - TRACING_ENDPOINT: OTLP gRPC endpoint (default: localhost:4317)
//   - TRACING_SAMPLE_RATIO: share of root traces kept, 0 to 1 (default: 1)
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
	BackendTMDB      = "tmdb"
	BackendTypesense = "typesense"
	CacheMemory      = "memory"
	CacheRedis       = "redis"
)

type Config struct {
	ServerPort string
	GinMode    string

	Log LogConfig

	CatalogBackend string
	TMDB           TMDBConfig
	Typesense      TypesenseConfig

	Cache CacheConfig
	Redis RedisConfig

	Recommend RecommendConfig

	Auth AuthConfig

	GeminiAPIKey    string
	GeminiChatModel string

	TracingEnabled     bool
	TracingEndpoint    string
	TracingSampleRatio float64
}

type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

type TMDBConfig struct {
	APIKey     string
	BaseURL    string
	Language   string
	Timeout    time.Duration
	MaxRetries int
	RateLimit  float64
}

type TypesenseConfig struct {
	Host             string
	Port             string
	Protocol         string
	APIKey           string
	MovieCollection  string
	SeriesCollection string
}

// ServerURL returns the typesense node URL.
func (t TypesenseConfig) ServerURL() string {
	return fmt.Sprintf("%s://%s:%s", t.Protocol, t.Host, t.Port)
}

type CacheConfig struct {
	Backend    string
	TTL        time.Duration
	MaxEntries int
	Sweep      time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RecommendConfig struct {
	FetchPages  int
	ShuffleSeed uint64
}

type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "release"),

		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvInt("LOG_FILE_MAX_SIZE_MB", 50),
			MaxBackups: getEnvInt("LOG_FILE_MAX_BACKUPS", 5),
		},

		CatalogBackend: strings.ToLower(getEnv("CATALOG_BACKEND", BackendTMDB)),
		TMDB: TMDBConfig{
			APIKey:     getEnv("TMDB_API_KEY", ""),
			BaseURL:    strings.TrimRight(getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"), "/"),
			Language:   getEnv("TMDB_LANGUAGE", "en-US"),
			Timeout:    time.Duration(getEnvInt("TMDB_TIMEOUT_SECONDS", 10)) * time.Second,
			MaxRetries: getEnvInt("TMDB_MAX_RETRIES", 3),
			RateLimit:  getEnvFloat("TMDB_RATE_LIMIT", 40),
		},
		Typesense: TypesenseConfig{
			Host:             getEnv("TYPESENSE_HOST", "localhost"),
			Port:             getEnv("TYPESENSE_PORT", "8108"),
			Protocol:         getEnv("TYPESENSE_PROTOCOL", "http"),
			APIKey:           getEnv("TYPESENSE_API_KEY", ""),
			MovieCollection:  getEnv("TYPESENSE_MOVIE_COLLECTION", "catalog_movies"),
			SeriesCollection: getEnv("TYPESENSE_SERIES_COLLECTION", "catalog_series"),
		},

		Cache: CacheConfig{
			Backend:    strings.ToLower(getEnv("CACHE_BACKEND", CacheMemory)),
			TTL:        time.Duration(getEnvInt("CACHE_TTL_MINUTES", 60)) * time.Minute,
			MaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 2000),
			Sweep:      time.Duration(getEnvInt("CACHE_SWEEP_MINUTES", 10)) * time.Minute,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},

		Recommend: RecommendConfig{
			FetchPages:  getEnvInt("RECOMMEND_FETCH_PAGES", 5),
			ShuffleSeed: uint64(getEnvInt("RECOMMEND_SHUFFLE_SEED", 0)),
		},

		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
			JWTIssuer: getEnv("AUTH_JWT_ISSUER", ""),
		},

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiChatModel: getEnv("GEMINI_CHAT_MODEL", "gemini-2.0-flash"),

		TracingEnabled:     getEnvBool("TRACING_ENABLED", false),
		TracingEndpoint:    getEnv("TRACING_ENDPOINT", "localhost:4317"),
		TracingSampleRatio: getEnvFloat("TRACING_SAMPLE_RATIO", 1),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CatalogBackend {
	case BackendTMDB:
		if c.TMDB.APIKey == "" {
			return fmt.Errorf("TMDB_API_KEY is required when CATALOG_BACKEND=%s", BackendTMDB)
		}
	case BackendTypesense:
		if c.Typesense.APIKey == "" {
			return fmt.Errorf("TYPESENSE_API_KEY is required when CATALOG_BACKEND=%s", BackendTypesense)
		}
	default:
		return fmt.Errorf("unknown CATALOG_BACKEND %q", c.CatalogBackend)
	}

	switch c.Cache.Backend {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL_MINUTES must be positive")
	}
	if c.Recommend.FetchPages < 1 {
		return fmt.Errorf("RECOMMEND_FETCH_PAGES must be at least 1")
	}
	if c.TracingSampleRatio < 0 || c.TracingSampleRatio > 1 {
		return fmt.Errorf("TRACING_SAMPLE_RATIO must be between 0 and 1")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
