package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Memory backends
const (
	MemoryBackendPostgres = "postgres"
	MemoryBackendRedis    = "redis"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Auth       AuthConfig
	Catalog    CatalogConfig
	LLM        LLMConfig
	Memory     MemoryConfig
	PostgreSQL PostgreSQLConfig
	Redis      RedisConfig
	Assistant  AssistantConfig
	Logging    LoggingConfig
	Tracing    TracingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// AuthConfig holds bearer credential verification settings
type AuthConfig struct {
	JWTSecret string
}

// CatalogConfig holds the catalog search provider settings
type CatalogConfig struct {
	BaseURL      string
	APIToken     string // used when the caller's credential is empty
	Timeout      time.Duration
	FetchLimit   int
	ImageBaseURL string
}

// LLMConfig holds the OpenAI-compatible responder configuration
type LLMConfig struct {
	APIKey      string
	APIBase     string
	ChatModel   string
	Temperature float64
	TopP        float64
	MaxTokens   int
	Timeout     time.Duration
	Enabled     bool
}

// MemoryConfig selects and tunes the conversation memory store
type MemoryConfig struct {
	Backend      string
	HistoryLimit int
	TTL          time.Duration // redis only
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, preferred when set
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// AssistantConfig holds the persona and answer window
type AssistantConfig struct {
	Name            string
	City            string
	ContextMaxItems int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// TracingConfig controls the OpenTelemetry span exporter
type TracingConfig struct {
	Enabled     bool
	ServiceName string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	llmKey := getEnv("LLM_API_KEY", getEnv("GROQ_API_KEY", ""))

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8000),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Catalog: CatalogConfig{
			BaseURL:      getEnv("CATALOG_BASE_URL", "https://nashikguide.sapphiredigital.agency/api/search/"),
			APIToken:     getEnv("CATALOG_API_TOKEN", getEnv("NASHIK_API_TOKEN", "")),
			Timeout:      time.Duration(getEnvAsInt("CATALOG_TIMEOUT", 15)) * time.Second,
			FetchLimit:   getEnvAsInt("CATALOG_FETCH_LIMIT", 200),
			ImageBaseURL: getEnv("CATALOG_IMAGE_BASE_URL", ""),
		},
		LLM: LLMConfig{
			APIKey:      llmKey,
			APIBase:     getEnv("LLM_API_BASE", "https://api.groq.com/openai/v1"),
			ChatModel:   getEnv("LLM_CHAT_MODEL", "llama-3.3-70b-versatile"),
			Temperature: getEnvAsFloat("LLM_TEMPERATURE", 0.2),
			TopP:        getEnvAsFloat("LLM_TOP_P", 0.9),
			MaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 1024),
			Timeout:     time.Duration(getEnvAsInt("LLM_TIMEOUT", 15)) * time.Second,
			Enabled:     llmKey != "",
		},
		Memory: MemoryConfig{
			Backend:      getEnv("MEMORY_BACKEND", MemoryBackendPostgres),
			HistoryLimit: getEnvAsInt("MEMORY_HISTORY_LIMIT", 10),
			TTL:          time.Duration(getEnvAsInt("MEMORY_TTL", 72)) * time.Hour,
		},
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "placefinder"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Assistant: AssistantConfig{
			Name:            getEnv("ASSISTANT_NAME", "Anvi AI"),
			City:            getEnv("ASSISTANT_CITY", "Nashik"),
			ContextMaxItems: getEnvAsInt("CONTEXT_MAX_ITEMS", 8),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("TRACING_ENABLED", false),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "placefinder"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Memory.Backend {
	case MemoryBackendPostgres, MemoryBackendRedis:
	default:
		return fmt.Errorf("unsupported MEMORY_BACKEND %q (want %q or %q)", c.Memory.Backend, MemoryBackendPostgres, MemoryBackendRedis)
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("CATALOG_BASE_URL must not be empty")
	}
	if c.Assistant.ContextMaxItems <= 0 {
		return fmt.Errorf("CONTEXT_MAX_ITEMS must be positive, got %d", c.Assistant.ContextMaxItems)
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}
