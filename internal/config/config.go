package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all configuration for the service
type Config struct {
	Service  ServiceConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	HTTP     HTTPConfig
	Cache    CacheConfig
	JWT      JWTConfig
	Logging  LoggingConfig
}

// ServiceConfig holds service-level configuration
type ServiceConfig struct {
	Name        string `validate:"required"`
	Environment string `validate:"required,oneof=development staging production"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     int    `validate:"required,min=1,max=65535"`
	User     string `validate:"required"`
	Password string `validate:"required"`
	Database string `validate:"required"`
	URL      string
}

// KafkaConfig holds Kafka broker configuration. Outbox rows are written
// regardless of Enabled; the publisher only runs when Enabled is true.
type KafkaConfig struct {
	Enabled bool
	Brokers []string `validate:"required_if=Enabled true,dive,required"`
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port int `validate:"required,min=1,max=65535"`
}

// CacheConfig holds list cache configuration
type CacheConfig struct {
	ListTTL time.Duration `validate:"required,min=1s"`
}

// JWTConfig holds token issuing configuration
type JWTConfig struct {
	Secret   string        `validate:"required"`
	TTL      time.Duration `validate:"required,min=1m"`
	Issuer   string        `validate:"required"`
	Audience string        `validate:"required"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `validate:"required,oneof=trace debug info warn error"`
	Format string `validate:"required,oneof=json console"`
}

// LoadConfig loads configuration from environment variables with defaults
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Service: ServiceConfig{
			Name:        getEnv("SERVICE_NAME", "catalog-service"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Database: getEnv("DB_NAME", "catalog"),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
		},
		HTTP: HTTPConfig{
			Port: getEnvInt("HTTP_PORT", 8080),
		},
		Cache: CacheConfig{
			ListTTL: getEnvDuration("CACHE_LIST_TTL", time.Minute),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", "meagaDivertidaMenteSecreta"),
			TTL:      getEnvDuration("JWT_TTL", 10*time.Minute),
			Issuer:   getEnv("JWT_ISSUER", "catalog-service"),
			Audience: getEnv("JWT_AUDIENCE", "catalog-clients"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Build database URL
	cfg.Database.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Database,
	)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvSlice gets a comma-separated environment variable as a slice
func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
