package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion        string
	TodosTable       string
	TodoIDIndex      string
	AttachmentBucket string

	// Attachment upload URLs
	UploadURLExpiry time.Duration

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Logging and features
	LogLevel   string
	EnableCORS bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		TodosTable:       getEnv("TODOS_TABLE", "todos"),
		TodoIDIndex:      getEnv("TODOS_TODO_ID_INDEX", "TodoIdIndex"),
		AttachmentBucket: getEnv("ATTACHMENT_S3_BUCKET", ""),

		UploadURLExpiry: time.Duration(getEnvInt("SIGNED_URL_EXPIRATION", 300)) * time.Second,

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "todos-backend"),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		EnableCORS: getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.TodosTable == "" {
		return fmt.Errorf("TODOS_TABLE is required")
	}
	if c.TodoIDIndex == "" {
		return fmt.Errorf("TODOS_TODO_ID_INDEX is required")
	}
	if c.UploadURLExpiry <= 0 {
		return fmt.Errorf("SIGNED_URL_EXPIRATION must be positive")
	}

	if c.Environment == "production" {
		if c.AttachmentBucket == "" {
			return fmt.Errorf("ATTACHMENT_S3_BUCKET is required in production")
		}
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
