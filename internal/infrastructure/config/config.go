// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	CORSAllowedOrigin string

	// Flight data provider
	FlightsAPIURL string
	FetchTimeout  time.Duration

	// Sessions
	SessionIdleTimeout time.Duration

	// PostgreSQL (luggage policies, routes); empty uses built-in tables
	PostgresDSN string

	// MongoDB (precipitation); empty uses the built-in table
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Metrics
	MetricsNamespace string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Port:              getEnv("PORT", "8080"),
		ReadTimeout:       time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout:      time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),

		FlightsAPIURL: getEnv("FLIGHTS_API_URL", "http://localhost:8000/flights"),
		FetchTimeout:  time.Duration(getEnvAsInt("FETCH_TIMEOUT", 15)) * time.Second,

		SessionIdleTimeout: time.Duration(getEnvAsInt("SESSION_IDLE_TIMEOUT", 1800)) * time.Second,

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		MongoURI:      getEnv("MONGODB_DSN", ""),
		MongoDB:       getEnv("MONGO_DB", "flightlist"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		MetricsNamespace: getEnv("METRICS_NAMESPACE", "flightlist"),
	}

	return config, nil
}

// UsePostgres reports whether reference tables should be read from PostgreSQL
func (c *Config) UsePostgres() bool { return c.PostgresDSN != "" }

// UseMongo reports whether precipitation should be read from MongoDB
func (c *Config) UseMongo() bool { return c.MongoURI != "" }

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
