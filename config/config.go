package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Kindwise KindwiseConfig
	CORS     CORSConfig
	App      AppConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// KindwiseConfig holds the settings for the plant.id health assessment API.
type KindwiseConfig struct {
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	MaxInFlight int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type AppConfig struct {
	Environment string
	ServiceName string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8000"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Kindwise: KindwiseConfig{
			APIKey:      os.Getenv("KINDWISE_API_KEY"),
			BaseURL:     strings.TrimRight(getEnv("KINDWISE_BASE_URL", "https://plant.id"), "/"),
			Timeout:     getEnvAsDuration("KINDWISE_TIMEOUT", 60*time.Second),
			MaxInFlight: getEnvAsInt("UPSTREAM_MAX_IN_FLIGHT", 32),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			ServiceName: getEnv("SERVICE_NAME", "plant-health-relay"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// A missing key is forwarded as-is; plant.id rejects it per request.
	if cfg.Kindwise.APIKey == "" {
		log.Println("Warning: KINDWISE_API_KEY is not set, upstream calls will be rejected")
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	u, err := url.Parse(c.Kindwise.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("KINDWISE_BASE_URL is not a valid absolute URL: %q", c.Kindwise.BaseURL)
	}

	if c.Kindwise.Timeout < 0 {
		return fmt.Errorf("KINDWISE_TIMEOUT must not be negative")
	}

	if c.Kindwise.MaxInFlight < 0 {
		return fmt.Errorf("UPSTREAM_MAX_IN_FLIGHT must not be negative")
	}

	return nil
}

// AllowsAllOrigins reports whether the CORS origin list is the wildcard.
func (c CORSConfig) AllowsAllOrigins() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.AllowedOrigins) == 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
