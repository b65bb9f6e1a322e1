// File: internal/config/config.go
package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	Environment  string
	DatabasePath string
	JWTSecretKey string

	AssistantAPIKey  string
	AssistantBaseURL string
	AssistantModel   string
	AssistantTimeout time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables or a .env file.
// JWT_SECRET_KEY is required in every environment: an empty signing key
// would silently issue forgeable tokens.
func Load() (*Config, error) {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		Environment:  env,
		DatabasePath: getEnv("DATABASE_PATH", "campusgpt.db"),
		JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),

		AssistantAPIKey:  getEnv("ASSISTANT_API_KEY", ""),
		AssistantBaseURL: getEnv("ASSISTANT_BASE_URL", ""),
		AssistantModel:   getEnv("ASSISTANT_MODEL", "gpt-4o-mini"),
		AssistantTimeout: time.Duration(getEnvAsInt("ASSISTANT_TIMEOUT_SECONDS", 90)) * time.Second,

		ReadTimeout:     time.Duration(getEnvAsInt("SERVER_READ_TIMEOUT_SECONDS", 15)) * time.Second,
		WriteTimeout:    time.Duration(getEnvAsInt("SERVER_WRITE_TIMEOUT_SECONDS", 120)) * time.Second,
		ShutdownTimeout: time.Duration(getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}

	if cfg.JWTSecretKey == "" {
		return nil, errors.New("JWT_SECRET_KEY is required")
	}

	if strings.ToLower(env) == "production" {
		var missing []string
		if cfg.AssistantAPIKey == "" {
			missing = append(missing, "ASSISTANT_API_KEY")
		}
		if len(missing) > 0 {
			return nil, errors.New("missing required production environment variables: " + strings.Join(missing, ", "))
		}
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
