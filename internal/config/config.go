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

// Config holds description service configuration loaded from the environment.
type Config struct {
	AppName  string
	LogLevel string
	HTTPPort string

	// Commerce platform credentials and endpoints.
	ProjectKey   string
	APIBaseURL   string
	AuthURL      string
	ClientID     string
	ClientSecret string
	Scopes       []string

	// AI collaborator endpoints.
	VisionURL      string
	GenerationURL  string
	TranslationURL string
	AIAPIKey       string

	// Optional infrastructure.
	DatabaseURL string
	RedisURL    string
	RunTable    string
	TypeKeyTTL  time.Duration

	ProviderTimeout time.Duration

	// Backoff applied to OAuth token acquisition only; pipeline steps are
	// never retried.
	TokenRetryMaxAttempts    int
	TokenRetryInitialBackoff time.Duration
	TokenRetryMaxBackoff     time.Duration
}

// Load loads configuration and performs basic validation.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppName:  getEnv("APP_NAME", "description_service"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		ProjectKey:   getEnv("CTP_PROJECT_KEY", ""),
		APIBaseURL:   getEnv("CTP_API_URL", ""),
		AuthURL:      getEnv("CTP_AUTH_URL", ""),
		ClientID:     getEnv("CTP_CLIENT_ID", ""),
		ClientSecret: getEnv("CTP_CLIENT_SECRET", ""),
		Scopes:       splitList(getEnv("CTP_SCOPES", "")),

		VisionURL:      getEnv("VISION_SERVICE_URL", ""),
		GenerationURL:  getEnv("GENERATION_SERVICE_URL", ""),
		TranslationURL: getEnv("TRANSLATION_SERVICE_URL", ""),
		AIAPIKey:       getEnv("AI_API_KEY", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		RunTable:    getEnv("RUN_TABLE", "description_runs"),
		TypeKeyTTL:  getEnvAsDuration("TYPE_KEY_TTL", 12*time.Hour),

		ProviderTimeout: getEnvAsDuration("PROVIDER_TIMEOUT", 30*time.Second),

		TokenRetryMaxAttempts:    getEnvAsInt("TOKEN_RETRY_MAX_ATTEMPTS", 3),
		TokenRetryInitialBackoff: getEnvAsDuration("TOKEN_RETRY_INITIAL_BACKOFF", 500*time.Millisecond),
		TokenRetryMaxBackoff:     getEnvAsDuration("TOKEN_RETRY_MAX_BACKOFF", 5*time.Second),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.ProjectKey == "" {
		missing = append(missing, "CTP_PROJECT_KEY")
	}
	if c.APIBaseURL == "" {
		missing = append(missing, "CTP_API_URL")
	}
	if c.AuthURL == "" {
		missing = append(missing, "CTP_AUTH_URL")
	}
	if c.ClientID == "" {
		missing = append(missing, "CTP_CLIENT_ID")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "CTP_CLIENT_SECRET")
	}
	if c.VisionURL == "" {
		missing = append(missing, "VISION_SERVICE_URL")
	}
	if c.GenerationURL == "" {
		missing = append(missing, "GENERATION_SERVICE_URL")
	}
	if c.TranslationURL == "" {
		missing = append(missing, "TRANSLATION_SERVICE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missing)
	}
	return nil
}

func getEnv(key, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return def
	}
	return value
}

func getEnvAsInt(key string, def int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		i, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("invalid int for %s, using default %d: %v", key, def, err)
			return def
		}
		return i
	}
	return def
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			log.Printf("invalid duration for %s, using default %s: %v", key, def, err)
			return def
		}
		return d
	}
	return def
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
