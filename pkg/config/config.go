package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	ProviderGateway = "gateway"
	ProviderGemini  = "gemini"

	DefaultGatewayURL  = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultModel       = "google/gemini-2.5-flash"
	DefaultGeminiModel = "gemini-2.5-flash"
)

type Config struct {
	DatabaseURL      string
	Host             string
	Port             string
	JwtSecret        string
	JwtTTLHours      int
	LLMProvider      string
	AIGatewayURL     string
	AIGatewayAPIKey  string
	AIModel          string
	AITimeoutSeconds int
	GeminiAPIKey     string
	AllowedOrigins   []string
	LogLevel         string
}

// LoadConfig reads .env (when present) and the process environment.
// Missing required settings are fatal.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debugf("No .env file loaded: %v", err)
	}
	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from environment variables without touching .env.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Host:            os.Getenv("HOST"),
		Port:            os.Getenv("PORT"),
		JwtSecret:       os.Getenv("JWT_SECRET"),
		LLMProvider:     strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER"))),
		AIGatewayURL:    os.Getenv("AI_GATEWAY_URL"),
		AIGatewayAPIKey: os.Getenv("AI_GATEWAY_API_KEY"),
		AIModel:         os.Getenv("AI_MODEL"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = ProviderGateway
	}

	var err error
	if cfg.JwtTTLHours, err = intFromEnv("JWT_TTL_HOURS", 24); err != nil {
		return nil, err
	}
	if cfg.AITimeoutSeconds, err = intFromEnv("AI_TIMEOUT_SECONDS", 60); err != nil {
		return nil, err
	}

	for _, origin := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS entry %q must be * or start with http:// or https://", origin)
		}
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:5173"}
	}

	if cfg.JwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	switch cfg.LLMProvider {
	case ProviderGateway:
		if cfg.AIGatewayAPIKey == "" {
			return nil, errors.New("AI_GATEWAY_API_KEY is not set")
		}
		if cfg.AIGatewayURL == "" {
			cfg.AIGatewayURL = DefaultGatewayURL
		}
		if cfg.AIModel == "" {
			cfg.AIModel = DefaultModel
		}
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, errors.New("GEMINI_API_KEY is not set")
		}
		if cfg.AIModel == "" {
			cfg.AIModel = DefaultGeminiModel
		}
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLMProvider)
	}

	return cfg, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return value, nil
}
