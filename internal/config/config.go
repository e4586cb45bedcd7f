package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider names accepted in RECOGNITION_PROVIDER
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Host            string
	Port            string
	RequestTimeout  time.Duration
	ProviderTimeout time.Duration
	MaxUploadSize   int64

	Provider     string
	OpenAIAPIKey string
	OpenAIModel  string
	OpenAIBase   string
	GeminiAPIKey string
	GeminiModel  string
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:            getEnvOrDefault("HOST", "0.0.0.0"),
		Port:            getEnvOrDefault("PORT", "8080"),
		RequestTimeout:  parseDurationOrDefault("REQUEST_TIMEOUT", 90*time.Second),
		ProviderTimeout: parseDurationOrDefault("PROVIDER_TIMEOUT", 60*time.Second),
		MaxUploadSize:   parseIntOrDefault("MAX_UPLOAD_SIZE", 10*1024*1024), // 10 MiB

		Provider:     strings.ToLower(getEnvOrDefault("RECOGNITION_PROVIDER", ProviderOpenAI)),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getEnvOrDefault("OPENAI_MODEL", "gpt-5"),
		OpenAIBase:   getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE must be > 0 (got %d)", cfg.MaxUploadSize)
	}
	if cfg.RequestTimeout <= 0 || cfg.ProviderTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, provider=%s)",
			cfg.RequestTimeout, cfg.ProviderTimeout)
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when RECOGNITION_PROVIDER=%s", ProviderOpenAI)
		}
	case ProviderGemini:
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when RECOGNITION_PROVIDER=%s", ProviderGemini)
		}
	default:
		return nil, fmt.Errorf("unknown RECOGNITION_PROVIDER: %q", cfg.Provider)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
