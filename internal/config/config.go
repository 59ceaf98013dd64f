package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"petprompt/internal/middleware"
	"petprompt/pkg/llm"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	defaultPort            = "4000"
	defaultUpstreamTimeout = 10 * time.Second
	defaultMaxTokens       = 60
	defaultTemperature     = 0.8
)

var ErrMissingAPIKey = errors.New("API key is not set")

type Config struct {
	Port            string
	Provider        string
	APIKey          string
	Model           string
	BaseURL         string
	UpstreamTimeout time.Duration
	LLM             llm.Options
	CORS            middleware.CORSPolicy
	LogLevel        slog.Level
}

// Load reads the process environment. A missing credential for the selected
// provider is an error; the caller is expected to exit before serving.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", defaultPort),
		Provider:        strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI)),
		UpstreamTimeout: defaultUpstreamTimeout,
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		cfg.Model = os.Getenv("OPENAI_MODEL")
		cfg.BaseURL = os.Getenv("OPENAI_BASE_URL")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY: %w", ErrMissingAPIKey)
		}
	case ProviderAnthropic:
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		cfg.Model = os.Getenv("ANTHROPIC_MODEL")
		cfg.BaseURL = os.Getenv("ANTHROPIC_BASE_URL")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY: %w", ErrMissingAPIKey)
		}
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}

	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
		}
		if d > 0 {
			cfg.UpstreamTimeout = d
		}
	}

	style, err := llm.ParseStyle(os.Getenv("PROMPT_STYLE"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROMPT_STYLE: %w", err)
	}
	cfg.LLM.Style = style

	maxTokens, err := getEnvInt("MAX_TOKENS", defaultMaxTokens)
	if err != nil {
		return nil, err
	}
	if maxTokens < 0 {
		return nil, fmt.Errorf("invalid MAX_TOKENS: %d", maxTokens)
	}
	cfg.LLM.MaxTokens = int64(maxTokens)

	temperature, err := getEnvFloat("TEMPERATURE", defaultTemperature)
	if err != nil {
		return nil, err
	}
	if temperature < 0 || temperature > 2 {
		return nil, fmt.Errorf("invalid TEMPERATURE: %v", temperature)
	}
	cfg.LLM.Temperature = &temperature

	cfg.CORS, err = loadCORS()
	if err != nil {
		return nil, err
	}

	cfg.LogLevel, err = parseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadCORS() (middleware.CORSPolicy, error) {
	credentials, err := getEnvBool("CORS_ALLOW_CREDENTIALS", false)
	if err != nil {
		return middleware.CORSPolicy{}, err
	}

	localhost, err := getEnvBool("CORS_ALLOW_LOCALHOST", false)
	if err != nil {
		return middleware.CORSPolicy{}, err
	}

	return middleware.CORSPolicy{
		AllowOrigins:        splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		AllowOriginContains: splitList(os.Getenv("CORS_ALLOW_ORIGIN_CONTAINS")),
		AllowLocalhost:      localhost,
		AllowMethods:        splitList(getEnv("CORS_ALLOW_METHODS", "GET,POST,OPTIONS")),
		AllowHeaders:        splitList(getEnv("CORS_ALLOW_HEADERS", "Origin,Content-Type,Authorization,X-Request-Id")),
		AllowCredentials:    credentials,
	}, nil
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}

func getEnv(name, defaultValue string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(name string, defaultValue int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return parsed, nil
}

func getEnvFloat(name string, defaultValue float64) (float64, error) {
	v := os.Getenv(name)
	if v == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return parsed, nil
}

func getEnvBool(name string, defaultValue bool) (bool, error) {
	v := os.Getenv(name)
	if v == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", name, err)
	}
	return parsed, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
