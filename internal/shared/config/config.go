package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultProductionOrigin = "https://yourfrontend.com"
	defaultDevOrigin        = "http://localhost:3000"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	CORSAllowOrigin []string
	DatabaseURL     string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	LLMModel      string
	// OpenAITimeout bounds a single outbound completion call.
	OpenAITimeout time.Duration
	// AnalysisTimeout is the wall-clock budget of POST /api/analyze.
	AnalysisTimeout time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	env := normalizeEnv(getEnv("ENV", "dev"))

	return Config{
		Port:            getEnv("PORT", "4000"),
		Env:             env,
		LogLevel:        getEnv("LOG_LEVEL", ""),
		CORSAllowOrigin: corsOrigins(env),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		OpenAIAPIKey:    strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:        getEnv("LLM_MODEL", "gpt-4o-mini"),
		OpenAITimeout:   getSeconds("OPENAI_TIMEOUT_SECONDS", 50*time.Second),
		AnalysisTimeout: getSeconds("ANALYSIS_TIMEOUT_SECONDS", 60*time.Second),
	}
}

// IsDevLike reports whether env allows in-memory fallbacks.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

func defaultOrigin(env string) string {
	if env == "production" {
		return defaultProductionOrigin
	}
	return defaultDevOrigin
}

// corsOrigins falls back to the env default when the variable holds no usable origin.
func corsOrigins(env string) []string {
	if origins := splitAndTrim(os.Getenv("CORS_ALLOW_ORIGINS")); len(origins) > 0 {
		return origins
	}
	return splitAndTrim(defaultOrigin(env))
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return time.Duration(parsed) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
