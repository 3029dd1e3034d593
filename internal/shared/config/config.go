package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds application configuration.
type Config struct {
	Port                 string
	CORSAllowOrigin      []string
	ObjectStoreType      string `validate:"oneof=local s3"`
	LocalStoreDir        string
	AWSRegion            string
	S3Bucket             string `validate:"required_if=ObjectStoreType s3"`
	S3Prefix             string
	SSEKMSKeyID          string
	LLMProvider          string `validate:"oneof=openai gemini"`
	LLMModel             string `validate:"required"`
	LLMLiteModel         string `validate:"required"`
	LLMTimeout           time.Duration
	OpenAIAPIKey         string
	GeminiAPIKey         string
	DatabaseURL          string `validate:"required_unless=Env dev"`
	Env                  string `validate:"oneof=dev staging production"`
	LinkedInClientID     string
	LinkedInClientSecret string
	LinkedInRedirectURI  string
	JWTSecret            string `validate:"required_if=Env production"`
	BcryptCost           int    `validate:"min=4,max=31"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(os.Getenv("ENV"))
	dbURL := os.Getenv("DATABASE_URL")

	if env != "dev" && dbURL == "" {
		log.Printf("DATABASE_URL is required unless ENV=dev")
	}

	provider := strings.ToLower(getEnv("LLM_PROVIDER", "openai"))
	model, liteModel := DefaultModels(provider)

	return Config{
		Port:                 getEnv("PORT", "8080"),
		CORSAllowOrigin:      splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		ObjectStoreType:      normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:        getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:            getEnv("AWS_REGION", ""),
		S3Bucket:             getEnv("S3_BUCKET", ""),
		S3Prefix:             getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:          getEnv("SSE_KMS_KEY_ID", ""),
		LLMProvider:          provider,
		LLMModel:             getEnv("LLM_MODEL", model),
		LLMLiteModel:         getEnv("LLM_LITE_MODEL", liteModel),
		LLMTimeout:           time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 120)) * time.Second,
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		DatabaseURL:          dbURL,
		Env:                  env,
		LinkedInClientID:     getEnv("LINKEDIN_CLIENT_ID", ""),
		LinkedInClientSecret: getEnv("LINKEDIN_CLIENT_SECRET", ""),
		LinkedInRedirectURI:  getEnv("LINKEDIN_REDIRECT_URI", "http://localhost:8080/auth/linkedin/callback"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		BcryptCost:           getEnvInt("BCRYPT_COST", 12),
	}
}

// Validate checks the loaded configuration for fatal gaps.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid int %q, using %d", key, raw, def)
		return def
	}
	return val
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

// normalizeEnv maps ENV aliases to dev, staging or production. An unset ENV is
// production; unknown values are returned as-is so Validate rejects them.
func normalizeEnv(raw string) string {
	env := strings.ToLower(strings.TrimSpace(raw))
	switch env {
	case "", "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "dev", "development", "local":
		return "dev"
	default:
		return env
	}
}

// DefaultModels returns the standard and lite model names for provider.
func DefaultModels(provider string) (string, string) {
	switch provider {
	case "gemini":
		return "gemini-1.5-pro", "gemini-1.5-flash"
	default:
		return "gpt-4-turbo-preview", "gpt-4o-mini"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
